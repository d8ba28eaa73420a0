// Package firebase talks to the hosted identity provider (Identity Toolkit)
// and document store (Firestore) over their REST APIs.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tosipeli/internal/config"
	"tosipeli/internal/model"

	"github.com/rs/zerolog"
)

const registrationsCollection = "registrations"

type Client struct {
	httpClient   *http.Client
	apiKey       string
	projectID    string
	identityURL  string
	firestoreURL string
	logger       zerolog.Logger
}

func NewClient(httpClient *http.Client, cfg config.FirebaseConfig, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout()}
	}
	return &Client{
		httpClient:   httpClient,
		apiKey:       cfg.APIKey(),
		projectID:    cfg.ProjectID(),
		identityURL:  strings.TrimRight(cfg.IdentityURL(), "/"),
		firestoreURL: strings.TrimRight(cfg.FirestoreURL(), "/"),
		logger:       logger,
	}
}

// errorBody is the error envelope shared by both REST APIs.
type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// do sends body as JSON and decodes a 2xx answer into out.
// Non-2xx answers become *model.ProviderError; transport failures wrap model.ErrUpstream.
func (c *Client) do(ctx context.Context, method, url, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", model.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		perr := parseError(resp.StatusCode, respBody)
		c.logger.Debug().
			Str("method", method).
			Int("status", resp.StatusCode).
			Str("code", perr.Code).
			Msg("firebase request rejected")
		return perr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", model.ErrUpstream, err)
	}
	return nil
}

// parseError extracts the provider code. Identity Toolkit messages look like
// "CODE" or "CODE : human readable detail".
func parseError(status int, body []byte) *model.ProviderError {
	perr := &model.ProviderError{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Error.Message == "" {
		perr.Code = http.StatusText(status)
		return perr
	}

	perr.Message = eb.Error.Message
	code, _, _ := strings.Cut(eb.Error.Message, " : ")
	perr.Code = strings.TrimSpace(code)
	if strings.Contains(perr.Code, " ") && eb.Error.Status != "" {
		perr.Code = eb.Error.Status
	}
	return perr
}
