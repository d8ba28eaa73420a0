package firebase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tosipeli/internal/model"
)

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type authResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

func (a authResponse) identity() *model.Identity {
	id := &model.Identity{
		AccountID:    a.LocalID,
		Email:        a.Email,
		Token:        a.IDToken,
		RefreshToken: a.RefreshToken,
	}
	if secs, err := strconv.Atoi(a.ExpiresIn); err == nil {
		id.ExpiresIn = time.Duration(secs) * time.Second
	}
	return id
}

func (c *Client) accountsURL(action string) string {
	return c.identityURL + "/accounts:" + action + "?key=" + url.QueryEscape(c.apiKey)
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*model.Identity, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, c.accountsURL("signUp"), "",
		passwordRequest{Email: email, Password: password, ReturnSecureToken: true}, &out)
	if err != nil {
		return nil, err
	}
	return out.identity(), nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*model.Identity, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, c.accountsURL("signInWithPassword"), "",
		passwordRequest{Email: email, Password: password, ReturnSecureToken: true}, &out)
	if err != nil {
		return nil, err
	}
	return out.identity(), nil
}

type lookupResponse struct {
	Users []struct {
		LocalID  string `json:"localId"`
		Disabled bool   `json:"disabled"`
	} `json:"users"`
}

// Verify resolves an id token through accounts:lookup
func (c *Client) Verify(ctx context.Context, idToken string) (string, error) {
	var out lookupResponse
	err := c.do(ctx, http.MethodPost, c.accountsURL("lookup"), "",
		map[string]string{"idToken": idToken}, &out)
	if err != nil {
		var perr *model.ProviderError
		if errors.As(err, &perr) {
			return "", fmt.Errorf("%w: %s", model.ErrUnauthorized, perr.Code)
		}
		return "", err
	}
	if len(out.Users) == 0 || out.Users[0].Disabled {
		return "", model.ErrUnauthorized
	}
	return out.Users[0].LocalID, nil
}
