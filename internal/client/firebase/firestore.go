package firebase

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
	"time"

	"tosipeli/internal/model"
)

// value is a Firestore typed field value; exactly one member is set.
type value struct {
	StringValue    *string   `json:"stringValue,omitempty"`
	BooleanValue   *bool     `json:"booleanValue,omitempty"`
	TimestampValue *string   `json:"timestampValue,omitempty"`
	MapValue       *mapValue `json:"mapValue,omitempty"`
}

type mapValue struct {
	Fields map[string]value `json:"fields"`
}

type document struct {
	Name       string           `json:"name,omitempty"`
	Fields     map[string]value `json:"fields"`
	CreateTime string           `json:"createTime,omitempty"`
}

func str(s string) value { return value{StringValue: &s} }

func boolean(b bool) value { return value{BooleanValue: &b} }

func timestamp(t time.Time) value {
	s := t.UTC().Format(time.RFC3339Nano)
	return value{TimestampValue: &s}
}

func (d document) stringField(field string) string {
	v, ok := d.Fields[field]
	if !ok || v.StringValue == nil {
		return ""
	}
	return *v.StringValue
}

func (d document) boolField(field string) bool {
	v, ok := d.Fields[field]
	if !ok || v.BooleanValue == nil {
		return false
	}
	return *v.BooleanValue
}

func (d document) timeField(field string) time.Time {
	v, ok := d.Fields[field]
	if !ok || v.TimestampValue == nil {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, *v.TimestampValue)
	return t
}

func preferencesValue(sel model.PreferenceSelection, now time.Time) value {
	return value{MapValue: &mapValue{Fields: map[string]value{
		"auto":      str(sel.Auto),
		"home":      str(sel.Home),
		"travel":    str(sel.Travel),
		"updatedAt": timestamp(now),
	}}}
}

func (c *Client) collectionURL() string {
	return c.firestoreURL + "/projects/" + url.PathEscape(c.projectID) +
		"/databases/(default)/documents/" + registrationsCollection
}

func (c *Client) documentURL(id string) string {
	return c.collectionURL() + "/" + url.PathEscape(id)
}

// CreateProfile stores the registration document under the account id
func (c *Client) CreateProfile(ctx context.Context, token string, profile *model.Profile) (string, error) {
	createdAt := profile.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	doc := document{Fields: map[string]value{
		"userId":           str(profile.AccountID),
		"email":            str(profile.Email),
		"sotu":             str(profile.Sotu),
		"zip":              str(profile.Zip),
		"plate":            str(profile.Plate),
		"homeSize":         str(profile.HomeSize),
		"consentStore":     boolean(profile.ConsentStore),
		"consentMarketing": boolean(profile.ConsentMarketing),
		"consentSale":      boolean(profile.ConsentSale),
		"createdAt":        timestamp(createdAt),
	}}
	if profile.Preferences != nil {
		doc.Fields["preferences"] = preferencesValue(*profile.Preferences, createdAt)
	}

	target := c.collectionURL() + "?documentId=" + url.QueryEscape(profile.AccountID)

	var out document
	if err := c.do(ctx, http.MethodPost, target, token, doc, &out); err != nil {
		return "", mapDocumentError(err)
	}
	return path.Base(out.Name), nil
}

func (c *Client) GetProfileByAccount(ctx context.Context, token, accountID string) (*model.Profile, error) {
	var doc document
	if err := c.do(ctx, http.MethodGet, c.documentURL(accountID), token, nil, &doc); err != nil {
		return nil, mapDocumentError(err)
	}

	profile := &model.Profile{
		ID:               path.Base(doc.Name),
		AccountID:        doc.stringField("userId"),
		Email:            doc.stringField("email"),
		Sotu:             doc.stringField("sotu"),
		Zip:              doc.stringField("zip"),
		Plate:            doc.stringField("plate"),
		HomeSize:         doc.stringField("homeSize"),
		ConsentStore:     doc.boolField("consentStore"),
		ConsentMarketing: doc.boolField("consentMarketing"),
		ConsentSale:      doc.boolField("consentSale"),
		CreatedAt:        doc.timeField("createdAt"),
	}
	if profile.AccountID == "" {
		profile.AccountID = accountID
	}

	if prefs, ok := doc.Fields["preferences"]; ok && prefs.MapValue != nil {
		inner := document{Fields: prefs.MapValue.Fields}
		profile.Preferences = &model.PreferenceSelection{
			Auto:   inner.stringField("auto"),
			Home:   inner.stringField("home"),
			Travel: inner.stringField("travel"),
		}
	}

	return profile, nil
}

// UpdatePreferences patches only the preferences field of an existing document
func (c *Client) UpdatePreferences(ctx context.Context, token, accountID string, sel model.PreferenceSelection) error {
	target := c.documentURL(accountID) +
		"?updateMask.fieldPaths=preferences&currentDocument.exists=true"

	doc := document{Fields: map[string]value{
		"preferences": preferencesValue(sel, time.Now()),
	}}

	if err := c.do(ctx, http.MethodPatch, target, token, doc, nil); err != nil {
		return mapDocumentError(err)
	}
	return nil
}

func mapDocumentError(err error) error {
	var perr *model.ProviderError
	if !errors.As(err, &perr) {
		return err
	}
	switch perr.Status {
	case http.StatusNotFound:
		return model.ErrProfileNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.ErrUnauthorized
	}
	return errors.Join(model.ErrUpstream, err)
}
