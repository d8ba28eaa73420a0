package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "tosipeli/internal/api/dto/auth"
	"tosipeli/internal/middleware"
	"tosipeli/internal/model"
	"tosipeli/pkg/resp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	registerErr error
	loginRes    *model.LoginResult
	loginErr    error
	prefsErr    error

	gotToken   string
	gotAccount string
	gotPrefs   *model.PreferenceSelection
}

func (f *fakeAuth) Register(context.Context, *model.Registration) (string, error) {
	if f.registerErr != nil {
		return "", f.registerErr
	}
	return "doc-1", nil
}

func (f *fakeAuth) Login(context.Context, model.Credentials) (*model.LoginResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeAuth) UpdatePreferences(_ context.Context, token, accountID string, sel *model.PreferenceSelection) error {
	f.gotToken, f.gotAccount, f.gotPrefs = token, accountID, sel
	return f.prefsErr
}

type fakeSpin struct {
	authenticated []string
	loggedOut     []string
}

func (f *fakeSpin) Status(context.Context, model.PlaySession, model.PreferenceSelection) (*model.PlayStatus, error) {
	return nil, errors.New("not used")
}

func (f *fakeSpin) Play(context.Context, model.PlaySession, model.PreferenceSelection) (*model.PlayResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeSpin) Authenticate(_ context.Context, s model.PlaySession) error {
	f.authenticated = append(f.authenticated, s.ID)
	return nil
}

func (f *fakeSpin) Logout(_ context.Context, s model.PlaySession) error {
	f.loggedOut = append(f.loggedOut, s.ID)
	return nil
}

func (f *fakeSpin) Catalog() []model.Insurer { return nil }

func serve(h http.HandlerFunc, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	middleware.PlaySession(h).ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) resp.ErrorResponse {
	t.Helper()
	var out resp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

const registerBody = `{"email":"a@b.fi","password":"salasana","sotu":"010190-123A","zip":"00100",
	"plate":"ABC-123","homeSize":"50-100","consentStore":true}`

func TestRegister_Success(t *testing.T) {
	spin := &fakeSpin{}
	h := NewHandler(HandlerDeps{Auth: &fakeAuth{}, Spin: spin})

	rec := serve(h.Register, registerBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, dto.RegisterResponse{Success: true, Message: msgRegistrationSaved, ID: "doc-1"}, out)
	assert.Len(t, spin.authenticated, 1)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("%w: x", model.ErrValidation), http.StatusBadRequest, msgMissingFields},
		{fmt.Errorf("%w: x", model.ErrDuplicateEmail), http.StatusBadRequest, msgEmailExists},
		{fmt.Errorf("%w: %w", model.ErrUpstream, &model.ProviderError{Code: "WEAK_PASSWORD"}), http.StatusBadRequest, msgCreateUserFailed},
		{fmt.Errorf("%w: dial failed", model.ErrUpstream), http.StatusInternalServerError, msgSaveFailed},
		{fmt.Errorf("%w: %w", model.ErrPartialWrite, &model.ProviderError{Code: "INTERNAL"}), http.StatusInternalServerError, msgSaveFailed},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			spin := &fakeSpin{}
			h := NewHandler(HandlerDeps{Auth: &fakeAuth{registerErr: tt.err}, Spin: spin})

			rec := serve(h.Register, registerBody)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, errorBody(t, rec).Error)
			assert.Empty(t, spin.authenticated)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	spin := &fakeSpin{}
	auth := &fakeAuth{loginRes: &model.LoginResult{
		Identity: model.Identity{AccountID: "acc-1", Email: "a@b.fi", Token: "tok", RefreshToken: "ref", ExpiresIn: time.Hour},
	}}
	h := NewHandler(HandlerDeps{Auth: auth, Spin: spin})

	rec := serve(h.Login, `{"email":"a@b.fi","password":"x"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	user := raw["user"].(map[string]any)
	assert.Equal(t, true, raw["success"])
	assert.Equal(t, "acc-1", user["userId"])
	assert.Equal(t, "3600", user["expiresIn"])
	assert.Contains(t, user, "userData")
	assert.Nil(t, user["userData"])
	assert.Len(t, spin.authenticated, 1)
}

func TestLogin_WithProfile(t *testing.T) {
	auth := &fakeAuth{loginRes: &model.LoginResult{
		Identity: model.Identity{AccountID: "acc-1"},
		Profile: &model.Profile{
			ID:          "doc-1",
			Zip:         "00100",
			Preferences: &model.PreferenceSelection{Auto: "kasko", Home: "perus", Travel: ""},
		},
	}}
	h := NewHandler(HandlerDeps{Auth: auth, Spin: &fakeSpin{}})

	rec := serve(h.Login, `{"email":"a@b.fi","password":"x"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotNil(t, out.User.UserData)
	assert.Equal(t, "doc-1", out.User.UserData.ID)
	assert.Equal(t, &dto.Preferences{Auto: "kasko", Home: "perus"}, out.User.UserData.Preferences)
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
		details string
	}{
		{"validation", model.ErrValidation, http.StatusBadRequest, msgCredentialsMissing, ""},
		{"email not found", &model.AuthError{Reason: model.ReasonEmailNotFound}, http.StatusUnauthorized, "Sähköpostiosoitetta ei löydy. Rekisteröidy ensin.", ""},
		{"invalid password", &model.AuthError{Reason: model.ReasonInvalidPassword}, http.StatusUnauthorized, "Väärä salasana. Yritä uudelleen.", ""},
		{"invalid credentials", &model.AuthError{Reason: model.ReasonInvalidCredentials}, http.StatusUnauthorized, "Väärä sähköposti tai salasana.", ""},
		{"disabled", &model.AuthError{Reason: model.ReasonUserDisabled}, http.StatusUnauthorized, "Käyttäjätili on poistettu käytöstä.", ""},
		{"unknown", &model.AuthError{Reason: model.ReasonUnknown, Code: "TOO_MANY_ATTEMPTS_TRY_LATER"}, http.StatusUnauthorized, msgLoginFailed, "TOO_MANY_ATTEMPTS_TRY_LATER"},
		{"upstream", model.ErrUpstream, http.StatusInternalServerError, msgLoginFailed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spin := &fakeSpin{}
			h := NewHandler(HandlerDeps{Auth: &fakeAuth{loginErr: tt.err}, Spin: spin})

			rec := serve(h.Login, `{"email":"a@b.fi","password":"x"}`)
			assert.Equal(t, tt.status, rec.Code)
			body := errorBody(t, rec)
			assert.Equal(t, tt.message, body.Error)
			assert.Equal(t, tt.details, body.Details)
			assert.Empty(t, spin.authenticated)
		})
	}
}

func TestUpdatePreferences(t *testing.T) {
	auth := &fakeAuth{}
	h := NewHandler(HandlerDeps{Auth: auth, Spin: &fakeSpin{}})

	rec := serve(h.UpdatePreferences,
		`{"userId":"acc-1","preferences":{"auto":"kasko","home":"","travel":"all"}}`,
		"Authorization", "Bearer tok")
	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, dto.SuccessResponse{Success: true, Message: msgPrefsUpdated}, out)

	assert.Equal(t, "tok", auth.gotToken)
	assert.Equal(t, "acc-1", auth.gotAccount)
	assert.Equal(t, &model.PreferenceSelection{Auto: "kasko", Travel: "all"}, auth.gotPrefs)

	rec = serve(h.UpdatePreferences, `{"userId":"acc-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, auth.gotPrefs)
	assert.Empty(t, auth.gotToken)
}

func TestUpdatePreferences_Errors(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{model.ErrValidation, http.StatusBadRequest, msgMissingFields},
		{model.ErrUnauthorized, http.StatusUnauthorized, msgUnauthorized},
		{model.ErrProfileNotFound, http.StatusNotFound, msgProfileNotFound},
		{model.ErrUpstream, http.StatusInternalServerError, msgPrefsFailed},
	}

	for _, tt := range tests {
		h := NewHandler(HandlerDeps{Auth: &fakeAuth{prefsErr: tt.err}, Spin: &fakeSpin{}})

		rec := serve(h.UpdatePreferences, `{"userId":"acc-1","preferences":{}}`, "Authorization", "Bearer tok")
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		assert.Equal(t, tt.message, errorBody(t, rec).Error)
	}
}

func TestLogout(t *testing.T) {
	spin := &fakeSpin{}
	h := NewHandler(HandlerDeps{Auth: &fakeAuth{}, Spin: spin})

	rec := serve(h.Logout, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Len(t, spin.loggedOut, 1)
}
