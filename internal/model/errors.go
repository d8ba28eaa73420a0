package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation missing or malformed input, detected before any external call
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail the identity provider already knows the email
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUpstream network or provider failure
	ErrUpstream = errors.New("upstream failure")
	// ErrPartialWrite identity was created but the profile write failed; nothing is rolled back
	ErrPartialWrite    = errors.New("identity created but profile write failed")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmptyCatalog    = errors.New("insurer catalog is empty")
)

// Error codes reported by the identity provider.
const (
	CodeEmailExists             = "EMAIL_EXISTS"
	CodeEmailNotFound           = "EMAIL_NOT_FOUND"
	CodeInvalidPassword         = "INVALID_PASSWORD"
	CodeInvalidLoginCredentials = "INVALID_LOGIN_CREDENTIALS"
	CodeUserDisabled            = "USER_DISABLED"
)

// ProviderError is an error code reported by the identity or document backend.
type ProviderError struct {
	Status  int
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message != "" && e.Message != e.Code {
		return fmt.Sprintf("provider error %s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("provider error %s (%d)", e.Code, e.Status)
}

// AuthReason classified login failure
type AuthReason string

const (
	ReasonEmailNotFound      AuthReason = "email_not_found"
	ReasonInvalidPassword    AuthReason = "invalid_password"
	ReasonInvalidCredentials AuthReason = "invalid_credentials"
	ReasonUserDisabled       AuthReason = "user_disabled"
	ReasonUnknown            AuthReason = "unknown"
)

// AuthError credential mismatch, subdivided by the provider's reason code.
type AuthError struct {
	Reason AuthReason
	Code   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s (%s)", e.Reason, e.Code)
}

// GateError is returned when the play gate blocks a spin.
type GateError struct {
	State   GateState
	Message string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("play blocked: %s", e.State)
}

type CatalogError struct {
	Index  int
	Reason string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog entry %d: %s", e.Index, e.Reason)
}
