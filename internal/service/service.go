package service

import (
	"context"

	"tosipeli/internal/model"
)

// SpinService is the play gate plus outcome engine.
type SpinService interface {
	// Status evaluates the gate for selection without consuming a play.
	Status(ctx context.Context, session model.PlaySession, selection model.PreferenceSelection) (*model.PlayStatus, error)
	// Play draws and commits one spin, or returns *model.GateError when blocked.
	Play(ctx context.Context, session model.PlaySession, selection model.PreferenceSelection) (*model.PlayResult, error)
	Authenticate(ctx context.Context, session model.PlaySession) error
	Logout(ctx context.Context, session model.PlaySession) error
	Catalog() []model.Insurer
}

// AuthService proxies registration and login to the identity and profile backends.
type AuthService interface {
	Register(ctx context.Context, registration *model.Registration) (id string, err error)
	Login(ctx context.Context, credentials model.Credentials) (*model.LoginResult, error)
	UpdatePreferences(ctx context.Context, token, accountID string, selection *model.PreferenceSelection) error
}
