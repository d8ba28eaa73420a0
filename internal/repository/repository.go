package repository

import (
	"context"
	"errors"

	"tosipeli/internal/model"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// PlaySessionRepository volatile per-session play state.
// Unknown sessions read as the zero state.
type PlaySessionRepository interface {
	Get(ctx context.Context, sessionID string) (model.PlaySessionState, error)
	IncrementPlayCount(ctx context.Context, sessionID string) (int, error)
	SetAuthenticated(ctx context.Context, sessionID string, authenticated bool) error
}

// PreferenceRepository durable last-used preferences per device.
// Get returns nil when nothing has been stored.
type PreferenceRepository interface {
	Get(ctx context.Context, deviceID string) (*model.PreferenceSelection, error)
	Save(ctx context.Context, deviceID string, selection model.PreferenceSelection) error
}

type StatsRepository interface {
	Record(kind model.OutcomeKind)
	Stats() model.SpinStats
	// Drifted reports whether the window win rate is further than tolerance from target.
	Drifted(target, tolerance float64) bool
}

// IdentityRepository is the identity provider. Failures it knows about are
// reported as *model.ProviderError carrying the provider's code.
type IdentityRepository interface {
	SignUp(ctx context.Context, email, password string) (*model.Identity, error)
	SignIn(ctx context.Context, email, password string) (*model.Identity, error)
	// Verify resolves an id token to its account id.
	Verify(ctx context.Context, token string) (string, error)
}

// ProfileRepository is the document store. Records are keyed by account id;
// token is the caller's id token for backends that authorize per request.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, token string, profile *model.Profile) (string, error)
	GetProfileByAccount(ctx context.Context, token, accountID string) (*model.Profile, error)
	UpdatePreferences(ctx context.Context, token, accountID string, selection model.PreferenceSelection) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id string, err error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}
