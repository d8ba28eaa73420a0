package identity_repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"tosipeli/internal/model"
	"tosipeli/internal/repository"
	"tosipeli/pkg/pass"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func (m *fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

type fakeUsers struct {
	byEmail map[string]*model.User
	nextID  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*model.User{}}
}

func (f *fakeUsers) CreateUser(_ context.Context, user *model.User) (string, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return "", repository.ErrAlreadyExists
	}
	f.nextID++
	stored := *user
	stored.ID = "acc-" + string(rune('0'+f.nextID))
	f.byEmail[user.Email] = &stored
	return stored.ID, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeSessions struct {
	sessions []*model.Session
	err      error
}

func (f *fakeSessions) CreateSession(_ context.Context, s *model.Session) error {
	if f.err != nil {
		return f.err
	}
	f.sessions = append(f.sessions, s)
	return nil
}

type jwtConfig struct{}

func (jwtConfig) AccessTokenSecretKey() []byte        { return []byte("secret") }
func (jwtConfig) AccessTokenDuration() time.Duration  { return time.Hour }
func (jwtConfig) RefreshTokenDuration() time.Duration { return 24 * time.Hour }

func providerCode(t *testing.T, err error) string {
	t.Helper()
	var pe *model.ProviderError
	require.ErrorAs(t, err, &pe)
	return pe.Code
}

func TestSignUp_CreatesUserAndSession(t *testing.T) {
	users, sessions, tx := newFakeUsers(), &fakeSessions{}, &fakeTxManager{}
	r := NewIdentityRepository(tx, users, sessions, jwtConfig{})

	id, err := r.SignUp(context.Background(), " Matti@Example.fi ", "salasana")
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, "matti@example.fi", id.Email)
	assert.NotEmpty(t, id.Token)
	assert.NotEmpty(t, id.RefreshToken)
	assert.Equal(t, time.Hour, id.ExpiresIn)
	require.Len(t, sessions.sessions, 1)
	assert.NotEqual(t, id.RefreshToken, sessions.sessions[0].RefreshToken)

	stored := users.byEmail["matti@example.fi"]
	assert.True(t, pass.VerifyPassword(stored.PasswordHash, "salasana"))

	accountID, err := r.Verify(context.Background(), id.Token)
	require.NoError(t, err)
	assert.Equal(t, id.AccountID, accountID)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	r := NewIdentityRepository(&fakeTxManager{}, newFakeUsers(), &fakeSessions{}, jwtConfig{})

	_, err := r.SignUp(context.Background(), "a@b.fi", "x")
	require.NoError(t, err)

	_, err = r.SignUp(context.Background(), "A@B.fi", "y")
	assert.Equal(t, model.CodeEmailExists, providerCode(t, err))
}

func TestSignUp_SessionFailure(t *testing.T) {
	boom := errors.New("insert failed")
	r := NewIdentityRepository(&fakeTxManager{}, newFakeUsers(), &fakeSessions{err: boom}, jwtConfig{})

	_, err := r.SignUp(context.Background(), "a@b.fi", "x")
	assert.ErrorIs(t, err, boom)
}

func TestSignIn(t *testing.T) {
	users := newFakeUsers()
	r := NewIdentityRepository(&fakeTxManager{}, users, &fakeSessions{}, jwtConfig{})
	ctx := context.Background()

	created, err := r.SignUp(ctx, "a@b.fi", "right")
	require.NoError(t, err)

	id, err := r.SignIn(ctx, "a@b.fi", "right")
	require.NoError(t, err)
	assert.Equal(t, created.AccountID, id.AccountID)

	_, err = r.SignIn(ctx, "a@b.fi", "wrong")
	assert.Equal(t, model.CodeInvalidLoginCredentials, providerCode(t, err))

	_, err = r.SignIn(ctx, "nobody@b.fi", "right")
	assert.Equal(t, model.CodeInvalidLoginCredentials, providerCode(t, err))

	users.byEmail["a@b.fi"].Disabled = true
	_, err = r.SignIn(ctx, "a@b.fi", "right")
	assert.Equal(t, model.CodeUserDisabled, providerCode(t, err))
}

func TestVerify_RejectsGarbage(t *testing.T) {
	r := NewIdentityRepository(&fakeTxManager{}, newFakeUsers(), &fakeSessions{}, jwtConfig{})

	_, err := r.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
