package identity_repo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tosipeli/internal/config"
	"tosipeli/internal/model"
	"tosipeli/internal/repository"
	"tosipeli/pkg/pass"
	"tosipeli/pkg/token"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
)

// repo is the self-hosted identity provider backed by the users and sessions tables.
// It reports failures with the same codes as the hosted provider.
type repo struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	jwtConfig config.JWTConfig
}

func NewIdentityRepository(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	jwtConfig config.JWTConfig,
) repository.IdentityRepository {
	return &repo{
		txManager: txManager,
		userRepo:  userRepo,
		authRepo:  authRepo,
		jwtConfig: jwtConfig,
	}
}

func (r *repo) SignUp(ctx context.Context, email, password string) (*model.Identity, error) {
	email = normalizeEmail(email)

	passwordHash, err := pass.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Email: email, PasswordHash: passwordHash}

	var identity *model.Identity
	err = r.txManager.Do(ctx, func(ctx context.Context) error {
		user.ID, err = r.userRepo.CreateUser(ctx, user)
		if err != nil {
			return err
		}

		identity, err = r.openSession(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, &model.ProviderError{Status: http.StatusBadRequest, Code: model.CodeEmailExists}
		}
		return nil, err
	}

	return identity, nil
}

func (r *repo) SignIn(ctx context.Context, email, password string) (*model.Identity, error) {
	user, err := r.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if !pass.VerifyPassword(user.PasswordHash, password) {
		return nil, invalidCredentials()
	}
	if user.Disabled {
		return nil, &model.ProviderError{Status: http.StatusBadRequest, Code: model.CodeUserDisabled}
	}

	return r.openSession(ctx, user)
}

func (r *repo) Verify(_ context.Context, idToken string) (string, error) {
	claims, err := token.VerifyToken(idToken, r.jwtConfig.AccessTokenSecretKey())
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}
	return claims.Subject, nil
}

// openSession stores a refresh-token session and signs an id token for it
func (r *repo) openSession(ctx context.Context, user *model.User) (*model.Identity, error) {
	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	err = r.authRepo.CreateSession(ctx, &model.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		RefreshToken: token.HashRefreshToken(refreshToken),
		ExpiresAt:    time.Now().Add(r.jwtConfig.RefreshTokenDuration()),
	})
	if err != nil {
		return nil, err
	}

	ttl := r.jwtConfig.AccessTokenDuration()
	accessToken, err := token.GenerateAccessToken(user, r.jwtConfig.AccessTokenSecretKey(), ttl)
	if err != nil {
		return nil, err
	}

	return &model.Identity{
		AccountID:    user.ID,
		Email:        user.Email,
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    ttl,
	}, nil
}

// invalidCredentials unknown email and wrong password are not told apart
func invalidCredentials() error {
	return &model.ProviderError{Status: http.StatusBadRequest, Code: model.CodeInvalidLoginCredentials}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
