package env

import (
	"fmt"
	"os"
	"time"

	"tosipeli/internal/config"
)

const (
	refreshTokenDurationEnvName = "REFRESH_TOKEN_DURATION"
	accessTokenKeyEnvName       = "ACCESS_TOKEN"
	accessTokenDurationEnvName  = "ACCESS_TOKEN_DURATION"

	defaultAccessTokenDuration  = time.Hour
	defaultRefreshTokenDuration = 30 * 24 * time.Hour
)

type jwtConfig struct {
	refreshTokenDuration time.Duration
	accessTokenSecretKey string
	accessTokenDuration  time.Duration
}

// NewJWTConfig only the signing key is mandatory, token lifetimes have defaults.
func NewJWTConfig() (config.JWTConfig, error) {
	accessToken := os.Getenv(accessTokenKeyEnvName)
	if len(accessToken) == 0 {
		return nil, fmt.Errorf("access token secret key not found")
	}

	accessTokenDuration, err := durationOr(accessTokenDurationEnvName, defaultAccessTokenDuration)
	if err != nil {
		return nil, err
	}

	refreshTokenDuration, err := durationOr(refreshTokenDurationEnvName, defaultRefreshTokenDuration)
	if err != nil {
		return nil, err
	}

	return &jwtConfig{
		accessTokenSecretKey: accessToken,
		refreshTokenDuration: refreshTokenDuration,
		accessTokenDuration:  accessTokenDuration,
	}, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.accessTokenSecretKey)
}

func (j *jwtConfig) RefreshTokenDuration() time.Duration {
	return j.refreshTokenDuration
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.accessTokenDuration
}
