package env

import (
	"fmt"

	"tosipeli/internal/config"
)

const identityBackendEnvName = "IDENTITY_BACKEND"

type identityConfig struct {
	backend string
}

func NewIdentityConfig() (config.IdentityConfig, error) {
	backend := getOr(identityBackendEnvName, config.IdentityBackendPostgres)
	switch backend {
	case config.IdentityBackendPostgres, config.IdentityBackendFirebase:
	default:
		return nil, fmt.Errorf("unknown identity backend %q", backend)
	}

	return &identityConfig{backend: backend}, nil
}

func (cfg *identityConfig) Backend() string {
	return cfg.backend
}
