package auth

import (
	"tosipeli/internal/events"
	"tosipeli/internal/metrics"
	"tosipeli/internal/repository"
	"tosipeli/internal/service"

	"github.com/rs/zerolog"
)

type serv struct {
	identityRepo repository.IdentityRepository
	profileRepo  repository.ProfileRepository
	leads        events.LeadPublisher
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

func NewAuthService(
	identityRepo repository.IdentityRepository,
	profileRepo repository.ProfileRepository,
	leads events.LeadPublisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) service.AuthService {
	if leads == nil {
		leads = events.NewNoop()
	}
	return &serv{
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
		leads:        leads,
		metrics:      m,
		logger:       logger.With().Str("component", "auth").Logger(),
	}
}
