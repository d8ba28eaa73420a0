package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tosipeli/internal/model"
)

// Register creates the identity first and then the profile record.
// A profile write failure leaves the identity in place.
func (s *serv) Register(ctx context.Context, reg *model.Registration) (string, error) {
	if err := validateRegistration(reg); err != nil {
		s.metrics.ObserveRegistration("invalid")
		return "", err
	}

	identity, err := s.identityRepo.SignUp(ctx, reg.Email, reg.Password)
	if err != nil {
		var perr *model.ProviderError
		if errors.As(err, &perr) && perr.Code == model.CodeEmailExists {
			s.metrics.ObserveRegistration("duplicate")
			return "", fmt.Errorf("%w: %w", model.ErrDuplicateEmail, err)
		}

		s.metrics.ObserveRegistration("identity_failed")
		s.logger.Warn().Err(err).Msg("identity sign-up failed")
		if errors.Is(err, model.ErrUpstream) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", model.ErrUpstream, err)
	}

	profile := reg.Profile
	profile.AccountID = identity.AccountID
	profile.Email = identity.Email
	if profile.Email == "" {
		profile.Email = reg.Email
	}
	profile.CreatedAt = time.Now()

	id, err := s.profileRepo.CreateProfile(ctx, identity.Token, &profile)
	if err != nil {
		s.metrics.ObserveRegistration("partial_write")
		s.logger.Error().
			Err(err).
			Str("account_id", identity.AccountID).
			Msg("identity created but profile write failed")
		return "", fmt.Errorf("%w: %w", model.ErrPartialWrite, err)
	}

	s.metrics.ObserveRegistration("ok")
	s.leads.PublishLead(ctx, model.LeadEvent{
		ProfileID:        id,
		AccountID:        identity.AccountID,
		Zip:              profile.Zip,
		HomeSize:         profile.HomeSize,
		ConsentMarketing: profile.ConsentMarketing,
		ConsentSale:      profile.ConsentSale,
		CreatedAt:        profile.CreatedAt,
	})

	return id, nil
}

func validateRegistration(reg *model.Registration) error {
	if reg == nil {
		return fmt.Errorf("%w: missing required fields", model.ErrValidation)
	}

	required := []string{
		reg.Email,
		reg.Password,
		reg.Profile.Sotu,
		reg.Profile.Zip,
		reg.Profile.Plate,
		reg.Profile.HomeSize,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: missing required fields", model.ErrValidation)
		}
	}

	if !reg.Profile.ConsentStore {
		return fmt.Errorf("%w: consent to store data is required", model.ErrValidation)
	}

	if reg.Profile.Preferences != nil {
		if err := reg.Profile.Preferences.Validate(); err != nil {
			return err
		}
	}
	return nil
}
