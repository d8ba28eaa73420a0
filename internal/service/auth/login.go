package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tosipeli/internal/model"
)

func (s *serv) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		s.metrics.ObserveLogin("invalid")
		return nil, fmt.Errorf("%w: email and password required", model.ErrValidation)
	}

	identity, err := s.identityRepo.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		var perr *model.ProviderError
		if errors.As(err, &perr) {
			s.metrics.ObserveLogin("rejected")
			return nil, &model.AuthError{Reason: reasonFor(perr.Code), Code: perr.Code}
		}

		s.metrics.ObserveLogin("upstream_error")
		s.logger.Error().Err(err).Msg("identity sign-in failed")
		if errors.Is(err, model.ErrUpstream) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", model.ErrUpstream, err)
	}

	s.metrics.ObserveLogin("ok")

	return &model.LoginResult{
		Identity: *identity,
		Profile:  s.lookupProfile(ctx, identity),
	}, nil
}

// lookupProfile is best-effort: a missing or unreadable profile does not fail the login
func (s *serv) lookupProfile(ctx context.Context, identity *model.Identity) *model.Profile {
	profile, err := s.profileRepo.GetProfileByAccount(ctx, identity.Token, identity.AccountID)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			s.logger.Debug().Str("account_id", identity.AccountID).Msg("no profile for account")
		} else {
			s.logger.Warn().Err(err).Str("account_id", identity.AccountID).Msg("profile lookup failed")
		}
		return nil
	}
	return profile
}

func reasonFor(code string) model.AuthReason {
	switch code {
	case model.CodeEmailNotFound:
		return model.ReasonEmailNotFound
	case model.CodeInvalidPassword:
		return model.ReasonInvalidPassword
	case model.CodeInvalidLoginCredentials:
		return model.ReasonInvalidCredentials
	case model.CodeUserDisabled:
		return model.ReasonUserDisabled
	default:
		return model.ReasonUnknown
	}
}
