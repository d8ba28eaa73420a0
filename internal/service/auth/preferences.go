package auth

import (
	"context"
	"errors"
	"fmt"

	"tosipeli/internal/model"
)

// UpdatePreferences stores the selection on the caller's own profile.
// Empty lines are stored as empty strings.
func (s *serv) UpdatePreferences(ctx context.Context, token, accountID string, sel *model.PreferenceSelection) error {
	if token == "" || accountID == "" || sel == nil {
		return fmt.Errorf("%w: missing required fields", model.ErrValidation)
	}
	if err := sel.Validate(); err != nil {
		return err
	}

	verified, err := s.identityRepo.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrUpstream) {
			return err
		}
		return fmt.Errorf("%w: %w", model.ErrUnauthorized, err)
	}
	if verified != accountID {
		s.logger.Warn().
			Str("token_account", verified).
			Str("requested_account", accountID).
			Msg("preference update for another account refused")
		return model.ErrUnauthorized
	}

	err = s.profileRepo.UpdatePreferences(ctx, token, accountID, *sel)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrProfileNotFound), errors.Is(err, model.ErrUnauthorized), errors.Is(err, model.ErrUpstream):
		return err
	default:
		return fmt.Errorf("%w: %w", model.ErrUpstream, err)
	}
}
