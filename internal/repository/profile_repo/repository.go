package profile_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tosipeli/internal/model"
	"tosipeli/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table               = "profiles"
	colID               = "id"
	colAccountID        = "account_id"
	colEmail            = "email"
	colSotu             = "sotu"
	colZip              = "zip"
	colPlate            = "plate"
	colHomeSize         = "home_size"
	colConsentStore     = "consent_store"
	colConsentMarketing = "consent_marketing"
	colConsentSale      = "consent_sale"
	colPrefAuto         = "pref_auto"
	colPrefHome         = "pref_home"
	colPrefTravel       = "pref_travel"
	colPrefUpdatedAt    = "preferences_updated_at"
	colCreatedAt        = "created_at"

	uniqueViolation = "23505"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc *pgxpool.Pool
}

// NewProfileRepository profiles keyed by account id; the token argument is unused
// because access is already checked by the local identity provider.
func NewProfileRepository(dbc *pgxpool.Pool) repository.ProfileRepository {
	return &repo{
		dbc: dbc,
	}
}

func (r *repo) CreateProfile(ctx context.Context, _ string, profile *model.Profile) (string, error) {
	id := uuid.NewString()

	query := psql.Insert(table).
		Columns(colID, colAccountID, colEmail, colSotu, colZip, colPlate, colHomeSize,
			colConsentStore, colConsentMarketing, colConsentSale).
		Values(id, profile.AccountID, profile.Email, profile.Sotu, profile.Zip, profile.Plate, profile.HomeSize,
			profile.ConsentStore, profile.ConsentMarketing, profile.ConsentSale).
		Suffix("RETURNING " + colCreatedAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return "", err
	}

	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(&profile.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("profile for %s: %w", profile.AccountID, repository.ErrAlreadyExists)
		}
		return "", err
	}

	profile.ID = id
	return id, nil
}

// GetProfileByAccount returns model.ErrProfileNotFound when the account has no profile
func (r *repo) GetProfileByAccount(ctx context.Context, _ string, accountID string) (*model.Profile, error) {
	query := psql.Select(colID, colAccountID, colEmail, colSotu, colZip, colPlate, colHomeSize,
		colConsentStore, colConsentMarketing, colConsentSale,
		colPrefAuto, colPrefHome, colPrefTravel, colCreatedAt).
		From(table).
		Where(sq.Eq{colAccountID: accountID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		p                  model.Profile
		prefAuto, prefHome *string
		prefTravel         *string
	)
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(
		&p.ID, &p.AccountID, &p.Email, &p.Sotu, &p.Zip, &p.Plate, &p.HomeSize,
		&p.ConsentStore, &p.ConsentMarketing, &p.ConsentSale,
		&prefAuto, &prefHome, &prefTravel, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	if prefAuto != nil || prefHome != nil || prefTravel != nil {
		p.Preferences = &model.PreferenceSelection{
			Auto:   deref(prefAuto),
			Home:   deref(prefHome),
			Travel: deref(prefTravel),
		}
	}

	return &p, nil
}

// UpdatePreferences returns model.ErrProfileNotFound when no row matched
func (r *repo) UpdatePreferences(ctx context.Context, _ string, accountID string, selection model.PreferenceSelection) error {
	query := psql.Update(table).
		Set(colPrefAuto, selection.Auto).
		Set(colPrefHome, selection.Home).
		Set(colPrefTravel, selection.Travel).
		Set(colPrefUpdatedAt, time.Now().UTC()).
		Where(sq.Eq{colAccountID: accountID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.dbc.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
