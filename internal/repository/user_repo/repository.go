package user_repo

import (
	"context"
	"errors"
	"fmt"

	"tosipeli/internal/model"
	"tosipeli/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table           = "users"
	colID           = "id"
	colEmail        = "email"
	colPasswordHash = "password_hash"
	colDisabled     = "disabled"
	colCreatedAt    = "created_at"

	uniqueViolation = "23505"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc *pgxpool.Pool
}

func NewUserRepository(dbc *pgxpool.Pool) repository.UserRepository {
	return &repo{
		dbc: dbc,
	}
}

// CreateUser inserts the user and returns the generated id.
// A taken email yields repository.ErrAlreadyExists.
func (r *repo) CreateUser(ctx context.Context, user *model.User) (string, error) {
	id := uuid.NewString()

	query := psql.Insert(table).
		Columns(colID, colEmail, colPasswordHash, colDisabled).
		Values(id, user.Email, user.PasswordHash, user.Disabled).
		Suffix("RETURNING " + colCreatedAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return "", err
	}

	err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).
		QueryRow(ctx, sqlStr, args...).
		Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("user %s: %w", user.Email, repository.ErrAlreadyExists)
		}
		return "", err
	}

	user.ID = id
	return id, nil
}

func (r *repo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, sq.Eq{colEmail: email})
}

func (r *repo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUser(ctx, sq.Eq{colID: id})
}

func (r *repo) getUser(ctx context.Context, where sq.Eq) (*model.User, error) {
	query := psql.Select(colID, colEmail, colPasswordHash, colDisabled, colCreatedAt).
		From(table).
		Where(where)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).
		QueryRow(ctx, sqlStr, args...).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Disabled, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}
