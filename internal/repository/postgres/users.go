package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Lija868/invoice-gen/internal/apperrors"
	"github.com/Lija868/invoice-gen/internal/models"
	"github.com/Lija868/invoice-gen/internal/repository"
)

type UserRepo struct {
	DB DBTX
}

const createUser = `-- name: CreateUser
INSERT INTO users (id, email, username, first_name, last_name, phone_number, password_hash, is_active, is_verified, is_superuser, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, true, true, false, $8, $8)
RETURNING id, email, username, first_name, last_name, phone_number, password_hash, is_active, is_verified, is_superuser, created_at, updated_at
`

func (r *UserRepo) CreateUser(ctx context.Context, arg repository.CreateUserParams) (models.User, error) {
	now := time.Now()
	rows, _ := r.DB.Query(ctx, createUser,
		uuid.New(), arg.Email, arg.Username, arg.FirstName, arg.LastName, arg.PhoneNumber, arg.PasswordHash, now)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return user, fmt.Errorf("repo error: %w", apperrors.ErrUserAlreadyExists)
		}
		return user, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const getUser = `-- name: GetUser
SELECT id, email, username, first_name, last_name, phone_number, password_hash, is_active, is_verified, is_superuser, created_at, updated_at
FROM users
`

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUser+"WHERE email = $1", email)
	return collectUser(rows)
}

func (r *UserRepo) GetVerifiedByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUser+"WHERE id = $1 AND is_verified", userID)
	return collectUser(rows)
}

func (r *UserRepo) GetVerifiedByEmail(ctx context.Context, email string) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUser+"WHERE email = $1 AND is_verified", email)
	return collectUser(rows)
}

const setSuperuser = `-- name: SetSuperuser
UPDATE users
SET is_superuser = true, is_verified = true, updated_at = now()
WHERE id = $1
RETURNING id
`

func (r *UserRepo) SetSuperuser(ctx context.Context, userID uuid.UUID) error {
	rows, _ := r.DB.Query(ctx, setSuperuser, userID)
	_, err := pgx.CollectOneRow(rows, pgx.RowTo[uuid.UUID])

	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("repo error: %w", apperrors.ErrUserNotFound)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

func collectUser(rows pgx.Rows) (models.User, error) {
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, fmt.Errorf("repo error: %w", apperrors.ErrUserNotFound)
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

func rowToUser(row pgx.CollectableRow) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.HashedPassword, &u.IsActive, &u.IsVerified, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}
