package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Lija868/invoice-gen/internal/apperrors"
	"github.com/Lija868/invoice-gen/internal/models"
)

type TokenRepo struct {
	DB DBTX
}

const saveToken = `-- name: SaveToken
INSERT INTO tokens (id, user_id, access_token, refresh_token, is_expired, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_id, access_token, refresh_token, is_expired, created_at, updated_at
`

func (r *TokenRepo) Save(ctx context.Context, token models.Token) (models.Token, error) {
	rows, _ := r.DB.Query(ctx, saveToken,
		token.ID, token.UserID, token.AccessToken, token.RefreshToken, token.IsExpired, token.CreatedAt, token.UpdatedAt)
	saved, err := pgx.CollectOneRow(rows, rowToToken)
	if err != nil {
		return saved, fmt.Errorf("db error: %w", err)
	}
	return saved, nil
}

const expireAllTokens = `-- name: ExpireAllTokens
UPDATE tokens
SET is_expired = true, updated_at = $2
WHERE user_id = $1 AND NOT is_expired
`

func (r *TokenRepo) ExpireAll(ctx context.Context, userID uuid.UUID) error {
	_, err := r.DB.Exec(ctx, expireAllTokens, userID, time.Now())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const invalidateToken = `-- name: InvalidateToken
UPDATE tokens
SET is_expired = true, updated_at = $3
WHERE access_token = $1 AND user_id = $2
RETURNING id
`

// Invalidate the row holding the access token for the user.
// Lookup is by the raw token value, exactly as it arrived in the header.
func (r *TokenRepo) Invalidate(ctx context.Context, accessToken string, userID uuid.UUID) error {
	rows, _ := r.DB.Query(ctx, invalidateToken, accessToken, userID, time.Now())
	_, err := pgx.CollectOneRow(rows, pgx.RowTo[uuid.UUID])

	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("repo error: %w", apperrors.ErrTokenNotFound)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

const getTokenByAccess = `-- name: GetTokenByAccess
SELECT id, user_id, access_token, refresh_token, is_expired, created_at, updated_at
FROM tokens
WHERE access_token = $1
`

func (r *TokenRepo) GetByAccess(ctx context.Context, accessToken string) (models.Token, error) {
	rows, _ := r.DB.Query(ctx, getTokenByAccess, accessToken)
	token, err := pgx.CollectOneRow(rows, rowToToken)

	switch {
	case err == nil:
		return token, nil
	case errors.Is(err, pgx.ErrNoRows):
		return token, fmt.Errorf("repo error: %w", apperrors.ErrTokenNotFound)
	default:
		return token, fmt.Errorf("db error: %w", err)
	}
}

func rowToToken(row pgx.CollectableRow) (models.Token, error) {
	var t models.Token
	err := row.Scan(&t.ID, &t.UserID, &t.AccessToken, &t.RefreshToken, &t.IsExpired, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
