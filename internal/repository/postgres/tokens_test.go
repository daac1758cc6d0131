package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lija868/invoice-gen/internal/apperrors"
	"github.com/Lija868/invoice-gen/internal/models"
	"github.com/Lija868/invoice-gen/internal/testutil"
)

func saveTestToken(t *testing.T, repo *TokenRepo, userID uuid.UUID, access string) models.Token {
	t.Helper()

	now := time.Now()
	token, err := repo.Save(t.Context(), models.Token{
		ID:           uuid.New(),
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: "refresh-" + access,
		IsExpired:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err, "token should be saved without errors")
	return token
}

func Test_TokenRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("save and get by access", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTestUser(t, &UserRepo{DB: tx}, "nk@example.com")
			repo := &TokenRepo{DB: tx}

			saved := saveTestToken(t, repo, user.ID, "access-1")

			got, err := repo.GetByAccess(t.Context(), "access-1")
			require.NoError(t, err)
			assert.Equal(t, saved.ID, got.ID)
			assert.Equal(t, user.ID, got.UserID)
			assert.False(t, got.IsExpired)

			_, err = repo.GetByAccess(t.Context(), "missing")
			require.ErrorIs(t, err, apperrors.ErrTokenNotFound)
		})
	})

	t.Run("expire all touches only the given user", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := &UserRepo{DB: tx}
			alice := createTestUser(t, users, "alice@example.com")
			bob := createTestUser(t, users, "bob@example.com")
			repo := &TokenRepo{DB: tx}

			saveTestToken(t, repo, alice.ID, "alice-1")
			saveTestToken(t, repo, alice.ID, "alice-2")
			saveTestToken(t, repo, bob.ID, "bob-1")

			require.NoError(t, repo.ExpireAll(t.Context(), alice.ID))

			for _, access := range []string{"alice-1", "alice-2"} {
				token, err := repo.GetByAccess(t.Context(), access)
				require.NoError(t, err)
				assert.True(t, token.IsExpired, "token %s should be expired", access)
			}

			token, err := repo.GetByAccess(t.Context(), "bob-1")
			require.NoError(t, err)
			assert.False(t, token.IsExpired, "other users tokens should stay live")
		})
	})

	t.Run("invalidate", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTestUser(t, &UserRepo{DB: tx}, "nk@example.com")
			repo := &TokenRepo{DB: tx}

			saveTestToken(t, repo, user.ID, "access-1")

			require.NoError(t, repo.Invalidate(t.Context(), "access-1", user.ID))

			token, err := repo.GetByAccess(t.Context(), "access-1")
			require.NoError(t, err)
			assert.True(t, token.IsExpired)
		})
	})

	t.Run("invalidate unknown token", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTestUser(t, &UserRepo{DB: tx}, "nk@example.com")
			repo := &TokenRepo{DB: tx}

			err := repo.Invalidate(t.Context(), "missing", user.ID)
			require.ErrorIs(t, err, apperrors.ErrTokenNotFound)
		})
	})

	t.Run("invalidate checks the owner", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := &UserRepo{DB: tx}
			alice := createTestUser(t, users, "alice@example.com")
			bob := createTestUser(t, users, "bob@example.com")
			repo := &TokenRepo{DB: tx}

			saveTestToken(t, repo, alice.ID, "alice-1")

			err := repo.Invalidate(t.Context(), "alice-1", bob.ID)
			require.ErrorIs(t, err, apperrors.ErrTokenNotFound)
		})
	})
}
