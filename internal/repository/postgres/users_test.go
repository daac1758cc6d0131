package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lija868/invoice-gen/internal/apperrors"
	"github.com/Lija868/invoice-gen/internal/models"
	"github.com/Lija868/invoice-gen/internal/repository"
	"github.com/Lija868/invoice-gen/internal/testutil"
)

func createTestUser(t *testing.T, repo repository.UserRepo, email string) models.User {
	t.Helper()

	user, err := repo.CreateUser(t.Context(), repository.CreateUserParams{
		Email:        email,
		Username:     "testuser",
		FirstName:    "Test",
		LastName:     "User",
		PhoneNumber:  "+100000000",
		PasswordHash: "hashed_password",
	})
	require.NoError(t, err, "user should be created without errors")
	return user
}

func Test_UserRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("create user", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := &UserRepo{DB: tx}

			user := createTestUser(t, repo, "nk@example.com")

			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Equal(t, "nk@example.com", user.Email)
			assert.Equal(t, "hashed_password", user.HashedPassword)
			assert.True(t, user.IsActive, "new users are active")
			assert.True(t, user.IsVerified, "new users are verified")
			assert.False(t, user.IsSuperuser, "new users are not superusers")
			assert.False(t, user.CreatedAt.IsZero())
		})
	})

	t.Run("duplicate email", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := &UserRepo{DB: tx}

			createTestUser(t, repo, "nk@example.com")

			_, err := repo.CreateUser(t.Context(), repository.CreateUserParams{
				Email:        "nk@example.com",
				PasswordHash: "other_hash",
			})
			require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
		})
	})

	t.Run("get by email", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := &UserRepo{DB: tx}

			created := createTestUser(t, repo, "nk@example.com")

			byEmail, err := repo.GetUserByEmail(t.Context(), "nk@example.com")
			require.NoError(t, err)
			assert.Equal(t, created.ID, byEmail.ID)

			_, err = repo.GetUserByEmail(t.Context(), "missing@example.com")
			require.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})

	t.Run("verified lookups skip unverified users", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := &UserRepo{DB: tx}

			created := createTestUser(t, repo, "nk@example.com")

			_, err := tx.Exec(t.Context(), "UPDATE users SET is_verified = false WHERE id = $1", created.ID)
			require.NoError(t, err)

			_, err = repo.GetVerifiedByEmail(t.Context(), "nk@example.com")
			require.ErrorIs(t, err, apperrors.ErrUserNotFound)

			_, err = repo.GetVerifiedByID(t.Context(), created.ID)
			require.ErrorIs(t, err, apperrors.ErrUserNotFound)

			// still reachable without the verified filter
			_, err = repo.GetUserByEmail(t.Context(), "nk@example.com")
			require.NoError(t, err)
		})
	})

	t.Run("set superuser", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := &UserRepo{DB: tx}

			created := createTestUser(t, repo, "nk@example.com")

			require.NoError(t, repo.SetSuperuser(t.Context(), created.ID))

			user, err := repo.GetUserByEmail(t.Context(), "nk@example.com")
			require.NoError(t, err)
			assert.True(t, user.IsSuperuser)
			assert.True(t, user.IsVerified)

			err = repo.SetSuperuser(t.Context(), uuid.New())
			require.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})
}
