// Package auth implements the credential lifecycle: user registration,
// login with access/refresh pair rotation, logout and request
// authentication.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/Lija868/invoice-gen/internal/apperrors"
	"github.com/Lija868/invoice-gen/internal/models"
	"github.com/Lija868/invoice-gen/internal/repository"
	"github.com/Lija868/invoice-gen/internal/service/auth/tokencodec"
)

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

// Identity is what a verified credential resolves to
type Identity struct {
	UserID  uuid.UUID
	IsAdmin bool
}

type RegisterParams struct {
	Email       string
	Username    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Password    string
}

type Service struct {
	hasher  PasswordHasher
	codec   *tokencodec.Codec
	storage repository.Storage
}

func NewService(hasher PasswordHasher, codec *tokencodec.Codec, storage repository.Storage) (*Service, error) {
	if hasher == nil {
		hasher = DefaultHasher
	}

	if codec == nil || storage == nil {
		return nil, errors.New("codec and storage must not be nil")
	}

	return &Service{
		hasher:  hasher,
		codec:   codec,
		storage: storage,
	}, nil
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (models.User, error) {
	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("can't use this as password. Err: %w", err)
	}

	user, err := s.storage.User().CreateUser(ctx, repository.CreateUserParams{
		Email:        params.Email,
		Username:     params.Username,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PhoneNumber:  params.PhoneNumber,
		PasswordHash: hash,
	})
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login verifies the credentials and issues a new access/refresh pair.
// Every pair issued earlier for the user is marked expired together with
// saving the new one, in a single transaction.
func (s *Service) Login(ctx context.Context, email string, password string) (models.User, models.TokenPair, error) {
	var pair models.TokenPair

	user, err := s.storage.User().GetVerifiedByEmail(ctx, email)
	if err != nil {
		return user, pair, err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return user, pair, apperrors.ErrLoginFailed
	}

	access, _, err := s.codec.Issue(user.ID, models.PurposeAccess, user.IsSuperuser)
	if err != nil {
		return user, pair, fmt.Errorf("error while issuing access token. Err: %w", err)
	}
	refresh, _, err := s.codec.Issue(user.ID, models.PurposeRefresh, user.IsSuperuser)
	if err != nil {
		return user, pair, fmt.Errorf("error while issuing refresh token. Err: %w", err)
	}

	now := time.Now()
	err = s.storage.InTx(ctx, func(s repository.Storage) error {
		if err := s.Token().ExpireAll(ctx, user.ID); err != nil {
			return err
		}

		_, err := s.Token().Save(ctx, models.Token{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  access,
			RefreshToken: refresh,
			IsExpired:    false,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		return err
	})
	if err != nil {
		return user, pair, fmt.Errorf("error while rotating token pair. Err: %w", err)
	}

	return user, models.TokenPair{Access: access, Refresh: refresh}, nil
}

// Logout marks the stored row holding the access token as expired.
// The token value is used for lookup exactly as it arrived, the credential
// itself stays cryptographically valid until its expiry.
func (s *Service) Logout(ctx context.Context, accessToken string, userID uuid.UUID) error {
	if _, err := s.storage.User().GetVerifiedByID(ctx, userID); err != nil {
		return err
	}

	return s.storage.Token().Invalidate(ctx, accessToken, userID)
}

// Authenticate resolves a raw credential into an identity.
// Validity is purely cryptographic and time based: the stored is_expired
// flag is not consulted here, logout is the only path that checks it.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (Identity, error) {
	decoded, err := s.codec.Decode(accessToken)
	if err != nil {
		return Identity{}, err
	}

	return Identity{UserID: decoded.UserID, IsAdmin: decoded.IsAdmin}, nil
}

// ValidPassword reports whether a password matches the account criteria:
// at least 8 characters with at least one letter and one digit
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasLetter && hasDigit
}
