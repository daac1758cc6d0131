// Package tokencodec encodes and decodes the signed, time bounded
// credentials the API hands out. A credential is an HS256 JWT carrying the
// subject id, an issuance purpose ("access" or "refresh") and an admin flag,
// sealed with AES-GCM keyed from the same configured secret.
package tokencodec

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Lija868/invoice-gen/internal/apperrors"
	"github.com/Lija868/invoice-gen/internal/models"
)

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 24 * time.Hour
	defaultSigningMethod   = "HS256"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID  uuid.UUID `json:"uid"`
	Purpose string    `json:"purpose"`
	IsAdmin bool      `json:"is_admin"`
}

// Decoded is the verified content of a credential
type Decoded struct {
	UserID    uuid.UUID
	Purpose   string
	IsAdmin   bool
	ExpiresAt time.Time
}

type Config struct {
	// Secret key to sign and seal tokens
	// Required to be set
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Access and refresh token lifetimes
	// If not set than default is used
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Codec struct {
	key string

	// AES-256 key derived from the secret
	cipherKey []byte

	alg jwt.SigningMethod

	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(cfg Config) (*Codec, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.AccessTTL, defaultAccessTokenTTL)
	setDefaultDuration(&cfg.RefreshTTL, defaultRefreshTokenTTL)

	cipherKey := sha256.Sum256([]byte(cfg.SecretKey))

	return &Codec{
		key:        cfg.SecretKey,
		cipherKey:  cipherKey[:],
		alg:        jwt.GetSigningMethod(cfg.Alg),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

// Issue encodes a credential for the subject. TTL depends on the purpose:
// accessTTL for "access", refreshTTL for "refresh".
func (c *Codec) Issue(userID uuid.UUID, purpose string, isAdmin bool) (value string, expiresAt time.Time, err error) {
	now := time.Now().Truncate(time.Second)

	ttl := c.accessTTL
	if purpose == models.PurposeRefresh {
		ttl = c.refreshTTL
	}
	expiresAt = now.Add(ttl)

	token := jwt.NewWithClaims(
		c.alg,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			UserID:  userID,
			Purpose: purpose,
			IsAdmin: isAdmin,
		},
	)
	signed, err := token.SignedString([]byte(c.key))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error while signing token. Err: %w", err)
	}

	value, err = c.seal(signed)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error while sealing token. Err: %w", err)
	}

	return value, expiresAt, nil
}

// Decode unseals and verifies a credential.
// Expired credentials fail with apperrors.ErrTokenExpired, every other
// rejection (bad transport encoding, bad ciphertext, bad signature, wrong
// algorithm) fails with apperrors.ErrAuthenticationFailed without sub-reason.
func (c *Codec) Decode(value string) (Decoded, error) {
	signed, err := c.open(value)
	if err != nil {
		return Decoded{}, fmt.Errorf("token rejected: %w", apperrors.ErrAuthenticationFailed)
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(
		signed,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(c.key), nil },
		jwt.WithValidMethods([]string{c.alg.Alg()}),
		jwt.WithExpirationRequired(),
	)

	switch {
	case err == nil:
		return Decoded{
			UserID:    claims.UserID,
			Purpose:   claims.Purpose,
			IsAdmin:   claims.IsAdmin,
			ExpiresAt: claims.ExpiresAt.Time,
		}, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return Decoded{}, fmt.Errorf("token rejected: %w", apperrors.ErrTokenExpired)
	default:
		return Decoded{}, fmt.Errorf("token rejected: %w", apperrors.ErrAuthenticationFailed)
	}
}
