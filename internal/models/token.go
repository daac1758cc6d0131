package models

import (
	"time"

	"github.com/google/uuid"
)

// Token purposes embedded into the credential claims
const (
	PurposeAccess  = "access"
	PurposeRefresh = "refresh"
)

// Token is a stored access/refresh pair. Rows are never deleted: issuing a
// new pair flips IsExpired on every older row of the same user.
type Token struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	AccessToken  string
	RefreshToken string
	IsExpired    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TokenPair is what login hands back to the client
type TokenPair struct {
	Access  string
	Refresh string
}
