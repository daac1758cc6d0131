package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID
	Email          string
	Username       string
	FirstName      string
	LastName       string
	PhoneNumber    string
	HashedPassword string
	IsActive       bool
	IsVerified     bool
	IsSuperuser    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
