package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Lija868/invoice-gen/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If user with the same email exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)

	// Get user by email regardless of verification state
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	// Same lookups but restricted to verified users only
	// Login and logout must not see unverified accounts
	GetVerifiedByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetVerifiedByEmail(ctx context.Context, email string) (models.User, error)

	// Promote user to verified superuser
	SetSuperuser(ctx context.Context, userID uuid.UUID) error
}

// Token repository interface (the session store)
type TokenRepo interface {
	// Insert a freshly issued access/refresh pair
	Save(ctx context.Context, token models.Token) (models.Token, error)

	// Mark every row of the user as expired
	ExpireAll(ctx context.Context, userID uuid.UUID) error

	// Flip is_expired on the row matching token value and user
	// Must return apperrors.ErrTokenNotFound when no row matches
	Invalidate(ctx context.Context, accessToken string, userID uuid.UUID) error

	// Lookup by the raw access token value
	GetByAccess(ctx context.Context, accessToken string) (models.Token, error)
}

// Invoice repository interface
type InvoiceRepo interface {
	// Persist lines in one batch, all rows belong to the same user
	CreateBatch(ctx context.Context, invoices []models.Invoice) error

	// List user invoices in insertion order
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Invoice, error)
}

type CreateUserParams struct {
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PhoneNumber  string
	PasswordHash string
}

// Storage aggregates all repositories and runs functions in transactions
type Storage interface {
	User() UserRepo
	Token() TokenRepo
	Invoice() InvoiceRepo

	// InTx runs fn with a Storage bound to a single transaction.
	// Rolls back if fn returns an error, commits otherwise.
	InTx(ctx context.Context, fn func(Storage) error) error
}
