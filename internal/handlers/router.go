package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Lija868/invoice-gen/internal/handlers/middleware"
	"github.com/Lija868/invoice-gen/internal/logger"
	"github.com/Lija868/invoice-gen/internal/models"
	"github.com/Lija868/invoice-gen/internal/service/auth"
	"github.com/Lija868/invoice-gen/internal/service/invoice"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	invoiceService invoiceService,
	reportService reportService,
	l logger.Logger,
) http.Handler {
	authMiddleware := middleware.AuthMiddleware(authService)
	withAuth := func(h http.Handler) http.Handler {
		return authMiddleware(h)
	}

	mux := http.NewServeMux()

	mux.Handle("POST /register", handleRegister(authService, l))
	mux.Handle("POST /login", handleLogin(authService, l))
	mux.Handle("POST /logout", withAuth(handleLogout(authService, l)))

	mux.Handle("POST /invoice", withAuth(handleCreateInvoices(invoiceService, l)))
	mux.Handle("POST /invoice/generate-invoice", withAuth(handleGenerateInvoice(invoiceService, reportService, l)))

	return chain(mux,
		middleware.LoggerMiddleware(l),
	)
}

type authService interface {
	// Register user, has to return apperrors.ErrUserAlreadyExists on duplicate email
	Register(ctx context.Context, params auth.RegisterParams) (models.User, error)

	// Login user, rotate the stored token pair
	// Has to return apperrors.ErrUserNotFound for unknown or unverified email
	// and apperrors.ErrLoginFailed on password mismatch
	Login(ctx context.Context, email string, password string) (models.User, models.TokenPair, error)

	// Logout marks the stored access token as expired
	// Has to return apperrors.ErrTokenNotFound if no matching row exists
	Logout(ctx context.Context, accessToken string, userID uuid.UUID) error

	// Resolve a raw credential into an identity
	Authenticate(ctx context.Context, accessToken string) (auth.Identity, error)
}

type invoiceService interface {
	CreateBatch(ctx context.Context, userID uuid.UUID, lines []invoice.Line) ([]invoice.Line, error)
	Summarize(ctx context.Context, userID uuid.UUID) (invoice.Summary, error)
}

type reportService interface {
	Generate(userID uuid.UUID, summary invoice.Summary) (string, error)
}
