package middleware

import (
	"context"
	"net/http"

	"github.com/Lija868/invoice-gen/internal/handlers/render"
	"github.com/Lija868/invoice-gen/internal/handlers/userctx"
	"github.com/Lija868/invoice-gen/internal/messages"
	"github.com/Lija868/invoice-gen/internal/service/auth"
)

type authService interface {
	Authenticate(ctx context.Context, accessToken string) (auth.Identity, error)
}

// AuthMiddleware guards protected routes. The Authorization header value is
// the credential itself, taken verbatim: the same raw string is the session
// store lookup key on logout. Only cryptographic validity and expiry are
// checked here, the stored is_expired flag is not.
func AuthMiddleware(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				render.Code(w, http.StatusUnauthorized, messages.CodeTokenEmpty)
				return
			}

			identity, err := as.Authenticate(r.Context(), token)
			if err != nil {
				render.Code(w, http.StatusUnauthorized, messages.CodeUnauthorizedToken)
				return
			}

			ctx := userctx.New(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
