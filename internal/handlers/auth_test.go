package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/Lija868/invoice-gen/internal/logger"
	"github.com/Lija868/invoice-gen/internal/repository"
	"github.com/Lija868/invoice-gen/internal/repository/postgres"
	"github.com/Lija868/invoice-gen/internal/service/auth"
	"github.com/Lija868/invoice-gen/internal/service/auth/tokencodec"
	"github.com/Lija868/invoice-gen/internal/service/invoice"
	"github.com/Lija868/invoice-gen/internal/service/report"
	"github.com/Lija868/invoice-gen/internal/testutil"
)

// Run http server with production services attached, media dir in tmp
func withServer(pg testutil.PostgresContainer, t *testing.T, fn func(url string, authService *auth.Service, storage repository.Storage)) {
	t.Helper()

	testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
		codec, err := tokencodec.New(tokencodec.Config{SecretKey: "test-secret-key"})
		require.NoError(t, err, "codec should be created without errors")

		storage := postgres.NewStorage(tx)

		authService, err := auth.NewService(nil, codec, storage)
		require.NoError(t, err, "auth service should be created without errors")
		invoiceService := invoice.NewService(storage)
		reportService := report.NewService(t.TempDir(), "/media/")

		mux := NewRouter(authService, invoiceService, reportService, logger.NewNoOp())
		srv := httptest.NewServer(mux)
		defer srv.Close()

		fn(srv.URL, authService, storage)
	})
}

func postJSON(t *testing.T, url string, body string, token string) (int, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, string(respBody)
}

const registerBody = `{
	"email": "nk@example.com",
	"password": "StrongEnough1",
	"user_name": "nk",
	"first_name": "Nikolai",
	"last_name": "K",
	"phone_number": "+100000000"
}`

func registerAndLogin(t *testing.T, url string) (accessToken string, userID string) {
	t.Helper()

	code, _ := postJSON(t, url+"/register", registerBody, "")
	require.Equal(t, http.StatusOK, code)

	code, body := postJSON(t, url+"/login", `{"email": "nk@example.com", "password": "StrongEnough1"}`, "")
	require.Equal(t, http.StatusOK, code)

	var resp struct {
		AccessToken string `json:"access_token"`
		UserID      string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotEmpty(t, resp.AccessToken)

	return resp.AccessToken, resp.UserID
}

func Test_AuthHandlers(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("register ok", func(t *testing.T) {
		withServer(pg, t, func(url string, _ *auth.Service, _ repository.Storage) {
			code, body := postJSON(t, url+"/register", registerBody, "")

			require.Equalf(t, http.StatusOK, code, "not expected code. Body: %s", body)

			var resp struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
				UserID  string `json:"user_id"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &resp))
			require.Equal(t, 200, resp.Code)
			require.Equal(t, "Ok", resp.Message)
			require.NotEmpty(t, resp.UserID)
		})
	})

	t.Run("register missing fields", func(t *testing.T) {
		withServer(pg, t, func(url string, _ *auth.Service, _ repository.Storage) {
			code, body := postJSON(t, url+"/register", `{"email": "nk@example.com"}`, "")

			require.Equal(t, http.StatusPreconditionFailed, code)
			require.JSONEq(t, `
				{
					"code": 600,
					"message": "Validation failed.",
					"validations": [
						{"code": 305, "message": "Password cannot be null or empty."},
						{"code": 304, "message": "Username cannot be null or empty."}
					]
				}`, body)
		})
	})

	t.Run("register malformed email", func(t *testing.T) {
		withServer(pg, t, func(url string, _ *auth.Service, _ repository.Storage) {
			code, body := postJSON(t, url+"/register",
				`{"email": "not-an-email", "password": "StrongEnough1", "user_name": "nk"}`, "")

			require.Equal(t, http.StatusPreconditionFailed, code)
			require.JSONEq(t, `{"code": 604, "message": "Email is not valid."}`, body)
		})
	})

	t.Run("register weak password", func(t *testing.T) {
		withServer(pg, t, func(url string, _ *auth.Service, _ repository.Storage) {
			code, body := postJSON(t, url+"/register",
				`{"email": "nk@example.com", "password": "weak", "user_name": "nk"}`, "")

			require.Equal(t, http.StatusPreconditionFailed, code)
			require.JSONEq(t, `{"code": 618, "message": "Password doesn't match the criteria."}`, body)
		})
	})

	t.Run("register duplicate email", func(t *testing.T) {
		withServer(pg, t, func(url string, _ *auth.Service, _ repository.Storage) {
			code, _ := postJSON(t, url+"/register", registerBody, "")
			require.Equal(t, http.StatusOK, code)

			code, body := postJSON(t, url+"/register", registerBody, "")
			require.Equal(t, http.StatusPreconditionFailed, code)
			require.JSONEq(t, `{"code": 621, "message": "Email is already registered, try another Email."}`, body)
		})
	})

	t.Run("login ok", func(t *testing.T) {
		withServer(pg, t, func(url string, _ *auth.Service, storage repository.Storage) {
			access, _ := registerAndLogin(t, url)

			stored, err := storage.Token().GetByAccess(t.Context(), access)
			require.NoError(t, err, "access token value should be stored verbatim")
			require.False(t, stored.IsExpired)
		})
	})

	t.Run("login unknown email", func(t *testing.T) {
		withServer(pg, t, func(url string, _ *auth.Service, _ repository.Storage) {
			code, body := postJSON(t, url+"/login", `{"email": "missing@example.com", "password": "StrongEnough1"}`, "")

			require.Equal(t, http.StatusBadRequest, code)
			require.JSONEq(t, `{"code": 204, "message": "No Records found"}`, body)
		})
	})

	t.Run("login wrong password", func(t *testing.T) {
		withServer(pg, t, func(url string, _ *auth.Service, _ repository.Storage) {
			code, _ := postJSON(t, url+"/register", registerBody, "")
			require.Equal(t, http.StatusOK, code)

			code, body := postJSON(t, url+"/login", `{"email": "nk@example.com", "password": "WrongPassword1"}`, "")
			require.Equal(t, http.StatusPreconditionFailed, code)
			require.JSONEq(t, `{"code": 503, "message": "Login Failed. Username or password is incorrect."}`, body)
		})
	})

	t.Run("logout ok", func(t *testing.T) {
		withServer(pg, t, func(url string, _ *auth.Service, storage repository.Storage) {
			access, _ := registerAndLogin(t, url)

			code, body := postJSON(t, url+"/logout", "", access)
			require.Equal(t, http.StatusOK, code)
			require.JSONEq(t, `{"code": 200, "message": "Ok"}`, body)

			stored, err := storage.Token().GetByAccess(t.Context(), access)
			require.NoError(t, err)
			require.True(t, stored.IsExpired, "logout should expire the stored row")
		})
	})

	t.Run("logout without stored row", func(t *testing.T) {
		withServer(pg, t, func(url string, authService *auth.Service, storage repository.Storage) {
			access, _ := registerAndLogin(t, url)

			code, body := postJSON(t, url+"/logout", "", access)
			require.Equal(t, http.StatusOK, code)

			// Second logout still finds the (now expired) row, so delete it
			// to simulate a token that was never stored
			_, err := storage.Token().GetByAccess(t.Context(), access)
			require.NoError(t, err)

			identity, err := authService.Authenticate(t.Context(), access)
			require.NoError(t, err)

			err = authService.Logout(t.Context(), "never-stored", identity.UserID)
			require.Error(t, err)

			code, body = postJSON(t, url+"/logout", "", access)
			require.Equal(t, http.StatusOK, code, "row still exists, flipping the flag again is fine. Body: %s", body)
		})
	})

	t.Run("logout without header", func(t *testing.T) {
		withServer(pg, t, func(url string, _ *auth.Service, _ repository.Storage) {
			code, body := postJSON(t, url+"/logout", "", "")

			require.Equal(t, http.StatusUnauthorized, code)
			require.JSONEq(t, `{"code": 410, "message": "Token cannot be empty."}`, body)
		})
	})

	t.Run("logged out token still passes the gate", func(t *testing.T) {
		withServer(pg, t, func(url string, _ *auth.Service, _ repository.Storage) {
			access, _ := registerAndLogin(t, url)

			code, _ := postJSON(t, url+"/logout", "", access)
			require.Equal(t, http.StatusOK, code)

			// The gate checks the credential only, not the stored flag
			code, body := postJSON(t, url+"/invoice/generate-invoice", "", access)
			require.Equalf(t, http.StatusOK, code, "Body: %s", body)
		})
	})
}
