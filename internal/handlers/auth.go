package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Lija868/invoice-gen/internal/apperrors"
	"github.com/Lija868/invoice-gen/internal/handlers/render"
	"github.com/Lija868/invoice-gen/internal/handlers/userctx"
	"github.com/Lija868/invoice-gen/internal/logger"
	"github.com/Lija868/invoice-gen/internal/messages"
	"github.com/Lija868/invoice-gen/internal/service/auth"
)

func handleRegister(as authService, l logger.Logger) http.Handler {
	type RegisterRequest struct {
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required"`
		Username    string `json:"user_name" validate:"required"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		PhoneNumber string `json:"phone_number"`
	}
	type RegisterResponse struct {
		Code    int       `json:"code"`
		Message string    `json:"message"`
		UserID  uuid.UUID `json:"user_id"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[RegisterRequest](w, r)
		if err != nil {
			return
		}

		if !auth.ValidPassword(data.Password) {
			render.Code(w, http.StatusPreconditionFailed, messages.CodePasswordCriteria)
			return
		}

		user, err := as.Register(r.Context(), auth.RegisterParams{
			Email:       data.Email,
			Username:    data.Username,
			FirstName:   data.FirstName,
			LastName:    data.LastName,
			PhoneNumber: data.PhoneNumber,
			Password:    data.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserAlreadyExists):
				render.Code(w, http.StatusPreconditionFailed, messages.CodeEmailTaken)
			default:
				l.Error("user registration failed", "error", err.Error())
				render.Code(w, http.StatusInternalServerError, messages.CodeInternalError)
			}
			return
		}

		render.JSON(w, RegisterResponse{
			Code:    messages.CodeOK,
			Message: messages.Get(messages.CodeOK),
			UserID:  user.ID,
		})
	})
}

func handleLogin(as authService, l logger.Logger) http.Handler {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	type LoginResponse struct {
		Code         int       `json:"code"`
		Message      string    `json:"message"`
		AccessToken  string    `json:"access_token"`
		RefreshToken string    `json:"refresh_token"`
		UserID       uuid.UUID `json:"user_id"`
		Email        string    `json:"email"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[LoginRequest](w, r)
		if err != nil {
			return
		}

		user, pair, err := as.Login(r.Context(), data.Email, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.Code(w, http.StatusBadRequest, messages.CodeNoRecords)
			case errors.Is(err, apperrors.ErrLoginFailed):
				render.Code(w, http.StatusPreconditionFailed, messages.CodeLoginFailed)
			default:
				l.Error("login failed", "error", err.Error())
				render.Code(w, http.StatusInternalServerError, messages.CodeInternalError)
			}
			return
		}

		render.JSON(w, LoginResponse{
			Code:         messages.CodeOK,
			Message:      messages.Get(messages.CodeOK),
			AccessToken:  pair.Access,
			RefreshToken: pair.Refresh,
			UserID:       user.ID,
			Email:        user.Email,
		})
	})
}

func handleLogout(as authService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := userctx.FromContext(r.Context())
		if !ok {
			render.Code(w, http.StatusInternalServerError, messages.CodeInternalError)
			return
		}

		// The header value doubles as the session store lookup key
		accessToken := r.Header.Get("Authorization")

		err := as.Logout(r.Context(), accessToken, identity.UserID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.Code(w, http.StatusBadRequest, messages.CodeNoRecords)
			case errors.Is(err, apperrors.ErrTokenNotFound):
				render.Code(w, http.StatusInternalServerError, messages.CodeInternalError)
			default:
				l.Error("logout failed", "error", err.Error())
				render.Code(w, http.StatusInternalServerError, messages.CodeInternalError)
			}
			return
		}

		render.Code(w, http.StatusOK, messages.CodeOK)
	})
}
