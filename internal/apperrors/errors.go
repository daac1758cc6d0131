package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrLoginFailed       = errors.New("email or password is incorrect")

	// Deliberately generic: cipher, signature and claim failures all collapse
	// into it so callers can't tell which check rejected the credential
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenExpired         = errors.New("token is expired")
	ErrTokenNotFound        = errors.New("token not found")
)
