package model

import (
	"errors"
	"fmt"
	"net/http"
)

type AuthError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

var (
	ErrInvalidCredentials = &AuthError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password"}
	ErrUsernameTaken      = &AuthError{Code: "USERNAME_TAKEN", Message: "Registration failed, the user may already exist"}
	ErrInvalidUsername    = &AuthError{Code: "INVALID_USERNAME", Message: "Username and password must not be blank"}
)

// NewSessionStoreError wraps a failure of the session backend.
func NewSessionStoreError(op string, err error) *AuthError {
	return &AuthError{
		Code:    "SESSION_STORE_ERROR",
		Message: fmt.Sprintf("Session store %s failed", op),
		Err:     err,
	}
}

func hasCode(err error, code string) bool {
	var aErr *AuthError
	return errors.As(err, &aErr) && aErr.Code == code
}

func IsInvalidCredentials(err error) bool { return hasCode(err, "INVALID_CREDENTIALS") }
func IsUsernameTaken(err error) bool      { return hasCode(err, "USERNAME_TAKEN") }
func IsInvalidUsername(err error) bool    { return hasCode(err, "INVALID_USERNAME") }

// MapErrorToHTTP maps an auth error to status, message and code.
func MapErrorToHTTP(err error) (int, string, string) {
	var aErr *AuthError
	switch {
	case IsInvalidCredentials(err):
		return http.StatusUnauthorized, ErrInvalidCredentials.Message, ErrInvalidCredentials.Code
	case IsUsernameTaken(err):
		return http.StatusBadRequest, ErrUsernameTaken.Message, ErrUsernameTaken.Code
	case IsInvalidUsername(err):
		return http.StatusBadRequest, ErrInvalidUsername.Message, ErrInvalidUsername.Code
	case errors.As(err, &aErr):
		return http.StatusInternalServerError, aErr.Message, aErr.Code
	default:
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}
}
