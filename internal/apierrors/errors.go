// Package apierrors defines errors that are safe to return to API clients.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a client-facing error with an HTTP status and a public message.
// Cause holds the underlying error, if any, and is never sent to clients.
type APIError struct {
	HTTPCode int
	Message  string
	Cause    error
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// As extracts an *APIError from err's chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func newErr(code int, msg string) *APIError {
	return &APIError{HTTPCode: code, Message: msg}
}

// NewErrBadRequest is returned when required request fields are missing.
func NewErrBadRequest() *APIError {
	return newErr(http.StatusBadRequest, "Bad request")
}

// NewErrUsernameIsTaken is returned on registration with an existing username.
// Existing clients expect 400 for this conflict.
func NewErrUsernameIsTaken(username string) *APIError {
	return &APIError{
		HTTPCode: http.StatusBadRequest,
		Message:  "User already exists",
		Cause:    fmt.Errorf("username %q is already taken", username),
	}
}

// NewErrInvalidCredentials is returned for both an unknown username and a
// wrong password so callers cannot probe which usernames exist.
func NewErrInvalidCredentials() *APIError {
	return newErr(http.StatusForbidden, "Invalid username or password")
}

// NewErrRefreshTokenNotFound is returned when a refresh token is not registered.
func NewErrRefreshTokenNotFound() *APIError {
	return newErr(http.StatusForbidden, "Refresh token not found")
}

// NewErrRefreshTokenInvalid is returned when a registered refresh token fails verification.
func NewErrRefreshTokenInvalid(cause error) *APIError {
	return &APIError{HTTPCode: http.StatusForbidden, Message: "Refresh token invalid", Cause: cause}
}

// NewErrMissingAuthorizationToken is returned when no bearer token is present.
func NewErrMissingAuthorizationToken() *APIError {
	return newErr(http.StatusUnauthorized, "Missing authorization token")
}

// NewErrInvalidAuthorizationToken is returned when the bearer token fails verification.
func NewErrInvalidAuthorizationToken() *APIError {
	return newErr(http.StatusForbidden, "Invalid authorization token")
}

// NewErrUserNotFound is returned when a valid token refers to an unknown user.
func NewErrUserNotFound() *APIError {
	return newErr(http.StatusNotFound, "User not found.")
}

// NewErrInternalServerError wraps an unexpected failure.
func NewErrInternalServerError(err error) *APIError {
	return &APIError{HTTPCode: http.StatusInternalServerError, Message: "Internal server error", Cause: err}
}

// Write sends err to the client as a plain-text body. Errors that are not
// an *APIError become 500 without exposing their text.
func Write(w http.ResponseWriter, err error) {
	apiErr, ok := As(err)
	if !ok {
		apiErr = NewErrInternalServerError(err)
	}
	http.Error(w, apiErr.Message, apiErr.HTTPCode)
}
