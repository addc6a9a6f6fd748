package errors

import (
	"net/http"

	"passport/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-visible error message
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-visible error message
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error types. The messages are part of the wire contract:
// clients match on them, so they must stay stable.
var (
	// ErrMissingFields: a registration or login input field was empty.
	ErrMissingFields = NewBaseError(
		http.StatusBadRequest,
		"MISSING_FIELDS",
		"All fields are required",
	)

	// ErrUserExists: the account ID is already registered.
	ErrUserExists = NewBaseError(
		http.StatusBadRequest,
		"USER_EXISTS",
		"User already exists",
	)

	// ErrInvalidLogin covers unknown account, wrong password, and a corrupted
	// stored digest alike. Callers must not be able to tell which it was.
	ErrInvalidLogin = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_LOGIN",
		"Invalid login",
	)

	// ErrNoToken: the session check was called without a bearer token.
	ErrNoToken = NewBaseError(
		http.StatusUnauthorized,
		"NO_TOKEN",
		"No token provided",
	)

	// ErrInvalidToken: signature mismatch, malformed payload, expired token,
	// or the asserted account no longer exists.
	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid token",
	)

	// ErrInternal is the fallback for faults that must not leak details.
	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
	)
)
