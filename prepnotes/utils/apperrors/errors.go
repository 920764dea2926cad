package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds for the notes service
var (
	// Identity errors
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("not allowed to access this resource")

	// ErrNotFound deliberately covers both "row does not exist" and
	// "row exists but belongs to someone else", so callers can never
	// probe for other users' note ids.
	ErrNotFound = errors.New("not found")

	// Input errors
	ErrInvalidID  = errors.New("invalid id format")
	ErrValidation = errors.New("invalid input")

	// Persistence errors
	ErrDatabase = errors.New("database operation failed")

	// Rate limiting errors
	ErrRateLimited = errors.New("too many requests")
)

// AppError wraps a kind with request-specific context
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New wraps a kind with a message
func New(kind error, message string) *AppError {
	return &AppError{Err: kind, Message: message}
}

// Newf wraps a kind with a formatted message
func Newf(kind error, format string, args ...any) *AppError {
	return &AppError{Err: kind, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error kind to the response status code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
