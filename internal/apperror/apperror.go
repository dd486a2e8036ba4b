package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	ErrConflict   = errors.New("conflict")
	ErrTimeout    = errors.New("timeout")
	ErrStorage    = errors.New("storage failure")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// UsernameTaken reports a duplicate username at user creation.
func UsernameTaken() *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: "Username already taken.",
		Field:   "username",
	}
}

// UserNotFound reports a userId that doesn't resolve to a stored user.
// Always non-nil, so callers never forward an empty lookup result as the
// error. Handlers map this to 400 with the historical "Invalid userId." body.
func UserNotFound(id string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "Invalid userId.",
		Field:   "userId",
	}
}

// Timeout reports that a request ran past its processing deadline.
func Timeout() *AppError {
	return &AppError{
		Err:     ErrTimeout,
		Message: "timeout",
	}
}

// Storage reports an underlying store failure without leaking its details
// to the client. The cause should be logged where the failure happened.
func Storage() *AppError {
	return &AppError{
		Err:     ErrStorage,
		Message: "Internal Server Error",
	}
}
