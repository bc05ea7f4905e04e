package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidArgument indicates a malformed argument, e.g. a month that is not YYYY-MM.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrPreconditionFailed indicates an operation that is not allowed on the target in its
// current form, such as mutating a projected transaction.
var ErrPreconditionFailed = errors.New("precondition failed")

// ErrUnavailable indicates that an optional external collaborator is not configured.
var ErrUnavailable = errors.New("service unavailable")

// AppError wraps an infrastructure failure together with the HTTP status it should map to.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
