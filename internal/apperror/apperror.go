// Package apperror defines the error taxonomy shared by all layers.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes the web layer knows how to map.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// AppError carries a user-safe message alongside the sentinel it wraps.
// Internal causes never reach the response; handlers render Message only.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that a resource does not exist.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s %d not found", resource, id),
	}
}

// Validation joins every field violation into one user-facing message.
func Validation(violations []string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: strings.Join(violations, ", "),
	}
}

// Forbidden reports that the caller does not own the target resource.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthenticated reports that no signed-in user is attached to the request.
func Unauthenticated() *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: "You must be signed in",
	}
}
