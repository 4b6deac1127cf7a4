// Package apperr defines the error taxonomy shared by every workflow.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConflict          = errors.New("conflict")
	ErrPersistence       = errors.New("persistence failure")
)

// Recoverable reports whether an interactive workflow should re-prompt
// within the same step instead of aborting.
func Recoverable(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientStock)
}
