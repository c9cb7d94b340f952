// Package errors holds the sentinel errors the HTTP layer maps to status codes.
// Domain errors wrap one of them so callers can use errors.Is across layers.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound maps to 404
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied maps to 403
	ErrAccessDenied = errors.New("access denied")

	// ErrConflict maps to 409
	ErrConflict = errors.New("conflict")
)

// NotFoundError names the missing record
func NotFoundError(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

// AccessDeniedError wraps ErrAccessDenied with a reason
func AccessDeniedError(reason string) error {
	if reason == "" {
		return ErrAccessDenied
	}
	return fmt.Errorf("%s: %w", reason, ErrAccessDenied)
}

// ConflictError wraps ErrConflict with a reason
func ConflictError(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrConflict)
}
