// Package domain holds the error kinds shared by every aggregate package.
package domain

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("not found")

// ValidationError reports a violated entity invariant. The entity it was
// raised for is left unchanged.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError returns a ValidationError for the given entity field.
func NewValidationError(entity, field, reason string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError indicates a repository lookup matched no stored aggregate.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) hold for any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StorageError carries a failure from the storage collaborator. The original
// error is kept verbatim and reachable through errors.Is and errors.As.
type StorageError struct {
	Entity string
	Op     string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
