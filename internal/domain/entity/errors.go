package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the domain layer.
var (
	// ErrNotFound marks lookups for entities that do not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput marks inputs that fail basic shape checks.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed marks entities that violate a domain rule.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError carries the field that failed a domain rule so handlers
// can report it without string-parsing the error text.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
