package domain

import (
	"fmt"
)

// CriticalFieldError reports that a critical payment field could not be
// tokenized. The whole tokenization call is aborted; no partially protected
// critical data is ever returned.
type CriticalFieldError struct {
	Field string
	Err   error
}

// Error names the failing field so callers and logs can identify it.
func (e *CriticalFieldError) Error() string {
	return fmt.Sprintf("critical payment field tokenization failed: %s", e.Field)
}

// Unwrap exposes the underlying cause so sentinel checks (unavailable,
// invalid input) keep working through the HTTP error mapping.
func (e *CriticalFieldError) Unwrap() error {
	return e.Err
}

// NewCriticalFieldError creates a CriticalFieldError for the given field.
func NewCriticalFieldError(field string, cause error) error {
	return &CriticalFieldError{Field: field, Err: cause}
}
