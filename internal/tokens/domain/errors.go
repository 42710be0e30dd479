package domain

import (
	"github.com/converso/piivault/internal/errors"
)

var (
	// ErrTokenNotFound indicates the token does not exist for the given
	// merchant. A missing record, a wrong-tenant lookup, an expired token and
	// an undecryptable record all surface as this same error so callers
	// cannot probe other tenants' token space.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrInvalidDataType indicates the data type is not a usable token prefix.
	ErrInvalidDataType = errors.Wrap(errors.ErrInvalidInput, "invalid data type")

	// ErrMissingMerchantID indicates the tenant identifier was not supplied.
	ErrMissingMerchantID = errors.Wrap(errors.ErrInvalidInput, "merchant id is required")

	// ErrEmptyPlaintext indicates there is no value to protect.
	ErrEmptyPlaintext = errors.Wrap(errors.ErrInvalidInput, "plaintext must not be empty")

	// ErrPersistenceFailed indicates the token store could not complete a read
	// or write. Distinct from ErrTokenNotFound so a store outage is never
	// reported as a clean miss.
	ErrPersistenceFailed = errors.Wrap(errors.ErrUnavailable, "token store operation failed")

	// ErrTokenIDConflict indicates a freshly minted token id collided with an
	// existing record. With 128 bits of id entropy this only happens when
	// something upstream reuses ids.
	ErrTokenIDConflict = errors.Wrap(errors.ErrConflict, "token id already exists")
)
