package repository

import (
	"fmt"
	"strings"

	tokensDomain "github.com/converso/piivault/internal/tokens/domain"
)

// storeError reports a driver failure as a token store outage while keeping
// the driver error in the chain for logs.
func storeError(err error, message string) error {
	return fmt.Errorf("%s: %w: %w", message, tokensDomain.ErrPersistenceFailed, err)
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// isMySQLDuplicateEntry checks if the error is a MySQL duplicate entry error.
func isMySQLDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
