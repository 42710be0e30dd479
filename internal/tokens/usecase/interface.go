// Package usecase implements secure token business logic: encrypt-then-store
// on create, load-then-decrypt on retrieve, with lazy deletion of expired
// records.
package usecase

import (
	"context"
	"time"

	tokensDomain "github.com/converso/piivault/internal/tokens/domain"
)

// TokenRepository defines the interface for token persistence. All lookups
// are keyed by the composite (tokenID, merchantID).
type TokenRepository interface {
	Put(ctx context.Context, token *tokensDomain.Token) error

	// Get retrieves a token record. Returns ErrTokenNotFound when no record
	// exists for the composite key; a wrong-tenant lookup is indistinguishable
	// from a missing token.
	Get(ctx context.Context, tokenID, merchantID string) (*tokensDomain.Token, error)

	// Delete removes a token record. Deleting an absent token is not an error.
	Delete(ctx context.Context, tokenID, merchantID string) error

	// DeleteExpired deletes tokens that expired before the specified timestamp
	// and returns the number of deleted records. All timestamps are UTC.
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)

	// CountExpired counts tokens that expired before the specified timestamp
	// without deleting them. All timestamps are UTC.
	CountExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// CreateTokenInput carries the parameters for minting a secure token.
type CreateTokenInput struct {
	// Plaintext is the sensitive value to protect. Must not be empty.
	Plaintext string
	// DataType classifies the value and becomes the token id prefix.
	DataType tokensDomain.DataType
	// MerchantID is the owning tenant. Required.
	MerchantID string
	// OwnerID optionally identifies the end user the value belongs to.
	OwnerID string
	// TTL is how long the token stays retrievable. Zero means no expiry.
	TTL time.Duration
}

// SecureTokenUseCase defines the interface for secure token lifecycle
// operations.
type SecureTokenUseCase interface {
	// CreateSecureToken encrypts the plaintext bound to (tokenID, merchantID,
	// dataType), persists the record and returns the opaque token id. The
	// plaintext is never stored.
	CreateSecureToken(ctx context.Context, input CreateTokenInput) (string, error)

	// RetrieveFromToken returns the original plaintext for a token. A missing
	// record, a wrong-tenant lookup, an expired token and an undecryptable
	// record all return ErrTokenNotFound. Expired tokens are deleted on the
	// way out.
	RetrieveFromToken(ctx context.Context, tokenID, merchantID string) (string, error)

	// DeleteToken removes a token for the given merchant. Idempotent.
	DeleteToken(ctx context.Context, tokenID, merchantID string) error

	// CleanupExpired deletes tokens that expired more than the specified
	// number of days ago. Returns the number of deleted tokens. Use
	// dryRun=true to preview the count without deletion.
	CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}
