// Package domain defines the persisted secure-token model. A token is an
// opaque identifier that stands in for an encrypted PII value owned by a
// single merchant; the plaintext is only recoverable through the key gateway
// with the exact tenant binding used at mint time.
package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"

	cryptoDomain "github.com/converso/piivault/internal/crypto/domain"
)

// DataType classifies the kind of PII a token protects.
type DataType string

const (
	DataTypePersonal DataType = "personal"
	DataTypePayment  DataType = "payment"
)

// dataTypePattern constrains data types to short lowercase identifiers so the
// token id prefix stays unambiguous. The 31-char cap keeps the longest token
// id ("{dataType}_{32 hex}") within the store's 64-char token_id column.
var dataTypePattern = regexp.MustCompile(`^[a-z][a-z0-9]{0,30}$`)

// Validate checks if the data type is a usable token id prefix.
func (d DataType) Validate() error {
	if !dataTypePattern.MatchString(string(d)) {
		return ErrInvalidDataType
	}
	return nil
}

// String returns the string representation of the data type.
func (d DataType) String() string {
	return string(d)
}

// Token represents a persisted secure token record.
type Token struct {
	// TokenID has the form "{dataType}_{32 hex chars}" and is globally unique
	// by entropy; mint does not deduplicate against existing records.
	TokenID string
	// MerchantID is the owning tenant. All lookups are keyed by the composite
	// (TokenID, MerchantID).
	MerchantID string
	// OwnerID optionally identifies the end user the value belongs to.
	OwnerID string
	// DataType is the classification used in the encryption binding.
	DataType DataType
	// EncryptedValue is the serialized envelope produced by the key gateway.
	EncryptedValue []byte
	// CreatedAt is the UTC timestamp when the token was minted.
	CreatedAt time.Time
	// ExpiresAt marks when the token becomes logically dead (nil = no expiry).
	ExpiresAt *time.Time
}

// IsExpired checks if the token has expired. All time comparisons use UTC.
func (t *Token) IsExpired() bool {
	if t.ExpiresAt == nil {
		return false
	}
	return time.Now().UTC().After(t.ExpiresAt.UTC())
}

// EncryptionContext returns the binding triple for this token combined with
// the caller-supplied merchant id. Retrieval always binds to the caller's
// merchant, never to one embedded in the record, so a wrong tenant produces
// an authentication failure instead of a decrypt.
func (t *Token) EncryptionContext(merchantID string) cryptoDomain.EncryptionContext {
	return cryptoDomain.EncryptionContext{
		TokenID:    t.TokenID,
		MerchantID: merchantID,
		DataType:   t.DataType.String(),
	}
}

// NewTokenID mints a fresh token id of the form "{dataType}_{32 hex chars}".
// The suffix carries 128 bits of crypto/rand entropy; collisions are treated
// as acceptably improbable and are not checked against the store.
func NewTokenID(dataType DataType) (string, error) {
	suffix := make([]byte, 16)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}
	return fmt.Sprintf("%s_%s", dataType, hex.EncodeToString(suffix)), nil
}
