// Package domain defines core types for envelope encryption of PII values.
// Each value is encrypted with a fresh data key that is itself wrapped by a
// managed key service, and the ciphertext is cryptographically bound to the
// owning tenant through additional authenticated data.
package domain

import (
	"errors"
)

// Algorithm defines the local data encryption algorithm.
type Algorithm string

const (
	// AESGCM is AES-256-GCM.
	AESGCM Algorithm = "aes-gcm"
	// ChaCha20 is ChaCha20-Poly1305.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the data key size in bytes (256 bits) for both algorithms.
const KeySize = 32

// Validate checks if the algorithm is supported.
func (a Algorithm) Validate() error {
	switch a {
	case AESGCM, ChaCha20:
		return nil
	default:
		return errors.New("unsupported algorithm")
	}
}

// String returns the string representation of the algorithm.
func (a Algorithm) String() string {
	return string(a)
}
