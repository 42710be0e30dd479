// Package service implements the key-management gateway: envelope encryption
// of short plaintexts bound to a tenant-scoped encryption context, with the
// data key wrapped by a managed key service.
package service

import (
	"context"

	cryptoDomain "github.com/converso/piivault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Keeper is the narrow view of the managed key service used to wrap and
// unwrap data keys. *secrets.Keeper from gocloud.dev implements it.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// KeyGateway encrypts and decrypts short plaintexts bound to an encryption
// context. Decryption fails unless the exact context used at encrypt time is
// supplied again.
type KeyGateway interface {
	// Encrypt envelope-encrypts plaintext under a fresh wrapped data key.
	// Returns ErrEncryptionFailed when the key service is unreachable or
	// rejects the request.
	Encrypt(ctx context.Context, plaintext []byte, encCtx cryptoDomain.EncryptionContext) ([]byte, error)

	// Decrypt reverses Encrypt. Returns ErrDecryptionFailed on any context
	// mismatch, tampering, or unwrap failure.
	Decrypt(ctx context.Context, data []byte, encCtx cryptoDomain.EncryptionContext) ([]byte, error)
}
