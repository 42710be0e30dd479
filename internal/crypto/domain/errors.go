package domain

import (
	"github.com/converso/piivault/internal/errors"
)

// Cryptographic operation error definitions.
var (
	// ErrEncryptionFailed indicates the key service was unreachable or rejected
	// the wrap request during encryption. This is raised, never swallowed, so
	// callers can distinguish an encryption outage from a missing record.
	ErrEncryptionFailed = errors.Wrap(errors.ErrUnavailable, "encryption failed")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// Wrong encryption context (including a wrong merchant), a tampered
	// ciphertext and a corrupted record all produce this same error. The
	// specific cause is deliberately not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	// Data keys must be exactly 32 bytes for both supported algorithms.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidEnvelope indicates a stored encrypted value could not be parsed.
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid envelope format")

	// ErrIncompleteContext indicates the encryption context is missing one of
	// its binding fields.
	ErrIncompleteContext = errors.Wrap(errors.ErrInvalidInput, "incomplete encryption context")
)
