package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// envelopeVersion tags the serialized envelope format.
const envelopeVersion = "v1"

// Envelope is the stored form of an encrypted value: the data key wrapped by
// the managed key service, the AEAD nonce, and the locally encrypted
// ciphertext (authentication tag included).
//
// The serialized format is "v1:wrapped-key-b64:nonce-b64:ciphertext-b64".
type Envelope struct {
	WrappedKey []byte
	Nonce      []byte
	Ciphertext []byte
}

// Marshal serializes the envelope to its stored byte representation.
func (e Envelope) Marshal() []byte {
	parts := []string{
		envelopeVersion,
		base64.StdEncoding.EncodeToString(e.WrappedKey),
		base64.StdEncoding.EncodeToString(e.Nonce),
		base64.StdEncoding.EncodeToString(e.Ciphertext),
	}
	return []byte(strings.Join(parts, ":"))
}

// UnmarshalEnvelope parses a stored envelope. Returns ErrInvalidEnvelope when
// the input does not have exactly four colon-separated parts, carries an
// unknown version, or contains invalid base64.
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	parts := strings.Split(string(data), ":")
	if len(parts) != 4 {
		return Envelope{}, fmt.Errorf("%w: expected 4 parts, got %d", ErrInvalidEnvelope, len(parts))
	}
	if parts[0] != envelopeVersion {
		return Envelope{}, fmt.Errorf("%w: unknown version %q", ErrInvalidEnvelope, parts[0])
	}

	wrappedKey, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: wrapped key is not valid base64", ErrInvalidEnvelope)
	}
	nonce, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: nonce is not valid base64", ErrInvalidEnvelope)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: ciphertext is not valid base64", ErrInvalidEnvelope)
	}

	return Envelope{
		WrappedKey: wrappedKey,
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}, nil
}
