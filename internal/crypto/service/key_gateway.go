package service

import (
	"context"
	"crypto/rand"

	cryptoDomain "github.com/converso/piivault/internal/crypto/domain"
	apperrors "github.com/converso/piivault/internal/errors"
)

// envelopeGateway implements KeyGateway with two-tier envelope encryption:
// a fresh 256-bit data key per value, wrapped by the managed key service,
// while the value itself is encrypted locally with the data key and the
// encryption context as AAD. The master key never leaves the key service.
type envelopeGateway struct {
	keeper      Keeper
	aeadManager AEADManager
	algorithm   cryptoDomain.Algorithm
}

// NewKeyGateway creates a KeyGateway backed by the given keeper.
func NewKeyGateway(
	keeper Keeper,
	aeadManager AEADManager,
	algorithm cryptoDomain.Algorithm,
) (KeyGateway, error) {
	if err := algorithm.Validate(); err != nil {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	return &envelopeGateway{
		keeper:      keeper,
		aeadManager: aeadManager,
		algorithm:   algorithm,
	}, nil
}

// Encrypt envelope-encrypts plaintext bound to encCtx.
func (g *envelopeGateway) Encrypt(
	ctx context.Context,
	plaintext []byte,
	encCtx cryptoDomain.EncryptionContext,
) ([]byte, error) {
	if err := encCtx.Validate(); err != nil {
		return nil, err
	}

	// Fresh data key per value
	dataKey := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(dataKey); err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrEncryptionFailed, "failed to generate data key")
	}
	defer cryptoDomain.Zero(dataKey)

	wrappedKey, err := g.keeper.Encrypt(ctx, dataKey)
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrEncryptionFailed, err.Error())
	}

	cipher, err := g.aeadManager.CreateCipher(dataKey, g.algorithm)
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, err := cipher.Encrypt(plaintext, encCtx.AAD())
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrEncryptionFailed, err.Error())
	}

	envelope := cryptoDomain.Envelope{
		WrappedKey: wrappedKey,
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}
	return envelope.Marshal(), nil
}

// Decrypt reverses Encrypt. Any unwrap failure, context mismatch or tampering
// yields ErrDecryptionFailed without disclosing the cause.
func (g *envelopeGateway) Decrypt(
	ctx context.Context,
	data []byte,
	encCtx cryptoDomain.EncryptionContext,
) ([]byte, error) {
	if err := encCtx.Validate(); err != nil {
		return nil, err
	}

	envelope, err := cryptoDomain.UnmarshalEnvelope(data)
	if err != nil {
		return nil, err
	}

	dataKey, err := g.keeper.Decrypt(ctx, envelope.WrappedKey)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	defer cryptoDomain.Zero(dataKey)

	cipher, err := g.aeadManager.CreateCipher(dataKey, g.algorithm)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := cipher.Decrypt(envelope.Ciphertext, envelope.Nonce, encCtx.AAD())
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return plaintext, nil
}
