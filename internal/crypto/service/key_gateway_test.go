package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/converso/piivault/internal/crypto/domain"
	apperrors "github.com/converso/piivault/internal/errors"
)

// localKeyURI is a gocloud.dev localsecrets URI with a fixed test key.
const localKeyURI = "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="

// failingKeeper simulates an unreachable key service.
type failingKeeper struct{}

func (f *failingKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	return nil, errors.New("kms unreachable")
}

func (f *failingKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	return nil, errors.New("kms unreachable")
}

func newTestGateway(t *testing.T) KeyGateway {
	t.Helper()

	ctx := context.Background()
	keeper, err := NewKMSService().OpenKeeper(ctx, localKeyURI)
	require.NoError(t, err)

	gateway, err := NewKeyGateway(keeper, NewAEADManager(), cryptoDomain.AESGCM)
	require.NoError(t, err)
	return gateway
}

func TestKeyGateway_Encrypt(t *testing.T) {
	ctx := context.Background()
	gateway := newTestGateway(t)

	encCtx := cryptoDomain.EncryptionContext{
		TokenID:    "personal_0af1",
		MerchantID: "merchant-1",
		DataType:   "personal",
	}

	t.Run("RoundTrip", func(t *testing.T) {
		data, err := gateway.Encrypt(ctx, []byte("jane@example.com"), encCtx)
		require.NoError(t, err)

		plaintext, err := gateway.Decrypt(ctx, data, encCtx)
		require.NoError(t, err)
		assert.Equal(t, []byte("jane@example.com"), plaintext)
	})

	t.Run("FreshDataKeyPerCall", func(t *testing.T) {
		first, err := gateway.Encrypt(ctx, []byte("same value"), encCtx)
		require.NoError(t, err)
		second, err := gateway.Encrypt(ctx, []byte("same value"), encCtx)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("IncompleteContextRejected", func(t *testing.T) {
		_, err := gateway.Encrypt(ctx, []byte("value"), cryptoDomain.EncryptionContext{
			TokenID: "t", DataType: "personal",
		})
		assert.True(t, apperrors.Is(err, cryptoDomain.ErrIncompleteContext))
	})

	t.Run("KeeperFailureIsEncryptionError", func(t *testing.T) {
		gw, err := NewKeyGateway(&failingKeeper{}, NewAEADManager(), cryptoDomain.AESGCM)
		require.NoError(t, err)

		_, err = gw.Encrypt(ctx, []byte("value"), encCtx)
		assert.True(t, apperrors.Is(err, cryptoDomain.ErrEncryptionFailed))
		assert.True(t, apperrors.Is(err, apperrors.ErrUnavailable))
	})
}

func TestKeyGateway_Decrypt(t *testing.T) {
	ctx := context.Background()
	gateway := newTestGateway(t)

	encCtx := cryptoDomain.EncryptionContext{
		TokenID:    "payment_0af1",
		MerchantID: "merchant-1",
		DataType:   "payment",
	}

	encrypted, err := gateway.Encrypt(ctx, []byte("4111111111111111"), encCtx)
	require.NoError(t, err)

	t.Run("WrongMerchantFails", func(t *testing.T) {
		wrongMerchant := encCtx
		wrongMerchant.MerchantID = "merchant-2"

		_, err := gateway.Decrypt(ctx, encrypted, wrongMerchant)
		assert.True(t, apperrors.Is(err, cryptoDomain.ErrDecryptionFailed))
	})

	t.Run("WrongTokenIDFails", func(t *testing.T) {
		wrongToken := encCtx
		wrongToken.TokenID = "payment_ffff"

		_, err := gateway.Decrypt(ctx, encrypted, wrongToken)
		assert.True(t, apperrors.Is(err, cryptoDomain.ErrDecryptionFailed))
	})

	t.Run("WrongDataTypeFails", func(t *testing.T) {
		wrongType := encCtx
		wrongType.DataType = "personal"

		_, err := gateway.Decrypt(ctx, encrypted, wrongType)
		assert.True(t, apperrors.Is(err, cryptoDomain.ErrDecryptionFailed))
	})

	t.Run("GarbageDataIsInvalidEnvelope", func(t *testing.T) {
		_, err := gateway.Decrypt(ctx, []byte("not-an-envelope"), encCtx)
		assert.True(t, apperrors.Is(err, cryptoDomain.ErrInvalidEnvelope))
	})

	t.Run("TamperedEnvelopeFails", func(t *testing.T) {
		envelope, err := cryptoDomain.UnmarshalEnvelope(encrypted)
		require.NoError(t, err)

		envelope.Ciphertext[0] ^= 0xff
		_, err = gateway.Decrypt(ctx, envelope.Marshal(), encCtx)
		assert.True(t, apperrors.Is(err, cryptoDomain.ErrDecryptionFailed))
	})
}

func TestNewKeyGateway_UnsupportedAlgorithm(t *testing.T) {
	_, err := NewKeyGateway(&failingKeeper{}, NewAEADManager(), "des")
	assert.True(t, apperrors.Is(err, cryptoDomain.ErrUnsupportedAlgorithm))
}
