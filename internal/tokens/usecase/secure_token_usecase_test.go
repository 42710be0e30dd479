package usecase_test

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	cryptoDomain "github.com/converso/piivault/internal/crypto/domain"
	"github.com/converso/piivault/internal/database"
	apperrors "github.com/converso/piivault/internal/errors"
	tokensDomain "github.com/converso/piivault/internal/tokens/domain"
	"github.com/converso/piivault/internal/tokens/usecase"
	"github.com/converso/piivault/internal/tokens/usecase/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSecureTokenUseCase_CreateSecureToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		mockGateway := &mocks.MockKeyGateway{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, mockGateway, database.NewNoopTxManager())

		var capturedCtx cryptoDomain.EncryptionContext
		mockGateway.On("Encrypt", ctx, []byte("jane@example.com"), mock.AnythingOfType("domain.EncryptionContext")).
			Run(func(args mock.Arguments) {
				capturedCtx = args.Get(2).(cryptoDomain.EncryptionContext)
			}).
			Return([]byte("encrypted"), nil).
			Once()

		var storedToken *tokensDomain.Token
		mockRepo.On("Put", ctx, mock.AnythingOfType("*domain.Token")).
			Run(func(args mock.Arguments) {
				storedToken = args.Get(1).(*tokensDomain.Token)
			}).
			Return(nil).
			Once()

		tokenID, err := useCase.CreateSecureToken(ctx, usecase.CreateTokenInput{
			Plaintext:  "jane@example.com",
			DataType:   tokensDomain.DataTypePersonal,
			MerchantID: "merchant-1",
			OwnerID:    "owner-1",
			TTL:        24 * time.Hour,
		})

		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^personal_[0-9a-f]{32}$`), tokenID)

		// The encryption binding must use the minted token id.
		assert.Equal(t, tokenID, capturedCtx.TokenID)
		assert.Equal(t, "merchant-1", capturedCtx.MerchantID)
		assert.Equal(t, "personal", capturedCtx.DataType)

		require.NotNil(t, storedToken)
		assert.Equal(t, tokenID, storedToken.TokenID)
		assert.Equal(t, "merchant-1", storedToken.MerchantID)
		assert.Equal(t, "owner-1", storedToken.OwnerID)
		assert.Equal(t, []byte("encrypted"), storedToken.EncryptedValue)
		require.NotNil(t, storedToken.ExpiresAt)
		assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), *storedToken.ExpiresAt, time.Minute)

		// The stored record never contains the plaintext.
		assert.NotContains(t, string(storedToken.EncryptedValue), "jane@example.com")

		mockRepo.AssertExpectations(t)
		mockGateway.AssertExpectations(t)
	})

	t.Run("ZeroTTLMeansNoExpiry", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		mockGateway := &mocks.MockKeyGateway{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, mockGateway, database.NewNoopTxManager())

		mockGateway.On("Encrypt", ctx, mock.Anything, mock.Anything).Return([]byte("encrypted"), nil).Once()

		var storedToken *tokensDomain.Token
		mockRepo.On("Put", ctx, mock.AnythingOfType("*domain.Token")).
			Run(func(args mock.Arguments) {
				storedToken = args.Get(1).(*tokensDomain.Token)
			}).
			Return(nil).
			Once()

		_, err := useCase.CreateSecureToken(ctx, usecase.CreateTokenInput{
			Plaintext:  "value",
			DataType:   tokensDomain.DataTypePayment,
			MerchantID: "merchant-1",
		})

		require.NoError(t, err)
		require.NotNil(t, storedToken)
		assert.Nil(t, storedToken.ExpiresAt)
	})

	t.Run("EmptyPlaintextRejected", func(t *testing.T) {
		useCase := usecase.NewSecureTokenUseCase(&mocks.MockTokenRepository{}, &mocks.MockKeyGateway{}, database.NewNoopTxManager())

		_, err := useCase.CreateSecureToken(ctx, usecase.CreateTokenInput{
			DataType:   tokensDomain.DataTypePersonal,
			MerchantID: "merchant-1",
		})
		assert.ErrorIs(t, err, tokensDomain.ErrEmptyPlaintext)
	})

	t.Run("MissingMerchantRejected", func(t *testing.T) {
		useCase := usecase.NewSecureTokenUseCase(&mocks.MockTokenRepository{}, &mocks.MockKeyGateway{}, database.NewNoopTxManager())

		_, err := useCase.CreateSecureToken(ctx, usecase.CreateTokenInput{
			Plaintext: "value",
			DataType:  tokensDomain.DataTypePersonal,
		})
		assert.ErrorIs(t, err, tokensDomain.ErrMissingMerchantID)
	})

	t.Run("InvalidDataTypeRejected", func(t *testing.T) {
		useCase := usecase.NewSecureTokenUseCase(&mocks.MockTokenRepository{}, &mocks.MockKeyGateway{}, database.NewNoopTxManager())

		_, err := useCase.CreateSecureToken(ctx, usecase.CreateTokenInput{
			Plaintext:  "value",
			DataType:   "Not Valid",
			MerchantID: "merchant-1",
		})
		assert.ErrorIs(t, err, tokensDomain.ErrInvalidDataType)
	})

	t.Run("EncryptFailurePropagates", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		mockGateway := &mocks.MockKeyGateway{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, mockGateway, database.NewNoopTxManager())

		mockGateway.On("Encrypt", ctx, mock.Anything, mock.Anything).
			Return(nil, cryptoDomain.ErrEncryptionFailed).
			Once()

		_, err := useCase.CreateSecureToken(ctx, usecase.CreateTokenInput{
			Plaintext:  "value",
			DataType:   tokensDomain.DataTypePersonal,
			MerchantID: "merchant-1",
		})

		assert.ErrorIs(t, err, cryptoDomain.ErrEncryptionFailed)
		mockRepo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})

	t.Run("PutFailurePropagates", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		mockGateway := &mocks.MockKeyGateway{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, mockGateway, database.NewNoopTxManager())

		mockGateway.On("Encrypt", ctx, mock.Anything, mock.Anything).Return([]byte("encrypted"), nil).Once()
		mockRepo.On("Put", ctx, mock.Anything).Return(apperrors.New("connection refused")).Once()

		_, err := useCase.CreateSecureToken(ctx, usecase.CreateTokenInput{
			Plaintext:  "value",
			DataType:   tokensDomain.DataTypePersonal,
			MerchantID: "merchant-1",
		})

		assert.Error(t, err)
	})
}

// spyTxManager runs fn inline while recording transaction boundaries.
type spyTxManager struct {
	calls int
	inTx  bool
}

func (s *spyTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	s.inTx = true
	defer func() { s.inTx = false }()
	return fn(ctx)
}

func TestSecureTokenUseCase_RetrieveFromToken(t *testing.T) {
	ctx := context.Background()

	newStoredToken := func(expiresAt *time.Time) *tokensDomain.Token {
		return &tokensDomain.Token{
			TokenID:        "personal_" + strings.Repeat("ab", 16),
			MerchantID:     "merchant-1",
			DataType:       tokensDomain.DataTypePersonal,
			EncryptedValue: []byte("encrypted"),
			CreatedAt:      time.Now().UTC(),
			ExpiresAt:      expiresAt,
		}
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		mockGateway := &mocks.MockKeyGateway{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, mockGateway, database.NewNoopTxManager())

		token := newStoredToken(nil)
		mockRepo.On("Get", ctx, token.TokenID, "merchant-1").Return(token, nil).Once()
		mockGateway.On("Decrypt", ctx, []byte("encrypted"), token.EncryptionContext("merchant-1")).
			Return([]byte("jane@example.com"), nil).
			Once()

		plaintext, err := useCase.RetrieveFromToken(ctx, token.TokenID, "merchant-1")

		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", plaintext)
	})

	t.Run("NotFoundPassesThrough", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, &mocks.MockKeyGateway{}, database.NewNoopTxManager())

		mockRepo.On("Get", ctx, "personal_missing", "merchant-1").
			Return(nil, tokensDomain.ErrTokenNotFound).
			Once()

		_, err := useCase.RetrieveFromToken(ctx, "personal_missing", "merchant-1")
		assert.ErrorIs(t, err, tokensDomain.ErrTokenNotFound)
	})

	t.Run("ExpiredTokenDeletedAndNotFound", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		mockGateway := &mocks.MockKeyGateway{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, mockGateway, database.NewNoopTxManager())

		pastExpiry := time.Now().UTC().Add(-time.Hour)
		token := newStoredToken(&pastExpiry)

		mockRepo.On("Get", ctx, token.TokenID, "merchant-1").Return(token, nil).Once()
		mockRepo.On("Delete", ctx, token.TokenID, "merchant-1").Return(nil).Once()

		_, err := useCase.RetrieveFromToken(ctx, token.TokenID, "merchant-1")

		assert.ErrorIs(t, err, tokensDomain.ErrTokenNotFound)
		mockRepo.AssertExpectations(t)
		mockGateway.AssertNotCalled(t, "Decrypt", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ExpiredTokenDeleteFailureStillNotFound", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, &mocks.MockKeyGateway{}, database.NewNoopTxManager())

		pastExpiry := time.Now().UTC().Add(-time.Hour)
		token := newStoredToken(&pastExpiry)

		mockRepo.On("Get", ctx, token.TokenID, "merchant-1").Return(token, nil).Once()
		mockRepo.On("Delete", ctx, token.TokenID, "merchant-1").
			Return(apperrors.New("connection refused")).
			Once()

		_, err := useCase.RetrieveFromToken(ctx, token.TokenID, "merchant-1")
		assert.ErrorIs(t, err, tokensDomain.ErrTokenNotFound)
	})

	t.Run("ReadAndExpiryDeleteShareOneTransaction", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		txManager := &spyTxManager{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, &mocks.MockKeyGateway{}, txManager)

		pastExpiry := time.Now().UTC().Add(-time.Hour)
		token := newStoredToken(&pastExpiry)

		mockRepo.On("Get", ctx, token.TokenID, "merchant-1").Return(token, nil).Once()
		mockRepo.On("Delete", ctx, token.TokenID, "merchant-1").
			Run(func(mock.Arguments) {
				assert.True(t, txManager.inTx, "expiry delete must run inside the transaction")
			}).
			Return(nil).
			Once()

		_, err := useCase.RetrieveFromToken(ctx, token.TokenID, "merchant-1")

		assert.ErrorIs(t, err, tokensDomain.ErrTokenNotFound)
		assert.Equal(t, 1, txManager.calls)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DecryptFailureLooksLikeNotFound", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		mockGateway := &mocks.MockKeyGateway{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, mockGateway, database.NewNoopTxManager())

		token := newStoredToken(nil)
		mockRepo.On("Get", ctx, token.TokenID, "merchant-1").Return(token, nil).Once()
		mockGateway.On("Decrypt", ctx, mock.Anything, mock.Anything).
			Return(nil, cryptoDomain.ErrDecryptionFailed).
			Once()

		_, err := useCase.RetrieveFromToken(ctx, token.TokenID, "merchant-1")
		assert.ErrorIs(t, err, tokensDomain.ErrTokenNotFound)
	})

	t.Run("MissingMerchantRejected", func(t *testing.T) {
		useCase := usecase.NewSecureTokenUseCase(&mocks.MockTokenRepository{}, &mocks.MockKeyGateway{}, database.NewNoopTxManager())

		_, err := useCase.RetrieveFromToken(ctx, "personal_abc", "")
		assert.ErrorIs(t, err, tokensDomain.ErrMissingMerchantID)
	})
}

func TestSecureTokenUseCase_DeleteToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, &mocks.MockKeyGateway{}, database.NewNoopTxManager())

		mockRepo.On("Delete", ctx, "personal_abc", "merchant-1").Return(nil).Once()

		err := useCase.DeleteToken(ctx, "personal_abc", "merchant-1")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MissingMerchantRejected", func(t *testing.T) {
		useCase := usecase.NewSecureTokenUseCase(&mocks.MockTokenRepository{}, &mocks.MockKeyGateway{}, database.NewNoopTxManager())

		err := useCase.DeleteToken(ctx, "personal_abc", "")
		assert.ErrorIs(t, err, tokensDomain.ErrMissingMerchantID)
	})
}

func TestSecureTokenUseCase_CleanupExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("DeletesExpiredTokens", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, &mocks.MockKeyGateway{}, database.NewNoopTxManager())

		mockRepo.On("DeleteExpired", ctx, mock.AnythingOfType("time.Time")).
			Return(int64(7), nil).
			Once()

		count, err := useCase.CleanupExpired(ctx, 30, false)
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})

	t.Run("DryRunOnlyCounts", func(t *testing.T) {
		mockRepo := &mocks.MockTokenRepository{}
		useCase := usecase.NewSecureTokenUseCase(mockRepo, &mocks.MockKeyGateway{}, database.NewNoopTxManager())

		mockRepo.On("CountExpired", ctx, mock.AnythingOfType("time.Time")).
			Return(int64(3), nil).
			Once()

		count, err := useCase.CleanupExpired(ctx, 30, true)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		mockRepo.AssertNotCalled(t, "DeleteExpired", mock.Anything, mock.Anything)
	})

	t.Run("NegativeDaysRejected", func(t *testing.T) {
		useCase := usecase.NewSecureTokenUseCase(&mocks.MockTokenRepository{}, &mocks.MockKeyGateway{}, database.NewNoopTxManager())

		_, err := useCase.CleanupExpired(ctx, -1, false)
		assert.Error(t, err)
	})
}
