package usecase

import (
	"context"
	"time"

	cryptoService "github.com/converso/piivault/internal/crypto/service"
	"github.com/converso/piivault/internal/database"
	apperrors "github.com/converso/piivault/internal/errors"
	tokensDomain "github.com/converso/piivault/internal/tokens/domain"
)

// secureTokenUseCase implements SecureTokenUseCase on top of a key gateway
// and a token repository.
type secureTokenUseCase struct {
	tokenRepo  TokenRepository
	keyGateway cryptoService.KeyGateway
	txManager  database.TxManager
}

// CreateSecureToken encrypts the plaintext bound to the freshly minted token
// id, the merchant and the data type, then persists the record.
func (s *secureTokenUseCase) CreateSecureToken(ctx context.Context, input CreateTokenInput) (string, error) {
	if input.Plaintext == "" {
		return "", tokensDomain.ErrEmptyPlaintext
	}
	if input.MerchantID == "" {
		return "", tokensDomain.ErrMissingMerchantID
	}
	if err := input.DataType.Validate(); err != nil {
		return "", err
	}

	tokenID, err := tokensDomain.NewTokenID(input.DataType)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to mint token id")
	}

	token := &tokensDomain.Token{
		TokenID:    tokenID,
		MerchantID: input.MerchantID,
		OwnerID:    input.OwnerID,
		DataType:   input.DataType,
		CreatedAt:  time.Now().UTC(),
	}
	if input.TTL > 0 {
		expiresAt := token.CreatedAt.Add(input.TTL)
		token.ExpiresAt = &expiresAt
	}

	encrypted, err := s.keyGateway.Encrypt(ctx, []byte(input.Plaintext), token.EncryptionContext(input.MerchantID))
	if err != nil {
		return "", err
	}
	token.EncryptedValue = encrypted

	if err := s.tokenRepo.Put(ctx, token); err != nil {
		return "", err
	}

	return tokenID, nil
}

// RetrieveFromToken loads the record for (tokenID, merchantID) and decrypts it
// with the caller's tenant binding. Expired records are deleted before the
// not-found result is returned, so expiry enforcement does not depend on the
// background cleanup having run. The read and the expiry delete run in one
// transaction so concurrent readers observe the record either alive or gone,
// never half-removed.
func (s *secureTokenUseCase) RetrieveFromToken(ctx context.Context, tokenID, merchantID string) (string, error) {
	if merchantID == "" {
		return "", tokensDomain.ErrMissingMerchantID
	}

	var token *tokensDomain.Token
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		loaded, err := s.tokenRepo.Get(txCtx, tokenID, merchantID)
		if err != nil {
			return err
		}
		if loaded.IsExpired() {
			// Returning nil commits the removal; an error here would roll the
			// delete back. The record is dead either way.
			_ = s.tokenRepo.Delete(txCtx, tokenID, merchantID)
			return nil
		}
		token = loaded
		return nil
	})
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", tokensDomain.ErrTokenNotFound
	}

	plaintext, err := s.keyGateway.Decrypt(ctx, token.EncryptedValue, token.EncryptionContext(merchantID))
	if err != nil {
		// A record that fails authentication is reported exactly like a
		// missing one.
		return "", tokensDomain.ErrTokenNotFound
	}

	return string(plaintext), nil
}

// DeleteToken removes a token for the given merchant.
func (s *secureTokenUseCase) DeleteToken(ctx context.Context, tokenID, merchantID string) error {
	if merchantID == "" {
		return tokensDomain.ErrMissingMerchantID
	}
	return s.tokenRepo.Delete(ctx, tokenID, merchantID)
}

// CleanupExpired deletes tokens that expired more than the specified number of
// days ago. Returns the number of deleted tokens. Use dryRun=true to preview
// the count without deletion.
func (s *secureTokenUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.New("days must be non-negative")
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	if dryRun {
		return s.tokenRepo.CountExpired(ctx, cutoff)
	}
	return s.tokenRepo.DeleteExpired(ctx, cutoff)
}

// NewSecureTokenUseCase creates a new SecureTokenUseCase with injected dependencies.
func NewSecureTokenUseCase(
	tokenRepo TokenRepository,
	keyGateway cryptoService.KeyGateway,
	txManager database.TxManager,
) SecureTokenUseCase {
	return &secureTokenUseCase{
		tokenRepo:  tokenRepo,
		keyGateway: keyGateway,
		txManager:  txManager,
	}
}
