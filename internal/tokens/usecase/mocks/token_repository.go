// Package mocks provides mock implementations for testing token use cases.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/converso/piivault/internal/crypto/domain"
	tokensDomain "github.com/converso/piivault/internal/tokens/domain"
)

// MockTokenRepository is a mock implementation of TokenRepository for testing.
type MockTokenRepository struct {
	mock.Mock
}

// Put mocks the Put method of TokenRepository.
func (m *MockTokenRepository) Put(ctx context.Context, token *tokensDomain.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// Get mocks the Get method of TokenRepository.
func (m *MockTokenRepository) Get(ctx context.Context, tokenID, merchantID string) (*tokensDomain.Token, error) {
	args := m.Called(ctx, tokenID, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokensDomain.Token), args.Error(1)
}

// Delete mocks the Delete method of TokenRepository.
func (m *MockTokenRepository) Delete(ctx context.Context, tokenID, merchantID string) error {
	args := m.Called(ctx, tokenID, merchantID)
	return args.Error(0)
}

// DeleteExpired mocks the DeleteExpired method of TokenRepository.
func (m *MockTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// CountExpired mocks the CountExpired method of TokenRepository.
func (m *MockTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockKeyGateway is a mock implementation of the crypto service KeyGateway
// for testing.
type MockKeyGateway struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of KeyGateway.
func (m *MockKeyGateway) Encrypt(
	ctx context.Context,
	plaintext []byte,
	encCtx cryptoDomain.EncryptionContext,
) ([]byte, error) {
	args := m.Called(ctx, plaintext, encCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Decrypt mocks the Decrypt method of KeyGateway.
func (m *MockKeyGateway) Decrypt(
	ctx context.Context,
	data []byte,
	encCtx cryptoDomain.EncryptionContext,
) ([]byte, error) {
	args := m.Called(ctx, data, encCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
