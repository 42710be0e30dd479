package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/converso/piivault/internal/tokens/usecase"
)

// MockSecureTokenUseCase is a mock implementation of SecureTokenUseCase for testing.
type MockSecureTokenUseCase struct {
	mock.Mock
}

// CreateSecureToken mocks the CreateSecureToken method of SecureTokenUseCase.
func (m *MockSecureTokenUseCase) CreateSecureToken(
	ctx context.Context,
	input usecase.CreateTokenInput,
) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

// RetrieveFromToken mocks the RetrieveFromToken method of SecureTokenUseCase.
func (m *MockSecureTokenUseCase) RetrieveFromToken(
	ctx context.Context,
	tokenID, merchantID string,
) (string, error) {
	args := m.Called(ctx, tokenID, merchantID)
	return args.String(0), args.Error(1)
}

// DeleteToken mocks the DeleteToken method of SecureTokenUseCase.
func (m *MockSecureTokenUseCase) DeleteToken(ctx context.Context, tokenID, merchantID string) error {
	args := m.Called(ctx, tokenID, merchantID)
	return args.Error(0)
}

// CleanupExpired mocks the CleanupExpired method of SecureTokenUseCase.
func (m *MockSecureTokenUseCase) CleanupExpired(
	ctx context.Context,
	days int,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
