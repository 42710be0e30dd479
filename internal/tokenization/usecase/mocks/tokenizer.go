// Package mocks provides testify mocks for the tokenization use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	tokenizationDomain "github.com/converso/piivault/internal/tokenization/domain"
)

// MockUserDataTokenizer is a mock implementation of UserDataTokenizer for testing.
type MockUserDataTokenizer struct {
	mock.Mock
}

// TokenizeUserData mocks the TokenizeUserData method of UserDataTokenizer.
func (m *MockUserDataTokenizer) TokenizeUserData(
	record map[string]any,
) (*tokenizationDomain.TokenizedUserData, error) {
	args := m.Called(record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenizationDomain.TokenizedUserData), args.Error(1)
}

// MockPaymentTokenizer is a mock implementation of PaymentTokenizer for testing.
type MockPaymentTokenizer struct {
	mock.Mock
}

// TokenizePaymentData mocks the TokenizePaymentData method of PaymentTokenizer.
func (m *MockPaymentTokenizer) TokenizePaymentData(
	ctx context.Context,
	record map[string]any,
	merchantID, ownerID string,
) (*tokenizationDomain.PaymentTokenizationResult, error) {
	args := m.Called(ctx, record, merchantID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenizationDomain.PaymentTokenizationResult), args.Error(1)
}
