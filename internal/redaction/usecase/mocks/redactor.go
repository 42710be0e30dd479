// Package mocks provides testify mocks for the redaction use case interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	redactionDomain "github.com/converso/piivault/internal/redaction/domain"
)

// MockRedactor is a mock implementation of Redactor for testing.
type MockRedactor struct {
	mock.Mock
}

// RedactQuery mocks the RedactQuery method of Redactor.
func (m *MockRedactor) RedactQuery(text string) (*redactionDomain.RedactionResult, error) {
	args := m.Called(text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redactionDomain.RedactionResult), args.Error(1)
}

// SanitizeResponse mocks the SanitizeResponse method of Redactor.
func (m *MockRedactor) SanitizeResponse(text string) string {
	args := m.Called(text)
	return args.String(0)
}

// MockConversationSanitizer is a mock implementation of ConversationSanitizer for testing.
type MockConversationSanitizer struct {
	mock.Mock
}

// SanitizeConversationLog mocks the SanitizeConversationLog method of ConversationSanitizer.
func (m *MockConversationSanitizer) SanitizeConversationLog(
	conversation map[string]any,
) (*redactionDomain.ConversationSanitizationResult, error) {
	args := m.Called(conversation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redactionDomain.ConversationSanitizationResult), args.Error(1)
}
