// Package usecase implements text redaction and conversation sanitization on
// top of the PII pattern detector.
package usecase

import (
	redactionDomain "github.com/converso/piivault/internal/redaction/domain"
)

// Redactor defines the interface for free-text redaction operations. Both
// operations are pure CPU work over the input text.
type Redactor interface {
	// RedactQuery replaces every detected PII match with a unique placeholder
	// and returns the placeholder map alongside the sanitized text. Text with
	// zero matches comes back unchanged with an empty map.
	RedactQuery(text string) (*redactionDomain.RedactionResult, error)

	// SanitizeResponse replaces every detected PII match with the fixed
	// "[REDACTED]" marker. For outbound text where reversal is not wanted.
	SanitizeResponse(text string) string
}

// ConversationSanitizer defines the interface for sanitizing structured
// conversation logs: free-text fields go through the redactor, structured
// fields through the structural tokenizer.
type ConversationSanitizer interface {
	SanitizeConversationLog(conversation map[string]any) (*redactionDomain.ConversationSanitizationResult, error)
}
