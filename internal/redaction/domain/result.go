// Package domain defines the result types for text redaction and
// conversation sanitization. All results are ephemeral and caller-owned;
// nothing in this package is persisted.
package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RedactedMarker is the fixed literal substituted for matches in outbound
// text, where reversibility is neither needed nor desired.
const RedactedMarker = "[REDACTED]"

// RedactionResult holds a sanitized text and the placeholder map needed to
// restore it. Placeholders are unique per call and never persisted unless the
// caller separately mints secure tokens from the captured values.
type RedactionResult struct {
	SanitizedText string
	// Tokens maps placeholder -> original matched text. Distinct matches of
	// the same literal value get distinct placeholders; there is no
	// deduplication.
	Tokens map[string]string
}

// RedactionSummary aggregates what a conversation sanitization touched.
type RedactionSummary struct {
	FieldsRedacted   []string `json:"fields_redacted"`
	PIIPatternsFound int      `json:"pii_patterns_found"`
}

// ConversationSanitizationResult is the outcome of sanitizing a conversation
// log. SanitizedConversation mirrors the input shape with free-text fields
// redacted and structured fields tokenized.
type ConversationSanitizationResult struct {
	SanitizedConversation map[string]any   `json:"sanitized_conversation"`
	RedactionApplied      bool             `json:"redaction_applied"`
	RedactionSummary      RedactionSummary `json:"redaction_summary"`
}

// NewPlaceholder mints a redaction placeholder of the form
// "[PII_TOKEN_{seq}_{8 hex chars}]". The sequence number reflects match order
// within a single call; the random suffix keeps placeholders from colliding
// with literal text.
func NewPlaceholder(seq int) (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate placeholder: %w", err)
	}
	return fmt.Sprintf("[PII_TOKEN_%d_%s]", seq, hex.EncodeToString(suffix)), nil
}
