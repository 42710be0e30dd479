// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	redactionDomain "github.com/converso/piivault/internal/redaction/domain"
)

// RedactQueryResponse represents the result of redacting a query.
type RedactQueryResponse struct {
	SanitizedText string            `json:"sanitized_text"`
	Tokens        map[string]string `json:"tokens"`
}

// MapRedactionResultToResponse converts a domain redaction result to an API response.
func MapRedactionResultToResponse(result *redactionDomain.RedactionResult) RedactQueryResponse {
	return RedactQueryResponse{
		SanitizedText: result.SanitizedText,
		Tokens:        result.Tokens,
	}
}

// SanitizeResponseResponse represents the result of sanitizing a model response.
type SanitizeResponseResponse struct {
	SanitizedText string `json:"sanitized_text"`
}

// RedactionSummaryResponse reports which fields were touched during
// conversation sanitization.
type RedactionSummaryResponse struct {
	FieldsRedacted   []string `json:"fields_redacted"`
	PIIPatternsFound int      `json:"pii_patterns_found"`
}

// SanitizeConversationResponse represents the result of sanitizing a
// conversation record.
type SanitizeConversationResponse struct {
	SanitizedConversation map[string]any           `json:"sanitized_conversation"`
	RedactionApplied      bool                     `json:"redaction_applied"`
	RedactionSummary      RedactionSummaryResponse `json:"redaction_summary"`
}

// MapConversationResultToResponse converts a domain sanitization result to an API response.
func MapConversationResultToResponse(
	result *redactionDomain.ConversationSanitizationResult,
) SanitizeConversationResponse {
	return SanitizeConversationResponse{
		SanitizedConversation: result.SanitizedConversation,
		RedactionApplied:      result.RedactionApplied,
		RedactionSummary: RedactionSummaryResponse{
			FieldsRedacted:   result.RedactionSummary.FieldsRedacted,
			PIIPatternsFound: result.RedactionSummary.PIIPatternsFound,
		},
	}
}
