package usecase

import (
	"sort"

	redactionDomain "github.com/converso/piivault/internal/redaction/domain"
	tokenizationUsecase "github.com/converso/piivault/internal/tokenization/usecase"
)

// Free-text and structured field names the sanitizer inspects in a
// conversation record. Anything else passes through byte-for-byte.
var (
	defaultFreeTextFields   = []string{"user_message", "assistant_message"}
	defaultStructuredFields = []string{"context", "metadata"}
)

// conversationSanitizer implements ConversationSanitizer by combining the
// text redactor for free-text fields with the structural tokenizer for
// structured fields.
type conversationSanitizer struct {
	redactor         Redactor
	tokenizer        tokenizationUsecase.UserDataTokenizer
	freeTextFields   []string
	structuredFields []string
}

// SanitizeConversationLog sanitizes the designated fields of a conversation
// record and aggregates which fields were touched and how many PII patterns
// were found across all of them.
func (c *conversationSanitizer) SanitizeConversationLog(
	conversation map[string]any,
) (*redactionDomain.ConversationSanitizationResult, error) {
	sanitized := make(map[string]any, len(conversation))
	for key, value := range conversation {
		sanitized[key] = value
	}

	fieldsRedacted := make([]string, 0)
	patternsFound := 0

	for _, field := range c.freeTextFields {
		text, ok := sanitized[field].(string)
		if !ok || text == "" {
			continue
		}

		result, err := c.redactor.RedactQuery(text)
		if err != nil {
			return nil, err
		}
		if len(result.Tokens) == 0 {
			continue
		}

		sanitized[field] = result.SanitizedText
		fieldsRedacted = append(fieldsRedacted, field)
		patternsFound += len(result.Tokens)
	}

	for _, field := range c.structuredFields {
		record, ok := sanitized[field].(map[string]any)
		if !ok || len(record) == 0 {
			continue
		}

		result, err := c.tokenizer.TokenizeUserData(record)
		if err != nil {
			return nil, err
		}
		if len(result.TokenMap) == 0 {
			continue
		}

		sanitized[field] = result.TokenizedData
		fieldsRedacted = append(fieldsRedacted, field)
		patternsFound += len(result.TokenMap)
	}

	// Stable order for callers and tests regardless of field config order.
	sort.Strings(fieldsRedacted)

	return &redactionDomain.ConversationSanitizationResult{
		SanitizedConversation: sanitized,
		RedactionApplied:      len(fieldsRedacted) > 0,
		RedactionSummary: redactionDomain.RedactionSummary{
			FieldsRedacted:   fieldsRedacted,
			PIIPatternsFound: patternsFound,
		},
	}, nil
}

// NewConversationSanitizer creates a ConversationSanitizer over the default
// conversation field layout.
func NewConversationSanitizer(
	redactor Redactor,
	tokenizer tokenizationUsecase.UserDataTokenizer,
) ConversationSanitizer {
	return &conversationSanitizer{
		redactor:         redactor,
		tokenizer:        tokenizer,
		freeTextFields:   defaultFreeTextFields,
		structuredFields: defaultStructuredFields,
	}
}
