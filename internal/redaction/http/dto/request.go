// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
)

// RedactQueryRequest contains the free text to redact before it leaves the
// trust boundary.
type RedactQueryRequest struct {
	Text string `json:"text"`
}

// Validate checks if the redact query request is valid.
func (r *RedactQueryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text,
			validation.Required,
		),
	)
}

// SanitizeResponseRequest contains the model output to scrub.
type SanitizeResponseRequest struct {
	Text string `json:"text"`
}

// Validate checks if the sanitize response request is valid.
func (r *SanitizeResponseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text,
			validation.Required,
		),
	)
}

// SanitizeConversationRequest contains a conversation record to sanitize
// before archival.
type SanitizeConversationRequest struct {
	Conversation map[string]any `json:"conversation"`
}

// Validate checks if the sanitize conversation request is valid.
func (r *SanitizeConversationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Conversation,
			validation.Required,
		),
	)
}
