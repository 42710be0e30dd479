// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/converso/piivault/internal/validation"
)

// TokenizeUserDataRequest contains a structured user record to tokenize.
type TokenizeUserDataRequest struct {
	Data map[string]any `json:"data"`
}

// Validate checks if the tokenize user data request is valid.
func (r *TokenizeUserDataRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Data,
			validation.Required,
		),
	)
}

// TokenizePaymentRequest contains a payment record to tokenize on behalf of a
// merchant.
type TokenizePaymentRequest struct {
	Record     map[string]any `json:"record"`
	MerchantID string         `json:"merchant_id"`
	OwnerID    string         `json:"owner_id,omitempty"`
}

// Validate checks if the tokenize payment request is valid.
func (r *TokenizePaymentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Record,
			validation.Required,
		),
		validation.Field(&r.MerchantID,
			validation.Required,
			customValidation.MerchantID,
		),
	)
}
