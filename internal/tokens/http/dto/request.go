// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	tokensDomain "github.com/converso/piivault/internal/tokens/domain"
	customValidation "github.com/converso/piivault/internal/validation"
)

// CreateTokenRequest contains the parameters for creating a secure token.
type CreateTokenRequest struct {
	Value      string `json:"value"`
	DataType   string `json:"data_type"` // "personal" or "payment"
	MerchantID string `json:"merchant_id"`
	OwnerID    string `json:"owner_id,omitempty"`
	TTL        *int   `json:"ttl,omitempty"` // Time-to-live in seconds (optional)
}

// Validate checks if the create token request is valid.
func (r *CreateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.DataType,
			validation.Required,
			customValidation.NotBlank,
			validation.By(validateDataType),
		),
		validation.Field(&r.MerchantID,
			validation.Required,
			customValidation.MerchantID,
		),
		validation.Field(&r.TTL,
			validation.When(r.TTL != nil, validation.Min(1)),
		),
	)
}

// RetrieveTokenRequest contains the parameters for retrieving the original
// value behind a token.
type RetrieveTokenRequest struct {
	TokenID    string `json:"token_id"`
	MerchantID string `json:"merchant_id"`
}

// Validate checks if the retrieve token request is valid.
func (r *RetrieveTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TokenID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.MerchantID,
			validation.Required,
			customValidation.MerchantID,
		),
	)
}

// DeleteTokenRequest contains the parameters for deleting a token.
type DeleteTokenRequest struct {
	TokenID    string `json:"token_id"`
	MerchantID string `json:"merchant_id"`
}

// Validate checks if the delete token request is valid.
func (r *DeleteTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TokenID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.MerchantID,
			validation.Required,
			customValidation.MerchantID,
		),
	)
}

// validateDataType validates that the data type is supported.
func validateDataType(value interface{}) error {
	dataType, ok := value.(string)
	if !ok {
		return validation.NewError("validation_data_type", "must be a string")
	}

	return tokensDomain.DataType(dataType).Validate()
}
