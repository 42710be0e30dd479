// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	tokenizationDomain "github.com/converso/piivault/internal/tokenization/domain"
)

// TokenizeUserDataResponse represents the result of tokenizing a user record.
type TokenizeUserDataResponse struct {
	TokenizedData map[string]any `json:"tokenized_data"`
	TokenMap      map[string]any `json:"token_map"`
}

// MapUserDataResultToResponse converts a domain user data result to an API response.
func MapUserDataResultToResponse(result *tokenizationDomain.TokenizedUserData) TokenizeUserDataResponse {
	return TokenizeUserDataResponse{
		TokenizedData: result.TokenizedData,
		TokenMap:      result.TokenMap,
	}
}

// TokenMappingResponse records one payment field replaced by a stored token.
type TokenMappingResponse struct {
	Field              string `json:"field"`
	TokenID            string `json:"token_id"`
	DataClassification string `json:"data_classification"`
}

// TokenizePaymentResponse represents the result of tokenizing a payment record.
type TokenizePaymentResponse struct {
	TokenizedData map[string]any         `json:"tokenized_data"`
	TokenMappings []TokenMappingResponse `json:"token_mappings"`
	FailedFields  []string               `json:"failed_fields,omitempty"`
}

// MapPaymentResultToResponse converts a domain payment result to an API response.
func MapPaymentResultToResponse(
	result *tokenizationDomain.PaymentTokenizationResult,
) TokenizePaymentResponse {
	mappings := make([]TokenMappingResponse, 0, len(result.TokenMappings))
	for _, mapping := range result.TokenMappings {
		mappings = append(mappings, TokenMappingResponse{
			Field:              mapping.Field,
			TokenID:            mapping.TokenID,
			DataClassification: mapping.DataClassification,
		})
	}

	return TokenizePaymentResponse{
		TokenizedData: result.TokenizedData,
		TokenMappings: mappings,
		FailedFields:  result.FailedFields,
	}
}
