// Package dto provides data transfer objects for HTTP request and response handling.
package dto

// CreateTokenResponse represents the result of creating a secure token.
type CreateTokenResponse struct {
	TokenID string `json:"token_id"`
}

// RetrieveTokenResponse represents the result of retrieving a token's value.
type RetrieveTokenResponse struct {
	Value string `json:"value"`
}
