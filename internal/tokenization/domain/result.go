package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenizedUserData mirrors the shape of the input record with sensitive leaf
// values replaced by placeholders. Ephemeral; the placeholder map lives only
// as long as the caller keeps it.
type TokenizedUserData struct {
	TokenizedData map[string]any
	// TokenMap maps placeholder -> original value.
	TokenMap map[string]any
}

// TokenMapping records one persisted payment-field tokenization.
type TokenMapping struct {
	Field              string `json:"field"`
	TokenID            string `json:"token_id"`
	DataClassification string `json:"data_classification"`
}

// PaymentTokenizationResult is the outcome of tokenizing a payment record.
// Tokens referenced by TokenMappings are persisted through the secure token
// service; FailedFields lists non-critical fields whose value was left in
// place because tokenization failed.
type PaymentTokenizationResult struct {
	TokenizedData map[string]any `json:"tokenized_data"`
	TokenMappings []TokenMapping `json:"token_mappings"`
	FailedFields  []string       `json:"failed_fields,omitempty"`
}

// NewUserTokenPlaceholder mints a structural tokenizer placeholder of the
// form "[USER_TOKEN_{8 hex chars}]".
func NewUserTokenPlaceholder() (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate placeholder: %w", err)
	}
	return fmt.Sprintf("[USER_TOKEN_%s]", hex.EncodeToString(suffix)), nil
}
