package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	tokenizationDomain "github.com/converso/piivault/internal/tokenization/domain"
	tokensDomain "github.com/converso/piivault/internal/tokens/domain"
	tokensUsecase "github.com/converso/piivault/internal/tokens/usecase"
)

// paymentTokenizer implements PaymentTokenizer by minting persisted tokens
// through the secure token service, consulting the per-field policy table for
// failure handling.
type paymentTokenizer struct {
	tokens   tokensUsecase.SecureTokenUseCase
	policies []tokenizationDomain.FieldPolicy
	tokenTTL time.Duration
}

// TokenizePaymentData replaces each present, non-empty target field with a
// payment token id. The policy table drives the failure mode per field.
func (p *paymentTokenizer) TokenizePaymentData(
	ctx context.Context,
	record map[string]any,
	merchantID string,
	ownerID string,
) (*tokenizationDomain.PaymentTokenizationResult, error) {
	if merchantID == "" {
		return nil, tokensDomain.ErrMissingMerchantID
	}

	tokenized := make(map[string]any, len(record))
	for key, value := range record {
		tokenized[key] = value
	}

	result := &tokenizationDomain.PaymentTokenizationResult{
		TokenizedData: tokenized,
		TokenMappings: []tokenizationDomain.TokenMapping{},
	}

	for _, policy := range p.policies {
		value, present := record[policy.Field]
		plaintext, ok := paymentFieldPlaintext(value)
		if !present || !ok {
			continue
		}

		tokenID, err := p.tokens.CreateSecureToken(ctx, tokensUsecase.CreateTokenInput{
			Plaintext:  plaintext,
			DataType:   tokensDomain.DataTypePayment,
			MerchantID: merchantID,
			OwnerID:    ownerID,
			TTL:        p.tokenTTL,
		})
		if err != nil {
			if policy.Critical {
				return nil, tokenizationDomain.NewCriticalFieldError(policy.Field, err)
			}
			// Non-critical: the field keeps its original value and the
			// failure is reported for the caller to apply its own policy.
			result.FailedFields = append(result.FailedFields, policy.Field)
			continue
		}

		tokenized[policy.Field] = tokenID
		result.TokenMappings = append(result.TokenMappings, tokenizationDomain.TokenMapping{
			Field:              policy.Field,
			TokenID:            tokenID,
			DataClassification: tokensDomain.DataTypePayment.String(),
		})
	}

	return result, nil
}

// paymentFieldPlaintext converts a payment field value into the plaintext to
// protect. Strings are taken as-is, numbers and bools formatted, and
// structured values (e.g. a billing_address object) serialized as JSON.
func paymentFieldPlaintext(value any) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", false
	case string:
		return typed, typed != ""
	case map[string]any, []any:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return "", false
		}
		return string(encoded), true
	default:
		return fmt.Sprint(typed), true
	}
}

// NewPaymentTokenizer creates a PaymentTokenizer with the fixed payment field
// policy table. Tokens are minted with the given TTL; zero means no expiry.
func NewPaymentTokenizer(tokens tokensUsecase.SecureTokenUseCase, tokenTTL time.Duration) PaymentTokenizer {
	if tokenTTL < 0 {
		tokenTTL = 0
	}
	return &paymentTokenizer{
		tokens:   tokens,
		policies: tokenizationDomain.PaymentFieldPolicies,
		tokenTTL: tokenTTL,
	}
}
