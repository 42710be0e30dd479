// Package usecase implements structural and payment tokenization business
// logic.
package usecase

import (
	"context"

	tokenizationDomain "github.com/converso/piivault/internal/tokenization/domain"
)

// UserDataTokenizer defines the interface for structural tokenization of
// arbitrary nested records. Pure CPU work; nothing is persisted.
type UserDataTokenizer interface {
	// TokenizeUserData walks the record and replaces non-empty scalar values
	// under sensitive keys with placeholders. The returned record mirrors the
	// input shape; the input itself is never mutated.
	TokenizeUserData(record map[string]any) (*tokenizationDomain.TokenizedUserData, error)
}

// PaymentTokenizer defines the interface for tokenizing fixed payment fields
// through the secure token service.
type PaymentTokenizer interface {
	// TokenizePaymentData replaces each present, non-empty target field with
	// a persisted payment token id. A critical field failure aborts the call
	// with a CriticalFieldError; non-critical failures leave the original
	// value in place and are listed in the result's FailedFields.
	TokenizePaymentData(
		ctx context.Context,
		record map[string]any,
		merchantID string,
		ownerID string,
	) (*tokenizationDomain.PaymentTokenizationResult, error)
}
