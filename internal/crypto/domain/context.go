package domain

import (
	"strings"
)

// EncryptionContext is the binding triple for a token's ciphertext. Decryption
// succeeds only when the exact same triple is supplied: an attacker holding
// the ciphertext but the wrong merchant ID cannot decrypt.
type EncryptionContext struct {
	TokenID    string
	MerchantID string
	DataType   string
}

// Validate checks that every binding field is present.
func (c EncryptionContext) Validate() error {
	if c.TokenID == "" || c.MerchantID == "" || c.DataType == "" {
		return ErrIncompleteContext
	}
	return nil
}

// AAD returns the canonical additional-authenticated-data encoding of the
// context. The field order is part of the on-disk format and must not change.
func (c EncryptionContext) AAD() []byte {
	return []byte(strings.Join([]string{c.TokenID, c.MerchantID, c.DataType}, "|"))
}
