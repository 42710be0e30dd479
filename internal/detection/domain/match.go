// Package domain defines the core types for PII pattern detection.
package domain

// PatternType identifies the kind of PII a match belongs to.
type PatternType string

const (
	PatternEmail         PatternType = "email"
	PatternPhone         PatternType = "phone"
	PatternSSN           PatternType = "ssn"
	PatternCreditCard    PatternType = "credit_card"
	PatternPaymentToken  PatternType = "payment_token"
	PatternStreetAddress PatternType = "street_address"
)

// String returns the string representation of the pattern type.
func (p PatternType) String() string {
	return string(p)
}

// Match represents a single PII occurrence found in text.
// StartIndex is inclusive and EndIndex is exclusive, both byte offsets.
type Match struct {
	Type        PatternType
	StartIndex  int
	EndIndex    int
	MatchedText string
}

// Len returns the length of the matched text in bytes.
func (m Match) Len() int {
	return m.EndIndex - m.StartIndex
}
