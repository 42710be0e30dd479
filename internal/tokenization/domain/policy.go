// Package domain defines the policy tables and result types for structural
// and payment tokenization.
package domain

// FieldPolicy describes how the payment tokenizer treats one field. A
// critical field's tokenization failure aborts the whole call; a non-critical
// failure is absorbed and reported.
type FieldPolicy struct {
	Field    string
	Critical bool
}

// PaymentFieldPolicies is the fixed, ordered policy table for payment
// records. Order determines tokenization order, which keeps results
// reproducible in tests.
var PaymentFieldPolicies = []FieldPolicy{
	{Field: "card_number", Critical: true},
	{Field: "cvv", Critical: true},
	{Field: "expiry_date", Critical: true},
	{Field: "payment_method_id", Critical: true},
	{Field: "billing_address", Critical: false},
	{Field: "cardholder_name", Critical: false},
}

// DefaultSensitiveKeys is the default allow-list of record keys whose scalar
// values the structural tokenizer replaces. Deployments override it through
// configuration.
var DefaultSensitiveKeys = []string{
	"email",
	"phone",
	"first_name",
	"firstName",
	"last_name",
	"lastName",
	"address",
	"ssn",
	"date_of_birth",
}
