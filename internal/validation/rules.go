// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/converso/piivault/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// MerchantID validates tenant identifiers: non-blank, no whitespace, and short
// enough for the composite store key.
var MerchantID = validation.NewStringRuleWithError(
	func(s string) bool {
		if s == "" || s != strings.TrimSpace(s) {
			return false
		}
		return len(s) <= 128 && !strings.ContainsAny(s, " \t\n")
	},
	validation.NewError("validation_merchant_id", "must be a valid merchant identifier"),
)
