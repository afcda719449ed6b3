// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/soulbound/internal/errors"
	"github.com/allisson/soulbound/internal/identity"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Address validates that a string is a well formed, non-zero identity address.
// Empty values are left to Required/NotBlank, as with the other string rules.
var Address = validation.NewStringRuleWithError(
	identity.IsUsable,
	validation.NewError("validation_address", "must be a valid non-zero address"),
)

// UniqueAddresses validates that a slice of addresses has no duplicates after normalization.
type UniqueAddresses struct{}

// Validate implements validation.Rule.
func (UniqueAddresses) Validate(value interface{}) error {
	addresses, ok := value.([]string)
	if !ok {
		return validation.NewError("validation_unique_addresses", "must be a list of addresses")
	}

	seen := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		n := identity.Normalize(a)
		if _, dup := seen[n]; dup {
			return validation.NewError("validation_unique_addresses", "must not contain duplicate addresses")
		}
		seen[n] = struct{}{}
	}
	return nil
}
