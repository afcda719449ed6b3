// Package identity defines the identity handle used for issuers, token owners and callers.
//
// An identity is a 20 byte account address written as "0x" followed by 40 hexadecimal
// characters. Handles are compared in their normalized lowercase form.
package identity

import (
	"regexp"
	"strings"
)

// Zero is the normalized zero address. It never denotes a real identity.
const Zero = "0x0000000000000000000000000000000000000000"

var addressRegex = regexp.MustCompile(`^0x[0-9a-f]{40}$`)

// Normalize trims surrounding whitespace and lowercases the handle.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsValid reports whether s is a well formed address. The zero address is well formed.
func IsValid(s string) bool {
	return addressRegex.MatchString(Normalize(s))
}

// IsZero reports whether s is empty or the zero address.
func IsZero(s string) bool {
	n := Normalize(s)
	return n == "" || n == Zero
}

// IsUsable reports whether s is a well formed, non-zero address.
func IsUsable(s string) bool {
	return IsValid(s) && !IsZero(s)
}
