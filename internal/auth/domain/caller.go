// Package domain defines the authenticated caller of the API.
package domain

import (
	"time"

	"github.com/allisson/soulbound/internal/errors"
)

// Caller is the identity behind an authenticated request.
type Caller struct {
	Identity  string
	ExpiresAt time.Time
}

// Authentication errors.
var (
	// ErrMissingToken indicates the request carried no bearer token.
	ErrMissingToken = errors.Wrap(errors.ErrUnauthorized, "missing bearer token")

	// ErrInvalidToken indicates the bearer token is malformed, expired or signed with another key.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid bearer token")

	// ErrInvalidIdentity indicates an access token was requested for a malformed or zero identity.
	ErrInvalidIdentity = errors.Wrap(errors.ErrInvalidInput, "identity must be a valid non-zero address")
)
