// Package errors defines the error categories shared by every soulbound module. Domain
// packages wrap one of these sentinels so the HTTP layer can pick a status code without
// knowing about templates, sessions or tokens.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: unknown issuer, template, session or token.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a uniqueness constraint was hit.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput: a request field failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized: the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden: the caller is known but may not perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidState: the target exists but is inactive, full, expired, revoked or already claimed.
	ErrInvalidState = errors.New("invalid state")
	// ErrPaused: the registry is paused and rejects mutations.
	ErrPaused = errors.New("paused")
)

// Wrap prefixes err with message, keeping it matchable with Is. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether err wraps target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
