package domain

import (
	"github.com/allisson/soulbound/internal/errors"
)

// Registry error definitions.
var (
	ErrIssuerNotFound          = errors.Wrap(errors.ErrNotFound, "issuer not found")
	ErrRegistryNotInitialized  = errors.Wrap(errors.ErrNotFound, "registry is not initialized")
	ErrIssuerAlreadyAuthorized = errors.Wrap(errors.ErrInvalidState, "issuer is already authorized")
	ErrCannotRemoveAdmin       = errors.Wrap(errors.ErrInvalidState, "the administrator cannot be removed")
	ErrAlreadyPaused           = errors.Wrap(errors.ErrInvalidState, "registry is already paused")
	ErrNotPaused               = errors.Wrap(errors.ErrInvalidState, "registry is not paused")
	ErrNotAdmin                = errors.Wrap(errors.ErrForbidden, "caller is not the administrator")
	ErrNotAuthorizedIssuer     = errors.Wrap(errors.ErrForbidden, "caller is not an authorized issuer")
	ErrRegistryPaused          = errors.Wrap(errors.ErrPaused, "registry is paused")
	ErrInvalidAddress          = errors.Wrap(errors.ErrInvalidInput, "address must be a valid non-zero address")
	ErrIssuerNameRequired      = errors.Wrap(errors.ErrInvalidInput, "issuer name is required")
	ErrSameAdmin               = errors.Wrap(errors.ErrInvalidInput, "new administrator is already the administrator")
)
