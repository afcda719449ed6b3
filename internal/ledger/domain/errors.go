package domain

import (
	"github.com/allisson/soulbound/internal/errors"
)

// Token Ledger error definitions.
var (
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	ErrAlreadyClaimedTemplate = errors.Wrap(errors.ErrInvalidState, "recipient already holds a credential for this template")
	ErrAlreadyClaimedSession  = errors.Wrap(errors.ErrInvalidState, "recipient already holds a credential from this session")
	ErrTokenAlreadyRevoked    = errors.Wrap(errors.ErrInvalidState, "token is already revoked")

	ErrNotTokenIssuer  = errors.Wrap(errors.ErrForbidden, "only the issuer or the administrator can revoke the token")
	ErrNonTransferable = errors.Wrap(errors.ErrForbidden, "credentials are non-transferable")

	ErrInvalidRecipient   = errors.Wrap(errors.ErrInvalidInput, "recipient must be a valid non-zero address")
	ErrEmptyBatch         = errors.Wrap(errors.ErrInvalidInput, "batch must contain at least one recipient")
	ErrBatchTooLarge      = errors.Wrap(errors.ErrInvalidInput, "batch exceeds the maximum size")
	ErrDuplicateRecipient = errors.Wrap(errors.ErrInvalidInput, "batch contains duplicate recipients")
)
