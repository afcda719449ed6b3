package domain

import (
	"github.com/allisson/soulbound/internal/errors"
)

// Session error definitions.
var (
	ErrSessionNotFound      = errors.Wrap(errors.ErrNotFound, "session not found")
	ErrNotSessionOwner      = errors.Wrap(errors.ErrForbidden, "caller does not own the session")
	ErrSessionEnded         = errors.Wrap(errors.ErrInvalidState, "session has ended")
	ErrSessionExpired       = errors.Wrap(errors.ErrInvalidState, "session has expired")
	ErrSessionFull          = errors.Wrap(errors.ErrInvalidState, "session has reached its maximum mints")
	ErrInsufficientCapacity = errors.Wrap(errors.ErrInvalidState, "session does not have enough remaining capacity")
	ErrSessionIDCollision   = errors.Wrap(errors.ErrInvalidState, "session id collision")
	ErrInvalidMaxMints      = errors.Wrap(errors.ErrInvalidInput, "max mints must be greater than zero")
	ErrInvalidDuration      = errors.Wrap(errors.ErrInvalidInput, "duration must be greater than zero")
	ErrDurationTooLong      = errors.Wrap(errors.ErrInvalidInput, "duration exceeds the maximum session duration")
	ErrInvalidSessionID     = errors.Wrap(errors.ErrInvalidInput, "session id must be 0x followed by 64 hex digits")
)
