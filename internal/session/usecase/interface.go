// Package usecase implements the Session Manager: time and quantity bounded claim windows
// over a template, whose mint counter is advanced only by the Token Ledger.
package usecase

import (
	"context"
	"time"

	eventsDomain "github.com/allisson/soulbound/internal/events/domain"
	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
	templateDomain "github.com/allisson/soulbound/internal/template/domain"
)

// SessionRepository defines the interface for Session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, session *sessionDomain.Session) error
	Update(ctx context.Context, session *sessionDomain.Session) error
	Get(ctx context.Context, id string) (*sessionDomain.Session, error)
	GetForUpdate(ctx context.Context, id string) (*sessionDomain.Session, error)
	ListByTemplate(ctx context.Context, templateID int64, offset, limit int) ([]*sessionDomain.Session, error)
}

// Authorizer is the part of the Issuer Registry the Session Manager depends on.
type Authorizer interface {
	IsAuthorizedIssuer(ctx context.Context, address string) (bool, error)
	EnsureNotPaused(ctx context.Context) error
}

// TemplateReader resolves templates for session creation.
type TemplateReader interface {
	Get(ctx context.Context, id int64) (*templateDomain.Template, error)
}

// EventRecorder writes an event to the outbox within the current transaction.
type EventRecorder interface {
	Record(ctx context.Context, eventType eventsDomain.Type, payload any) error
}

// Config holds Session Manager settings.
type Config struct {
	// MaxDuration caps the duration of a new session. Zero disables the cap.
	MaxDuration time.Duration
}

// CreateInput describes a new session.
type CreateInput struct {
	TemplateID int64
	MaxMints   int64
	Duration   time.Duration
	Title      string
}

// SessionUseCase defines the interface for Session Manager business logic.
type SessionUseCase interface {
	Create(ctx context.Context, caller string, input CreateInput) (*sessionDomain.Session, error)
	// End closes a session for good. Only the issuer that created it may end it.
	End(ctx context.Context, caller string, id string) (*sessionDomain.Session, error)

	// Lock returns the session with its row locked for the rest of the enclosing transaction.
	Lock(ctx context.Context, id string) (*sessionDomain.Session, error)
	// IncrementMintCount adds one to the session's mint counter without a capacity check.
	// It must run inside the transaction that mints the token.
	IncrementMintCount(ctx context.Context, id string) (*sessionDomain.Session, error)

	Get(ctx context.Context, id string) (*sessionDomain.Session, error)
	// IsClaimable reports false for unknown sessions.
	IsClaimable(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context, id string) (*sessionDomain.Stats, error)
	ListByTemplate(ctx context.Context, templateID int64, offset, limit int) ([]*sessionDomain.Session, error)
}
