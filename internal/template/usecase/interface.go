// Package usecase implements the Template Store: creation by authorized issuers and
// owner-only edits and activation toggles.
package usecase

import (
	"context"

	eventsDomain "github.com/allisson/soulbound/internal/events/domain"
	templateDomain "github.com/allisson/soulbound/internal/template/domain"
)

// TemplateRepository defines the interface for Template persistence operations.
type TemplateRepository interface {
	Create(ctx context.Context, template *templateDomain.Template) error
	Update(ctx context.Context, template *templateDomain.Template) error
	Get(ctx context.Context, id int64) (*templateDomain.Template, error)
	GetForUpdate(ctx context.Context, id int64) (*templateDomain.Template, error)
	ListByIssuer(ctx context.Context, issuer string, offset, limit int) ([]*templateDomain.Template, error)
}

// Authorizer is the part of the Issuer Registry the Template Store depends on.
type Authorizer interface {
	IsAuthorizedIssuer(ctx context.Context, address string) (bool, error)
	EnsureNotPaused(ctx context.Context) error
}

// EventRecorder writes an event to the outbox within the current transaction.
type EventRecorder interface {
	Record(ctx context.Context, eventType eventsDomain.Type, payload any) error
}

// TemplateInput carries the editable text of a template.
type TemplateInput struct {
	Name        string
	Description string
}

// TemplateUseCase defines the interface for Template Store business logic.
type TemplateUseCase interface {
	Create(ctx context.Context, caller string, input TemplateInput) (*templateDomain.Template, error)
	// Update edits the text of an active template. Tokens already minted keep their text.
	Update(ctx context.Context, caller string, id int64, input TemplateInput) (*templateDomain.Template, error)
	Deactivate(ctx context.Context, caller string, id int64) (*templateDomain.Template, error)
	Reactivate(ctx context.Context, caller string, id int64) (*templateDomain.Template, error)

	Get(ctx context.Context, id int64) (*templateDomain.Template, error)
	// IsActive reports false for unknown templates.
	IsActive(ctx context.Context, id int64) (bool, error)
	ListByIssuer(ctx context.Context, issuer string, offset, limit int) ([]*templateDomain.Template, error)
}
