// Package usecase implements the Template Store use cases with ownership and activation checks.
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/allisson/soulbound/internal/database"
	eventsDomain "github.com/allisson/soulbound/internal/events/domain"
	"github.com/allisson/soulbound/internal/identity"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
	templateDomain "github.com/allisson/soulbound/internal/template/domain"
)

// templateUseCase implements TemplateUseCase.
type templateUseCase struct {
	txManager    database.TxManager
	templateRepo TemplateRepository
	sequence     database.Sequence
	authorizer   Authorizer
	recorder     EventRecorder
	now          func() time.Time
}

// NewTemplateUseCase creates a new TemplateUseCase.
func NewTemplateUseCase(
	txManager database.TxManager,
	templateRepo TemplateRepository,
	sequence database.Sequence,
	authorizer Authorizer,
	recorder EventRecorder,
) TemplateUseCase {
	return &templateUseCase{
		txManager:    txManager,
		templateRepo: templateRepo,
		sequence:     sequence,
		authorizer:   authorizer,
		recorder:     recorder,
		now:          time.Now,
	}
}

// Create stores a new active template owned by caller under the next sequential id.
func (t *templateUseCase) Create(
	ctx context.Context,
	caller string,
	input TemplateInput,
) (*templateDomain.Template, error) {
	caller = identity.Normalize(caller)
	if err := t.requireIssuer(ctx, caller); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var template *templateDomain.Template
	err := t.txManager.WithTx(ctx, func(txCtx context.Context) error {
		id, err := t.sequence.Next(txCtx, database.SequenceTemplateID)
		if err != nil {
			return err
		}

		now := t.now().UTC()
		template = &templateDomain.Template{
			ID:          id,
			Name:        input.Name,
			Description: input.Description,
			Issuer:      caller,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := t.templateRepo.Create(txCtx, template); err != nil {
			return err
		}

		return t.recorder.Record(txCtx, eventsDomain.TemplateCreated, payloadOf(template))
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

// Update replaces the name and description of an active template.
func (t *templateUseCase) Update(
	ctx context.Context,
	caller string,
	id int64,
	input TemplateInput,
) (*templateDomain.Template, error) {
	return t.mutate(ctx, caller, id, eventsDomain.TemplateUpdated, func(template *templateDomain.Template) error {
		if !template.Active {
			return templateDomain.ErrTemplateInactive
		}
		if err := validateInput(input); err != nil {
			return err
		}
		template.Name = input.Name
		template.Description = input.Description
		return nil
	})
}

// Deactivate marks an active template inactive.
func (t *templateUseCase) Deactivate(ctx context.Context, caller string, id int64) (*templateDomain.Template, error) {
	return t.mutate(ctx, caller, id, eventsDomain.TemplateDeactivated, func(template *templateDomain.Template) error {
		if !template.Active {
			return templateDomain.ErrTemplateInactive
		}
		template.Active = false
		return nil
	})
}

// Reactivate marks an inactive template active again.
func (t *templateUseCase) Reactivate(ctx context.Context, caller string, id int64) (*templateDomain.Template, error) {
	return t.mutate(ctx, caller, id, eventsDomain.TemplateReactivated, func(template *templateDomain.Template) error {
		if template.Active {
			return templateDomain.ErrTemplateAlreadyActive
		}
		template.Active = true
		return nil
	})
}

// Get returns a template by id.
func (t *templateUseCase) Get(ctx context.Context, id int64) (*templateDomain.Template, error) {
	return t.templateRepo.Get(ctx, id)
}

// IsActive reports whether the template exists and is active.
func (t *templateUseCase) IsActive(ctx context.Context, id int64) (bool, error) {
	template, err := t.templateRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, templateDomain.ErrTemplateNotFound) {
			return false, nil
		}
		return false, err
	}
	return template.Active, nil
}

// ListByIssuer returns the templates owned by issuer in id order.
func (t *templateUseCase) ListByIssuer(
	ctx context.Context,
	issuer string,
	offset, limit int,
) ([]*templateDomain.Template, error) {
	return t.templateRepo.ListByIssuer(ctx, identity.Normalize(issuer), offset, limit)
}

// mutate locks the template, checks ownership, applies change and records eventType.
func (t *templateUseCase) mutate(
	ctx context.Context,
	caller string,
	id int64,
	eventType eventsDomain.Type,
	change func(template *templateDomain.Template) error,
) (*templateDomain.Template, error) {
	caller = identity.Normalize(caller)
	if err := t.requireIssuer(ctx, caller); err != nil {
		return nil, err
	}

	var template *templateDomain.Template
	err := t.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		template, err = t.templateRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if !template.IsOwnedBy(caller) {
			return templateDomain.ErrNotTemplateOwner
		}
		if err := change(template); err != nil {
			return err
		}

		template.UpdatedAt = t.now().UTC()
		if err := t.templateRepo.Update(txCtx, template); err != nil {
			return err
		}

		return t.recorder.Record(txCtx, eventType, payloadOf(template))
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

func (t *templateUseCase) requireIssuer(ctx context.Context, caller string) error {
	if err := t.authorizer.EnsureNotPaused(ctx); err != nil {
		return err
	}
	authorized, err := t.authorizer.IsAuthorizedIssuer(ctx, caller)
	if err != nil {
		return err
	}
	if !authorized {
		return registryDomain.ErrNotAuthorizedIssuer
	}
	return nil
}

func validateInput(input TemplateInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return templateDomain.ErrTemplateNameRequired
	}
	if strings.TrimSpace(input.Description) == "" {
		return templateDomain.ErrTemplateDescriptionRequired
	}
	return nil
}

func payloadOf(template *templateDomain.Template) eventsDomain.TemplatePayload {
	return eventsDomain.TemplatePayload{
		TemplateID:  template.ID,
		Issuer:      template.Issuer,
		Name:        template.Name,
		Description: template.Description,
	}
}
