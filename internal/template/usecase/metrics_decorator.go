package usecase

import (
	"context"
	"time"

	"github.com/allisson/soulbound/internal/metrics"
	templateDomain "github.com/allisson/soulbound/internal/template/domain"
)

// templateUseCaseWithMetrics decorates TemplateUseCase with metrics instrumentation.
type templateUseCaseWithMetrics struct {
	next    TemplateUseCase
	metrics metrics.BusinessMetrics
}

// NewTemplateUseCaseWithMetrics wraps a TemplateUseCase with metrics recording.
func NewTemplateUseCaseWithMetrics(useCase TemplateUseCase, m metrics.BusinessMetrics) TemplateUseCase {
	return &templateUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *templateUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "template", operation, status)
	t.metrics.RecordDuration(ctx, "template", operation, time.Since(start), status)
}

// Create records metrics for template creation.
func (t *templateUseCaseWithMetrics) Create(
	ctx context.Context,
	caller string,
	input TemplateInput,
) (*templateDomain.Template, error) {
	start := time.Now()
	template, err := t.next.Create(ctx, caller, input)
	t.record(ctx, "template_create", start, err)
	return template, err
}

// Update records metrics for template edits.
func (t *templateUseCaseWithMetrics) Update(
	ctx context.Context,
	caller string,
	id int64,
	input TemplateInput,
) (*templateDomain.Template, error) {
	start := time.Now()
	template, err := t.next.Update(ctx, caller, id, input)
	t.record(ctx, "template_update", start, err)
	return template, err
}

// Deactivate records metrics for template deactivation.
func (t *templateUseCaseWithMetrics) Deactivate(
	ctx context.Context,
	caller string,
	id int64,
) (*templateDomain.Template, error) {
	start := time.Now()
	template, err := t.next.Deactivate(ctx, caller, id)
	t.record(ctx, "template_deactivate", start, err)
	return template, err
}

// Reactivate records metrics for template reactivation.
func (t *templateUseCaseWithMetrics) Reactivate(
	ctx context.Context,
	caller string,
	id int64,
) (*templateDomain.Template, error) {
	start := time.Now()
	template, err := t.next.Reactivate(ctx, caller, id)
	t.record(ctx, "template_reactivate", start, err)
	return template, err
}

// Get records metrics for template lookups.
func (t *templateUseCaseWithMetrics) Get(ctx context.Context, id int64) (*templateDomain.Template, error) {
	start := time.Now()
	template, err := t.next.Get(ctx, id)
	t.record(ctx, "template_get", start, err)
	return template, err
}

// IsActive delegates without recording.
func (t *templateUseCaseWithMetrics) IsActive(ctx context.Context, id int64) (bool, error) {
	return t.next.IsActive(ctx, id)
}

// ListByIssuer records metrics for template listing.
func (t *templateUseCaseWithMetrics) ListByIssuer(
	ctx context.Context,
	issuer string,
	offset, limit int,
) ([]*templateDomain.Template, error) {
	start := time.Now()
	templates, err := t.next.ListByIssuer(ctx, issuer, offset, limit)
	t.record(ctx, "template_list", start, err)
	return templates, err
}
