package usecase

import (
	"context"
	"time"

	"github.com/allisson/soulbound/internal/metrics"
	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
)

// registryUseCaseWithMetrics decorates RegistryUseCase with metrics instrumentation.
type registryUseCaseWithMetrics struct {
	next    RegistryUseCase
	metrics metrics.BusinessMetrics
}

// NewRegistryUseCaseWithMetrics wraps a RegistryUseCase with metrics recording.
func NewRegistryUseCaseWithMetrics(useCase RegistryUseCase, m metrics.BusinessMetrics) RegistryUseCase {
	return &registryUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (r *registryUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "registry", operation, status)
	r.metrics.RecordDuration(ctx, "registry", operation, time.Since(start), status)
}

// Bootstrap records metrics for registry initialization.
func (r *registryUseCaseWithMetrics) Bootstrap(ctx context.Context, admin string) error {
	start := time.Now()
	err := r.next.Bootstrap(ctx, admin)
	r.record(ctx, "registry_bootstrap", start, err)
	return err
}

// AddIssuer records metrics for issuer authorization.
func (r *registryUseCaseWithMetrics) AddIssuer(
	ctx context.Context,
	caller string,
	input IssuerInput,
) (*registryDomain.Issuer, error) {
	start := time.Now()
	issuer, err := r.next.AddIssuer(ctx, caller, input)
	r.record(ctx, "issuer_add", start, err)
	return issuer, err
}

// RemoveIssuer records metrics for issuer deauthorization.
func (r *registryUseCaseWithMetrics) RemoveIssuer(ctx context.Context, caller, address string) error {
	start := time.Now()
	err := r.next.RemoveIssuer(ctx, caller, address)
	r.record(ctx, "issuer_remove", start, err)
	return err
}

// UpdateIssuer records metrics for issuer updates.
func (r *registryUseCaseWithMetrics) UpdateIssuer(
	ctx context.Context,
	caller string,
	input IssuerInput,
) (*registryDomain.Issuer, error) {
	start := time.Now()
	issuer, err := r.next.UpdateIssuer(ctx, caller, input)
	r.record(ctx, "issuer_update", start, err)
	return issuer, err
}

// Pause records metrics for pausing the registry.
func (r *registryUseCaseWithMetrics) Pause(ctx context.Context, caller string) error {
	start := time.Now()
	err := r.next.Pause(ctx, caller)
	r.record(ctx, "registry_pause", start, err)
	return err
}

// Unpause records metrics for unpausing the registry.
func (r *registryUseCaseWithMetrics) Unpause(ctx context.Context, caller string) error {
	start := time.Now()
	err := r.next.Unpause(ctx, caller)
	r.record(ctx, "registry_unpause", start, err)
	return err
}

// TransferAdmin records metrics for administrator transfers.
func (r *registryUseCaseWithMetrics) TransferAdmin(ctx context.Context, caller, newAdmin string) error {
	start := time.Now()
	err := r.next.TransferAdmin(ctx, caller, newAdmin)
	r.record(ctx, "admin_transfer", start, err)
	return err
}

// IsAuthorizedIssuer records metrics for authorization checks.
func (r *registryUseCaseWithMetrics) IsAuthorizedIssuer(ctx context.Context, address string) (bool, error) {
	start := time.Now()
	ok, err := r.next.IsAuthorizedIssuer(ctx, address)
	r.record(ctx, "issuer_check", start, err)
	return ok, err
}

// IsAdmin delegates without recording.
func (r *registryUseCaseWithMetrics) IsAdmin(ctx context.Context, address string) (bool, error) {
	return r.next.IsAdmin(ctx, address)
}

// EnsureNotPaused delegates without recording.
func (r *registryUseCaseWithMetrics) EnsureNotPaused(ctx context.Context) error {
	return r.next.EnsureNotPaused(ctx)
}

// GetIssuer records metrics for issuer lookups.
func (r *registryUseCaseWithMetrics) GetIssuer(ctx context.Context, address string) (*registryDomain.Issuer, error) {
	start := time.Now()
	issuer, err := r.next.GetIssuer(ctx, address)
	r.record(ctx, "issuer_get", start, err)
	return issuer, err
}

// ListIssuers records metrics for issuer listing.
func (r *registryUseCaseWithMetrics) ListIssuers(
	ctx context.Context,
	offset, limit int,
) ([]*registryDomain.Issuer, error) {
	start := time.Now()
	issuers, err := r.next.ListIssuers(ctx, offset, limit)
	r.record(ctx, "issuer_list", start, err)
	return issuers, err
}

// CountIssuers records metrics for issuer counting.
func (r *registryUseCaseWithMetrics) CountIssuers(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := r.next.CountIssuers(ctx)
	r.record(ctx, "issuer_count", start, err)
	return count, err
}

// GetState delegates without recording.
func (r *registryUseCaseWithMetrics) GetState(ctx context.Context) (*registryDomain.State, error) {
	return r.next.GetState(ctx)
}
