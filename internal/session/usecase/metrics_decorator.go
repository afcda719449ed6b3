package usecase

import (
	"context"
	"time"

	"github.com/allisson/soulbound/internal/metrics"
	sessionDomain "github.com/allisson/soulbound/internal/session/domain"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "session", operation, status)
	s.metrics.RecordDuration(ctx, "session", operation, time.Since(start), status)
}

// Create records metrics for session creation.
func (s *sessionUseCaseWithMetrics) Create(
	ctx context.Context,
	caller string,
	input CreateInput,
) (*sessionDomain.Session, error) {
	start := time.Now()
	session, err := s.next.Create(ctx, caller, input)
	s.record(ctx, "session_create", start, err)
	return session, err
}

// End records metrics for ending a session.
func (s *sessionUseCaseWithMetrics) End(ctx context.Context, caller string, id string) (*sessionDomain.Session, error) {
	start := time.Now()
	session, err := s.next.End(ctx, caller, id)
	s.record(ctx, "session_end", start, err)
	return session, err
}

// Lock delegates without recording.
func (s *sessionUseCaseWithMetrics) Lock(ctx context.Context, id string) (*sessionDomain.Session, error) {
	return s.next.Lock(ctx, id)
}

// IncrementMintCount records metrics for counter increments.
func (s *sessionUseCaseWithMetrics) IncrementMintCount(ctx context.Context, id string) (*sessionDomain.Session, error) {
	start := time.Now()
	session, err := s.next.IncrementMintCount(ctx, id)
	s.record(ctx, "session_increment", start, err)
	return session, err
}

// Get records metrics for session lookups.
func (s *sessionUseCaseWithMetrics) Get(ctx context.Context, id string) (*sessionDomain.Session, error) {
	start := time.Now()
	session, err := s.next.Get(ctx, id)
	s.record(ctx, "session_get", start, err)
	return session, err
}

// IsClaimable delegates without recording.
func (s *sessionUseCaseWithMetrics) IsClaimable(ctx context.Context, id string) (bool, error) {
	return s.next.IsClaimable(ctx, id)
}

// Stats records metrics for session statistics.
func (s *sessionUseCaseWithMetrics) Stats(ctx context.Context, id string) (*sessionDomain.Stats, error) {
	start := time.Now()
	stats, err := s.next.Stats(ctx, id)
	s.record(ctx, "session_stats", start, err)
	return stats, err
}

// ListByTemplate records metrics for session listing.
func (s *sessionUseCaseWithMetrics) ListByTemplate(
	ctx context.Context,
	templateID int64,
	offset, limit int,
) ([]*sessionDomain.Session, error) {
	start := time.Now()
	sessions, err := s.next.ListByTemplate(ctx, templateID, offset, limit)
	s.record(ctx, "session_list", start, err)
	return sessions, err
}
