package usecase

import (
	"context"
	"time"

	"github.com/allisson/soulbound/internal/events/domain"
)

type recorder struct {
	eventRepo EventRepository
	now       func() time.Time
}

// NewRecorder creates a Recorder backed by the outbox repository.
func NewRecorder(eventRepo EventRepository) Recorder {
	return &recorder{eventRepo: eventRepo, now: time.Now}
}

// Record encodes payload and stores a pending event.
func (r *recorder) Record(ctx context.Context, eventType domain.Type, payload any) error {
	event, err := domain.NewEvent(eventType, payload, r.now().UTC())
	if err != nil {
		return err
	}
	return r.eventRepo.Create(ctx, event)
}

type feedUseCase struct {
	eventRepo EventRepository
}

// NewFeedUseCase creates a FeedUseCase.
func NewFeedUseCase(eventRepo EventRepository) FeedUseCase {
	return &feedUseCase{eventRepo: eventRepo}
}

// List returns recorded events newest first.
func (f *feedUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	return f.eventRepo.List(ctx, offset, limit)
}
