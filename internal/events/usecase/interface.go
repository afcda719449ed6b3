// Package usecase implements the event feed: recording events alongside mutations, relaying
// pending events to publishers and listing recent events.
package usecase

import (
	"context"

	"github.com/allisson/soulbound/internal/events/domain"
)

// EventRepository defines outbox persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetPending(ctx context.Context, limit int) ([]*domain.Event, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
}

// Publisher delivers an event envelope to an external sink.
type Publisher interface {
	Publish(ctx context.Context, msg domain.Message) error
}

// Recorder writes events to the outbox. It must be called inside the transaction of the
// mutation the event describes.
type Recorder interface {
	Record(ctx context.Context, eventType domain.Type, payload any) error
}

// FeedUseCase lists recorded events.
type FeedUseCase interface {
	List(ctx context.Context, offset, limit int) ([]*domain.Event, error)
}

// RelayUseCase moves pending events from the outbox to the configured publishers.
type RelayUseCase interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}
