// Package publisher delivers relayed events to log, Redis pub/sub and WebSocket subscribers.
package publisher

import (
	"context"
	"errors"
	"log/slog"

	"github.com/allisson/soulbound/internal/events/domain"
	"github.com/allisson/soulbound/internal/events/usecase"
)

// LogPublisher writes every event to the structured log.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, msg domain.Message) error {
	p.logger.InfoContext(ctx, "event published",
		slog.String("event_id", msg.ID.String()),
		slog.String("event_type", string(msg.Type)),
		slog.String("payload", string(msg.Payload)),
	)
	return nil
}

// MultiPublisher fans an event out to several publishers. Every publisher is attempted;
// the joined error of the failing ones is returned, which makes the relay retry the event.
type MultiPublisher struct {
	publishers []usecase.Publisher
}

// NewMultiPublisher creates a MultiPublisher.
func NewMultiPublisher(publishers ...usecase.Publisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

// Publish delivers msg to every publisher.
func (m *MultiPublisher) Publish(ctx context.Context, msg domain.Message) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
