package app

import (
	"context"
	"fmt"
	"slices"

	eventsHTTP "github.com/allisson/soulbound/internal/events/http"
	"github.com/allisson/soulbound/internal/events/publisher"
	eventsUseCase "github.com/allisson/soulbound/internal/events/usecase"
)

// Event publisher names accepted by EVENT_PUBLISHERS.
const (
	PublisherLog       = "log"
	PublisherRedis     = "redis"
	PublisherWebSocket = "websocket"
)

// Recorder returns the outbox recorder writing events through the storage's event repository.
func (c *Container) Recorder(storage *Storage) eventsUseCase.Recorder {
	recorder, _ := lazy(c, "recorder", func() (eventsUseCase.Recorder, error) {
		return eventsUseCase.NewRecorder(storage.Events), nil
	})
	return recorder
}

// Hub returns the WebSocket hub, or nil when the websocket publisher is not configured.
func (c *Container) Hub() *publisher.Hub {
	hub, _ := lazy(c, "hub", func() (*publisher.Hub, error) {
		if !slices.Contains(c.config.EventPublisherNames(), PublisherWebSocket) {
			return nil, nil
		}
		hub := publisher.NewHub(0, c.Logger())
		c.mu.Lock()
		c.hub = hub
		c.mu.Unlock()
		return hub, nil
	})
	return hub
}

// EventHandler returns the HTTP handler of the event feed. The stream endpoint is served
// only when the websocket publisher is configured.
func (c *Container) EventHandler(storage *Storage) *eventsHTTP.EventHandler {
	handler, _ := lazy(c, "eventHandler", func() (*eventsHTTP.EventHandler, error) {
		var stream eventsHTTP.StreamServer
		if hub := c.Hub(); hub != nil {
			stream = hub
		}
		return eventsHTTP.NewEventHandler(eventsUseCase.NewFeedUseCase(storage.Events), stream, c.Logger()), nil
	})
	return handler
}

// Publisher returns the publisher fanning relayed events out to every configured sink.
func (c *Container) Publisher(ctx context.Context) (eventsUseCase.Publisher, error) {
	return lazy(c, "publisher", func() (eventsUseCase.Publisher, error) {
		return c.initPublisher(ctx)
	})
}

// RelayUseCase returns the outbox relay.
func (c *Container) RelayUseCase(ctx context.Context) (eventsUseCase.RelayUseCase, error) {
	return lazy(c, "relayUseCase", func() (eventsUseCase.RelayUseCase, error) {
		return c.initRelayUseCase(ctx)
	})
}

func (c *Container) initPublisher(ctx context.Context) (eventsUseCase.Publisher, error) {
	var publishers []eventsUseCase.Publisher

	for _, name := range c.config.EventPublisherNames() {
		switch name {
		case PublisherLog:
			publishers = append(publishers, publisher.NewLogPublisher(c.Logger()))
		case PublisherRedis:
			redisPublisher, err := publisher.NewRedisPublisher(ctx, c.config.RedisURL, c.config.RedisChannel)
			if err != nil {
				return nil, fmt.Errorf("failed to create redis publisher: %w", err)
			}
			c.mu.Lock()
			c.redisPublisher = redisPublisher
			c.mu.Unlock()
			publishers = append(publishers, redisPublisher)
		case PublisherWebSocket:
			publishers = append(publishers, c.Hub())
		default:
			return nil, fmt.Errorf("unknown event publisher %q", name)
		}
	}

	return publisher.NewMultiPublisher(publishers...), nil
}

func (c *Container) initRelayUseCase(ctx context.Context) (eventsUseCase.RelayUseCase, error) {
	storage, err := c.Storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage for relay use case: %w", err)
	}

	eventPublisher, err := c.Publisher(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher for relay use case: %w", err)
	}

	return eventsUseCase.NewRelayUseCase(
		eventsUseCase.Config{
			Interval:   c.config.OutboxInterval,
			BatchSize:  c.config.OutboxBatchSize,
			MaxRetries: c.config.OutboxMaxRetries,
		},
		storage.TxManager,
		storage.Events,
		eventPublisher,
		c.Logger(),
	), nil
}
