package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/soulbound/internal/database"
	"github.com/allisson/soulbound/internal/events/domain"
)

// Config holds relay configuration.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

type relayUseCase struct {
	config    Config
	txManager database.TxManager
	eventRepo EventRepository
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewRelayUseCase creates a RelayUseCase.
func NewRelayUseCase(
	config Config,
	txManager database.TxManager,
	eventRepo EventRepository,
	publisher Publisher,
	logger *slog.Logger,
) RelayUseCase {
	return &relayUseCase{
		config:    config,
		txManager: txManager,
		eventRepo: eventRepo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Start polls the outbox every Interval until ctx is canceled.
func (uc *relayUseCase) Start(ctx context.Context) error {
	uc.logger.Info("starting event relay",
		slog.Duration("interval", uc.config.Interval),
		slog.Int("batch_size", uc.config.BatchSize),
	)

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("stopping event relay")
			return nil
		case <-ticker.C:
			if err := uc.ProcessEvents(ctx); err != nil {
				uc.logger.Error("failed to process events", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents publishes one batch of pending events inside a transaction.
//
// Events with an unknown type or a malformed payload are skipped: they are marked processed
// with the reason in LastError and never reach a publisher. Publish failures increment
// Retries until MaxRetries, after which the event is marked failed.
func (uc *relayUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := uc.eventRepo.GetPending(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}

		if len(events) == 0 {
			return nil
		}

		uc.logger.Debug("relaying events", slog.Int("count", len(events)))

		for _, event := range events {
			now := uc.now().UTC()
			event.UpdatedAt = now

			if err := event.Validate(); err != nil {
				uc.logger.Warn("skipping undeliverable event",
					slog.String("event_id", event.ID.String()),
					slog.String("event_type", string(event.Type)),
					slog.Any("error", err),
				)
				reason := "skipped: " + err.Error()
				event.Status = domain.StatusProcessed
				event.LastError = &reason
				event.ProcessedAt = &now
				if err := uc.eventRepo.Update(ctx, event); err != nil {
					return err
				}
				continue
			}

			if err := uc.publisher.Publish(ctx, event.Message()); err != nil {
				uc.logger.Error("failed to publish event",
					slog.String("event_id", event.ID.String()),
					slog.String("event_type", string(event.Type)),
					slog.Any("error", err),
				)

				event.Retries++
				errorMsg := err.Error()
				event.LastError = &errorMsg
				if event.Retries >= uc.config.MaxRetries {
					event.Status = domain.StatusFailed
				}
				if err := uc.eventRepo.Update(ctx, event); err != nil {
					return err
				}
				continue
			}

			event.Status = domain.StatusProcessed
			event.ProcessedAt = &now
			if err := uc.eventRepo.Update(ctx, event); err != nil {
				return err
			}
		}

		return nil
	})
}
