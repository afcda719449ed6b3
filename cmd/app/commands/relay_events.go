package commands

import (
	"context"
	"fmt"
	"log/slog"

	eventsUseCase "github.com/allisson/soulbound/internal/events/usecase"
)

// RunRelayEvents delivers pending outbox events to the configured publishers. With once set
// a single batch is processed; otherwise the relay polls until ctx is cancelled.
func RunRelayEvents(
	ctx context.Context,
	relay eventsUseCase.RelayUseCase,
	logger *slog.Logger,
	once bool,
) error {
	if once {
		logger.Info("relaying one batch of events")
		if err := relay.ProcessEvents(ctx); err != nil {
			return fmt.Errorf("failed to relay events: %w", err)
		}
		return nil
	}

	logger.Info("starting event relay")
	if err := relay.Start(ctx); err != nil {
		return fmt.Errorf("event relay stopped: %w", err)
	}
	logger.Info("event relay stopped")
	return nil
}
