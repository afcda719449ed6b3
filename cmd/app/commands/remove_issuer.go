package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	registryUseCase "github.com/allisson/soulbound/internal/registry/usecase"
)

// RunRemoveIssuer revokes the authorization of an issuer on behalf of the administrator.
// The issuer record is kept so existing tokens still resolve their issuer.
func RunRemoveIssuer(
	ctx context.Context,
	registry registryUseCase.RegistryUseCase,
	logger *slog.Logger,
	writer io.Writer,
	caller string,
	address string,
) error {
	logger.Info("removing issuer",
		slog.String("address", address),
		slog.String("caller", caller),
	)

	if err := registry.RemoveIssuer(ctx, caller, address); err != nil {
		return fmt.Errorf("failed to remove issuer: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Issuer %s is no longer authorized\n", address)
	logger.Info("issuer removed successfully", slog.String("address", address))
	return nil
}
