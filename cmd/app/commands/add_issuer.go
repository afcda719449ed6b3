package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	registryDomain "github.com/allisson/soulbound/internal/registry/domain"
	registryUseCase "github.com/allisson/soulbound/internal/registry/usecase"
)

// RunAddIssuer authorizes an issuer on behalf of the administrator identity given as caller.
// Outputs the stored issuer in either text or JSON format.
//
// Requirements: Database must be migrated and the registry bootstrapped.
func RunAddIssuer(
	ctx context.Context,
	registry registryUseCase.RegistryUseCase,
	logger *slog.Logger,
	writer io.Writer,
	caller string,
	input registryUseCase.IssuerInput,
	format string,
) error {
	logger.Info("adding issuer",
		slog.String("address", input.Address),
		slog.String("caller", caller),
	)

	issuer, err := registry.AddIssuer(ctx, caller, input)
	if err != nil {
		return fmt.Errorf("failed to add issuer: %w", err)
	}

	if format == FormatJSON {
		if err := writeJSON(writer, issuerOutput(issuer)); err != nil {
			return err
		}
	} else {
		outputIssuerText(writer, issuer)
	}

	logger.Info("issuer added successfully", slog.String("address", issuer.Address))
	return nil
}

func issuerOutput(issuer *registryDomain.Issuer) map[string]any {
	return map[string]any{
		"address":      issuer.Address,
		"name":         issuer.Name,
		"organization": issuer.Organization,
		"authorized":   issuer.Authorized,
		"created_at":   issuer.CreatedAt.Format(time.RFC3339),
	}
}

func outputIssuerText(w io.Writer, issuer *registryDomain.Issuer) {
	_, _ = fmt.Fprintln(w, "Issuer authorized successfully!")
	_, _ = fmt.Fprintf(w, "Address:      %s\n", issuer.Address)
	_, _ = fmt.Fprintf(w, "Name:         %s\n", issuer.Name)
	_, _ = fmt.Fprintf(w, "Organization: %s\n", issuer.Organization)
}
