package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	authService "github.com/allisson/soulbound/internal/auth/service"
)

// RunIssueAccessToken signs an access token for subject. API requests carrying the token
// act as that identity.
func RunIssueAccessToken(
	tokenService authService.TokenService,
	logger *slog.Logger,
	writer io.Writer,
	subject string,
	format string,
) error {
	token, expiresAt, err := tokenService.Issue(subject)
	if err != nil {
		return fmt.Errorf("failed to issue access token: %w", err)
	}

	if format == FormatJSON {
		if err := writeJSON(writer, map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_at":   expiresAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Access Token: %s\n", token)
		_, _ = fmt.Fprintf(writer, "Expires At:   %s\n", expiresAt.UTC().Format(time.RFC3339))
	}

	logger.Info("access token issued", slog.Time("expires_at", expiresAt))
	return nil
}
