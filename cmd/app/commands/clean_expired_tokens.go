package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/converso/piivault/internal/app"
	"github.com/converso/piivault/internal/config"
	tokensUsecase "github.com/converso/piivault/internal/tokens/usecase"
)

// RunCleanExpiredTokens deletes expired tokens older than the specified number
// of days. Supports dry-run mode to preview the deletion count and both
// text/JSON output formats.
func RunCleanExpiredTokens(ctx context.Context, days int, dryRun bool, format string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	useCase, err := container.SecureTokenUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize secure token use case: %w", err)
	}

	return cleanExpiredTokens(ctx, useCase, logger, os.Stdout, days, dryRun, format)
}

// cleanExpiredTokens runs the cleanup against the given use case and writes
// the result to out.
func cleanExpiredTokens(
	ctx context.Context,
	useCase tokensUsecase.SecureTokenUseCase,
	logger *slog.Logger,
	out io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning expired tokens",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	count, err := useCase.CleanupExpired(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired tokens: %w", err)
	}

	if format == "json" {
		outputCleanExpiredJSON(out, count, days, dryRun)
	} else {
		outputCleanExpiredText(out, count, days, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanExpiredText outputs the result in human-readable text format.
func outputCleanExpiredText(out io.Writer, count int64, days int, dryRun bool) {
	if dryRun {
		fmt.Fprintf(out, "Dry-run mode: Would delete %d expired token(s) older than %d day(s)\n", count, days)
	} else {
		fmt.Fprintf(out, "Successfully deleted %d expired token(s) older than %d day(s)\n", count, days)
	}
}

// outputCleanExpiredJSON outputs the result in JSON format for machine consumption.
func outputCleanExpiredJSON(out io.Writer, count int64, days int, dryRun bool) {
	result := map[string]interface{}{
		"count":   count,
		"days":    days,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(out, string(jsonBytes))
}
