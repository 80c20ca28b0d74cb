package application

import (
	"context"
	"log/slog"

	"github.com/example/mail-composer/internal/logging"
)

// serviceLogger prefers a logger carried on the context over the service's
// own, falling back to slog.Default.
func serviceLogger(ctx context.Context, base *slog.Logger, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{"service", "MailService", "operation", operation}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}
