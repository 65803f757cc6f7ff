// Package observability provides logging, metrics, and tracing.
package observability

import (
	"log/slog"
	"os"
)

var logger *slog.Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger = slog.New(handler)
}

// Logger returns the application-wide structured logger.
func Logger() *slog.Logger {
	return logger
}

// SetLogger replaces the application logger. Intended for tests.
func SetLogger(l *slog.Logger) {
	logger = l
}
