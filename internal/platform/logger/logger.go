package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Services receive it through
// constructor options so tests can swap in a silent logger.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
