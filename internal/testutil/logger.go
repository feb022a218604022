package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that drops everything, keeping coordinator and
// storage test output free of mirror-failure noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
