package cmd

import (
	"io"
	"log/slog"
)

// newLogger returns a text logger for diagnostics. Normal output never
// goes through it.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
