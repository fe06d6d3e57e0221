// Package logging builds the diagnostic logger. Diagnostics go to stderr so
// they never interleave with the countdown on stdout.
package logging

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// New returns a text logger writing to w. Debug records are emitted only
// when verbose is set.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ForRun tags every record of one session run with a fresh run ID.
func ForRun(logger *slog.Logger) (*slog.Logger, string) {
	id := uuid.New().String()
	return logger.With("run", id), id
}

// Discard returns a logger that drops everything. Used where a nil logger
// was supplied.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDiscard returns logger, or a discarding logger when it is nil.
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}
