package countdown

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/x/term"

	"github.com/fakeyudi/ctimer/internal/logging"
)

// SinkKind selects where the countdown is shown. It is fixed for a run.
type SinkKind int

const (
	SinkConsole SinkKind = iota
	SinkPipe
)

func (k SinkKind) String() string {
	if k == SinkPipe {
		return "pipe"
	}
	return "console"
}

// Sink receives the remaining time once per tick.
type Sink interface {
	Tick(remaining time.Duration) error
	// Finish is called once after the last tick of an interval.
	Finish() error
}

// ConsoleSink writes "MM:SS remaining" to a terminal. With Overwrite set the
// same line is redrawn each tick; otherwise every tick gets its own line.
type ConsoleSink struct {
	Out       io.Writer
	Overwrite bool
}

// NewConsoleSink returns a ConsoleSink for f, redrawing in place only when f
// is a terminal.
func NewConsoleSink(f *os.File) *ConsoleSink {
	return &ConsoleSink{Out: f, Overwrite: term.IsTerminal(f.Fd())}
}

func (c *ConsoleSink) Tick(remaining time.Duration) error {
	if c.Overwrite {
		_, err := fmt.Fprintf(c.Out, "\r%s remaining  ", Format(remaining))
		return err
	}
	_, err := fmt.Fprintf(c.Out, "%s remaining\n", Format(remaining))
	return err
}

func (c *ConsoleSink) Finish() error {
	if !c.Overwrite {
		return nil
	}
	_, err := fmt.Fprintln(c.Out)
	return err
}

// PipeSink writes "MM:SS\n" to a FIFO for an external consumer such as a
// status bar. A tick with no reader attached is dropped.
type PipeSink struct {
	Path string
}

func (p *PipeSink) Tick(remaining time.Duration) error {
	return writeFIFO(p.Path, Format(remaining)+"\n")
}

func (p *PipeSink) Finish() error { return nil }

// OpenSink returns the sink for kind. If the FIFO cannot be created the
// console sink is returned instead and a warning is logged.
func OpenSink(kind SinkKind, pipePath string, console Sink, logger *slog.Logger) Sink {
	if kind != SinkPipe {
		return console
	}
	if err := ensureFIFO(pipePath); err != nil {
		logging.OrDiscard(logger).Warn("named pipe unavailable, falling back to console",
			"path", pipePath, "error", err)
		return console
	}
	return &PipeSink{Path: pipePath}
}
