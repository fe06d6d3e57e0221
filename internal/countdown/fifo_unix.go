//go:build unix

package countdown

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// ensureFIFO creates a named pipe at path unless one already exists there.
func ensureFIFO(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.Mode()&os.ModeNamedPipe == 0 {
			return fmt.Errorf("%s exists and is not a named pipe", path)
		}
		return nil
	case errors.Is(err, os.ErrNotExist):
		if err := unix.Mkfifo(path, 0o600); err != nil {
			return fmt.Errorf("creating named pipe: %w", err)
		}
		return nil
	default:
		return err
	}
}

// writeDeadline bounds one write to a pipe whose reader has stopped reading.
const writeDeadline = 50 * time.Millisecond

// writeFIFO writes line to the pipe without blocking the countdown. A missing
// reader (ENXIO) drops the line. The runtime poller parks writes on a full
// pipe instead of returning EAGAIN, so the write gets a deadline and a full
// pipe drops the line once it expires.
func writeFIFO(path, line string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		if errors.Is(err, unix.ENXIO) {
			return nil
		}
		return err
	}
	defer f.Close()
	// Not every descriptor is pollable; those return EAGAIN directly.
	_ = f.SetWriteDeadline(time.Now().Add(writeDeadline))
	_, err = io.WriteString(f, line)
	if err == nil || errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, unix.EAGAIN) {
		return nil
	}
	return err
}
