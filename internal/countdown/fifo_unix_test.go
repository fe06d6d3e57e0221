//go:build unix

package countdown

import (
	"bufio"
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestOpenSinkCreatesFIFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctimer.fifo")
	console := &ConsoleSink{Out: new(bytes.Buffer)}

	sink := OpenSink(SinkPipe, path, console, nil)

	require.IsType(t, &PipeSink{}, sink)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeNamedPipe)

	// Reusing an existing FIFO is fine.
	assert.IsType(t, &PipeSink{}, OpenSink(SinkPipe, path, console, nil))
}

func TestPipeSinkWithoutReaderDropsTick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctimer.fifo")
	sink := OpenSink(SinkPipe, path, &ConsoleSink{Out: new(bytes.Buffer)}, nil)

	done := make(chan error, 1)
	go func() { done <- sink.Tick(time.Minute) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Tick blocked with no reader attached")
	}
}

func TestPipeSinkFullPipeDropsTick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctimer.fifo")
	sink := OpenSink(SinkPipe, path, &ConsoleSink{Out: new(bytes.Buffer)}, nil)

	// A reader that attaches and never reads.
	reader, err := os.OpenFile(path, os.O_RDONLY|unix.O_NONBLOCK, 0)
	require.NoError(t, err)
	defer reader.Close()

	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	require.NoError(t, err)
	chunk := make([]byte, 4096)
	for {
		if _, err := unix.Write(fd, chunk); err != nil {
			require.ErrorIs(t, err, unix.EAGAIN)
			break
		}
	}
	for {
		if _, err := unix.Write(fd, chunk[:1]); err != nil {
			break
		}
	}
	require.NoError(t, unix.Close(fd))

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 5; i++ {
			if err := sink.Tick(time.Duration(i) * time.Second); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Tick blocked on a full pipe")
	}
}

func TestPipeSinkDeliversLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctimer.fifo")
	sink := OpenSink(SinkPipe, path, &ConsoleSink{Out: new(bytes.Buffer)}, nil)

	reader, err := os.OpenFile(path, os.O_RDONLY|unix.O_NONBLOCK, 0)
	require.NoError(t, err)
	defer reader.Close()

	require.NoError(t, sink.Tick(90*time.Second))

	line, err := bufio.NewReader(reader).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "01:30\n", line)
}

func TestOpenSinkFallsBackToConsole(t *testing.T) {
	console := &ConsoleSink{Out: new(bytes.Buffer)}
	logs := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(logs, nil))

	missingDir := filepath.Join(t.TempDir(), "nope", "ctimer.fifo")
	assert.Same(t, console, OpenSink(SinkPipe, missingDir, console, logger))
	assert.Contains(t, logs.String(), "falling back to console")

	regular := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(regular, nil, 0o644))
	assert.Same(t, console, OpenSink(SinkPipe, regular, console, logger))
}

func TestOpenSinkConsoleKind(t *testing.T) {
	console := &ConsoleSink{Out: new(bytes.Buffer)}
	path := filepath.Join(t.TempDir(), "ctimer.fifo")

	assert.Same(t, console, OpenSink(SinkConsole, path, console, nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "console sink must not create the FIFO")
}
