package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLauncher records every launch and hands out controllable wait funcs.
type fakeLauncher struct {
	mu       sync.Mutex
	calls    [][]string
	startErr error
	waitErr  error
	release  chan struct{} // when non-nil, wait blocks until closed
}

func (f *fakeLauncher) launch(name string, args ...string) (func() error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.startErr != nil {
		return nil, f.startErr
	}
	return func() error {
		if f.release != nil {
			<-f.release
		}
		return f.waitErr
	}, nil
}

func (f *fakeLauncher) recorded() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.calls...)
}

func newExec(t *testing.T, f *fakeLauncher) (*Exec, *bytes.Buffer) {
	t.Helper()
	logs := new(bytes.Buffer)
	return &Exec{
		AssetDir:      t.TempDir(),
		Player:        []string{"mpv", "--no-video", "--quiet"},
		NotifyCommand: []string{"notify-send", "ctimer"},
		Launch:        f.launch,
		Logger:        slog.New(slog.NewTextHandler(logs, nil)),
	}, logs
}

func TestExecAnnounceAppendsText(t *testing.T) {
	f := &fakeLauncher{}
	e, _ := newExec(t, f)

	e.Announce("[2/5] pomodoro will last 25 minutes")
	require.NoError(t, e.Close(context.Background()))

	assert.Equal(t, [][]string{{"notify-send", "ctimer", "[2/5] pomodoro will last 25 minutes"}}, f.recorded())
}

func TestExecPlayCueUsesAssetPath(t *testing.T) {
	f := &fakeLauncher{}
	e, _ := newExec(t, f)
	asset := filepath.Join(e.AssetDir, "end.mp3")
	require.NoError(t, os.WriteFile(asset, []byte("id3"), 0o644))

	e.PlayCue(CueEnd)
	require.NoError(t, e.Close(context.Background()))

	assert.Equal(t, [][]string{{"mpv", "--no-video", "--quiet", asset}}, f.recorded())
}

func TestExecMissingAssetIsSkipped(t *testing.T) {
	f := &fakeLauncher{}
	e, logs := newExec(t, f)

	e.PlayCue(CueSessionOver)

	assert.Empty(t, f.recorded())
	assert.Contains(t, logs.String(), "cue asset unavailable")
	assert.Contains(t, logs.String(), "over.mp3")
}

func TestExecFailuresAreLoggedNotReturned(t *testing.T) {
	f := &fakeLauncher{startErr: errors.New("executable file not found in $PATH")}
	e, logs := newExec(t, f)

	e.Announce("hello")
	require.NoError(t, e.Close(context.Background()))
	assert.Contains(t, logs.String(), "dispatch failed")

	f2 := &fakeLauncher{waitErr: errors.New("exit status 1")}
	e2, logs2 := newExec(t, f2)
	e2.Announce("hello")
	require.NoError(t, e2.Close(context.Background()))
	assert.Contains(t, logs2.String(), "helper exited with error")
}

func TestExecDoesNotBlockCaller(t *testing.T) {
	f := &fakeLauncher{release: make(chan struct{})}
	e, _ := newExec(t, f)

	start := time.Now()
	e.Announce("first")
	e.Announce("second")
	assert.Less(t, time.Since(start), time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, e.Close(ctx), context.DeadlineExceeded)

	close(f.release)
	assert.NoError(t, e.Close(context.Background()))
}

func TestConsoleAnnounce(t *testing.T) {
	out := new(bytes.Buffer)
	c := &Console{Out: out}

	c.Announce("ctimer has started! Good luck\n5 pomodoros of 25 minutes")
	c.PlayCue(CueStart)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ctimer has started! Good luck")
	assert.Contains(t, lines[1], "5 pomodoros of 25 minutes")
}

func TestMultiFansOut(t *testing.T) {
	out := new(bytes.Buffer)
	f := &fakeLauncher{}
	e, _ := newExec(t, f)

	m := Multi{&Console{Out: out}, e}
	m.Announce("break time")
	require.NoError(t, m.Close(context.Background()))

	assert.Contains(t, out.String(), "break time")
	assert.Len(t, f.recorded(), 1)
}

func TestCueFiles(t *testing.T) {
	assert.Equal(t, "start.mp3", CueStart.File())
	assert.Equal(t, "end.mp3", CueEnd.File())
	assert.Equal(t, "over.mp3", CueSessionOver.File())
}
