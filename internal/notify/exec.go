package notify

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/fakeyudi/ctimer/internal/logging"
)

// Launcher starts a command without waiting for it to exit. The returned
// wait function blocks until the process exits and reaps it.
// This abstraction allows mocking in tests.
type Launcher func(name string, args ...string) (wait func() error, err error)

// defaultLauncher starts a real subprocess with stdio detached.
func defaultLauncher(name string, args ...string) (func() error, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd.Wait, nil
}

// Exec dispatches desktop notifications and audio cues to external programs.
// Each program runs detached; a goroutine per process reaps it, and Close
// drains them at the end of a run.
type Exec struct {
	AssetDir      string
	Player        []string // argv prefix; the cue's path is appended
	NotifyCommand []string // argv prefix; the text is appended
	Launch        Launcher // if nil, uses a real subprocess
	Logger        *slog.Logger

	wg sync.WaitGroup
}

// Announce sends text to the desktop notification command.
func (e *Exec) Announce(text string) {
	if len(e.NotifyCommand) == 0 {
		return
	}
	argv := append(append([]string{}, e.NotifyCommand...), text)
	e.spawn("notification", argv)
}

// PlayCue plays the asset for cue through the player command. A missing
// asset is reported and skipped.
func (e *Exec) PlayCue(cue Cue) {
	if len(e.Player) == 0 {
		return
	}
	path := filepath.Join(e.AssetDir, cue.File())
	if _, err := os.Stat(path); err != nil {
		e.logger().Warn("cue asset unavailable", "cue", cue.String(), "path", path, "error", err)
		return
	}
	argv := append(append([]string{}, e.Player...), path)
	e.spawn("cue "+cue.String(), argv)
}

// Close waits for every launched helper to exit or for ctx to expire.
func (e *Exec) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Exec) spawn(what string, argv []string) {
	launch := e.Launch
	if launch == nil {
		launch = defaultLauncher
	}
	log := e.logger()

	wait, err := launch(argv[0], argv[1:]...)
	if err != nil {
		log.Warn("dispatch failed", "what", what, "command", argv[0], "error", err)
		return
	}
	log.Debug("dispatched", "what", what, "command", argv[0])

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := wait(); err != nil {
			log.Warn("helper exited with error", "what", what, "command", argv[0], "error", err)
		}
	}()
}

func (e *Exec) logger() *slog.Logger {
	return logging.OrDiscard(e.Logger)
}
