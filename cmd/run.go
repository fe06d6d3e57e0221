package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/ctimer/internal/countdown"
	"github.com/fakeyudi/ctimer/internal/logging"
	"github.com/fakeyudi/ctimer/internal/notify"
	"github.com/fakeyudi/ctimer/internal/session"
	"github.com/fakeyudi/ctimer/internal/worklog"
)

// Overridden in tests.
var (
	tickLength = time.Second
	launcher   notify.Launcher
)

// helperGrace bounds how long the run waits at exit for notification and
// sound helpers that are still playing.
const helperGrace = 2 * time.Second

// errInterrupted is returned when a signal ends the session early.
var errInterrupted = errors.New("session interrupted")

// runSession runs a whole pomodoro session with the merged configuration.
func runSession(cmd *cobra.Command, args []string) error {
	logger, _ := logging.ForRun(logging.New(cmd.ErrOrStderr(), verbose))

	sc, err := resolveSession(cfg, logger)
	if err != nil {
		return err
	}
	assetDir, err := cfg.AssetDirPath()
	if err != nil {
		return err
	}
	logDir, err := cfg.LogDirPath()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	notifier := notify.Multi{
		&notify.Console{Out: out},
		&notify.Exec{
			AssetDir:      assetDir,
			Player:        cfg.Player,
			NotifyCommand: cfg.NotifyCommand,
			Launch:        launcher,
			Logger:        logger,
		},
	}
	sched := &session.Scheduler{
		Config:    sc,
		Notifier:  notifier,
		Countdown: &countdown.Timer{Tick: tickLength, Logger: logger},
		Sink:      countdown.OpenSink(sc.Sink, cfg.PipePathOrDefault(), consoleSink(out), logger),
		Log:       worklog.NewWriter(logDir),
		Username:  username(),
		Logger:    logger,
	}

	logger.Debug("session starting",
		"count", sc.Count,
		"work", sc.WorkMinutes,
		"total", sc.TotalMinutes,
		"sink", sc.Sink.String(),
		"log_dir", logDir)

	runErr := sched.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), helperGrace)
	defer cancel()
	if err := notifier.Close(closeCtx); err != nil {
		logger.Debug("helpers still running at exit", "error", err)
	}

	if runErr != nil && ctx.Err() != nil && errors.Is(runErr, ctx.Err()) {
		fmt.Fprintln(out)
		return errInterrupted
	}
	return runErr
}

// consoleSink returns the countdown sink for w, redrawing in place only
// when w is a terminal.
func consoleSink(w io.Writer) countdown.Sink {
	if f, ok := w.(*os.File); ok {
		return countdown.NewConsoleSink(f)
	}
	return &countdown.ConsoleSink{Out: w}
}
