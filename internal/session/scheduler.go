package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fakeyudi/ctimer/internal/countdown"
	"github.com/fakeyudi/ctimer/internal/logging"
	"github.com/fakeyudi/ctimer/internal/notify"
	"github.com/fakeyudi/ctimer/internal/worklog"
)

// Countdown blocks for the given number of seconds.
type Countdown interface {
	Run(ctx context.Context, seconds int, sink countdown.Sink) error
}

// Scheduler walks the events of a session, driving the countdown, the
// notifier and the work log at each transition.
type Scheduler struct {
	Config    Config // must be resolved
	Notifier  notify.Notifier
	Countdown Countdown
	Sink      countdown.Sink
	Log       worklog.Appender
	Username  string           // used in the completion message
	Now       func() time.Time // if nil, uses time.Now
	Logger    *slog.Logger
}

// Run executes the whole session. It returns early only when ctx is
// cancelled or a work log append fails; announce and cue failures are
// handled inside the notifier.
func (s *Scheduler) Run(ctx context.Context) error {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	log := logging.OrDiscard(s.Logger)
	cfg := s.Config

	for _, ev := range Plan(cfg) {
		log.Debug("interval", "kind", ev.Kind.String(), "index", ev.Index, "minutes", ev.Minutes)

		switch {
		case ev.Kind.IsWork():
			s.Notifier.PlayCue(notify.CueStart)
			if ev.Kind == FirstWork {
				s.Notifier.Announce(StartSummary(cfg))
			} else {
				s.Notifier.Announce(WorkSummary(cfg, ev.Index))
			}
			if err := s.Countdown.Run(ctx, ev.Minutes*60, s.Sink); err != nil {
				return err
			}
			rec := worklog.Record{Minutes: ev.Minutes, Category: cfg.Category, Timestamp: now()}
			if err := s.Log.Append(rec); err != nil {
				return fmt.Errorf("appending work log: %w", err)
			}
			log.Info("pomodoro logged", "index", ev.Index, "minutes", ev.Minutes)

		case ev.Kind.IsBreak():
			s.Notifier.PlayCue(notify.CueEnd)
			s.Notifier.Announce(BreakSummary(cfg, ev))
			if err := s.Countdown.Run(ctx, ev.Minutes*60, s.Sink); err != nil {
				return err
			}

		case ev.Kind == SessionComplete:
			s.Notifier.PlayCue(notify.CueSessionOver)
			s.Notifier.Announce(CompleteSummary(s.Username))
		}
	}
	return nil
}
