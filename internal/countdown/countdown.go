// Package countdown blocks for the length of one interval while showing the
// time remaining on a console line or a named pipe.
package countdown

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fakeyudi/ctimer/internal/logging"
)

// Clock is the time source of a Timer. Tests substitute a fake.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Timer runs countdowns. The zero value ticks once per wall-clock second.
type Timer struct {
	Clock  Clock
	Tick   time.Duration // length of one displayed second; zero means time.Second
	Logger *slog.Logger
}

// Run blocks for seconds ticks, reporting the remaining time to sink before
// each one, then calls sink.Finish. Tick k ends at start+(k+1)*Tick, so time
// spent writing or oversleeping is absorbed by the next wait instead of
// accumulating. Only cancellation of ctx ends it early.
func (t *Timer) Run(ctx context.Context, seconds int, sink Sink) error {
	clock := t.Clock
	if clock == nil {
		clock = realClock{}
	}
	tick := t.Tick
	if tick <= 0 {
		tick = time.Second
	}
	log := logging.OrDiscard(t.Logger)

	start := clock.Now()
	for k := 0; k < seconds; k++ {
		remaining := time.Duration(seconds-k) * time.Second
		if err := sink.Tick(remaining); err != nil {
			log.Debug("countdown tick not delivered", "error", err)
		}

		wait := start.Add(time.Duration(k+1) * tick).Sub(clock.Now())
		if wait <= 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		select {
		case <-clock.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := sink.Finish(); err != nil {
		log.Debug("countdown finish not delivered", "error", err)
	}
	return nil
}

// Format renders d as MM:SS. Minutes are not wrapped into hours.
func Format(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
