// Package session sequences the work intervals and breaks of a pomodoro
// session and drives every side effect at each transition.
package session

import (
	"fmt"

	"github.com/fakeyudi/ctimer/internal/countdown"
	"github.com/fakeyudi/ctimer/internal/timing"
)

// Config is the resolved, read-only configuration of one run.
type Config struct {
	timing.Durations
	Category string
	Sink     countdown.SinkKind
}

// Resolve validates c and derives its work or total minutes.
func (c Config) Resolve() (Config, error) {
	d, err := timing.Resolve(c.Durations)
	if err != nil {
		return Config{}, err
	}
	c.Durations = d
	return c, nil
}

// Kind identifies what an interval is.
type Kind int

const (
	FirstWork Kind = iota
	Work
	ShortBreak
	LongBreak
	SessionComplete
)

func (k Kind) String() string {
	switch k {
	case FirstWork:
		return "first-work"
	case Work:
		return "work"
	case ShortBreak:
		return "short-break"
	case LongBreak:
		return "long-break"
	case SessionComplete:
		return "complete"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsWork reports whether k is a work interval.
func (k Kind) IsWork() bool {
	return k == FirstWork || k == Work
}

// IsBreak reports whether k is a break.
func (k Kind) IsBreak() bool {
	return k == ShortBreak || k == LongBreak
}

// Event is one step of a session. For breaks, Index is the work interval the
// break follows.
type Event struct {
	Kind    Kind `json:"kind"`
	Index   int  `json:"index"`
	Minutes int  `json:"minutes"`
}

// Plan returns every event of a session in order: Count work intervals with
// a break between each pair, then SessionComplete. cfg must be resolved.
func Plan(cfg Config) []Event {
	events := make([]Event, 0, 2*cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		kind := Work
		if i == 0 {
			kind = FirstWork
		}
		events = append(events, Event{Kind: kind, Index: i, Minutes: cfg.WorkMinutes})

		if i == cfg.Count-1 {
			break
		}
		if cfg.IsLongBreak(i) {
			events = append(events, Event{Kind: LongBreak, Index: i, Minutes: cfg.LongBreakMinutes})
		} else {
			events = append(events, Event{Kind: ShortBreak, Index: i, Minutes: cfg.ShortBreakMinutes})
		}
	}
	return append(events, Event{Kind: SessionComplete, Index: cfg.Count - 1})
}
