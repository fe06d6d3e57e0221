// Package timing derives a consistent set of pomodoro durations from the
// partially specified values a user supplies.
package timing

import (
	"errors"
	"fmt"
)

// MaxMinutes caps every duration and the length of a whole session: one week.
const MaxMinutes = 7 * 24 * 60

// ErrInvalid is wrapped by every *Error returned from Resolve.
var ErrInvalid = errors.New("invalid session timing")

// Durations holds the timing parameters of a session. All durations are in
// whole minutes. A zero WorkMinutes or TotalMinutes means "derive this".
type Durations struct {
	Count             int `json:"count"`
	WorkMinutes       int `json:"work_minutes"`
	ShortBreakMinutes int `json:"short_break_minutes"`
	LongBreakMinutes  int `json:"long_break_minutes"`
	Frequency         int `json:"frequency"` // a long break follows every Frequency-th work interval
	TotalMinutes      int `json:"total_minutes"`
}

// Error reports the offending field of a rejected configuration.
type Error struct {
	Field  string
	Value  int
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// Breaks returns how many long and short breaks a session of count work
// intervals contains. No break follows the final interval.
func Breaks(count, frequency int) (long, short int) {
	if count < 1 || frequency < 1 {
		return 0, 0
	}
	long = (count - 1) / frequency
	short = (count - 1) - long
	return long, short
}

// Total returns the session length implied by d's work and break lengths.
func Total(d Durations) int {
	long, short := Breaks(d.Count, d.Frequency)
	return d.WorkMinutes*d.Count + d.ShortBreakMinutes*short + d.LongBreakMinutes*long
}

// WorkTotal returns the total time spent in work intervals.
func (d Durations) WorkTotal() int {
	return d.WorkMinutes * d.Count
}

// IsLongBreak reports whether the break after the work interval at index i
// (0-based) is a long one.
func (d Durations) IsLongBreak(i int) bool {
	return d.Frequency > 0 && (i+1)%d.Frequency == 0
}

// Resolve validates d and fills in whichever of WorkMinutes and TotalMinutes
// is derived.
//
// When TotalMinutes is set it always drives: WorkMinutes is recomputed from
// it with floor division, even if WorkMinutes was also supplied, and
// TotalMinutes is then rewritten to the total the derived work length
// actually produces. That value may be smaller than requested.
func Resolve(d Durations) (Durations, error) {
	if err := validate(d); err != nil {
		return Durations{}, err
	}

	if d.TotalMinutes == 0 {
		d.TotalMinutes = Total(d)
		return d, nil
	}

	long, short := Breaks(d.Count, d.Frequency)
	available := d.TotalMinutes - d.LongBreakMinutes*long - d.ShortBreakMinutes*short
	work := available / d.Count
	if work <= 0 {
		return Durations{}, &Error{
			Field:  "total",
			Value:  d.TotalMinutes,
			Reason: fmt.Sprintf("leaves no work time after %d minutes of breaks", d.TotalMinutes-available),
		}
	}
	d.WorkMinutes = work
	d.TotalMinutes = Total(d)
	return d, nil
}

func validate(d Durations) error {
	positive := []struct {
		name  string
		value int
	}{
		{"count", d.Count},
		{"frequency", d.Frequency},
		{"short break", d.ShortBreakMinutes},
		{"long break", d.LongBreakMinutes},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return &Error{Field: p.name, Value: p.value, Reason: "must be positive"}
		}
	}
	if d.WorkMinutes < 0 {
		return &Error{Field: "work", Value: d.WorkMinutes, Reason: "must be positive"}
	}
	if d.TotalMinutes < 0 {
		return &Error{Field: "total", Value: d.TotalMinutes, Reason: "must be positive"}
	}
	if d.WorkMinutes == 0 && d.TotalMinutes == 0 {
		return &Error{Field: "work", Value: 0, Reason: "either work or total minutes is required"}
	}

	bounded := []struct {
		name  string
		value int
	}{
		{"count", d.Count},
		{"work", d.WorkMinutes},
		{"short break", d.ShortBreakMinutes},
		{"long break", d.LongBreakMinutes},
		{"total", d.TotalMinutes},
	}
	for _, b := range bounded {
		if b.value > MaxMinutes {
			return &Error{Field: b.name, Value: b.value, Reason: "too large"}
		}
	}
	// Every field is capped above, so Total cannot overflow here.
	if d.TotalMinutes == 0 {
		if total := Total(d); total > MaxMinutes {
			return &Error{Field: "total", Value: total, Reason: "too large"}
		}
	}
	return nil
}
