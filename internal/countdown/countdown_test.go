package countdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fakeClock advances instantly. Every wait overshoots by lag to model a
// sleeping goroutine being scheduled late.
type fakeClock struct {
	now   time.Time
	lag   time.Duration
	waits []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	c.now = c.now.Add(d + c.lag)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// recordingSink keeps every tick it receives.
type recordingSink struct {
	ticks    []time.Duration
	finished int
}

func (r *recordingSink) Tick(d time.Duration) error { r.ticks = append(r.ticks, d); return nil }
func (r *recordingSink) Finish() error              { r.finished++; return nil }

func TestRunEmitsOneTickPerSecond(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	sink := &recordingSink{}
	timer := &Timer{Clock: clock}

	require.NoError(t, timer.Run(context.Background(), 3, sink))

	assert.Equal(t, []time.Duration{3 * time.Second, 2 * time.Second, time.Second}, sink.ticks)
	assert.Equal(t, 1, sink.finished)
	assert.Equal(t, 3*time.Second, clock.now.Sub(time.Unix(0, 0)))
}

func TestRunCorrectsDrift(t *testing.T) {
	start := time.Unix(0, 0)
	clock := &fakeClock{now: start, lag: 100 * time.Millisecond}
	timer := &Timer{Clock: clock}

	require.NoError(t, timer.Run(context.Background(), 60, &recordingSink{}))

	// Only the final oversleep shows; earlier ones are absorbed.
	assert.Equal(t, 60*time.Second+100*time.Millisecond, clock.now.Sub(start))
	assert.Equal(t, time.Second, clock.waits[0])
	assert.Equal(t, 900*time.Millisecond, clock.waits[1])
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := &recordingSink{}
	timer := &Timer{Tick: time.Hour}

	err := timer.Run(ctx, 5, sink)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, sink.ticks, 1)
	assert.Zero(t, sink.finished)
}

func TestRunRealClockElapses(t *testing.T) {
	timer := &Timer{Tick: 10 * time.Millisecond}
	out := new(bytes.Buffer)

	start := time.Now()
	require.NoError(t, timer.Run(context.Background(), 5, &ConsoleSink{Out: out}))

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, 5, strings.Count(out.String(), "\n"))
}

// Feature: ctimer, Property 6: a countdown of n seconds emits exactly n lines
func TestConsoleSinkEmitsExactlyNLines(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 300).Draw(t, "seconds")
		out := new(bytes.Buffer)
		timer := &Timer{Clock: &fakeClock{now: time.Unix(0, 0)}}

		if err := timer.Run(context.Background(), n, &ConsoleSink{Out: out}); err != nil {
			t.Fatalf("Run: %v", err)
		}
		lines := strings.Count(out.String(), "\n")
		if lines != n {
			t.Fatalf("got %d lines, want %d", lines, n)
		}
	})
}

func TestConsoleSinkOverwrite(t *testing.T) {
	out := new(bytes.Buffer)
	sink := &ConsoleSink{Out: out, Overwrite: true}

	require.NoError(t, sink.Tick(90*time.Second))
	require.NoError(t, sink.Tick(89*time.Second))
	require.NoError(t, sink.Finish())

	assert.Equal(t, "\r01:30 remaining  \r01:29 remaining  \n", out.String())
}

func TestFormat(t *testing.T) {
	cases := map[time.Duration]string{
		0:                       "00:00",
		59 * time.Second:        "00:59",
		25 * time.Minute:        "25:00",
		125 * time.Minute:       "125:00",
		-3 * time.Second:        "00:00",
		1500 * time.Millisecond: "00:02",
	}
	for d, want := range cases {
		assert.Equal(t, want, Format(d), "Format(%v)", d)
	}
}
