// Package notify announces session transitions. Every capability is
// fire-and-forget: failures are logged, never returned, and nothing blocks
// the caller beyond handing the request off.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cue names one of the audio assets played at a transition.
type Cue int

const (
	CueStart Cue = iota
	CueEnd
	CueSessionOver
)

// File returns the asset file name for c.
func (c Cue) File() string {
	switch c {
	case CueStart:
		return "start.mp3"
	case CueEnd:
		return "end.mp3"
	case CueSessionOver:
		return "over.mp3"
	}
	return ""
}

func (c Cue) String() string {
	switch c {
	case CueStart:
		return "start"
	case CueEnd:
		return "end"
	case CueSessionOver:
		return "session-over"
	}
	return fmt.Sprintf("cue(%d)", int(c))
}

// Notifier is the side-effecting surface the scheduler drives.
type Notifier interface {
	// Announce shows a short human-readable message.
	Announce(text string)
	// PlayCue plays the audio asset for cue.
	PlayCue(cue Cue)
	// Close waits for any detached work to finish, or for ctx to expire.
	Close(ctx context.Context) error
}

// Multi fans every call out to each notifier in order.
type Multi []Notifier

func (m Multi) Announce(text string) {
	for _, n := range m {
		n.Announce(text)
	}
}

func (m Multi) PlayCue(cue Cue) {
	for _, n := range m {
		n.PlayCue(cue)
	}
}

func (m Multi) Close(ctx context.Context) error {
	var errs []error
	for _, n := range m {
		if err := n.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	headlineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Console prints announcements to a terminal. Cues are ignored.
type Console struct {
	Out io.Writer
}

// Announce prints text with its first line highlighted.
func (c *Console) Announce(text string) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		style := detailStyle
		if i == 0 {
			style = headlineStyle
		}
		fmt.Fprintln(c.Out, style.Render(line))
	}
}

func (c *Console) PlayCue(Cue) {}

func (c *Console) Close(context.Context) error { return nil }
