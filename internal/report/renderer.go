package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Renderer serializes a Report to bytes.
type Renderer interface {
	Render(r *Report) ([]byte, error)
}

// RendererFor returns the renderer for a format name and the file extension
// its output should use. Anything other than "json" renders Markdown.
func RendererFor(format string) (Renderer, string) {
	if strings.EqualFold(format, "json") {
		return &JSONRenderer{}, ".json"
	}
	return &MarkdownRenderer{}, ".md"
}

// JSONRenderer renders a Report as indented JSON.
type JSONRenderer struct{}

func (j *JSONRenderer) Render(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// MarkdownRenderer renders a Report as human-readable Markdown.
type MarkdownRenderer struct{}

func (m *MarkdownRenderer) Render(r *Report) ([]byte, error) {
	var sb strings.Builder

	// Title.
	if r.From.Equal(r.To) {
		fmt.Fprintf(&sb, "# Pomodoros — %s\n\n", r.From.Format("2006-01-02"))
	} else {
		fmt.Fprintf(&sb, "# Pomodoros — %s to %s\n\n",
			r.From.Format("2006-01-02"),
			r.To.Format("2006-01-02"),
		)
	}

	// ## Summary
	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- Pomodoros: %d\n", r.Pomodoros)
	fmt.Fprintf(&sb, "- Work time: %s\n", HumanMinutes(r.Minutes))
	fmt.Fprintf(&sb, "- Active days: %d of %d\n", r.ActiveDays(), len(r.Days))
	if r.Author != "" {
		fmt.Fprintf(&sb, "- Author: %s\n", r.Author)
	}
	sb.WriteString("\n")

	// ## Categories
	sb.WriteString("## Categories\n\n")
	if len(r.Categories) == 0 {
		sb.WriteString("_No pomodoros recorded._\n")
	} else {
		sb.WriteString("| Category | Pomodoros | Minutes |\n")
		sb.WriteString("|----------|-----------|---------|\n")
		for _, c := range r.Categories {
			fmt.Fprintf(&sb, "| %s | %d | %d |\n", escapeCell(c.Category), c.Pomodoros, c.Minutes)
		}
	}
	sb.WriteString("\n")

	// ## Days
	sb.WriteString("## Days\n\n")
	sb.WriteString("| Date | Pomodoros | Minutes |\n")
	sb.WriteString("|------|-----------|---------|\n")
	for _, d := range r.Days {
		fmt.Fprintf(&sb, "| %s | %d | %d |\n", d.Date, d.Pomodoros, d.Minutes)
	}
	sb.WriteString("\n")

	// ## Entries
	sb.WriteString("## Entries\n\n")
	if len(r.Entries) == 0 {
		sb.WriteString("_No pomodoros recorded._\n")
	} else {
		for _, e := range r.Entries {
			fmt.Fprintf(&sb, "- %s  %d min  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				e.Minutes,
				e.Category,
			)
		}
	}
	sb.WriteString("\n")

	return []byte(sb.String()), nil
}

// HumanMinutes formats a minute count as "2h05m", or "45m" under an hour.
func HumanMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
