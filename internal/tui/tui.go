// Package tui provides a Bubble Tea viewer for the pomodoro work log.
package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/fakeyudi/ctimer/internal/report"
	"github.com/fakeyudi/ctimer/internal/worklog"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("124")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("124")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("209"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ── Tab definitions ─────────────────

type tabID int

const (
	tabSummary tabID = iota
	tabCategories
	tabDays
	tabTimeline
	tabCount
)

var tabNames = [tabCount]string{"Summary", "Categories", "Days", "Timeline"}

// ── Messages ────────────────

// Loader re-reads the log range shown by the viewer.
type Loader func() (*report.Report, error)

// reloadMsg carries a fresh report after the log directory changed.
type reloadMsg struct {
	report *report.Report
	err    error
}

// ── Model ────────────────────

// Model is the root Bubble Tea model for the log viewer.
type Model struct {
	report    *report.Report
	title     string
	load      Loader
	watcher   *fsnotify.Watcher
	watchErr  error
	loadErr   error
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool
	sortAsc   bool
}

// New creates a viewer for r. When watcher is non-nil, every write to the
// watched directory re-runs load and refreshes the view.
func New(r *report.Report, title string, load Loader, watcher *fsnotify.Watcher) Model {
	return Model{
		report:  r,
		title:   title,
		load:    load,
		watcher: watcher,
	}
}

// WithWatchError records why live reload is unavailable; the status bar
// shows it in place of the live marker.
func (m Model) WithWatchError(err error) Model {
	m.watchErr = err
	return m
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd {
	return waitForChange(m.watcher, m.load)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case "1", "2", "3", "4":
			m.activeTab = tabID(msg.String()[0] - '1')
		case "s":
			if m.activeTab == tabTimeline {
				m.sortAsc = !m.sortAsc
				m.rebuildViewports()
				m.viewports[tabTimeline].GotoTop()
			}
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil

	case reloadMsg:
		m.loadErr = msg.err
		if msg.err == nil && msg.report != nil {
			m.report = msg.report
		}
		if m.ready {
			m.rebuildViewports()
		}
		return m, waitForChange(m.watcher, m.load)
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  ctimer  " + m.title)

	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	content := m.viewports[m.activeTab].View()

	hint := "  ←/→ tab  ↑/↓ scroll  1-4 jump  q quit"
	if m.activeTab == tabTimeline {
		dir := "newest first"
		if m.sortAsc {
			dir = "oldest first"
		}
		hint += "  s sort (" + dir + ")"
	}
	switch {
	case m.watcher != nil:
		hint += "  (live)"
	case m.watchErr != nil:
		hint += "  live reload off: " + m.watchErr.Error()
	}
	pct := fmt.Sprintf("%3.0f%%", m.viewports[m.activeTab].ScrollPercent()*100)
	pad := m.width - lipgloss.Width(hint) - len(pct) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(
		hint + strings.Repeat(" ", pad) + pct,
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

// ── Viewport management ───────────────────────────────────────────────────────

func (m *Model) initViewports() {
	// title(1) + tabRow(1) + statusBar(1) = 3 fixed rows
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		vp := viewport.New(m.width, vpHeight)
		vp.SetContent(m.renderTab(i))
		m.viewports[i] = vp
	}
}

func (m *Model) rebuildViewports() {
	for i := tabID(0); i < tabCount; i++ {
		m.viewports[i].SetContent(m.renderTab(i))
	}
}

// ── Tab renderers ─────────────────────────────────────────────────────────────

func (m *Model) renderTab(t tabID) string {
	var body string
	switch t {
	case tabSummary:
		body = m.renderSummary()
	case tabCategories:
		body = m.renderCategories()
	case tabDays:
		body = m.renderDays()
	case tabTimeline:
		body = m.renderTimeline()
	}
	if m.loadErr != nil {
		body = errorStyle.Render("  reload failed: "+m.loadErr.Error()) + "\n" + body
	}
	return body
}

func heading(s string) string {
	return "\n" + sectionHeader.Render("  "+s) + "\n\n"
}

func (m *Model) renderSummary() string {
	r := m.report
	var sb strings.Builder
	sb.WriteString(heading("Summary"))

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-14s", label)) + "  " + value + "\n")
	}
	row("From:", r.From.Format("Mon 2006-01-02"))
	row("To:", r.To.Format("Mon 2006-01-02"))
	row("Pomodoros:", fmt.Sprintf("%d", r.Pomodoros))
	row("Work time:", report.HumanMinutes(r.Minutes))
	row("Active days:", fmt.Sprintf("%d of %d", r.ActiveDays(), len(r.Days)))
	if len(r.Categories) > 0 {
		row("Top category:", r.Categories[0].Category)
	}
	return sb.String()
}

func (m *Model) renderCategories() string {
	r := m.report
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Categories (%d)", len(r.Categories))))
	if len(r.Categories) == 0 {
		sb.WriteString(dimStyle.Render("  (no pomodoros recorded)") + "\n")
		return sb.String()
	}
	most := r.Categories[0].Minutes
	for _, c := range r.Categories {
		name := categoryStyle.Render(fmt.Sprintf("  %-20s", c.Category))
		sb.WriteString(fmt.Sprintf("%s %s %3d × %s\n",
			name, bar(c.Minutes, most, m.barWidth()), c.Pomodoros, report.HumanMinutes(c.Minutes)))
	}
	return sb.String()
}

func (m *Model) renderDays() string {
	r := m.report
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Days (%d)", len(r.Days))))
	most := 0
	for _, d := range r.Days {
		if d.Minutes > most {
			most = d.Minutes
		}
	}
	for i := len(r.Days) - 1; i >= 0; i-- {
		d := r.Days[i]
		date := timeStyle.Render("  " + d.Date)
		if d.Pomodoros == 0 {
			sb.WriteString(date + "  " + dimStyle.Render("-") + "\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("%s  %s %3d × %s\n",
			date, bar(d.Minutes, most, m.barWidth()), d.Pomodoros, report.HumanMinutes(d.Minutes)))
	}
	return sb.String()
}

func (m *Model) renderTimeline() string {
	var sb strings.Builder

	dir := "newest first"
	if m.sortAsc {
		dir = "oldest first"
	}
	sb.WriteString(heading(fmt.Sprintf("Timeline (%s)", dir)))

	entries := make([]worklog.Record, len(m.report.Entries))
	copy(entries, m.report.Entries)
	if m.sortAsc {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp.Before(entries[j].Timestamp) })
	} else {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp.After(entries[j].Timestamp) })
	}

	if len(entries) == 0 {
		sb.WriteString(dimStyle.Render("  (no pomodoros recorded)") + "\n")
		return sb.String()
	}

	for _, e := range entries {
		ts := timeStyle.Render("  " + e.Timestamp.Local().Format("2006-01-02 15:04"))
		sb.WriteString(fmt.Sprintf("%s  %3d min  %s\n", ts, e.Minutes, categoryStyle.Render(e.Category)))
	}
	return sb.String()
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (m *Model) barWidth() int {
	w := m.width - 50
	if w < 10 {
		return 10
	}
	if w > 40 {
		return 40
	}
	return w
}

// bar renders value as a horizontal bar scaled so that most fills width.
func bar(value, most, width int) string {
	if most <= 0 {
		return strings.Repeat(" ", width)
	}
	n := value * width / most
	if n == 0 && value > 0 {
		n = 1
	}
	return barStyle.Render(strings.Repeat("█", n)) + strings.Repeat(" ", width-n)
}

// waitForChange blocks until the watched log directory sees a write or a new
// file, then reloads. A nil watcher disables live reload.
func waitForChange(w *fsnotify.Watcher, load Loader) tea.Cmd {
	if w == nil || load == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return nil
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					r, err := load()
					return reloadMsg{report: r, err: err}
				}
			case _, ok := <-w.Errors:
				if !ok {
					return nil
				}
				// Watcher errors are non-fatal; keep watching.
			}
		}
	}
}

// Watch returns a watcher on the log directory, creating it first so a
// viewer opened before the first pomodoro still picks it up.
func Watch(dir string) (*fsnotify.Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// Run starts the viewer for r. If the log directory cannot be watched the
// viewer still runs, without live reload, and says so in the status bar.
func Run(r *report.Report, title, dir string, load Loader) error {
	m := watchedModel(r, title, dir, load)
	if m.watcher != nil {
		defer m.watcher.Close()
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func watchedModel(r *report.Report, title, dir string, load Loader) Model {
	w, err := Watch(dir)
	if err != nil {
		return New(r, title, load, nil).WithWatchError(err)
	}
	return New(r, title, load, w)
}
