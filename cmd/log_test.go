package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakeyudi/ctimer/internal/report"
	"github.com/fakeyudi/ctimer/internal/worklog"
)

// seedLog writes records for today and yesterday under the default log dir.
func seedLog(t *testing.T, data string) (today, yesterday time.Time) {
	t.Helper()
	now := time.Now()
	today = time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, time.Local)
	yesterday = today.AddDate(0, 0, -1)

	w := worklog.NewWriter(filepath.Join(data, "ctimer", "logs"))
	for _, rec := range []worklog.Record{
		{Minutes: 25, Category: "thesis", Timestamp: yesterday},
		{Minutes: 25, Category: "thesis", Timestamp: today},
		{Minutes: 50, Category: "email", Timestamp: today.Add(time.Hour)},
	} {
		require.NoError(t, w.Append(rec))
	}
	return today, yesterday
}

func TestLogPlain(t *testing.T) {
	_, data := isolate(t)
	today, yesterday := seedLog(t, data)

	out, err := executeCommand(rootCmd, "log", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, today.Format("2006-01-02")+"  2 pomodoros, 1h15m")
	assert.Contains(t, out, "  09:00   25 min  thesis")
	assert.Contains(t, out, "  10:00   50 min  email")
	assert.NotContains(t, out, yesterday.Format("2006-01-02"))
	assert.Contains(t, out, "Total: 2 pomodoros, 1h15m")

	resetFlags()
	out, err = executeCommand(rootCmd, "log", "--plain", "--days", "2")
	require.NoError(t, err)
	assert.Contains(t, out, yesterday.Format("2006-01-02")+"  1 pomodoros, 25m")
	assert.Contains(t, out, "Total: 3 pomodoros, 1h40m")

	resetFlags()
	out, err = executeCommand(rootCmd, "log", "--plain", "--date", yesterday.Format("2006-01-02"))
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 1 pomodoros, 25m")
}

func TestLogEmptyAndInvalid(t *testing.T) {
	isolate(t)

	out, err := executeCommand(rootCmd, "log", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "No pomodoros recorded.")

	resetFlags()
	_, err = executeCommand(rootCmd, "log", "--days", "0")
	assert.ErrorContains(t, err, "--days must be at least 1")

	resetFlags()
	_, err = executeCommand(rootCmd, "log", "--date", "19/10/2026")
	assert.ErrorContains(t, err, "want YYYY-MM-DD")
}

func TestStatus(t *testing.T) {
	_, data := isolate(t)

	out, err := executeCommand(rootCmd, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "no pomodoros today")

	seedLog(t, data)
	resetFlags()
	out, err = executeCommand(rootCmd, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Pomodoros: 2")
	assert.Contains(t, out, "Work time: 1h15m")
	assert.Contains(t, out, "Last: 10:00 (email)")
}

func TestReportMarkdownToStdout(t *testing.T) {
	_, data := isolate(t)
	seedLog(t, data)

	out, err := executeCommand(rootCmd, "report", "--days", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "- Pomodoros: 3\n")
	assert.Contains(t, out, "| thesis | 2 | 50 |")
}

func TestReportJSONToDirectory(t *testing.T) {
	home, data := isolate(t)
	seedLog(t, data)

	outDir := filepath.Join(home, "reports")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	out, err := executeCommand(rootCmd, "report", "--format", "json", "-o", outDir)
	require.NoError(t, err)

	path := filepath.Join(outDir, "ctimer-report-"+time.Now().Format("2006-01-02")+".json")
	assert.Contains(t, out, "Report written to "+path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var r report.Report
	require.NoError(t, json.Unmarshal(raw, &r))
	assert.Equal(t, 3, r.Pomodoros)
	assert.Len(t, r.Days, 7)
}
