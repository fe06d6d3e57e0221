package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/ctimer/internal/report"
	"github.com/fakeyudi/ctimer/internal/tui"
	"github.com/fakeyudi/ctimer/internal/worklog"
)

var (
	plainOutput bool
	logDate     string
	logDays     int
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recorded pomodoros",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := dateRange(logDate, logDays, time.Now())
		if err != nil {
			return err
		}
		dir, err := cfg.LogDirPath()
		if err != nil {
			return err
		}

		load := func() (*report.Report, error) {
			recs, err := worklog.ReadRange(dir, from, to)
			if err != nil {
				return nil, err
			}
			return report.Build(recs, from, to), nil
		}
		r, err := load()
		if err != nil {
			return err
		}

		if plainOutput || !isTerminal(cmd.OutOrStdout()) {
			printLog(cmd.OutOrStdout(), r)
			return nil
		}
		return tui.Run(r, rangeTitle(from, to), dir, load)
	},
}

// dateRange returns the days days ending on date (YYYY-MM-DD, or today when
// empty).
func dateRange(date string, days int, now time.Time) (from, to time.Time, err error) {
	if days < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("--days must be at least 1, got %d", days)
	}
	to = now
	if date != "" {
		to, err = time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", date)
		}
	}
	return to.AddDate(0, 0, -(days - 1)), to, nil
}

func rangeTitle(from, to time.Time) string {
	if from.Format("2006-01-02") == to.Format("2006-01-02") {
		return to.Format("Mon 2006-01-02")
	}
	return from.Format("2006-01-02") + " to " + to.Format("2006-01-02")
}

// printLog writes a plain-text listing of r, grouped by day.
func printLog(w io.Writer, r *report.Report) {
	for _, d := range r.Days {
		if d.Pomodoros == 0 {
			continue
		}
		fmt.Fprintf(w, "%s  %d pomodoros, %s\n", d.Date, d.Pomodoros, report.HumanMinutes(d.Minutes))
		for _, e := range r.Entries {
			ts := e.Timestamp.Local()
			if ts.Format("2006-01-02") != d.Date {
				continue
			}
			fmt.Fprintf(w, "  %s  %3d min  %s\n", ts.Format("15:04"), e.Minutes, e.Category)
		}
		fmt.Fprintln(w)
	}
	if r.Pomodoros == 0 {
		fmt.Fprintln(w, "No pomodoros recorded.")
		return
	}
	fmt.Fprintf(w, "Total: %d pomodoros, %s\n", r.Pomodoros, report.HumanMinutes(r.Minutes))
}

func init() {
	logCmd.Flags().BoolVar(&plainOutput, "plain", false, "plain text output instead of TUI")
	logCmd.Flags().StringVar(&logDate, "date", "", "last day to show, YYYY-MM-DD (default today)")
	logCmd.Flags().IntVar(&logDays, "days", 1, "number of days to show, ending on --date")
	rootCmd.AddCommand(logCmd)
}
