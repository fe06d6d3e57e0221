package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/ctimer/internal/logging"
	"github.com/fakeyudi/ctimer/internal/session"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the schedule a session with these settings would follow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New(cmd.ErrOrStderr(), verbose)
		sc, err := resolveSession(cfg, logger)
		if err != nil {
			return err
		}
		printPlan(cmd.OutOrStdout(), sc, time.Now())
		return nil
	},
}

// printPlan writes one line per interval with its wall-clock start, as if
// the session started at start.
func printPlan(w io.Writer, sc session.Config, start time.Time) {
	fmt.Fprintf(w, "%d pomodoros of %d minutes, short breaks of %d, long breaks of %d (every %d)\n\n",
		sc.Count, sc.WorkMinutes, sc.ShortBreakMinutes, sc.LongBreakMinutes, sc.Frequency)

	at := start
	for _, ev := range session.Plan(sc) {
		clock := at.Format("15:04")
		switch {
		case ev.Kind.IsWork():
			progress := fmt.Sprintf("[%d/%d]", ev.Index+1, sc.Count)
			fmt.Fprintf(w, "  %s  %-6s pomodoro     %3d min\n", clock, progress, ev.Minutes)
		case ev.Kind == session.ShortBreak:
			fmt.Fprintf(w, "  %s         short break  %3d min\n", clock, ev.Minutes)
		case ev.Kind == session.LongBreak:
			fmt.Fprintf(w, "  %s         long break   %3d min\n", clock, ev.Minutes)
		case ev.Kind == session.SessionComplete:
			fmt.Fprintf(w, "  %s         done\n", clock)
		}
		at = at.Add(time.Duration(ev.Minutes) * time.Minute)
	}

	fmt.Fprintf(w, "\nTotal session time of %d minutes, of which %d are work\n", sc.TotalMinutes, sc.WorkTotal())
}

func init() {
	rootCmd.AddCommand(planCmd)
}
