package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/ctimer/internal/report"
	"github.com/fakeyudi/ctimer/internal/worklog"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's pomodoro count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cfg.LogDirPath()
		if err != nil {
			return err
		}
		now := time.Now()
		recs, err := worklog.ReadDay(dir, now)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		r := report.Build(recs, now, now)
		if r.Pomodoros == 0 {
			fmt.Fprintln(out, "no pomodoros today")
			return nil
		}

		last := r.Entries[len(r.Entries)-1]
		fmt.Fprintf(out, "Pomodoros: %d\n", r.Pomodoros)
		fmt.Fprintf(out, "Work time: %s\n", report.HumanMinutes(r.Minutes))
		fmt.Fprintf(out, "Last: %s (%s)\n", last.Timestamp.Local().Format("15:04"), last.Category)
		for _, c := range r.Categories {
			fmt.Fprintf(out, "  %-20s %d\n", c.Category, c.Pomodoros)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
