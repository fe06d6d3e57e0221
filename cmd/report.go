package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/ctimer/internal/report"
	"github.com/fakeyudi/ctimer/internal/worklog"
)

var (
	reportDays   int
	reportFormat string
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize recorded pomodoros per day and per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		from, to, err := dateRange("", reportDays, now)
		if err != nil {
			return err
		}
		dir, err := cfg.LogDirPath()
		if err != nil {
			return err
		}
		recs, err := worklog.ReadRange(dir, from, to)
		if err != nil {
			return err
		}

		r := report.Build(recs, from, to)
		if activeProfile != nil {
			r.Author = activeProfile.Name
		}

		renderer, ext := report.RendererFor(reportFormat)
		data, err := renderer.Render(r)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}

		if reportOutput == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		// A directory gets a dated file name inside it.
		outputPath := reportOutput
		if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
			outputPath = filepath.Join(outputPath, "ctimer-report-"+now.Format("2006-01-02")+ext)
		}
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputPath)
		return nil
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportDays, "days", 7, "number of days to cover, ending today")
	reportCmd.Flags().StringVar(&reportFormat, "format", "markdown", "output format: markdown or json")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write to this file or directory instead of stdout")
	rootCmd.AddCommand(reportCmd)
}
