package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/ctimer/internal/config"
	"github.com/fakeyudi/ctimer/internal/countdown"
	"github.com/fakeyudi/ctimer/internal/profile"
	"github.com/fakeyudi/ctimer/internal/session"
	"github.com/fakeyudi/ctimer/internal/timing"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// activeProfile holds the loaded user profile.
var activeProfile *profile.Profile

// Session flags. Each one overrides the merged config only when given, so an
// explicit zero still reaches validation.
var (
	flagCount     int
	flagWork      int
	flagTotal     int
	flagShort     int
	flagLong      int
	flagFrequency int
	flagCategory  string
	flagPipe      bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "ctimer",
	Short: "Run a pomodoro session: timed work intervals with short and long breaks",
	Long: `ctimer alternates work intervals with short breaks, and a long break every
few intervals. Each transition is announced with a desktop notification and a
sound, and every finished work interval is appended to a daily log.

Give either the length of one work interval (-t) or the length of the whole
session (-T); when both are given the session length wins.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup check for the setup command itself.
		if cmd.Name() == "setup" {
			return nil
		}

		// First-run: offer the setup form, but only on an interactive terminal.
		if !profile.Exists() && interactive() {
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "  Welcome to ctimer! Looks like this is your first time.")
			if err := runSetup(cmd.OutOrStdout(), true); err != nil {
				return err
			}
		}

		activeProfile = nil
		if profile.Exists() {
			p, err := profile.Load()
			if err != nil {
				return fmt.Errorf("loading profile: %w", err)
			}
			activeProfile = p
		}

		merged, err := loadConfig()
		if err != nil {
			return err
		}
		activeProfile.Apply(&merged)
		applyFlags(cmd, &merged)
		cfg = merged
		return nil
	},
	RunE: runSession,
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads and merges the global and project config files.
func loadConfig() (config.Config, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		return config.Config{}, fmt.Errorf("loading global config: %w", err)
	}
	project, err := config.LoadProject()
	if err != nil {
		return config.Config{}, fmt.Errorf("loading project config: %w", err)
	}
	return config.Merge(global, project), nil
}

// applyFlags copies every flag the user gave onto c. A work length given on
// the command line replaces a session length that came from a config file.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	changed := cmd.Flags().Changed
	if changed("count") {
		c.Count = flagCount
	}
	if changed("work") {
		c.WorkMinutes = flagWork
		if !changed("total") {
			c.TotalMinutes = 0
		}
	}
	if changed("total") {
		c.TotalMinutes = flagTotal
	}
	if changed("short") {
		c.ShortBreakMinutes = flagShort
	}
	if changed("long") {
		c.LongBreakMinutes = flagLong
	}
	if changed("frequency") {
		c.Frequency = flagFrequency
	}
	if changed("category") {
		c.Category = flagCategory
	}
	if changed("pipe") {
		c.PipeOutput = flagPipe
	}
}

// resolveSession validates c and derives the session's work or total
// minutes. When whole-minute rounding shortened the requested session
// length a warning is logged.
func resolveSession(c config.Config, logger *slog.Logger) (session.Config, error) {
	sink := countdown.SinkConsole
	if c.PipeOutput {
		sink = countdown.SinkPipe
	}
	sc, err := session.Config{
		Durations: timing.Durations{
			Count:             c.Count,
			WorkMinutes:       c.WorkMinutes,
			ShortBreakMinutes: c.ShortBreakMinutes,
			LongBreakMinutes:  c.LongBreakMinutes,
			Frequency:         c.Frequency,
			TotalMinutes:      c.TotalMinutes,
		},
		Category: c.Category,
		Sink:     sink,
	}.Resolve()
	if err != nil {
		return session.Config{}, err
	}
	if c.TotalMinutes > 0 && sc.TotalMinutes < c.TotalMinutes {
		logger.Warn("session shortened to whole-minute pomodoros",
			"requested", c.TotalMinutes, "effective", sc.TotalMinutes, "work_minutes", sc.WorkMinutes)
	}
	return sc, nil
}

// username returns the name used in the completion message.
func username() string {
	if activeProfile != nil && activeProfile.Name != "" {
		return activeProfile.Name
	}
	return os.Getenv("USER")
}

// interactive reports whether the first-run setup form may be shown.
// Overridden in tests.
var interactive = func() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&flagCount, "count", "n", 5, "number of pomodoros")
	pf.IntVarP(&flagWork, "work", "t", 25, "minutes per pomodoro")
	pf.IntVarP(&flagTotal, "total", "T", 0, "minutes for the whole session; work length is derived from it")
	pf.IntVarP(&flagShort, "short", "s", 5, "minutes per short break")
	pf.IntVarP(&flagLong, "long", "l", 15, "minutes per long break")
	pf.IntVarP(&flagFrequency, "frequency", "f", 4, "a long break follows every this many pomodoros")
	pf.StringVarP(&flagCategory, "category", "c", "", "category recorded with each pomodoro in the log")
	pf.BoolVarP(&flagPipe, "pipe", "p", false, "write the countdown to a named pipe instead of the console")
	pf.BoolVar(&verbose, "verbose", false, "debug-level diagnostics on stderr")
}
