package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/ctimer/internal/profile"
	"github.com/fakeyudi/ctimer/internal/shell"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure ctimer (re-run anytime to edit settings)",
	Args:  cobra.NoArgs,
	// Bypass the normal PersistentPreRunE so setup works before profile exists.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(cmd.OutOrStdout(), false)
	},
}

// runSetup runs the interactive setup form.
// If firstRun is true, a welcome message is shown.
func runSetup(w io.Writer, firstRun bool) error {
	if firstRun {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Let's get you set up.")
	}

	// Load existing profile as defaults if present.
	var existing *profile.Profile
	if profile.Exists() {
		p, err := profile.Load()
		if err == nil {
			existing = p
		}
	}

	prof, err := profile.RunSetup(existing)
	if err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}

	if err := profile.Save(prof); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	fmt.Fprintln(w, "  ✓ Profile saved.")

	if prof.StatusScript && prof.Shell != "" {
		merged, err := loadConfig()
		if err != nil {
			return err
		}
		if err := shell.Install(prof.Shell, merged.PipePathOrDefault(), w); err != nil {
			fmt.Fprintf(w, "  ⚠ Plugin install failed: %v\n", err)
			fmt.Fprintln(w, "    You can retry with: ctimer setup")
		}
	}

	fmt.Fprintln(w, "  Setup complete. Run 'ctimer' to start a session.")
	fmt.Fprintln(w)
	return nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
