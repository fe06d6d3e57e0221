// Package profile manages the user's persistent ctimer profile.
// The profile is stored at ~/.config/ctimer/profile.json and is created
// once via the interactive setup flow, then referenced on every command.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/fakeyudi/ctimer/internal/config"
)

// Profile holds user-level preferences set during first-run setup.
type Profile struct {
	Name            string `json:"name"`             // used in the completion message
	DefaultCategory string `json:"default_category"` // used when no category is configured
	PipeOutput      bool   `json:"pipe_output"`      // countdown to the named pipe by default
	StatusScript    bool   `json:"status_script"`    // install the pipe reader script
	Shell           string `json:"shell"`            // "zsh" | "bash" | ""
}

// Path returns the path to the profile file.
func Path() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profile.json"), nil
}

// Exists reports whether a profile file is present on disk.
func Exists() bool {
	p, err := Path()
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Load reads the profile from disk. Returns an error if the file is missing or malformed.
func Load() (*Profile, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("profile not found, run 'ctimer setup' to configure: %w", err)
	}
	var prof Profile
	if err := json.Unmarshal(data, &prof); err != nil {
		return nil, fmt.Errorf("malformed profile at %s: %w", p, err)
	}
	return &prof, nil
}

// Save writes the profile to disk, creating the config directory if needed.
func Save(prof *Profile) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// Apply fills gaps in cfg from the profile. Values already set by a config
// file win.
func (p *Profile) Apply(cfg *config.Config) {
	if p == nil {
		return
	}
	if cfg.Category == "" {
		cfg.Category = p.DefaultCategory
	}
	if p.PipeOutput {
		cfg.PipeOutput = true
	}
}

// Form builds the setup form, editing prof in place.
func Form(prof *Profile) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Description("Shown when a session is complete.").
				Value(&prof.Name),
			huh.NewInput().
				Title("Default category").
				Description("Logged with each pomodoro unless -c is given.").
				Placeholder("uncategorized").
				Value(&prof.DefaultCategory),
			huh.NewConfirm().
				Title("Send the countdown to a named pipe by default?").
				Value(&prof.PipeOutput),
			huh.NewConfirm().
				Title("Install a status script that reads the pipe?").
				Value(&prof.StatusScript),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Shell").
				Options(huh.NewOptions("zsh", "bash")...).
				Value(&prof.Shell),
		).WithHideFunc(func() bool { return !prof.StatusScript }),
	).WithShowHelp(false)
}

// RunSetup runs the interactive setup form and returns the resulting profile.
// If existing is non-nil, it is used as the default for each prompt (edit mode).
func RunSetup(existing *Profile) (*Profile, error) {
	prof := &Profile{Shell: DetectShell()}
	if existing != nil {
		*prof = *existing
		if prof.Shell == "" {
			prof.Shell = DetectShell()
		}
	}

	if err := Form(prof).Run(); err != nil {
		return nil, err
	}
	if !prof.StatusScript {
		prof.Shell = ""
	}
	return prof, nil
}

// DetectShell returns the base name of the current shell.
func DetectShell() string {
	shell := filepath.Base(os.Getenv("SHELL"))
	if shell == "zsh" || shell == "bash" {
		return shell
	}
	return "zsh"
}
