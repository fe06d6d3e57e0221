// Package shell installs the shell plugin that mirrors the countdown pipe
// into a status file for prompts and status bars.
package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fakeyudi/ctimer/internal/config"
)

// PluginPath returns the path where the plugin file should be written.
func PluginPath(shell string) (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ctimer.plugin."+shell), nil
}

// Render returns the plugin source for shell, reading from pipePath.
func Render(shell, pipePath string) (string, error) {
	var tmpl string
	switch shell {
	case "zsh":
		tmpl = ZshPlugin
	case "bash":
		tmpl = BashPlugin
	default:
		return "", fmt.Errorf("unsupported shell for plugin: %s (supported: zsh, bash)", shell)
	}
	quoted := "'" + strings.ReplaceAll(pipePath, "'", `'\''`) + "'"
	return strings.ReplaceAll(tmpl, "@PIPE@", quoted), nil
}

// Install writes the plugin file for the given shell and prints the source
// instruction the user needs to add to their rc file to w.
func Install(shell, pipePath string, w io.Writer) error {
	content, err := Render(shell, pipePath)
	if err != nil {
		return err
	}
	path, err := PluginPath(shell)
	if err != nil {
		return err
	}
	verb := "written to"
	if IsInstalled(shell) {
		verb = "updated at"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing plugin file: %w", err)
	}

	rcFile := rcFileName(shell)
	fmt.Fprintf(w, "\n  ✓ Plugin %s %s\n", verb, path)
	fmt.Fprintf(w, "\n  Add this line to your %s:\n", rcFile)
	fmt.Fprintf(w, "    source %s\n", path)
	fmt.Fprintf(w, "\n  Start the reader with ctimer_watch, then put $(ctimer_status) in your prompt.\n\n")
	return nil
}

// IsInstalled reports whether the plugin file exists on disk.
func IsInstalled(shell string) bool {
	path, err := PluginPath(shell)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func rcFileName(shell string) string {
	switch shell {
	case "zsh":
		return "~/.zshrc"
	case "bash":
		return "~/.bashrc"
	default:
		return "~/." + shell + "rc"
	}
}
