package config

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the ctimer config directory (~/.config/ctimer).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ctimer"), nil
}

// DataDir returns the ctimer-specific XDG data directory.
// Path: $XDG_DATA_HOME/ctimer or ~/.local/share/ctimer
func DataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "ctimer"), nil
}

// AssetDirPath returns the directory holding the cue sounds, honoring the
// asset_dir override.
func (c Config) AssetDirPath() (string, error) {
	if c.AssetDir != "" {
		return c.AssetDir, nil
	}
	return DataDir()
}

// LogDirPath returns the directory holding the daily work logs, honoring the
// log_dir override.
func (c Config) LogDirPath() (string, error) {
	if c.LogDir != "" {
		return c.LogDir, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// PipePathOrDefault returns the FIFO used by the named-pipe countdown sink.
// Defaults to $XDG_RUNTIME_DIR/ctimer.fifo, or the temp dir when unset.
func (c Config) PipePathOrDefault() string {
	if c.PipePath != "" {
		return c.PipePath
	}
	base := os.Getenv("XDG_RUNTIME_DIR")
	if base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "ctimer.fifo")
}
