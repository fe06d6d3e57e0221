package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable ctimer settings.
// Zero values mean "not set" so that layers can be merged.
type Config struct {
	Count             int      `json:"count" yaml:"count"`
	WorkMinutes       int      `json:"work_minutes" yaml:"work_minutes"`
	TotalMinutes      int      `json:"total_minutes" yaml:"total_minutes"`
	ShortBreakMinutes int      `json:"short_break_minutes" yaml:"short_break_minutes"`
	LongBreakMinutes  int      `json:"long_break_minutes" yaml:"long_break_minutes"`
	Frequency         int      `json:"frequency" yaml:"frequency"`
	Category          string   `json:"category" yaml:"category"`
	PipeOutput        bool     `json:"pipe_output" yaml:"pipe_output"`
	PipePath          string   `json:"pipe_path" yaml:"pipe_path"`           // override FIFO location
	AssetDir          string   `json:"asset_dir" yaml:"asset_dir"`           // override sound directory
	LogDir            string   `json:"log_dir" yaml:"log_dir"`               // override work log directory
	Player            []string `json:"player" yaml:"player"`                 // argv prefix, file path appended
	NotifyCommand     []string `json:"notify_command" yaml:"notify_command"` // argv prefix, text appended
}

// Defaults returns the classic pomodoro configuration.
func Defaults() Config {
	return Config{
		Count:             5,
		WorkMinutes:       25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		Frequency:         4,
		Player:            []string{"mpv", "--no-video", "--quiet"},
		NotifyCommand:     []string{"notify-send", "ctimer"},
	}
}

// LoadGlobal reads ~/.config/ctimer/config.json, falling back to
// config.yaml next to it. Returns defaults if neither file exists.
func LoadGlobal() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	jsonPath := filepath.Join(dir, "config.json")
	if _, err := os.Stat(jsonPath); err == nil {
		return loadFile(jsonPath, true)
	}
	return loadFile(filepath.Join(dir, "config.yaml"), true)
}

// LoadProject reads .ctimerconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".ctimerconfig", false)
}

// loadFile reads and parses a config file at path. YAML is used for .yaml and
// .yml files, JSON for everything else.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()
	apply(&result, global)
	apply(&result, project)
	return result
}

func apply(dst, src *Config) {
	if src == nil {
		return
	}
	if src.Count != 0 {
		dst.Count = src.Count
	}
	if src.WorkMinutes != 0 {
		dst.WorkMinutes = src.WorkMinutes
	}
	if src.TotalMinutes != 0 {
		dst.TotalMinutes = src.TotalMinutes
	}
	if src.ShortBreakMinutes != 0 {
		dst.ShortBreakMinutes = src.ShortBreakMinutes
	}
	if src.LongBreakMinutes != 0 {
		dst.LongBreakMinutes = src.LongBreakMinutes
	}
	if src.Frequency != 0 {
		dst.Frequency = src.Frequency
	}
	if src.Category != "" {
		dst.Category = src.Category
	}
	if src.PipeOutput {
		dst.PipeOutput = true
	}
	if src.PipePath != "" {
		dst.PipePath = src.PipePath
	}
	if src.AssetDir != "" {
		dst.AssetDir = src.AssetDir
	}
	if src.LogDir != "" {
		dst.LogDir = src.LogDir
	}
	if len(src.Player) > 0 {
		dst.Player = src.Player
	}
	if len(src.NotifyCommand) > 0 {
		dst.NotifyCommand = src.NotifyCommand
	}
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
