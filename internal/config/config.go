// Package config loads the shell's YAML configuration file.
//
// Every field has a usable default so a missing file is not an error:
// first run simply gets the built-in defaults, and a later
// `config.yaml` overrides only what it names.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/netenglabs/nubia-cli/internal/paths"
)

// Config holds the user-tunable shell options.
type Config struct {
	// Prompt is the interactive prompt template. "{name}" expands to
	// the binary name.
	Prompt string `yaml:"prompt"`

	// Color enables ANSI styling. NO_COLOR still wins over it.
	Color bool `yaml:"color"`

	// SuggestionLimit caps how many near-miss command names an
	// unknown-command error offers.
	SuggestionLimit int `yaml:"suggestion_limit"`

	History HistoryConfig `yaml:"history"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

// HistoryConfig controls the persistent command history.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// SessionConfig controls per-session transcript capture.
type SessionConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Prompt:          "[{name}] ",
		Color:           true,
		SuggestionLimit: 10,
		History: HistoryConfig{
			Enabled: true,
			Path:    paths.HistoryDBPath(),
		},
		Session: SessionConfig{
			Enabled: false,
			Dir:     paths.SessionDir(),
		},
		Log: LogConfig{
			Path:  paths.LogFilePath(),
			Level: "warn",
		},
	}
}

// Load reads the config file at path, overlaying it on the defaults.
// A missing file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.SuggestionLimit < 0 {
		cfg.SuggestionLimit = 0
	}

	return cfg, nil
}

// LoadDefault reads the config from its standard location.
func LoadDefault() (Config, error) {
	return Load(paths.ConfigFilePath())
}
