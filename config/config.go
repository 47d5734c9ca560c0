// Package config holds player-facing session settings read from an optional
// YAML file. Command-line flags override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds session settings.
type Config struct {
	// --- World ---
	World string `yaml:"world"` // world directory or file

	// --- Shell ---
	Plain       bool   `yaml:"plain"`        // line CLI instead of the TUI
	Trace       bool   `yaml:"trace"`        // print resolver trace lines
	Echo        bool   `yaml:"echo"`         // echo commands (script playback)
	Prompt      string `yaml:"prompt"`       // CLI prompt
	HistorySize int    `yaml:"history_size"` // TUI command history entries
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Prompt:      "> ",
		HistorySize: 100,
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error. A relative world path resolves against the config file's directory.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML %s: %w", path, err)
	}

	if cfg.World != "" && !filepath.IsAbs(cfg.World) {
		cfg.World = filepath.Join(filepath.Dir(path), cfg.World)
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = Default().HistorySize
	}
	return cfg, nil
}
