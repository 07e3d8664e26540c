// Package config loads scan settings from an optional YAML file.
// Command-line flags override anything set here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// SpoolDir is where the rendering collaborator drops page texts,
	// laid out as <spool>/<society name>/<page>.txt or .html.
	SpoolDir string `yaml:"spool_dir"`

	// DataDir holds the events snapshot.
	DataDir string `yaml:"data_dir"`

	// Societies is the path to the society roster JSON file.
	Societies string `yaml:"societies"`

	// Schedule is a cron expression for periodic scanning (e.g.
	// "0 * * * *"). Empty means scan once and exit.
	Schedule string `yaml:"schedule"`

	// LogLevel is the minimum log level: DEBUG, INFO, WARN or ERROR.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SpoolDir:  "./spool",
		DataDir:   "~/.local/share/soc-events",
		Societies: "./societies.json",
		LogLevel:  "INFO",
	}
}

// Load reads configuration from a YAML file layered over the defaults.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}
