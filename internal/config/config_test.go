package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.SpoolDir == "" || cfg.DataDir == "" || cfg.Societies == "" {
		t.Errorf("defaults incomplete: %+v", cfg)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want INFO", cfg.LogLevel)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() on missing file: error = %v", err)
	}
	if cfg.SpoolDir != Default().SpoolDir {
		t.Errorf("SpoolDir = %q, want default", cfg.SpoolDir)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `spool_dir: /var/spool/soc-events
schedule: "0 * * * *"
log_level: DEBUG
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SpoolDir != "/var/spool/soc-events" {
		t.Errorf("SpoolDir = %q", cfg.SpoolDir)
	}
	if cfg.Schedule != "0 * * * *" {
		t.Errorf("Schedule = %q", cfg.Schedule)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	// Unset keys keep their defaults.
	if cfg.Societies != Default().Societies {
		t.Errorf("Societies = %q, want default", cfg.Societies)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("spool_dir: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() on invalid YAML: error = nil, want error")
	}
}
