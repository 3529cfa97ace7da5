package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default("/tmp/tavla.db")
	if cfg.Database.Path != "/tmp/tavla.db" {
		t.Fatalf("unexpected db path %q", cfg.Database.Path)
	}
	if cfg.Refresh.IntervalMinutes != 60 {
		t.Fatalf("unexpected sweep interval %d", cfg.Refresh.IntervalMinutes)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := Default("/tmp/tavla.db")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != defaults.Database.Path {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[logging]
level = "debug"

[refresh]
interval_minutes = 15

[board]
show_labels = false
show_due_dates = true
show_status = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path, Default("/tmp/tavla.db"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging level = %q", cfg.Logging.Level)
	}
	if cfg.Refresh.IntervalMinutes != 15 {
		t.Fatalf("sweep interval = %d", cfg.Refresh.IntervalMinutes)
	}
	if cfg.Board.ShowLabels {
		t.Fatal("show_labels should be overridden to false")
	}
	if cfg.Database.Path != "/tmp/tavla.db" {
		t.Fatal("unset sections must keep defaults")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default("/tmp/tavla.db")
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bad logging level")
	}

	cfg = Default("/tmp/tavla.db")
	cfg.Refresh.IntervalMinutes = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero sweep interval")
	}

	cfg = Default("  ")
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty db path")
	}
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging\nlevel="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path, Default("/tmp/tavla.db")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestEnsureConfigDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "app", "config.toml")
	if err := EnsureConfigDir(target); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(target)); err != nil {
		t.Fatalf("expected config dir to exist, stat error %v", err)
	}
}
