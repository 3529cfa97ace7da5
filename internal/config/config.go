package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Refresh  RefreshConfig  `toml:"refresh"`
	Board    BoardConfig    `toml:"board"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// RefreshConfig controls the periodic status sweep that re-buckets cards
// whose day boundary has passed.
type RefreshConfig struct {
	IntervalMinutes int `toml:"interval_minutes"`
}

type BoardConfig struct {
	ShowLabels   bool `toml:"show_labels"`
	ShowDueDates bool `toml:"show_due_dates"`
	ShowStatus   bool `toml:"show_status"`
}

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
			},
		},
		Refresh: RefreshConfig{
			IntervalMinutes: 60,
		},
		Board: BoardConfig{
			ShowLabels:   true,
			ShowDueDates: true,
			ShowStatus:   true,
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	if c.Refresh.IntervalMinutes <= 0 {
		return fmt.Errorf("refresh.interval_minutes must be > 0, got %d", c.Refresh.IntervalMinutes)
	}

	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
