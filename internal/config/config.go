// Package config loads senti's settings from a YAML file, an optional .env
// file and SENTI_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"go-simpler.org/env"
	"gopkg.in/yaml.v3"
)

// History backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Refresh rate bounds in seconds.
const (
	MinRefreshRate     = 1
	MaxRefreshRate     = 10
	DefaultRefreshRate = 3
)

// Languages offered in the sidebar. The choice is displayed only.
var Languages = []string{"English", "Spanish", "French", "German", "Italian"}

// ErrInvalidRefreshRate is returned when refresh_rate is outside 1..10.
var ErrInvalidRefreshRate = fmt.Errorf("refresh_rate must be between %d and %d seconds", MinRefreshRate, MaxRefreshRate)

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WatchConfig configures the inbox watcher used by "senti watch".
type WatchConfig struct {
	Extensions []string      `yaml:"extensions"`
	Debounce   time.Duration `yaml:"debounce"`
}

// Config holds every setting read from the config file and environment.
type Config struct {
	Language       string      `yaml:"language"`
	AutoRefresh    bool        `yaml:"auto_refresh"`
	RefreshRate    int         `yaml:"refresh_rate"`
	RecentWindow   int         `yaml:"recent_window"`
	HistoryExcerpt int         `yaml:"history_excerpt"`
	RecentExcerpt  int         `yaml:"recent_excerpt"`
	Backend        string      `yaml:"backend"`
	Log            LogConfig   `yaml:"log"`
	Watch          WatchConfig `yaml:"watch"`
}

// envOverrides mirrors the settings that can come from the environment.
// It is pre-filled from the file so unset variables leave values alone.
type envOverrides struct {
	Language    string `env:"SENTI_LANGUAGE"`
	AutoRefresh bool   `env:"SENTI_AUTO_REFRESH"`
	RefreshRate int    `env:"SENTI_REFRESH_RATE"`
	Backend     string `env:"SENTI_BACKEND"`
	LogLevel    string `env:"SENTI_LOG_LEVEL"`
	LogFormat   string `env:"SENTI_LOG_FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Language:       "English",
		AutoRefresh:    false,
		RefreshRate:    DefaultRefreshRate,
		RecentWindow:   3,
		HistoryExcerpt: 100,
		RecentExcerpt:  50,
		Backend:        BackendMemory,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{
			Extensions: []string{".txt", ".csv"},
			Debounce:   500 * time.Millisecond,
		},
	}
}

// Dir returns the senti config directory under XDG_CONFIG_HOME.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, "senti")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty), applies
// environment overrides and validates the result. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	o := envOverrides{
		Language:    c.Language,
		AutoRefresh: c.AutoRefresh,
		RefreshRate: c.RefreshRate,
		Backend:     c.Backend,
		LogLevel:    c.Log.Level,
		LogFormat:   c.Log.Format,
	}
	if err := env.Load(&o, nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	c.Language = o.Language
	c.AutoRefresh = o.AutoRefresh
	c.RefreshRate = o.RefreshRate
	c.Backend = o.Backend
	c.Log.Level = o.LogLevel
	c.Log.Format = o.LogFormat
	return nil
}

// Validate checks every setting and normalises extensions to lower case
// with a leading dot.
func (c *Config) Validate() error {
	if c.RefreshRate < MinRefreshRate || c.RefreshRate > MaxRefreshRate {
		return fmt.Errorf("%w, got %d", ErrInvalidRefreshRate, c.RefreshRate)
	}

	if !slices.Contains(Languages, c.Language) {
		return fmt.Errorf("unknown language %q (valid: %s)", c.Language, strings.Join(Languages, ", "))
	}

	switch c.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (valid: %s, %s)", c.Backend, BackendMemory, BackendSQLite)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (valid: text, json)", c.Log.Format)
	}

	if c.RecentWindow < 1 {
		return fmt.Errorf("recent_window must be at least 1, got %d", c.RecentWindow)
	}
	if c.HistoryExcerpt < 4 || c.RecentExcerpt < 4 {
		return fmt.Errorf("excerpt lengths must be at least 4 characters")
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if len(c.Watch.Extensions) == 0 {
		return fmt.Errorf("watch.extensions must list at least one extension")
	}
	for i, ext := range c.Watch.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			return fmt.Errorf("watch.extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Watch.Extensions[i] = ext
	}

	return nil
}

// RefreshInterval returns RefreshRate as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshRate) * time.Second
}
