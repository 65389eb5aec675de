package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error for missing file: %v", err)
	}

	want := Default()
	if cfg.Language != want.Language || cfg.RefreshRate != want.RefreshRate || cfg.Backend != want.Backend {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
	if cfg.RecentWindow != 3 || cfg.HistoryExcerpt != 100 || cfg.RecentExcerpt != 50 {
		t.Errorf("unexpected excerpt/window defaults: %+v", cfg)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 500ms", cfg.Watch.Debounce)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
language: French
auto_refresh: true
refresh_rate: 7
backend: sqlite
log:
  level: debug
watch:
  extensions: [TXT, ".md"]
  debounce: 2s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Language != "French" {
		t.Errorf("Language = %q, want French", cfg.Language)
	}
	if !cfg.AutoRefresh {
		t.Error("AutoRefresh = false, want true")
	}
	if cfg.RefreshRate != 7 {
		t.Errorf("RefreshRate = %d, want 7", cfg.RefreshRate)
	}
	if cfg.RefreshInterval() != 7*time.Second {
		t.Errorf("RefreshInterval() = %v, want 7s", cfg.RefreshInterval())
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
	if cfg.RecentWindow != 3 {
		t.Errorf("RecentWindow = %d, want 3", cfg.RecentWindow)
	}
	if got := strings.Join(cfg.Watch.Extensions, ","); got != ".txt,.md" {
		t.Errorf("Watch.Extensions = %q, want .txt,.md", got)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("Watch.Debounce = %v, want 2s", cfg.Watch.Debounce)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "language: German\nrefresh_rate: 4\n")
	t.Setenv("SENTI_LANGUAGE", "Italian")
	t.Setenv("SENTI_REFRESH_RATE", "9")
	t.Setenv("SENTI_AUTO_REFRESH", "true")
	t.Setenv("SENTI_LOG_FORMAT", "json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Language != "Italian" {
		t.Errorf("Language = %q, want Italian", cfg.Language)
	}
	if cfg.RefreshRate != 9 {
		t.Errorf("RefreshRate = %d, want 9", cfg.RefreshRate)
	}
	if !cfg.AutoRefresh {
		t.Error("AutoRefresh = false, want true")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "refresh_rate: [not, a, number\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() should fail on malformed YAML")
	}
}

func TestLoad_RefreshRateOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero", "refresh_rate: 0\n"},
		{"too high", "refresh_rate: 11\n"},
		{"negative", "refresh_rate: -3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, ErrInvalidRefreshRate) {
				t.Errorf("Load() error = %v, want ErrInvalidRefreshRate", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bounds low", func(c *Config) { c.RefreshRate = 1 }, ""},
		{"bounds high", func(c *Config) { c.RefreshRate = 10 }, ""},
		{"unknown language", func(c *Config) { c.Language = "Klingon" }, "unknown language"},
		{"unknown backend", func(c *Config) { c.Backend = "redis" }, "unknown backend"},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }, "unknown log level"},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "unknown log format"},
		{"zero window", func(c *Config) { c.RecentWindow = 0 }, "recent_window"},
		{"tiny excerpt", func(c *Config) { c.RecentExcerpt = 2 }, "excerpt"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "debounce"},
		{"no extensions", func(c *Config) { c.Watch.Extensions = nil }, "extensions"},
		{"blank extension", func(c *Config) { c.Watch.Extensions = []string{" "} }, "extensions[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("DefaultPath() = %q, want config.yaml basename", path)
	}
	if filepath.Base(filepath.Dir(path)) != "senti" {
		t.Errorf("DefaultPath() = %q, want senti directory", path)
	}
}
