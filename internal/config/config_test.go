package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/cmdlog/internal/config/loader"
	"github.com/dshills/cmdlog/internal/logging"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.History.MaxSize != 1000 {
		t.Errorf("History.MaxSize = %d, want 1000", cfg.History.MaxSize)
	}
	if cfg.LogLevel() != logging.LevelInfo {
		t.Errorf("LogLevel() = %v, want INFO", cfg.LogLevel())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "cmdlog.toml", `
[history]
max_size = 50

[logging]
level = "debug"

[script]
timeout = "250ms"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.History.MaxSize != 50 {
		t.Errorf("History.MaxSize = %d, want 50", cfg.History.MaxSize)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Script.Timeout != 250*time.Millisecond {
		t.Errorf("Script.Timeout = %v, want 250ms", cfg.Script.Timeout)
	}
	if cfg.Script.CallLimit != Default().Script.CallLimit {
		t.Errorf("Script.CallLimit = %d, want default", cfg.Script.CallLimit)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "cmdlog.yaml", "history:\n  max_size: 7\nscript:\n  timeout: 2\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.History.MaxSize != 7 {
		t.Errorf("History.MaxSize = %d, want 7", cfg.History.MaxSize)
	}
	if cfg.Script.Timeout != 2*time.Second {
		t.Errorf("Script.Timeout = %v, want 2s", cfg.Script.Timeout)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "cmdlog.toml", "[history]\nmax_size = 50\n")
	t.Setenv("CMDLOG_HISTORY_MAX_SIZE", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.History.MaxSize != 5 {
		t.Errorf("History.MaxSize = %d, want 5", cfg.History.MaxSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
	}{
		{"negative size", "[history]\nmax_size = -1\n", "history.max_size"},
		{"bad level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"wrong type", "[history]\nmax_size = \"many\"\n", "history.max_size"},
		{"bad duration", "[script]\ntimeout = \"soon\"\n", "script.timeout"},
		{"overflowing seconds", "[script]\ntimeout = 9999999999999\n", "script.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "cmdlog.toml", tt.content))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Load() error = %v, want *ValidationError", err)
			}
			if verr.Path != tt.path {
				t.Errorf("ValidationError.Path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestLoadParseError(t *testing.T) {
	_, err := Load(writeFile(t, "cmdlog.toml", "[history\n"))
	var perr *loader.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("Load() error = %v, want *loader.ParseError", err)
	}
}

func TestFromMapTimeoutSeconds(t *testing.T) {
	cfg, err := FromMap(map[string]any{
		"script": map[string]any{"timeout": maxSeconds},
	})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	if cfg.Script.Timeout != time.Duration(maxSeconds)*time.Second || cfg.Script.Timeout < 0 {
		t.Errorf("Script.Timeout = %v", cfg.Script.Timeout)
	}

	if _, err := FromMap(map[string]any{
		"script": map[string]any{"timeout": maxSeconds + 1},
	}); err == nil {
		t.Error("FromMap() accepted a timeout that overflows time.Duration")
	}
}

func TestFromMapTypeMismatch(t *testing.T) {
	_, err := FromMap(map[string]any{
		"logging": map[string]any{"level": int64(3)},
	})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("FromMap() error = %v, want %v", err, ErrTypeMismatch)
	}
}
