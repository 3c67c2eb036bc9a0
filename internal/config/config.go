package config

import (
	"fmt"
	"math"
	"time"

	"github.com/dshills/cmdlog/internal/config/loader"
	"github.com/dshills/cmdlog/internal/logging"
	"github.com/dshills/cmdlog/internal/panel"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "CMDLOG_"

// Config holds all cmdlog settings.
type Config struct {
	History HistoryConfig
	Logging LoggingConfig
	Script  ScriptConfig
}

// HistoryConfig configures the command history.
type HistoryConfig struct {
	// MaxSize is the number of commands retained for undo.
	MaxSize int
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
}

// ScriptConfig configures the Lua script runtime.
type ScriptConfig struct {
	// CallLimit caps history API calls per script run. Zero disables the limit.
	CallLimit int64
	// Timeout bounds a single script run. Zero disables the timeout.
	Timeout time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{MaxSize: panel.DefaultMaxSize},
		Logging: LoggingConfig{Level: "info"},
		Script: ScriptConfig{
			CallLimit: 1_000_000,
			Timeout:   5 * time.Second,
		},
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path or a missing file skips the file layer.
func Load(path string) (Config, error) {
	return LoadFS(loader.DefaultFS(), path)
}

// LoadFS is Load with a custom file system for the file layer.
func LoadFS(fsys loader.FileSystem, path string) (Config, error) {
	var layers []loader.Loader
	if path != "" {
		layers = append(layers, loader.ForPath(fsys, path))
	}
	layers = append(layers, loader.NewEnvLoader(EnvPrefix))

	data := make([]map[string]any, 0, len(layers))
	for _, l := range layers {
		m, err := l.Load()
		if err != nil {
			return Config{}, err
		}
		data = append(data, m)
	}

	cfg, err := FromMap(loader.Merge(data...))
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromMap applies the settings in data on top of Default.
// Unknown keys are ignored.
func FromMap(data map[string]any) (Config, error) {
	cfg := Default()

	if v, ok := loader.GetByPath(data, "history.max_size"); ok {
		n, err := toInt64("history.max_size", v)
		if err != nil {
			return Config{}, err
		}
		if n > math.MaxInt32 {
			return Config{}, &ValidationError{Path: "history.max_size", Value: v, Message: "too large"}
		}
		cfg.History.MaxSize = int(n)
	}

	if v, ok := loader.GetByPath(data, "logging.level"); ok {
		s, ok := v.(string)
		if !ok {
			return Config{}, mismatch("logging.level", v, "string")
		}
		cfg.Logging.Level = s
	}

	if v, ok := loader.GetByPath(data, "script.call_limit"); ok {
		n, err := toInt64("script.call_limit", v)
		if err != nil {
			return Config{}, err
		}
		cfg.Script.CallLimit = n
	}

	if v, ok := loader.GetByPath(data, "script.timeout"); ok {
		d, err := toDuration("script.timeout", v)
		if err != nil {
			return Config{}, err
		}
		cfg.Script.Timeout = d
	}

	return cfg, nil
}

// Validate checks that every setting is in range.
func (c Config) Validate() error {
	if c.History.MaxSize < 0 {
		return &ValidationError{Path: "history.max_size", Value: c.History.MaxSize, Message: "must not be negative"}
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "must be debug, info, warn, or error"}
	}
	if c.Script.CallLimit < 0 {
		return &ValidationError{Path: "script.call_limit", Value: c.Script.CallLimit, Message: "must not be negative"}
	}
	if c.Script.Timeout < 0 {
		return &ValidationError{Path: "script.timeout", Value: c.Script.Timeout, Message: "must not be negative"}
	}
	return nil
}

// LogLevel returns the parsed logging level.
func (c Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

func toInt64(path string, v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
			return int64(n), nil
		}
	}
	return 0, mismatch(path, v, "integer")
}

// toDuration accepts duration strings ("2s") and integer seconds.
func toDuration(path string, v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, &ValidationError{Path: path, Value: v, Message: "not a duration", Err: err}
		}
		return parsed, nil
	case int64:
		return secondsToDuration(path, v, d)
	case int:
		return secondsToDuration(path, v, int64(d))
	}
	return 0, mismatch(path, v, "duration")
}

const maxSeconds = math.MaxInt64 / int64(time.Second)

func secondsToDuration(path string, v any, secs int64) (time.Duration, error) {
	if secs > maxSeconds || secs < -maxSeconds {
		return 0, &ValidationError{Path: path, Value: v, Message: "too large"}
	}
	return time.Duration(secs) * time.Second, nil
}

func mismatch(path string, v any, want string) error {
	return &ValidationError{
		Path:    path,
		Value:   v,
		Message: fmt.Sprintf("expected %s, got %T", want, v),
		Err:     ErrTypeMismatch,
	}
}
