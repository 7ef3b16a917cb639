// Package config loads the optional timetracker configuration: a TOML
// file in the user config directory, overridden by TIMETRACKER_*
// environment variables (read from the process or a .env file).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/mdomi/timetracker/internal/osutil"
	"github.com/mdomi/timetracker/internal/storage"
)

const (
	// AppName is the application name used for config directory
	AppName = "timetracker"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// MaxHours is the largest accepted day length, one year of hours
const MaxHours = 24 * 365

// ErrInvalidHours is returned for a non-numeric hours value or one
// outside 0..MaxHours
var ErrInvalidHours = errors.New("hours must be a number between 0 and 8760")

var maxHours = decimal.NewFromInt(MaxHours)

// Config represents the application configuration
type Config struct {
	// DefaultHours is the day length used by --quitting-time without a value
	DefaultHours Hours `toml:"default_hours"`
	// ListCount is the number of lines --list shows without --count
	ListCount int `toml:"list_count"`
	// BackupCount is how many FILE.bak.N copies to keep; 0 disables backups
	BackupCount int `toml:"backup_count"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `toml:"log_level"`
	// Color is one of auto, always, never
	Color string `toml:"color"`
}

// Hours is a decimal number of hours that may be written in TOML as an
// integer, a float or a string.
type Hours struct {
	decimal.Decimal
}

// UnmarshalTOML implements toml.Unmarshaler
func (h *Hours) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case int64:
		h.Decimal = decimal.NewFromInt(v)
	case float64:
		h.Decimal = decimal.NewFromFloat(v)
	case string:
		d, err := ParseHours(v)
		if err != nil {
			return err
		}
		h.Decimal = d
	default:
		return fmt.Errorf("default_hours: unsupported type %T", v)
	}
	return nil
}

// ParseHours parses a number of hours such as "8" or "7.5"
func ParseHours(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() || d.GreaterThan(maxHours) {
		return decimal.Decimal{}, fmt.Errorf("%w, got '%s'", ErrInvalidHours, s)
	}
	return d, nil
}

// DefaultConfig returns the built-in defaults: an 8 hour day, the 5 most
// recent lines, 3 backups.
func DefaultConfig() Config {
	return Config{
		DefaultHours: Hours{decimal.NewFromInt(8)},
		ListCount:    5,
		BackupCount:  storage.DefaultBackupCount,
		LogLevel:     "warn",
		Color:        ColorAuto,
	}
}

// GetConfigPath returns the path to the config file. TIMETRACKER_CONFIG
// takes precedence; otherwise the file lives in the user config
// directory, which is created if needed.
func GetConfigPath() (string, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return path, nil
	}

	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads the config file at path. Keys absent from the file keep
// their default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key '%s' in %s", undecoded[0], path)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields DefaultConfig.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Normalize lowercases and trims the string settings
func (c *Config) Normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
}

// Validate checks every setting
func (c Config) Validate() error {
	if c.DefaultHours.IsNegative() || c.DefaultHours.GreaterThan(maxHours) {
		return fmt.Errorf("default_hours: %w", ErrInvalidHours)
	}
	if c.ListCount < 0 {
		return fmt.Errorf("list_count must not be negative, got %d", c.ListCount)
	}
	if c.BackupCount < 0 {
		return fmt.Errorf("backup_count must not be negative, got %d", c.BackupCount)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never, got '%s'", c.Color)
	}
	return nil
}

// Level returns the slog level for LogLevel
func (c Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("log_level must be one of debug, info, warn, error, got '%s'", s)
	}
}
