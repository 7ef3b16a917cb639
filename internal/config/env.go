package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables understood by ApplyEnv
const (
	EnvConfig   = "TIMETRACKER_CONFIG"
	EnvHours    = "TIMETRACKER_HOURS"
	EnvCount    = "TIMETRACKER_COUNT"
	EnvBackups  = "TIMETRACKER_BACKUPS"
	EnvLogLevel = "TIMETRACKER_LOG_LEVEL"
	EnvColor    = "TIMETRACKER_COLOR"
)

var envKeys = []string{EnvHours, EnvCount, EnvBackups, EnvLogLevel, EnvColor}

// Environment collects the TIMETRACKER_* settings. Values in envFile (a
// .env file, ignored when missing) are overridden by the process
// environment.
func Environment(envFile string) (map[string]string, error) {
	env := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		for _, key := range envKeys {
			if v, ok := values[key]; ok {
				env[key] = v
			}
		}
	}

	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides cfg with the values in env and validates the result.
func ApplyEnv(cfg Config, env map[string]string) (Config, error) {
	if v, ok := env[EnvHours]; ok {
		hours, err := ParseHours(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvHours, err)
		}
		cfg.DefaultHours = Hours{hours}
	}
	if v, ok := env[EnvCount]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: expected an integer, got '%s'", EnvCount, v)
		}
		cfg.ListCount = n
	}
	if v, ok := env[EnvBackups]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: expected an integer, got '%s'", EnvBackups, v)
		}
		cfg.BackupCount = n
	}
	if v, ok := env[EnvLogLevel]; ok {
		cfg.LogLevel = v
	}
	if v, ok := env[EnvColor]; ok {
		cfg.Color = v
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
