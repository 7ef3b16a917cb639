package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestEnvironment_DotEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "TIMETRACKER_HOURS=6\nTIMETRACKER_COUNT=12\nUNRELATED=1\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write .env file: %v", err)
	}

	env, err := Environment(envFile)
	if err != nil {
		t.Fatalf("Environment() returned unexpected error: %v", err)
	}
	if env[EnvHours] != "6" {
		t.Errorf("env[%s] = %q, expected %q", EnvHours, env[EnvHours], "6")
	}
	if env[EnvCount] != "12" {
		t.Errorf("env[%s] = %q, expected %q", EnvCount, env[EnvCount], "12")
	}
	if _, ok := env["UNRELATED"]; ok {
		t.Error("Environment() picked up an unrelated variable")
	}
}

func TestEnvironment_ProcessOverridesFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("TIMETRACKER_HOURS=6\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env file: %v", err)
	}
	t.Setenv(EnvHours, "7")

	env, err := Environment(envFile)
	if err != nil {
		t.Fatalf("Environment() returned unexpected error: %v", err)
	}
	if env[EnvHours] != "7" {
		t.Errorf("env[%s] = %q, expected %q", EnvHours, env[EnvHours], "7")
	}
}

func TestEnvironment_MissingFile(t *testing.T) {
	clearEnv(t)
	env, err := Environment(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("Environment() returned unexpected error: %v", err)
	}
	if len(env) != 0 {
		t.Errorf("Environment() = %v, expected empty", env)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg, err := ApplyEnv(DefaultConfig(), map[string]string{
		EnvHours:    "7.5",
		EnvCount:    "3",
		EnvBackups:  "0",
		EnvLogLevel: "DEBUG",
		EnvColor:    "never",
	})
	if err != nil {
		t.Fatalf("ApplyEnv() returned unexpected error: %v", err)
	}
	if !cfg.DefaultHours.Equal(decimal.RequireFromString("7.5")) {
		t.Errorf("DefaultHours = %s, expected 7.5", cfg.DefaultHours)
	}
	if cfg.ListCount != 3 {
		t.Errorf("ListCount = %d, expected 3", cfg.ListCount)
	}
	if cfg.BackupCount != 0 {
		t.Errorf("BackupCount = %d, expected 0", cfg.BackupCount)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, expected %q", cfg.LogLevel, "debug")
	}
	if cfg.Color != ColorNever {
		t.Errorf("Color = %q, expected %q", cfg.Color, ColorNever)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad hours", map[string]string{EnvHours: "lots"}},
		{"hours out of range", map[string]string{EnvHours: "99999999"}},
		{"bad count", map[string]string{EnvCount: "five"}},
		{"negative count", map[string]string{EnvCount: "-5"}},
		{"bad backups", map[string]string{EnvBackups: "x"}},
		{"bad color", map[string]string{EnvColor: "rainbow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ApplyEnv(DefaultConfig(), tt.env); err == nil {
				t.Errorf("ApplyEnv(%v) expected error, got nil", tt.env)
			}
		})
	}
}
