package cmd

import (
	"io"
	"os"
	"time"

	"github.com/mdomi/timetracker/internal/config"
)

// Deps holds external dependencies for the command, enabling testability.
type Deps struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Exit       func(code int)
	Now        func() time.Time
	ConfigPath func() (string, error)
	// EnvFile is an optional .env file with TIMETRACKER_* settings
	EnvFile string
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Exit:       os.Exit,
		Now:        time.Now,
		ConfigPath: config.GetConfigPath,
		EnvFile:    ".env",
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}
