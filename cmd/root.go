package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/mdomi/timetracker/internal/config"
	"github.com/mdomi/timetracker/internal/ledger"
	"github.com/mdomi/timetracker/internal/storage"
	"github.com/mdomi/timetracker/internal/timeutil"
	"github.com/mdomi/timetracker/internal/ui"
)

// Version information, set by SetVersionInfo
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const longDescription = `timetracker keeps a plain text timesheet with one line per day:

  YYYY-MM-DD    H.H    HH:MM:SS    HH:MM:SS    ...    [message]

Running it with only FILE punches the current time on today's line,
alternating between clocking in and clocking out. The hours column is
recomputed on every write.

When several options are given, the first of print, quitting-time,
message, repair, undo and list wins. --dry-run and --count apply on top.

Settings are read from config.toml in the user config directory (or
TIMETRACKER_CONFIG), then from TIMETRACKER_* environment variables and
a .env file in the working directory.`

// NewRootCmd builds the timetracker command. Each call returns a fresh
// command with its own flag state.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "timetracker [options] FILE",
		Short:   "Punch in and out of a plain text timesheet",
		Long:    longDescription,
		Args:    cobra.ArbitraryArgs,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			run(cmd, opts, args)
		},
	}
	cmd.SetVersionTemplate(
		"timetracker version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	bindFlags(cmd.Flags(), opts)
	return cmd
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command with the process arguments
func Execute() error {
	return ExecuteArgs(os.Args[1:])
}

// ExecuteArgs runs the root command with args
func ExecuteArgs(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(attachOptionalValues(cmd.Flags(), args))
	return cmd.Execute()
}

// run performs one ledger operation: read the file, apply, save, print.
func run(cmd *cobra.Command, opts *options, args []string) {
	if opts.helpAlias {
		_ = cmd.Help()
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		ui.NewPrinter(deps.Stderr, config.ColorAuto).Error("Invalid configuration", err, "Fix the config file or the TIMETRACKER_* environment variables")
		deps.Exit(1)
		return
	}

	stdout := ui.NewPrinter(deps.Stdout, cfg.Color)
	stderr := ui.NewPrinter(deps.Stderr, cfg.Color)
	logger := newLogger(deps.Stderr, cfg.Level())

	path, flags, err := resolveArgs(cmd.Flags(), opts, args, cfg)
	if errors.Is(err, errMissingFile) {
		stderr.Error(sentence(err), nil, "Usage: "+cmd.UseLine())
		deps.Exit(1)
		return
	}
	if err != nil {
		stderr.Error(err.Error(), nil, "Run 'timetracker --help' for usage")
		deps.Exit(1)
		return
	}

	lines, err := storage.ReadLines(path)
	if err != nil {
		stderr.Warning(fmt.Sprintf("could not read %s, treating it as empty: %v", path, err))
		logger.Debug("read failed", "path", path, "error", err)
		lines = nil
	}

	today, now := timeutil.Stamp(deps.Now())
	req := ledger.FromFlags(flags)
	logger.Debug("applying operation",
		"path", path,
		"lines", len(lines),
		"operation", fmt.Sprintf("%T", req.Op),
		"dry_run", req.DryRun,
	)

	res, err := ledger.Apply(lines, ledger.Clock{Date: today, Time: now}, req)
	if err != nil {
		if isPrecondition(err) {
			stdout.Println(sentence(err))
			return
		}
		stderr.Error("Failed to update the timesheet", err, "")
		deps.Exit(1)
		return
	}

	if res.Save {
		if err := save(path, res.Lines, cfg.BackupCount, logger); err != nil {
			stderr.Error("Failed to write the timesheet", err, fmt.Sprintf("Check that the file is writable: %s", path))
			deps.Exit(1)
			return
		}
	} else {
		logger.Debug("timesheet left unchanged", "path", path)
	}

	for _, line := range res.Output {
		stdout.Line(line)
	}
}

// loadConfig reads the config file, if any, and applies the environment
func loadConfig() (config.Config, error) {
	cfg := config.DefaultConfig()
	if path, err := deps.ConfigPath(); err == nil {
		loaded, err := config.LoadOrDefault(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	env, err := config.Environment(deps.EnvFile)
	if err != nil {
		return config.Config{}, err
	}
	return config.ApplyEnv(cfg, env)
}

// save backs up the current file and replaces it with lines
func save(path string, lines []string, backups int, logger *slog.Logger) error {
	if err := storage.CreateBackup(path, backups); err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}
	logger.Debug("backups rotated", "path", path, "backups", len(storage.ListBackups(path, backups)))

	if err := storage.WriteLines(path, lines); err != nil {
		return err
	}
	logger.Debug("timesheet written", "path", path, "lines", len(lines))
	return nil
}

func isPrecondition(err error) bool {
	return errors.Is(err, ledger.ErrDayNotStarted) ||
		errors.Is(err, ledger.ErrNotWorking) ||
		errors.Is(err, ledger.ErrEmptyLedger)
}

// sentence capitalizes an error message and ends it with a period
func sentence(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	r := []rune(msg)
	r[0] = unicode.ToUpper(r[0])
	return strings.TrimSuffix(string(r), ".") + "."
}
