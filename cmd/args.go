package cmd

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/mdomi/timetracker/internal/config"
	"github.com/mdomi/timetracker/internal/ledger"
)

// Values of the optional-value flags when given without one
const (
	printToday   = "today"
	useDefault   = "default"
	missingValue = ""
)

var errMissingFile = errors.New("a timesheet storage file must be provided")

// options receives the raw flag values
type options struct {
	print     string
	message   string
	quitting  string
	count     string
	dryRun    bool
	repair    bool
	list      bool
	undo      bool
	helpAlias bool
}

// bindFlags registers the command line flags on fs
func bindFlags(fs *pflag.FlagSet, opts *options) {
	fs.SortFlags = false

	fs.StringVarP(&opts.print, "print", "p", missingValue, "print the line for DATE (default today); a partial date such as 2024-01 prints every match")
	fs.Lookup("print").NoOptDefVal = printToday

	fs.StringVarP(&opts.message, "message", "m", "", "add a message to the current day")

	fs.BoolVarP(&opts.dryRun, "dry-run", "d", false, "print what the line would have looked like, but do not modify the file")

	fs.StringVarP(&opts.quitting, "quitting-time", "q", missingValue, "print the time you would have to stop working to meet HOURS hours (default 8)")
	fs.Lookup("quitting-time").NoOptDefVal = useDefault

	fs.BoolVarP(&opts.repair, "repair", "r", false, "reparse all lines in the file to ensure the hours worked is correct")
	fs.BoolVarP(&opts.list, "list", "l", false, "list the most recent lines (limited by --count)")
	fs.BoolVarP(&opts.undo, "undo", "u", false, "undo the most recent punch")

	fs.StringVarP(&opts.count, "count", "c", missingValue, "restrict list-based functionality to the most recent COUNT lines (default 5)")
	fs.Lookup("count").NoOptDefVal = useDefault

	fs.BoolVarP(&opts.helpAlias, "help-alias", "?", false, "help for timetracker")
	_ = fs.MarkHidden("help-alias")
}

// valueShapes tells which separate tokens are taken as the value of an
// optional-value flag. Any other token stays a positional argument, so
// "-p FILE" prints today instead of reading a date named FILE.
var valueShapes = map[string]*regexp.Regexp{
	"print":         regexp.MustCompile(`^\d[-\d]*$`),
	"quitting-time": regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`),
	"count":         regexp.MustCompile(`^\d+$`),
}

// attached records a value joined onto the flag token before it
type attached struct {
	index int    // position of the rewritten token in the output
	token string // the flag token as given
	value string
}

// attachOptionalValues rewrites "-p DATE", "--count 3" and the like
// into "-p=DATE" and "--count=3", so each optional value belongs to the
// flag right before it wherever it appears on the command line. pflag
// never consumes a separate token for a flag with NoOptDefVal. When
// attaching would leave no positional argument for FILE, the last
// attached value is given back.
func attachOptionalValues(fs *pflag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))
	var joined []attached
	positionals := 0

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			positionals += len(args) - i - 1
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			out = append(out, arg)
			positionals++
			continue
		}

		flag, inline, token := lastFlag(fs, arg)
		out = append(out, token)
		if flag == nil || inline || i+1 == len(args) {
			continue
		}

		next := args[i+1]
		switch {
		case flag.Value.Type() == "bool":
		case flag.NoOptDefVal == "":
			// required value, taken by the parser itself
			out = append(out, next)
			i++
		case valueShapes[flag.Name] != nil && valueShapes[flag.Name].MatchString(next):
			joined = append(joined, attached{index: len(out) - 1, token: arg, value: next})
			out[len(out)-1] = arg + "=" + next
			i++
		}
	}

	if positionals == 0 && len(joined) > 0 {
		last := joined[len(joined)-1]
		out[last.index] = last.token
		out = slices.Insert(out, last.index+1, last.value)
	}
	return out
}

// lastFlag returns the flag that a separate value would belong to: the
// named flag of a long option, or the first flag taking a value in a
// shorthand group. inline reports that the token already carries the
// value. token is arg with an attached optional value written as
// "-p=VALUE", since pflag reads "-pVALUE" as more shorthands when p has
// a NoOptDefVal.
func lastFlag(fs *pflag.FlagSet, arg string) (flag *pflag.Flag, inline bool, token string) {
	if strings.HasPrefix(arg, "--") {
		name, _, hasValue := strings.Cut(arg[2:], "=")
		return fs.Lookup(name), hasValue, arg
	}

	shorthands := arg[1:]
	for i := 0; i < len(shorthands); i++ {
		flag = fs.ShorthandLookup(shorthands[i : i+1])
		if flag == nil {
			return nil, false, arg
		}
		if flag.Value.Type() == "bool" {
			continue
		}

		rest := shorthands[i+1:]
		switch {
		case rest == "":
			return flag, false, arg
		case flag.NoOptDefVal != "" && rest[0] != '=':
			return flag, true, arg[:i+2] + "=" + rest
		default:
			return flag, true, arg
		}
	}
	return flag, false, arg
}

// resolveArgs turns the parsed flags and positional arguments into the
// ledger path and ledger flags. The first positional argument is the
// ledger; any others are an error.
func resolveArgs(fs *pflag.FlagSet, opts *options, args []string, cfg config.Config) (string, ledger.Flags, error) {
	if len(args) == 0 {
		return "", ledger.Flags{}, errMissingFile
	}
	path := args[0]
	if len(args) > 1 {
		return "", ledger.Flags{}, fmt.Errorf("unexpected arguments: %s", strings.Join(args[1:], " "))
	}

	flags := ledger.Flags{
		Repair: opts.repair,
		Undo:   opts.undo,
		List:   opts.list,
		DryRun: opts.dryRun,
		Count:  cfg.ListCount,
	}

	if fs.Changed("print") {
		date := opts.print
		if date == printToday {
			date = ""
		}
		flags.Print = &date
	}

	if fs.Changed("quitting-time") {
		hours := cfg.DefaultHours.Decimal
		if opts.quitting != useDefault {
			parsed, err := config.ParseHours(opts.quitting)
			if err != nil {
				return "", ledger.Flags{}, fmt.Errorf("invalid --quitting-time: %w", err)
			}
			hours = parsed
		}
		flags.QuittingTime = &hours
	}

	if fs.Changed("message") {
		message := opts.message
		flags.Message = &message
	}

	if fs.Changed("count") && opts.count != useDefault {
		n, err := strconv.Atoi(opts.count)
		if err != nil || n < 0 {
			return "", ledger.Flags{}, fmt.Errorf("invalid --count '%s': expected a non-negative integer", opts.count)
		}
		flags.Count = n
	}

	return path, flags, nil
}
