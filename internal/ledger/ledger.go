// Package ledger applies one operation to the lines of a timesheet.
//
// The ledger is a plain slice of lines, one per day. Apply never
// modifies the slice it is given; it returns a new one together with
// the text to show the user and whether the result should be written
// back.
package ledger

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mdomi/timetracker/internal/entry"
)

// Precondition errors. Nothing is written when Apply returns one of these.
var (
	ErrDayNotStarted = errors.New("you must have started the day to calculate quitting time")
	ErrNotWorking    = errors.New("you must be currently working to calculate quitting time")
	ErrEmptyLedger   = errors.New("nothing to undo: the ledger is empty")
)

// Clock is the current date and time as they appear in a ledger line
type Clock struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM:SS
}

// Result is the outcome of an operation
type Result struct {
	Lines  []string // the ledger after the operation
	Output []string // lines to print
	Save   bool     // whether Lines should be written back
}

// Apply runs req against lines.
func Apply(lines []string, now Clock, req Request) (Result, error) {
	lines = append([]string(nil), lines...)

	var (
		res Result
		err error
	)
	switch op := req.Op.(type) {
	case Punch:
		res = punch(lines, now)
	case Print:
		res = printMatching(lines, now, op)
	case Annotate:
		res = annotate(lines, now, op)
	case Repair:
		res = repair(lines)
	case Undo:
		res, err = undo(lines)
	case List:
		res = list(lines, op)
	case QuittingTime:
		res, err = quittingTime(lines, now, op)
	case nil:
		res = punch(lines, now)
	default:
		return Result{}, fmt.Errorf("unsupported operation %T", op)
	}
	if err != nil {
		return Result{}, err
	}

	if req.DryRun {
		res.Save = false
	}
	return res, nil
}

// today returns the indexes of the lines recorded for date
func today(lines []string, date string) []int {
	var idx []int
	for i, line := range lines {
		if strings.HasPrefix(line, date) {
			idx = append(idx, i)
		}
	}
	return idx
}

// updateToday applies fn to every line for today, or to a fresh entry
// appended to the ledger when there is none.
func updateToday(lines []string, now Clock, fresh func() *entry.Entry, fn func(*entry.Entry)) Result {
	var out []string
	for _, i := range today(lines, now.Date) {
		e := entry.Parse(lines[i])
		fn(e)
		lines[i] = e.String()
		out = append(out, lines[i])
	}

	if len(out) == 0 {
		line := fresh().String()
		lines = append(lines, line)
		out = append(out, line)
	}

	return Result{Lines: lines, Output: out, Save: true}
}

func punch(lines []string, now Clock) Result {
	return updateToday(lines, now,
		func() *entry.Entry { return entry.New(now.Date, []string{now.Time}, "") },
		func(e *entry.Entry) { e.AddPunch(now.Time) },
	)
}

func annotate(lines []string, now Clock, op Annotate) Result {
	message := entry.NormalizeMessage(op.Message)
	return updateToday(lines, now,
		func() *entry.Entry { return entry.New(now.Date, nil, message) },
		func(e *entry.Entry) { e.SetMessage(message) },
	)
}

// printMatching allows a run of digits and dashes before the date, so a
// partial date such as 01-15 or 2024-01 selects every line it ends or
// starts.
func printMatching(lines []string, now Clock, op Print) Result {
	date := op.Date
	if date == "" {
		date = now.Date
	}
	pattern := regexp.MustCompile(`^[-\d]*` + regexp.QuoteMeta(date))

	var out []string
	for _, line := range lines {
		if pattern.MatchString(line) {
			out = append(out, line)
		}
	}
	return Result{Lines: lines, Output: out}
}

func repair(lines []string) Result {
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = entry.Parse(line).String()
	}
	return Result{Lines: lines, Save: true}
}

func undo(lines []string) (Result, error) {
	if len(lines) == 0 {
		return Result{}, ErrEmptyLedger
	}
	last := len(lines) - 1
	e := entry.Parse(lines[last])
	e.PopPunch()
	lines[last] = e.String()
	return Result{Lines: lines, Output: []string{lines[last]}, Save: true}, nil
}

func list(lines []string, op List) Result {
	start := 0
	if op.Count > 0 && op.Count < len(lines) {
		start = len(lines) - op.Count
	}
	return Result{Lines: lines, Output: append([]string(nil), lines[start:]...)}
}

func quittingTime(lines []string, now Clock, op QuittingTime) (Result, error) {
	idx := today(lines, now.Date)
	if len(idx) == 0 {
		return Result{}, ErrDayNotStarted
	}
	e := entry.Parse(lines[idx[0]])
	if !e.IsCurrentlyWorking() {
		return Result{}, ErrNotWorking
	}

	at, err := e.QuittingTime(op.Hours)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute quitting time: %w", err)
	}
	return Result{Lines: lines, Output: []string{at}}, nil
}
