// Package entry models one day of the ledger: a date, the hours worked,
// the clock-in/clock-out punches and an optional message.
package entry

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdomi/timetracker/internal/timeutil"
)

// Separator joins the fields of a serialized line
const Separator = "    "

var (
	// ErrNoPunches is returned when a query needs at least one punch
	ErrNoPunches = errors.New("no punches recorded")
	// ErrTargetOutOfRange is returned when a target cannot be reached
	// within the range of time.Duration
	ErrTargetOutOfRange = errors.New("target hours out of range")

	nanosPerHour = decimal.NewFromInt(int64(time.Hour))
	maxNanos     = decimal.NewFromInt(math.MaxInt64)
	minNanos     = decimal.NewFromInt(math.MinInt64)
)

// Entry is one ledger line. Hours is derived from Punches and is
// rewritten by every mutation; callers should not set it directly.
type Entry struct {
	Date    string
	Hours   string
	Punches []string
	Message string
}

// New builds an entry and computes its hours from punches.
func New(date string, punches []string, message string) *Entry {
	e := &Entry{
		Date:    date,
		Punches: append([]string(nil), punches...),
		Message: message,
	}
	e.Repair()
	return e
}

// String serializes the entry back into a ledger line.
func (e *Entry) String() string {
	fields := make([]string, 0, len(e.Punches)+3)
	fields = append(fields, e.Date, e.Hours)
	fields = append(fields, e.Punches...)
	if e.Message != "" {
		fields = append(fields, e.Message)
	}
	return strings.Join(fields, Separator)
}

// Repair recomputes Hours from the punch pairs. Hours are rounded to one
// decimal the way printf("%.1f") rounds a float64, so an exact quarter
// hour goes to the even digit (0.25 -> 0.2, 0.75 -> 0.8).
func (e *Entry) Repair() {
	hours := e.TotalTime().Seconds() / 3600
	e.Hours = decimal.NewFromFloatWithExponent(hours, -20).RoundBank(1).StringFixed(1)
}

// TotalTime sums (out - in) over consecutive punch pairs. A trailing
// unpaired punch and pairs holding an unparseable clock count as zero.
func (e *Entry) TotalTime() time.Duration {
	var total time.Duration
	for i := 0; i+1 < len(e.Punches); i += 2 {
		in, err := timeutil.ParseClock(e.Punches[i])
		if err != nil {
			continue
		}
		out, err := timeutil.ParseClock(e.Punches[i+1])
		if err != nil {
			continue
		}
		total += out.Sub(in)
	}
	return total
}

// HasStartedDay reports whether any punch was recorded
func (e *Entry) HasStartedDay() bool {
	return len(e.Punches) > 0
}

// IsCurrentlyWorking reports whether the last punch is an open clock-in
func (e *Entry) IsCurrentlyWorking() bool {
	return len(e.Punches)%2 == 1
}

// LastPunch returns the most recent punch, or "" if there is none
func (e *Entry) LastPunch() string {
	if len(e.Punches) == 0 {
		return ""
	}
	return e.Punches[len(e.Punches)-1]
}

// AddPunch appends a punch and recomputes hours
func (e *Entry) AddPunch(clock string) {
	e.Punches = append(e.Punches, clock)
	e.Repair()
}

// PopPunch removes the most recent punch and recomputes hours.
// It returns false when there was nothing to remove.
func (e *Entry) PopPunch() (string, bool) {
	if len(e.Punches) == 0 {
		e.Repair()
		return "", false
	}
	last := e.Punches[len(e.Punches)-1]
	e.Punches = e.Punches[:len(e.Punches)-1]
	e.Repair()
	return last, true
}

// SetMessage replaces the message with its normalized form
func (e *Entry) SetMessage(message string) {
	e.Message = NormalizeMessage(message)
}

// QuittingTime returns the clock at which the day reaches target hours,
// assuming work continues from the last punch.
func (e *Entry) QuittingTime(target decimal.Decimal) (string, error) {
	last := e.LastPunch()
	if last == "" {
		return "", ErrNoPunches
	}
	start, err := timeutil.ParseClock(last)
	if err != nil {
		return "", fmt.Errorf("last punch: %w", err)
	}

	remaining := target.Mul(nanosPerHour).Sub(decimal.NewFromInt(int64(e.TotalTime())))
	if remaining.GreaterThan(maxNanos) || remaining.LessThan(minNanos) {
		return "", fmt.Errorf("%w: %s", ErrTargetOutOfRange, target)
	}

	return timeutil.FormatClock(start.Add(time.Duration(remaining.IntPart()))), nil
}
