package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

const (
	// DateLayout is the layout of the date column of a ledger line
	DateLayout = "2006-01-02"
	// ClockLayout is the layout of a punch
	ClockLayout = "15:04:05"
)

// clockPattern matches a strict HH:MM:SS punch
var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

// IsClock reports whether s has the strict HH:MM:SS shape.
// It does not check that the hour and minute are in range.
func IsClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ParseClock parses a punch into a time on the zero date.
// Besides HH:MM:SS it accepts H:MM:SS and HH:MM, which hand-edited
// ledgers sometimes contain.
func ParseClock(s string) (time.Time, error) {
	for _, layout := range []string{ClockLayout, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid clock '%s': expected HH:MM:SS", s)
}

// FormatClock formats t as HH:MM:SS
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// Stamp returns the ledger date and clock strings for t in local time.
func Stamp(t time.Time) (date, clock string) {
	t = t.Local()
	return t.Format(DateLayout), t.Format(ClockLayout)
}
