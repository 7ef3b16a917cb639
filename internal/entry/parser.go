package entry

import (
	"regexp"
	"strings"

	"github.com/mdomi/timetracker/internal/timeutil"
)

// fieldSeparator splits a line into fields: two or more whitespace
// characters, or a single tab
var fieldSeparator = regexp.MustCompile(`\s{2,}|\t`)

// whitespaceRun matches any run of whitespace inside a message
var whitespaceRun = regexp.MustCompile(`\s+`)

// Parse reads a ledger line. The stored hours are ignored and
// recomputed. The last field is the message unless it looks like a
// HH:MM:SS punch, so a message that is itself a clock reads back as a
// punch.
func Parse(line string) *Entry {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return New("", nil, "")
	}

	fields := fieldSeparator.Split(line, -1)
	date := fields[0]
	if len(fields) <= 2 {
		return New(date, nil, "")
	}

	rest := fields[2:]
	last := rest[len(rest)-1]
	if timeutil.IsClock(last) {
		return New(date, rest, "")
	}
	return New(date, rest[:len(rest)-1], last)
}

// NormalizeMessage collapses whitespace runs to single spaces and trims
// the ends, so the message can never contain the field separator.
func NormalizeMessage(message string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(message, " "))
}
