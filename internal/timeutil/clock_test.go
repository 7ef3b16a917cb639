package timeutil

import (
	"testing"
	"time"
)

func TestIsClock(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"09:00:00", true},
		{"23:59:59", true},
		{"99:99:99", true}, // shape only
		{"9:00:00", false},
		{"09:00", false},
		{"09:00:00 ", false},
		{"standup notes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsClock(tt.input); got != tt.expected {
				t.Errorf("IsClock(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantHour  int
		wantMin   int
		wantSec   int
		wantError bool
	}{
		{"full clock", "09:15:30", 9, 15, 30, false},
		{"single digit hour", "9:15:30", 9, 15, 30, false},
		{"no seconds", "17:45", 17, 45, 0, false},
		{"midnight", "00:00:00", 0, 0, 0, false},
		{"out of range", "25:00:00", 0, 0, 0, true},
		{"garbage", "lunch", 0, 0, 0, true},
		{"empty", "", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("ParseClock(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) returned unexpected error: %v", tt.input, err)
			}
			if got.Hour() != tt.wantHour || got.Minute() != tt.wantMin || got.Second() != tt.wantSec {
				t.Errorf("ParseClock(%q) = %s, expected %02d:%02d:%02d", tt.input, FormatClock(got), tt.wantHour, tt.wantMin, tt.wantSec)
			}
		})
	}
}

func TestFormatClock_WrapsPastMidnight(t *testing.T) {
	start, _ := ParseClock("22:00:00")
	got := FormatClock(start.Add(3 * time.Hour))
	if got != "01:00:00" {
		t.Errorf("FormatClock = %q, expected %q", got, "01:00:00")
	}
}

func TestStamp(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	date, clock := Stamp(now)
	if date != "2024-01-01" {
		t.Errorf("date = %q, expected %q", date, "2024-01-01")
	}
	if clock != "09:00:00" {
		t.Errorf("clock = %q, expected %q", clock, "09:00:00")
	}
}
