package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// Helper to create a temporary ledger file with content
func createTempLedger(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "timesheet.txt")
	if content != "" {
		if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create temp ledger file: %v", err)
		}
	}
	return tmpFile
}

// Helper to read file content
func readFileContent(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "two lines",
			content:  "2024-01-01    8.0    09:00:00    17:00:00\n2024-01-02    0.0    09:00:00\n",
			expected: []string{"2024-01-01    8.0    09:00:00    17:00:00", "2024-01-02    0.0    09:00:00"},
		},
		{
			name:     "no trailing newline",
			content:  "2024-01-01    0.0    09:00:00",
			expected: []string{"2024-01-01    0.0    09:00:00"},
		},
		{
			name:     "windows line endings",
			content:  "2024-01-01    0.0    09:00:00\r\n2024-01-02    0.0\r\n",
			expected: []string{"2024-01-01    0.0    09:00:00", "2024-01-02    0.0"},
		},
		{
			name:     "blank line kept",
			content:  "2024-01-01    0.0\n\n2024-01-02    0.0\n",
			expected: []string{"2024-01-01    0.0", "", "2024-01-02    0.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempLedger(t, tt.content)
			lines, err := ReadLines(path)
			if err != nil {
				t.Fatalf("ReadLines() returned unexpected error: %v", err)
			}
			if !reflect.DeepEqual(lines, tt.expected) {
				t.Errorf("ReadLines() = %q, expected %q", lines, tt.expected)
			}
		})
	}
}

func TestReadLines_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines() on missing file returned error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("ReadLines() on missing file = %q, expected no lines", lines)
	}
}

func TestReadLines_Directory(t *testing.T) {
	if _, err := ReadLines(t.TempDir()); err == nil {
		t.Error("ReadLines() on a directory expected error, got nil")
	}
}

func TestWriteLines(t *testing.T) {
	path := createTempLedger(t, "old content\n")
	lines := []string{"2024-01-01    0.0    09:00:00", "2024-01-02    0.0    standup"}

	if err := WriteLines(path, lines); err != nil {
		t.Fatalf("WriteLines() returned unexpected error: %v", err)
	}

	expected := "2024-01-01    0.0    09:00:00\n2024-01-02    0.0    standup\n"
	if got := readFileContent(t, path); got != expected {
		t.Errorf("file content = %q, expected %q", got, expected)
	}

	// No temporary files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() returned unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the ledger in the directory, found %d entries", len(entries))
	}
}

func TestWriteLines_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	if err := WriteLines(path, []string{"2024-01-01    0.0    09:00:00"}); err != nil {
		t.Fatalf("WriteLines() returned unexpected error: %v", err)
	}
	if got := readFileContent(t, path); got != "2024-01-01    0.0    09:00:00\n" {
		t.Errorf("file content = %q", got)
	}
}

func TestWriteLines_PreservesMode(t *testing.T) {
	path := createTempLedger(t, "x\n")
	if err := os.Chmod(path, 0600); err != nil {
		t.Fatalf("Chmod() returned unexpected error: %v", err)
	}
	if err := WriteLines(path, []string{"y"}); err != nil {
		t.Fatalf("WriteLines() returned unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() returned unexpected error: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, expected %v", info.Mode().Perm(), os.FileMode(0600))
	}
}

func TestWriteLines_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "timesheet.txt")
	if err := WriteLines(path, []string{"x"}); err == nil {
		t.Error("WriteLines() into a missing directory expected error, got nil")
	}
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesheet.txt")
	lines := []string{"2024-01-01    8.0    09:00:00    17:00:00", "", "2024-01-02    0.0    09:00:00"}
	if err := WriteLines(path, lines); err != nil {
		t.Fatalf("WriteLines() returned unexpected error: %v", err)
	}
	got, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines() returned unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("ReadLines() = %q, expected %q", got, lines)
	}
}
