package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"lowercase yes", "yes\n", true},
		{"uppercase YES", "YES\n", true},
		{"mixed case Yes", "Yes\n", true},
		{"lowercase n", "n\n", false},
		{"lowercase no", "no\n", false},
		{"empty input", "\n", false},
		{"random text", "maybe\n", false},
		{"y with spaces", "  y  \n", true},
		{"yes with spaces", "  yes  \n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.input)
			result := confirm(reader, io.Discard, "Test?")
			if result != tt.expected {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfirm_EOF(t *testing.T) {
	// Test with empty reader (simulates EOF)
	if confirm(strings.NewReader(""), io.Discard, "Test?") {
		t.Error("confirm(EOF) = true, want false")
	}
}

func TestConfirm_ErrorReader(t *testing.T) {
	if confirm(&errorReader{}, io.Discard, "Test?") {
		t.Error("confirm(error) = true, want false")
	}
}

// errorReader is a reader that always returns an error
type errorReader struct{}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

func TestRunClean(t *testing.T) {
	stubConfig(t)
	logPath := filepath.Join(t.TempDir(), "shield.log")
	t.Setenv("SHIELD_LOG_PATH", logPath)

	origSkip := skipConfirm
	defer func() { skipConfirm = origSkip }()
	skipConfirm = false

	var out bytes.Buffer
	if err := runCleanWithReader(strings.NewReader(""), &out); err != nil {
		t.Fatalf("runClean() error = %v", err)
	}
	if !strings.Contains(out.String(), "Nothing to clean.") {
		t.Errorf("output = %q, want nothing to clean", out.String())
	}

	if err := os.WriteFile(logPath, []byte("log"), 0644); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := runCleanWithReader(strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("runClean() error = %v", err)
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Error("log file should survive a declined prompt")
	}

	out.Reset()
	if err := runCleanWithReader(strings.NewReader("y\n"), &out); err != nil {
		t.Fatalf("runClean() error = %v", err)
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Error("log file should be removed after confirmation")
	}
	if !strings.Contains(out.String(), "Removed 1 log file.") {
		t.Errorf("output = %q", out.String())
	}
}
