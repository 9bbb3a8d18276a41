package logger

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestValidateFilenamePattern(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		expectError bool
		platform    string // "windows", "unix", "all"
	}{
		{name: "default pattern", pattern: "intl-playground-%Y%m%d.log", platform: "all"},
		{name: "dashed date", pattern: "playground-%Y-%m-%d.log", platform: "all"},
		{name: "empty uses default", pattern: "", platform: "all"},
		{name: "absolute path", pattern: "/var/log/playground-%Y%m%d.log", platform: "unix"},
		{name: "slashes in bare pattern", pattern: "playground-%m/%d.log", expectError: true, platform: "all"},
		{name: "colon on windows", pattern: "playground-%H:%M.log", expectError: true, platform: "windows"},
		{name: "colon on unix", pattern: "playground-%H:%M.log", platform: "unix"},
		{name: "pipe on windows", pattern: "playground|%Y.log", expectError: true, platform: "windows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.platform == "windows" && runtime.GOOS != "windows" {
				t.Skip("Skipping Windows-specific test")
			}
			if tt.platform == "unix" && runtime.GOOS == "windows" {
				t.Skip("Skipping Unix-specific test")
			}

			err := ValidateFilenamePattern(tt.pattern)
			if tt.expectError && err == nil {
				t.Errorf("Expected error for pattern %q, but got none", tt.pattern)
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error for pattern %q: %v", tt.pattern, err)
			}
		})
	}
}

func TestValidateFilenamePatternSuggestion(t *testing.T) {
	err := ValidateFilenamePattern("playground-%m/%d.log")

	var verr *FilenameValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *FilenameValidationError", err)
	}
	if verr.Suggestion != "playground-%m-%d.log" {
		t.Errorf("Suggestion = %q, want %q", verr.Suggestion, "playground-%m-%d.log")
	}
	for _, part := range []string{"playground-%m/%d.log", "invalid characters", "'/'", "Suggestion: playground-%m-%d.log"} {
		if !strings.Contains(verr.Error(), part) {
			t.Errorf("Error() missing %q: %s", part, verr.Error())
		}
	}
}

func TestSuggestFilename(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		invalid []rune
		want    string
	}{
		{name: "colons", pattern: "app-%H:%M.log", invalid: []rune{':'}, want: "app-%H-%M.log"},
		{name: "pipe and star", pattern: "app-%Y|%m*.log", invalid: []rune{'|', '*'}, want: "app-%Y-%mX.log"},
		{name: "angle brackets removed", pattern: "app-<%Y>.log", invalid: []rune{'<', '>'}, want: "app-%Y.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := suggestFilename(tt.pattern, tt.pattern, tt.invalid); got != tt.want {
				t.Errorf("suggestFilename(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestNewLoggerRejectsInvalidPattern(t *testing.T) {
	l, err := NewLogger(Config{
		Enabled:         true,
		Directory:       t.TempDir(),
		FilenamePattern: "playground-%m/%d.log",
	})
	if err == nil {
		l.Close()
		t.Fatal("NewLogger accepted a pattern containing a path separator")
	}
}
