package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateLogFilename(t *testing.T) {
	at := time.Date(2026, 3, 7, 8, 5, 0, 0, time.UTC)
	tests := []struct {
		pattern string
		want    string
	}{
		{"", "intl-playground-20260307.log"},
		{"playground-%Y-%m-%d.log", "playground-2026-03-07.log"},
		{"playground-%Y%m%d-%H%M.log", "playground-20260307-0805.log"},
		{"static.log", "static.log"},
	}
	for _, tt := range tests {
		if got := generateLogFilename(tt.pattern, at); got != tt.want {
			t.Errorf("generateLogFilename(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"INFO":    "INFO",
		"warning": "WARN",
		"error":   "ERROR",
		"bogus":   "INFO",
	}
	for in, want := range tests {
		if got := parseLogLevel(in).String(); got != want {
			t.Errorf("parseLogLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestExpandLogDirectory(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "logs")
	if got := expandLogDirectory(abs); got != abs {
		t.Errorf("expandLogDirectory(abs) = %q", got)
	}
	if got := expandLogDirectory(""); got != "logs" {
		t.Errorf("expandLogDirectory(\"\") = %q, want logs", got)
	}
	if got := expandLogDirectory("./out"); got != "./out" {
		t.Errorf("expandLogDirectory(./out) = %q", got)
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(Config{
		Enabled:         true,
		Directory:       dir,
		FilenamePattern: "test-%Y%m%d.log",
		Level:           "debug",
	})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	l.Info("entry appended", "text", "Jan 15, 2024")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(l.FileName())
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `msg="entry appended" text="Jan 15, 2024"`) {
		t.Errorf("log file missing record:\n%s", data)
	}
	if filepath.Dir(l.FileName()) != dir {
		t.Errorf("log file %q not in %q", l.FileName(), dir)
	}
}

func TestSizeRotation(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(Config{
		Enabled:         true,
		Directory:       dir,
		FilenamePattern: "size-%Y%m%d.log",
		Level:           "info",
		MaxSizeMB:       1,
		MaxFiles:        2,
	})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer l.Close()

	clock := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	l.mu.Lock()
	l.now = func() time.Time { return clock }
	l.mu.Unlock()

	big := strings.Repeat("x", 600*1024)
	for i := 0; i < 5; i++ {
		clock = clock.Add(time.Second)
		l.Info("filler", "payload", big)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "size-*"))
	if len(matches) > 2 {
		t.Errorf("found %d log files, want at most 2: %v", len(matches), matches)
	}
	if len(matches) < 2 {
		t.Errorf("found %d log files, want a rotated file: %v", len(matches), matches)
	}
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Info("hidden")
	l.Component("session").Warn("shown", "index", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %s", out)
	}
	if !strings.Contains(out, "component=session") || !strings.Contains(out, "index=3") {
		t.Errorf("missing component record: %s", out)
	}
	if l.FileName() != "" {
		t.Errorf("FileName() = %q, want empty", l.FileName())
	}
}

func TestLogSessionSummary(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	l.LogSessionSummary(time.Now(), "playground.toml", "interactive", []string{"Jan 15, 2024", "1/15/2024"}, 0)

	out := buf.String()
	for _, want := range []string{"SESSION SUMMARY", "config_file=playground.toml", "mode=interactive", "entries=2", `text="1/15/2024"`} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
