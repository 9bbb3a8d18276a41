package errorutil

import (
	"fmt"
	"log/slog"
	"time"
)

// LogAndWrap logs an error with structured context and returns it wrapped
// with the operation name.
func LogAndWrap(logger *slog.Logger, operation string, err error, attrs ...slog.Attr) error {
	if logger == nil || err == nil {
		return err
	}

	logger.Error(operation+" failed", withError(err, attrs)...)
	return fmt.Errorf("%s: %w", operation, err)
}

// LogWarning logs a recoverable error as a warning without wrapping it.
func LogWarning(logger *slog.Logger, operation string, err error, attrs ...slog.Attr) {
	if logger == nil || err == nil {
		return
	}

	logger.Warn("Non-fatal error in "+operation, withError(err, attrs)...)
}

// ExecuteWithLogging runs fn, logging start and completion with timing at
// debug level and failures at error level.
func ExecuteWithLogging(logger *slog.Logger, operation string, fn func() error, attrs ...slog.Attr) error {
	if logger == nil {
		return fn()
	}

	start := time.Now()
	logger.Debug("Starting "+operation, toAny(attrs)...)

	err := fn()
	done := append(append([]slog.Attr{}, attrs...), slog.Duration("duration", time.Since(start)))

	if err != nil {
		logger.Error("Failed "+operation, withError(err, done)...)
		return fmt.Errorf("%s: %w", operation, err)
	}

	logger.Debug("Completed "+operation, toAny(done)...)
	return nil
}

func withError(err error, attrs []slog.Attr) []any {
	all := make([]slog.Attr, 0, len(attrs)+1)
	all = append(all, slog.String("error", err.Error()))
	all = append(all, attrs...)
	return toAny(all)
}

func toAny(attrs []slog.Attr) []any {
	out := make([]any, len(attrs))
	for i, a := range attrs {
		out[i] = a
	}
	return out
}

// Common context helpers for frequently used attributes

func ConfigContext(configFile string) []slog.Attr {
	if configFile == "" {
		return nil
	}
	return []slog.Attr{slog.String("config_file", configFile)}
}

func FileContext(filePath string) []slog.Attr {
	if filePath == "" {
		return nil
	}
	return []slog.Attr{slog.String("file_path", filePath)}
}

// InputContext describes the raw text and locale an event was applied to.
func InputContext(rawText, locale string) []slog.Attr {
	attrs := make([]slog.Attr, 0, 2)
	attrs = append(attrs, slog.String("raw_text", rawText))
	if locale != "" {
		attrs = append(attrs, slog.String("locale", locale))
	}
	return attrs
}

func IndexContext(index int) []slog.Attr {
	return []slog.Attr{slog.Int("index", index)}
}
