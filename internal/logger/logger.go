// Package logger provides file-based structured logging for the playground.
// Output goes to a dated log file with size and date rotation, and optionally
// to stderr so the interactive screen on stdout stays clean.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agumy/intl-playground/internal/constants"
)

// Config represents logging configuration
type Config struct {
	Enabled         bool   `toml:"enabled"`
	Directory       string `toml:"directory"`
	FilenamePattern string `toml:"filename_pattern"`
	Level           string `toml:"level"`
	MaxFiles        int    `toml:"max_files"`
	MaxSizeMB       int    `toml:"max_size_mb"`
	ConsoleOutput   bool   `toml:"console_output"`
}

// Logger wraps slog.Logger with file management capabilities. The slog
// handler writes through Logger.Write so every record passes the rotation
// check.
type Logger struct {
	*slog.Logger
	config   Config
	console  io.Writer
	file     *os.File
	fileName string
	fileSize int64
	mu       sync.Mutex
	now      func() time.Time
}

var (
	// Global logger instance
	globalLogger *Logger
	once         sync.Once
)

// Initialize creates and configures the global logger instance
func Initialize(config Config) error {
	var initErr error
	once.Do(func() {
		globalLogger, initErr = NewLogger(config)
	})
	return initErr
}

// Get returns the global logger instance
func Get() *Logger {
	if globalLogger == nil {
		// Fallback to a warn-level stderr logger if not initialized
		globalLogger = NewWithWriter(os.Stderr, "warn")
	}
	return globalLogger
}

// NewWithWriter returns a logger writing only to w, without files or
// rotation. Tests use it with a buffer.
func NewWithWriter(w io.Writer, level string) *Logger {
	l := &Logger{console: w, now: time.Now}
	l.Logger = slog.New(newHandler(l, parseLogLevel(level)))
	return l
}

// NewLogger creates a new logger with the given configuration
func NewLogger(config Config) (*Logger, error) {
	if err := ValidateFilenamePattern(config.FilenamePattern); err != nil {
		return nil, err
	}

	logger := &Logger{config: config, now: time.Now}

	if config.ConsoleOutput {
		logger.console = os.Stderr
	}

	if config.Enabled {
		logDir := expandLogDirectory(config.Directory)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		if err := logger.openLogFile(); err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
	}

	if logger.console == nil && logger.file == nil {
		logger.console = os.Stderr
	}

	logger.Logger = slog.New(newHandler(logger, parseLogLevel(config.Level)))

	logger.Debug("Logger initialized",
		slog.String("log_file", logger.fileName),
		slog.String("level", config.Level),
		slog.Bool("console", config.ConsoleOutput))

	return logger, nil
}

func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format("2006-01-02T15:04:05.000-07:00"))
			}
			// Shorten source paths for readability
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Base(source.File), source.Line))
				}
			}
			return a
		},
	})
}

// Component returns a child logger tagged with the component name.
func (l *Logger) Component(name string) *slog.Logger {
	return l.Logger.With(slog.String("component", name))
}

// openLogFile creates or opens the current log file. Callers hold mu or have
// exclusive access.
func (l *Logger) openLogFile() error {
	logDir := expandLogDirectory(l.config.Directory)
	filePath := filepath.Join(logDir, generateLogFilename(l.config.FilenamePattern, l.now()))

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}

	l.file = file
	l.fileName = filePath
	l.fileSize = info.Size()
	return nil
}

// expandLogDirectory expands the log directory path with platform-specific defaults
func expandLogDirectory(dir string) string {
	if dir == "" {
		dir = "logs"
	}

	if filepath.IsAbs(dir) {
		return dir
	}

	if dir == "logs" || strings.HasPrefix(dir, "./") {
		return dir
	}

	if strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, dir[2:])
		}
	}

	// Platform-specific default directories
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "IntlPlayground", "logs")
		}
	case "darwin", "linux":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".intl-playground", "logs")
		}
	}

	return "logs"
}

var filenamePlaceholders = []string{"%Y", "%m", "%d", "%H", "%M"}

// generateLogFilename expands %Y %m %d %H %M in pattern for the given moment.
func generateLogFilename(pattern string, now time.Time) string {
	if pattern == "" {
		pattern = constants.DefaultLogFilenamePattern
	}

	return strings.NewReplacer(
		"%Y", fmt.Sprintf("%04d", now.Year()),
		"%m", fmt.Sprintf("%02d", now.Month()),
		"%d", fmt.Sprintf("%02d", now.Day()),
		"%H", fmt.Sprintf("%02d", now.Hour()),
		"%M", fmt.Sprintf("%02d", now.Minute()),
	).Replace(pattern)
}

// parseLogLevel converts string level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// checkRotation rotates when the file outgrows MaxSizeMB or the pattern
// yields a new name (a new day for the default pattern). Callers hold mu.
func (l *Logger) checkRotation() error {
	if l.file == nil || !l.config.Enabled {
		return nil
	}

	maxSize := int64(l.config.MaxSizeMB) * 1024 * 1024
	if maxSize > 0 && l.fileSize >= maxSize {
		return l.rotate()
	}

	if filepath.Base(l.fileName) != generateLogFilename(l.config.FilenamePattern, l.now()) {
		return l.rotate()
	}

	return nil
}

// rotate reopens the log file under the current name and prunes old files.
// When the name is unchanged after a size trigger, the full file is moved
// aside with a time suffix.
func (l *Logger) rotate() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	previous := l.fileName
	if err := l.openLogFile(); err != nil {
		return err
	}

	// AIDEV-NOTE: Reopening the same full file would retrigger on every write
	if l.fileName == previous && l.config.MaxSizeMB > 0 && l.fileSize >= int64(l.config.MaxSizeMB)*1024*1024 {
		l.file.Close()
		rotated := fmt.Sprintf("%s.%s", previous, l.now().Format("150405"))
		if err := os.Rename(previous, rotated); err != nil {
			return err
		}
		if err := l.openLogFile(); err != nil {
			return err
		}
	}

	if l.config.MaxFiles > 0 {
		l.cleanOldFiles()
	}

	return nil
}

// cleanOldFiles keeps the newest MaxFiles files that match the pattern.
func (l *Logger) cleanOldFiles() {
	logDir := filepath.Dir(l.fileName)
	pattern := l.config.FilenamePattern
	if pattern == "" {
		pattern = constants.DefaultLogFilenamePattern
	}
	for _, p := range filenamePlaceholders {
		pattern = strings.ReplaceAll(pattern, p, "*")
	}

	matches, err := filepath.Glob(filepath.Join(logDir, pattern+"*"))
	if err != nil {
		return
	}

	type fileInfo struct {
		path    string
		modTime time.Time
	}

	files := make([]fileInfo, 0, len(matches))
	for _, match := range matches {
		if match == l.fileName {
			continue
		}
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		files = append(files, fileInfo{path: match, modTime: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].modTime.After(files[j].modTime) })

	// The current file counts toward MaxFiles.
	for i := l.config.MaxFiles - 1; i < len(files); i++ {
		os.Remove(files[i].path)
	}
}

// Write implements io.Writer with a rotation check before each record.
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkRotation(); err != nil {
		fmt.Fprintf(os.Stderr, "Log rotation error: %v\n", err)
	}

	if l.console != nil {
		if _, err := l.console.Write(p); err != nil {
			return 0, err
		}
	}
	if l.file != nil {
		n, err := l.file.Write(p)
		l.fileSize += int64(n)
		if err != nil {
			return n, err
		}
	}
	return len(p), nil
}

// FileName returns the path of the current log file, or "" when file
// logging is disabled.
func (l *Logger) FileName() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fileName
}

// Close closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// LogSessionSummary logs a summary of one playground run for audit purposes.
func (l *Logger) LogSessionSummary(startTime time.Time, configFile, mode string, entries []string, exitCode int) {
	l.Info("=== SESSION SUMMARY ===")
	l.Info("Session details",
		slog.Time("start_time", startTime),
		slog.String("config_file", configFile),
		slog.String("mode", mode),
		slog.Duration("total_duration", time.Since(startTime)),
		slog.Int("entries", len(entries)),
		slog.Int("exit_code", exitCode))

	for i, entry := range entries {
		l.Info("Result entry", slog.Int("index", i), slog.String("text", entry))
	}
}
