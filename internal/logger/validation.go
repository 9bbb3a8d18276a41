package logger

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// FilenameValidationError reports a log filename pattern that would not
// produce a usable file name.
type FilenameValidationError struct {
	Pattern      string
	InvalidChars []rune
	Platform     string
	Suggestion   string
}

func (e *FilenameValidationError) Error() string {
	quoted := make([]string, len(e.InvalidChars))
	for i, r := range e.InvalidChars {
		quoted[i] = fmt.Sprintf("'%c'", r)
	}

	msg := fmt.Sprintf("invalid filename pattern %q contains invalid characters: %s",
		e.Pattern, strings.Join(quoted, ", "))
	if e.Platform != "all" {
		msg += fmt.Sprintf(" (invalid on %s)", e.Platform)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", e.Suggestion)
	}
	return msg
}

// windowsInvalid are rejected in file names on Windows only.
var windowsInvalid = []rune{'<', '>', ':', '"', '|', '?', '*'}

// ValidateFilenamePattern checks a log filename pattern. A bare pattern may
// not contain path separators; an absolute path is checked on its final
// element only.
func ValidateFilenamePattern(pattern string) error {
	if pattern == "" {
		return nil
	}

	name := pattern
	if isAbsolutePath(pattern) {
		name = extractFilename(pattern)
	} else if strings.ContainsAny(pattern, "/\\") {
		return &FilenameValidationError{
			Pattern:      pattern,
			InvalidChars: []rune{'/', '\\'},
			Platform:     "all",
			Suggestion:   strings.NewReplacer("/", "-", "\\", "-").Replace(pattern),
		}
	}

	invalid := findInvalidChars(name, runtime.GOOS == "windows")
	if len(invalid) == 0 {
		return nil
	}

	platform := "all"
	if runtime.GOOS == "windows" {
		platform = "Windows"
	}
	return &FilenameValidationError{
		Pattern:      pattern,
		InvalidChars: invalid,
		Platform:     platform,
		Suggestion:   suggestFilename(pattern, name, invalid),
	}
}

func isAbsolutePath(pattern string) bool {
	switch {
	case strings.HasPrefix(pattern, "/"):
		return true
	case len(pattern) >= 3 && pattern[1] == ':' && (pattern[2] == '\\' || pattern[2] == '/'):
		return true
	case strings.HasPrefix(pattern, `\\`):
		return true
	}
	return false
}

func findInvalidChars(name string, windows bool) []rune {
	var invalid []rune
	if strings.ContainsRune(name, '\x00') {
		invalid = append(invalid, '\x00')
	}
	if windows {
		for _, r := range windowsInvalid {
			if strings.ContainsRune(name, r) {
				invalid = append(invalid, r)
			}
		}
	}
	return invalid
}

// suggestFilename replaces the offending characters in the file name and
// keeps any directory part.
func suggestFilename(fullPattern, name string, invalid []rune) string {
	replacements := map[rune]string{
		':': "-", '|': "-", '*': "X", '?': "X",
		'<': "", '>': "", '"': "", '\x00': "",
	}

	suggestion := name
	for _, r := range invalid {
		if repl, ok := replacements[r]; ok {
			suggestion = strings.ReplaceAll(suggestion, string(r), repl)
		}
	}
	for strings.Contains(suggestion, "--") {
		suggestion = strings.ReplaceAll(suggestion, "--", "-")
	}

	if dir := extractDirectory(fullPattern); dir != "" {
		return dir + string(filepath.Separator) + suggestion
	}
	return suggestion
}

func extractFilename(pattern string) string {
	if i := strings.LastIndex(pattern, `\`); i >= 0 {
		return pattern[i+1:]
	}
	return filepath.Base(pattern)
}

func extractDirectory(pattern string) string {
	if i := strings.LastIndex(pattern, `\`); i >= 0 {
		return pattern[:i]
	}
	if dir := filepath.Dir(pattern); dir != "." {
		return dir
	}
	return ""
}
