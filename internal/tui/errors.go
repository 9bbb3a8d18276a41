package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidAnswer is returned by line prompts for unusable answers.
	ErrInvalidAnswer = errors.New("tui: invalid answer")
	// ErrUnknownCommand is returned for ":" commands the REPL does not know.
	ErrUnknownCommand = errors.New("tui: unknown command")
	// ErrUsage is returned when a command is missing or has malformed
	// arguments.
	ErrUsage = errors.New("tui: usage")
)
