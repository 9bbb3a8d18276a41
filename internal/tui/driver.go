package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single-select prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// PromptDriver abstracts the terminal so the REPL can be driven by survey
// on a TTY, by plain lines from a script, or by a stub in tests.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out   io.Writer
	stdio terminal.Stdio
}

// NewSurveyDriver returns the interactive driver for a terminal. Info
// messages go to out.
func NewSurveyDriver(stdio terminal.Stdio, out io.Writer) PromptDriver {
	return &surveyDriver{out: out, stdio: stdio}
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out, survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err)); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out, survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err)); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out string
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	if err := survey.AskOne(prompt, &out, survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err)); err != nil {
		return 0, translateSurveyErr(err)
	}
	return indexOf(cfg.Options, out), nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

// lineDriver reads one answer per line. It serves piped stdin and -script
// files, where survey's raw-mode prompts cannot run.
type lineDriver struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLineDriver returns a driver that reads answers from in and writes
// prompts and messages to out. End of input is reported as io.EOF.
func NewLineDriver(in io.Reader, out io.Writer) PromptDriver {
	return &lineDriver{scanner: bufio.NewScanner(in), out: out}
}

func (d *lineDriver) readLine(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if message != "" {
		fmt.Fprintf(d.out, "%s ", message)
	}
	if !d.scanner.Scan() {
		if err := d.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(d.scanner.Text(), "\r"), nil
}

func (d *lineDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	line, err := d.readLine(ctx, cfg.Message)
	if err != nil {
		return "", err
	}
	if line == "" {
		return cfg.Default, nil
	}
	return line, nil
}

func (d *lineDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	line, err := d.readLine(ctx, cfg.Message+" (y/n)")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return cfg.Default, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not yes or no", ErrInvalidAnswer, line)
}

// Select accepts either the option text or its 1-based number.
func (d *lineDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	for i, option := range cfg.Options {
		fmt.Fprintf(d.out, "  %d) %s\n", i+1, option)
	}
	line, err := d.readLine(ctx, cfg.Message)
	if err != nil {
		return 0, err
	}

	answer := strings.TrimSpace(line)
	if answer == "" && cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		return cfg.DefaultIndex, nil
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(cfg.Options) {
		return n - 1, nil
	}
	if i := indexOf(cfg.Options, answer); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAnswer, answer)
}

func (d *lineDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}
