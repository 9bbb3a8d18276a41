// Package tui is the terminal front end of the playground: a read-eval loop
// that turns typed lines into session events and redraws the screen
// template after each one.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/agumy/intl-playground/internal/formatter"
	"github.com/agumy/intl-playground/internal/keys"
	"github.com/agumy/intl-playground/internal/options"
	"github.com/agumy/intl-playground/internal/playground"
	"github.com/agumy/intl-playground/internal/results"
	"github.com/agumy/intl-playground/internal/template"
)

const prompt = "date>"

const helpText = `Type a date to change the input. An empty line is Enter and outputs the
current format when the input is valid.

  :output, :o              output the current format
  :locale [tag]            choose the locale
  :set <field> [value]     choose an option (weekday year month day hour minute hourCycle)
  :align <index> [where]   align a result (start center end)
  :delete <index>          remove a result
  :reset                   restore the default options
  :template [name]         switch the screen template
  :snapshot [yaml|json]    print the session state
  :help                    show this help
  :quit, :q                leave`

// App runs the read-eval loop for one session.
type App struct {
	driver     PromptDriver
	session    *playground.Session
	renderer   *template.Renderer
	dispatcher *keys.Dispatcher
	logger     *slog.Logger
	template   string
}

// Option configures an App.
type Option func(*App)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(a *App) {
		if driver != nil {
			a.driver = driver
		}
	}
}

// WithDispatcher shares a key dispatcher with other listeners.
func WithDispatcher(d *keys.Dispatcher) Option {
	return func(a *App) {
		if d != nil {
			a.dispatcher = d
		}
	}
}

// WithLogger sets the logger for loop events.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewApp binds a session to a loaded renderer. Without WithPromptDriver the
// app reads plain lines from an empty input and exits at once.
func NewApp(session *playground.Session, renderer *template.Renderer, opts ...Option) *App {
	a := &App{
		session:    session,
		renderer:   renderer,
		dispatcher: keys.NewDispatcher(),
		logger:     slog.New(slog.DiscardHandler),
		template:   renderer.DefaultTemplateName(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(a)
	}
	if a.driver == nil {
		a.driver = NewLineDriver(strings.NewReader(""), io.Discard)
	}
	return a
}

// Run draws the screen and processes lines until :quit, end of input or an
// abort. The session receives key events only while Run is active.
func (a *App) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}

	release := a.session.Activate(a.dispatcher)
	defer release()

	if err := a.draw(ctx); err != nil {
		return err
	}

	for {
		line, err := a.driver.Input(ctx, InputConfig{Message: prompt, Help: helpText})
		if errors.Is(err, ErrAborted) || errors.Is(err, io.EOF) {
			a.logger.Debug("Input closed", slog.String("reason", err.Error()))
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := a.Execute(ctx, line)
		if errors.Is(err, ErrAborted) {
			continue
		}
		if err != nil {
			a.logger.Debug("Command failed", slog.String("line", line), slog.String("error", err.Error()))
			if err := a.driver.Info(ctx, "error: "+err.Error()); err != nil {
				return err
			}
			continue
		}
		if quit {
			return nil
		}
		if err := a.draw(ctx); err != nil {
			return err
		}
	}
}

// Execute handles one typed line and reports whether the loop should end.
func (a *App) Execute(ctx context.Context, line string) (quit bool, err error) {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		return false, a.enter(ctx)
	case !strings.HasPrefix(trimmed, ":"):
		a.session.OnRawTextChange(line)
		return false, nil
	}

	fields := strings.Fields(trimmed[1:])
	if len(fields) == 0 {
		return false, fmt.Errorf("%w: empty command", ErrUnknownCommand)
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "q":
		return true, nil
	case "output", "o":
		return false, a.output(ctx)
	case "locale":
		return false, a.locale(ctx, args)
	case "set":
		return false, a.set(ctx, args)
	case "align":
		return false, a.align(ctx, args)
	case "delete", "del":
		return false, a.remove(ctx, args)
	case "reset":
		return false, a.reset(ctx)
	case "template":
		return false, a.switchTemplate(ctx, args)
	case "snapshot":
		return false, a.snapshot(ctx, args)
	case "help", "h", "?":
		return false, a.driver.Info(ctx, helpText)
	}
	return false, fmt.Errorf("%w: %q (type :help)", ErrUnknownCommand, cmd)
}

// enter is a global Enter with focus in the date input.
func (a *App) enter(ctx context.Context) error {
	before := len(a.session.Results())
	a.dispatcher.Dispatch(keys.Event{Key: keys.Enter, Focus: keys.RoleTextbox})
	if len(a.session.Results()) == before && !a.session.CanSubmit() {
		return a.driver.Info(ctx, "Nothing to output: "+formatter.FormatInvalid)
	}
	return nil
}

// output presses the Output button: the key event reaches global listeners
// with the button focused, then the button activates itself. It is disabled
// while the input is invalid.
func (a *App) output(ctx context.Context) error {
	a.dispatcher.Dispatch(keys.Event{Key: keys.Enter, Focus: keys.RoleButton})
	if !a.session.CanSubmit() {
		return a.driver.Info(ctx, "Output is disabled: "+formatter.FormatInvalid)
	}
	a.session.OnSubmit()
	return nil
}

func (a *App) locale(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return a.session.OnLocaleChange(args[0])
	}

	locales := options.Locales()
	labels := make([]string, len(locales))
	current := 0
	for i, l := range locales {
		labels[i] = fmt.Sprintf("%s (%s)", l, formatter.DisplayName(string(l)))
		if l == a.session.Options().Locale {
			current = i
		}
	}
	idx, err := a.driver.Select(ctx, SelectConfig{Message: "Locale", Options: labels, DefaultIndex: current})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(locales) {
		return fmt.Errorf("%w: no locale selected", ErrInvalidAnswer)
	}
	return a.session.OnLocaleChange(string(locales[idx]))
}

func (a *App) set(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: :set <field> [value]", ErrUsage)
	}
	if len(args) > 1 {
		return a.session.OnFieldChange(args[0], args[1])
	}

	field, err := options.ParseField(args[0])
	if err != nil {
		return err
	}
	choices := options.Choices(field)
	labels := make([]string, len(choices))
	current := 0
	for i, c := range choices {
		labels[i] = string(c)
		if c == a.session.Options().Get(field) {
			current = i
		}
	}
	idx, err := a.driver.Select(ctx, SelectConfig{Message: string(field), Options: labels, DefaultIndex: current})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(labels) {
		return fmt.Errorf("%w: no value selected", ErrInvalidAnswer)
	}
	return a.session.OnFieldChange(string(field), labels[idx])
}

func (a *App) align(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: :align <index> [start|center|end]", ErrUsage)
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return a.session.OnAlignmentChange(index, args[1])
	}

	labels := make([]string, len(results.Alignments))
	for i, al := range results.Alignments {
		labels[i] = string(al)
	}
	idx, err := a.driver.Select(ctx, SelectConfig{Message: "Alignment", Options: labels})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(labels) {
		return fmt.Errorf("%w: no alignment selected", ErrInvalidAnswer)
	}
	return a.session.OnAlignmentChange(index, labels[idx])
}

func (a *App) remove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: :delete <index>", ErrUsage)
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	if !a.session.OnDelete(index) {
		return a.driver.Info(ctx, fmt.Sprintf("No result at index %d", index))
	}
	return nil
}

func (a *App) reset(ctx context.Context) error {
	ok, err := a.driver.Confirm(ctx, ConfirmConfig{Message: "Reset all options to the defaults?", Default: true})
	if err != nil {
		return err
	}
	if ok {
		a.session.OnReset()
	}
	return nil
}

func (a *App) switchTemplate(ctx context.Context, args []string) error {
	names := a.renderer.ListTemplates()
	if len(args) == 0 {
		current := indexOf(names, a.template)
		idx, err := a.driver.Select(ctx, SelectConfig{Message: "Template", Options: names, DefaultIndex: current})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(names) {
			return fmt.Errorf("%w: no template selected", ErrInvalidAnswer)
		}
		args = []string{names[idx]}
	}

	if !a.renderer.HasTemplate(args[0]) {
		return fmt.Errorf("template %s not found (available: %s)", args[0], strings.Join(names, ", "))
	}
	a.template = args[0]
	return nil
}

func (a *App) snapshot(ctx context.Context, args []string) error {
	format := "yaml"
	if len(args) > 0 {
		format = args[0]
	}
	var buf bytes.Buffer
	if err := a.session.Snapshot().Encode(&buf, format); err != nil {
		return err
	}
	return a.driver.Info(ctx, strings.TrimRight(buf.String(), "\n"))
}

func (a *App) draw(ctx context.Context) error {
	screen, err := a.renderer.Render(a.template, a.renderer.Screen(a.session.Snapshot()))
	if err != nil {
		return fmt.Errorf("rendering template %s: %w", a.template, err)
	}
	return a.driver.Info(ctx, strings.TrimRight(screen, "\n"))
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q is not a number", ErrUsage, s)
	}
	return n, nil
}
