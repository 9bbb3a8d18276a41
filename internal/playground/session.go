// Package playground wires the date input, the format options and the
// result list into one event-driven session. A presentation layer feeds it
// events (text changes, option picks, submits, key presses) and renders its
// Snapshot.
package playground

import (
	"log/slog"
	"time"

	"github.com/agumy/intl-playground/internal/constants"
	"github.com/agumy/intl-playground/internal/dateutil"
	"github.com/agumy/intl-playground/internal/errorutil"
	"github.com/agumy/intl-playground/internal/formatter"
	"github.com/agumy/intl-playground/internal/keys"
	"github.com/agumy/intl-playground/internal/options"
	"github.com/agumy/intl-playground/internal/results"
)

// FormatFunc renders a value for a locale and formatter configuration.
// formatter.Format is the production implementation.
type FormatFunc func(locale string, cfg formatter.Config, v dateutil.Value) (string, error)

// Session is single-threaded: every method must be called from the same
// event loop.
type Session struct {
	input    *dateutil.Input
	opts     options.FormatOptions
	defaults options.FormatOptions
	list     *results.List

	format  FormatFunc
	zone    string
	logger  *slog.Logger
	release func()
	// generation counts activations; a release only acts on its own.
	generation uint64
}

type settings struct {
	logger         *slog.Logger
	parser         *dateutil.Parser
	initialText    string
	initialPattern string
	defaults       *options.FormatOptions
	format         FormatFunc
	zone           string
	now            func() time.Time
}

// Option configures a Session.
type Option func(*settings)

// WithLogger sets the logger for session events.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithParser sets the parser used for raw text.
func WithParser(p *dateutil.Parser) Option {
	return func(s *settings) { s.parser = p }
}

// WithInitialText starts the input with text instead of the current moment.
func WithInitialText(text string) Option {
	return func(s *settings) { s.initialText = text }
}

// WithInitialPattern sets the pattern used to render the current moment as
// the initial text, e.g. "M/D/YYYY, h:mm:ss A".
func WithInitialPattern(pattern string) Option {
	return func(s *settings) { s.initialPattern = pattern }
}

// WithDefaults sets the options the session starts with and resets to.
func WithDefaults(o options.FormatOptions) Option {
	return func(s *settings) { s.defaults = &o }
}

// WithFormatFunc replaces the formatter.
func WithFormatFunc(f FormatFunc) Option {
	return func(s *settings) { s.format = f }
}

// WithTimeZone renders every output in the named IANA zone instead of the
// zone the input was read in.
func WithTimeZone(name string) Option {
	return func(s *settings) { s.zone = name }
}

// WithClock sets the source of the current moment.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// New returns an inactive session. Call Activate to receive key events.
func New(opts ...Option) *Session {
	cfg := settings{
		initialPattern: constants.DefaultInitialPattern,
		format:         formatter.Format,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.parser == nil {
		cfg.parser = dateutil.NewParser(nil)
	}
	defaults := options.Default()
	if cfg.defaults != nil {
		defaults = *cfg.defaults
	}

	var input *dateutil.Input
	if cfg.initialText != "" {
		input = dateutil.NewInput(cfg.parser, cfg.initialText)
	} else {
		input = dateutil.NewInputAt(cfg.parser, cfg.now(), cfg.initialPattern)
	}

	return &Session{
		input:    input,
		opts:     defaults,
		defaults: defaults,
		list:     results.NewList(),
		format:   cfg.format,
		zone:     cfg.zone,
		logger:   cfg.logger,
	}
}

// OnRawTextChange stores text verbatim and reparses it.
func (s *Session) OnRawTextChange(text string) {
	s.input.SetRawText(text)
	s.logger.Debug("Raw text changed",
		slog.String("raw_text", text),
		slog.Bool("valid", s.input.IsValid()))
}

// OnFieldChange sets one option field from text. Unknown fields or values
// leave the options untouched and return options.ErrUnknownField or
// options.ErrInvalidChoice.
func (s *Session) OnFieldChange(field, value string) error {
	cmd, err := options.NewSelectOption(field, value)
	if err != nil {
		return err
	}
	s.apply(cmd)
	return nil
}

// OnLocaleChange replaces the locale. An unsupported locale returns
// options.ErrUnsupportedLocale.
func (s *Session) OnLocaleChange(locale string) error {
	cmd, err := options.NewSelectLocale(locale)
	if err != nil {
		return err
	}
	s.apply(cmd)
	return nil
}

// OnReset restores every option, including the locale, to the defaults.
func (s *Session) OnReset() {
	s.apply(options.Reset{Defaults: s.defaults})
}

func (s *Session) apply(cmd options.Command) {
	s.opts = options.Reduce(s.opts, cmd)
	s.logger.Debug("Options changed", slog.Any("command", cmd), slog.String("locale", string(s.opts.Locale)))
}

// OnSubmit formats the current value with the current options and appends
// the result. It reports whether an entry was appended; nothing happens
// while the input is invalid.
func (s *Session) OnSubmit() bool {
	if !s.input.IsValid() {
		s.logger.Debug("Submit ignored for invalid input", errorutil.InputContext(s.input.RawText(), "")[0])
		return false
	}

	text, err := s.format(string(s.opts.Locale), s.formatConfig(s.opts.ToFormatterConfig().Strings()), s.input.Parsed())
	if err != nil {
		errorutil.LogWarning(s.logger, "format", err, errorutil.InputContext(s.input.RawText(), string(s.opts.Locale))...)
		return false
	}
	if !s.list.Append(text) {
		return false
	}

	s.logger.Info("Entry appended", slog.String("text", text), slog.Int("count", s.list.Len()))
	return true
}

// OnAlignmentChange sets the alignment of the entry at index. An unknown
// alignment returns results.ErrInvalidAlignment; an index out of range is
// ignored.
func (s *Session) OnAlignmentChange(index int, alignment string) error {
	a, err := results.ParseAlignment(alignment)
	if err != nil {
		return err
	}
	if !s.list.SetAlignment(index, a) {
		s.logger.Debug("Alignment change out of range", errorutil.IndexContext(index)[0])
	}
	return nil
}

// OnDelete removes the entry at index and reports whether one was removed.
func (s *Session) OnDelete(index int) bool {
	if !s.list.Remove(index) {
		s.logger.Debug("Delete out of range", errorutil.IndexContext(index)[0])
		return false
	}
	return true
}

// CanSubmit reports whether the explicit output trigger is enabled.
func (s *Session) CanSubmit() bool {
	return s.input.IsValid()
}

// EnterAllowed reports whether a global Enter with focus on an element of
// the given role should submit.
func (s *Session) EnterAllowed(focus keys.Role) bool {
	return s.input.IsValid() && !focus.HandlesEnter()
}

// HandleKey is the global key listener. It reports whether the event
// caused a submit.
func (s *Session) HandleKey(ev keys.Event) bool {
	if ev.Key != keys.Enter || !s.EnterAllowed(ev.Focus) {
		return false
	}
	return s.OnSubmit()
}

// Activate subscribes HandleKey to d and returns the release function.
// Calling it again while active returns the same release without
// subscribing twice. A release from an earlier activation is a no-op.
func (s *Session) Activate(d *keys.Dispatcher) (release func()) {
	if s.release != nil {
		return s.release
	}

	s.generation++
	gen := s.generation
	cancel := d.Subscribe(func(ev keys.Event) { s.HandleKey(ev) })
	s.release = func() {
		if s.generation != gen || s.release == nil {
			return
		}
		cancel()
		s.release = nil
	}
	s.logger.Debug("Session activated")
	return s.release
}

// Deactivate releases the key subscription. It is safe to call when
// inactive.
func (s *Session) Deactivate() {
	if s.release != nil {
		s.release()
		s.logger.Debug("Session deactivated")
	}
}

// Active reports whether the session is subscribed to key events.
func (s *Session) Active() bool {
	return s.release != nil
}

// RawText returns the input text as typed.
func (s *Session) RawText() string {
	return s.input.RawText()
}

// Parsed returns the current value, possibly dateutil.Invalid.
func (s *Session) Parsed() dateutil.Value {
	return s.input.Parsed()
}

// Options returns the current options.
func (s *Session) Options() options.FormatOptions {
	return s.opts
}

// Results returns a copy of the result list.
func (s *Session) Results() []results.Entry {
	return s.list.Entries()
}

// Preview renders what OnSubmit would append, or "" while the input is
// invalid.
func (s *Session) Preview() string {
	if !s.input.IsValid() {
		return ""
	}
	text, err := s.format(string(s.opts.Locale), s.formatConfig(s.opts.ToFormatterConfig().Strings()), s.input.Parsed())
	if err != nil {
		return ""
	}
	return text
}

func (s *Session) formatConfig(cfg map[string]string) formatter.Config {
	if s.zone == "" {
		return cfg
	}
	out := make(formatter.Config, len(cfg)+1)
	for k, v := range cfg {
		out[k] = v
	}
	out[formatter.OptTimeZone] = s.zone
	return out
}

// TargetDate renders the parsed value with the locale's default date
// format, or formatter.FormatInvalid.
func (s *Session) TargetDate() string {
	text, err := s.format(string(s.opts.Locale), s.formatConfig(nil), s.input.Parsed())
	if err != nil {
		return formatter.FormatInvalid
	}
	return text
}
