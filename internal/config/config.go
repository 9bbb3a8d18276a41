// Package config loads the playground's TOML configuration: the initial
// input, the starting format options, view settings, screen templates and
// logging. Values merge over defaults and INTLPLAYGROUND_* environment
// variables override both.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/agumy/intl-playground/internal/constants"
	"github.com/agumy/intl-playground/internal/errorutil"
	"github.com/agumy/intl-playground/internal/logger"
	"github.com/agumy/intl-playground/internal/options"
)

// Config represents the main configuration structure
type Config struct {
	Input     InputConfig     `toml:"input"`
	Options   OptionsConfig   `toml:"options"`
	View      ViewConfig      `toml:"view"`
	Templates TemplatesConfig `toml:"templates"`
	Logging   logger.Config   `toml:"logging"`
}

// InputConfig controls the text the input starts with and how zone-less
// text is read.
type InputConfig struct {
	// Initial is used verbatim when set; otherwise the current moment is
	// rendered through InitialPattern.
	Initial        string `toml:"initial"`
	InitialPattern string `toml:"initial_pattern"`
	// Timezone is an IANA name; empty means the local zone.
	Timezone string `toml:"timezone"`
}

// OptionsConfig holds the starting choice for each field as plain strings.
// Empty fields keep the built-in default.
type OptionsConfig struct {
	Locale    string `toml:"locale"`
	Weekday   string `toml:"weekday"`
	Year      string `toml:"year"`
	Month     string `toml:"month"`
	Day       string `toml:"day"`
	Hour      string `toml:"hour"`
	Minute    string `toml:"minute"`
	HourCycle string `toml:"hour_cycle"`
}

// ViewConfig controls the terminal screen.
type ViewConfig struct {
	Width          int  `toml:"width"`
	ShowTargetDate bool `toml:"show_target_date"`
}

// TemplatesConfig names the screen template in use and holds user templates.
type TemplatesConfig struct {
	Default   string                    `toml:"default"`
	Templates map[string]TemplateConfig `toml:"templates"`
}

// TemplateConfig is one screen layout: a header, a line per result entry
// and a footer.
type TemplateConfig struct {
	Header string `toml:"header"`
	Entry  string `toml:"entry"`
	Footer string `toml:"footer"`
}

// ConfigError represents configuration-related errors
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e ConfigError) Error() string {
	if e.Field != "" {
		return "config." + e.Field + ": " + e.Message
	}
	return e.Message
}

func (e ConfigError) Unwrap() error {
	return e.Err
}

var (
	ErrFileNotFound  = errors.New("configuration file not found")
	ErrInvalidFormat = errors.New("invalid configuration file format")
)

// LoadConfig reads a TOML file, merges it over DefaultConfig and applies
// environment overrides. It does not validate.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var loaded Config
	md, err := toml.Decode(string(data), &loaded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - %v", ErrInvalidFormat, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s - unknown key %q", ErrInvalidFormat, path, undecoded[0].String())
	}

	cfg := mergeWithDefaults(&loaded, DefaultConfig(), md)
	cfg.ApplyEnvironmentOverrides()
	return cfg, nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	d := options.Default()
	return &Config{
		Input: InputConfig{
			InitialPattern: constants.DefaultInitialPattern,
		},
		Options: OptionsConfig{
			Locale:    string(d.Locale),
			Weekday:   string(d.Weekday),
			Year:      string(d.Year),
			Month:     string(d.Month),
			Day:       string(d.Day),
			Hour:      string(d.Hour),
			Minute:    string(d.Minute),
			HourCycle: string(d.HourCycle),
		},
		View: ViewConfig{
			Width:          constants.DefaultViewWidth,
			ShowTargetDate: true,
		},
		Templates: TemplatesConfig{
			Default:   constants.DefaultTemplateName,
			Templates: make(map[string]TemplateConfig),
		},
		Logging: logger.Config{
			Enabled:         false,
			Directory:       "~/.intl-playground/logs",
			FilenamePattern: constants.DefaultLogFilenamePattern,
			Level:           "warn",
			MaxFiles:        constants.DefaultMaxLogFiles,
			MaxSizeMB:       constants.DefaultMaxLogSizeMB,
		},
	}
}

// mergeWithDefaults overlays non-zero loaded values on defaults. Booleans are
// taken from the file only when the key is present.
func mergeWithDefaults(loaded, defaults *Config, md toml.MetaData) *Config {
	result := *defaults
	result.Templates.Templates = make(map[string]TemplateConfig, len(defaults.Templates.Templates))
	for name, tpl := range defaults.Templates.Templates {
		result.Templates.Templates[name] = tpl
	}

	setString(&result.Input.Initial, loaded.Input.Initial)
	setString(&result.Input.InitialPattern, loaded.Input.InitialPattern)
	setString(&result.Input.Timezone, loaded.Input.Timezone)

	setString(&result.Options.Locale, loaded.Options.Locale)
	setString(&result.Options.Weekday, loaded.Options.Weekday)
	setString(&result.Options.Year, loaded.Options.Year)
	setString(&result.Options.Month, loaded.Options.Month)
	setString(&result.Options.Day, loaded.Options.Day)
	setString(&result.Options.Hour, loaded.Options.Hour)
	setString(&result.Options.Minute, loaded.Options.Minute)
	setString(&result.Options.HourCycle, loaded.Options.HourCycle)

	if loaded.View.Width != 0 {
		result.View.Width = loaded.View.Width
	}
	if md.IsDefined("view", "show_target_date") {
		result.View.ShowTargetDate = loaded.View.ShowTargetDate
	}

	setString(&result.Templates.Default, loaded.Templates.Default)
	for name, tpl := range loaded.Templates.Templates {
		result.Templates.Templates[name] = tpl
	}

	if md.IsDefined("logging", "enabled") {
		result.Logging.Enabled = loaded.Logging.Enabled
	}
	if md.IsDefined("logging", "console_output") {
		result.Logging.ConsoleOutput = loaded.Logging.ConsoleOutput
	}
	setString(&result.Logging.Directory, loaded.Logging.Directory)
	setString(&result.Logging.FilenamePattern, loaded.Logging.FilenamePattern)
	setString(&result.Logging.Level, loaded.Logging.Level)
	if loaded.Logging.MaxFiles > 0 {
		result.Logging.MaxFiles = loaded.Logging.MaxFiles
	}
	if loaded.Logging.MaxSizeMB > 0 {
		result.Logging.MaxSizeMB = loaded.Logging.MaxSizeMB
	}

	return &result
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ApplyEnvironmentOverrides checks for environment variables and overrides config values
func (c *Config) ApplyEnvironmentOverrides() {
	if v := os.Getenv("INTLPLAYGROUND_INPUT"); v != "" {
		c.Input.Initial = v
	}
	if v := os.Getenv("INTLPLAYGROUND_TIMEZONE"); v != "" {
		c.Input.Timezone = v
	}
	if v := os.Getenv("INTLPLAYGROUND_LOCALE"); v != "" {
		c.Options.Locale = v
	}
	if v := os.Getenv("INTLPLAYGROUND_TEMPLATE"); v != "" {
		c.Templates.Default = v
	}
	if v := os.Getenv("INTLPLAYGROUND_VIEW_WIDTH"); v != "" {
		// AIDEV-NOTE: Unparseable widths are ignored, keeping the file value
		if n, err := strconv.Atoi(v); err == nil {
			c.View.Width = n
		}
	}
	if v := os.Getenv("INTLPLAYGROUND_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("INTLPLAYGROUND_LOG_DIRECTORY"); v != "" {
		c.Logging.Directory = v
		c.Logging.Enabled = true
	}
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	err := errorutil.ValidateConfig("playground", func(vb *errorutil.ValidationBuilder) *errorutil.ValidationBuilder {
		vb.RequiredString("input.initial_pattern", c.Input.InitialPattern)
		if c.Input.Timezone != "" {
			_, err := time.LoadLocation(c.Input.Timezone)
			vb.Check("input.timezone", c.Input.Timezone, err)
		}

		if c.Options.Locale != "" {
			_, err := options.ParseLocale(c.Options.Locale)
			vb.Check("options.locale", c.Options.Locale, err)
		}
		values := c.Options.values()
		for _, field := range options.Fields {
			raw := values[field]
			if raw == "" {
				continue
			}
			_, err := options.ParseChoice(field, raw)
			vb.Check("options."+string(field), raw, err)
		}

		vb.IntRange("view.width", c.View.Width, constants.MinViewWidth, constants.MaxViewWidth)

		vb.RequiredString("templates.default", c.Templates.Default)
		if c.Templates.Default != constants.DefaultTemplateName {
			if _, ok := c.Templates.Templates[c.Templates.Default]; !ok {
				vb.Check("templates.default", c.Templates.Default,
					fmt.Errorf("template %q is not defined", c.Templates.Default))
			}
		}
		for name, tpl := range c.Templates.Templates {
			vb.RequiredString("templates.templates."+name+".entry", tpl.Entry)
		}

		vb.OneOf("logging.level", c.Logging.Level, logLevels)
		vb.Check("logging.filename_pattern", c.Logging.FilenamePattern,
			logger.ValidateFilenamePattern(c.Logging.FilenamePattern))
		vb.IntRange("logging.max_files", c.Logging.MaxFiles, 0, 365)
		return vb
	})
	if err != nil {
		return ConfigError{Message: err.Error(), Err: err}
	}
	return nil
}

func (o OptionsConfig) values() map[options.Field]string {
	return map[options.Field]string{
		options.FieldWeekday:   o.Weekday,
		options.FieldYear:      o.Year,
		options.FieldMonth:     o.Month,
		options.FieldDay:       o.Day,
		options.FieldHour:      o.Hour,
		options.FieldMinute:    o.Minute,
		options.FieldHourCycle: o.HourCycle,
	}
}

// FormatOptions converts the [options] section into a validated record.
func (c *Config) FormatOptions() (options.FormatOptions, error) {
	return options.FromValues(c.Options.Locale, c.Options.values())
}

// Location resolves input.timezone. Empty means time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Input.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Input.Timezone)
	if err != nil {
		return nil, ConfigError{Field: "input.timezone", Message: err.Error(), Err: err}
	}
	return loc, nil
}

// SaveConfig writes a Config struct to a TOML file
func SaveConfig(config *Config, path string) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to marshal config to TOML: %w", err)
	}

	return errorutil.SafeWriteFile(path, buf.Bytes(), "save config", true)
}
