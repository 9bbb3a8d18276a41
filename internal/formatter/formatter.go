// Package formatter renders instants as locale-specific date/time strings
// from a small set of named field options (weekday, year, month, day, hour,
// minute, second, hourCycle), using bundled locale data.
package formatter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/agumy/intl-playground/internal/dateutil"
)

// FormatInvalid is rendered for a value that does not hold a usable instant.
const FormatInvalid = dateutil.InvalidText

var (
	// ErrInvalidOption reports an unknown option name or a value outside the
	// option's allowed set.
	ErrInvalidOption = errors.New("invalid date-time format option")
	// ErrInvalidLocale reports a locale string that is not a well-formed tag.
	ErrInvalidLocale = errors.New("invalid locale tag")
)

// Config maps option names to values, e.g. {"month": "short", "day": "2-digit"}.
// Absent options are not rendered.
type Config map[string]string

// Option names understood by the formatter.
const (
	OptWeekday   = "weekday"
	OptYear      = "year"
	OptMonth     = "month"
	OptDay       = "day"
	OptHour      = "hour"
	OptMinute    = "minute"
	OptSecond    = "second"
	OptHourCycle = "hourCycle"
	OptHour12    = "hour12"
	OptTimeZone  = "timeZone"
)

var (
	numeric2  = []string{"numeric", "2-digit"}
	textStyle = []string{"long", "short", "narrow"}
)

var allowedValues = map[string][]string{
	OptWeekday:   textStyle,
	OptYear:      numeric2,
	OptMonth:     append(append([]string{}, numeric2...), textStyle...),
	OptDay:       numeric2,
	OptHour:      numeric2,
	OptMinute:    numeric2,
	OptSecond:    numeric2,
	OptHourCycle: {"h11", "h12", "h23", "h24"},
	OptHour12:    {"true", "false"},
}

// DateTimeFormat is a formatter bound to one resolved locale and one set of
// options. It holds no mutable state.
type DateTimeFormat struct {
	requested string
	data      *localeData

	weekday string
	year    string
	month   string
	day     string
	hour    string
	minute  string
	second  string

	hourCycle string
	zone      *time.Location
}

// NewDateTimeFormat validates cfg and resolves locale against the bundled
// locales. A well-formed tag with no close bundled match resolves to en-US.
func NewDateTimeFormat(locale string, cfg Config) (*DateTimeFormat, error) {
	data, err := resolveLocale(locale)
	if err != nil {
		return nil, err
	}

	f := &DateTimeFormat{requested: locale, data: data}
	hour12 := ""
	for name, value := range cfg {
		if name == OptTimeZone {
			loc, err := time.LoadLocation(value)
			if err != nil || value == "" {
				return nil, fmt.Errorf("%w: %s=%q", ErrInvalidOption, name, value)
			}
			f.zone = loc
			continue
		}
		set, ok := allowedValues[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown option %q", ErrInvalidOption, name)
		}
		if !contains(set, value) {
			return nil, fmt.Errorf("%w: %s=%q (allowed: %s)", ErrInvalidOption, name, value, strings.Join(set, ", "))
		}
		switch name {
		case OptWeekday:
			f.weekday = value
		case OptYear:
			f.year = value
		case OptMonth:
			f.month = value
		case OptDay:
			f.day = value
		case OptHour:
			f.hour = value
		case OptMinute:
			f.minute = value
		case OptSecond:
			f.second = value
		case OptHourCycle:
			f.hourCycle = value
		case OptHour12:
			hour12 = value
		}
	}

	// Nothing requested renders the numeric date.
	if f.weekday == "" && f.year == "" && f.month == "" && f.day == "" &&
		f.hour == "" && f.minute == "" && f.second == "" {
		f.year, f.month, f.day = "numeric", "numeric", "numeric"
	}

	switch {
	case f.hour == "":
		f.hourCycle = ""
	case hour12 == "true":
		f.hourCycle = data.hourCycle12
	case hour12 == "false":
		f.hourCycle = "h23"
	case f.hourCycle == "":
		f.hourCycle = data.hourCycle
	}

	return f, nil
}

// Format renders t.
func (f *DateTimeFormat) Format(t time.Time) string {
	if f.zone != nil {
		t = t.In(f.zone)
	}

	date := f.data.date(f.dateParts(t))
	clock := f.data.time(f.timeParts(t))

	switch {
	case date == "":
		return clock
	case clock == "":
		return date
	default:
		return date + f.data.dateTimeSep + clock
	}
}

// FormatValue renders v, or FormatInvalid when v is not usable.
func (f *DateTimeFormat) FormatValue(v dateutil.Value) string {
	if !v.IsValid() {
		return FormatInvalid
	}
	return f.Format(v.Time())
}

// Locale returns the resolved bundled locale.
func (f *DateTimeFormat) Locale() string {
	return f.data.tag.String()
}

// ResolvedOptions reports the locale and every option in effect after
// defaults were applied.
func (f *DateTimeFormat) ResolvedOptions() map[string]string {
	out := map[string]string{"locale": f.Locale()}
	for name, v := range map[string]string{
		OptWeekday:   f.weekday,
		OptYear:      f.year,
		OptMonth:     f.month,
		OptDay:       f.day,
		OptHour:      f.hour,
		OptMinute:    f.minute,
		OptSecond:    f.second,
		OptHourCycle: f.hourCycle,
	} {
		if v != "" {
			out[name] = v
		}
	}
	if f.zone != nil {
		out[OptTimeZone] = f.zone.String()
	}
	return out
}

// Format builds a fresh DateTimeFormat for locale and cfg and renders v.
// An unusable v renders FormatInvalid; the error only reports bad locale or
// options.
func Format(locale string, cfg Config, v dateutil.Value) (string, error) {
	f, err := NewDateTimeFormat(locale, cfg)
	if err != nil {
		return "", err
	}
	return f.FormatValue(v), nil
}

// DisplayName returns the locale's name in its own language, e.g. "日本語"
// for ja-JP. Unparseable tags are returned unchanged.
func DisplayName(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return locale
}

// SupportedLocales lists the bundled locales.
func SupportedLocales() []string {
	out := make([]string, len(bundled))
	for i, d := range bundled {
		out[i] = d.tag.String()
	}
	return out
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
