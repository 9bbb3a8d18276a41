// Package options holds the field-level formatting choices and the selected
// locale, and derives the configuration mapping handed to the formatter.
package options

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agumy/intl-playground/internal/constants"
)

// Field names a formatting option. The string values double as the keys of
// the formatter configuration.
type Field string

const (
	FieldWeekday   Field = "weekday"
	FieldYear      Field = "year"
	FieldMonth     Field = "month"
	FieldDay       Field = "day"
	FieldHour      Field = "hour"
	FieldMinute    Field = "minute"
	FieldHourCycle Field = "hourCycle"
)

// Choice is one enumerated value for a Field.
type Choice string

const (
	None     Choice = "none"
	Numeric  Choice = "numeric"
	TwoDigit Choice = "2-digit"
	Long     Choice = "long"
	Short    Choice = "short"
	Narrow   Choice = "narrow"
	H12      Choice = "h12"
	H24      Choice = "h24"
)

// Locale is one of the supported locale identifiers.
type Locale string

var (
	ErrUnknownField      = errors.New("unknown option field")
	ErrInvalidChoice     = errors.New("invalid choice for field")
	ErrUnsupportedLocale = errors.New("unsupported locale")
)

// Fields lists every option field in display order.
var Fields = []Field{FieldWeekday, FieldYear, FieldMonth, FieldDay, FieldHour, FieldMinute, FieldHourCycle}

var allowed = map[Field][]Choice{
	FieldWeekday:   {None, Long, Short, Narrow},
	FieldYear:      {None, Numeric, TwoDigit},
	FieldMonth:     {None, Numeric, TwoDigit, Long, Short, Narrow},
	FieldDay:       {None, Numeric, TwoDigit},
	FieldHour:      {None, Numeric, TwoDigit},
	FieldMinute:    {None, Numeric, TwoDigit},
	FieldHourCycle: {H12, H24},
}

// Choices returns the allowed values for a field, in display order.
func Choices(f Field) []Choice {
	return append([]Choice(nil), allowed[f]...)
}

// Locales returns the supported locales in display order.
func Locales() []Locale {
	out := make([]Locale, len(constants.SupportedLocales))
	for i, l := range constants.SupportedLocales {
		out[i] = Locale(l)
	}
	return out
}

// ParseField resolves a field name. Matching is case-insensitive so
// "hourcycle" and "hour-cycle" both name FieldHourCycle.
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "").Replace(key)
	for _, f := range Fields {
		if strings.ToLower(string(f)) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// ParseChoice validates value against the allowed set for f.
func ParseChoice(f Field, value string) (Choice, error) {
	set, ok := allowed[f]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	v := Choice(strings.ToLower(strings.TrimSpace(value)))
	for _, c := range set {
		if c == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w %s: %q (allowed: %s)", ErrInvalidChoice, f, value, joinChoices(set))
}

// ParseLocale validates a locale identifier against the supported set.
func ParseLocale(name string) (Locale, error) {
	trimmed := strings.TrimSpace(name)
	for _, l := range Locales() {
		if strings.EqualFold(string(l), trimmed) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, name)
}

func joinChoices(set []Choice) string {
	parts := make([]string, len(set))
	for i, c := range set {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// FormatOptions is the full set of formatting choices. It is a value type:
// every mutation returns a new record.
type FormatOptions struct {
	Locale    Locale `yaml:"locale" json:"locale"`
	Weekday   Choice `yaml:"weekday" json:"weekday"`
	Year      Choice `yaml:"year" json:"year"`
	Month     Choice `yaml:"month" json:"month"`
	Day       Choice `yaml:"day" json:"day"`
	Hour      Choice `yaml:"hour" json:"hour"`
	Minute    Choice `yaml:"minute" json:"minute"`
	HourCycle Choice `yaml:"hourCycle" json:"hourCycle"`
}

// Default returns the fixed initial configuration.
func Default() FormatOptions {
	return FormatOptions{
		Locale:    Locale(constants.DefaultLocale),
		Weekday:   Short,
		Year:      Numeric,
		Month:     Short,
		Day:       TwoDigit,
		Hour:      None,
		Minute:    None,
		HourCycle: H24,
	}
}

// Get returns the current choice for f.
func (o FormatOptions) Get(f Field) Choice {
	switch f {
	case FieldWeekday:
		return o.Weekday
	case FieldYear:
		return o.Year
	case FieldMonth:
		return o.Month
	case FieldDay:
		return o.Day
	case FieldHour:
		return o.Hour
	case FieldMinute:
		return o.Minute
	case FieldHourCycle:
		return o.HourCycle
	}
	return ""
}

// SetField returns a copy with only f replaced. Callers are expected to have
// validated v with ParseChoice; an unknown field leaves the record unchanged.
func (o FormatOptions) SetField(f Field, v Choice) FormatOptions {
	switch f {
	case FieldWeekday:
		o.Weekday = v
	case FieldYear:
		o.Year = v
	case FieldMonth:
		o.Month = v
	case FieldDay:
		o.Day = v
	case FieldHour:
		o.Hour = v
	case FieldMinute:
		o.Minute = v
	case FieldHourCycle:
		o.HourCycle = v
	}
	return o
}

// SetLocale returns a copy with only the locale replaced.
func (o FormatOptions) SetLocale(l Locale) FormatOptions {
	o.Locale = l
	return o
}

// FormatterConfig maps option names to the chosen value. Absence of a key
// means the field is not rendered.
type FormatterConfig map[Field]string

// ToFormatterConfig keeps only the fields that are not "none". hourCycle is
// only meaningful when an hour is rendered, so it rides along with hour.
func (o FormatOptions) ToFormatterConfig() FormatterConfig {
	cfg := make(FormatterConfig, len(Fields))
	for _, f := range Fields {
		if f == FieldHourCycle {
			continue
		}
		if v := o.Get(f); v != None && v != "" {
			cfg[f] = string(v)
		}
	}
	if _, ok := cfg[FieldHour]; ok && o.HourCycle != "" {
		cfg[FieldHourCycle] = string(o.HourCycle)
	}
	return cfg
}

// Strings returns the mapping keyed by plain option names.
func (c FormatterConfig) Strings() map[string]string {
	out := make(map[string]string, len(c))
	for f, v := range c {
		out[string(f)] = v
	}
	return out
}
