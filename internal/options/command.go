package options

import "fmt"

// Command is a single mutation of FormatOptions. The concrete variants are
// SelectOption, SelectLocale and Reset.
type Command interface {
	apply(FormatOptions) FormatOptions
}

// SelectOption sets one field to one value.
type SelectOption struct {
	Field Field
	Value Choice
}

func (c SelectOption) apply(o FormatOptions) FormatOptions {
	return o.SetField(c.Field, c.Value)
}

// SelectLocale replaces the locale.
type SelectLocale struct {
	Locale Locale
}

func (c SelectLocale) apply(o FormatOptions) FormatOptions {
	return o.SetLocale(c.Locale)
}

// Reset replaces the whole record with the defaults.
type Reset struct {
	Defaults FormatOptions
}

func (c Reset) apply(FormatOptions) FormatOptions {
	return c.Defaults
}

// Reduce applies cmd to o and returns the new state. A nil command returns o
// unchanged.
func Reduce(o FormatOptions, cmd Command) FormatOptions {
	if cmd == nil {
		return o
	}
	return cmd.apply(o)
}

// NewSelectOption parses a field name and value coming from a text surface.
func NewSelectOption(field, value string) (SelectOption, error) {
	f, err := ParseField(field)
	if err != nil {
		return SelectOption{}, err
	}
	v, err := ParseChoice(f, value)
	if err != nil {
		return SelectOption{}, err
	}
	return SelectOption{Field: f, Value: v}, nil
}

// NewSelectLocale parses a locale identifier coming from a text surface.
func NewSelectLocale(locale string) (SelectLocale, error) {
	l, err := ParseLocale(locale)
	if err != nil {
		return SelectLocale{}, err
	}
	return SelectLocale{Locale: l}, nil
}

// FromValues builds options from plain strings, typically a config section.
// Empty values keep the default for that field.
func FromValues(locale string, values map[Field]string) (FormatOptions, error) {
	o := Default()
	if locale != "" {
		l, err := ParseLocale(locale)
		if err != nil {
			return FormatOptions{}, err
		}
		o = o.SetLocale(l)
	}
	for _, f := range Fields {
		raw, ok := values[f]
		if !ok || raw == "" {
			continue
		}
		v, err := ParseChoice(f, raw)
		if err != nil {
			return FormatOptions{}, fmt.Errorf("options.%s: %w", f, err)
		}
		o = o.SetField(f, v)
	}
	return o, nil
}
