package dateutil

import (
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// InvalidText is what an unusable value renders as.
const InvalidText = "Invalid Date"

// minYear and maxYear bound the representable range (±8.64e15 ms around the epoch).
const (
	minYear = -271821
	maxYear = 275760
)

// Value is the result of parsing: either a usable instant or Invalid. The
// zero Value is Invalid, so validity must always be checked with IsValid.
type Value struct {
	t     time.Time
	valid bool
}

// Invalid is the sentinel for text that could not be interpreted.
var Invalid = Value{}

// ValueOf wraps t. Instants outside the representable range are Invalid.
func ValueOf(t time.Time) Value {
	return valueOf(t)
}

func valueOf(t time.Time) Value {
	if y := t.Year(); y < minYear || y > maxYear {
		return Invalid
	}
	return Value{t: t, valid: true}
}

// IsValid reports whether v holds a usable instant.
func (v Value) IsValid() bool {
	return v.valid
}

// Time returns the instant. It is the zero time when v is Invalid.
func (v Value) Time() time.Time {
	return v.t
}

// String renders v as RFC 3339, or InvalidText.
func (v Value) String() string {
	if !v.valid {
		return InvalidText
	}
	return v.t.Format(time.RFC3339)
}

// foldInput narrows full-width digits and punctuation typed through an IME
// and strips invisible format characters (bidi marks) that come along when
// formatted output is pasted back in.
func foldInput(s string) string {
	t := transform.Chain(width.Narrow, runes.Remove(runes.In(unicode.Cf)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Input owns the raw text and the value derived from it. parsed is only ever
// written by SetRawText.
type Input struct {
	parser *Parser
	raw    string
	parsed Value
}

// NewInput starts with the given text.
func NewInput(p *Parser, initial string) *Input {
	if p == nil {
		p = defaultParser
	}
	in := &Input{parser: p}
	in.SetRawText(initial)
	return in
}

// NewInputAt starts with now rendered through the user pattern, e.g.
// "M/D/YYYY, h:mm:ss A".
func NewInputAt(p *Parser, now time.Time, pattern string) *Input {
	if p == nil {
		p = defaultParser
	}
	return NewInput(p, FormatDateWithPattern(now.In(p.Location()), pattern))
}

// SetRawText stores text exactly as given and reparses it.
func (in *Input) SetRawText(text string) {
	in.raw = text
	in.parsed = in.parser.Parse(text)
}

// RawText returns the text exactly as last set.
func (in *Input) RawText() string {
	return in.raw
}

// Parsed returns the current value, possibly Invalid.
func (in *Input) Parsed() Value {
	return in.parsed
}

// IsValid reports whether the current text parsed.
func (in *Input) IsValid() bool {
	return in.parsed.IsValid()
}
