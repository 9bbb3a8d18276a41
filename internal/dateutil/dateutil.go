// Package dateutil interprets free-text date/time input and converts
// user-friendly date patterns to Go time layouts.
package dateutil

import (
	"strings"
	"time"
)

// FormatDateToGoLayout converts user-friendly date format patterns to Go time reference patterns.
//
// Example conversions:
//   - "YYYY" -> "2006" (4-digit year)
//   - "MMM" -> "Jan" (abbreviated month name)
//   - "MM" -> "01" (2-digit month with leading zero)
//   - "M/D/YYYY, h:mm:ss A" -> "1/2/2006, 3:04:05 PM"
//   - "YYYYMMDD" -> "20060102"
func FormatDateToGoLayout(userFormat string) string {
	// AIDEV-NOTE: Order matters - longer tokens must precede their prefixes (MMMM before MM before M)
	replacer := strings.NewReplacer(
		"YYYY", "2006", // 4-digit year
		"YY", "06", // 2-digit year
		"MMMM", "January", // full month name
		"MMM", "Jan", // abbreviated month name
		"MM", "01", // 2-digit month with leading zero
		"M", "1", // 1-2 digit month without leading zero
		"DD", "02", // 2-digit day with leading zero
		"D", "2", // 1-2 digit day without leading zero
		"dddd", "Monday", // full weekday name
		"ddd", "Mon", // abbreviated weekday name
		"HH", "15", // 24-hour clock
		"hh", "03", // 12-hour clock with leading zero
		"h", "3", // 12-hour clock
		"mm", "04", // minutes with leading zero
		"m", "4", // minutes
		"ss", "05", // seconds with leading zero
		"s", "5", // seconds
		"A", "PM", // upper-case day period
		"a", "pm", // lower-case day period
		"Z", "Z07:00", // numeric zone offset
	)

	return replacer.Replace(userFormat)
}

// FormatDateWithPattern formats a time using a user-friendly pattern.
func FormatDateWithPattern(t time.Time, userPattern string) string {
	return t.Format(FormatDateToGoLayout(userPattern))
}

// zonedLayouts carry their own offset or zone name and are parsed as-is.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.UnixDate,
	time.RubyDate,
	"Mon Jan 2 2006 15:04:05 GMT-0700",
}

// localLayouts have no zone and are interpreted in the parser's location.
// AIDEV-NOTE: Ordered by likelihood; a numeric layout such as "1" also accepts two digits
var localLayouts = []string{
	// ISO-8601 without offset (fractional seconds are accepted after the seconds field)
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2",
	"2006-01",
	"20060102",
	"2006",

	// Slash and dot separated, year first
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006/1/2",
	"2006.1.2",

	// en-US locale string forms, month first
	"1/2/2006, 3:04:05 PM",
	"1/2/2006, 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006, 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",

	// Month names
	"January 2, 2006 15:04:05",
	"January 2, 2006 15:04",
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"January 2 2006 15:04:05",
	"January 2 2006 15:04",
	"January 2 2006",
	"Jan 2 2006 15:04:05",
	"Jan 2 2006 15:04",
	"Jan 2 2006",
	"2 January 2006 15:04:05",
	"2 January 2006 15:04",
	"2 January 2006",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
	"Mon Jan 2 2006 15:04:05",
	"Mon Jan 2 2006",
	time.ANSIC,

	// ja-JP forms
	"2006年1月2日 15:04:05",
	"2006年1月2日 15:04",
	"2006年1月2日",
}

// Parser interprets free text as a date/time. Text without an explicit zone
// is read in the parser's location. That includes ISO date-only input such
// as "2024-01-15", which is local midnight rather than UTC midnight, so
// every zone-less form is read the same way.
type Parser struct {
	loc *time.Location
}

// NewParser returns a parser reading zone-less input in loc. A nil loc means
// the process's local zone.
func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{loc: loc}
}

// Location returns the zone used for zone-less input.
func (p *Parser) Location() *time.Location {
	return p.loc
}

// Parse interprets raw and returns Invalid when no known form matches. It
// never returns an error: unparseable input is a normal state.
func (p *Parser) Parse(raw string) Value {
	s := strings.TrimSpace(foldInput(raw))
	if s == "" {
		return Invalid
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return valueOf(t)
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return valueOf(t)
		}
	}
	return Invalid
}

var defaultParser = NewParser(nil)

// Parse interprets raw in the local zone.
func Parse(raw string) Value {
	return defaultParser.Parse(raw)
}
