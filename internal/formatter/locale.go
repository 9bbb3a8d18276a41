package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/ja_JP"
	"golang.org/x/text/language"
)

// dateParts holds each requested date field already rendered, or "" when
// the field was not requested.
type dateParts struct {
	weekday     string
	weekdayLong bool
	year        string
	month       string
	textMonth   bool
	day         string
}

// timeParts holds each requested time field already rendered. period is
// set only for 12-hour cycles.
type timeParts struct {
	hour   string
	minute string
	second string
	period string
}

// localeData is the bundled data for one locale: CLDR names and the rules
// that arrange rendered fields into a string.
type localeData struct {
	tag   language.Tag
	names locales.Translator
	// unitNarrowMonth renders narrow months with their unit ("1月"), as the
	// bare CLDR narrow form cannot stand in a date.
	unitNarrowMonth bool
	dateTimeSep     string
	// hourCycle is the locale default; hourCycle12 is used when a 12-hour
	// clock is requested without naming a cycle.
	hourCycle   string
	hourCycle12 string
	// pad24 pads a numeric hour on 24-hour cycles.
	pad24 bool
	date  func(p dateParts) string
	time  func(p timeParts) string
}

var (
	enUS = &localeData{
		tag:         language.AmericanEnglish,
		names:       en_US.New(),
		dateTimeSep: ", ",
		hourCycle:   "h12",
		hourCycle12: "h12",
		pad24:       true,
		date:        dateEnUS,
		time:        timeEnglish,
	}
	enGB = &localeData{
		tag:         language.BritishEnglish,
		names:       en_GB.New(),
		dateTimeSep: ", ",
		hourCycle:   "h23",
		hourCycle12: "h12",
		pad24:       true,
		date:        dateEnGB,
		time:        timeEnglish,
	}
	jaJP = &localeData{
		tag:             language.MustParse("ja-JP"),
		names:           ja_JP.New(),
		unitNarrowMonth: true,
		dateTimeSep:     " ",
		hourCycle:       "h23",
		hourCycle12:     "h11",
		pad24:           false,
		date:            dateJaJP,
		time:            timeJaJP,
	}

	// bundled is in matcher order; the first entry is the fallback.
	bundled = []*localeData{enUS, enGB, jaJP}

	matcher = language.NewMatcher([]language.Tag{enUS.tag, enGB.tag, jaJP.tag})
)

func resolveLocale(locale string) (*localeData, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLocale, locale)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return bundled[0], nil
	}
	return bundled[idx], nil
}

func (d *localeData) monthName(style string, m time.Month) string {
	switch style {
	case "long":
		return d.names.MonthWide(m)
	case "narrow":
		if !d.unitNarrowMonth {
			return d.names.MonthNarrow(m)
		}
	}
	return d.names.MonthAbbreviated(m)
}

func (d *localeData) weekdayName(style string, wd time.Weekday) string {
	switch style {
	case "long":
		return d.names.WeekdayWide(wd)
	case "narrow":
		return d.names.WeekdayNarrow(wd)
	}
	return d.names.WeekdayAbbreviated(wd)
}

// period returns the abbreviated day period: AM before noon, PM after.
func (d *localeData) period(hour int) string {
	periods := d.names.PeriodsAbbreviated()
	if hour >= 12 {
		return periods[1]
	}
	return periods[0]
}

func (f *DateTimeFormat) dateParts(t time.Time) dateParts {
	var p dateParts
	if f.weekday != "" {
		p.weekday = f.data.weekdayName(f.weekday, t.Weekday())
		p.weekdayLong = f.weekday == "long"
	}
	switch f.year {
	case "numeric":
		p.year = strconv.Itoa(t.Year())
	case "2-digit":
		p.year = twoDigits(t.Year() % 100)
	}
	switch f.month {
	case "numeric":
		p.month = strconv.Itoa(int(t.Month()))
	case "2-digit":
		p.month = twoDigits(int(t.Month()))
	case "long", "short", "narrow":
		p.month = f.data.monthName(f.month, t.Month())
		p.textMonth = true
	}
	switch f.day {
	case "numeric":
		p.day = strconv.Itoa(t.Day())
	case "2-digit":
		p.day = twoDigits(t.Day())
	}
	return p
}

func (f *DateTimeFormat) timeParts(t time.Time) timeParts {
	var p timeParts
	if f.hour != "" {
		h := t.Hour()
		switch f.hourCycle {
		case "h11":
			h %= 12
		case "h12":
			if h %= 12; h == 0 {
				h = 12
			}
		case "h24":
			if h == 0 {
				h = 24
			}
		}
		twelve := f.hourCycle == "h11" || f.hourCycle == "h12"
		if f.hour == "2-digit" || (!twelve && f.data.pad24) {
			p.hour = twoDigits(h)
		} else {
			p.hour = strconv.Itoa(h)
		}
		if twelve {
			p.period = f.data.period(t.Hour())
		}
	}

	// Minutes and seconds are always two digits next to a preceding field.
	if f.minute != "" {
		if f.minute == "2-digit" || p.hour != "" {
			p.minute = twoDigits(t.Minute())
		} else {
			p.minute = strconv.Itoa(t.Minute())
		}
	}
	if f.second != "" {
		if f.second == "2-digit" || p.minute != "" || p.hour != "" {
			p.second = twoDigits(t.Second())
		} else {
			p.second = strconv.Itoa(t.Second())
		}
	}
	return p
}

func twoDigits(n int) string {
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("%02d", n)
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// countNonEmpty reports how many parts are set.
func countNonEmpty(parts ...string) int {
	n := 0
	for _, p := range parts {
		if p != "" {
			n++
		}
	}
	return n
}

// en-US: "Mon, Jan 15, 2024", "1/15/2024".
func dateEnUS(p dateParts) string {
	var s string
	if p.textMonth {
		s = joinNonEmpty(" ", p.month, p.day)
		if p.year != "" {
			if p.day != "" {
				s += ","
			}
			s += " " + p.year
		}
	} else {
		s = joinNonEmpty("/", p.month, p.day, p.year)
	}
	return joinNonEmpty(", ", p.weekday, s)
}

// en-GB: "Mon 15 Jan 2024", "Mon, 15/01/2024". Combined numeric fields are
// zero-padded.
func dateEnGB(p dateParts) string {
	if p.textMonth {
		return joinNonEmpty(" ", p.weekday, joinNonEmpty(" ", p.day, p.month, p.year))
	}
	if countNonEmpty(p.year, p.month, p.day) >= 2 {
		if len(p.month) == 1 {
			p.month = "0" + p.month
		}
		if len(p.day) == 1 {
			p.day = "0" + p.day
		}
	}
	return joinNonEmpty(", ", p.weekday, joinNonEmpty("/", p.day, p.month, p.year))
}

// ja-JP: "2024年1月15日(月)", "2024/1/15(月)". A lone numeric field carries
// its unit ("2024年", "1月", "15日").
func dateJaJP(p dateParts) string {
	var s string
	switch {
	case p.textMonth:
		s = joinNonEmpty("", suffix(p.year, "年"), p.month, suffix(p.day, "日"))
	case countNonEmpty(p.year, p.month, p.day) == 1:
		s = suffix(p.year, "年") + suffix(p.month, "月") + suffix(p.day, "日")
	default:
		s = joinNonEmpty("/", p.year, p.month, p.day)
	}
	switch {
	case p.weekday == "":
		return s
	case s == "":
		return p.weekday
	case p.weekdayLong:
		return s + p.weekday
	default:
		return s + "(" + p.weekday + ")"
	}
}

func suffix(s, unit string) string {
	if s == "" {
		return ""
	}
	return s + unit
}

// English clocks: "9:30 AM", "09:30", "9 am".
func timeEnglish(p timeParts) string {
	return joinNonEmpty(" ", joinNonEmpty(":", p.hour, p.minute, p.second), p.period)
}

// ja-JP clocks: "9:30", "午前9:30", "9時".
func timeJaJP(p timeParts) string {
	s := joinNonEmpty(":", p.hour, p.minute, p.second)
	if p.hour != "" && p.minute == "" && p.second == "" {
		s += "時"
	}
	if s == "" {
		return ""
	}
	return p.period + s
}
