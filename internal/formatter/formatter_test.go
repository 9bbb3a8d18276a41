package formatter

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/agumy/intl-playground/internal/dateutil"
)

// Monday.
var morning = time.Date(2024, 1, 15, 9, 30, 5, 0, time.UTC)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		cfg    Config
		at     time.Time
		want   string
	}{
		// en-US
		{name: "en-US short month", locale: "en-US", cfg: Config{"year": "numeric", "month": "short", "day": "2-digit"}, want: "Jan 15, 2024"},
		{name: "en-US short weekday", locale: "en-US", cfg: Config{"weekday": "short", "year": "numeric", "month": "short", "day": "numeric"}, want: "Mon, Jan 15, 2024"},
		{name: "en-US long", locale: "en-US", cfg: Config{"weekday": "long", "year": "numeric", "month": "long", "day": "numeric"}, want: "Monday, January 15, 2024"},
		{name: "en-US month day", locale: "en-US", cfg: Config{"month": "short", "day": "numeric"}, want: "Jan 15"},
		{name: "en-US month year", locale: "en-US", cfg: Config{"month": "short", "year": "numeric"}, want: "Jan 2024"},
		{name: "en-US numeric", locale: "en-US", cfg: Config{"year": "numeric", "month": "numeric", "day": "numeric"}, want: "1/15/2024"},
		{name: "en-US 2-digit", locale: "en-US", cfg: Config{"year": "numeric", "month": "2-digit", "day": "2-digit"}, want: "01/15/2024"},
		{name: "en-US 2-digit year", locale: "en-US", cfg: Config{"year": "2-digit", "month": "numeric", "day": "numeric"}, want: "1/15/24"},
		{name: "en-US numeric weekday", locale: "en-US", cfg: Config{"weekday": "short", "year": "numeric", "month": "numeric", "day": "numeric"}, want: "Mon, 1/15/2024"},
		{name: "en-US narrow month", locale: "en-US", cfg: Config{"month": "narrow"}, want: "J"},
		{name: "en-US time h12", locale: "en-US", cfg: Config{"hour": "numeric", "minute": "numeric"}, want: "9:30 AM"},
		{name: "en-US hour only", locale: "en-US", cfg: Config{"hour": "numeric"}, want: "9 AM"},
		{name: "en-US time h23", locale: "en-US", cfg: Config{"hour": "numeric", "minute": "2-digit", "hourCycle": "h23"}, want: "09:30"},
		{name: "en-US hour12 false", locale: "en-US", cfg: Config{"hour": "numeric", "minute": "numeric", "hour12": "false"}, want: "09:30"},
		{name: "en-US seconds", locale: "en-US", cfg: Config{"hour": "numeric", "minute": "numeric", "second": "numeric"}, want: "9:30:05 AM"},
		{name: "en-US date and time", locale: "en-US", cfg: Config{"year": "numeric", "month": "short", "day": "numeric", "hour": "numeric", "minute": "numeric"}, want: "Jan 15, 2024, 9:30 AM"},
		{name: "en-US afternoon", locale: "en-US", cfg: Config{"hour": "numeric", "minute": "numeric"}, at: time.Date(2024, 1, 15, 12, 5, 0, 0, time.UTC), want: "12:05 PM"},
		{name: "en-US midnight h12", locale: "en-US", cfg: Config{"hour": "numeric", "minute": "numeric", "hourCycle": "h12"}, at: time.Date(2024, 1, 15, 0, 5, 0, 0, time.UTC), want: "12:05 AM"},
		{name: "en-US midnight h11", locale: "en-US", cfg: Config{"hour": "numeric", "minute": "numeric", "hourCycle": "h11"}, at: time.Date(2024, 1, 15, 0, 5, 0, 0, time.UTC), want: "0:05 AM"},
		{name: "en-US midnight h24", locale: "en-US", cfg: Config{"hour": "numeric", "minute": "numeric", "hourCycle": "h24"}, at: time.Date(2024, 1, 15, 0, 5, 0, 0, time.UTC), want: "24:05"},
		{name: "minute alone", locale: "en-US", cfg: Config{"minute": "numeric"}, want: "30"},
		{name: "default is numeric date", locale: "en-US", cfg: nil, want: "1/15/2024"},
		{name: "hourCycle alone keeps default date", locale: "en-US", cfg: Config{"hourCycle": "h12"}, want: "1/15/2024"},

		// en-GB
		{name: "en-GB short month", locale: "en-GB", cfg: Config{"year": "numeric", "month": "short", "day": "numeric"}, want: "15 Jan 2024"},
		{name: "en-GB weekday", locale: "en-GB", cfg: Config{"weekday": "short", "year": "numeric", "month": "short", "day": "2-digit"}, want: "Mon 15 Jan 2024"},
		{name: "en-GB numeric", locale: "en-GB", cfg: Config{"year": "numeric", "month": "numeric", "day": "numeric"}, want: "15/01/2024"},
		{name: "en-GB numeric weekday", locale: "en-GB", cfg: Config{"weekday": "short", "year": "numeric", "month": "numeric", "day": "numeric"}, want: "Mon, 15/01/2024"},
		{name: "en-GB month alone", locale: "en-GB", cfg: Config{"month": "numeric"}, want: "1"},
		{name: "en-GB time default", locale: "en-GB", cfg: Config{"hour": "numeric", "minute": "numeric"}, want: "09:30"},
		{name: "en-GB time h12", locale: "en-GB", cfg: Config{"hour": "numeric", "minute": "numeric", "hourCycle": "h12"}, want: "9:30 am"},

		// ja-JP
		{name: "ja-JP short month", locale: "ja-JP", cfg: Config{"year": "numeric", "month": "short", "day": "numeric"}, want: "2024年1月15日"},
		{name: "ja-JP short weekday", locale: "ja-JP", cfg: Config{"weekday": "short", "year": "numeric", "month": "short", "day": "2-digit"}, want: "2024年1月15日(月)"},
		{name: "ja-JP long weekday", locale: "ja-JP", cfg: Config{"weekday": "long", "year": "numeric", "month": "long", "day": "numeric"}, want: "2024年1月15日月曜日"},
		{name: "ja-JP numeric", locale: "ja-JP", cfg: Config{"year": "numeric", "month": "numeric", "day": "numeric"}, want: "2024/1/15"},
		{name: "ja-JP numeric weekday", locale: "ja-JP", cfg: Config{"weekday": "short", "year": "numeric", "month": "numeric", "day": "numeric"}, want: "2024/1/15(月)"},
		{name: "ja-JP year only", locale: "ja-JP", cfg: Config{"year": "numeric"}, want: "2024年"},
		{name: "ja-JP month only", locale: "ja-JP", cfg: Config{"month": "numeric"}, want: "1月"},
		{name: "ja-JP day only", locale: "ja-JP", cfg: Config{"day": "numeric"}, want: "15日"},
		{name: "ja-JP weekday only", locale: "ja-JP", cfg: Config{"weekday": "long"}, want: "月曜日"},
		{name: "ja-JP narrow month keeps unit", locale: "ja-JP", cfg: Config{"month": "narrow"}, want: "1月"},
		{name: "ja-JP narrow weekday", locale: "ja-JP", cfg: Config{"weekday": "narrow"}, want: "月"},
		{name: "en-US narrow weekday", locale: "en-US", cfg: Config{"weekday": "narrow"}, want: "M"},
		{name: "ja-JP 12-hour period", locale: "ja-JP", cfg: Config{"hour": "numeric", "minute": "numeric", "hour12": "true"}, want: "午前9:30"},
		{name: "ja-JP time", locale: "ja-JP", cfg: Config{"hour": "numeric", "minute": "numeric"}, want: "9:30"},
		{name: "ja-JP time h12", locale: "ja-JP", cfg: Config{"hour": "numeric", "minute": "numeric", "hourCycle": "h12"}, want: "午前9:30"},
		{name: "ja-JP hour only", locale: "ja-JP", cfg: Config{"hour": "numeric"}, want: "9時"},
		{name: "ja-JP date and time", locale: "ja-JP", cfg: Config{"year": "numeric", "month": "numeric", "day": "numeric", "hour": "numeric", "minute": "numeric"}, want: "2024/1/15 9:30"},

		// resolution
		{name: "language-only tag", locale: "ja", cfg: Config{"year": "numeric"}, want: "2024年"},
		{name: "unmatched tag falls back", locale: "fr-FR", cfg: Config{"year": "numeric", "month": "short", "day": "numeric"}, want: "Jan 15, 2024"},
		{name: "time zone option", locale: "en-US", cfg: Config{"hour": "numeric", "minute": "numeric", "timeZone": "UTC"}, want: "9:30 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := tt.at
			if at.IsZero() {
				at = morning
			}
			got, err := Format(tt.locale, tt.cfg, dateutil.ValueOf(at))
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.locale, tt.cfg, got, tt.want)
			}
		})
	}
}

func TestFormatParsedScenario(t *testing.T) {
	v := dateutil.NewParser(time.UTC).Parse("2024-01-15T09:30")
	got, err := Format("en-US", Config{"year": "numeric", "month": "short", "day": "2-digit"}, v)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got != "Jan 15, 2024" {
		t.Errorf("Format() = %q, want %q", got, "Jan 15, 2024")
	}
}

func TestFormatInvalidValue(t *testing.T) {
	got, err := Format("en-US", Config{"year": "numeric"}, dateutil.Invalid)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got != FormatInvalid {
		t.Errorf("Format(Invalid) = %q, want %q", got, FormatInvalid)
	}
}

func TestFormatDeterministic(t *testing.T) {
	cfg := Config{"weekday": "short", "year": "numeric", "month": "short", "day": "2-digit", "hour": "2-digit", "minute": "2-digit"}
	v := dateutil.ValueOf(morning)
	first, err := Format("ja-JP", cfg, v)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	for i := 0; i < 20; i++ {
		got, _ := Format("ja-JP", cfg, v)
		if got != first {
			t.Fatalf("call %d = %q, want %q", i, got, first)
		}
	}
}

func TestNewDateTimeFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		locale  string
		cfg     Config
		wantErr error
	}{
		{name: "unknown option", locale: "en-US", cfg: Config{"era": "long"}, wantErr: ErrInvalidOption},
		{name: "bad value", locale: "en-US", cfg: Config{"day": "long"}, wantErr: ErrInvalidOption},
		{name: "empty value", locale: "en-US", cfg: Config{"year": ""}, wantErr: ErrInvalidOption},
		{name: "bad hour cycle", locale: "en-US", cfg: Config{"hourCycle": "h25"}, wantErr: ErrInvalidOption},
		{name: "bad zone", locale: "en-US", cfg: Config{"timeZone": "Mars/Olympus"}, wantErr: ErrInvalidOption},
		{name: "malformed locale", locale: "not a tag!", wantErr: ErrInvalidLocale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDateTimeFormat(tt.locale, tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewDateTimeFormat() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolvedOptions(t *testing.T) {
	f, err := NewDateTimeFormat("en-GB", Config{"hour": "numeric", "minute": "numeric"})
	if err != nil {
		t.Fatalf("NewDateTimeFormat() error = %v", err)
	}
	want := map[string]string{
		"locale":    "en-GB",
		"hour":      "numeric",
		"minute":    "numeric",
		"hourCycle": "h23",
	}
	if diff := cmp.Diff(want, f.ResolvedOptions()); diff != "" {
		t.Errorf("ResolvedOptions() mismatch (-want +got):\n%s", diff)
	}

	f, err = NewDateTimeFormat("en-US", Config{"hourCycle": "h12"})
	if err != nil {
		t.Fatalf("NewDateTimeFormat() error = %v", err)
	}
	if _, ok := f.ResolvedOptions()["hourCycle"]; ok {
		t.Error("hourCycle resolved without an hour field")
	}
}

func TestSupportedLocales(t *testing.T) {
	want := []string{"en-US", "en-GB", "ja-JP"}
	if diff := cmp.Diff(want, SupportedLocales()); diff != "" {
		t.Errorf("SupportedLocales() mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayName(t *testing.T) {
	for _, l := range SupportedLocales() {
		if got := DisplayName(l); got == "" || got == l {
			t.Errorf("DisplayName(%q) = %q, want a language name", l, got)
		}
	}
	if got := DisplayName("not a tag!"); got != "not a tag!" {
		t.Errorf("DisplayName(malformed) = %q, want input unchanged", got)
	}
}
