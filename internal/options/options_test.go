package options

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	want := FormatOptions{
		Locale:    "ja-JP",
		Weekday:   Short,
		Year:      Numeric,
		Month:     Short,
		Day:       TwoDigit,
		Hour:      None,
		Minute:    None,
		HourCycle: H24,
	}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetFieldChangesOnlyThatField(t *testing.T) {
	before := Default()

	for _, k1 := range Fields {
		for _, v := range Choices(k1) {
			after := before.SetField(k1, v)
			if after.Get(k1) != v {
				t.Errorf("SetField(%s, %s).Get(%s) = %s", k1, v, k1, after.Get(k1))
			}
			for _, k2 := range Fields {
				if k2 == k1 {
					continue
				}
				if after.Get(k2) != before.Get(k2) {
					t.Errorf("SetField(%s, %s) changed %s: %s -> %s", k1, v, k2, before.Get(k2), after.Get(k2))
				}
			}
			if after.Locale != before.Locale {
				t.Errorf("SetField(%s, %s) changed locale", k1, v)
			}
		}
	}
}

func TestSetFieldIsIdempotent(t *testing.T) {
	once := Default().SetField(FieldMonth, Long)
	twice := once.SetField(FieldMonth, Long)
	if once != twice {
		t.Errorf("setting the same value twice differs: %+v vs %+v", once, twice)
	}
}

func TestSetLocaleLeavesFields(t *testing.T) {
	before := Default()
	after := before.SetLocale("en-GB")
	if after.Locale != "en-GB" {
		t.Fatalf("Locale = %s, want en-GB", after.Locale)
	}
	after.Locale = before.Locale
	if after != before {
		t.Errorf("SetLocale changed fields: %+v", after)
	}
}

func TestToFormatterConfig(t *testing.T) {
	tests := []struct {
		name string
		opts FormatOptions
		want FormatterConfig
	}{
		{
			name: "defaults",
			opts: Default(),
			want: FormatterConfig{
				FieldWeekday: "short",
				FieldYear:    "numeric",
				FieldMonth:   "short",
				FieldDay:     "2-digit",
			},
		},
		{
			name: "all none",
			opts: FormatOptions{Locale: "en-US", Weekday: None, Year: None, Month: None, Day: None, Hour: None, Minute: None, HourCycle: H12},
			want: FormatterConfig{},
		},
		{
			name: "hour carries hour cycle",
			opts: Default().SetField(FieldHour, Numeric).SetField(FieldMinute, TwoDigit).SetField(FieldHourCycle, H12),
			want: FormatterConfig{
				FieldWeekday:   "short",
				FieldYear:      "numeric",
				FieldMonth:     "short",
				FieldDay:       "2-digit",
				FieldHour:      "numeric",
				FieldMinute:    "2-digit",
				FieldHourCycle: "h12",
			},
		},
		{
			name: "minute without hour drops hour cycle",
			opts: Default().SetField(FieldMinute, Numeric),
			want: FormatterConfig{
				FieldWeekday: "short",
				FieldYear:    "numeric",
				FieldMonth:   "short",
				FieldDay:     "2-digit",
				FieldMinute:  "numeric",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.ToFormatterConfig()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ToFormatterConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToFormatterConfigNeverContainsNone(t *testing.T) {
	// Walk every combination of weekday/month/hour; the other fields are
	// independent and covered by the table test above.
	for _, wd := range Choices(FieldWeekday) {
		for _, mo := range Choices(FieldMonth) {
			for _, hr := range Choices(FieldHour) {
				o := Default().
					SetField(FieldWeekday, wd).
					SetField(FieldMonth, mo).
					SetField(FieldHour, hr)
				for k, v := range o.ToFormatterConfig() {
					if o.Get(k) == None {
						t.Errorf("config for %+v contains none-valued key %s", o, k)
					}
					if v == string(None) || v == "" {
						t.Errorf("config for %+v has empty marker for %s", o, k)
					}
				}
			}
		}
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		input   string
		want    Field
		wantErr bool
	}{
		{input: "weekday", want: FieldWeekday},
		{input: " Month ", want: FieldMonth},
		{input: "hourCycle", want: FieldHourCycle},
		{input: "hour-cycle", want: FieldHourCycle},
		{input: "hour_cycle", want: FieldHourCycle},
		{input: "second", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseField(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownField) {
					t.Errorf("ParseField(%q) error = %v, want ErrUnknownField", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseField(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseField(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   string
		want    Choice
		wantErr bool
	}{
		{name: "weekday long", field: FieldWeekday, value: "long", want: Long},
		{name: "month narrow", field: FieldMonth, value: "NARROW", want: Narrow},
		{name: "day 2-digit", field: FieldDay, value: "2-digit", want: TwoDigit},
		{name: "year long rejected", field: FieldYear, value: "long", wantErr: true},
		{name: "weekday numeric rejected", field: FieldWeekday, value: "numeric", wantErr: true},
		{name: "hour cycle h24", field: FieldHourCycle, value: "h24", want: H24},
		{name: "hour cycle none rejected", field: FieldHourCycle, value: "none", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChoice(tt.field, tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidChoice) {
					t.Errorf("ParseChoice(%s, %q) error = %v, want ErrInvalidChoice", tt.field, tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseChoice(%s, %q) unexpected error: %v", tt.field, tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ParseChoice(%s, %q) = %s, want %s", tt.field, tt.value, got, tt.want)
			}
		})
	}
}

func TestParseLocale(t *testing.T) {
	if l, err := ParseLocale("en-gb"); err != nil || l != "en-GB" {
		t.Errorf("ParseLocale(en-gb) = %s, %v", l, err)
	}
	if _, err := ParseLocale("fr-FR"); !errors.Is(err, ErrUnsupportedLocale) {
		t.Errorf("ParseLocale(fr-FR) error = %v, want ErrUnsupportedLocale", err)
	}
}

func TestReduce(t *testing.T) {
	start := Default()

	got := Reduce(start, SelectOption{Field: FieldYear, Value: TwoDigit})
	if got.Year != TwoDigit {
		t.Errorf("Reduce(SelectOption) Year = %s, want 2-digit", got.Year)
	}

	got = Reduce(got, SelectLocale{Locale: "en-US"})
	if got.Locale != "en-US" || got.Year != TwoDigit {
		t.Errorf("Reduce(SelectLocale) = %+v", got)
	}

	got = Reduce(got, Reset{Defaults: start})
	if got != start {
		t.Errorf("Reduce(Reset) = %+v, want %+v", got, start)
	}

	if Reduce(start, nil) != start {
		t.Errorf("Reduce(nil) changed state")
	}
}

func TestNewSelectOption(t *testing.T) {
	cmd, err := NewSelectOption("hour", "2-digit")
	if err != nil {
		t.Fatalf("NewSelectOption: %v", err)
	}
	if diff := cmp.Diff(SelectOption{Field: FieldHour, Value: TwoDigit}, cmd); diff != "" {
		t.Errorf("NewSelectOption mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewSelectOption("month", "full"); !errors.Is(err, ErrInvalidChoice) {
		t.Errorf("NewSelectOption(month, full) error = %v", err)
	}
	if _, err := NewSelectLocale("de-DE"); !errors.Is(err, ErrUnsupportedLocale) {
		t.Errorf("NewSelectLocale(de-DE) error = %v", err)
	}
}

func TestFromValues(t *testing.T) {
	got, err := FromValues("en-US", map[Field]string{
		FieldWeekday: "none",
		FieldMonth:   "long",
		FieldHour:    "",
	})
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	want := Default().SetLocale("en-US").SetField(FieldWeekday, None).SetField(FieldMonth, Long)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromValues mismatch (-want +got):\n%s", diff)
	}

	if _, err := FromValues("", map[Field]string{FieldDay: "long"}); !errors.Is(err, ErrInvalidChoice) {
		t.Errorf("FromValues(day=long) error = %v, want ErrInvalidChoice", err)
	}
}

func TestFormatterConfigStrings(t *testing.T) {
	cfg := Default().SetField(FieldHour, Numeric).ToFormatterConfig()
	want := map[string]string{
		"weekday":   "short",
		"year":      "numeric",
		"month":     "short",
		"day":       "2-digit",
		"hour":      "numeric",
		"hourCycle": "h24",
	}
	if diff := cmp.Diff(want, cfg.Strings()); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
}
