package playground

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agumy/intl-playground/internal/formatter"
	"github.com/agumy/intl-playground/internal/options"
	"github.com/agumy/intl-playground/internal/results"
)

// ErrUnknownSnapshotFormat is returned by Encode for formats other than
// yaml and json.
var ErrUnknownSnapshotFormat = errors.New("unknown snapshot format")

// Snapshot is the full observable state of a session.
type Snapshot struct {
	RawText    string                `yaml:"rawText" json:"rawText"`
	Valid      bool                  `yaml:"valid" json:"valid"`
	Parsed     string                `yaml:"parsed" json:"parsed"`
	TargetDate string                `yaml:"targetDate" json:"targetDate"`
	Options    options.FormatOptions `yaml:"options" json:"options"`
	// Resolved lists the formatter options in effect after locale
	// matching and defaults.
	Resolved map[string]string `yaml:"resolved,omitempty" json:"resolved,omitempty"`
	Preview  string            `yaml:"preview,omitempty" json:"preview,omitempty"`
	Results  []results.Entry   `yaml:"results" json:"results"`
}

// Snapshot captures the current state. The result slice is a copy.
func (s *Session) Snapshot() Snapshot {
	entries := s.list.Entries()
	if entries == nil {
		entries = []results.Entry{}
	}
	return Snapshot{
		RawText:    s.input.RawText(),
		Valid:      s.input.IsValid(),
		Parsed:     s.input.Parsed().String(),
		TargetDate: s.TargetDate(),
		Options:    s.opts,
		Resolved:   s.resolvedOptions(),
		Preview:    s.Preview(),
		Results:    entries,
	}
}

func (s *Session) resolvedOptions() map[string]string {
	f, err := formatter.NewDateTimeFormat(string(s.opts.Locale), s.formatConfig(s.opts.ToFormatterConfig().Strings()))
	if err != nil {
		return nil
	}
	return f.ResolvedOptions()
}

// Encode writes the snapshot to w as "yaml" or "json".
func (snap Snapshot) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode snapshot as YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode snapshot as JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q (allowed: yaml, json)", ErrUnknownSnapshotFormat, format)
	}
}
