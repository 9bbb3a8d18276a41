// Package results keeps the ordered list of formatted strings collected for
// side-by-side comparison, each with its own display alignment.
package results

import (
	"errors"
	"fmt"
	"strings"
)

// Alignment controls where an entry sits inside its display column.
type Alignment string

const (
	AlignStart  Alignment = "start"
	AlignCenter Alignment = "center"
	AlignEnd    Alignment = "end"
)

// Alignments lists the values in display order.
var Alignments = []Alignment{AlignStart, AlignCenter, AlignEnd}

var ErrInvalidAlignment = errors.New("invalid alignment")

// ParseAlignment accepts the three alignment names case-insensitively.
func ParseAlignment(s string) (Alignment, error) {
	a := Alignment(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Alignments {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q (allowed: start, center, end)", ErrInvalidAlignment, s)
}

// Entry is one formatted result. Text never changes after Append.
type Entry struct {
	Text      string    `yaml:"text" json:"text"`
	Alignment Alignment `yaml:"alignment" json:"alignment"`
}

// List is an ordered collection of entries. The zero value is ready to use.
type List struct {
	entries []Entry
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Append adds text at the end with start alignment. Empty text is ignored
// and reported as false.
func (l *List) Append(text string) bool {
	if text == "" {
		return false
	}
	l.entries = append(l.entries, Entry{Text: text, Alignment: AlignStart})
	return true
}

// SetAlignment changes the alignment of the entry at index. Out-of-range
// indexes are ignored so that a stale view cannot fail; the return value
// reports whether anything changed.
func (l *List) SetAlignment(index int, a Alignment) bool {
	if index < 0 || index >= len(l.entries) {
		return false
	}
	l.entries[index].Alignment = a
	return true
}

// Remove deletes the entry at index and shifts later entries left.
// Out-of-range indexes are ignored.
func (l *List) Remove(index int) bool {
	if index < 0 || index >= len(l.entries) {
		return false
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	return true
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.entries)
}

// At returns the entry at index.
func (l *List) At(index int) (Entry, bool) {
	if index < 0 || index >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[index], true
}

// Entries returns a copy of the entries in order.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
