package results

import (
	"strings"

	"golang.org/x/text/width"
)

// DisplayWidth returns the number of terminal cells s occupies. East Asian
// wide and full-width runes take two cells, everything else one.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// Pad lays text out in a column of the given width according to a.
// Text wider than the column is returned unchanged.
func Pad(text string, columns int, a Alignment) string {
	gap := columns - DisplayWidth(text)
	if gap <= 0 {
		return text
	}
	switch a {
	case AlignEnd:
		return strings.Repeat(" ", gap) + text
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	default:
		return text + strings.Repeat(" ", gap)
	}
}
