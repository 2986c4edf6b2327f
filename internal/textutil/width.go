package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

const ellipsis = "…"

// DisplayWidth reports how many terminal columns text occupies. Grapheme
// clusters such as flags or ZWJ emoji sequences count once.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// RuneWidth is the column width of a single rune, never less than one so that
// cursor arithmetic always advances.
func RuneWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// TruncateToWidth shortens text to at most width columns, marking the cut with
// an ellipsis.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	if width == 1 {
		return ellipsis
	}
	return runewidth.Truncate(text, width, ellipsis)
}

// PadToWidth right-pads text with spaces up to width columns.
func PadToWidth(text string, width int) string {
	gap := width - DisplayWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// ExpandTabs replaces tab characters with spaces, aligning to tabWidth columns.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + tabWidth)
	column := 0
	for _, r := range text {
		if r == '\t' {
			spaces := tabWidth - column%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		b.WriteRune(r)
		column += RuneWidth(r)
	}
	return b.String()
}
