package textutil

import "strings"

// Bidi overrides and zero-width runes are shown as labels instead of being
// passed to the terminal, so report text cannot reorder or hide what is drawn.
var formattingLabels = map[rune]string{
	0x00AD: "⟪SHY⟫",
	0x061C: "⟪ALM⟫",
	0x180E: "⟪MVS⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText makes text safe to draw: control characters become '?',
// line breaks become spaces, and formatting runes become visible labels. Tabs
// are kept. Text that needs no change is returned as is.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, needsSanitizing) < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if label, ok := formattingLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		switch {
		case r == '\t':
			b.WriteRune(r)
		case r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasFormattingRunes reports whether text carries bidi or zero-width runes.
func HasFormattingRunes(text string) bool {
	return strings.IndexFunc(text, isFormattingRune) >= 0
}

func needsSanitizing(r rune) bool {
	if r == '\t' {
		return false
	}
	return r < 0x20 || r == 0x7f || isFormattingRune(r)
}

func isFormattingRune(r rune) bool {
	_, ok := formattingLabels[r]
	return ok
}
