package preview

import (
	"strings"

	textutil "github.com/kk-code-lab/reportview/internal/textutil"
)

// Wrap breaks line into rows of at most maxWidth columns. Rules and tables are
// returned unchanged; the viewer clips them instead.
func Wrap(line Line, maxWidth int) []Line {
	if maxWidth <= 0 || line.rigid() || line.Width() <= maxWidth {
		return []Line{line}
	}

	var rows []Line
	var current Line
	currentWidth := 0

	flush := func() {
		rows = append(rows, current)
		current = nil
		currentWidth = 0
	}

	for _, seg := range line {
		var buf strings.Builder
		for _, r := range seg.Text {
			w := textutil.RuneWidth(r)
			if currentWidth > 0 && currentWidth+w > maxWidth {
				if buf.Len() > 0 {
					current = append(current, Segment{Text: buf.String(), Style: seg.Style})
					buf.Reset()
				}
				flush()
			}
			buf.WriteRune(r)
			currentWidth += w
		}
		if buf.Len() > 0 {
			current = append(current, Segment{Text: buf.String(), Style: seg.Style})
		}
	}
	if len(current) > 0 || len(rows) == 0 {
		flush()
	}
	return rows
}

// WrapAll wraps every line and reports, for each input line, the index of its
// first output row.
func WrapAll(lines []Line, maxWidth int) ([]Line, []int) {
	out := make([]Line, 0, len(lines))
	starts := make([]int, len(lines))
	for i, line := range lines {
		starts[i] = len(out)
		out = append(out, Wrap(line, maxWidth)...)
	}
	return out, starts
}
