package preview

import (
	"strings"

	"github.com/kk-code-lab/reportview/internal/markdown"
	"github.com/rivo/uniseg"
)

type tableAlignment int

const (
	alignDefault tableAlignment = iota
	alignLeft
	alignCenter
	alignRight
)

type tableBorders struct {
	top, mid, bottom [3]string
	vertical         string
	horizontal       string
}

var boxBorders = tableBorders{
	top:        [3]string{"┌", "┬", "┐"},
	mid:        [3]string{"├", "┼", "┤"},
	bottom:     [3]string{"└", "┴", "┘"},
	vertical:   "│",
	horizontal: "─",
}

// renderTableLines draws a run of consecutive table lines. Runs that are not
// a header row followed by a delimiter row stay verbatim.
func renderTableLines(raw []string, opts Options) []Line {
	if opts.FormatTables {
		if lines, ok := formatTable(raw); ok {
			return lines
		}
	}
	out := make([]Line, len(raw))
	for i, line := range raw {
		out[i] = Line{{Text: line, Style: StyleTable}}
	}
	return out
}

func formatTable(raw []string) ([]Line, bool) {
	if len(raw) < 2 || !isDelimiterRow(raw[1]) {
		return nil, false
	}
	header := splitTableRow(raw[0])
	align := parseAlignment(splitTableRow(raw[1]))
	if len(header) != len(align) {
		return nil, false
	}
	columns := len(header)

	rows := make([][]string, 0, len(raw)-2)
	for _, line := range raw[2:] {
		rows = append(rows, fitColumns(splitTableRow(line), columns))
	}

	headerCells := tokenizeCells(header)
	bodyCells := make([][][]markdown.Span, len(rows))
	for i, row := range rows {
		bodyCells[i] = tokenizeCells(row)
	}

	widths := make([]int, columns)
	measure := func(cells [][]markdown.Span) {
		for col, cell := range cells {
			if w := uniseg.StringWidth(markdown.SpanText(cell)); w > widths[col] {
				widths[col] = w
			}
		}
	}
	measure(headerCells)
	for _, row := range bodyCells {
		measure(row)
	}

	lines := make([]Line, 0, len(rows)+4)
	lines = append(lines, borderLine(boxBorders.top, widths))
	lines = append(lines, rowLine(headerCells, widths, align, StyleStrong))
	lines = append(lines, borderLine(boxBorders.mid, widths))
	for _, row := range bodyCells {
		lines = append(lines, rowLine(row, widths, align, StylePlain))
	}
	lines = append(lines, borderLine(boxBorders.bottom, widths))
	return lines, true
}

func borderLine(corners [3]string, widths []int) Line {
	var b strings.Builder
	b.WriteString(corners[0])
	for i, w := range widths {
		if i > 0 {
			b.WriteString(corners[1])
		}
		b.WriteString(strings.Repeat(boxBorders.horizontal, w+2))
	}
	b.WriteString(corners[2])
	return Line{{Text: b.String(), Style: StyleTable}}
}

func rowLine(cells [][]markdown.Span, widths []int, align []tableAlignment, base Style) Line {
	line := Line{{Text: boxBorders.vertical, Style: StyleTable}}
	for col, cell := range cells {
		gap := widths[col] - uniseg.StringWidth(markdown.SpanText(cell))
		left, right := 0, gap
		switch align[col] {
		case alignRight:
			left, right = gap, 0
		case alignCenter:
			left = gap / 2
			right = gap - left
		}
		line = append(line, Segment{Text: " " + strings.Repeat(" ", left), Style: StylePlain})
		line = append(line, renderSpans(cell, base)...)
		line = append(line, Segment{Text: strings.Repeat(" ", right) + " ", Style: StylePlain})
		line = append(line, Segment{Text: boxBorders.vertical, Style: StyleTable})
	}
	return line
}

func tokenizeCells(cells []string) [][]markdown.Span {
	out := make([][]markdown.Span, len(cells))
	for i, cell := range cells {
		out[i] = markdown.Tokenize(cell)
	}
	return out
}

func fitColumns(cells []string, columns int) []string {
	if len(cells) >= columns {
		return cells[:columns]
	}
	padded := make([]string, columns)
	copy(padded, cells)
	return padded
}

func isDelimiterRow(line string) bool {
	parts := splitTableRow(line)
	if len(parts) == 0 {
		return false
	}
	for _, part := range parts {
		if part == "" || strings.Trim(part, "-:") != "" || !strings.Contains(part, "-") {
			return false
		}
	}
	return true
}

func parseAlignment(parts []string) []tableAlignment {
	align := make([]tableAlignment, len(parts))
	for i, part := range parts {
		left := strings.HasPrefix(part, ":")
		right := strings.HasSuffix(part, ":")
		switch {
		case left && right:
			align[i] = alignCenter
		case right:
			align[i] = alignRight
		case left:
			align[i] = alignLeft
		}
	}
	return align
}

// splitTableRow splits on unescaped pipes, trimming the outer pipes and the
// whitespace around every cell. A backslash-escaped pipe stays in the cell.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}

	var cells []string
	var cell strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) && line[i+1] == '|' {
			cell.WriteByte('|')
			i++
			continue
		}
		if c == '|' {
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
			continue
		}
		cell.WriteByte(c)
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return cells
}
