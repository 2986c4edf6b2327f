package preview

import textutil "github.com/kk-code-lab/reportview/internal/textutil"

// Style describes the semantic role of a segment; the viewer maps it to
// terminal attributes.
type Style int

const (
	StylePlain Style = iota
	StyleStrong
	StyleHeading
	StyleCode
	StyleCodeBlock
	StyleImage
	StyleLink
	StyleMuted
	StyleRule
	StyleTable
)

// Segment is a run of text drawn with one style.
type Segment struct {
	Text  string
	Style Style
}

// Line is one rendered row before wrapping.
type Line []Segment

// Text joins the segment text of the line.
func (l Line) Text() string {
	switch len(l) {
	case 0:
		return ""
	case 1:
		return l[0].Text
	}
	total := 0
	for _, seg := range l {
		total += len(seg.Text)
	}
	buf := make([]byte, 0, total)
	for _, seg := range l {
		buf = append(buf, seg.Text...)
	}
	return string(buf)
}

// Width is the display width of the line in terminal columns.
func (l Line) Width() int {
	width := 0
	for _, seg := range l {
		width += textutil.DisplayWidth(seg.Text)
	}
	return width
}

// rigid lines are drawn clipped instead of wrapped.
func (l Line) rigid() bool {
	if len(l) == 0 {
		return false
	}
	switch l[0].Style {
	case StyleRule, StyleTable:
		return true
	default:
		return false
	}
}
