package viewer

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/reportview/internal/preview"
	textutil "github.com/kk-code-lab/reportview/internal/textutil"
	"github.com/mattn/go-runewidth"
)

// contentArea returns the size of the scrollable region between the header
// and the status line.
func contentArea(w, h int) (int, int) {
	return max(w, 1), max(h-2, 1)
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w <= 0 || h <= 0 {
		v.screen.Show()
		return
	}
	cw, ch := contentArea(w, h)
	v.state.ClampScroll(cw, ch)

	v.drawHeader(w)
	v.drawContent(cw, ch)
	if h > 1 {
		v.drawStatusLine(w, h)
	}
	v.screen.Show()
}

func (v *Viewer) drawHeader(w int) {
	style := tcell.StyleDefault.Background(v.theme.HeaderBg).Foreground(v.theme.HeaderFg)
	mode := " [" + v.state.Mode.String() + "] "
	title := ""
	if v.state.Report != nil {
		title = v.state.Report.Title
	}
	title = textutil.TruncateToWidth(" "+textutil.SanitizeTerminalText(title), w-runewidth.StringWidth(mode))

	x := v.drawText(0, 0, w, title, style.Bold(true))
	for ; x < w-runewidth.StringWidth(mode); x++ {
		v.screen.SetContent(x, 0, ' ', nil, style)
	}
	x = v.drawText(x, 0, w-x, mode, style)
	for ; x < w; x++ {
		v.screen.SetContent(x, 0, ' ', nil, style)
	}
}

func (v *Viewer) drawContent(w, h int) {
	rows := v.state.Rows(w)
	for y := 0; y < h; y++ {
		idx := v.state.Scroll + y
		if idx >= len(rows) {
			break
		}
		v.drawLine(1+y, w, rows[idx])
	}
}

func (v *Viewer) drawLine(y, w int, line preview.Line) {
	x := 0
	var fill tcell.Style
	filled := false
	for _, seg := range line {
		if x >= w {
			break
		}
		style := v.theme.styleFor(seg.Style)
		if seg.Style == preview.StyleCodeBlock {
			fill, filled = style, true
		}
		x = v.drawText(x, y, w-x, seg.Text, style)
	}
	if filled {
		for ; x < w; x++ {
			v.screen.SetContent(x, y, ' ', nil, fill)
		}
	}
	if v.state.search.active() {
		v.highlight(y, w, matchSpans(displayText(line.Text()), v.state.search.query))
	}
}

// highlight reverses the cells covered by spans on row y.
func (v *Viewer) highlight(y, w int, spans []textSpan) {
	for _, span := range spans {
		for x := span.start; x < span.end && x < w; x++ {
			mainc, combc, style, _ := v.screen.GetContent(x, y)
			v.screen.SetContent(x, y, mainc, combc, style.Reverse(true))
		}
	}
}

// displayText is text as it appears on screen, so columns computed from it
// line up with the drawn cells.
func displayText(text string) string {
	return strings.ReplaceAll(textutil.SanitizeTerminalText(text), "\t", " ")
}

// drawText writes text starting at column startX and returns the column after
// the last cell written. Zero-width runes combine with the preceding cell.
func (v *Viewer) drawText(startX, y, maxWidth int, text string, style tcell.Style) int {
	text = displayText(text)
	x := startX
	runes := []rune(text)
	for i := 0; i < len(runes); {
		mainc := runes[i]
		i++
		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}
		width := textutil.RuneWidth(mainc)
		if x-startX+width > maxWidth {
			break
		}
		v.screen.SetContent(x, y, mainc, combc, style)
		x += width
	}
	return x
}

func (v *Viewer) statusText(w, h int) string {
	if v.state.Prompting {
		return "/" + string(v.state.Prompt)
	}
	cw, ch := contentArea(w, h)
	total := len(v.state.Rows(cw))
	first, last := 0, 0
	if total > 0 {
		first = v.state.Scroll + 1
		last = min(v.state.Scroll+ch, total)
	}
	wrap := "off"
	if v.state.Wrap {
		wrap = "on"
	}
	status := fmt.Sprintf(" %d-%d/%d  %s  wrap:%s", first, last, total, v.state.Mode, wrap)
	if search := v.state.SearchStatus(cw); search != "" {
		status += "  " + search
	}
	if v.state.Message != "" {
		status += "  " + v.state.Message
	}
	return status
}

func (v *Viewer) drawStatusLine(w, h int) {
	style := tcell.StyleDefault.Background(v.theme.StatusBg).Foreground(v.theme.StatusFg)
	text := textutil.TruncateToWidth(v.statusText(w, h), w)
	x := v.drawText(0, h-1, w, text, style)
	for ; x < w; x++ {
		v.screen.SetContent(x, h-1, ' ', nil, style)
	}
}
