package viewer

import (
	"strconv"

	"github.com/kk-code-lab/reportview/internal/markdown"
	"github.com/kk-code-lab/reportview/internal/preview"
	"github.com/kk-code-lab/reportview/internal/report"
	textutil "github.com/kk-code-lab/reportview/internal/textutil"
)

// Mode selects between the rendered document and the raw markdown.
type Mode int

const (
	ModePreview Mode = iota
	ModeSource
)

func (m Mode) String() string {
	if m == ModeSource {
		return "source"
	}
	return "preview"
}

// State is everything the viewer draws. It is owned by the event loop.
type State struct {
	Report  *report.Report
	Doc     markdown.Document
	Page    preview.Page
	Mode    Mode
	Wrap    bool
	Scroll  int
	Message string

	// Prompting is set while a search query is being typed into Prompt.
	Prompting bool
	Prompt    []rune
	search    searchState

	opts   preview.Options
	source []preview.Line

	layoutWidth int
	layoutValid bool
	rows        []preview.Line
	starts      []int
}

func NewState(rep *report.Report, opts preview.Options) *State {
	s := &State{Wrap: true, opts: opts}
	s.SetReport(rep)
	return s
}

// SetReport replaces the shown report, parsing it again. The scroll position
// is kept and clamped on the next layout.
func (s *State) SetReport(rep *report.Report) {
	s.Report = rep
	s.Doc = rep.Document()
	s.Page = preview.Render(s.Doc, s.opts)

	raw := rep.Lines()
	s.source = make([]preview.Line, len(raw))
	for i, line := range raw {
		s.source[i] = preview.Line{{Text: textutil.ExpandTabs(line, s.opts.TabWidth), Style: preview.StylePlain}}
	}
	s.invalidate()
}

func (s *State) invalidate() { s.layoutValid = false }

func (s *State) lines() []preview.Line {
	if s.Mode == ModeSource {
		return s.source
	}
	return s.Page.Lines
}

// Rows returns the lines to draw at the given width, wrapped if enabled.
func (s *State) Rows(width int) []preview.Line {
	if s.layoutValid && s.layoutWidth == width {
		return s.rows
	}
	lines := s.lines()
	if s.Wrap {
		s.rows, s.starts = preview.WrapAll(lines, width)
	} else {
		s.rows = lines
		s.starts = make([]int, len(lines))
		for i := range s.starts {
			s.starts[i] = i
		}
	}
	s.layoutWidth = width
	s.layoutValid = true
	s.search.collect(s.rows)
	return s.rows
}

// ClampScroll keeps Scroll within the rows available for a viewport height.
func (s *State) ClampScroll(width, height int) {
	total := len(s.Rows(width))
	maxOffset := total - max(height, 1)
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.Scroll > maxOffset {
		s.Scroll = maxOffset
	}
	if s.Scroll < 0 {
		s.Scroll = 0
	}
}

// headingRows maps heading anchors onto wrapped rows. Source mode has no
// anchors.
func (s *State) headingRows(width int) []int {
	if s.Mode != ModePreview {
		return nil
	}
	s.Rows(width)
	rows := make([]int, 0, len(s.Page.Headings))
	for _, anchor := range s.Page.Headings {
		if anchor.Line < len(s.starts) {
			rows = append(rows, s.starts[anchor.Line])
		}
	}
	return rows
}

// Apply reduces a view action into the state. It reports whether a redraw is
// needed.
func (s *State) Apply(action Action, width, height int) bool {
	page := max(height-1, 1)
	switch a := action.(type) {
	case ScrollAction:
		s.Scroll += a.Delta
	case PageAction:
		s.Scroll += a.Direction * page
	case JumpAction:
		if a.End {
			s.Scroll = len(s.Rows(width))
		} else {
			s.Scroll = 0
		}
	case HeadingAction:
		s.jumpHeading(a.Direction, width)
	case SetModeAction:
		if s.Mode == a.Mode {
			return false
		}
		s.Mode = a.Mode
		s.Scroll = 0
		s.invalidate()
	case ToggleModeAction:
		if s.Mode == ModePreview {
			s.Mode = ModeSource
		} else {
			s.Mode = ModePreview
		}
		s.Scroll = 0
		s.invalidate()
	case ToggleWrapAction:
		s.Wrap = !s.Wrap
		s.invalidate()
	case ResizeAction:
		s.invalidate()
	case StartSearchAction:
		s.Prompting = true
		s.Prompt = s.Prompt[:0]
	case PromptInputAction:
		s.Prompt = append(s.Prompt, a.Rune)
	case PromptBackspaceAction:
		if len(s.Prompt) > 0 {
			s.Prompt = s.Prompt[:len(s.Prompt)-1]
		}
	case PromptCancelAction:
		s.Prompting = false
		s.Prompt = s.Prompt[:0]
	case PromptSubmitAction:
		s.Prompting = false
		s.runSearch(string(s.Prompt), width)
	case SearchNextAction:
		if !s.search.active() {
			return false
		}
		s.Rows(width)
		if row, ok := s.search.step(a.Direction); ok {
			s.Scroll = row
		}
	default:
		return false
	}
	s.ClampScroll(width, height)
	return true
}

func (s *State) jumpHeading(direction, width int) {
	rows := s.headingRows(width)
	if direction > 0 {
		for _, row := range rows {
			if row > s.Scroll {
				s.Scroll = row
				return
			}
		}
		return
	}
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i] < s.Scroll {
			s.Scroll = rows[i]
			return
		}
	}
}

func (s *State) runSearch(query string, width int) {
	s.search.query = query
	s.search.cursor = 0
	if query == "" {
		s.search.hits = s.search.hits[:0]
		return
	}
	s.search.collect(s.Rows(width))
	row, ok := s.search.first(s.Scroll)
	if !ok {
		s.Message = "no match: " + query
		return
	}
	s.Scroll = row
	s.Message = ""
}

// SearchStatus describes the active search for the status line, or "" when no
// search is active.
func (s *State) SearchStatus(width int) string {
	if !s.search.active() {
		return ""
	}
	s.Rows(width)
	if len(s.search.hits) == 0 {
		return "/" + s.search.query + " 0/0"
	}
	return "/" + s.search.query + " " + strconv.Itoa(s.search.cursor+1) + "/" + strconv.Itoa(len(s.search.hits))
}
