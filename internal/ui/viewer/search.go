package viewer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kk-code-lab/reportview/internal/preview"
	"github.com/mattn/go-runewidth"
)

// textSpan is a half-open range of display columns.
type textSpan struct {
	start int
	end   int
}

// smartCaseInsensitive reports whether query should ignore case: it does
// unless it contains an upper-case letter.
func smartCaseInsensitive(query string) bool {
	for _, r := range query {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// matchSpans returns the column ranges where query occurs in text.
func matchSpans(text, query string) []textSpan {
	if query == "" || text == "" {
		return nil
	}
	if smartCaseInsensitive(query) {
		return matchFolded(text, strings.ToLower(query))
	}

	var spans []textSpan
	from := 0
	for {
		idx := strings.Index(text[from:], query)
		if idx == -1 {
			return spans
		}
		start := from + idx
		end := start + len(query)
		startCol := runewidth.StringWidth(text[:start])
		spans = append(spans, textSpan{start: startCol, end: startCol + runewidth.StringWidth(query)})
		from = end
	}
}

func matchFolded(text, needleLower string) []textSpan {
	var spans []textSpan
	needleRunes := utf8.RuneCountInString(needleLower)
	for i := 0; i < len(text); {
		if matchesAtFolded(text, i, needleLower) {
			end := advanceBytesForRunes(text, i, needleRunes)
			startCol := runewidth.StringWidth(text[:i])
			spans = append(spans, textSpan{start: startCol, end: startCol + runewidth.StringWidth(text[i:end])})
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += max(size, 1)
	}
	return spans
}

func matchesAtFolded(haystack string, start int, needleLower string) bool {
	i := start
	for _, nr := range needleLower {
		if i >= len(haystack) {
			return false
		}
		hr, size := utf8.DecodeRuneInString(haystack[i:])
		if unicode.ToLower(hr) != nr {
			return false
		}
		i += size
	}
	return true
}

func advanceBytesForRunes(s string, start, runeCount int) int {
	i := start
	for n := 0; i < len(s) && n < runeCount; n++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += max(size, 1)
	}
	return i
}

// searchState tracks the active query and the rows it matched.
type searchState struct {
	query  string
	hits   []int
	cursor int
}

func (s *searchState) active() bool { return s.query != "" }

func (s *searchState) collect(rows []preview.Line) {
	s.hits = s.hits[:0]
	if s.query == "" {
		return
	}
	for i, row := range rows {
		if len(matchSpans(row.Text(), s.query)) > 0 {
			s.hits = append(s.hits, i)
		}
	}
	if s.cursor >= len(s.hits) {
		s.cursor = 0
	}
}

// first selects the first hit at or below row, wrapping to the top.
func (s *searchState) first(row int) (int, bool) {
	if len(s.hits) == 0 {
		return 0, false
	}
	s.cursor = 0
	for i, hit := range s.hits {
		if hit >= row {
			s.cursor = i
			break
		}
	}
	return s.hits[s.cursor], true
}

// step moves the cursor by direction, wrapping at both ends.
func (s *searchState) step(direction int) (int, bool) {
	n := len(s.hits)
	if n == 0 {
		return 0, false
	}
	s.cursor = ((s.cursor+direction)%n + n) % n
	return s.hits[s.cursor], true
}
