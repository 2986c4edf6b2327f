package markdown

import "strings"

const boldMarker = "**"

// Tokenize splits one line into plain and bold spans. Only `**text**` pairs
// with non-empty, asterisk-free text are recognized. A line with an odd number
// of markers is returned as a single plain span.
func Tokenize(line string) []Span {
	if line == "" {
		return nil
	}
	if strings.Count(line, boldMarker)%2 != 0 {
		return []Span{Plain(line)}
	}

	var spans []Span
	plainStart := 0
	i := 0
	for i < len(line)-1 {
		if line[i] != '*' || line[i+1] != '*' {
			i++
			continue
		}
		end, ok := matchBold(line, i)
		if !ok {
			i++
			continue
		}
		if plainStart < i {
			spans = append(spans, Plain(line[plainStart:i]))
		}
		spans = append(spans, Bold(line[i+2:end]))
		i = end + 2
		plainStart = i
	}
	if plainStart < len(line) {
		spans = append(spans, Plain(line[plainStart:]))
	}
	return spans
}

// matchBold checks for a closing marker after the opener at start. The inner
// text runs to the next asterisk, so the scan never looks past it.
func matchBold(line string, start int) (int, bool) {
	inner := start + 2
	next := strings.IndexByte(line[inner:], '*')
	if next <= 0 {
		return 0, false
	}
	end := inner + next
	if end+1 >= len(line) || line[end+1] != '*' {
		return 0, false
	}
	return end, true
}
