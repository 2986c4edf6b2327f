package markdown

import (
	"strings"
	"unicode"
)

const fenceMarker = "```"

// Parse converts report text into a Document. It accepts any input: partial
// constructs degrade to less specific blocks and an unterminated fence runs to
// the end of the text.
func Parse(text string) Document {
	return ParseLines(SplitLines(text))
}

// ParseLines parses text that has already been split into physical lines.
func ParseLines(lines []string) Document {
	state := parseState{}
	for _, line := range lines {
		state = state.feed(line)
	}
	return state.finish()
}

// SplitLines splits on '\n'. A trailing newline terminates the last line rather
// than starting an empty one, and a '\r' left over from CRLF input is dropped.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// parseState is the fold accumulator. code is non-nil exactly while the
// parser is inside a fence.
type parseState struct {
	blocks []Block
	code   *CodeBlock
}

func (s parseState) inFence() bool { return s.code != nil }

func (s parseState) feed(line string) parseState {
	if info, ok := fenceInfo(line); ok {
		if s.inFence() {
			s.blocks = append(s.blocks, *s.code)
			s.code = nil
		} else {
			s.code = &CodeBlock{Info: info}
		}
		return s
	}
	if s.inFence() {
		code := *s.code
		code.Lines = append(code.Lines, line)
		s.code = &code
		return s
	}
	s.blocks = append(s.blocks, classify(line))
	return s
}

func (s parseState) finish() Document {
	if s.inFence() {
		s.blocks = append(s.blocks, *s.code)
	}
	return Document{Blocks: s.blocks}
}

// classify maps a line outside any fence to its block. The checks run in
// fixed precedence order; the first match wins.
func classify(line string) Block {
	if level, text, ok := parseHeading(line); ok {
		return Heading{Level: level, Content: Tokenize(text)}
	}
	if img, ok := findImage(line); ok {
		return img
	}
	if isTableLine(line) {
		return TableLine{Raw: line}
	}
	if isRule(line) {
		return Rule{}
	}
	if text, ok := listItemText(line); ok {
		return ListItem{Content: Tokenize(text)}
	}
	if isBlankLine(line) {
		return Blank{}
	}
	return Paragraph{Content: Tokenize(line)}
}

func fenceInfo(line string) (string, bool) {
	if !strings.HasPrefix(line, fenceMarker) {
		return "", false
	}
	return strings.TrimSpace(line[len(fenceMarker):]), true
}

const maxHeadingLevel = 4

func parseHeading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
		if level > maxHeadingLevel {
			return 0, "", false
		}
	}
	if level == 0 || level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	return level, line[level+1:], true
}

// findImage locates the first `![caption](url)` on the line. The caption may
// not contain ']' and the url must be a non-empty run without ')'. Each byte is
// visited a bounded number of times, which matters for lines carrying large
// base64 payloads.
func findImage(line string) (Image, bool) {
	from := 0
	for {
		open := strings.Index(line[from:], "![")
		if open < 0 {
			return Image{}, false
		}
		captionStart := from + open + 2
		closeBracket := strings.IndexByte(line[captionStart:], ']')
		if closeBracket < 0 {
			return Image{}, false
		}
		captionEnd := captionStart + closeBracket
		urlStart := captionEnd + 2
		if captionEnd+1 < len(line) && line[captionEnd+1] == '(' {
			closeParen := strings.IndexByte(line[urlStart:], ')')
			if closeParen < 0 {
				return Image{}, false
			}
			if closeParen > 0 {
				return Image{
					Caption: line[captionStart:captionEnd],
					URL:     line[urlStart : urlStart+closeParen],
				}, true
			}
		}
		// Every opener before this bracket would close at the same place.
		from = captionEnd + 1
	}
}

func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), "|")
}

func isRule(line string) bool {
	switch strings.TrimSpace(line) {
	case "---", "***":
		return true
	default:
		return false
	}
}

func listItemText(line string) (string, bool) {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return line[2:], true
	}
	return "", false
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
