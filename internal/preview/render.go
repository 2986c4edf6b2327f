package preview

import (
	"strings"

	"github.com/kk-code-lab/reportview/internal/markdown"
	textutil "github.com/kk-code-lab/reportview/internal/textutil"
)

const (
	codeIndent  = "    "
	bulletGlyph = "•"
	ruleGlyph   = "─"
	ruleWidth   = 40
)

// Options tune how a document is laid out.
type Options struct {
	TabWidth     int
	FormatTables bool
}

func DefaultOptions() Options {
	return Options{TabWidth: textutil.DefaultTabWidth, FormatTables: true}
}

// Anchor points at the rendered line of a heading.
type Anchor struct {
	Level int
	Title string
	Line  int
}

// Page is a rendered document.
type Page struct {
	Lines    []Line
	Headings []Anchor
}

// Render lays out every block of doc as styled lines.
func Render(doc markdown.Document, opts Options) Page {
	var page Page
	blocks := doc.Blocks
	for i := 0; i < len(blocks); i++ {
		if _, ok := blocks[i].(markdown.TableLine); ok {
			j := i
			var raw []string
			for j < len(blocks) {
				tl, ok := blocks[j].(markdown.TableLine)
				if !ok {
					break
				}
				raw = append(raw, tl.Raw)
				j++
			}
			page.Lines = append(page.Lines, renderTableLines(raw, opts)...)
			i = j - 1
			continue
		}
		if h, ok := blocks[i].(markdown.Heading); ok {
			page.Headings = append(page.Headings, Anchor{
				Level: h.Level,
				Title: markdown.SpanText(h.Content),
				Line:  len(page.Lines),
			})
		}
		page.Lines = append(page.Lines, renderBlock(blocks[i], opts)...)
	}
	return page
}

// Outline lists the headings of doc with the line they render at.
func Outline(doc markdown.Document, opts Options) []Anchor {
	return Render(doc, opts).Headings
}

// RenderText renders doc as unstyled strings.
func RenderText(doc markdown.Document, opts Options) []string {
	page := Render(doc, opts)
	out := make([]string, len(page.Lines))
	for i, line := range page.Lines {
		out[i] = line.Text()
	}
	return out
}

func renderBlock(block markdown.Block, opts Options) []Line {
	switch b := block.(type) {
	case markdown.Heading:
		return renderHeading(b)
	case markdown.Paragraph:
		return []Line{renderSpans(b.Content, StylePlain)}
	case markdown.ListItem:
		line := Line{{Text: bulletGlyph + " ", Style: StylePlain}}
		return []Line{append(line, renderSpans(b.Content, StylePlain)...)}
	case markdown.CodeBlock:
		return renderCodeBlock(b, opts)
	case markdown.Image:
		return renderImage(b)
	case markdown.TableLine:
		return renderTableLines([]string{b.Raw}, opts)
	case markdown.Rule:
		return []Line{{{Text: strings.Repeat(ruleGlyph, ruleWidth), Style: StyleRule}}}
	case markdown.Blank:
		return []Line{{}}
	default:
		return nil
	}
}

func renderHeading(h markdown.Heading) []Line {
	prefix := strings.Repeat("#", h.Level) + " "
	line := Line{{Text: prefix, Style: StyleHeading}}
	line = append(line, renderSpans(h.Content, StyleHeading)...)
	if h.Level != 1 {
		return []Line{line}
	}
	underline := strings.Repeat("═", max(line.Width(), 1))
	return []Line{line, {{Text: underline, Style: StyleHeading}}}
}

func renderSpans(spans []markdown.Span, base Style) Line {
	line := make(Line, 0, len(spans))
	for _, span := range spans {
		style := base
		if span.Kind == markdown.SpanBold {
			style = StyleStrong
		}
		line = append(line, Segment{Text: span.Text, Style: style})
	}
	return line
}

func renderCodeBlock(code markdown.CodeBlock, opts Options) []Line {
	lines := make([]Line, 0, len(code.Lines)+1)
	if code.Info != "" {
		lines = append(lines, Line{{Text: codeIndent + "[" + code.Info + "]", Style: StyleCode}})
	}
	for _, raw := range code.Lines {
		text := textutil.ExpandTabs(raw, opts.TabWidth)
		lines = append(lines, Line{{Text: codeIndent + text, Style: StyleCodeBlock}})
	}
	if len(lines) == 0 {
		lines = append(lines, Line{{Text: codeIndent, Style: StyleCodeBlock}})
	}
	return lines
}

func renderImage(img markdown.Image) []Line {
	title := Line{{Text: "[image]", Style: StyleImage}}
	if img.Caption != "" {
		title = append(title, Segment{Text: " " + img.Caption, Style: StylePlain})
	}
	info := InspectImage(img.URL)
	detail := Line{{Text: "  ", Style: StylePlain}}
	if info.Embedded {
		detail = append(detail, Segment{Text: info.Summary(), Style: StyleMuted})
	} else {
		detail = append(detail, Segment{Text: img.URL, Style: StyleLink})
	}
	return []Line{title, detail}
}
