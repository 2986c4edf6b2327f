package markdown

// Document is the ordered block sequence of one report. It is built once by
// Parse and never mutated afterwards.
type Document struct {
	Blocks []Block
}

// Len reports the number of blocks.
func (d Document) Len() int { return len(d.Blocks) }

// Block is one structural unit of a document. The set of implementations is
// closed: only the types in this file satisfy it.
type Block interface {
	BlockType() BlockType
	sealed()
}

type BlockType int

const (
	BlockParagraph BlockType = iota
	BlockHeading
	BlockListItem
	BlockCode
	BlockImage
	BlockTableLine
	BlockRule
	BlockBlank
)

var blockTypeNames = [...]string{
	BlockParagraph: "paragraph",
	BlockHeading:   "heading",
	BlockListItem:  "list-item",
	BlockCode:      "code",
	BlockImage:     "image",
	BlockTableLine: "table-line",
	BlockRule:      "rule",
	BlockBlank:     "blank",
}

func (t BlockType) String() string {
	if t < 0 || int(t) >= len(blockTypeNames) {
		return "unknown"
	}
	return blockTypeNames[t]
}

// AllBlockTypes lists every block variant, in declaration order.
func AllBlockTypes() []BlockType {
	types := make([]BlockType, len(blockTypeNames))
	for i := range types {
		types[i] = BlockType(i)
	}
	return types
}

// SpanKind tells plain text apart from bold emphasis.
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanBold
)

func (k SpanKind) String() string {
	if k == SpanBold {
		return "bold"
	}
	return "plain"
}

// Span is a fragment of a single physical line.
type Span struct {
	Kind SpanKind
	Text string
}

func Plain(text string) Span { return Span{Kind: SpanPlain, Text: text} }

func Bold(text string) Span { return Span{Kind: SpanBold, Text: text} }

// Heading is a `#`..`####` line. Level is always within 1..4.
type Heading struct {
	Level   int
	Content []Span
}

func (Heading) BlockType() BlockType { return BlockHeading }
func (Heading) sealed()              {}

type Paragraph struct {
	Content []Span
}

func (Paragraph) BlockType() BlockType { return BlockParagraph }
func (Paragraph) sealed()              {}

// ListItem is a single `- ` or `* ` line. Items are never nested.
type ListItem struct {
	Content []Span
}

func (ListItem) BlockType() BlockType { return BlockListItem }
func (ListItem) sealed()              {}

// CodeBlock holds the lines between two fence markers. Info is whatever
// followed the opening backticks; it does not affect parsing.
type CodeBlock struct {
	Info  string
	Lines []string
}

func (CodeBlock) BlockType() BlockType { return BlockCode }
func (CodeBlock) sealed()              {}

// Image is an `![caption](url)` reference. URL is frequently a data URI with
// the whole encoded image inline.
type Image struct {
	URL     string
	Caption string
}

func (Image) BlockType() BlockType { return BlockImage }
func (Image) sealed()              {}

// TableLine is a `|`-prefixed line kept verbatim.
type TableLine struct {
	Raw string
}

func (TableLine) BlockType() BlockType { return BlockTableLine }
func (TableLine) sealed()              {}

type Rule struct{}

func (Rule) BlockType() BlockType { return BlockRule }
func (Rule) sealed()              {}

// Blank marks an empty or whitespace-only line.
type Blank struct{}

func (Blank) BlockType() BlockType { return BlockBlank }
func (Blank) sealed()              {}

// SpanText concatenates span text without styling.
func SpanText(spans []Span) string {
	switch len(spans) {
	case 0:
		return ""
	case 1:
		return spans[0].Text
	}
	total := 0
	for _, s := range spans {
		total += len(s.Text)
	}
	buf := make([]byte, 0, total)
	for _, s := range spans {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
