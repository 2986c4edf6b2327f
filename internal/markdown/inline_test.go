package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Span
	}{
		{"empty", "", nil},
		{"plain only", "just text", []Span{Plain("just text")}},
		{"leading bold", "**bold** and plain", []Span{Bold("bold"), Plain(" and plain")}},
		{"trailing bold", "value is **42**", []Span{Plain("value is "), Bold("42")}},
		{"whole line bold", "**all**", []Span{Bold("all")}},
		{"consecutive pairs keep separator", "**a** **b**", []Span{Bold("a"), Plain(" "), Bold("b")}},
		{"adjacent pairs", "**a****b**", []Span{Bold("a"), Bold("b")}},
		{"unterminated marker", "**open and never closed", []Span{Plain("**open and never closed")}},
		{"odd marker count", "**a** and **b", []Span{Plain("**a** and **b")}},
		{"single asterisks untouched", "*not bold*", []Span{Plain("*not bold*")}},
		{"empty pair is not bold", "****", []Span{Plain("****")}},
		{"inner asterisk blocks match", "**a*b**", []Span{Plain("**a*b**")}},
		{"extra leading asterisk", "***a**", []Span{Plain("*"), Bold("a")}},
		{"bold with spaces", "** spaced **", []Span{Bold(" spaced ")}},
		{"multibyte text", "결과 **유의함** (p<0.05)", []Span{Plain("결과 "), Bold("유의함"), Plain(" (p<0.05)")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.line)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Tokenize(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestTokenizePreservesText(t *testing.T) {
	lines := []string{
		"plain",
		"**a** mid **b** end",
		"**unclosed",
		"***a**",
		"x **y** z **",
	}
	for _, line := range lines {
		spans := Tokenize(line)
		rebuilt := rebuildLine(spans)
		if rebuilt != line {
			t.Fatalf("spans of %q do not rebuild the line, got %q", line, rebuilt)
		}
	}
}

func TestTokenizeLongLineWithManyMarkers(t *testing.T) {
	line := strings.Repeat("** ", 50001)
	spans := Tokenize(line)
	if len(spans) != 1 || spans[0].Kind != SpanPlain {
		t.Fatalf("expected odd marker count to fall back to one plain span, got %d spans", len(spans))
	}

	line = strings.Repeat("**x**", 20000)
	spans = Tokenize(line)
	if len(spans) != 20000 {
		t.Fatalf("expected 20000 bold spans, got %d", len(spans))
	}
}

func rebuildLine(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Kind == SpanBold {
			b.WriteString(boldMarker + s.Text + boldMarker)
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
