package viewer

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMatchSpans(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []textSpan
	}{
		{"lower query ignores case", "Error and error", "error", []textSpan{{0, 5}, {10, 15}}},
		{"upper query is exact", "Error and error", "Error", []textSpan{{0, 5}}},
		{"non-ascii fold", "ŁÓDŹ łódź", "łódź", []textSpan{{0, 4}, {5, 9}}},
		{"wide runes count two columns", "日本語 text", "text", []textSpan{{7, 11}}},
		{"no match", "abc", "x", nil},
		{"empty query", "abc", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchSpans(tt.text, tt.query)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(textSpan{})); diff != "" {
				t.Fatalf("matchSpans(%q, %q) mismatch (-want +got):\n%s", tt.text, tt.query, diff)
			}
		})
	}
}

func typeQuery(v *Viewer, query string) {
	ctx := context.Background()
	v.dispatch(ctx, StartSearchAction{})
	for _, r := range query {
		v.dispatch(ctx, PromptInputAction{Rune: r})
	}
	v.dispatch(ctx, PromptSubmitAction{})
}

func TestSearchJumpsAndCycles(t *testing.T) {
	text := strings.Repeat("filler\n", 3) + "needle one\n" + strings.Repeat("filler\n", 10) + "needle two\n" + strings.Repeat("filler\n", 10)
	v, screen := newTestViewer(t, text, 40, 6, Options{})
	defer screen.Fini()

	typeQuery(v, "needle")
	require.False(t, v.State().Prompting)
	require.Equal(t, 3, v.State().Scroll)
	require.Equal(t, "/needle 1/2", v.State().SearchStatus(40))

	v.dispatch(context.Background(), SearchNextAction{Direction: 1})
	require.Equal(t, 14, v.State().Scroll)
	require.Equal(t, "/needle 2/2", v.State().SearchStatus(40))

	v.dispatch(context.Background(), SearchNextAction{Direction: 1})
	require.Equal(t, 3, v.State().Scroll)

	v.dispatch(context.Background(), SearchNextAction{Direction: -1})
	require.Equal(t, 14, v.State().Scroll)
}

func TestSearchWithoutMatch(t *testing.T) {
	v, screen := newTestViewer(t, sampleText, 40, 6, Options{})
	defer screen.Fini()

	typeQuery(v, "absent")
	require.Equal(t, "no match: absent", v.State().Message)
	require.Equal(t, 0, v.State().Scroll)
	require.Equal(t, "/absent 0/0", v.State().SearchStatus(40))
	require.True(t, v.dispatch(context.Background(), SearchNextAction{Direction: 1}))
}

func TestSearchPromptEditing(t *testing.T) {
	v, screen := newTestViewer(t, sampleText, 40, 6, Options{})
	defer screen.Fini()
	ctx := context.Background()

	v.dispatch(ctx, StartSearchAction{})
	v.dispatch(ctx, PromptInputAction{Rune: 'x'})
	v.dispatch(ctx, PromptInputAction{Rune: 'y'})
	v.dispatch(ctx, PromptBackspaceAction{})
	v.draw()
	require.Equal(t, "/x", rowText(screen, 5))

	v.dispatch(ctx, PromptCancelAction{})
	require.False(t, v.State().Prompting)
	require.Empty(t, v.State().SearchStatus(40))
	require.False(t, v.dispatch(ctx, SearchNextAction{Direction: 1}))
}

func TestSearchHighlightsMatches(t *testing.T) {
	v, screen := newTestViewer(t, "find the word here", 40, 5, Options{})
	defer screen.Fini()

	typeQuery(v, "word")
	v.draw()

	_, _, before, _ := screen.GetContent(8, 1)
	_, _, inside, _ := screen.GetContent(9, 1)
	_, _, beforeAttrs := before.Decompose()
	_, _, insideAttrs := inside.Decompose()
	require.Zero(t, beforeAttrs&tcell.AttrReverse)
	require.NotZero(t, insideAttrs&tcell.AttrReverse)
}

func TestPromptKeys(t *testing.T) {
	require.Equal(t, StartSearchAction{}, actionForEvent(tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone), false))
	require.Equal(t, SearchNextAction{Direction: 1}, actionForEvent(tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl), false))
	require.Equal(t, PromptInputAction{Rune: 'q'}, actionForEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true))
	require.Equal(t, PromptSubmitAction{}, actionForEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), true))
	require.Equal(t, PromptCancelAction{}, actionForEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true))
	require.Equal(t, PromptBackspaceAction{}, actionForEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), true))
	require.Equal(t, QuitAction{}, actionForEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true))
}

func TestSearchHighlightFollowsSanitizedText(t *testing.T) {
	v, screen := newTestViewer(t, "a\u200bfoo bar", 40, 5, Options{})
	defer screen.Fini()

	typeQuery(v, "bar")
	v.draw()

	require.Equal(t, "a⟪ZWSP⟫foo bar", rowText(screen, 1))
	var reversed strings.Builder
	for x := 0; x < 40; x++ {
		r, _, style, _ := screen.GetContent(x, 1)
		if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse != 0 {
			reversed.WriteRune(r)
		}
	}
	require.Equal(t, "bar", reversed.String())
}
