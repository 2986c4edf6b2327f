package viewer

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/reportview/internal/preview"
)

// ColorTheme defines viewer colors.
type ColorTheme struct {
	Foreground  tcell.Color
	Background  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	StatusBg    tcell.Color
	StatusFg    tcell.Color
	HeadingFg   tcell.Color
	CodeFg      tcell.Color
	CodeBlockBg tcell.Color
	CodeBlockFg tcell.Color
	ImageFg     tcell.Color
	TableFg     tcell.Color
}

// DefaultTheme returns the default color scheme.
func DefaultTheme() ColorTheme {
	return ColorTheme{
		Foreground:  tcell.ColorDefault,
		Background:  tcell.ColorDefault,
		HeaderBg:    tcell.Color33,
		HeaderFg:    tcell.ColorWhite,
		StatusBg:    tcell.ColorDefault,
		StatusFg:    tcell.ColorDefault,
		HeadingFg:   tcell.Color39,
		CodeFg:      tcell.Color44,  // brighter cyan text for code
		CodeBlockBg: tcell.Color234, // darker grey background for fenced code
		CodeBlockFg: tcell.Color252, // light grey text for fenced code
		ImageFg:     tcell.Color171,
		TableFg:     tcell.Color244,
	}
}

func (t ColorTheme) base() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Foreground).Background(t.Background)
}

func (t ColorTheme) styleFor(kind preview.Style) tcell.Style {
	base := t.base()
	switch kind {
	case preview.StyleStrong:
		return base.Bold(true)
	case preview.StyleHeading:
		return base.Bold(true).Foreground(t.HeadingFg)
	case preview.StyleCode:
		return base.Foreground(t.CodeFg)
	case preview.StyleCodeBlock:
		return base.Foreground(t.CodeBlockFg).Background(t.CodeBlockBg)
	case preview.StyleImage:
		return base.Foreground(t.ImageFg).Bold(true)
	case preview.StyleLink:
		return base.Underline(true)
	case preview.StyleMuted, preview.StyleRule:
		return base.Dim(true)
	case preview.StyleTable:
		return base.Foreground(t.TableFg)
	default:
		return base
	}
}
