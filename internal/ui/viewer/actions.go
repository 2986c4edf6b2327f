package viewer

import "github.com/gdamore/tcell/v2"

// Action is the result of an input event.
type Action interface{}

type ScrollAction struct{ Delta int }

type PageAction struct{ Direction int }

type JumpAction struct{ End bool }

type HeadingAction struct{ Direction int }

type SetModeAction struct{ Mode Mode }

type ToggleModeAction struct{}

type ToggleWrapAction struct{}

type ResizeAction struct{ Width, Height int }

// Search prompt actions.
type (
	StartSearchAction     struct{}
	PromptInputAction     struct{ Rune rune }
	PromptBackspaceAction struct{}
	PromptCancelAction    struct{}
	PromptSubmitAction    struct{}
	SearchNextAction      struct{ Direction int }
)

// Side-effect actions, handled by the Viewer rather than the State.
type (
	QuitAction   struct{}
	ExportAction struct{}
	CopyAction   struct{}
	ReloadAction struct{}
)

// actionForEvent translates a tcell event into an Action, or nil when the
// event is ignored. While prompting, keys edit the search query.
func actionForEvent(ev tcell.Event, prompting bool) Action {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return ResizeAction{Width: w, Height: h}
	case *tcell.EventKey:
		if prompting {
			return actionForPromptKey(ev)
		}
		return actionForKey(ev)
	default:
		return nil
	}
}

func actionForKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return QuitAction{}
	case tcell.KeyUp:
		return ScrollAction{Delta: -1}
	case tcell.KeyDown, tcell.KeyEnter:
		return ScrollAction{Delta: 1}
	case tcell.KeyPgUp:
		return PageAction{Direction: -1}
	case tcell.KeyPgDn:
		return PageAction{Direction: 1}
	case tcell.KeyHome:
		return JumpAction{}
	case tcell.KeyEnd:
		return JumpAction{End: true}
	case tcell.KeyTab:
		return ToggleModeAction{}
	case tcell.KeyCtrlN:
		return SearchNextAction{Direction: 1}
	case tcell.KeyCtrlP:
		return SearchNextAction{Direction: -1}
	case tcell.KeyRune:
	default:
		return nil
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return QuitAction{}
	case 'k':
		return ScrollAction{Delta: -1}
	case 'j':
		return ScrollAction{Delta: 1}
	case ' ':
		return PageAction{Direction: 1}
	case 'b':
		return PageAction{Direction: -1}
	case 'g':
		return JumpAction{}
	case 'G':
		return JumpAction{End: true}
	case 'n':
		return HeadingAction{Direction: 1}
	case 'N':
		return HeadingAction{Direction: -1}
	case 'p':
		return SetModeAction{Mode: ModePreview}
	case 's':
		return SetModeAction{Mode: ModeSource}
	case 'w':
		return ToggleWrapAction{}
	case 'd':
		return ExportAction{}
	case 'c':
		return CopyAction{}
	case 'r':
		return ReloadAction{}
	case '/':
		return StartSearchAction{}
	default:
		return nil
	}
}

func actionForPromptKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return QuitAction{}
	case tcell.KeyEscape:
		return PromptCancelAction{}
	case tcell.KeyEnter:
		return PromptSubmitAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return PromptBackspaceAction{}
	case tcell.KeyRune:
		return PromptInputAction{Rune: ev.Rune()}
	default:
		return nil
	}
}
