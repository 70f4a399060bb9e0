package input

import (
	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/mdread/internal/state"
)

// wheelRows is how far one mouse wheel notch scrolls.
const wheelRows = 3

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.ViewerState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.ViewerState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the event asked the viewer to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	case *tcell.EventMouse:
		ih.processMouseEvent(ev)
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processMouseEvent(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		ih.actionChan <- statepkg.ScrollByAction{Rows: -wheelRows}
	case buttons&tcell.WheelDown != 0:
		ih.actionChan <- statepkg.ScrollByAction{Rows: wheelRows}
	case buttons&tcell.Button1 != 0 && ih.state != nil:
		// Clicking or dragging on the scrollbar jumps to that point.
		x, y := ev.Position()
		if ih.state.ScrollbarRect().Contains(x, y) {
			ih.actionChan <- statepkg.ScrollToAction{Offset: ih.state.ScrollOffsetAt(y)}
		}
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	helpVisible := ih.state != nil && ih.state.HelpVisible
	promptActive := ih.state != nil && ih.state.PromptActive

	if ev.Key() == tcell.KeyCtrlC {
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.HelpHideAction{}
		case tcell.KeyRune:
			r := ev.Rune()
			if r == '?' || r == 'q' || r == 'Q' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
		}
		return true
	}

	if promptActive {
		return ih.processPromptKey(ev)
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyUp:
		ih.actionChan <- statepkg.ScrollUpAction{}
		return true

	case tcell.KeyDown, tcell.KeyEnter:
		ih.actionChan <- statepkg.ScrollDownAction{}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.ScrollPageUpAction{}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.ScrollPageDownAction{}
		return true

	case tcell.KeyHome:
		ih.actionChan <- statepkg.ScrollToStartAction{}
		return true

	case tcell.KeyEnd:
		ih.actionChan <- statepkg.ScrollToEndAction{}
		return true

	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}

	return true
}

func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case 'j':
		ih.actionChan <- statepkg.ScrollDownAction{}
	case 'k':
		ih.actionChan <- statepkg.ScrollUpAction{}
	case ' ', 'f':
		ih.actionChan <- statepkg.ScrollPageDownAction{}
	case 'b':
		ih.actionChan <- statepkg.ScrollPageUpAction{}
	case 'g':
		ih.actionChan <- statepkg.ScrollToStartAction{}
	case 'G':
		ih.actionChan <- statepkg.ScrollToEndAction{}
	case 'r', 'R':
		ih.actionChan <- statepkg.ReloadDocumentAction{}
	case 'o', 'O':
		ih.actionChan <- statepkg.PromptStartAction{}
	case 'e', 'E':
		if ih.state != nil && ih.state.EditorAvailable && ih.state.Path != "" {
			ih.actionChan <- statepkg.EditDocumentAction{}
		}
	case '?':
		ih.actionChan <- statepkg.HelpToggleAction{}
	}
	return true
}

// processPromptKey edits the path prompt; every rune, including 'q', is
// input.
func (ih *InputHandler) processPromptKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.PromptCancelAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.PromptSubmitAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.PromptBackspaceAction{}
	case tcell.KeyRune:
		ih.actionChan <- statepkg.PromptCharAction{Char: ev.Rune()}
	}
	return true
}
