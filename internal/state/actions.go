package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== SCROLL ACTIONS =====

type ScrollUpAction struct{}
type ScrollDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollToStartAction struct{}
type ScrollToEndAction struct{}

// ScrollByAction moves by Rows wrapped rows; negative scrolls up.
type ScrollByAction struct {
	Rows int
}

// ScrollToAction jumps to an absolute row offset.
type ScrollToAction struct {
	Offset int
}

// ===== VIEW ACTIONS =====

// ResizeAction carries the new terminal size in cells.
type ResizeAction struct {
	Width  int
	Height int
}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== DOCUMENT ACTIONS =====

// LoadDocumentAction parses and renders the file at Path. An empty path is
// the cancelled-selection case and changes nothing.
type LoadDocumentAction struct {
	Path string
}

type ReloadDocumentAction struct{}

// EditDocumentAction opens the current file in the external editor. The
// application handles it and reloads afterwards.
type EditDocumentAction struct{}

// ===== PATH PROMPT ACTIONS =====

type PromptStartAction struct{}
type PromptCharAction struct {
	Char rune
}
type PromptBackspaceAction struct{}
type PromptCancelAction struct{}
type PromptSubmitAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
