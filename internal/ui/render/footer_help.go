package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/mdread/internal/state"
)

// buildFooterHelpText returns the key hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.ViewerState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles the hints that apply to the current state.
func buildFooterHelpSegments(state *statepkg.ViewerState) []string {
	if state == nil || state.PromptActive {
		return nil
	}
	if !state.HasDocument() {
		return []string{"o: open", "?: help", "q: quit"}
	}

	segments := []string{"↑↓/Pg: scroll"}
	if state.Path != "" {
		segments = append(segments, "r: reload")
		if state.EditorAvailable {
			segments = append(segments, "e: edit")
		}
	}
	return append(segments, "o: open", "?: help", "q: quit")
}
