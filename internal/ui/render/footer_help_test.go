package render

import (
	"slices"
	"strings"
	"testing"

	"github.com/kk-code-lab/mdread/internal/markdown"
	statepkg "github.com/kk-code-lab/mdread/internal/state"
)

func TestBuildFooterHelpSegments_NoDocument(t *testing.T) {
	state := statepkg.NewViewerState()

	got := buildFooterHelpSegments(state)
	want := []string{"o: open", "?: help", "q: quit"}

	if !slices.Equal(got, want) {
		t.Fatalf("empty help mismatch\nwant: %#v\n got: %#v", want, got)
	}
}

func TestBuildFooterHelpSegments_FileDocument(t *testing.T) {
	state := statepkg.NewViewerState()
	state.Path = "/tmp/readme.md"

	got := buildFooterHelpSegments(state)
	want := []string{
		"↑↓/Pg: scroll",
		"r: reload",
		"o: open",
		"?: help",
		"q: quit",
	}

	if !slices.Equal(got, want) {
		t.Fatalf("document help mismatch\nwant: %#v\n got: %#v", want, got)
	}
}

func TestBuildFooterHelpSegments_PipedDocumentCannotReload(t *testing.T) {
	state := statepkg.NewViewerState()
	state.Document.Records = []markdown.LineRecord{{Text: "x\n"}}

	got := buildFooterHelpSegments(state)
	if slices.Contains(got, "r: reload") {
		t.Fatalf("reload hint without a path: %v", got)
	}
}

func TestBuildFooterHelpSegments_PromptHidesHints(t *testing.T) {
	state := statepkg.NewViewerState()
	state.Path = "/tmp/readme.md"
	state.PromptActive = true

	if got := buildFooterHelpSegments(state); len(got) != 0 {
		t.Fatalf("prompt should hide hints, got %v", got)
	}
	if text := buildFooterHelpText(state); text != "" {
		t.Fatalf("prompt help text=%q", text)
	}
}

func TestBuildFooterHelpTextPadding(t *testing.T) {
	state := statepkg.NewViewerState()

	text := buildFooterHelpText(state)
	if !strings.HasPrefix(text, " ") || !strings.HasSuffix(text, " ") {
		t.Fatalf("help text missing padding: %q", text)
	}
}

func TestBuildFooterHelpSegments_EditorHint(t *testing.T) {
	state := statepkg.NewViewerState()
	state.Path = "/tmp/readme.md"
	state.EditorAvailable = true

	got := buildFooterHelpSegments(state)
	if !slices.Contains(got, "e: edit") {
		t.Fatalf("expected edit hint, got %v", got)
	}
}
