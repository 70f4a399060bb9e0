package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/mdread/internal/markdown"
	statepkg "github.com/kk-code-lab/mdread/internal/state"
)

type memSource string

func (m memSource) Lines() ([]string, error) {
	doc := string(m)
	return strings.SplitAfter(doc, "\n")[:strings.Count(doc, "\n")], nil
}

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	t.Cleanup(func() {
		screen.Fini()
	})
	screen.SetSize(w, h)
	return screen
}

func loadedState(t *testing.T, w, h int, doc string) *statepkg.ViewerState {
	t.Helper()
	opts := statepkg.DefaultOptions()
	opts.OpenSource = func(string) markdown.Source { return memSource(doc) }
	reducer := statepkg.NewStateReducer(context.Background(), opts)

	state := statepkg.NewViewerState()
	if _, err := reducer.Reduce(state, statepkg.ResizeAction{Width: w, Height: h}); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if _, err := reducer.Reduce(state, statepkg.LoadDocumentAction{Path: "/docs/readme.md"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	return state
}

func screenText(screen tcell.SimulationScreen, x, y, width int) string {
	var b strings.Builder
	for i := 0; i < width; i++ {
		mainc, _, _, _ := screen.GetContent(x+i, y)
		if mainc == 0 {
			mainc = ' '
		}
		b.WriteRune(mainc)
	}
	return b.String()
}

func screenContains(screen tcell.SimulationScreen, want string) bool {
	w, h := screen.Size()
	for y := 0; y < h; y++ {
		if strings.Contains(screenText(screen, 0, y, w), want) {
			return true
		}
	}
	return false
}

func attrsAt(screen tcell.SimulationScreen, x, y int) tcell.AttrMask {
	_, _, style, _ := screen.GetContent(x, y)
	_, _, attrs := style.Decompose()
	return attrs
}

func TestRenderPlacesTextInRegion(t *testing.T) {
	screen := newTestScreen(t, 100, 31)
	state := loadedState(t, 100, 31, "# Title\nsome **bold** words\n")

	NewRenderer(screen).Render(state)

	text := state.Regions.Text
	if got := strings.TrimRight(screenText(screen, text.X, text.Y, text.Width), " "); got != "Title" {
		t.Fatalf("heading row=%q", got)
	}
	if attrsAt(screen, text.X, text.Y)&tcell.AttrBold == 0 {
		t.Fatalf("heading should be bold")
	}
	rule := screenText(screen, text.X, text.Y+1, 5)
	if rule != "_____" {
		t.Fatalf("rule row starts %q", rule)
	}

	body := text.Y + 3
	if got := strings.TrimRight(screenText(screen, text.X, body, text.Width), " "); got != "some bold words" {
		t.Fatalf("body row=%q", got)
	}
	if attrsAt(screen, text.X+5, body)&tcell.AttrBold == 0 {
		t.Fatalf("bold span not styled")
	}
	if attrsAt(screen, text.X, body)&tcell.AttrBold != 0 {
		t.Fatalf("plain text styled bold")
	}
}

func TestRenderDrawsPageBorder(t *testing.T) {
	screen := newTestScreen(t, 100, 31)
	state := loadedState(t, 100, 31, "text\n")

	NewRenderer(screen).Render(state)

	page := state.Regions.Page
	corners := []struct {
		x, y int
		want rune
	}{
		{page.X, page.Y, tcell.RuneULCorner},
		{page.X + page.Width - 1, page.Y, tcell.RuneURCorner},
		{page.X, page.Y + page.Height - 1, tcell.RuneLLCorner},
		{page.X + page.Width - 1, page.Y + page.Height - 1, tcell.RuneLRCorner},
	}
	for _, c := range corners {
		if got, _, _, _ := screen.GetContent(c.x, c.y); got != c.want {
			t.Fatalf("corner at (%d,%d)=%q want %q", c.x, c.y, got, c.want)
		}
	}
}

func TestRenderStatusLine(t *testing.T) {
	screen := newTestScreen(t, 100, 31)
	state := loadedState(t, 100, 31, "text\n")
	state.LastError = errors.New("open missing.md: no such file")

	NewRenderer(screen).Render(state)

	status := screenText(screen, 0, 30, 100)
	for _, want := range []string{"readme.md", "1 lines", "100%", "open missing.md"} {
		if !strings.Contains(status, want) {
			t.Fatalf("status %q missing %q", status, want)
		}
	}

	state.LastError = nil
	NewRenderer(screen).Render(state)
	if status := screenText(screen, 0, 30, 100); !strings.HasSuffix(strings.TrimRight(status, " "), "q: quit") {
		t.Fatalf("footer hints not right-aligned: %q", status)
	}
}

func TestRenderPrompt(t *testing.T) {
	screen := newTestScreen(t, 40, 10)
	state := loadedState(t, 40, 10, "text\n")
	state.PromptActive = true
	state.PromptQuery = "notes.md"

	NewRenderer(screen).Render(state)

	if status := screenText(screen, 0, 9, 40); !strings.HasPrefix(status, " Open: notes.md") {
		t.Fatalf("prompt line=%q", status)
	}
}

func TestRenderPromptKeepsTailOfLongPath(t *testing.T) {
	screen := newTestScreen(t, 20, 5)
	state := statepkg.NewViewerState()
	state.PromptActive = true
	state.PromptQuery = "/very/long/directory/name/file.md"

	NewRenderer(screen).Render(state)

	status := screenText(screen, 0, 4, 20)
	if !strings.Contains(status, "file.md") {
		t.Fatalf("prompt should show the end of the path, got %q", status)
	}
}

func TestRenderHelpOverlay(t *testing.T) {
	screen := newTestScreen(t, 60, 30)
	state := loadedState(t, 60, 30, "text\n")
	state.HelpVisible = true

	NewRenderer(screen).Render(state)

	for _, want := range []string{"Help", "Scrolling", "Reload the current file", "Quit"} {
		if !screenContains(screen, want) {
			t.Fatalf("help overlay missing %q", want)
		}
	}
	if screenContains(screen, "readme.md") {
		t.Fatalf("help overlay should replace the status line")
	}
}

func TestRenderScrollbarOnlyWhenNeeded(t *testing.T) {
	screen := newTestScreen(t, 100, 31)
	short := loadedState(t, 100, 31, "text\n")
	r := NewRenderer(screen)

	r.Render(short)
	if got, _, _, _ := screen.GetContent(99, 0); got == '█' || got == '│' {
		t.Fatalf("short document should have no scrollbar")
	}

	long := loadedState(t, 100, 31, strings.Repeat("line\n", 200))
	r.Render(long)
	if got, _, _, _ := screen.GetContent(99, 0); got != '█' {
		t.Fatalf("thumb should start at the top, got %q", got)
	}
}

func TestRenderEmptyState(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	state := statepkg.NewViewerState()

	NewRenderer(screen).Render(state)

	if !strings.Contains(screenText(screen, 0, 23, 80), "no document") {
		t.Fatalf("expected empty-state status line")
	}
}

func TestTruncateTextToWidth(t *testing.T) {
	r := NewRenderer(nil)

	tests := []struct {
		name   string
		text   string
		width  int
		expect string
	}{
		{name: "fits without truncation", text: "readme.md", width: 20, expect: "readme.md"},
		{name: "adds ellipsis when needed", text: "verylongname", width: 6, expect: "veryl…"},
		{name: "only ellipsis when width too small", text: "example", width: 1, expect: "…"},
		{name: "multi-byte characters respected", text: "你好世界", width: 5, expect: "你好…"},
		{name: "returns empty when width is zero", text: "anything", width: 0, expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := r.truncateTextToWidth(tt.text, tt.width)
			if actual != tt.expect {
				t.Fatalf("expected %q, got %q (width %d)", tt.expect, actual, tt.width)
			}
		})
	}
}

func TestRoleStyles(t *testing.T) {
	theme := GetColorTheme()

	_, _, h1 := theme.roleStyle(markdown.RoleH1).Decompose()
	if h1&tcell.AttrBold == 0 || h1&tcell.AttrUnderline == 0 {
		t.Fatalf("h1 attrs=%v", h1)
	}
	_, _, hr := theme.roleStyle(markdown.RoleRule).Decompose()
	if hr&tcell.AttrDim == 0 {
		t.Fatalf("rules should be dim")
	}
	_, _, italic := theme.segmentStyle(markdown.RoleListItem, statepkg.Segment{Italic: true}).Decompose()
	if italic&tcell.AttrItalic == 0 {
		t.Fatalf("italic segment attrs=%v", italic)
	}
}
