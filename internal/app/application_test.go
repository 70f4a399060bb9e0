package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/mdread/internal/config"
	"github.com/kk-code-lab/mdread/internal/markdown"
	statepkg "github.com/kk-code-lab/mdread/internal/state"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	return path
}

func newTestApplication(t *testing.T, opts Options) (*Application, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	opts.Screen = screen
	app, err := NewApplication(context.Background(), opts)
	if err != nil {
		t.Fatalf("new application: %v", err)
	}
	t.Cleanup(func() {
		_ = app.Close()
	})
	return app, screen
}

func runWithTimeout(t *testing.T, ctx context.Context, app *Application) error {
	t.Helper()
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run(ctx)
	}()
	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not return")
		return nil
	}
}

func TestNewApplicationLoadsDocument(t *testing.T) {
	path := writeDoc(t, "# Title\ntext\n")
	app, screen := newTestApplication(t, Options{Path: path})

	state := app.State()
	w, h := screen.Size()
	if state.ScreenWidth != w || state.ScreenHeight != h {
		t.Fatalf("state size=%dx%d screen=%dx%d", state.ScreenWidth, state.ScreenHeight, w, h)
	}
	if state.Path != path || !state.HasDocument() {
		t.Fatalf("document not loaded: path=%q", state.Path)
	}
	if len(state.Rows) == 0 || state.Rows[0].Text() != "Title" {
		t.Fatalf("rows=%+v", state.Rows)
	}
}

func TestNewApplicationUsesConfig(t *testing.T) {
	path := writeDoc(t, "* item\n")
	cfg := config.NewConfig()
	cfg.Bullet = "-"
	cfg.TabWidth = 2

	app, _ := newTestApplication(t, Options{Config: cfg, Path: path})

	if got := app.State().Rows[0].Text(); got != "  -  item" {
		t.Fatalf("list row=%q", got)
	}
}

func TestNewApplicationReportsLoadFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.md")
	app, _ := newTestApplication(t, Options{Path: missing})

	if !errors.Is(app.State().LastError, markdown.ErrSourceUnavailable) {
		t.Fatalf("LastError=%v", app.State().LastError)
	}
	if app.State().HasDocument() {
		t.Fatalf("failed load should leave no document")
	}
}

func TestNewApplicationReadsStdin(t *testing.T) {
	app, _ := newTestApplication(t, Options{Path: "-", Stdin: strings.NewReader("piped\n")})

	state := app.State()
	if state.Buffer.Lines()[0].Text != "piped\n" {
		t.Fatalf("stdin document not rendered: %+v", state.Buffer.Lines())
	}
	if state.EditorAvailable {
		t.Fatalf("piped documents cannot be edited")
	}

	app.handleAction(statepkg.ReloadDocumentAction{})
	if state.LastError != nil || state.Buffer.Lines()[0].Text != "piped\n" {
		t.Fatalf("reload of stdin lost the document: %v", state.LastError)
	}
}

func TestNewApplicationRejectsBinaryStdin(t *testing.T) {
	_, err := NewApplication(context.Background(), Options{
		Path:   "-",
		Stdin:  strings.NewReader("\x00\x01\x02"),
		Screen: tcell.NewSimulationScreen(""),
	})
	if err == nil {
		t.Fatalf("expected binary stdin to fail")
	}
}

func TestHandleActionRecordsReducerErrors(t *testing.T) {
	app, _ := newTestApplication(t, Options{Path: writeDoc(t, "kept\n")})

	if !app.handleAction(statepkg.LoadDocumentAction{Path: filepath.Join(t.TempDir(), "nope.md")}) {
		t.Fatalf("failed load should still redraw")
	}
	if app.State().LastError == nil {
		t.Fatalf("expected LastError after failed load")
	}
	if app.State().Buffer.Lines()[0].Text != "kept\n" {
		t.Fatalf("failed load replaced the document")
	}
}

func TestHandleActionQuit(t *testing.T) {
	app, _ := newTestApplication(t, Options{})

	if app.handleAction(statepkg.QuitAction{}) {
		t.Fatalf("quit should not request a redraw")
	}
	if !app.shouldQuit {
		t.Fatalf("quit action did not stop the loop")
	}
	if app.handleAction(nil) {
		t.Fatalf("nil action should be ignored")
	}
}

func TestRunScrollsAndQuitsOnKeys(t *testing.T) {
	path := writeDoc(t, strings.Repeat("line\n", 200))
	app, screen := newTestApplication(t, Options{Path: path})

	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := runWithTimeout(t, context.Background(), app); err != nil {
		t.Fatalf("run: %v", err)
	}
	if app.State().ScrollOffset != 2 {
		t.Fatalf("scroll offset=%d want 2", app.State().ScrollOffset)
	}
}

func TestRunHandlesResize(t *testing.T) {
	app, screen := newTestApplication(t, Options{Path: writeDoc(t, "text\n")})

	screen.SetSize(120, 40)
	_ = screen.PostEvent(tcell.NewEventResize(120, 40))
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	if err := runWithTimeout(t, context.Background(), app); err != nil {
		t.Fatalf("run: %v", err)
	}
	if app.State().ScreenWidth != 120 || app.State().ScreenHeight != 40 {
		t.Fatalf("size=%dx%d", app.State().ScreenWidth, app.State().ScreenHeight)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app, _ := newTestApplication(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runWithTimeout(t, ctx, app); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
}
