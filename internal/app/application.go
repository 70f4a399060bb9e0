// Package app runs the interactive viewer on a tcell screen.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/mdread/internal/config"
	fsutil "github.com/kk-code-lab/mdread/internal/fs"
	"github.com/kk-code-lab/mdread/internal/logging"
	"github.com/kk-code-lab/mdread/internal/markdown"
	statepkg "github.com/kk-code-lab/mdread/internal/state"
	inputui "github.com/kk-code-lab/mdread/internal/ui/input"
	renderui "github.com/kk-code-lab/mdread/internal/ui/render"
)

// stdinPath names the document read from standard input.
const stdinPath = "-"

// Options configures a viewer.
type Options struct {
	Config *config.Config
	// Path is the document shown first; empty starts with no document.
	Path string
	// Stdin supplies the document when Path is "-".
	Stdin io.Reader
	// Screen replaces the terminal; tests pass a simulation screen.
	Screen tcell.Screen
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.ViewerState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	logger     *log.Logger
	editorCmd  []string
	shouldQuit bool
	closeOnce  sync.Once
}

// linesSource replays a document that was read once, such as stdin.
type linesSource []string

func (s linesSource) Lines() ([]string, error) {
	return s, nil
}

// NewApplication initializes the screen and renders the first document. A
// document that fails to load is reported on the status line, not returned.
func NewApplication(ctx context.Context, opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := logging.FromContext(ctx)

	var piped linesSource
	if opts.Path == stdinPath {
		lines, err := fsutil.ReaderSource{R: opts.Stdin}.Lines()
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		piped = lines
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	reducer := statepkg.NewStateReducer(ctx, reducerOptions(cfg, piped))
	actionCh := make(chan statepkg.Action, 10)
	inputHandler := inputui.NewInputHandler(actionCh)

	editorCmd, editorAvail := detectEditorCommand()
	state := statepkg.NewViewerState()
	state.EditorAvailable = editorAvail && piped == nil

	app := &Application{
		screen:    screen,
		state:     state,
		reducer:   reducer,
		renderer:  renderui.NewRenderer(screen),
		input:     inputHandler,
		actionCh:  actionCh,
		logger:    logger,
		editorCmd: editorCmd,
	}
	inputHandler.SetState(state)

	w, h := screen.Size()
	app.handleAction(statepkg.ResizeAction{Width: w, Height: h})
	if opts.Path != "" {
		app.handleAction(statepkg.LoadDocumentAction{Path: opts.Path})
	}
	return app, nil
}

func reducerOptions(cfg *config.Config, piped linesSource) statepkg.Options {
	opts := statepkg.DefaultOptions()
	opts.Page = cfg.LayoutPage()
	opts.Cells = cfg.CellMetrics()
	opts.Bullet = cfg.Bullet
	opts.TabWidth = cfg.TabWidth
	opts.ParagraphSpacing = cfg.ParagraphSpacing

	fileSource := opts.OpenSource
	opts.OpenSource = func(path string) markdown.Source {
		if path == stdinPath && piped != nil {
			return piped
		}
		return fileSource(path)
	}
	return opts
}

// State returns the viewer state.
func (app *Application) State() *statepkg.ViewerState {
	return app.state
}

// dispatch queues an action for the loop without blocking the caller.
func (app *Application) dispatch(action statepkg.Action) {
	select {
	case app.actionCh <- action:
	default:
		go func() { app.actionCh <- action }()
	}
}

// Close releases the terminal. It is safe to call more than once.
func (app *Application) Close() error {
	app.closeOnce.Do(app.screen.Fini)
	return nil
}
