package state

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	fsutil "github.com/kk-code-lab/mdread/internal/fs"
	"github.com/kk-code-lab/mdread/internal/layout"
	"github.com/kk-code-lab/mdread/internal/logging"
	"github.com/kk-code-lab/mdread/internal/markdown"
	"github.com/kk-code-lab/mdread/internal/textutil"
)

// stdinPath names standard input; it has no extension to check.
const stdinPath = "-"

// Options carries the settings the reducer renders with.
type Options struct {
	Page             layout.Page
	Cells            layout.CellMetrics
	Bullet           string
	TabWidth         int
	ParagraphSpacing int
	// OpenSource returns the document source for a path.
	OpenSource func(path string) markdown.Source
}

// DefaultOptions returns the stock page, cell metrics and file source.
func DefaultOptions() Options {
	return Options{
		Page:             layout.DefaultPage(),
		Cells:            layout.DefaultCellMetrics(),
		Bullet:           markdown.DefaultBullet,
		TabWidth:         textutil.DefaultTabWidth,
		ParagraphSpacing: 1,
		OpenSource: func(path string) markdown.Source {
			return fsutil.NewFileSource(path)
		},
	}
}

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct {
	opts   Options
	calc   *layout.Calculator
	logger *log.Logger
}

// NewStateReducer creates a new reducer. The logger in ctx receives load
// and resize diagnostics.
func NewStateReducer(ctx context.Context, opts Options) *StateReducer {
	if opts.OpenSource == nil {
		opts.OpenSource = DefaultOptions().OpenSource
	}
	return &StateReducer{
		opts:   opts,
		calc:   layout.NewCalculator(opts.Page),
		logger: logging.FromContext(ctx),
	}
}

// Geometry returns the geometry of the last resize.
func (r *StateReducer) Geometry() layout.Geometry {
	return r.calc.Geometry()
}

// Reduce applies an action to state and returns new state. Load failures are
// returned after leaving the rendered document untouched.
func (r *StateReducer) Reduce(state *ViewerState, action Action) (*ViewerState, error) {
	switch a := action.(type) {

	// ===== SCROLLING =====

	case ScrollUpAction:
		state.scrollBy(-1)
		return state, nil

	case ScrollDownAction:
		state.scrollBy(1)
		return state, nil

	case ScrollByAction:
		state.scrollBy(a.Rows)
		return state, nil

	case ScrollPageUpAction:
		state.scrollBy(-state.pageRows())
		return state, nil

	case ScrollPageDownAction:
		state.scrollBy(state.pageRows())
		return state, nil

	case ScrollToStartAction:
		state.ScrollOffset = 0
		return state, nil

	case ScrollToEndAction:
		state.ScrollOffset = state.MaxScrollOffset()
		return state, nil

	case ScrollToAction:
		state.ScrollOffset = a.Offset
		state.clampScroll()
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		r.applyViewport(state)
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		state.HelpVisible = false
		return state, nil

	// ===== DOCUMENT =====

	case LoadDocumentAction:
		return state, r.loadDocument(state, a.Path)

	case ReloadDocumentAction:
		if state.Path == "" {
			return state, nil
		}
		return state, r.loadDocument(state, state.Path)

	// ===== PATH PROMPT =====

	case PromptStartAction:
		state.HelpVisible = false
		state.PromptActive = true
		state.PromptQuery = ""
		return state, nil

	case PromptCharAction:
		if state.PromptActive {
			state.PromptQuery += string(a.Char)
		}
		return state, nil

	case PromptBackspaceAction:
		if state.PromptActive && state.PromptQuery != "" {
			runes := []rune(state.PromptQuery)
			state.PromptQuery = string(runes[:len(runes)-1])
		}
		return state, nil

	case PromptCancelAction:
		state.PromptActive = false
		state.PromptQuery = ""
		return state, nil

	case PromptSubmitAction:
		if !state.PromptActive {
			return state, nil
		}
		path := state.PromptQuery
		state.PromptActive = false
		state.PromptQuery = ""
		return state, r.loadDocument(state, path)
	}

	return state, nil
}

// applyViewport converts the terminal size to page pixels, republishes the
// region geometry and reflows rule lines of the current document.
func (r *StateReducer) applyViewport(state *ViewerState) {
	rows := state.ScreenHeight - StatusRows
	if rows < 0 {
		rows = 0
	}
	width, height := r.opts.Cells.ToPixels(state.ScreenWidth, rows)
	state.Geometry = r.calc.Resize(width, height, state.Buffer)
	state.Buffer.SetViewport(state.Geometry.Viewport)

	r.logger.Debug("viewport resized",
		logging.FieldWidth, width,
		logging.FieldHeight, height,
		logging.FieldPageWidth, state.Geometry.PageWidth,
		logging.FieldContentWidth, state.Geometry.ContentWidth,
		logging.FieldRuleChars, r.calc.RuleChars(),
	)

	if state.HasDocument() {
		state.Document.Reflow(r.calc.RuleChars())
		markdown.Render(state.Document, state.Buffer)
	}
	r.relayout(state)
}

// relayout rebuilds the wrapped rows from the page buffer.
func (r *StateReducer) relayout(state *ViewerState) {
	page, margin, text := state.Buffer.Regions()
	state.Regions = CellRegions{
		Page:   r.opts.Cells.ToCells(page),
		Margin: r.opts.Cells.ToCells(margin),
		Text:   r.opts.Cells.ToCells(text),
	}
	state.Rows = state.Buffer.Rows(WrapOptions{
		Width:            state.Regions.Text.Width,
		TabWidth:         r.opts.TabWidth,
		ParagraphSpacing: r.opts.ParagraphSpacing,
	})
	state.clampScroll()
}

func (r *StateReducer) renderContext() markdown.RenderContext {
	return markdown.RenderContext{
		RuleChars: r.calc.RuleChars(),
		Bullet:    r.opts.Bullet,
		Logger:    r.logger,
	}
}

// loadDocument runs a load pass for path. A blank path is a cancelled
// selection and does nothing.
func (r *StateReducer) loadDocument(state *ViewerState, path string) error {
	path = fsutil.ExpandHome(strings.TrimSpace(path))
	if path == "" {
		return nil
	}

	ctx := logging.WithLogger(context.Background(), r.logger)
	doc, err := markdown.Load(ctx, r.opts.OpenSource(path), r.renderContext(), state.Buffer)
	if err != nil {
		if errors.Is(err, fsutil.ErrNoDocument) {
			return nil
		}
		r.logger.Warn("document unavailable", logging.FieldPath, path, logging.FieldError, err)
		return err
	}

	if path != state.Path {
		state.ScrollOffset = 0
		if path != stdinPath && !fsutil.IsMarkdownPath(path) {
			r.logger.Info("loaded file without a markdown extension", logging.FieldPath, path)
		}
	}
	state.Path = path
	state.Document = doc
	state.LastError = nil
	r.relayout(state)
	return nil
}
