package state

import (
	"path/filepath"

	"github.com/kk-code-lab/mdread/internal/layout"
	"github.com/kk-code-lab/mdread/internal/markdown"
)

// StatusRows is the number of terminal rows below the page.
const StatusRows = 1

// CellRegions holds the page regions converted to terminal cells.
type CellRegions struct {
	Page   layout.Rect
	Margin layout.Rect
	Text   layout.Rect
}

// ===== STATE DEFINITIONS =====

// ViewerState is the single source of truth
type ViewerState struct {
	// Document
	Path     string
	Document markdown.Document
	Buffer   *PageBuffer

	// Layout
	Geometry layout.Geometry
	Regions  CellRegions
	Rows     []Row

	// Viewport
	ScreenWidth  int
	ScreenHeight int
	ScrollOffset int

	// Overlays
	HelpVisible  bool
	PromptActive bool
	PromptQuery  string

	// EditorAvailable is set when $VISUAL, $EDITOR or a fallback editor
	// was found.
	EditorAvailable bool

	// Error state
	LastError error
}

// NewViewerState returns a state with an empty page buffer.
func NewViewerState() *ViewerState {
	return &ViewerState{Buffer: NewPageBuffer()}
}

// ===== HELPER METHODS =====

// HasDocument reports whether a document has been rendered.
func (s *ViewerState) HasDocument() bool {
	return s.Path != "" || len(s.Document.Records) > 0
}

// DocumentName returns the base name of the loaded file.
func (s *ViewerState) DocumentName() string {
	if s.Path == "" {
		return ""
	}
	return filepath.Base(s.Path)
}

// VisibleRows returns how many rows of text the region shows.
func (s *ViewerState) VisibleRows() int {
	if s.Regions.Text.Height < 0 {
		return 0
	}
	return s.Regions.Text.Height
}

// MaxScrollOffset returns the offset that shows the last row at the bottom.
func (s *ViewerState) MaxScrollOffset() int {
	limit := len(s.Rows) - s.VisibleRows()
	if limit < 0 {
		return 0
	}
	return limit
}

// ScrollPercent returns how far the view is through the document.
func (s *ViewerState) ScrollPercent() int {
	limit := s.MaxScrollOffset()
	if limit == 0 {
		return 100
	}
	return s.ScrollOffset * 100 / limit
}

// VisibleRowSlice returns the rows currently inside the text region.
func (s *ViewerState) VisibleRowSlice() []Row {
	start := s.ScrollOffset
	if start > len(s.Rows) {
		start = len(s.Rows)
	}
	end := start + s.VisibleRows()
	if end > len(s.Rows) {
		end = len(s.Rows)
	}
	return s.Rows[start:end]
}

// ScrollbarRect returns the cells of the scrollbar track in the last column,
// or an empty rect when the document fits.
func (s *ViewerState) ScrollbarRect() layout.Rect {
	height := s.ScreenHeight - StatusRows
	if s.MaxScrollOffset() == 0 || s.ScreenWidth <= 0 || height <= 0 {
		return layout.Rect{}
	}
	return layout.Rect{X: s.ScreenWidth - 1, Y: 0, Width: 1, Height: height}
}

// ScrollbarThumb returns the first track row of the thumb and its length.
func (s *ViewerState) ScrollbarThumb() (start, size int) {
	track := s.ScrollbarRect()
	if track.Height == 0 {
		return 0, 0
	}
	size = track.Height * s.VisibleRows() / len(s.Rows)
	if size < 1 {
		size = 1
	}
	start = (track.Height - size) * s.ScrollOffset / s.MaxScrollOffset()
	return start, size
}

// ScrollOffsetAt maps a track row to the offset that puts the thumb there.
// The top row is the start of the document, the bottom row the end.
func (s *ViewerState) ScrollOffsetAt(y int) int {
	track := s.ScrollbarRect()
	if track.Height <= 1 {
		return 0
	}
	row := y - track.Y
	if row < 0 {
		row = 0
	}
	if row > track.Height-1 {
		row = track.Height - 1
	}
	return row * s.MaxScrollOffset() / (track.Height - 1)
}

func (s *ViewerState) clampScroll() {
	if s.ScrollOffset > s.MaxScrollOffset() {
		s.ScrollOffset = s.MaxScrollOffset()
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

func (s *ViewerState) scrollBy(delta int) {
	s.ScrollOffset += delta
	s.clampScroll()
}

func (s *ViewerState) pageRows() int {
	rows := s.VisibleRows() - 1
	if rows < 1 {
		return 1
	}
	return rows
}
