package state

import (
	"github.com/kk-code-lab/mdread/internal/layout"
	"github.com/kk-code-lab/mdread/internal/markdown"
)

// BufferLine is one line as the load pass emitted it.
type BufferLine struct {
	Text  string
	Role  markdown.Role
	Spans []markdown.Span
}

// PageBuffer is the in-memory render surface the viewer draws from. It only
// accepts content while a pass holds write access; anything else is dropped.
type PageBuffer struct {
	lines      []BufferLine
	paragraphs []markdown.ParagraphSpan

	page     layout.Rect
	margin   layout.Rect
	text     layout.Rect
	viewport layout.Viewport

	writable bool
	passes   int
	dropped  int
}

// NewPageBuffer returns an empty buffer.
func NewPageBuffer() *PageBuffer {
	return &PageBuffer{}
}

// Acquire opens a write pass. The returned func closes it.
func (b *PageBuffer) Acquire() func() {
	b.writable = true
	return func() {
		b.writable = false
		b.passes++
	}
}

// Clear drops all lines and paragraph spans.
func (b *PageBuffer) Clear() {
	if !b.writable {
		b.dropped++
		return
	}
	b.lines = nil
	b.paragraphs = nil
}

// AppendStyledLine adds a line at the next render index.
func (b *PageBuffer) AppendStyledLine(text string, role markdown.Role, spans []markdown.Span) {
	if !b.writable {
		b.dropped++
		return
	}
	b.lines = append(b.lines, BufferLine{Text: text, Role: role, Spans: spans})
}

// ApplyParagraph records paragraph spacing over a line range.
func (b *PageBuffer) ApplyParagraph(span markdown.ParagraphSpan) {
	if !b.writable {
		b.dropped++
		return
	}
	b.paragraphs = append(b.paragraphs, span)
}

// SetRegionGeometry stores the page regions in viewport pixels.
func (b *PageBuffer) SetRegionGeometry(page, margin, text layout.Rect) {
	b.page = page
	b.margin = margin
	b.text = text
}

// SetViewport records the viewport the regions were computed for.
func (b *PageBuffer) SetViewport(vp layout.Viewport) {
	b.viewport = vp
}

// ViewportSize returns the current viewport in pixels.
func (b *PageBuffer) ViewportSize() layout.Viewport {
	return b.viewport
}

// Regions returns the page, margin and text regions in pixels.
func (b *PageBuffer) Regions() (page, margin, text layout.Rect) {
	return b.page, b.margin, b.text
}

// Lines returns the emitted lines. The slice must not be modified.
func (b *PageBuffer) Lines() []BufferLine {
	return b.lines
}

// Paragraphs returns the applied paragraph spans.
func (b *PageBuffer) Paragraphs() []markdown.ParagraphSpan {
	return b.paragraphs
}

// Len returns the number of lines.
func (b *PageBuffer) Len() int {
	return len(b.lines)
}

// Writable reports whether a pass currently holds write access.
func (b *PageBuffer) Writable() bool {
	return b.writable
}

// Passes returns how many write passes have completed.
func (b *PageBuffer) Passes() int {
	return b.passes
}

// Dropped returns how many writes arrived outside a pass.
func (b *PageBuffer) Dropped() int {
	return b.dropped
}
