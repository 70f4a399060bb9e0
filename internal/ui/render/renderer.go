package render

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/mdread/internal/layout"
	statepkg "github.com/kk-code-lab/mdread/internal/state"
	textutil "github.com/kk-code-lab/mdread/internal/textutil"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.ViewerState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if state == nil {
		r.screen.Show()
		return
	}

	if state.HelpVisible {
		r.drawHelpOverlay(w, h)
		r.screen.Show()
		return
	}

	r.drawBackground(w, h-statepkg.StatusRows)
	r.drawPage(state)
	r.drawText(state)
	r.drawScrollbar(state)
	r.drawStatusLine(state, w, h)

	r.screen.Show()
}

func (r *Renderer) drawBackground(w, h int) {
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fill(0, y, w, style)
	}
}

// drawPage outlines the page region and clears the margin inside it.
func (r *Renderer) drawPage(state *statepkg.ViewerState) {
	page := state.Regions.Page
	if page.Width < 2 || page.Height < 2 {
		return
	}

	pageStyle := r.theme.pageStyle()
	margin := clipToPage(state.Regions.Margin, page)
	for y := margin.Y; y < margin.Y+margin.Height; y++ {
		r.fill(margin.X, y, margin.Width, pageStyle)
	}

	border := pageStyle.Foreground(r.theme.BorderFg)
	left, right := page.X, page.X+page.Width-1
	top, bottom := page.Y, page.Y+page.Height-1
	for x := left + 1; x < right; x++ {
		r.screen.SetContent(x, top, tcell.RuneHLine, nil, border)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, border)
	}
	for y := top + 1; y < bottom; y++ {
		r.screen.SetContent(left, y, tcell.RuneVLine, nil, border)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, border)
	}
	r.screen.SetContent(left, top, tcell.RuneULCorner, nil, border)
	r.screen.SetContent(right, top, tcell.RuneURCorner, nil, border)
	r.screen.SetContent(left, bottom, tcell.RuneLLCorner, nil, border)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, border)
}

// clipToPage keeps the margin strictly inside the border.
func clipToPage(margin, page layout.Rect) layout.Rect {
	minX, maxX := page.X+1, page.X+page.Width-1
	minY, maxY := page.Y+1, page.Y+page.Height-1
	if margin.X < minX {
		margin.Width -= minX - margin.X
		margin.X = minX
	}
	if margin.Y < minY {
		margin.Height -= minY - margin.Y
		margin.Y = minY
	}
	if margin.X+margin.Width > maxX {
		margin.Width = maxX - margin.X
	}
	if margin.Y+margin.Height > maxY {
		margin.Height = maxY - margin.Y
	}
	if margin.Width < 0 {
		margin.Width = 0
	}
	if margin.Height < 0 {
		margin.Height = 0
	}
	return margin
}

func (r *Renderer) drawText(state *statepkg.ViewerState) {
	text := state.Regions.Text
	if text.Width <= 0 || text.Height <= 0 {
		return
	}
	for i, row := range state.VisibleRowSlice() {
		if row.Spacing() {
			continue
		}
		r.drawSegments(text.X, text.Y+i, text.Width, row)
	}
}

// drawScrollbar draws a track with a proportional thumb in the last column
// when the document does not fit.
func (r *Renderer) drawScrollbar(state *statepkg.ViewerState) {
	track := state.ScrollbarRect()
	if track.Height == 0 {
		return
	}
	start, size := state.ScrollbarThumb()

	trackStyle := tcell.StyleDefault.Foreground(r.theme.ScrollTrackFg)
	active := tcell.StyleDefault.Foreground(r.theme.ScrollThumbFg)
	for row := 0; row < track.Height; row++ {
		if row >= start && row < start+size {
			r.screen.SetContent(track.X, track.Y+row, '█', nil, active)
			continue
		}
		r.screen.SetContent(track.X, track.Y+row, '│', nil, trackStyle)
	}
}

// drawStatusLine renders the bottom row: the path prompt while it is open,
// otherwise the document summary, the last error and key hints.
func (r *Renderer) drawStatusLine(state *statepkg.ViewerState, w, h int) {
	if h <= 0 || w <= 0 {
		return
	}
	y := h - 1
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.fill(0, y, w, normalStyle)

	if state.PromptActive {
		r.drawPrompt(state, y, w, normalStyle)
		return
	}

	left := " " + formatDocumentStatus(state)
	x := r.drawTextLine(0, y, w, r.truncateTextToWidth(left, w), normalStyle.Bold(true))

	if state.LastError != nil && x < w {
		msg := "  " + textutil.SanitizeTerminalText(state.LastError.Error())
		x = r.drawTextLine(x, y, w-x, r.truncateTextToWidth(msg, w-x), normalStyle.Foreground(r.theme.ErrorFg))
	}

	help := buildFooterHelpText(state)
	helpWidth := r.measureTextWidth(help)
	if helpWidth > 0 && x+helpWidth <= w {
		r.drawTextLine(w-helpWidth, y, helpWidth, help, normalStyle)
	}
}

func (r *Renderer) drawPrompt(state *statepkg.ViewerState, y, w int, style tcell.Style) {
	label := " Open: "
	x := r.drawTextLine(0, y, w, label, style.Bold(true))
	query := textutil.SanitizeTerminalText(state.PromptQuery)

	// Keep the end of a long path and the cursor visible.
	available := w - x - 1
	for available > 0 && r.measureTextWidth(query) > available {
		_, size := utf8.DecodeRuneInString(query)
		query = query[size:]
	}
	x = r.drawTextLine(x, y, w-x, query, style)
	if x < w {
		r.screen.SetContent(x, y, ' ', nil, style.Reverse(true))
	}
}

// formatDocumentStatus summarizes the loaded document for the status line.
func formatDocumentStatus(state *statepkg.ViewerState) string {
	if !state.HasDocument() {
		return "mdread  no document"
	}
	name := textutil.SanitizeTerminalText(state.DocumentName())
	if name == "" {
		name = "untitled"
	}
	return fmt.Sprintf("%s  %d lines  %d%%", name, state.Buffer.Len(), state.ScrollPercent())
}
