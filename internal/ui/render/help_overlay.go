package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	textutil "github.com/kk-code-lab/mdread/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines() []string {
	sections := []helpOverlaySection{
		{
			title: "Scrolling",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ or k/j", desc: "Scroll one line"},
				{keys: "PgUp/PgDn", desc: "Scroll one page"},
				{keys: "b / space", desc: "Page up / page down"},
				{keys: "g/G", desc: "Jump to start / end"},
				{keys: "Home/End", desc: "Jump to start / end"},
				{keys: "wheel", desc: "Scroll three lines"},
				{keys: "click bar", desc: "Jump to that point"},
			},
		},
		{
			title: "Document",
			entries: []helpOverlayEntry{
				{keys: "o", desc: "Open another file"},
				{keys: "r", desc: "Reload the current file"},
				{keys: "e", desc: "Edit in $EDITOR, then reload"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q or Esc", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "Ctrl+Z", desc: "Suspend to shell"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 24)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fill(0, y, w, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	maxRow := h - 1
	for _, line := range buildHelpOverlayLines() {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	footer := "? toggle · Esc/q close"
	if h > 0 {
		r.drawTextLine(0, h-1, w, r.truncateTextToWidth(footer, w), headerStyle)
	}
}
