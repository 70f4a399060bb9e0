package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth matches the 48px tab stops of the page at 6px per column.
const DefaultTabWidth = 8

// RuneCells reports how many terminal columns ru occupies, never less than one.
func RuneCells(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w < 1 {
		return 1
	}
	return w
}

// NextTabStop returns the column after a tab typed at column.
func NextTabStop(column, tabWidth int) int {
	if tabWidth <= 0 {
		return column + 1
	}
	return column + tabWidth - column%tabWidth
}

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text) + tabWidth)
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			next := NextTabStop(column, tabWidth)
			builder.WriteString(strings.Repeat(" ", next-column))
			column = next
			continue
		}
		builder.WriteRune(ru)
		column += RuneCells(ru)
	}
	return builder.String()
}

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += RuneCells(ru)
	}
	return width
}
