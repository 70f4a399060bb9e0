package state

import (
	"github.com/kk-code-lab/mdread/internal/markdown"
	"github.com/kk-code-lab/mdread/internal/textutil"
)

// Segment is a run of row text sharing one emphasis.
type Segment struct {
	Text   string
	Bold   bool
	Italic bool
}

// Row is one wrapped terminal row of the text region.
type Row struct {
	// Line is the buffer line the row came from, or -1 for spacing rows.
	Line     int
	Role     markdown.Role
	Segments []Segment
}

// Spacing reports whether the row is vertical spacing rather than text.
func (r Row) Spacing() bool {
	return r.Line < 0
}

// Text joins the row's segments.
func (r Row) Text() string {
	if len(r.Segments) == 1 {
		return r.Segments[0].Text
	}
	total := 0
	for _, seg := range r.Segments {
		total += len(seg.Text)
	}
	buf := make([]byte, 0, total)
	for _, seg := range r.Segments {
		buf = append(buf, seg.Text...)
	}
	return string(buf)
}

// WrapOptions controls how buffer lines become rows.
type WrapOptions struct {
	Width            int
	TabWidth         int
	ParagraphSpacing int
}

type cell struct {
	ru     rune
	width  int
	bold   bool
	italic bool
}

// headingSpacingLevel is the first heading level followed by a spacing row.
const headingSpacingLevel = 3

// Rows wraps every buffer line to opts.Width columns and inserts heading and
// paragraph spacing. A region without columns has no rows.
func (b *PageBuffer) Rows(opts WrapOptions) []Row {
	if opts.Width <= 0 || len(b.lines) == 0 {
		return nil
	}

	paragraphEnds := make(map[int]struct{}, len(b.paragraphs))
	for _, p := range b.paragraphs {
		if p.EndLine > p.StartLine {
			paragraphEnds[p.EndLine-1] = struct{}{}
		}
	}

	rows := make([]Row, 0, len(b.lines))
	for i, line := range b.lines {
		cells := styledCells(line, opts.TabWidth)
		if line.Role == markdown.RoleRule {
			// Rules are a fill and never wrap.
			cells = clipCells(cells, opts.Width)
		}
		for _, wrapped := range wrapCells(cells, opts.Width) {
			rows = append(rows, Row{Line: i, Role: line.Role, Segments: segmentCells(wrapped)})
		}
		if line.Role.HeadingLevel() >= headingSpacingLevel {
			rows = append(rows, spacingRow())
		}
		if _, ok := paragraphEnds[i]; ok {
			for n := 0; n < opts.ParagraphSpacing; n++ {
				rows = append(rows, spacingRow())
			}
		}
	}
	return rows
}

func spacingRow() Row {
	return Row{Line: -1}
}

// styledCells expands a line into display cells carrying span emphasis. Tabs
// become spaces up to the next stop.
func styledCells(line BufferLine, tabWidth int) []cell {
	runes := []rune(textutil.TrimLineEnding(line.Text))
	cells := make([]cell, 0, len(runes))
	column := 0
	for idx, ru := range runes {
		bold, italic := spanStyles(line.Spans, idx)
		if ru == '\t' {
			next := textutil.NextTabStop(column, tabWidth)
			for ; column < next; column++ {
				cells = append(cells, cell{ru: ' ', width: 1, bold: bold, italic: italic})
			}
			continue
		}
		for _, shown := range textutil.DisplayRunes(ru) {
			w := textutil.RuneCells(shown)
			cells = append(cells, cell{ru: shown, width: w, bold: bold, italic: italic})
			column += w
		}
	}
	return cells
}

func spanStyles(spans []markdown.Span, idx int) (bold, italic bool) {
	for _, span := range spans {
		if idx < span.Start || idx >= span.End {
			continue
		}
		switch span.Style {
		case markdown.StyleBold:
			bold = true
		case markdown.StyleItalic:
			italic = true
		}
	}
	return bold, italic
}

// wrapCells breaks cells into rows of at most width columns, preferring the
// last space after the row's first visible cell. The space a row breaks at
// is dropped. Leading indentation is never a break point on its own.
func wrapCells(cells []cell, width int) [][]cell {
	if len(cells) == 0 {
		return [][]cell{nil}
	}

	var rows [][]cell
	for len(cells) > 0 {
		used, cut, lastSpace := 0, 0, -1
		seenText := false
		for cut < len(cells) && used+cells[cut].width <= width {
			if cells[cut].ru != ' ' {
				seenText = true
			} else if seenText {
				lastSpace = cut
			}
			used += cells[cut].width
			cut++
		}

		switch {
		case cut == len(cells):
			rows = append(rows, cells)
			return rows
		case cut == 0:
			// A rune wider than the region still gets a row to itself.
			rows = append(rows, cells[:1])
			cells = cells[1:]
		case seenText && cells[cut].ru == ' ':
			rows = append(rows, cells[:cut])
			cells = cells[cut+1:]
		case lastSpace > 0:
			rows = append(rows, cells[:lastSpace])
			cells = cells[lastSpace+1:]
		default:
			rows = append(rows, cells[:cut])
			cells = cells[cut:]
		}
	}
	return rows
}

func clipCells(cells []cell, width int) []cell {
	used := 0
	for i, c := range cells {
		if used+c.width > width {
			return cells[:i]
		}
		used += c.width
	}
	return cells
}

func segmentCells(cells []cell) []Segment {
	if len(cells) == 0 {
		return nil
	}
	var segments []Segment
	start := 0
	for i := 1; i <= len(cells); i++ {
		if i < len(cells) && cells[i].bold == cells[start].bold && cells[i].italic == cells[start].italic {
			continue
		}
		runes := make([]rune, 0, i-start)
		for _, c := range cells[start:i] {
			runes = append(runes, c.ru)
		}
		segments = append(segments, Segment{Text: string(runes), Bold: cells[start].bold, Italic: cells[start].italic})
		start = i
	}
	return segments
}
