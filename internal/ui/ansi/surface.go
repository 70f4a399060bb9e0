package ansi

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	reflowansi "github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/kk-code-lab/mdread/internal/markdown"
	"github.com/kk-code-lab/mdread/internal/textutil"
)

// headingSpacingLevel is the first heading level followed by a blank line.
const headingSpacingLevel = 3

// Options controls the dump layout.
type Options struct {
	// Width is the column limit; zero or less disables wrapping.
	Width            int
	TabWidth         int
	ParagraphSpacing int
}

type line struct {
	text  string
	role  markdown.Role
	spans []markdown.Span
}

// Surface buffers one render pass and writes it out when the pass ends.
type Surface struct {
	out    io.Writer
	styles *Styles
	opts   Options

	lines         []line
	paragraphEnds map[int]struct{}
	writable      bool
	written       int
	err           error
}

// NewSurface returns a surface writing to out. A nil styles means no color.
func NewSurface(out io.Writer, styles *Styles, opts Options) *Surface {
	if styles == nil {
		styles = NewStyles(false)
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = textutil.DefaultTabWidth
	}
	return &Surface{out: out, styles: styles, opts: opts}
}

// Acquire opens a write pass. The returned func closes it and writes the
// buffered document.
func (s *Surface) Acquire() func() {
	s.writable = true
	return func() {
		s.writable = false
		s.flush()
	}
}

// Clear drops everything appended so far.
func (s *Surface) Clear() {
	if !s.writable {
		return
	}
	s.lines = nil
	s.paragraphEnds = nil
}

// AppendStyledLine buffers one rendered line.
func (s *Surface) AppendStyledLine(text string, role markdown.Role, spans []markdown.Span) {
	if !s.writable {
		return
	}
	s.lines = append(s.lines, line{text: text, role: role, spans: spans})
}

// ApplyParagraph marks where a paragraph ends so spacing follows it.
func (s *Surface) ApplyParagraph(span markdown.ParagraphSpan) {
	if !s.writable || span.EndLine <= span.StartLine {
		return
	}
	if s.paragraphEnds == nil {
		s.paragraphEnds = make(map[int]struct{})
	}
	s.paragraphEnds[span.EndLine-1] = struct{}{}
}

// Err returns the first write error of the last pass.
func (s *Surface) Err() error {
	return s.err
}

// Written reports the number of output lines of the last pass.
func (s *Surface) Written() int {
	return s.written
}

func (s *Surface) flush() {
	s.err = nil
	s.written = 0
	if s.out == nil {
		return
	}

	w := bufio.NewWriter(s.out)
	emit := func(text string) {
		if s.err != nil {
			return
		}
		if _, err := w.WriteString(text + "\n"); err != nil {
			s.err = err
			return
		}
		s.written++
	}

	for i, ln := range s.lines {
		for _, out := range s.renderLine(ln) {
			emit(out)
		}
		if ln.role.HeadingLevel() >= headingSpacingLevel {
			emit("")
		}
		if _, ok := s.paragraphEnds[i]; ok {
			for n := 0; n < s.opts.ParagraphSpacing; n++ {
				emit("")
			}
		}
	}

	if err := w.Flush(); err != nil && s.err == nil {
		s.err = err
	}
}

// renderLine styles one buffered line and wraps it to the column limit.
func (s *Surface) renderLine(ln line) []string {
	text := textutil.TrimLineEnding(ln.text)
	base := s.styles.role(ln.role)

	if ln.role == markdown.RoleRule {
		if s.opts.Width > 0 && reflowansi.PrintableRuneWidth(text) > s.opts.Width {
			text = text[:s.opts.Width]
		}
		return []string{base.Render(text)}
	}

	styled := s.styleRuns(text, ln.spans, base)
	if s.opts.Width <= 0 {
		return []string{styled}
	}
	wrapped := wrap.String(wordwrap.String(styled, s.opts.Width), s.opts.Width)
	return strings.Split(wrapped, "\n")
}

// styleRuns renders text in runs of equal emphasis. Span offsets index the
// runes of text; tabs are expanded as the runs are built.
func (s *Surface) styleRuns(text string, spans []markdown.Span, base lipgloss.Style) string {
	var (
		out     strings.Builder
		run     strings.Builder
		runBold bool
		runItal bool
		column  int
	)
	flushRun := func() {
		if run.Len() == 0 {
			return
		}
		style := base
		if runBold {
			style = style.Inherit(s.styles.Bold)
		}
		if runItal {
			style = style.Inherit(s.styles.Italic)
		}
		out.WriteString(style.Render(run.String()))
		run.Reset()
	}

	idx := 0
	for _, ru := range text {
		bold, italic := emphasisAt(spans, idx)
		idx++
		if bold != runBold || italic != runItal {
			flushRun()
			runBold, runItal = bold, italic
		}
		if ru == '\t' {
			next := textutil.NextTabStop(column, s.opts.TabWidth)
			run.WriteString(strings.Repeat(" ", next-column))
			column = next
			continue
		}
		for _, dr := range textutil.DisplayRunes(ru) {
			run.WriteRune(dr)
			column += textutil.RuneCells(dr)
		}
	}
	flushRun()
	return out.String()
}

func emphasisAt(spans []markdown.Span, idx int) (bold, italic bool) {
	for _, sp := range spans {
		if idx < sp.Start || idx >= sp.End {
			continue
		}
		switch sp.Style {
		case markdown.StyleBold:
			bold = true
		case markdown.StyleItalic:
			italic = true
		}
	}
	return bold, italic
}
