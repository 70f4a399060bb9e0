// Package ansi renders documents as styled text for pipes and dumps.
package ansi

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/kk-code-lab/mdread/internal/markdown"
)

// Styles holds one lipgloss style per block role plus the emphasis styles
// layered on top of them.
type Styles struct {
	Headings  [6]lipgloss.Style
	Rule      lipgloss.Style
	ListItem  lipgloss.Style
	Paragraph lipgloss.Style
	Plain     lipgloss.Style

	Bold   lipgloss.Style
	Italic lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles forces an ANSI 256 profile so output stays styled when the
// caller asked for color on a non-terminal writer.
func newColorStyles() *Styles {
	r := lipgloss.NewRenderer(os.Stdout)
	r.SetColorProfile(termenv.ANSI256)

	return &Styles{
		Headings: [6]lipgloss.Style{
			r.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12")),
			r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			r.NewStyle().Bold(true),
			r.NewStyle().Bold(true),
			r.NewStyle().Underline(true),
			r.NewStyle().Faint(true),
		},
		Rule:      r.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),
		ListItem:  r.NewStyle(),
		Paragraph: r.NewStyle(),
		Plain:     r.NewStyle(),

		Bold:   r.NewStyle().Bold(true),
		Italic: r.NewStyle().Italic(true),
	}
}

// newNoColorStyles creates styles with no formatting at all.
func newNoColorStyles() *Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	plain := r.NewStyle()
	s := &Styles{
		Rule:      plain,
		ListItem:  plain,
		Paragraph: plain,
		Plain:     plain,
		Bold:      plain,
		Italic:    plain,
	}
	for i := range s.Headings {
		s.Headings[i] = plain
	}
	return s
}

// role returns the base style of a line.
func (s *Styles) role(role markdown.Role) lipgloss.Style {
	if level := role.HeadingLevel(); level > 0 {
		return s.Headings[level-1]
	}
	switch role {
	case markdown.RoleRule:
		return s.Rule
	case markdown.RoleListItem:
		return s.ListItem
	case markdown.RoleParagraph:
		return s.Paragraph
	default:
		return s.Plain
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
