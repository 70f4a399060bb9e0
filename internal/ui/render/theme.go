package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/mdread/internal/markdown"
	statepkg "github.com/kk-code-lab/mdread/internal/state"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background    tcell.Color
	Foreground    tcell.Color
	PageBg        tcell.Color
	PageFg        tcell.Color
	BorderFg      tcell.Color
	HeadingFg     tcell.Color
	RuleFg        tcell.Color
	FooterBg      tcell.Color
	FooterFg      tcell.Color
	ErrorFg       tcell.Color
	ScrollTrackFg tcell.Color
	ScrollThumbFg tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:    tcell.ColorDefault,
		Foreground:    tcell.ColorDefault,
		PageBg:        tcell.ColorDefault,
		PageFg:        tcell.ColorDefault,
		BorderFg:      tcell.ColorGray, // #909090 page border
		HeadingFg:     tcell.ColorDefault,
		RuleFg:        tcell.ColorGray,
		FooterBg:      tcell.ColorDefault,
		FooterFg:      tcell.ColorDefault,
		ErrorFg:       tcell.ColorRed,
		ScrollTrackFg: tcell.Color238,
		ScrollThumbFg: tcell.Color33,
	}
}

// pageStyle is the base style inside the page.
func (t ColorTheme) pageStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.PageBg).Foreground(t.PageFg)
}

// roleStyle mirrors the page's tag table: headings lose emphasis with depth
// and rules are dim gray.
func (t ColorTheme) roleStyle(role markdown.Role) tcell.Style {
	base := t.pageStyle()
	switch role {
	case markdown.RoleH1:
		return base.Foreground(t.HeadingFg).Bold(true).Underline(true)
	case markdown.RoleH2:
		return base.Foreground(t.HeadingFg).Bold(true)
	case markdown.RoleH3, markdown.RoleH4:
		return base.Bold(true)
	case markdown.RoleH5:
		return base.Underline(true)
	case markdown.RoleH6:
		return base.Dim(true)
	case markdown.RoleRule:
		return base.Foreground(t.RuleFg).Dim(true)
	default:
		return base
	}
}

// segmentStyle layers span emphasis over the role style.
func (t ColorTheme) segmentStyle(role markdown.Role, seg statepkg.Segment) tcell.Style {
	style := t.roleStyle(role)
	if seg.Bold {
		style = style.Bold(true)
	}
	if seg.Italic {
		style = style.Italic(true)
	}
	return style
}
