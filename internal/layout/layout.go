// Package layout places the page on the viewport and derives the content
// width that sizes synthesized rule lines.
package layout

// Rect is a region in viewport pixels, or in terminal cells once converted.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Viewport is the current window size in pixels. It is replaced wholesale on
// every resize.
type Viewport struct {
	Width  int
	Height int
}

// Page holds the fixed page metrics.
type Page struct {
	MaxWidth    int
	OuterMargin int
	InsetX      int
	InsetY      int
}

const (
	defaultMaxPageWidth = 800
	defaultOuterMargin  = 20
	defaultInsetX       = 100
	defaultInsetY       = 50

	// ruleGlyphWidth is the pixel width of one rule underscore.
	ruleGlyphWidth = 6
)

// DefaultPage returns the stock page metrics.
func DefaultPage() Page {
	return Page{
		MaxWidth:    defaultMaxPageWidth,
		OuterMargin: defaultOuterMargin,
		InsetX:      defaultInsetX,
		InsetY:      defaultInsetY,
	}
}

// Geometry is everything a render surface needs to place the page.
type Geometry struct {
	Viewport     Viewport
	PageWidth    int
	ContentWidth int
	// Page is the border region, Margin the page body inside it and Text
	// the inset region text flows into. All are in viewport coordinates.
	Page   Rect
	Margin Rect
	Text   Rect
}

// RuleChars returns the underscore count of a rule line for this geometry.
func (g Geometry) RuleChars() int {
	return RuleChars(g.ContentWidth)
}

// RuleChars returns floor(contentWidth/6) - 1, clamped at zero.
func RuleChars(contentWidth int) int {
	if contentWidth <= 0 {
		return 0
	}
	n := contentWidth/ruleGlyphWidth - 1
	if n < 0 {
		return 0
	}
	return n
}

// Compute places the page for a viewport.
func (p Page) Compute(vp Viewport) Geometry {
	pageWidth := vp.Width - p.OuterMargin
	if pageWidth > p.MaxWidth {
		pageWidth = p.MaxWidth
	}
	contentWidth := pageWidth - 2*p.InsetX
	pageHeight := vp.Height - p.OuterMargin

	page := Rect{
		X:      vp.Width/2 - pageWidth/2,
		Y:      0,
		Width:  pageWidth,
		Height: pageHeight,
	}
	margin := Rect{
		X:      page.X + 1,
		Y:      page.Y + 1,
		Width:  pageWidth - 2,
		Height: pageHeight - 1,
	}
	text := Rect{
		X:      margin.X + p.InsetX,
		Y:      margin.Y + p.InsetY,
		Width:  contentWidth,
		Height: vp.Height - p.OuterMargin - p.InsetY,
	}

	return Geometry{
		Viewport:     vp,
		PageWidth:    pageWidth,
		ContentWidth: contentWidth,
		Page:         clampRect(page),
		Margin:       clampRect(margin),
		Text:         clampRect(text),
	}
}

func clampRect(r Rect) Rect {
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}
