package layout

// GeometrySink receives the page regions on every resize.
type GeometrySink interface {
	SetRegionGeometry(page, margin, text Rect)
}

// Calculator owns the viewport state. A resize replaces it and republishes
// the geometry; the last resize always wins.
type Calculator struct {
	page     Page
	geometry Geometry
}

// NewCalculator starts from an empty viewport.
func NewCalculator(page Page) *Calculator {
	c := &Calculator{page: page}
	c.geometry = page.Compute(Viewport{})
	return c
}

// Resize recomputes the geometry for a width×height pixel viewport and
// publishes it to sink when one is given.
func (c *Calculator) Resize(width, height int, sink GeometrySink) Geometry {
	c.geometry = c.page.Compute(Viewport{Width: width, Height: height})
	if sink != nil {
		g := c.geometry
		sink.SetRegionGeometry(g.Page, g.Margin, g.Text)
	}
	return c.geometry
}

// Geometry returns the geometry of the most recent resize.
func (c *Calculator) Geometry() Geometry {
	return c.geometry
}

// ContentWidth returns the text region width in pixels.
func (c *Calculator) ContentWidth() int {
	return c.geometry.ContentWidth
}

// RuleChars returns the current rule length in characters.
func (c *Calculator) RuleChars() int {
	return c.geometry.RuleChars()
}

// CellMetrics converts between terminal cells and the pixel units the page
// is measured in.
type CellMetrics struct {
	Width  int
	Height int
}

// DefaultCellMetrics matches one rule glyph per column.
func DefaultCellMetrics() CellMetrics {
	return CellMetrics{Width: ruleGlyphWidth, Height: 12}
}

func (m CellMetrics) normalized() CellMetrics {
	if m.Width <= 0 {
		m.Width = 1
	}
	if m.Height <= 0 {
		m.Height = 1
	}
	return m
}

// ToPixels converts a cell-sized viewport to pixels.
func (m CellMetrics) ToPixels(cols, rows int) (int, int) {
	m = m.normalized()
	return cols * m.Width, rows * m.Height
}

// ToCells converts a pixel rect to the cells it covers, rounding the origin
// down and the size to whole cells.
func (m CellMetrics) ToCells(r Rect) Rect {
	m = m.normalized()
	return Rect{
		X:      r.X / m.Width,
		Y:      r.Y / m.Height,
		Width:  r.Width / m.Width,
		Height: r.Height / m.Height,
	}
}
