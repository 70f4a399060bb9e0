// Package config defines mdread settings and resolves them from defaults,
// a YAML file and MDREAD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kk-code-lab/mdread/internal/layout"
	"github.com/kk-code-lab/mdread/internal/logging"
	"github.com/kk-code-lab/mdread/internal/markdown"
	"github.com/kk-code-lab/mdread/internal/textutil"
)

// ColorMode controls styled output of the render command.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// PageConfig holds the page metrics in pixels.
type PageConfig struct {
	MaxWidth    int `yaml:"max_width"`
	OuterMargin int `yaml:"outer_margin"`
	InsetX      int `yaml:"inset_x"`
	InsetY      int `yaml:"inset_y"`
}

// RenderConfig holds settings for non-interactive output.
type RenderConfig struct {
	// Width is the column count used when stdout is not a terminal.
	Width int `yaml:"width"`
}

// Config is the root configuration structure.
type Config struct {
	LogLevel string `yaml:"log_level"`
	// LogFile receives viewer logs; the viewer owns the terminal so logs are
	// discarded when this is empty.
	LogFile string `yaml:"log_file"`

	CellWidth        int       `yaml:"cell_width"`
	CellHeight       int       `yaml:"cell_height"`
	TabWidth         int       `yaml:"tab_width"`
	Bullet           string    `yaml:"bullet"`
	ParagraphSpacing int       `yaml:"paragraph_spacing"`
	Color            ColorMode `yaml:"color"`

	Page   PageConfig   `yaml:"page"`
	Render RenderConfig `yaml:"render"`
}

// NewConfig returns the defaults.
func NewConfig() *Config {
	page := layout.DefaultPage()
	cells := layout.DefaultCellMetrics()
	return &Config{
		LogLevel:         "info",
		CellWidth:        cells.Width,
		CellHeight:       cells.Height,
		TabWidth:         textutil.DefaultTabWidth,
		Bullet:           markdown.DefaultBullet,
		ParagraphSpacing: 1,
		Color:            ColorAuto,
		Page: PageConfig{
			MaxWidth:    page.MaxWidth,
			OuterMargin: page.OuterMargin,
			InsetX:      page.InsetX,
			InsetY:      page.InsetY,
		},
		Render: RenderConfig{Width: 80},
	}
}

// LayoutPage converts the page settings for the layout package.
func (c *Config) LayoutPage() layout.Page {
	return layout.Page{
		MaxWidth:    c.Page.MaxWidth,
		OuterMargin: c.Page.OuterMargin,
		InsetX:      c.Page.InsetX,
		InsetY:      c.Page.InsetY,
	}
}

// CellMetrics returns the terminal cell size in page pixels.
func (c *Config) CellMetrics() layout.CellMetrics {
	return layout.CellMetrics{Width: c.CellWidth, Height: c.CellHeight}
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks value ranges and names the offending key.
func (c *Config) Validate() error {
	var problems []string
	if !logging.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("log_level: unknown level %q", c.LogLevel))
	}
	if !c.Color.IsValid() {
		problems = append(problems, fmt.Sprintf("color: must be auto, always or never, got %q", c.Color))
	}
	positive := []struct {
		key   string
		value int
	}{
		{"cell_width", c.CellWidth},
		{"cell_height", c.CellHeight},
		{"tab_width", c.TabWidth},
		{"page.max_width", c.Page.MaxWidth},
		{"render.width", c.Render.Width},
	}
	for _, p := range positive {
		if p.value <= 0 {
			problems = append(problems, fmt.Sprintf("%s: must be positive, got %d", p.key, p.value))
		}
	}
	nonNegative := []struct {
		key   string
		value int
	}{
		{"paragraph_spacing", c.ParagraphSpacing},
		{"page.outer_margin", c.Page.OuterMargin},
		{"page.inset_x", c.Page.InsetX},
		{"page.inset_y", c.Page.InsetY},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			problems = append(problems, fmt.Sprintf("%s: must not be negative, got %d", p.key, p.value))
		}
	}
	if c.Bullet == "" {
		problems = append(problems, "bullet: must not be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
