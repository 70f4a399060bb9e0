package state

import (
	"testing"

	"github.com/kk-code-lab/mdread/internal/layout"
	"github.com/kk-code-lab/mdread/internal/markdown"
)

func TestPageBufferDropsWritesOutsidePass(t *testing.T) {
	b := NewPageBuffer()

	b.AppendStyledLine("ignored\n", markdown.RoleNone, nil)
	b.ApplyParagraph(markdown.ParagraphSpan{StartLine: 0, EndLine: 1})
	b.Clear()
	if b.Len() != 0 || len(b.Paragraphs()) != 0 {
		t.Fatalf("writes outside a pass should be dropped")
	}
	if b.Dropped() != 3 {
		t.Fatalf("Dropped=%d want 3", b.Dropped())
	}

	release := b.Acquire()
	if !b.Writable() {
		t.Fatalf("buffer should be writable inside a pass")
	}
	b.AppendStyledLine("kept\n", markdown.RoleH2, nil)
	release()

	if b.Writable() {
		t.Fatalf("release should end write access")
	}
	if b.Len() != 1 || b.Lines()[0].Role != markdown.RoleH2 || b.Passes() != 1 {
		t.Fatalf("lines=%+v passes=%d", b.Lines(), b.Passes())
	}
}

func TestPageBufferRenderReplacesContent(t *testing.T) {
	b := NewPageBuffer()
	markdown.Render(markdown.Parse([]string{"old\n", "text\n"}, markdown.RenderContext{}), b)
	markdown.Render(markdown.Parse([]string{"# new\n"}, markdown.RenderContext{RuleChars: 3}), b)

	if b.Len() != 3 {
		t.Fatalf("lines=%+v", b.Lines())
	}
	if b.Lines()[0].Text != "new\n" || b.Lines()[1].Text != "___\n" {
		t.Fatalf("lines=%+v", b.Lines())
	}
	if len(b.Paragraphs()) != 0 {
		t.Fatalf("stale paragraphs survived: %+v", b.Paragraphs())
	}
}

func TestPageBufferTakesGeometry(t *testing.T) {
	b := NewPageBuffer()
	calc := layout.NewCalculator(layout.DefaultPage())
	g := calc.Resize(1000, 600, b)
	b.SetViewport(g.Viewport)

	page, margin, text := b.Regions()
	if page != g.Page || margin != g.Margin || text != g.Text {
		t.Fatalf("regions not published: %+v %+v %+v", page, margin, text)
	}
	if b.ViewportSize() != (layout.Viewport{Width: 1000, Height: 600}) {
		t.Fatalf("viewport=%+v", b.ViewportSize())
	}
}
