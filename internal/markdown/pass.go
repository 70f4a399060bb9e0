package markdown

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/kk-code-lab/mdread/internal/logging"
)

// ErrSourceUnavailable reports that no document could be read. The surface
// is left exactly as it was.
var ErrSourceUnavailable = errors.New("document source unavailable")

// Surface receives the rendered document.
type Surface interface {
	// Acquire enables writes for one pass; the returned func disables them
	// again and must always be called.
	Acquire() (release func())
	Clear()
	AppendStyledLine(text string, role Role, spans []Span)
	ApplyParagraph(span ParagraphSpan)
}

// Source supplies the raw lines of a document, each with its terminator.
type Source interface {
	Lines() ([]string, error)
}

// RenderContext carries the per-pass settings that used to be globals.
type RenderContext struct {
	// RuleChars is the underscore count of a synthesized rule line.
	RuleChars int
	// Bullet replaces "* " and "- " list markers. Empty means DefaultBullet.
	Bullet string
	Logger *log.Logger
}

func (rc RenderContext) bullet() string {
	if rc.Bullet == "" {
		return DefaultBullet
	}
	return rc.Bullet
}

// builder accumulates records; the next render index is len(records).
type builder struct {
	rc   RenderContext
	doc  Document
	para paragraphAggregator
	// prevBlank is set when the previous raw line was blank, so a run of
	// blank lines keeps only its first one.
	prevBlank bool
}

func (b *builder) next() int { return len(b.doc.Records) }

func (b *builder) append(rec LineRecord) {
	rec.Index = b.next()
	b.doc.Records = append(b.doc.Records, rec)
}

func (b *builder) closeParagraph(span ParagraphSpan, ok bool) {
	if ok {
		b.doc.Paragraphs = append(b.doc.Paragraphs, span)
	}
}

// synthesizeRule appends a rule fill and the blank spacer beneath it.
func (b *builder) synthesizeRule(fromInput bool) {
	b.append(LineRecord{Role: RoleRule, Text: RuleText(b.rc.RuleChars), Synthetic: !fromInput})
	b.append(LineRecord{Role: RoleNone, Text: "\n", Synthetic: true})
}

func (b *builder) line(raw, next string, isLast bool) {
	blank := isBlankLine(raw)
	collapsed := blank && b.prevBlank
	b.prevBlank = blank

	cls, ok := classifyLine(raw, next, isLast, b.rc.bullet())
	if !ok || collapsed {
		b.doc.Suppressed++
		return
	}

	b.closeParagraph(b.para.observe(cls.Role, b.next()))

	if cls.Role == RoleRule {
		b.synthesizeRule(true)
		return
	}

	inline := ResolveInline(cls.Text)
	if len(inline.Unmatched) > 0 {
		b.doc.Unmatched += len(inline.Unmatched)
		if b.rc.Logger != nil {
			b.rc.Logger.Debug("unmatched emphasis delimiters",
				logging.FieldLine, b.next(), logging.FieldOffsets, inline.Unmatched)
		}
	}
	b.append(LineRecord{Role: cls.Role, Text: inline.Text, Spans: inline.Spans})

	if cls.Role == RoleH1 || cls.Role == RoleH2 {
		b.synthesizeRule(false)
	}
}

// Parse classifies and resolves every line of a document.
func Parse(lines []string, rc RenderContext) Document {
	b := &builder{rc: rc}
	for i, raw := range lines {
		next := ""
		isLast := i == len(lines)-1
		if !isLast {
			next = lines[i+1]
		}
		b.line(raw, next, isLast)
	}
	b.closeParagraph(b.para.close(b.next()))
	return b.doc
}

// Render writes doc to s, replacing whatever the surface held.
func Render(doc Document, s Surface) {
	release := s.Acquire()
	defer release()

	s.Clear()
	for _, rec := range doc.Records {
		s.AppendStyledLine(rec.Text, rec.Role, rec.Spans)
	}
	for _, p := range doc.Paragraphs {
		s.ApplyParagraph(p)
	}
}

// Load reads src and renders it onto s. When the source fails nothing is
// rendered and the error wraps ErrSourceUnavailable.
func Load(ctx context.Context, src Source, rc RenderContext, s Surface) (Document, error) {
	logger := logging.FromContext(ctx)
	if rc.Logger == nil {
		rc.Logger = logger
	}

	if src == nil {
		return Document{}, ErrSourceUnavailable
	}
	lines, err := src.Lines()
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	doc := Parse(lines, rc)
	Render(doc, s)

	logger.Debug("document rendered",
		logging.FieldLines, len(lines),
		logging.FieldSuppressed, doc.Suppressed,
		logging.FieldRecords, len(doc.Records),
		logging.FieldParagraphs, len(doc.Paragraphs),
		logging.FieldUnmatched, doc.Unmatched,
	)
	return doc, nil
}
