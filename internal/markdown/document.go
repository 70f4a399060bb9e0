package markdown

import "strings"

// Role is the block-level category assigned to a rendered line.
type Role int

const (
	RoleNone Role = iota
	RoleH1
	RoleH2
	RoleH3
	RoleH4
	RoleH5
	RoleH6
	RoleListItem
	RoleParagraph
	RoleRule
)

var roleNames = [...]string{
	RoleNone:      "",
	RoleH1:        "h1",
	RoleH2:        "h2",
	RoleH3:        "h3",
	RoleH4:        "h4",
	RoleH5:        "h5",
	RoleH6:        "h6",
	RoleListItem:  "list",
	RoleParagraph: "p",
	RoleRule:      "hr",
}

// String returns the tag name the render surfaces key their styles on.
func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return ""
	}
	return roleNames[r]
}

// HeadingLevel reports 1..6 for heading roles and 0 otherwise.
func (r Role) HeadingLevel() int {
	if r >= RoleH1 && r <= RoleH6 {
		return int(r-RoleH1) + 1
	}
	return 0
}

// IsBlock reports whether the role ends an open paragraph.
func (r Role) IsBlock() bool {
	return r != RoleNone
}

func headingRole(level int) Role {
	return RoleH1 + Role(level-1)
}

// Style is a character-level emphasis applied through a Span.
type Style int

const (
	StyleBold Style = iota
	StyleItalic
)

func (s Style) String() string {
	switch s {
	case StyleBold:
		return "b"
	case StyleItalic:
		return "i"
	default:
		return ""
	}
}

// Span styles the half-open rune range [Start, End) of a line's display text.
type Span struct {
	Style Style
	Start int
	End   int
}

// LineRecord is one rendered line. Synthetic lines (rule fills and spacers)
// have no counterpart in the input document.
type LineRecord struct {
	Index     int
	Role      Role
	Text      string
	Spans     []Span
	Synthetic bool
}

// ParagraphSpan covers the records [StartLine, EndLine) of one run of
// flowing text.
type ParagraphSpan struct {
	StartLine int
	EndLine   int
}

// Document is the result of one load pass.
type Document struct {
	Records    []LineRecord
	Paragraphs []ParagraphSpan
	// Suppressed counts blank input lines that produced no record.
	Suppressed int
	// Unmatched counts emphasis delimiters left visible in the output.
	Unmatched int
}

// RuleText synthesizes the underscore line for a rule of n characters.
func RuleText(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat("_", n) + "\n"
}

// Reflow rewrites every rule line for a new rule length. Nothing is
// re-parsed, so it is safe to call on every resize.
func (d *Document) Reflow(ruleChars int) {
	text := RuleText(ruleChars)
	for i := range d.Records {
		if d.Records[i].Role == RoleRule {
			d.Records[i].Text = text
		}
	}
}

// SourceLineCount returns the number of input lines the document accounts
// for: every non-synthetic record plus every suppressed blank line.
func (d *Document) SourceLineCount() int {
	n := d.Suppressed
	for _, rec := range d.Records {
		if !rec.Synthetic {
			n++
		}
	}
	return n
}
