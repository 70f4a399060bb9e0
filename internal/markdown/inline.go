package markdown

import "sort"

// Inline is the result of resolving emphasis on one line.
type Inline struct {
	Text  string
	Spans []Span
	// Unmatched holds the rune offsets, in the input text, of delimiters
	// that were left in place.
	Unmatched []int
}

type openerKind int

const (
	openerSingle openerKind = iota
	// openerDouble is two adjacent identical delimiters at pos and pos+1
	// waiting for a closing pair.
	openerDouble
)

type opener struct {
	kind openerKind
	char rune
	pos  int
}

type delimiterStack []opener

func (s *delimiterStack) push(o opener) { *s = append(*s, o) }

func (s *delimiterStack) pop() opener {
	top := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return top
}

// peek returns the entry depth places below the top; depth 0 is the top.
func (s delimiterStack) peek(depth int) (opener, bool) {
	i := len(s) - 1 - depth
	if i < 0 {
		return opener{}, false
	}
	return s[i], true
}

// rawSpan is a styled range in input offsets, before delimiter removal.
type rawSpan struct {
	style      Style
	start, end int
}

func isDelimiter(r rune) bool {
	return r == '*' || r == '_'
}

// ResolveInline pairs '*' and '_' delimiters in text, removes the matched
// ones and returns bold and italic spans over the remaining text. Crossing
// or unmatched delimiters produce no span and stay visible.
func ResolveInline(text string) Inline {
	runes := []rune(text)
	var (
		stack   delimiterStack
		spans   []rawSpan
		deleted = make(map[int]struct{})
	)

	for pos, r := range runes {
		if !isDelimiter(r) {
			continue
		}
		top, ok := stack.peek(0)
		if !ok || top.kind != openerSingle || top.char != r {
			stack.push(opener{kind: openerSingle, char: r, pos: pos})
			continue
		}

		if pos != top.pos+1 {
			stack.pop()
			spans = append(spans, rawSpan{style: StyleItalic, start: top.pos + 1, end: pos})
			deleted[top.pos] = struct{}{}
			deleted[pos] = struct{}{}
			continue
		}

		// Adjacent pair: either it closes a pending double opener of the same
		// character, or it becomes one.
		stack.pop()
		if below, ok := stack.peek(0); ok && below.kind == openerDouble && below.char == r {
			stack.pop()
			spans = append(spans, rawSpan{style: StyleBold, start: below.pos + 2, end: top.pos})
			for _, p := range []int{below.pos, below.pos + 1, top.pos, pos} {
				deleted[p] = struct{}{}
			}
			continue
		}
		stack.push(opener{kind: openerDouble, char: r, pos: top.pos})
	}

	out := Inline{}
	for _, o := range stack {
		out.Unmatched = append(out.Unmatched, o.pos)
		if o.kind == openerDouble {
			out.Unmatched = append(out.Unmatched, o.pos+1)
		}
	}
	sort.Ints(out.Unmatched)

	out.Text, out.Spans = stripDelimiters(runes, deleted, spans)
	return out
}

// stripDelimiters removes the deleted offsets from runes and translates span
// offsets into the shortened text.
func stripDelimiters(runes []rune, deleted map[int]struct{}, spans []rawSpan) (string, []Span) {
	if len(deleted) == 0 {
		return string(runes), nil
	}

	// shift[i] is the number of deleted runes before offset i.
	shift := make([]int, len(runes)+1)
	kept := make([]rune, 0, len(runes)-len(deleted))
	for i, r := range runes {
		shift[i+1] = shift[i]
		if _, ok := deleted[i]; ok {
			shift[i+1]++
			continue
		}
		kept = append(kept, r)
	}

	out := make([]Span, 0, len(spans))
	for _, sp := range spans {
		start := sp.start - shift[sp.start]
		end := sp.end - shift[sp.end]
		if end <= start {
			continue
		}
		out = append(out, Span{Style: sp.style, Start: start, End: end})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End > out[j].End
	})
	return string(kept), out
}
