package markdown

// paragraphAggregator folds contiguous RoleNone records into ParagraphSpans.
type paragraphAggregator struct {
	open  bool
	start int
}

// observe feeds the record about to be emitted at index. It returns a closed
// span when a block role ends the current paragraph.
func (a *paragraphAggregator) observe(role Role, index int) (ParagraphSpan, bool) {
	if !role.IsBlock() {
		if !a.open {
			a.open = true
			a.start = index
		}
		return ParagraphSpan{}, false
	}
	return a.close(index)
}

// close ends the open paragraph, if any, at end (exclusive).
func (a *paragraphAggregator) close(end int) (ParagraphSpan, bool) {
	if !a.open {
		return ParagraphSpan{}, false
	}
	a.open = false
	return ParagraphSpan{StartLine: a.start, EndLine: end}, true
}
