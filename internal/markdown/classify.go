package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxHeadingLevel = 6

// DefaultBullet is the glyph unordered list items are rewritten with.
const DefaultBullet = "•"

// Classification is the block role of one raw line and its text with the
// block markers removed.
type Classification struct {
	Role Role
	Text string
}

// ClassifyLine assigns a block role to line. next is the following raw line
// and isLast reports that there is none. The second result is false when the
// line is a blank that collapses away.
func ClassifyLine(line, next string, isLast bool) (Classification, bool) {
	return classifyLine(line, next, isLast, DefaultBullet)
}

func classifyLine(line, next string, isLast bool, bullet string) (Classification, bool) {
	if isBlankLine(line) {
		if isLast || !isBlankLine(next) {
			return Classification{}, false
		}
		return Classification{Role: RoleNone, Text: line}, true
	}

	if level, text, ok := parseHeading(line); ok {
		return Classification{Role: headingRole(level), Text: text}, true
	}

	if hasRulePrefix(line) {
		if isRuleLine(line) {
			return Classification{Role: RoleRule}, true
		}
		return Classification{Role: RoleNone, Text: line}, true
	}

	if rest, ok := unorderedItem(line); ok {
		return Classification{Role: RoleListItem, Text: "\t" + bullet + "  " + rest}, true
	}

	if text, ok := orderedItem(line); ok {
		return Classification{Role: RoleListItem, Text: text}, true
	}

	return Classification{Role: RoleNone, Text: line}, true
}

func isBlankLine(line string) bool {
	return line == "\n"
}

// parseHeading matches "#"×n followed by a single space, 1 <= n <= 6, and
// strips that prefix once.
func parseHeading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel {
		return 0, "", false
	}
	if level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	return level, line[level+1:], true
}

func hasRulePrefix(line string) bool {
	return strings.HasPrefix(line, "---") ||
		strings.HasPrefix(line, "___") ||
		strings.HasPrefix(line, "***")
}

// isRuleLine requires every character to repeat the first one, except the
// final two which are never inspected.
func isRuleLine(line string) bool {
	runes := []rune(line)
	first := runes[0]
	for i := 0; i < len(runes)-2; i++ {
		if runes[i] != first {
			return false
		}
	}
	return true
}

func unorderedItem(line string) (string, bool) {
	if strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- ") {
		return line[2:], true
	}
	return "", false
}

// orderedItem recognises one or more digits followed by '.', ensures a space
// after the dot and indents the line with a tab.
func orderedItem(line string) (string, bool) {
	digits := 0
	for i, r := range line {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' && digits > 0:
			after := i + 1
			if after < len(line) {
				if next, _ := utf8.DecodeRuneInString(line[after:]); next == ' ' {
					return "\t" + line, true
				}
			}
			return "\t" + line[:after] + " " + line[after:], true
		default:
			return "", false
		}
	}
	return "", false
}
