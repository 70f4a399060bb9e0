package textutil

import "strings"

var formattingRuneLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// DisplayRunes returns what should be drawn for ru from document text.
// Control characters become '?' and bidi or zero-width formatting runes are
// spelled out so they cannot reorder the page. Tabs are passed through for
// the caller to expand.
func DisplayRunes(ru rune) []rune {
	if label, ok := formattingRuneLabels[ru]; ok {
		return []rune(label)
	}
	if ru == '\t' {
		return []rune{ru}
	}
	if ru < 0x20 || ru == 0x7f {
		return []rune{'?'}
	}
	return []rune{ru}
}

// SanitizeTerminalText replaces control characters so user-controlled text
// such as file names cannot inject escape sequences into the status line.
func SanitizeTerminalText(text string) string {
	clean := true
	for _, r := range text {
		if r == '\t' || r == '\n' || r == '\r' || r < 0x20 || r == 0x7f || isFormattingRune(r) {
			clean = false
			break
		}
	}
	if clean {
		return text
	}

	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		default:
			b.WriteString(string(DisplayRunes(r)))
		}
	}
	return b.String()
}

// TrimLineEnding drops one trailing "\n".
func TrimLineEnding(text string) string {
	return strings.TrimSuffix(text, "\n")
}

func isFormattingRune(r rune) bool {
	_, ok := formattingRuneLabels[r]
	return ok
}
