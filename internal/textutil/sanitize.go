package textutil

import "strings"

// invisibleLabels name the zero-width and bidi formatting runes that would
// otherwise hide or reorder parts of a file name.
var invisibleLabels = map[rune]string{
	0x00AD: "⟪SHY⟫",
	0x061C: "⟪ALM⟫",
	0x180E: "⟪MVS⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0x206A: "⟪ISS⟫",
	0x206B: "⟪ASS⟫",
	0x206C: "⟪IAFS⟫",
	0x206D: "⟪AAFS⟫",
	0x206E: "⟪NADS⟫",
	0x206F: "⟪NODS⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText makes text safe to draw in a single row. Line breaks
// become spaces, invisible formatting runes are labelled and any other C0 or
// C1 control character becomes '?', so names and file contents cannot emit
// escape sequences. Tabs are kept for ExpandTabs.
func SanitizeTerminalText(text string) string {
	idx := strings.IndexFunc(text, func(r rune) bool {
		_, unsafe := replacement(r)
		return unsafe
	})
	if idx < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)
	b.WriteString(text[:idx])
	for _, r := range text[idx:] {
		if repl, ok := replacement(r); ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func replacement(r rune) (string, bool) {
	switch {
	case r == '\t':
		return "", false
	case r == '\n' || r == '\r':
		return " ", true
	case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
		return "?", true
	}
	if label, ok := invisibleLabels[r]; ok {
		return label, true
	}
	return "", false
}
