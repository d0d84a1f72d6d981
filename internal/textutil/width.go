// Package textutil measures, fits and sanitises text for terminal cells.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is the tab stop used by text previews.
const DefaultTabWidth = 4

const ellipsis = "…"

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += runewidth.RuneWidth(ru)
	}
	return builder.String()
}

// DisplayWidth reports the printable width of text accounting for wide runes
// and grapheme clusters.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to width columns, marking the cut with an ellipsis.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return ellipsis
	}
	return runewidth.Truncate(text, width, ellipsis)
}

// TruncateLeft keeps the end of text, which is the useful part of a path.
func TruncateLeft(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return ellipsis
	}
	return runewidth.TruncateLeft(text, runewidth.StringWidth(text)-width+1, ellipsis)
}

// PadRight fills text with spaces up to width columns, truncating if needed.
func PadRight(text string, width int) string {
	text = Truncate(text, width)
	if gap := width - runewidth.StringWidth(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}
