// Package highlight colours text previews with chroma lexers.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// Segment is a run of text sharing one style.
type Segment struct {
	Text  string
	Style tcell.Style
}

// Line is one display line of segments, without the trailing newline.
type Line []Segment

// Highlighter tokenises text for a fixed chroma style.
type Highlighter struct {
	style *chroma.Style
}

// New returns a Highlighter using the named chroma style. Unknown names use
// chroma's fallback style.
func New(styleName string) *Highlighter {
	return &Highlighter{style: styles.Get(styleName)}
}

// Highlight colours text when a lexer is registered for path's file name. It
// returns nil when no lexer applies or tokenising fails, and the caller then
// shows plain text.
func (h *Highlighter) Highlight(path, text string) []Line {
	lexer := lexers.Match(path)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}

	var out []Line
	for _, tokens := range chroma.SplitTokensIntoLines(it.Tokens()) {
		line := make(Line, 0, len(tokens))
		for _, tok := range tokens {
			value := strings.TrimRight(tok.Value, "\n")
			if value == "" {
				continue
			}
			line = append(line, Segment{Text: value, Style: h.styleFor(tok.Type)})
		}
		out = append(out, line)
	}
	// lexers may append a newline, leaving an extra empty line
	want := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		want++
	}
	if len(out) > want {
		out = out[:want]
	}
	return out
}

func (h *Highlighter) styleFor(tt chroma.TokenType) tcell.Style {
	entry := h.style.Get(tt)
	st := tcell.StyleDefault
	if entry.Colour.IsSet() {
		st = st.Foreground(toColor(entry.Colour))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

func toColor(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
