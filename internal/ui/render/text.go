package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func runeCells(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w < 0 {
		return 0
	}
	return w
}

// drawTextLine writes text from startX, never past maxWidth cells, and returns
// the column after the last cell written. Zero-width runes are attached to the
// preceding cell as combining characters.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		w := runeCells(mainc)
		if x-startX+w > maxWidth {
			break
		}
		i++

		var combc []rune
		for i < len(runes) && runeCells(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

// fillRow paints cells [fromX, toX) of row y with blanks.
func (r *Renderer) fillRow(fromX, toX, y int, style tcell.Style) {
	for x := fromX; x < toX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawRow writes text and pads the rest of the width with style.
func (r *Renderer) drawRow(startX, y, width int, text string, style tcell.Style) {
	end := r.drawTextLine(startX, y, width, text, style)
	r.fillRow(end, startX+width, y, style)
}
