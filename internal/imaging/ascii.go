package imaging

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
)

const asciiRamp = " .:-=+*#%@"

// ASCII draws one luminance character per cell for terminals without colour.
type ASCII struct{}

func (ASCII) Name() string { return "ascii" }

func (ASCII) New(img image.Image) Protocol {
	return &asciiProtocol{encoded: encoded{src: img}}
}

type asciiProtocol struct {
	encoded
}

func (p *asciiProtocol) ResizeEncode(area Rect, mode ResizeMode) {
	if area.Empty() {
		p.remember(area, mode, nil)
		return
	}
	// cells are about twice as tall as wide
	w, h, from := target(p.src.Bounds(), area.W, area.H*2, mode)
	if w == 0 {
		p.remember(area, mode, nil)
		return
	}
	rows := (h + 1) / 2
	px := scaleInto(p.src, from, w, rows, draw.ApproxBiLinear)

	cells := make([][]cell, rows)
	for y := 0; y < rows; y++ {
		line := make([]cell, w)
		for x := 0; x < w; x++ {
			line[x] = cell{r: rampChar(px, x, y), style: tcell.StyleDefault}
		}
		cells[y] = line
	}
	p.remember(area, mode, cells)
}

func rampChar(px *image.RGBA, x, y int) rune {
	c := px.RGBAAt(x, y)
	if c.A < 128 {
		return ' '
	}
	lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	idx := lum * (len(asciiRamp) - 1) / 255
	return rune(asciiRamp[idx])
}
