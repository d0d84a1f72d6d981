package imaging

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
)

// HalfBlock draws two vertical pixels per cell with the upper half block
// glyph, foreground for the top pixel and background for the bottom one.
type HalfBlock struct{}

func (HalfBlock) Name() string { return "halfblock" }

func (HalfBlock) New(img image.Image) Protocol {
	return &halfBlockProtocol{encoded: encoded{src: img}}
}

type halfBlockProtocol struct {
	encoded
}

func (p *halfBlockProtocol) ResizeEncode(area Rect, mode ResizeMode) {
	if area.Empty() {
		p.remember(area, mode, nil)
		return
	}
	w, h, from := target(p.src.Bounds(), area.W, area.H*2, mode)
	if w == 0 {
		p.remember(area, mode, nil)
		return
	}
	px := scaleInto(p.src, from, w, h, draw.CatmullRom)

	rows := (h + 1) / 2
	cells := make([][]cell, rows)
	for row := 0; row < rows; row++ {
		line := make([]cell, w)
		for x := 0; x < w; x++ {
			top := colorAt(px, x, row*2)
			bottom := tcell.ColorDefault
			if row*2+1 < h {
				bottom = colorAt(px, x, row*2+1)
			}
			line[x] = cell{r: '▀', style: tcell.StyleDefault.Foreground(top).Background(bottom)}
		}
		cells[row] = line
	}
	p.remember(area, mode, cells)
}

// colorAt maps mostly transparent pixels to the terminal default.
func colorAt(px *image.RGBA, x, y int) tcell.Color {
	c := px.RGBAAt(x, y)
	if c.A < 128 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
