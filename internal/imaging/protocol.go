// Package imaging renders decoded images as terminal cells. Resizing and
// encoding run on a single worker goroutine; the session keeps exclusive
// ownership of each protocol object through a versioned Handle.
package imaging

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

// Canvas receives rendered cells. tcell.Screen satisfies it.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Rect is a screen area in cells.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the area has no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// ResizeMode controls how an image is scaled into an area.
type ResizeMode int

const (
	// Fit scales the whole image into the area, never enlarging it.
	Fit ResizeMode = iota
	// Crop fills the area, cutting the centred overflow.
	Crop
)

// ParseResizeMode maps a config value to a mode; unknown values fit.
func ParseResizeMode(s string) ResizeMode {
	if s == "crop" {
		return Crop
	}
	return Fit
}

// Protocol is an image prepared for one terminal backend. A Protocol is not
// safe for concurrent use: exactly one goroutine may hold it at a time.
type Protocol interface {
	// NeedsResize reports whether the encoded cells were produced for a
	// different area size or mode.
	NeedsResize(area Rect, mode ResizeMode) bool
	// ResizeEncode rescales the source image and encodes cells for area.
	ResizeEncode(area Rect, mode ResizeMode)
	// Render draws the encoded cells at area's origin, clipped to area.
	Render(c Canvas, area Rect)
}

// Backend creates protocols for one rendering technique.
type Backend interface {
	Name() string
	New(img image.Image) Protocol
}

type cell struct {
	r     rune
	style tcell.Style
}

// encoded is the shared cell buffer of the built-in backends.
type encoded struct {
	src   image.Image
	cells [][]cell
	w, h  int
	mode  ResizeMode
	valid bool
}

func (e *encoded) NeedsResize(area Rect, mode ResizeMode) bool {
	return !e.valid || e.w != area.W || e.h != area.H || e.mode != mode
}

func (e *encoded) Render(c Canvas, area Rect) {
	for y, row := range e.cells {
		if y >= area.H {
			break
		}
		for x, cl := range row {
			if x >= area.W {
				break
			}
			c.SetContent(area.X+x, area.Y+y, cl.r, nil, cl.style)
		}
	}
}

func (e *encoded) remember(area Rect, mode ResizeMode, cells [][]cell) {
	e.cells = cells
	e.w, e.h, e.mode = area.W, area.H, mode
	e.valid = true
}
