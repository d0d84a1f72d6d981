package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// target computes the pixel grid for an image drawn into a box of boxW x boxH
// square units, together with the source rectangle to sample from.
func target(src image.Rectangle, boxW, boxH int, mode ResizeMode) (w, h int, from image.Rectangle) {
	iw, ih := src.Dx(), src.Dy()
	if iw <= 0 || ih <= 0 || boxW <= 0 || boxH <= 0 {
		return 0, 0, src
	}

	if mode == Crop {
		// widest centred window of the box's aspect ratio
		cw, ch := iw, iw*boxH/boxW
		if ch > ih {
			ch = ih
			cw = ih * boxW / boxH
		}
		if cw < 1 {
			cw = 1
		}
		if ch < 1 {
			ch = 1
		}
		x0 := src.Min.X + (iw-cw)/2
		y0 := src.Min.Y + (ih-ch)/2
		return boxW, boxH, image.Rect(x0, y0, x0+cw, y0+ch)
	}

	w, h = iw, ih
	if w > boxW || h > boxH {
		if iw*boxH > ih*boxW {
			w = boxW
			h = ih * boxW / iw
		} else {
			h = boxH
			w = iw * boxH / ih
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h, src
}

func scaleInto(src image.Image, from image.Rectangle, w, h int, interp draw.Interpolator) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	interp.Scale(dst, dst.Bounds(), src, from, draw.Src, nil)
	return dst
}
