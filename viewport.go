package stepmark

import (
	"image"
	"math"
)

// Viewport maps between image space and display space for one step.
//
// The visible part of the screenshot is the crop rectangle [X1,X2)×[Y1,Y2)
// in image space; it is shown scaled to the display size. Every length that
// must look the same at any zoom (stroke widths on screen, handle hit
// tolerance) is derived from the same Scale ratio.
type Viewport struct {
	crop    Rect // normalized, clamped, at least 1×1
	display image.Point
}

// NewViewport returns the viewport for a screenshot of the given size shown
// with an optional crop, scaled down (never up) to fit maxWidth display
// pixels. A maxWidth <= 0 disables the limit.
//
// The crop is normalized and clamped to the image; a degenerate crop becomes
// a 1×1 region so the mapping stays finite.
func NewViewport(imageSize image.Point, crop *Rect, maxWidth int) Viewport {
	c := clampCrop(imageSize, crop)
	cw, ch := c.X2-c.X1, c.Y2-c.Y1

	ratio := 1.0
	if maxWidth > 0 {
		ratio = min(float64(maxWidth)/float64(cw), 1.0)
	}
	dw := max(1, int(float64(cw)*ratio))
	dh := max(1, int(float64(ch)*ratio))
	return Viewport{crop: c, display: image.Pt(dw, dh)}
}

// clampCrop resolves the effective crop region for an image, treating a nil
// crop as the whole image.
func clampCrop(size image.Point, crop *Rect) Rect {
	w, h := max(1, size.X), max(1, size.Y)
	if crop == nil {
		return Rect{X1: 0, Y1: 0, X2: w, Y2: h}
	}
	c := crop.Normalize()
	c.X1 = clampInt(c.X1, 0, w-1)
	c.Y1 = clampInt(c.Y1, 0, h-1)
	c.X2 = max(c.X1+1, min(c.X2, w))
	c.Y2 = max(c.Y1+1, min(c.Y2, h))
	return c
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Crop returns the effective crop rectangle in image space.
func (v Viewport) Crop() Rect { return v.crop }

// DisplaySize returns the display size in pixels.
func (v Viewport) DisplaySize() image.Point { return v.display }

// Scale returns the display pixels per image pixel along X.
func (v Viewport) Scale() float64 {
	return float64(v.display.X) / float64(v.crop.X2-v.crop.X1)
}

// ScaleLength converts an image-space length (a stroke width) to display
// pixels, never returning less than 1.
func (v Viewport) ScaleLength(n int) int {
	return max(1, int(float64(n)*v.Scale()))
}

// ImageToDisplay maps an image-space point to display space.
func (v Viewport) ImageToDisplay(p Point) Point {
	x, y := v.imageToDisplayF(p)
	return Point{X: int(math.Floor(x)), Y: int(math.Floor(y))}
}

func (v Viewport) imageToDisplayF(p Point) (float64, float64) {
	cw := float64(v.crop.X2 - v.crop.X1)
	ch := float64(v.crop.Y2 - v.crop.Y1)
	x := float64(p.X-v.crop.X1) * float64(v.display.X) / cw
	y := float64(p.Y-v.crop.Y1) * float64(v.display.Y) / ch
	return x, y
}

// DisplayToImage maps a display-space point to image space, flooring to
// whole pixels and clamping at zero.
func (v Viewport) DisplayToImage(p Point) Point {
	cw := float64(v.crop.X2 - v.crop.X1)
	ch := float64(v.crop.Y2 - v.crop.Y1)
	x := math.Floor(float64(v.crop.X1) + float64(p.X)*cw/float64(v.display.X))
	y := math.Floor(float64(v.crop.Y1) + float64(p.Y)*ch/float64(v.display.Y))
	return Point{X: max(0, int(x)), Y: max(0, int(y))}
}

// ImageRectToDisplay maps both corners of r to display space, preserving
// their order.
func (v Viewport) ImageRectToDisplay(r Rect) Rect {
	a := v.ImageToDisplay(Point{X: r.X1, Y: r.Y1})
	b := v.ImageToDisplay(Point{X: r.X2, Y: r.Y2})
	return Rect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}
