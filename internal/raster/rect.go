package raster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// box converts inclusive corners to a half-open rectangle clipped to dst.
func box(dst *image.RGBA, x1, y1, x2, y2 int) image.Rectangle {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return image.Rect(x1, y1, x2+1, y2+1).Intersect(dst.Bounds())
}

// FillRect paints the inclusive box [x1,x2]×[y1,y2] with c, replacing what
// was there.
func FillRect(dst *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	r := box(dst, x1, y1, x2, y2)
	if r.Empty() {
		return
	}
	xdraw.Draw(dst, r, image.NewUniform(c), image.Point{}, xdraw.Src)
}

// OutlineRect paints a frame w pixels wide along the inside of the
// inclusive box [x1,x2]×[y1,y2]. A box too small to have a hole is filled.
func OutlineRect(dst *image.RGBA, x1, y1, x2, y2, w int, c color.RGBA) {
	if w <= 0 {
		return
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if x2-x1+1 <= 2*w || y2-y1+1 <= 2*w {
		FillRect(dst, x1, y1, x2, y2, c)
		return
	}
	FillRect(dst, x1, y1, x2, y1+w-1, c)     // top
	FillRect(dst, x1, y2-w+1, x2, y2, c)     // bottom
	FillRect(dst, x1, y1+w, x1+w-1, y2-w, c) // left
	FillRect(dst, x2-w+1, y1+w, x2, y2-w, c) // right
}

// BlendRect composites c over the inclusive box [x1,x2]×[y1,y2] at the
// opacity given by c.A. c is not premultiplied.
func BlendRect(dst *image.RGBA, x1, y1, x2, y2 int, c color.NRGBA) {
	r := box(dst, x1, y1, x2, y2)
	if r.Empty() || c.A == 0 {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := dst.PixOffset(r.Min.X, y)
		row := dst.Pix[i : i+4*r.Dx() : i+4*r.Dx()]
		for j := 0; j < len(row); j += 4 {
			row[j+0] = blend(c.R, row[j+0], c.A)
			row[j+1] = blend(c.G, row[j+1], c.A)
			row[j+2] = blend(c.B, row[j+2], c.A)
			row[j+3] = blend(255, row[j+3], c.A)
		}
	}
}
