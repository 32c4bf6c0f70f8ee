package raster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Extract copies region r of src into a new opaque canvas whose origin is
// r.Min. Translucent sources lose their alpha: each pixel keeps its
// straight color and becomes fully opaque. Parts of r outside src are
// black.
func Extract(src image.Image, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, xdraw.Src)

	in := r.Intersect(src.Bounds())
	if in.Empty() {
		return dst
	}
	to := in.Sub(r.Min)
	if o, ok := src.(interface{ Opaque() bool }); ok && o.Opaque() {
		xdraw.Draw(dst, to, src, in.Min, xdraw.Src)
		return dst
	}
	for y := in.Min.Y; y < in.Max.Y; y++ {
		for x := in.Min.X; x < in.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			c.A = 255
			dst.SetRGBA(x-r.Min.X, y-r.Min.Y, color.RGBA(c))
		}
	}
	return dst
}
