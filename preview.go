package stepmark

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Preview returns img scaled down with Catmull-Rom resampling to at most
// maxWidth pixels wide, keeping its aspect ratio. Images that already fit,
// or a maxWidth <= 0, are returned at full size.
func Preview(img image.Image, maxWidth int) *image.RGBA {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		if rgba, ok := img.(*image.RGBA); ok {
			return rgba
		}
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
		return dst
	}

	h := max(1, b.Dy()*maxWidth/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
