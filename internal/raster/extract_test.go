package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestExtract_Opaque(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src.SetRGBA(3, 4, red)
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255
	}

	got := Extract(src, image.Rect(2, 2, 6, 7))
	if b := got.Bounds(); b != image.Rect(0, 0, 4, 5) {
		t.Fatalf("bounds = %v", b)
	}
	if c := got.RGBAAt(1, 2); c != red {
		t.Errorf("(1,2) = %v, want %v", c, red)
	}
}

func TestExtract_DropsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 10})

	got := Extract(src, src.Bounds())
	want := color.RGBA{200, 100, 50, 255}
	if c := got.RGBAAt(0, 0); c != want {
		t.Errorf("(0,0) = %v, want %v", c, want)
	}
	if c := got.RGBAAt(1, 1); c.A != 255 {
		t.Errorf("transparent pixel alpha = %d, want 255", c.A)
	}
}

func TestExtract_PaletteSource(t *testing.T) {
	pal := color.Palette{color.Black, color.RGBA{0, 255, 0, 255}}
	src := image.NewPaletted(image.Rect(0, 0, 3, 3), pal)
	src.SetColorIndex(1, 1, 1)

	got := Extract(src, image.Rect(1, 1, 3, 3))
	if c := got.RGBAAt(0, 0); c != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("(0,0) = %v, want green", c)
	}
}
