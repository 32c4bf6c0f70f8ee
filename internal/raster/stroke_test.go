package raster

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestStrokePolyline_Dot(t *testing.T) {
	img := newCanvas(20, 20, white)
	StrokePolyline(img, []image.Point{{10, 10}}, 6, red)

	if got := img.RGBAAt(10, 10); got != red {
		t.Errorf("center = %v, want %v", got, red)
	}
	if got := img.RGBAAt(0, 0); got != white {
		t.Errorf("far pixel = %v, want white", got)
	}
	if got := img.RGBAAt(10, 16); got != white {
		t.Errorf("pixel beyond radius = %v, want white", got)
	}
}

func TestStrokePolyline_Segment(t *testing.T) {
	img := newCanvas(40, 20, white)
	StrokePolyline(img, []image.Point{{5, 10}, {35, 10}}, 4, red)

	for x := 5; x <= 35; x++ {
		if got := img.RGBAAt(x, 10); got != red {
			t.Fatalf("(%d,10) = %v, want red", x, got)
		}
	}
	if got := img.RGBAAt(20, 2); got != white {
		t.Errorf("(20,2) = %v, want white", got)
	}
}

// Overlapping segments of a back-and-forth stroke must not cancel out.
func TestStrokePolyline_OverlapUnions(t *testing.T) {
	img := newCanvas(40, 20, white)
	StrokePolyline(img, []image.Point{{5, 10}, {35, 10}, {5, 10}}, 4, red)

	if got := img.RGBAAt(20, 10); got != red {
		t.Errorf("(20,10) = %v, want red", got)
	}
}

func TestStrokePolyline_StaysOpaque(t *testing.T) {
	img := newCanvas(30, 30, white)
	StrokePolyline(img, []image.Point{{3, 3}, {25, 17}, {8, 26}}, 5, red)
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("pixel %d alpha = %d, want 255", i/4, img.Pix[i])
		}
	}
}

func TestStrokePolyline_Deterministic(t *testing.T) {
	pts := []image.Point{{2, 4}, {17, 9}, {30, 28}, {5, 22}}
	a := newCanvas(32, 32, white)
	b := newCanvas(32, 32, white)
	StrokePolyline(a, pts, 7, red)
	StrokePolyline(b, pts, 7, red)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("identical strokes produced different pixels")
	}
}

func TestStrokePolyline_OffCanvas(t *testing.T) {
	img := newCanvas(10, 10, white)
	StrokePolyline(img, []image.Point{{100, 100}, {120, 100}}, 5, red)
	StrokePolyline(img, nil, 5, red)
	StrokePolyline(img, []image.Point{{5, 5}}, 0, red)
	for i := 0; i < len(img.Pix); i += 4 {
		if c := (color.RGBA{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}); c != white {
			t.Fatalf("pixel %d = %v, want white", i/4, c)
		}
	}
}

func TestSignedArea(t *testing.T) {
	cw := [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if a := signedArea(cw); a <= 0 {
		t.Errorf("signedArea = %v, want > 0", a)
	}
	ccw := [][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	if a := signedArea(ccw); a >= 0 {
		t.Errorf("signedArea = %v, want < 0", a)
	}
}
