package stepmark

import (
	"image"
	"testing"
)

func TestNewViewport(t *testing.T) {
	tests := []struct {
		name     string
		size     image.Point
		crop     *Rect
		maxWidth int
		wantCrop Rect
		wantDisp image.Point
	}{
		{"identity", image.Pt(800, 600), nil, 860, R(0, 0, 800, 600), image.Pt(800, 600)},
		{"scaled down", image.Pt(1720, 1000), nil, 860, R(0, 0, 1720, 1000), image.Pt(860, 500)},
		{"never upscaled", image.Pt(1920, 1080), &Rect{100, 100, 300, 200}, 860, R(100, 100, 300, 200), image.Pt(200, 100)},
		{"unordered crop", image.Pt(100, 100), &Rect{60, 70, 10, 20}, 860, R(10, 20, 60, 70), image.Pt(50, 50)},
		{"clamped crop", image.Pt(100, 80), &Rect{-5, 50, 500, 500}, 860, R(0, 50, 100, 80), image.Pt(100, 30)},
		{"origin outside", image.Pt(100, 80), &Rect{150, 150, 300, 300}, 860, R(99, 79, 100, 80), image.Pt(1, 1)},
		{"degenerate", image.Pt(100, 80), &Rect{10, 10, 10, 10}, 860, R(10, 10, 11, 11), image.Pt(1, 1)},
		{"no limit", image.Pt(2000, 10), nil, 0, R(0, 0, 2000, 10), image.Pt(2000, 10)},
		{"thin", image.Pt(1720, 3), nil, 860, R(0, 0, 1720, 3), image.Pt(860, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := NewViewport(tt.size, tt.crop, tt.maxWidth)
			if vp.Crop() != tt.wantCrop {
				t.Errorf("Crop() = %v, want %v", vp.Crop(), tt.wantCrop)
			}
			if vp.DisplaySize() != tt.wantDisp {
				t.Errorf("DisplaySize() = %v, want %v", vp.DisplaySize(), tt.wantDisp)
			}
		})
	}
}

func TestViewport_Mapping(t *testing.T) {
	crop := Rect{200, 100, 1920, 1100}
	vp := NewViewport(image.Pt(1920, 1080), &crop, 860)
	// crop clamps to 1720×980 and is shown at half size
	if vp.DisplaySize() != image.Pt(860, 490) {
		t.Fatalf("DisplaySize() = %v", vp.DisplaySize())
	}
	if got := vp.ImageToDisplay(Pt(400, 300)); got != Pt(100, 100) {
		t.Errorf("ImageToDisplay = %v, want (100,100)", got)
	}
	if got := vp.DisplayToImage(Pt(100, 100)); got != Pt(400, 300) {
		t.Errorf("DisplayToImage = %v, want (400,300)", got)
	}
	if got := vp.ScaleLength(10); got != 5 {
		t.Errorf("ScaleLength(10) = %d, want 5", got)
	}
	if got := vp.ScaleLength(1); got != 1 {
		t.Errorf("ScaleLength(1) = %d, want at least 1", got)
	}
	if got := vp.ImageRectToDisplay(R(400, 300, 200, 100)); got != R(100, 100, 0, 0) {
		t.Errorf("ImageRectToDisplay = %v", got)
	}
}

// Points left of or above the crop map to negative display coordinates,
// rounded toward negative infinity so a box straddling the crop edge keeps
// its on-screen size.
func TestViewport_ImageToDisplayFloorsOutsideCrop(t *testing.T) {
	crop := Rect{100, 100, 1820, 1100}
	vp := NewViewport(image.Pt(3440, 2000), &crop, 860)
	tests := []struct {
		p, want Point
	}{
		{Pt(99, 99), Pt(-1, -1)},
		{Pt(98, 100), Pt(-1, 0)},
		{Pt(97, 101), Pt(-2, 0)},
		{Pt(101, 101), Pt(0, 0)},
	}
	for _, tt := range tests {
		if got := vp.ImageToDisplay(tt.p); got != tt.want {
			t.Errorf("ImageToDisplay(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestViewport_DisplayToImageClampsAtZero(t *testing.T) {
	vp := NewViewport(image.Pt(100, 100), nil, 860)
	if got := vp.DisplayToImage(Pt(-20, -1)); got != Pt(0, 0) {
		t.Errorf("DisplayToImage = %v, want (0,0)", got)
	}
}

// Mapping a display point to image space and back recovers it within one
// pixel, for any crop and display size.
func TestViewport_RoundTrip(t *testing.T) {
	sizes := []image.Point{{1920, 1080}, {801, 599}, {3000, 1234}, {37, 23}}
	crops := []*Rect{nil, {0, 0, 50, 50}, {13, 7, 1011, 777}, {500, 300, 2999, 1233}}
	widths := []int{860, 333, 0, 1}

	for _, size := range sizes {
		for _, crop := range crops {
			for _, w := range widths {
				vp := NewViewport(size, crop, w)
				d := vp.DisplaySize()
				for y := 0; y < d.Y; y += max(1, d.Y/17) {
					for x := 0; x < d.X; x += max(1, d.X/17) {
						p := Pt(x, y)
						back := vp.ImageToDisplay(vp.DisplayToImage(p))
						if iabs(back.X-p.X) > 1 || iabs(back.Y-p.Y) > 1 {
							t.Fatalf("size %v crop %v width %d: %v -> %v -> %v",
								size, crop, w, p, vp.DisplayToImage(p), back)
						}
					}
				}
			}
		}
	}
}
