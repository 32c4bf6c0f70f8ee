package stepmark

import (
	"image"
	"testing"
)

func TestRect_NormalizeIdempotent(t *testing.T) {
	tests := []Rect{
		R(0, 0, 10, 10),
		R(10, 10, 0, 0),
		R(5, -3, -7, 8),
		R(4, 4, 4, 4),
	}
	for _, r := range tests {
		n := r.Normalize()
		if n.X1 > n.X2 || n.Y1 > n.Y2 {
			t.Errorf("%v.Normalize() = %v, not ordered", r, n)
		}
		if n.Normalize() != n {
			t.Errorf("%v.Normalize() not idempotent", r)
		}
		if n.Dx() != r.Dx() || n.Dy() != r.Dy() {
			t.Errorf("%v: size changed by normalizing", r)
		}
	}
}

func TestRect_Geometry(t *testing.T) {
	r := R(30, 40, 10, 20)
	if r.Dx() != 20 || r.Dy() != 20 {
		t.Errorf("Dx,Dy = %d,%d, want 20,20", r.Dx(), r.Dy())
	}
	if r.Min() != Pt(10, 20) || r.Max() != Pt(30, 40) {
		t.Errorf("Min,Max = %v,%v", r.Min(), r.Max())
	}
	for _, p := range []Point{{10, 20}, {30, 40}, {20, 30}} {
		if !r.Contains(p) {
			t.Errorf("Contains(%v) = false, want true (edges inclusive)", p)
		}
	}
	for _, p := range []Point{{9, 20}, {31, 40}, {20, 41}} {
		if r.Contains(p) {
			t.Errorf("Contains(%v) = true, want false", p)
		}
	}
	if got := r.Inset(-6); got != R(4, 14, 36, 46) {
		t.Errorf("Inset(-6) = %v", got)
	}
	if got := r.Translate(1, -1); got != R(31, 39, 11, 19) {
		t.Errorf("Translate keeps corner order, got %v", got)
	}
}

func TestPoint(t *testing.T) {
	p := Pt(3, 4)
	if p.Add(Pt(1, 1)) != Pt(4, 5) || p.Sub(Pt(1, 1)) != Pt(2, 3) {
		t.Error("Add/Sub mismatch")
	}
	if p.Image() != image.Pt(3, 4) {
		t.Errorf("Image() = %v", p.Image())
	}
}

func TestBoundsOfPoints(t *testing.T) {
	got := boundsOfPoints([]Point{{5, 9}, {-2, 3}, {7, 4}})
	if got != R(-2, 3, 7, 9) {
		t.Errorf("boundsOfPoints = %v", got)
	}
}
