package stepmark

import "image"

// Point is an integer pixel position. Whether it lives in image space or in
// display space depends on the API that takes or returns it.
type Point struct {
	X, Y int
}

// Pt is a convenience function to create a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Image converts the point to an image.Point.
func (p Point) Image() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

// Rect is an axis-aligned box given by two corners. The corners are kept in
// the order they were authored; use Normalize before comparing or measuring.
// Both corners are inclusive, matching how markup is rasterized.
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// R is a convenience function to create a Rect.
func R(x1, y1, x2, y2 int) Rect {
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Normalize returns the rectangle with X1 <= X2 and Y1 <= Y2.
func (r Rect) Normalize() Rect {
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// Dx returns the normalized width (X2 - X1).
func (r Rect) Dx() int {
	n := r.Normalize()
	return n.X2 - n.X1
}

// Dy returns the normalized height (Y2 - Y1).
func (r Rect) Dy() int {
	n := r.Normalize()
	return n.Y2 - n.Y1
}

// Min returns the normalized top-left corner.
func (r Rect) Min() Point {
	n := r.Normalize()
	return Point{X: n.X1, Y: n.Y1}
}

// Max returns the normalized bottom-right corner.
func (r Rect) Max() Point {
	n := r.Normalize()
	return Point{X: n.X2, Y: n.Y2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	n := r.Normalize()
	return n.X1 <= p.X && p.X <= n.X2 && n.Y1 <= p.Y && p.Y <= n.Y2
}

// Inset returns the normalized rectangle grown by -d on every side.
// A negative d expands it.
func (r Rect) Inset(d int) Rect {
	n := r.Normalize()
	return Rect{X1: n.X1 + d, Y1: n.Y1 + d, X2: n.X2 - d, Y2: n.Y2 - d}
}

// Translate returns r shifted by (dx, dy), preserving corner order.
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X1: r.X1 + dx, Y1: r.Y1 + dy, X2: r.X2 + dx, Y2: r.Y2 + dy}
}

// boundsOfPoints returns the axis-aligned enclosure of pts.
// pts must not be empty.
func boundsOfPoints(pts []Point) Rect {
	b := Rect{X1: pts[0].X, Y1: pts[0].Y, X2: pts[0].X, Y2: pts[0].Y}
	for _, p := range pts[1:] {
		b.X1 = min(b.X1, p.X)
		b.Y1 = min(b.Y1, p.Y)
		b.X2 = max(b.X2, p.X)
		b.Y2 = max(b.Y2, p.Y)
	}
	return b
}
