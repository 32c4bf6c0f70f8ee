package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// StrokePolyline paints a line of the given width through pts, with a
// round disc of diameter width at every point. The discs give the line
// round joins and caps, and make a single point render as a dot.
//
// Points are pixel positions; geometry is centered on pixel centers.
func StrokePolyline(dst *image.RGBA, pts []image.Point, width int, c color.RGBA) {
	if len(pts) == 0 || width < 1 {
		return
	}
	r := polylineBounds(pts, width).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	at := func(p image.Point) (float32, float32) {
		return float32(p.X-r.Min.X) + 0.5, float32(p.Y-r.Min.Y) + 0.5
	}

	half := float32(width) / 2
	for i := 1; i < len(pts); i++ {
		ax, ay := at(pts[i-1])
		bx, by := at(pts[i])
		segment(z, ax, ay, bx, by, half)
	}
	radius := float32(width/2) + 0.5
	for _, p := range pts {
		x, y := at(p)
		disc(z, x, y, radius)
	}
	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}

// polylineBounds returns the pixels a stroke can touch.
func polylineBounds(pts []image.Point, width int) image.Rectangle {
	b := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
	}
	pad := width/2 + 2
	return image.Rect(b.Min.X-pad, b.Min.Y-pad, b.Max.X+pad+1, b.Max.Y+pad+1)
}

// The rasterizer accumulates signed area and clamps its magnitude, so
// overlapping shapes union only when they share a winding. Every shape is
// emitted with positive area in y-down coordinates.

// segment adds the quad covering the segment a-b at half-width h.
func segment(z *vector.Rasterizer, ax, ay, bx, by, h float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*h, dx/l*h
	q := [4][2]float32{
		{ax + nx, ay + ny},
		{bx + nx, by + ny},
		{bx - nx, by - ny},
		{ax - nx, ay - ny},
	}
	if signedArea(q[:]) < 0 {
		q[1], q[3] = q[3], q[1]
	}
	z.MoveTo(q[0][0], q[0][1])
	z.LineTo(q[1][0], q[1][1])
	z.LineTo(q[2][0], q[2][1])
	z.LineTo(q[3][0], q[3][1])
	z.ClosePath()
}

// kappa places cubic control points so four arcs approximate a circle.
const kappa = 0.5522847498

// disc adds a circle of radius r centered at (x, y).
func disc(z *vector.Rasterizer, x, y, r float32) {
	k := r * kappa
	z.MoveTo(x+r, y)
	z.CubeTo(x+r, y+k, x+k, y+r, x, y+r)
	z.CubeTo(x-k, y+r, x-r, y+k, x-r, y)
	z.CubeTo(x-r, y-k, x-k, y-r, x, y-r)
	z.CubeTo(x+k, y-r, x+r, y-k, x+r, y)
	z.ClosePath()
}

// signedArea returns twice the shoelace area of a closed polygon.
func signedArea(pts [][2]float32) float32 {
	var a float32
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	return a
}
