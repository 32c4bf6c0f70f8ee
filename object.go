package stepmark

import (
	"fmt"
	"math"
)

// MarkupKind distinguishes the two rectangle annotations.
type MarkupKind uint8

const (
	// Highlight draws a colored frame with a faint tinted fill.
	Highlight MarkupKind = iota + 1
	// Redact covers the region with an opaque near-black box. It is the only
	// annotation that permanently obscures content in exported images.
	Redact
)

// String returns the persisted tag of the kind.
func (k MarkupKind) String() string {
	switch k {
	case Highlight:
		return "highlight"
	case Redact:
		return "redact"
	default:
		return fmt.Sprintf("MarkupKind(%d)", uint8(k))
	}
}

// Object is an annotation stored in image space. The set of implementations
// is closed: RectMarkup and Stroke. Consumers switch over both exhaustively.
type Object interface {
	// Bounds returns the normalized axis-aligned bounding box.
	Bounds() Rect
	// Validate reports whether the object can be stored and rendered.
	Validate() error

	clone() Object
	sealed()
}

// RectMarkup is a highlight or redact box. The corners are stored in
// authoring order and may be unordered.
type RectMarkup struct {
	Kind  MarkupKind
	Color Color
	Width int
	X1    int
	Y1    int
	X2    int
	Y2    int
}

// NewRectMarkup returns markup of kind k covering r. The corners are
// normalized, which is how completed create gestures store them.
func NewRectMarkup(k MarkupKind, c Color, r Rect) RectMarkup {
	n := r.Normalize()
	return RectMarkup{Kind: k, Color: c, Width: markupWidth, X1: n.X1, Y1: n.Y1, X2: n.X2, Y2: n.Y2}
}

// markupWidth is the nominal outline width recorded on rectangle markup.
const markupWidth = 3

// Rect returns the corners as authored.
func (m RectMarkup) Rect() Rect {
	return Rect{X1: m.X1, Y1: m.Y1, X2: m.X2, Y2: m.Y2}
}

// Bounds implements Object.
func (m RectMarkup) Bounds() Rect { return m.Rect().Normalize() }

// Validate implements Object.
func (m RectMarkup) Validate() error {
	if m.Kind != Highlight && m.Kind != Redact {
		return fmt.Errorf("%w: markup kind %d", ErrInvalidObject, m.Kind)
	}
	if m.Width < 0 {
		return fmt.Errorf("%w: negative width %d", ErrInvalidObject, m.Width)
	}
	return nil
}

func (m RectMarkup) clone() Object { return m }
func (RectMarkup) sealed()         {}

// Stroke is a freehand pen stroke. A single point renders as a dot.
type Stroke struct {
	Color  Color
	Width  int
	Points []Point
}

// Bounds implements Object. An empty stroke has a zero bounding box.
func (s Stroke) Bounds() Rect {
	if len(s.Points) == 0 {
		return Rect{}
	}
	return boundsOfPoints(s.Points)
}

// Validate implements Object.
func (s Stroke) Validate() error {
	if len(s.Points) == 0 {
		return fmt.Errorf("%w: stroke has no points", ErrInvalidObject)
	}
	if s.Width < 1 {
		return fmt.Errorf("%w: stroke width %d", ErrInvalidObject, s.Width)
	}
	return nil
}

func (s Stroke) clone() Object {
	pts := make([]Point, len(s.Points))
	copy(pts, s.Points)
	s.Points = pts
	return s
}
func (Stroke) sealed() {}

// cloneObject returns a deep copy of o; nil stays nil.
func cloneObject(o Object) Object {
	if o == nil {
		return nil
	}
	return o.clone()
}

// objectColor returns the object's color.
func objectColor(o Object) Color {
	switch o := o.(type) {
	case RectMarkup:
		return o.Color
	case Stroke:
		return o.Color
	}
	return Color{}
}

// withColor returns a copy of o painted c.
func withColor(o Object, c Color) Object {
	switch o := o.(type) {
	case RectMarkup:
		o.Color = c
		return o
	case Stroke:
		s := o.clone().(Stroke)
		s.Color = c
		return s
	}
	return o
}

// translate returns a copy of o with every coordinate shifted by (dx, dy).
func translate(o Object, dx, dy int) Object {
	switch o := o.(type) {
	case RectMarkup:
		o.X1 += dx
		o.Y1 += dy
		o.X2 += dx
		o.Y2 += dy
		return o
	case Stroke:
		pts := make([]Point, len(o.Points))
		for i, p := range o.Points {
			pts[i] = Point{X: p.X + dx, Y: p.Y + dy}
		}
		o.Points = pts
		return o
	}
	return o
}

// minStrokeBox is the smallest width or height a stroke can be resized to.
const minStrokeBox = 5

// resize returns snap reshaped by dragging handle h by (dx, dy) image
// pixels. Rectangle markup moves only the coordinates the handle controls;
// strokes rescale every point from their bounding box at drag start
// (bbox) to the new box.
func resize(snap Object, bbox Rect, h Handle, dx, dy int) Object {
	ax, ok := handleAxesFor(h)
	if !ok {
		return snap
	}
	switch o := snap.(type) {
	case RectMarkup:
		o.X1 += dx * ax.x1
		o.Y1 += dy * ax.y1
		o.X2 += dx * ax.x2
		o.Y2 += dy * ax.y2
		return o
	case Stroke:
		b := bbox.Normalize()
		nx1, ny1 := b.X1+dx*ax.x1, b.Y1+dy*ax.y1
		nx2, ny2 := b.X2+dx*ax.x2, b.Y2+dy*ax.y2
		if nx2 < nx1+minStrokeBox {
			nx2 = nx1 + minStrokeBox
		}
		if ny2 < ny1+minStrokeBox {
			ny2 = ny1 + minStrokeBox
		}
		ow, oh := b.X2-b.X1, b.Y2-b.Y1
		if ow == 0 {
			ow = 1
		}
		if oh == 0 {
			oh = 1
		}
		sx := float64(nx2-nx1) / float64(ow)
		sy := float64(ny2-ny1) / float64(oh)
		pts := make([]Point, len(o.Points))
		for i, p := range o.Points {
			pts[i] = Point{
				X: nx1 + int(math.Floor(float64(p.X-b.X1)*sx)),
				Y: ny1 + int(math.Floor(float64(p.Y-b.Y1)*sy)),
			}
		}
		o.Points = pts
		return o
	}
	return snap
}
