package stepmark

// Handle identifies one of the eight resize handles on a selected object's
// bounding box, numbered row by row from the top-left.
type Handle int

// Handle positions.
const (
	HandleNone Handle = iota - 1
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleLeft
	HandleRight
	HandleBottomLeft
	HandleBottom
	HandleBottomRight
)

// handleCount is the number of resize handles.
const handleCount = 8

// handleAxes says which of (x1, y1, x2, y2) follow the pointer, as 0/1
// multipliers of the drag delta.
type handleAxes struct {
	x1, y1, x2, y2 int
}

var handleTable = [handleCount]handleAxes{
	HandleTopLeft:     {1, 1, 0, 0},
	HandleTop:         {0, 1, 0, 0},
	HandleTopRight:    {0, 1, 1, 0},
	HandleLeft:        {1, 0, 0, 0},
	HandleRight:       {0, 0, 1, 0},
	HandleBottomLeft:  {1, 0, 0, 1},
	HandleBottom:      {0, 0, 0, 1},
	HandleBottomRight: {0, 0, 1, 1},
}

func handleAxesFor(h Handle) (handleAxes, bool) {
	if h < 0 || int(h) >= handleCount {
		return handleAxes{}, false
	}
	return handleTable[h], true
}

// String returns a short name for the handle.
func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTop:
		return "top"
	case HandleTopRight:
		return "top-right"
	case HandleLeft:
		return "left"
	case HandleRight:
		return "right"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleBottom:
		return "bottom"
	case HandleBottomRight:
		return "bottom-right"
	default:
		return "none"
	}
}

// handleCenter is a handle position in display space. Edge midpoints fall
// on half pixels, so positions are kept fractional.
type handleCenter struct {
	X, Y float64
}

// handleCenters returns the eight handle positions for a display-space box.
func handleCenters(box Rect) [handleCount]handleCenter {
	b := box.Normalize()
	x1, y1, x2, y2 := float64(b.X1), float64(b.Y1), float64(b.X2), float64(b.Y2)
	mx, my := (x1+x2)/2, (y1+y2)/2
	return [handleCount]handleCenter{
		{x1, y1}, {mx, y1}, {x2, y1},
		{x1, my}, {x2, my},
		{x1, y2}, {mx, y2}, {x2, y2},
	}
}

// findHandle returns the first handle of a display-space box within tol
// display pixels of p (Chebyshev distance).
func findHandle(p Point, box Rect, tol int) Handle {
	px, py := float64(p.X), float64(p.Y)
	t := float64(tol)
	for i, c := range handleCenters(box) {
		if abs(px-c.X) <= t && abs(py-c.Y) <= t {
			return Handle(i)
		}
	}
	return HandleNone
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
