package stepmark

import (
	"fmt"
	"image"
)

// Tool is the active creation tool of an Editor.
type Tool uint8

// Available tools. ToolNone selects, moves and resizes existing objects.
const (
	ToolNone Tool = iota
	ToolHighlight
	ToolRedact
	ToolCrop
	ToolDraw
)

// String returns the tool name.
func (t Tool) String() string {
	switch t {
	case ToolNone:
		return "none"
	case ToolHighlight:
		return "highlight"
	case ToolRedact:
		return "redact"
	case ToolCrop:
		return "crop"
	case ToolDraw:
		return "draw"
	default:
		return fmt.Sprintf("Tool(%d)", uint8(t))
	}
}

// Mode is the gesture an Editor is in the middle of.
type Mode uint8

// Editor modes. Every gesture starts and ends in ModeIdle.
const (
	ModeIdle   Mode = iota
	ModeMove        // dragging the selected object
	ModeResize      // dragging a handle of the selected object
	ModeCreate      // rubber-banding a highlight or redact box
	ModeCrop        // rubber-banding a crop
	ModeDraw        // collecting freehand points
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeMove:
		return "move"
	case ModeResize:
		return "resize"
	case ModeCreate:
		return "create"
	case ModeCrop:
		return "crop"
	case ModeDraw:
		return "draw"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Cursor is a hover hint for the view.
type Cursor uint8

// Cursor hints.
const (
	CursorArrow Cursor = iota
	CursorMove
	CursorResize
	CursorCrosshair
)

// Style is the color and width given to newly created objects.
type Style struct {
	Color Color
	Width int // image px, strokes only
}

// DefaultStyle is the style a new Editor starts with.
var DefaultStyle = Style{Color: Red, Width: 3}

// Pending describes an unfinished create gesture in display space, for
// rubber-band feedback.
type Pending struct {
	Tool   Tool
	Rect   Rect    // highlight, redact and crop
	Points []Point // draw
	Width  int     // draw, display px
	Color  Color
}

// Gizmo is the selection frame and the eight handle squares of the
// selected object, in display space.
type Gizmo struct {
	Frame   Rect
	Handles [handleCount]Rect
}

// Editor turns display-space pointer events into edits of one step.
//
// The viewport is recomputed from the step's current crop on every event,
// so an Editor stays valid across crops, undo and resets. Gesture state
// that must survive undo (the selection and drag snapshot) lives in the
// Document; the Editor only keeps the in-progress rubber band or stroke.
type Editor struct {
	doc   *Document
	id    StepID
	size  image.Point
	tool  Tool
	style Style

	mode  Mode
	start Point   // display, press position of create and crop
	cur   Point   // display, last pointer position
	pts   []Point // display, stroke being drawn
}

// Editor returns an editor for step id, whose screenshot has the given size
// in pixels.
func (d *Document) Editor(id StepID, imageSize image.Point) (*Editor, error) {
	if _, err := d.entry(id); err != nil {
		return nil, err
	}
	return &Editor{doc: d, id: id, size: imageSize, style: DefaultStyle}, nil
}

// Step returns the step the editor is bound to.
func (e *Editor) Step() StepID { return e.id }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetTool switches the active tool. A gesture in progress is abandoned: an
// unfinished box or stroke is dropped together with its undo entry, while
// a move or resize keeps the geometry reached so far.
func (e *Editor) SetTool(t Tool) {
	if en, err := e.doc.entry(e.id); err == nil {
		e.abandon(en)
	}
	e.tool = t
}

// Style returns the style applied to new objects.
func (e *Editor) Style() Style { return e.style }

// SetStyle sets the style applied to new objects. A width below 1 keeps
// the current width.
func (e *Editor) SetStyle(s Style) {
	if s.Width < 1 {
		s.Width = e.style.Width
	}
	e.style = s
}

// Mode returns the gesture in progress.
func (e *Editor) Mode() Mode { return e.mode }

// Viewport returns the current image/display mapping of the step.
func (e *Editor) Viewport() Viewport {
	en, err := e.doc.entry(e.id)
	if err != nil {
		return NewViewport(e.size, nil, e.doc.opts.maxDisplayWidth)
	}
	return e.viewport(en)
}

func (e *Editor) viewport(en *stepEntry) Viewport {
	return NewViewport(e.size, en.state.Crop, e.doc.opts.maxDisplayWidth)
}

// Press starts a gesture at display point p.
//
// With ToolNone, a press on a handle of the selected object starts a
// resize, a press on any object selects it and starts a move, and a press
// on empty space deselects. Every other tool deselects and starts creating.
func (e *Editor) Press(p Point) error {
	en, err := e.doc.entry(e.id)
	if err != nil {
		return err
	}
	e.abandon(en)
	vp := e.viewport(en)
	e.start, e.cur = p, p

	if e.tool == ToolNone {
		if h, ok := e.doc.HitTestHandle(e.id, vp, p); ok {
			i, o, _ := en.selectedObject()
			e.beginDrag(en, vp, i, o, h, p)
			e.mode = ModeResize
			return nil
		}
		if i, ok := e.doc.HitTestObject(e.id, vp, p); ok {
			e.beginDrag(en, vp, i, en.state.Objects[i], HandleNone, p)
			e.mode = ModeMove
			return nil
		}
		en.sel = noSelection
		return nil
	}

	en.sel = noSelection
	switch e.tool {
	case ToolHighlight, ToolRedact:
		e.doc.push(e.id, en)
		e.mode = ModeCreate
	case ToolDraw:
		e.doc.push(e.id, en)
		e.pts = []Point{p}
		e.mode = ModeDraw
	case ToolCrop:
		e.mode = ModeCrop
	}
	return nil
}

func (e *Editor) beginDrag(en *stepEntry, vp Viewport, i int, o Object, h Handle, p Point) {
	e.doc.push(e.id, en)
	en.sel = Selection{
		Object: i,
		Handle: h,
		Drag: &DragSnapshot{
			Object: cloneObject(o),
			Bounds: o.Bounds(),
			Start:  vp.DisplayToImage(p),
		},
	}
}

// Drag continues the gesture at display point p.
func (e *Editor) Drag(p Point) error {
	en, err := e.doc.entry(e.id)
	if err != nil {
		return err
	}
	e.cur = p
	switch e.mode {
	case ModeDraw:
		e.pts = append(e.pts, p)
	case ModeMove, ModeResize:
		d := en.sel.Drag
		i := en.sel.Object
		if d == nil || i < 0 || i >= len(en.state.Objects) {
			return nil
		}
		c := e.viewport(en).DisplayToImage(p)
		dx, dy := c.X-d.Start.X, c.Y-d.Start.Y
		if e.mode == ModeMove {
			en.state.Objects[i] = translate(d.Object, dx, dy)
		} else {
			en.state.Objects[i] = resize(d.Object, d.Bounds, en.sel.Handle, dx, dy)
		}
	}
	return nil
}

// Release ends the gesture at display point p and commits its result.
//
// Boxes commit only when larger than the minimum markup size on both axes;
// a discarded box also discards the undo entry its press recorded. Crops
// commit only when larger than the minimum crop size. Strokes always
// commit, so a click leaves a dot.
func (e *Editor) Release(p Point) error {
	en, err := e.doc.entry(e.id)
	if err != nil {
		e.reset()
		return err
	}
	defer e.reset()
	vp := e.viewport(en)

	switch e.mode {
	case ModeCreate:
		a, b := vp.DisplayToImage(e.start), vp.DisplayToImage(p)
		limit := e.doc.opts.minMarkupSize
		if iabs(b.X-a.X) <= limit || iabs(b.Y-a.Y) <= limit {
			e.doc.dropUndo(en)
			Logger().Debug("stepmark: markup discarded", "step", e.id,
				"err", fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, iabs(b.X-a.X), iabs(b.Y-a.Y)))
			return nil
		}
		kind := Highlight
		if e.tool == ToolRedact {
			kind = Redact
		}
		m := NewRectMarkup(kind, e.style.Color, Rect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y})
		en.state.Objects = append(en.state.Objects, m)

	case ModeCrop:
		a, b := vp.DisplayToImage(e.start), vp.DisplayToImage(p)
		c := Rect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}.Normalize()
		if !e.doc.cropLargeEnough(c) {
			Logger().Debug("stepmark: crop discarded", "step", e.id,
				"err", fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, c.Dx(), c.Dy()))
			return nil
		}
		e.doc.push(e.id, en)
		en.state.Crop = &c

	case ModeDraw:
		pts := make([]Point, len(e.pts))
		for i, q := range e.pts {
			pts[i] = vp.DisplayToImage(q)
		}
		en.state.Objects = append(en.state.Objects, Stroke{
			Color:  e.style.Color,
			Width:  e.style.Width,
			Points: pts,
		})

	case ModeMove, ModeResize:
		en.sel.Drag = nil
		en.sel.Handle = HandleNone
	}
	return nil
}

// abandon ends a gesture in progress without committing it.
func (e *Editor) abandon(en *stepEntry) {
	switch e.mode {
	case ModeCreate, ModeDraw:
		e.doc.dropUndo(en)
	case ModeMove, ModeResize:
		en.sel.Drag = nil
		en.sel.Handle = HandleNone
	}
	e.reset()
}

func (e *Editor) reset() {
	e.mode = ModeIdle
	e.pts = nil
}

// Pending returns the unfinished box or stroke, if a create gesture is in
// progress.
func (e *Editor) Pending() (Pending, bool) {
	switch e.mode {
	case ModeCreate, ModeCrop:
		return Pending{
			Tool:  e.tool,
			Rect:  Rect{X1: e.start.X, Y1: e.start.Y, X2: e.cur.X, Y2: e.cur.Y},
			Color: e.style.Color,
		}, true
	case ModeDraw:
		return Pending{
			Tool:   ToolDraw,
			Points: append([]Point(nil), e.pts...),
			Width:  e.Viewport().ScaleLength(e.style.Width),
			Color:  e.style.Color,
		}, true
	}
	return Pending{}, false
}

// Cursor returns the hover hint for display point p.
func (e *Editor) Cursor(p Point) Cursor {
	if e.tool != ToolNone {
		return CursorCrosshair
	}
	vp := e.Viewport()
	if _, ok := e.doc.HitTestHandle(e.id, vp, p); ok {
		return CursorResize
	}
	if _, ok := e.doc.HitTestObject(e.id, vp, p); ok {
		return CursorMove
	}
	return CursorArrow
}

// Gizmo returns the selection frame and handle squares of the selected
// object.
func (e *Editor) Gizmo() (Gizmo, bool) {
	en, err := e.doc.entry(e.id)
	if err != nil {
		return Gizmo{}, false
	}
	_, o, ok := en.selectedObject()
	if !ok {
		return Gizmo{}, false
	}
	box := e.viewport(en).ImageRectToDisplay(o.Bounds()).Normalize()
	g := Gizmo{Frame: box.Inset(-2)}
	s := e.doc.opts.handleSize
	for i, c := range handleCenters(box) {
		x, y := int(c.X), int(c.Y)
		g.Handles[i] = Rect{X1: x - s, Y1: y - s, X2: x + s, Y2: y + s}
	}
	return g, true
}

// Selected returns the index of the selected object.
func (e *Editor) Selected() (int, bool) {
	return e.doc.Selection(e.id).Selected()
}

// Recolor paints the selected object c. It reports whether an object was
// selected.
func (e *Editor) Recolor(c Color) bool {
	i, ok := e.Selected()
	if !ok {
		return false
	}
	return e.doc.RecolorObject(e.id, i, c) == nil
}

// DeleteSelected removes the selected object.
func (e *Editor) DeleteSelected() bool {
	i, ok := e.Selected()
	if !ok {
		return false
	}
	return e.doc.RemoveObject(e.id, i) == nil
}

// ResetCrop removes the step's crop and reports whether there was one.
func (e *Editor) ResetCrop() bool {
	return e.doc.ResetCrop(e.id)
}

// Undo abandons any gesture in progress and restores the step's previous
// state.
func (e *Editor) Undo() bool {
	e.reset()
	return e.doc.PopUndo(e.id)
}

func iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
