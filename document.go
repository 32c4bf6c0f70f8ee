package stepmark

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// StepID is a stable step identifier. It does not change when steps are
// inserted, removed or reordered around it.
type StepID string

// NewStepID returns a fresh random identifier.
func NewStepID() StepID {
	return StepID(uuid.NewString())
}

// Selection is the selection state of one step: at most one selected
// object, the handle being dragged, and the drag snapshot while a move or
// resize is in progress.
type Selection struct {
	// Object is the selected object index, or -1.
	Object int
	// Handle is the handle being dragged, or HandleNone.
	Handle Handle
	// Drag is set between the press and release of a move or resize.
	Drag *DragSnapshot
}

// DragSnapshot records what a move or resize gesture started from.
type DragSnapshot struct {
	Object Object // copy of the object before the drag
	Bounds Rect   // its bounding box, image space
	Start  Point  // pointer at press, image space
}

// noSelection is the empty selection.
var noSelection = Selection{Object: -1, Handle: HandleNone}

// Selected returns the selected object index.
func (s Selection) Selected() (int, bool) {
	return s.Object, s.Object >= 0
}

// stepEntry is everything the engine keeps for one step.
type stepEntry struct {
	state StepState
	undo  []StepState
	sel   Selection
}

// Document owns the annotation state, undo stacks and selections of an
// ordered list of steps.
//
// Every mutating store operation first pushes a snapshot of the step's
// state, so PopUndo restores exactly what was there before. Mutations on a
// stale step or object index fail with ErrUnknownStep or ErrObjectIndex and
// leave the document unchanged.
//
// Document is not safe for concurrent use; drive it from the goroutine that
// owns the interactive view.
type Document struct {
	opts  options
	order []StepID
	steps map[StepID]*stepEntry
}

// NewDocument creates an empty document.
func NewDocument(opts ...Option) *Document {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Document{
		opts:  o,
		steps: make(map[StepID]*stepEntry),
	}
}

// MaxDisplayWidth returns the configured preview width limit.
func (d *Document) MaxDisplayWidth() int { return d.opts.maxDisplayWidth }

// Len returns the number of steps.
func (d *Document) Len() int { return len(d.order) }

// Steps returns the step identifiers in document order.
func (d *Document) Steps() []StepID { return slices.Clone(d.order) }

// StepAt returns the identifier of the step at position i.
func (d *Document) StepAt(i int) (StepID, bool) {
	if i < 0 || i >= len(d.order) {
		return "", false
	}
	return d.order[i], true
}

// IndexOf returns the position of a step.
func (d *Document) IndexOf(id StepID) (int, bool) {
	i := slices.Index(d.order, id)
	return i, i >= 0
}

// AddStep appends a step with empty annotation state.
func (d *Document) AddStep() StepID {
	id := NewStepID()
	d.order = append(d.order, id)
	d.steps[id] = &stepEntry{sel: noSelection}
	return id
}

// InsertStep inserts a step with empty annotation state at position at
// (0 <= at <= Len()).
func (d *Document) InsertStep(at int) (StepID, error) {
	if at < 0 || at > len(d.order) {
		return "", fmt.Errorf("%w: insert position %d", ErrUnknownStep, at)
	}
	id := NewStepID()
	d.order = slices.Insert(d.order, at, id)
	d.steps[id] = &stepEntry{sel: noSelection}
	return id, nil
}

// RemoveStep deletes a step together with its state and undo stack.
func (d *Document) RemoveStep(id StepID) error {
	i, ok := d.IndexOf(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStep, id)
	}
	d.order = slices.Delete(d.order, i, i+1)
	delete(d.steps, id)
	Logger().Debug("stepmark: step removed", "step", id, "index", i)
	return nil
}

// MoveStep moves the step at position from to position to. Annotations
// travel with their step. Like any global renumbering, it clears every
// step's undo stack and selection.
func (d *Document) MoveStep(from, to int) error {
	n := len(d.order)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d -> %d", ErrUnknownStep, from, to)
	}
	if from == to {
		return nil
	}
	id := d.order[from]
	d.order = slices.Delete(d.order, from, from+1)
	d.order = slices.Insert(d.order, to, id)
	for _, e := range d.steps {
		e.undo = nil
		e.sel = noSelection
	}
	Logger().Debug("stepmark: step moved", "step", id, "from", from, "to", to)
	return nil
}

func (d *Document) entry(id StepID) (*stepEntry, error) {
	e, ok := d.steps[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStep, id)
	}
	return e, nil
}

// State returns a deep copy of a step's annotation state.
func (d *Document) State(id StepID) (StepState, error) {
	e, err := d.entry(id)
	if err != nil {
		return StepState{}, err
	}
	return e.state.Clone(), nil
}

// LoadState replaces a step's state wholesale without recording undo, as
// when a saved session is opened. The undo stack and selection are reset.
func (d *Document) LoadState(id StepID, st StepState) error {
	e, err := d.entry(id)
	if err != nil {
		return err
	}
	if err := st.Validate(); err != nil {
		return err
	}
	e.state = st.Clone()
	e.undo = nil
	e.sel = noSelection
	return nil
}

// AppendObject adds o on top of the step's z-order.
func (d *Document) AppendObject(id StepID, o Object) error {
	e, err := d.entry(id)
	if err != nil {
		return err
	}
	if o == nil {
		return fmt.Errorf("%w: nil object", ErrInvalidObject)
	}
	if err := o.Validate(); err != nil {
		return err
	}
	d.push(id, e)
	e.state.Objects = append(e.state.Objects, cloneObject(o))
	return nil
}

// RemoveObject deletes the object at index i; later objects shift down by
// one. A selection at or beyond i is cleared.
func (d *Document) RemoveObject(id StepID, i int) error {
	e, err := d.entry(id)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(e.state.Objects) {
		return fmt.Errorf("%w: %d of %d", ErrObjectIndex, i, len(e.state.Objects))
	}
	d.push(id, e)
	e.state.Objects = slices.Delete(e.state.Objects, i, i+1)
	if e.sel.Object >= i {
		e.sel = noSelection
	}
	return nil
}

// ReplaceObject overwrites the object at index i.
func (d *Document) ReplaceObject(id StepID, i int, o Object) error {
	e, err := d.entry(id)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(e.state.Objects) {
		return fmt.Errorf("%w: %d of %d", ErrObjectIndex, i, len(e.state.Objects))
	}
	if o == nil {
		return fmt.Errorf("%w: nil object", ErrInvalidObject)
	}
	if err := o.Validate(); err != nil {
		return err
	}
	d.push(id, e)
	e.state.Objects[i] = cloneObject(o)
	return nil
}

// RecolorObject paints the object at index i with c.
func (d *Document) RecolorObject(id StepID, i int, c Color) error {
	e, err := d.entry(id)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(e.state.Objects) {
		return fmt.Errorf("%w: %d of %d", ErrObjectIndex, i, len(e.state.Objects))
	}
	d.push(id, e)
	e.state.Objects[i] = withColor(e.state.Objects[i], c)
	return nil
}

// SetCrop sets or, with a nil crop, clears the step's crop. A crop that is
// not larger than the minimum crop size on both axes is rejected with
// ErrInvalidGeometry and the state is left as it was. Clearing a step that
// has no crop is a no-op.
func (d *Document) SetCrop(id StepID, crop *Rect) error {
	e, err := d.entry(id)
	if err != nil {
		return err
	}
	if crop == nil {
		if e.state.Crop == nil {
			return nil
		}
		d.push(id, e)
		e.state.Crop = nil
		return nil
	}
	c := crop.Normalize()
	if !d.cropLargeEnough(c) {
		return fmt.Errorf("%w: crop %dx%d", ErrInvalidGeometry, c.Dx(), c.Dy())
	}
	d.push(id, e)
	e.state.Crop = &c
	return nil
}

// ResetCrop removes the step's crop and reports whether there was one.
func (d *Document) ResetCrop(id StepID) bool {
	e, err := d.entry(id)
	if err != nil || e.state.Crop == nil {
		return false
	}
	return d.SetCrop(id, nil) == nil
}

func (d *Document) cropLargeEnough(c Rect) bool {
	return c.Dx() > d.opts.minCropSize && c.Dy() > d.opts.minCropSize
}

// PushUndo records a snapshot of the step's current state.
func (d *Document) PushUndo(id StepID) error {
	e, err := d.entry(id)
	if err != nil {
		return err
	}
	d.push(id, e)
	return nil
}

func (d *Document) push(id StepID, e *stepEntry) {
	e.undo = append(e.undo, e.state.Clone())
	Logger().Debug("stepmark: undo pushed", "step", id, "depth", len(e.undo))
}

// dropUndo discards the newest snapshot without applying it.
func (d *Document) dropUndo(e *stepEntry) {
	if n := len(e.undo); n > 0 {
		e.undo = e.undo[:n-1]
	}
}

// PopUndo restores the newest snapshot and clears the selection. It returns
// false when there is nothing to undo, including when the snapshot turns
// out to be corrupt; a corrupt snapshot is discarded and logged.
func (d *Document) PopUndo(id StepID) bool {
	e, err := d.entry(id)
	if err != nil || len(e.undo) == 0 {
		return false
	}
	n := len(e.undo)
	snap := e.undo[n-1]
	e.undo = e.undo[:n-1]
	if err := snap.Validate(); err != nil {
		Logger().Warn("stepmark: undo snapshot discarded",
			"step", id, "err", fmt.Errorf("%w: %w", ErrCorruptSnapshot, err))
		return false
	}
	e.state = snap
	e.sel = noSelection
	Logger().Debug("stepmark: undo applied", "step", id, "depth", len(e.undo))
	return true
}

// ClearUndo empties the step's undo stack.
func (d *Document) ClearUndo(id StepID) {
	if e, err := d.entry(id); err == nil {
		e.undo = nil
	}
}

// UndoDepth returns the number of snapshots on the step's undo stack.
func (d *Document) UndoDepth(id StepID) int {
	e, err := d.entry(id)
	if err != nil {
		return 0
	}
	return len(e.undo)
}

// Selection returns the step's selection state.
func (d *Document) Selection(id StepID) Selection {
	e, err := d.entry(id)
	if err != nil {
		return noSelection
	}
	return e.sel
}

// Select makes object i the step's only selected object.
func (d *Document) Select(id StepID, i int) error {
	e, err := d.entry(id)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(e.state.Objects) {
		return fmt.Errorf("%w: %d of %d", ErrObjectIndex, i, len(e.state.Objects))
	}
	e.sel = Selection{Object: i, Handle: HandleNone}
	return nil
}

// Deselect clears the step's selection.
func (d *Document) Deselect(id StepID) {
	if e, err := d.entry(id); err == nil {
		e.sel = noSelection
	}
}

// selectedObject returns the selected object, if the selection is valid.
func (e *stepEntry) selectedObject() (int, Object, bool) {
	i := e.sel.Object
	if i < 0 || i >= len(e.state.Objects) {
		return -1, nil, false
	}
	return i, e.state.Objects[i], true
}

// HitTestHandle returns the handle of the step's selected object under the
// display-space point p. The tolerance is measured in display pixels, so
// the same pointer offset finds the same handle at any crop or zoom.
func (d *Document) HitTestHandle(id StepID, vp Viewport, p Point) (Handle, bool) {
	e, err := d.entry(id)
	if err != nil {
		return HandleNone, false
	}
	_, o, ok := e.selectedObject()
	if !ok {
		return HandleNone, false
	}
	box := vp.ImageRectToDisplay(o.Bounds())
	h := findHandle(p, box, d.opts.handleTolerance)
	return h, h != HandleNone
}

// HitTestObject returns the topmost (most recently created) object whose
// padded bounding box contains the display-space point p.
func (d *Document) HitTestObject(id StepID, vp Viewport, p Point) (int, bool) {
	e, err := d.entry(id)
	if err != nil {
		return -1, false
	}
	ip := vp.DisplayToImage(p)
	pad := d.opts.hitPadding
	for i := len(e.state.Objects) - 1; i >= 0; i-- {
		if e.state.Objects[i].Bounds().Inset(-pad).Contains(ip) {
			return i, true
		}
	}
	return -1, false
}
