package stepmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// StepState is the annotation state of one step: objects in z-order
// (creation order, oldest first) and an optional crop in image space.
type StepState struct {
	Objects []Object
	Crop    *Rect
}

// Clone returns a deep copy that shares no memory with s.
func (s StepState) Clone() StepState {
	out := StepState{}
	if s.Objects != nil {
		out.Objects = make([]Object, len(s.Objects))
		for i, o := range s.Objects {
			out.Objects[i] = cloneObject(o)
		}
	}
	if s.Crop != nil {
		c := *s.Crop
		out.Crop = &c
	}
	return out
}

// Validate checks every object and the crop.
func (s StepState) Validate() error {
	for i, o := range s.Objects {
		if o == nil {
			return fmt.Errorf("%w: object %d is nil", ErrInvalidObject, i)
		}
		if err := o.Validate(); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}
	return nil
}

// wireRect and wireStroke are the persisted object forms. Strokes are
// tagged "draw".
type wireRect struct {
	Type  string `json:"type"`
	Color Color  `json:"color"`
	Width int    `json:"width"`
	X1    int    `json:"x1"`
	Y1    int    `json:"y1"`
	X2    int    `json:"x2"`
	Y2    int    `json:"y2"`
}

type wireStroke struct {
	Type   string   `json:"type"`
	Color  Color    `json:"color"`
	Width  int      `json:"width"`
	Points [][2]int `json:"points"`
}

// wireObject accepts either form. Coordinates are read as numbers so that
// files whose strokes were resized by older writers (fractional points)
// still load; they are floored.
type wireObject struct {
	Type   string       `json:"type"`
	Color  Color        `json:"color"`
	Width  int          `json:"width"`
	X1     float64      `json:"x1"`
	Y1     float64      `json:"y1"`
	X2     float64      `json:"x2"`
	Y2     float64      `json:"y2"`
	Points [][2]float64 `json:"points"`
}

const strokeTag = "draw"

type wireState struct {
	Objects []json.RawMessage `json:"objects"`
	Crop    *Rect             `json:"crop"`
}

// MarshalJSON encodes the state as {"objects": [...], "crop": {...}|null}.
func (s StepState) MarshalJSON() ([]byte, error) {
	objs := make([]any, 0, len(s.Objects))
	for i, o := range s.Objects {
		w, err := marshalObject(o)
		if err != nil {
			return nil, fmt.Errorf("stepmark: encode object %d: %w", i, err)
		}
		objs = append(objs, w)
	}
	return json.Marshal(struct {
		Objects []any `json:"objects"`
		Crop    *Rect `json:"crop"`
	}{Objects: objs, Crop: s.Crop})
}

func marshalObject(o Object) (any, error) {
	switch o := o.(type) {
	case RectMarkup:
		if err := o.Validate(); err != nil {
			return nil, err
		}
		return wireRect{
			Type: o.Kind.String(), Color: o.Color, Width: o.Width,
			X1: o.X1, Y1: o.Y1, X2: o.X2, Y2: o.Y2,
		}, nil
	case Stroke:
		pts := make([][2]int, len(o.Points))
		for i, p := range o.Points {
			pts[i] = [2]int{p.X, p.Y}
		}
		return wireStroke{Type: strokeTag, Color: o.Color, Width: o.Width, Points: pts}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidObject, o)
}

// UnmarshalJSON decodes the persisted form. Missing fields mean "no
// objects, no crop". An object that cannot be decoded or fails validation
// is dropped and logged; the rest of the state still loads.
func (s *StepState) UnmarshalJSON(data []byte) error {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("stepmark: decode state: %w", err)
	}
	objs := make([]Object, 0, len(w.Objects))
	for i, raw := range w.Objects {
		o, err := unmarshalObject(raw)
		if err != nil {
			if !errors.Is(err, ErrInvalidObject) {
				err = fmt.Errorf("%w: %w", ErrInvalidObject, err)
			}
			Logger().Warn("stepmark: object dropped", "index", i, "err", err)
			continue
		}
		objs = append(objs, o)
	}
	s.Objects = objs
	s.Crop = nil
	if w.Crop != nil {
		c := *w.Crop
		s.Crop = &c
	}
	return nil
}

func unmarshalObject(raw json.RawMessage) (Object, error) {
	var w wireObject
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	floor := func(f float64) int { return int(math.Floor(f)) }

	var o Object
	switch w.Type {
	case Highlight.String(), Redact.String():
		kind := Highlight
		if w.Type == Redact.String() {
			kind = Redact
		}
		o = RectMarkup{
			Kind: kind, Color: w.Color, Width: w.Width,
			X1: floor(w.X1), Y1: floor(w.Y1), X2: floor(w.X2), Y2: floor(w.Y2),
		}
	case strokeTag:
		pts := make([]Point, len(w.Points))
		for i, p := range w.Points {
			pts[i] = Point{X: floor(p[0]), Y: floor(p[1])}
		}
		o = Stroke{Color: w.Color, Width: w.Width, Points: pts}
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidObject, w.Type)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}
