package stepmark

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/stepmark/internal/raster"
)

// Highlight and redact rendering parameters. Exported images depend on
// these exact values.
const (
	highlightMaxOutline = 5  // outlines are drawn at widths 5, 4, 3, 2, 1
	highlightFillAlpha  = 28 // ~11% tint over the box
	redactOutlineWidth  = 2
)

// Flatten composites st onto base and returns the result at the native
// resolution of the crop.
//
// The crop is normalized and clamped to the image (the origin stays inside
// it, the region is at least 1×1); objects are drawn oldest first. Output
// pixels are opaque: translucent screenshots lose their alpha. Flatten is
// pure and deterministic, so identical inputs give pixel-identical output,
// and it is safe to call from several goroutines on distinct states.
func Flatten(base image.Image, st StepState) *image.RGBA {
	b := base.Bounds()
	crop := clampCrop(b.Size(), st.Crop)
	region := image.Rect(crop.X1, crop.Y1, crop.X2, crop.Y2).Add(b.Min)

	dst := raster.Extract(base, region)
	for _, o := range st.Objects {
		render(dst, o, crop.X1, crop.Y1)
	}
	return dst
}

// render draws one object onto a canvas whose origin is image point
// (ox, oy).
func render(dst *image.RGBA, o Object, ox, oy int) {
	switch o := o.(type) {
	case RectMarkup:
		r := o.Bounds().Translate(-ox, -oy)
		switch o.Kind {
		case Highlight:
			c := o.Color.RGBA()
			for w := highlightMaxOutline; w >= 1; w-- {
				raster.OutlineRect(dst, r.X1, r.Y1, r.X2, r.Y2, w, c)
			}
			raster.BlendRect(dst, r.X1, r.Y1, r.X2, r.Y2,
				color.NRGBA{R: c.R, G: c.G, B: c.B, A: highlightFillAlpha})
		case Redact:
			raster.FillRect(dst, r.X1, r.Y1, r.X2, r.Y2, redactFill.RGBA())
			raster.OutlineRect(dst, r.X1, r.Y1, r.X2, r.Y2, redactOutlineWidth, redactOutline.RGBA())
		}
	case Stroke:
		pts := make([]image.Point, len(o.Points))
		for i, p := range o.Points {
			pts[i] = image.Pt(p.X-ox, p.Y-oy)
		}
		raster.StrokePolyline(dst, pts, o.Width, o.Color.RGBA())
	}
}

// Flatten renders step id with its base image from src.
//
// Steps without a screenshot fail with ErrTextOnly; unreadable or
// undecodable screenshots fail with ErrMissingBaseImage. The raster is nil
// whenever the error is not.
func (d *Document) Flatten(id StepID, src ImageSource) (*image.RGBA, error) {
	st, err := d.State(id)
	if err != nil {
		return nil, err
	}
	return flattenStep(id, st, src)
}

// flattenStep fetches the base image and flattens a settled snapshot.
func flattenStep(id StepID, st StepState, src ImageSource) (img *image.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("%w: step %s: %v", ErrMissingBaseImage, id, r)
			Logger().Error("stepmark: flatten panicked", "step", id, "panic", r)
		}
	}()

	base, err := src.BaseImage(id)
	switch {
	case errors.Is(err, ErrTextOnly):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("%w: step %s: %w", ErrMissingBaseImage, id, err)
	case base == nil || base.Bounds().Empty():
		return nil, fmt.Errorf("%w: step %s: empty image", ErrMissingBaseImage, id)
	}

	img = Flatten(base, st)
	Logger().Debug("stepmark: step flattened", "step", id,
		"objects", len(st.Objects), "size", img.Bounds().Size())
	return img, nil
}
