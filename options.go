package stepmark

// Option configures a Document during creation.
//
// Example:
//
//	// Defaults: 860px preview width, 9px handle tolerance
//	doc := stepmark.NewDocument()
//
//	// Wider preview, larger touch targets
//	doc := stepmark.NewDocument(
//	    stepmark.WithMaxDisplayWidth(1280),
//	    stepmark.WithHandleTolerance(14),
//	)
type Option func(*options)

// options holds the interaction tunables shared by a Document's editors.
type options struct {
	maxDisplayWidth int // display px
	handleTolerance int // display px
	handleSize      int // display px, half side of a drawn handle
	hitPadding      int // image px
	minMarkupSize   int // image px, exclusive
	minCropSize     int // image px, exclusive
}

// defaultOptions returns the recorder's stock settings.
func defaultOptions() options {
	return options{
		maxDisplayWidth: 860,
		handleTolerance: 9,
		handleSize:      6,
		hitPadding:      6,
		minMarkupSize:   4,
		minCropSize:     10,
	}
}

// WithMaxDisplayWidth sets the widest a step is shown on screen. Wider crops
// are scaled down; narrower ones are shown 1:1.
func WithMaxDisplayWidth(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.maxDisplayWidth = px
		}
	}
}

// WithHandleTolerance sets how far, in display pixels, a press may land
// from a handle center and still grab it. Measuring in display space keeps
// pointer precision independent of crop and zoom.
func WithHandleTolerance(px int) Option {
	return func(o *options) {
		if px >= 0 {
			o.handleTolerance = px
		}
	}
}

// WithHandleSize sets the half side, in display pixels, of the handle
// squares reported by Editor.Gizmo.
func WithHandleSize(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.handleSize = px
		}
	}
}

// WithHitPadding sets how many image pixels around an object's bounding box
// still count as a hit.
func WithHitPadding(px int) Option {
	return func(o *options) {
		if px >= 0 {
			o.hitPadding = px
		}
	}
}

// WithMinMarkupSize sets the size a highlight or redact box must exceed on
// both axes to be kept.
func WithMinMarkupSize(px int) Option {
	return func(o *options) {
		if px >= 0 {
			o.minMarkupSize = px
		}
	}
}

// WithMinCropSize sets the size a crop must exceed on both axes to be kept.
func WithMinCropSize(px int) Option {
	return func(o *options) {
		if px >= 0 {
			o.minCropSize = px
		}
	}
}
