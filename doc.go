// Package stepmark is the annotation and compositing engine behind a
// procedure recorder: every captured screenshot (a step) carries an ordered
// list of vector annotations and an optional non-destructive crop, and the
// engine flattens them into the raster that thumbnails and exported guides
// embed.
//
// # Overview
//
// The package is organized leaf-first:
//   - Geometry: [Point], [Rect] and [Viewport], the mapping between image
//     space (original screenshot pixels) and display space (the scaled,
//     crop-limited preview).
//   - Objects: the closed set of annotations, [RectMarkup] (highlight and
//     redact boxes) and [Stroke] (freehand pen), stored in image space.
//   - [Document]: per-step object store, undo stack and selection, keyed by
//     a stable [StepID].
//   - [Editor]: the pointer-driven transform engine (create, move, resize,
//     crop) that mutates a Document.
//   - [Flatten]: the deterministic compositing pipeline.
//
// # Quick Start
//
//	doc := stepmark.NewDocument()
//	id := doc.AddStep()
//
//	ed, _ := doc.Editor(id, image.Pt(1920, 1080))
//	ed.SetTool(stepmark.ToolHighlight)
//	ed.Press(stepmark.Pt(40, 40))
//	ed.Drag(stepmark.Pt(200, 120))
//	ed.Release(stepmark.Pt(200, 120))
//
//	st, _ := doc.State(id)
//	out := stepmark.Flatten(screenshot, st)
//
// # Coordinate System
//
// Both spaces use the usual raster convention: origin at the top-left, X to
// the right, Y down, integer pixel coordinates. Annotation geometry is always
// stored in image space, so cropping or zooming the view never rewrites
// objects. Rectangle corners are kept in authoring order and normalized on
// read.
//
// # Threading
//
// Document and Editor are meant to be driven from the goroutine that owns the
// interactive view and are not safe for concurrent use. Flatten is pure and
// may run on any goroutine; [FlattenBatch] snapshots the requested steps
// before fanning out to workers.
package stepmark
