// Package raster paints annotation primitives onto RGBA canvases.
//
// All primitives take inclusive integer pixel corners, clip to the
// destination bounds and leave opaque pixels opaque. Rectangles are painted
// without anti-aliasing; strokes and discs are rasterized with
// golang.org/x/image/vector, whose output is bit-identical across GOARCHes,
// so a canvas painted twice from the same inputs is pixel-identical.
package raster
