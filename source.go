package stepmark

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ImageSource provides the base screenshot of a step.
//
// BaseImage returns ErrTextOnly (possibly wrapped) for steps that have no
// screenshot. Sources passed to FlattenBatch must be safe for concurrent
// use.
type ImageSource interface {
	BaseImage(id StepID) (image.Image, error)
}

// ImageSourceFunc adapts a function to ImageSource.
type ImageSourceFunc func(id StepID) (image.Image, error)

// BaseImage implements ImageSource.
func (f ImageSourceFunc) BaseImage(id StepID) (image.Image, error) { return f(id) }

// MemorySource serves screenshots from memory. A step mapped to nil is
// text-only; an absent step has no readable image.
type MemorySource map[StepID]image.Image

// BaseImage implements ImageSource.
func (m MemorySource) BaseImage(id StepID) (image.Image, error) {
	img, ok := m[id]
	switch {
	case !ok:
		return nil, fmt.Errorf("no image for step %s", id)
	case img == nil:
		return nil, ErrTextOnly
	}
	return img, nil
}

// DecodeImage decodes a PNG, JPEG, GIF, BMP or WebP screenshot.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("stepmark: decode image: %w", err)
	}
	Logger().Debug("stepmark: image decoded", "format", format, "size", img.Bounds().Size())
	return img, nil
}
