package loaders

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/riftwood/pathtracer/pkg/core"
)

// EncodePNG wraps an H*W*4 RGBA byte buffer in an image.RGBA and writes it
// to path as a PNG. Any failure from the underlying encoder is wrapped in a
// core.EncoderError.
func EncodePNG(path string, w, h int, pixels []byte) error {
	img := &image.RGBA{
		Pix:    pixels,
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
	if err := imaging.Save(img, path); err != nil {
		return &core.EncoderError{Cause: err}
	}
	return nil
}
