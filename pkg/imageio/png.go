package imageio

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
)

// WritePNG encodes the quantized image as PNG
func WritePNG(w io.Writer, img *Image) error {
	dc := gg.NewContextForRGBA(img.ToRGBA())
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes the quantized image to a PNG file
func SavePNG(path string, img *Image) error {
	if err := gg.SavePNG(path, img.ToRGBA()); err != nil {
		return fmt.Errorf("failed to save PNG %s: %w", path, err)
	}
	return nil
}
