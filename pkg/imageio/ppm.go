package imageio

import (
	"bufio"
	"fmt"
	"io"
)

// WritePPM writes the image as a plain-text P3 pixel map: a
// "P3 width height 255" header line followed by one "r g b" line per pixel in
// row-major order
func WritePPM(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3 %d %d 255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for _, c := range img.Pixels {
		r, g, b := Quantize(c)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}
