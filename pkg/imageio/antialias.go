package imageio

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// BoxFilter returns a smoothed copy of img where each pixel is the mean of the
// source pixels in the window [x-s, x+s) × [y-s, y+s), clipped to the image.
// A sample size of 0 leaves every pixel unchanged.
func BoxFilter(img *Image, sampleSize int) (*Image, error) {
	if sampleSize < 0 {
		return nil, fmt.Errorf("antialias sample size must be non-negative, got %d", sampleSize)
	}

	out, err := NewImage(img.Width, img.Height)
	if err != nil {
		return nil, err
	}

	for y := 0; y < img.Height; y++ {
		y0, y1 := max(0, y-sampleSize), min(img.Height, y+sampleSize)
		for x := 0; x < img.Width; x++ {
			x0, x1 := max(0, x-sampleSize), min(img.Width, x+sampleSize)

			count := (y1 - y0) * (x1 - x0)
			if count == 0 {
				out.Set(x, y, img.At(x, y))
				continue
			}

			sum := core.Color{}
			for sy := y0; sy < y1; sy++ {
				for sx := x0; sx < x1; sx++ {
					sum = sum.Add(img.At(sx, sy))
				}
			}
			out.Set(x, y, sum.Divide(float64(count)))
		}
	}

	return out, nil
}
