package imageio

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Downsample resolves a supersampled render to width × height with a Lanczos3
// filter. The image is clamped to [0,1] and carried at 16 bits per channel
// through the filter, so the result is already display range.
func Downsample(img *Image, width, height int) (*Image, error) {
	out, err := NewImage(width, height)
	if err != nil {
		return nil, err
	}
	if width > img.Width || height > img.Height {
		return nil, fmt.Errorf("cannot downsample %dx%d to larger %dx%d", img.Width, img.Height, width, height)
	}

	src := image.NewRGBA64(img.Bounds())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			src.SetRGBA64(x, y, color.RGBA64{
				R: to16(c.R),
				G: to16(c.G),
				B: to16(c.B),
				A: math.MaxUint16,
			})
		}
	}

	resized := resize.Resize(uint(width), uint(height), src, resize.Lanczos3)
	bounds := resized.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.Set(x, y, core.NewColor(
				float64(r)/math.MaxUint16,
				float64(g)/math.MaxUint16,
				float64(b)/math.MaxUint16,
			))
		}
	}

	return out, nil
}

func to16(f float64) uint16 {
	if math.IsNaN(f) {
		return 0
	}
	return uint16(math.Round(math.Max(0, math.Min(1, f)) * math.MaxUint16))
}
