package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MaxPixels bounds the size of an Image so the pixel buffer allocation cannot overflow
const MaxPixels = 1 << 28

// ErrInvalidDimensions is returned for non-positive or oversized image dimensions
var ErrInvalidDimensions = errors.New("invalid image dimensions")

// Image is a row-major grid of unclamped colors
type Image struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewImage allocates a black image
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidDimensions, width, height, MaxPixels)
	}
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}, nil
}

// At returns the color at column x, row y
func (img *Image) At(x, y int) core.Color {
	return img.Pixels[y*img.Width+x]
}

// Set stores the color at column x, row y
func (img *Image) Set(x, y int, c core.Color) {
	img.Pixels[y*img.Width+x] = c
}

// Bounds returns the image rectangle
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// ToRGBA quantizes the image to 8 bits per channel
func (img *Image) ToRGBA() *image.RGBA {
	return img.SubImageRGBA(img.Bounds())
}

// SubImageRGBA quantizes the pixels inside bounds. The result's origin is
// bounds.Min, matching the standard library's sub-image convention.
func (img *Image) SubImageRGBA(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(img.Bounds())
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := Quantize(img.At(x, y))
			rgba.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return rgba
}

// Quantize converts a color to 8-bit channels: clamp to [0,1], then floor(c*255)
func Quantize(c core.Color) (r, g, b uint8) {
	return quantizeChannel(c.R), quantizeChannel(c.G), quantizeChannel(c.B)
}

func quantizeChannel(f float64) uint8 {
	if math.IsNaN(f) {
		return 0
	}
	return uint8(math.Floor(math.Max(0, math.Min(1, f)) * 255))
}
