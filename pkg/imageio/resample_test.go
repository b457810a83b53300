package imageio

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestDownsample_UniformImage(t *testing.T) {
	img, _ := NewImage(8, 6)
	for i := range img.Pixels {
		img.Pixels[i] = core.NewColor(1, 0.5, 0)
	}

	out, err := Downsample(img, 4, 3)
	if err != nil {
		t.Fatalf("Downsample: %v", err)
	}
	if out.Width != 4 || out.Height != 3 {
		t.Fatalf("Expected 4x3, got %dx%d", out.Width, out.Height)
	}
	for i, c := range out.Pixels {
		if math.Abs(c.R-1) > 1e-3 || math.Abs(c.G-0.5) > 1e-3 || math.Abs(c.B) > 1e-3 {
			t.Fatalf("Pixel %d = %v, want (1, 0.5, 0)", i, c)
		}
	}
}

func TestDownsample_ClampsHDR(t *testing.T) {
	img, _ := NewImage(4, 4)
	for i := range img.Pixels {
		img.Pixels[i] = core.NewColor(5, -2, 0.25)
	}

	out, err := Downsample(img, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	c := out.At(1, 1)
	if c.R > 1 || c.G < 0 || math.Abs(c.B-0.25) > 1e-3 {
		t.Errorf("Expected clamped display-range color, got %v", c)
	}
}

func TestDownsample_RejectsUpscale(t *testing.T) {
	img, _ := NewImage(2, 2)
	if _, err := Downsample(img, 4, 4); err == nil {
		t.Error("Expected error when target is larger than source")
	}
	if _, err := Downsample(img, 0, 1); err == nil {
		t.Error("Expected error for zero target width")
	}
}
