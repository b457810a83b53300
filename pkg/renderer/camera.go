package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultFOV is the vertical field of view in radians
const DefaultFOV = math.Pi / 3

// Camera is a pinhole camera at the origin looking down -z
type Camera struct {
	width, height int
	fov           float64
	aspectRatio   float64
	tanHalfFOV    float64
}

// NewCamera creates a camera with the default 60° field of view
func NewCamera(width, height int) (*Camera, error) {
	return NewCameraWithFOV(width, height, DefaultFOV)
}

// NewCameraWithFOV creates a camera with a vertical field of view in radians
func NewCameraWithFOV(width, height int, fov float64) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("camera dimensions must be positive, got %dx%d", width, height)
	}
	if !(fov > 0 && fov < math.Pi) {
		return nil, fmt.Errorf("field of view must be in (0, π), got %v", fov)
	}
	return &Camera{
		width:       width,
		height:      height,
		fov:         fov,
		aspectRatio: float64(width) / float64(height),
		tanHalfFOV:  math.Tan(fov / 2),
	}, nil
}

// GetRay generates the primary ray through the center of pixel (col, row),
// with row 0 at the top of the image
func (c *Camera) GetRay(col, row int) core.Ray {
	x := (2*(float64(col)+0.5)/float64(c.width) - 1) * c.tanHalfFOV * c.aspectRatio
	y := -(2*(float64(row)+0.5)/float64(c.height) - 1) * c.tanHalfFOV

	direction := core.NewVec3(x, y, -1).Normalize()
	return core.NewRay(core.NewVec3(0, 0, 0), direction)
}

// Width returns the image width the camera was built for
func (c *Camera) Width() int { return c.width }

// Height returns the image height the camera was built for
func (c *Camera) Height() int { return c.height }
