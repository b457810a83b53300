package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrNonPlanarQuad is returned when the fourth corner of a quad is off the plane of the first three
var ErrNonPlanarQuad = errors.New("quad corners are not coplanar")

// planarTolerance is relative to the quad's size
const planarTolerance = 1e-6

// NewQuad splits the planar quad a-b-c-d into the triangles (a,b,c) and (a,c,d),
// which share the diagonal a-c and the material
func NewQuad(a, b, c, d core.Vec3, mat material.Material) ([]*Triangle, error) {
	first, err := NewTriangle(a, b, c, mat)
	if err != nil {
		return nil, fmt.Errorf("quad triangle (a,b,c): %w", err)
	}
	second, err := NewTriangle(a, c, d, mat)
	if err != nil {
		return nil, fmt.Errorf("quad triangle (a,c,d): %w", err)
	}

	size := math.Max(c.Subtract(a).Length(), d.Subtract(b).Length())
	offPlane := math.Abs(d.Subtract(a).Dot(first.GetNormal()))
	if offPlane > planarTolerance*size {
		return nil, fmt.Errorf("%w: d is %g off the plane", ErrNonPlanarQuad, offPlane)
	}

	return []*Triangle{first, second}, nil
}
