package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var (
	// ErrDegenerateTriangle is returned for triangles with zero area
	ErrDegenerateTriangle = errors.New("degenerate triangle")
	// ErrNonFiniteVertex is returned when a vertex has NaN or infinite components
	ErrNonFiniteVertex = errors.New("non-finite vertex")
)

// Triangle represents a single triangle defined by three vertices.
// Vertex order defines the geometric normal (V1-V0) × (V2-V0).
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Material   material.Material // Material of the triangle
	normal     core.Vec3         // Cached unit geometric normal
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) (*Triangle, error) {
	for _, v := range []core.Vec3{v0, v1, v2} {
		if !v.IsFinite() {
			return nil, fmt.Errorf("%w: %v", ErrNonFiniteVertex, v)
		}
	}
	if err := mat.Validate(); err != nil {
		return nil, fmt.Errorf("triangle material: %w", err)
	}

	normal, err := v1.Subtract(v0).Cross(v2.Subtract(v0)).TryNormalize()
	if err != nil {
		return nil, fmt.Errorf("%w: %v %v %v", ErrDegenerateTriangle, v0, v1, v2)
	}

	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		normal:   normal,
	}, nil
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm.
// Barycentric bounds are inclusive, so edges and vertices count as hits.
func (t *Triangle) Hit(ray core.Ray) (float64, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	p := edge2.Cross(ray.Direction)
	det := edge1.Dot(p)

	// Ray lies (nearly) in the plane of the triangle
	if math.Abs(det) < core.Epsilon {
		return 0, false
	}

	s := ray.Origin.Subtract(t.V0)
	u := s.Dot(p) / det
	if u < 0 || u > 1 {
		return 0, false
	}

	q := edge1.Cross(s)
	v := ray.Direction.Dot(q) / det
	if v < 0 || u+v > 1 {
		return 0, false
	}

	distance := edge2.Dot(q) / det
	if distance < 0 {
		return 0, false
	}
	return distance, true
}

// SurfaceAt returns the hit record with the normal flipped to face the incoming ray
func (t *Triangle) SurfaceAt(ray core.Ray, dist float64) HitRecord {
	frontFace := ray.Direction.Dot(t.normal) <= 0
	normal := t.normal
	if !frontFace {
		normal = normal.Negate()
	}
	return HitRecord{
		Point:     ray.At(dist),
		Normal:    normal,
		T:         dist,
		FrontFace: frontFace,
		Material:  t.Material,
	}
}

// GetNormal returns the triangle's geometric normal
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}
