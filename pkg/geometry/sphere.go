package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidRadius is returned for spheres with a non-positive or non-finite radius
var ErrInvalidRadius = errors.New("invalid sphere radius")

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere, validating its radius, center and material
func NewSphere(center core.Vec3, radius float64, mat material.Material) (*Sphere, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	if !center.IsFinite() {
		return nil, fmt.Errorf("%w: sphere center %v", ErrNonFiniteVertex, center)
	}
	if err := mat.Validate(); err != nil {
		return nil, fmt.Errorf("sphere material: %w", err)
	}
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}, nil
}

// Hit solves the ray/sphere quadratic. It reports the nearer root unless the
// ray starts inside the sphere, in which case the far root is reported.
func (s *Sphere) Hit(ray core.Ray) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}

	if t1 < 0 && t2 < 0 {
		return 0, false
	}
	if t1 < 0 {
		return t2, true
	}
	return t1, true
}

// SurfaceAt returns the hit record with the outward normal (center to hit point)
func (s *Sphere) SurfaceAt(ray core.Ray, t float64) HitRecord {
	point := ray.At(t)
	normal := point.Subtract(s.Center).Normalize()
	return HitRecord{
		Point:     point,
		Normal:    normal,
		T:         t,
		FrontFace: ray.Direction.Dot(normal) < 0,
		Material:  s.Material,
	}
}
