package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape is a primitive that can be hit by rays. Spheres and triangles are the
// only implementations; the shading pipeline never needs to know which it has.
type Shape interface {
	// Hit returns the distance along the ray to the reported intersection
	Hit(ray core.Ray) (float64, bool)

	// SurfaceAt builds the hit record for an intersection found by Hit at distance t
	SurfaceAt(ray core.Ray, t float64) HitRecord
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3         // Point of intersection
	Normal    core.Vec3         // Unit surface normal used for shading
	T         float64           // Parameter t along the ray
	FrontFace bool              // Whether the ray arrived against the geometric normal
	Material  material.Material // Material of the hit object
}

// Intersect runs the hit test and, on a hit, builds the full hit record
func Intersect(shape Shape, ray core.Ray) (HitRecord, bool) {
	t, ok := shape.Hit(ray)
	if !ok {
		return HitRecord{}, false
	}
	return shape.SurfaceAt(ray, t), true
}
