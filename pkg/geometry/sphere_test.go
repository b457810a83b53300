package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func newTestSphere(t *testing.T, center core.Vec3, radius float64) *Sphere {
	t.Helper()
	sphere, err := NewSphere(center, radius, material.NewMatte(core.NewColor(0.5, 0.5, 0.5)))
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	return sphere
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := newTestSphere(t, core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if dist, isHit := sphere.Hit(ray); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", dist)
	}
}

func TestSphere_Hit(t *testing.T) {
	sphere := newTestSphere(t, core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		shouldHit      bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "near intersection from outside",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -1),
			shouldHit:      true,
			expectedT:      2.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "far intersection from inside",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			shouldHit:      true,
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:         "sphere entirely behind the ray",
			rayOrigin:    core.NewVec3(0, 0, 3),
			rayDirection: core.NewVec3(0, 0, 1),
			shouldHit:    false,
		},
		{
			name:           "tangent ray grazes at a single point",
			rayOrigin:      core.NewVec3(1, 0, 5),
			rayDirection:   core.NewVec3(0, 0, -1),
			shouldHit:      true,
			expectedT:      5.0,
			expectedNormal: core.NewVec3(1, 0, 0),
		},
		{
			name:           "unnormalized direction scales t",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			shouldHit:      true,
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := Intersect(sphere, ray)

			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
			}
			if !tt.shouldHit {
				return
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Point.Subtract(ray.At(tt.expectedT)).Length() > 1e-9 {
				t.Errorf("Expected point %v, got %v", ray.At(tt.expectedT), hit.Point)
			}
		})
	}
}

func TestSphere_Hit_JustOutsideSilhouette(t *testing.T) {
	sphere := newTestSphere(t, core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(1.0000001, 0, 5), core.NewVec3(0, 0, -1))

	if _, isHit := sphere.Hit(ray); isHit {
		t.Error("Ray passing outside the silhouette should miss")
	}
}

func TestNewSphere_Validation(t *testing.T) {
	mat := material.NewMatte(core.NewColor(1, 1, 1))

	tests := []struct {
		name   string
		center core.Vec3
		radius float64
		target error
	}{
		{"zero radius", core.NewVec3(0, 0, 0), 0, ErrInvalidRadius},
		{"negative radius", core.NewVec3(0, 0, 0), -1, ErrInvalidRadius},
		{"NaN radius", core.NewVec3(0, 0, 0), math.NaN(), ErrInvalidRadius},
		{"infinite center", core.NewVec3(math.Inf(1), 0, 0), 1, ErrNonFiniteVertex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSphere(tt.center, tt.radius, mat)
			if !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}

	_, err := NewSphere(core.NewVec3(0, 0, 0), 1, material.Material{Rough: 2})
	if !errors.Is(err, material.ErrInvalidMaterial) {
		t.Errorf("Expected material validation error, got %v", err)
	}
}
