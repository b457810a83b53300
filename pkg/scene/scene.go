package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// Spheres and Triangles are populated through the Add methods so that the
// combined scan order stays spheres first, then triangles, each in insertion order.
type Scene struct {
	Name       string
	Background core.Color         // Color returned by rays that hit nothing
	Lights     []lights.Light     // Point lights in the scene
	Spheres    []*geometry.Sphere // Spheres in insertion order
	Triangles  []*geometry.Triangle

	Width   int                // Recommended image width
	Height  int                // Recommended image height
	Shading core.ShadingConfig // Recommended shading configuration

	shapes []geometry.Shape // Spheres followed by triangles
}

// NewScene creates an empty scene with the given background color
func NewScene(name string, background core.Color) *Scene {
	return &Scene{
		Name:       name,
		Background: background,
		Lights:     make([]lights.Light, 0),
		Spheres:    make([]*geometry.Sphere, 0),
		Triangles:  make([]*geometry.Triangle, 0),
		Shading:    core.DefaultShadingConfig(),
		shapes:     make([]geometry.Shape, 0),
	}
}

// AddLight adds a point light to the scene
func (s *Scene) AddLight(position core.Vec3, strength float64) error {
	light, err := lights.NewPointLight(position, strength)
	if err != nil {
		return fmt.Errorf("light %d: %w", len(s.Lights), err)
	}
	s.Lights = append(s.Lights, light)
	return nil
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) error {
	if err := mat.Validate(); err != nil {
		return fmt.Errorf("sphere %d: %w", len(s.Spheres), err)
	}
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return fmt.Errorf("sphere %d: %w", len(s.Spheres), err)
	}
	s.addSphere(sphere)
	return nil
}

// AddTriangle adds a triangle to the scene
func (s *Scene) AddTriangle(v0, v1, v2 core.Vec3, mat material.Material) error {
	if err := mat.Validate(); err != nil {
		return fmt.Errorf("triangle %d: %w", len(s.Triangles), err)
	}
	triangle, err := geometry.NewTriangle(v0, v1, v2, mat)
	if err != nil {
		return fmt.Errorf("triangle %d: %w", len(s.Triangles), err)
	}
	s.addTriangle(triangle)
	return nil
}

// AddQuad adds a planar quadrilateral as the triangles (a,b,c) and (a,c,d)
func (s *Scene) AddQuad(a, b, c, d core.Vec3, mat material.Material) error {
	if err := mat.Validate(); err != nil {
		return fmt.Errorf("quad: %w", err)
	}
	triangles, err := geometry.NewQuad(a, b, c, d, mat)
	if err != nil {
		return fmt.Errorf("quad: %w", err)
	}
	for _, triangle := range triangles {
		s.addTriangle(triangle)
	}
	return nil
}

func (s *Scene) addSphere(sphere *geometry.Sphere) {
	// Spheres go in front of every triangle in the scan order
	s.shapes = slices.Insert(s.shapes, len(s.Spheres), geometry.Shape(sphere))
	s.Spheres = append(s.Spheres, sphere)
}

func (s *Scene) addTriangle(triangle *geometry.Triangle) {
	s.shapes = append(s.shapes, triangle)
	s.Triangles = append(s.Triangles, triangle)
}

// Shapes returns every shape in scan order: all spheres, then all triangles
func (s *Scene) Shapes() []geometry.Shape {
	return s.shapes
}

// Hit finds the nearest intersection along the ray. When two shapes report the
// same distance, the one scanned first wins.
func (s *Scene) Hit(ray core.Ray) (geometry.HitRecord, bool) {
	var closest geometry.Shape
	closestT := 0.0

	for _, shape := range s.shapes {
		t, ok := shape.Hit(ray)
		if !ok {
			continue
		}
		if closest == nil || t < closestT {
			closest = shape
			closestT = t
		}
	}

	if closest == nil {
		return geometry.HitRecord{}, false
	}
	return closest.SurfaceAt(ray, closestT), true
}

// Occluded reports whether any shape intersects the ray at a positive distance.
// There is no distance cap: geometry beyond the light still blocks it.
func (s *Scene) Occluded(ray core.Ray) bool {
	for _, shape := range s.shapes {
		if t, ok := shape.Hit(ray); ok && t > 0 {
			return true
		}
	}
	return false
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.shapes)
}

// sceneBuilder collects errors from a sequence of Add calls so scene
// constructors can report every bad entry at once
type sceneBuilder struct {
	scene *Scene
	errs  []error
}

func newSceneBuilder(name string, background core.Color) *sceneBuilder {
	return &sceneBuilder{scene: NewScene(name, background)}
}

func (b *sceneBuilder) check(err error) {
	if err != nil {
		b.errs = append(b.errs, err)
	}
}

func (b *sceneBuilder) build() (*Scene, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, fmt.Errorf("scene %q: %w", b.scene.Name, err)
	}
	return b.scene, nil
}
