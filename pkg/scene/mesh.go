package scene

import (
	"errors"
	"fmt"

	"github.com/fogleman/fauxgl"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// MeshTransform scales a mesh uniformly about the origin, then translates it
type MeshTransform struct {
	Scale     float64   // Uniform scale factor; 0 means 1
	Translate core.Vec3 // Offset applied after scaling
}

func (t MeshTransform) matrix() fauxgl.Matrix {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	return fauxgl.Scale(fauxgl.V(scale, scale, scale)).
		Translate(fauxgl.V(t.Translate.X, t.Translate.Y, t.Translate.Z))
}

// LoadMesh reads an OBJ, STL or PLY file, transforms it and adds its faces to
// the scene as triangles. It returns the number of degenerate faces skipped.
func (s *Scene) LoadMesh(path string, transform MeshTransform, mat material.Material) (int, error) {
	mesh, err := fauxgl.LoadMesh(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load mesh %s: %w", path, err)
	}
	mesh.Transform(transform.matrix())
	return s.AddMesh(mesh, mat)
}

// AddMesh adds every face of the mesh as a triangle with the given material.
// Zero-area faces are skipped and counted; any other invalid face is an error.
func (s *Scene) AddMesh(mesh *fauxgl.Mesh, mat material.Material) (int, error) {
	if err := mat.Validate(); err != nil {
		return 0, fmt.Errorf("mesh: %w", err)
	}

	triangles := make([]*geometry.Triangle, 0, len(mesh.Triangles))
	skipped := 0
	for i, face := range mesh.Triangles {
		triangle, err := geometry.NewTriangle(
			toVec3(face.V1.Position),
			toVec3(face.V2.Position),
			toVec3(face.V3.Position),
			mat,
		)
		if errors.Is(err, geometry.ErrDegenerateTriangle) {
			skipped++
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("mesh face %d: %w", i, err)
		}
		triangles = append(triangles, triangle)
	}

	// Faces are only added once the whole mesh is known to be valid
	for _, triangle := range triangles {
		s.addTriangle(triangle)
	}
	return skipped, nil
}

func toVec3(v fauxgl.Vector) core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}
