package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// SceneFile is the JSON description of a scene
type SceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Group       string                  `json:"group,omitempty"`
	Width       int                     `json:"width,omitempty"`
	Height      int                     `json:"height,omitempty"`
	MaxDepth    int                     `json:"maxDepth,omitempty"`
	Lighting    string                  `json:"lighting,omitempty"`
	Background  vec3JSON                `json:"background"`
	Materials   map[string]MaterialJSON `json:"materials,omitempty"`
	Lights      []LightJSON             `json:"lights"`
	Spheres     []SphereJSON            `json:"spheres,omitempty"`
	Triangles   []TriangleJSON          `json:"triangles,omitempty"`
	Quads       []QuadJSON              `json:"quads,omitempty"`
	Meshes      []MeshJSON              `json:"meshes,omitempty"`
}

type vec3JSON [3]float64

func (v vec3JSON) vec() core.Vec3     { return core.NewVec3(v[0], v[1], v[2]) }
func (v vec3JSON) color() core.Color { return core.NewColor(v[0], v[1], v[2]) }

// MaterialJSON mirrors material.Material
type MaterialJSON struct {
	Diffuse     vec3JSON `json:"diffuse"`
	Ambient     float64  `json:"ambient"`
	Specular    float64  `json:"specular"`
	SpecularExp float64  `json:"specularExp"`
	Reflective  float64  `json:"reflective"`
	Refractive  float64  `json:"refractive"`
	Rough       float64  `json:"rough"`
}

type LightJSON struct {
	Position vec3JSON `json:"position"`
	Strength float64  `json:"strength"`
}

type SphereJSON struct {
	Center   vec3JSON `json:"center"`
	Radius   float64  `json:"radius"`
	Material string   `json:"material"`
}

type TriangleJSON struct {
	Vertices [3]vec3JSON `json:"vertices"`
	Material string      `json:"material"`
}

type QuadJSON struct {
	Corners  [4]vec3JSON `json:"corners"`
	Material string      `json:"material"`
}

// MeshJSON references an OBJ, STL or PLY file relative to the scene file
type MeshJSON struct {
	Path      string   `json:"path"`
	Scale     float64  `json:"scale,omitempty"`
	Translate vec3JSON `json:"translate"`
	Material  string   `json:"material"`
}

// presetMaterials are available by name in every scene file unless overridden
var presetMaterials = map[string]material.Material{
	"mirror":       material.NewMirror(),
	"fuzzy-mirror": material.NewFuzzyMirror(),
	"shiny-red":    material.NewShiny(core.NewColor(1, 0, 0)),
	"shiny-blue":   material.NewShiny(core.NewColor(0, 0, 1)),
	"dull-red":     material.NewDull(core.NewColor(1, 0, 0), 20),
	"dull-green":   material.NewDull(core.NewColor(0, 1, 0), 40),
}

// LoadFile reads a JSON scene description from disk. Mesh paths are resolved
// relative to the directory containing the file.
func LoadFile(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := Parse(file, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes a JSON scene description and builds the scene
func Parse(r io.Reader, baseDir string) (*Scene, error) {
	var desc SceneFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return desc.Build(baseDir)
}

// Build turns the description into a scene. Every invalid entry is reported,
// each error naming the entry it came from.
func (desc SceneFile) Build(baseDir string) (*Scene, error) {
	b := newSceneBuilder(desc.Name, desc.Background.color())
	b.scene.Width = desc.Width
	b.scene.Height = desc.Height

	lighting, err := core.ParseLightingModel(desc.Lighting)
	b.check(err)
	b.scene.Shading = core.MergeShadingConfig(b.scene.Shading, core.ShadingConfig{
		MaxDepth: desc.MaxDepth,
		Lighting: lighting,
	})
	if desc.MaxDepth < 0 {
		b.check(fmt.Errorf("maxDepth must be non-negative, got %d", desc.MaxDepth))
	}
	if desc.Width < 0 || desc.Height < 0 {
		b.check(fmt.Errorf("width and height must be non-negative, got %dx%d", desc.Width, desc.Height))
	}

	lookup := func(entry, name string) (material.Material, bool) {
		if m, ok := desc.Materials[name]; ok {
			return material.Material{
				Diffuse:     m.Diffuse.color(),
				Ambient:     m.Ambient,
				Specular:    m.Specular,
				SpecularExp: m.SpecularExp,
				Reflective:  m.Reflective,
				Refractive:  m.Refractive,
				Rough:       m.Rough,
			}, true
		}
		if m, ok := presetMaterials[name]; ok {
			return m, true
		}
		b.check(fmt.Errorf("%s: unknown material %q", entry, name))
		return material.Material{}, false
	}

	for i, l := range desc.Lights {
		if err := b.scene.AddLight(l.Position.vec(), l.Strength); err != nil {
			b.check(fmt.Errorf("lights[%d]: %w", i, err))
		}
	}

	for i, sp := range desc.Spheres {
		entry := fmt.Sprintf("spheres[%d]", i)
		if mat, ok := lookup(entry, sp.Material); ok {
			if err := b.scene.AddSphere(sp.Center.vec(), sp.Radius, mat); err != nil {
				b.check(fmt.Errorf("%s: %w", entry, err))
			}
		}
	}

	for i, tri := range desc.Triangles {
		entry := fmt.Sprintf("triangles[%d]", i)
		if mat, ok := lookup(entry, tri.Material); ok {
			v := tri.Vertices
			if err := b.scene.AddTriangle(v[0].vec(), v[1].vec(), v[2].vec(), mat); err != nil {
				b.check(fmt.Errorf("%s: %w", entry, err))
			}
		}
	}

	for i, q := range desc.Quads {
		entry := fmt.Sprintf("quads[%d]", i)
		if mat, ok := lookup(entry, q.Material); ok {
			c := q.Corners
			if err := b.scene.AddQuad(c[0].vec(), c[1].vec(), c[2].vec(), c[3].vec(), mat); err != nil {
				b.check(fmt.Errorf("%s: %w", entry, err))
			}
		}
	}

	for i, m := range desc.Meshes {
		entry := fmt.Sprintf("meshes[%d]", i)
		mat, ok := lookup(entry, m.Material)
		if !ok {
			continue
		}
		path := m.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		transform := MeshTransform{Scale: m.Scale, Translate: m.Translate.vec()}
		if _, err := b.scene.LoadMesh(path, transform, mat); err != nil {
			b.check(fmt.Errorf("%s: %w", entry, err))
		}
	}

	return b.build()
}
