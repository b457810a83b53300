package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidMaterial is returned for materials with out-of-range coefficients
var ErrInvalidMaterial = errors.New("invalid material")

// Material describes how a surface responds to point lights and reflections
type Material struct {
	Diffuse     core.Color // Surface color scaled by diffuse light strength
	Ambient     float64    // Dampens the diffuse term by (1 - Ambient); not an additive floor
	Specular    float64    // Weight of the untinted highlight
	SpecularExp float64    // Phong exponent of the highlight
	Reflective  float64    // Weight of the recursively traced reflection
	Refractive  float64    // Reserved, never read by the shading pipeline
	Rough       float64    // Max perturbation of the reflection as a fraction of π/2; 0 = mirror
}

// Validate checks that every coefficient is finite and in range
func (m Material) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"ambient", m.Ambient},
		{"specular", m.Specular},
		{"specularExp", m.SpecularExp},
		{"reflective", m.Reflective},
		{"refractive", m.Refractive},
		{"rough", m.Rough},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidMaterial, f.name, f.value)
		}
	}
	if !m.Diffuse.IsFinite() {
		return fmt.Errorf("%w: diffuse color must be finite, got %v", ErrInvalidMaterial, m.Diffuse)
	}
	if m.Rough > 1 {
		return fmt.Errorf("%w: rough must be in [0, 1], got %v", ErrInvalidMaterial, m.Rough)
	}
	return nil
}

// IsGlossy reports whether reflections off this material are perturbed
func (m Material) IsGlossy() bool {
	return m.Rough > 0
}

// NewMatte creates a purely diffuse material
func NewMatte(diffuse core.Color) Material {
	return Material{Diffuse: diffuse}
}

// NewMirror creates a dark, highly reflective material with a sharp highlight
func NewMirror() Material {
	return Material{Ambient: 0.1, Specular: 1, SpecularExp: 40, Reflective: 0.7}
}

// NewFuzzyMirror creates a mirror whose reflections are slightly blurred
func NewFuzzyMirror() Material {
	return Material{Ambient: 0.1, Specular: 1, SpecularExp: 40, Reflective: 0.8, Rough: 0.03}
}

// NewShiny creates a colored material with a bright highlight and a faint reflection
func NewShiny(diffuse core.Color) Material {
	return Material{Diffuse: diffuse, Ambient: 0.1, Specular: 1, SpecularExp: 20, Reflective: 0.2}
}

// NewDull creates a colored material that barely reflects its surroundings
func NewDull(diffuse core.Color, specularExp float64) Material {
	return Material{Diffuse: diffuse, Ambient: 0.1, Specular: 1, SpecularExp: specularExp, Reflective: 0.01}
}
