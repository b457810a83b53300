package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint LightType = "point"
)

// Light interface for sources that contribute direct diffuse and specular lighting
type Light interface {
	Type() LightType

	// Sample returns the direction FROM the shading point TO the light
	Sample(point core.Vec3) LightSample
}

// LightSample contains information about a light as seen from a shading point
type LightSample struct {
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
	Strength  float64   // Unattenuated strength of the light
}
