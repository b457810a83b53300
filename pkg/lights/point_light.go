package lights

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidStrength is returned for negative or non-finite light strengths
var ErrInvalidStrength = errors.New("invalid light strength")

// PointLight is an infinitely small light with no distance falloff
type PointLight struct {
	Position core.Vec3
	Strength float64
}

// NewPointLight creates a point light, rejecting negative or non-finite strengths
func NewPointLight(position core.Vec3, strength float64) (*PointLight, error) {
	if math.IsNaN(strength) || math.IsInf(strength, 0) || strength < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStrength, strength)
	}
	if !position.IsFinite() {
		return nil, fmt.Errorf("point light position must be finite, got %v", position)
	}
	return &PointLight{Position: position, Strength: strength}, nil
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Sample returns the direction and distance to the light. A shading point that
// coincides with the light gets a zero direction, which contributes nothing.
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.Position.Subtract(point)
	return LightSample{
		Direction: toLight.Normalize(),
		Distance:  toLight.Length(),
		Strength:  pl.Strength,
	}
}
