package lights

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewPointLight_Validation(t *testing.T) {
	tests := []struct {
		name        string
		position    core.Vec3
		strength    float64
		expectError bool
	}{
		{"unit strength", core.NewVec3(0, 5, 0), 1, false},
		{"zero strength", core.NewVec3(0, 5, 0), 0, false},
		{"negative strength", core.NewVec3(0, 5, 0), -0.5, true},
		{"NaN strength", core.NewVec3(0, 5, 0), math.NaN(), true},
		{"infinite strength", core.NewVec3(0, 5, 0), math.Inf(1), true},
		{"non-finite position", core.NewVec3(math.Inf(-1), 0, 0), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light, err := NewPointLight(tt.position, tt.strength)
			if tt.expectError {
				if err == nil {
					t.Fatalf("Expected error, got light %+v", light)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if light.Type() != LightTypePoint {
				t.Errorf("Expected point light type, got %s", light.Type())
			}
		})
	}

	if _, err := NewPointLight(core.NewVec3(0, 0, 0), -1); !errors.Is(err, ErrInvalidStrength) {
		t.Errorf("Expected ErrInvalidStrength, got %v", err)
	}
}

func TestPointLight_Sample(t *testing.T) {
	light, err := NewPointLight(core.NewVec3(0, 10, 0), 0.5)
	if err != nil {
		t.Fatal(err)
	}

	sample := light.Sample(core.NewVec3(0, 2, 0))
	if sample.Direction.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("Expected direction +y, got %v", sample.Direction)
	}
	if math.Abs(sample.Distance-8) > 1e-12 {
		t.Errorf("Expected distance 8, got %f", sample.Distance)
	}
	if sample.Strength != 0.5 {
		t.Errorf("Strength should not attenuate with distance, got %f", sample.Strength)
	}

	// Sampling from the light's own position must not produce NaN
	self := light.Sample(light.Position)
	if !self.Direction.IsFinite() || self.Direction != (core.Vec3{}) {
		t.Errorf("Expected zero direction at the light position, got %v", self.Direction)
	}
}
