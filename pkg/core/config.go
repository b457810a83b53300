package core

import (
	"fmt"
	"strings"
)

// DefaultMaxDepth bounds the reflection recursion of a single primary ray
const DefaultMaxDepth = 5

// LightingModel selects how per-light contributions are accumulated
type LightingModel string

const (
	// LightingUnclamped sums every light's diffuse and specular terms as-is
	LightingUnclamped LightingModel = "unclamped"
	// LightingClamped clamps each light's diffuse and specular terms to [0,1] before summing
	LightingClamped LightingModel = "clamped"
)

// ParseLightingModel converts a name to a LightingModel. The empty string selects the unclamped model.
func ParseLightingModel(name string) (LightingModel, error) {
	switch LightingModel(strings.ToLower(strings.TrimSpace(name))) {
	case "", LightingUnclamped:
		return LightingUnclamped, nil
	case LightingClamped:
		return LightingClamped, nil
	default:
		return "", fmt.Errorf("unknown lighting model %q (want %q or %q)", name, LightingUnclamped, LightingClamped)
	}
}

// ShadingConfig contains configuration for the recursive shading pipeline
type ShadingConfig struct {
	MaxDepth int           // Recursion depth at which rays return the background
	Lighting LightingModel // How light contributions are accumulated
}

// DefaultShadingConfig returns the canonical configuration
func DefaultShadingConfig() ShadingConfig {
	return ShadingConfig{
		MaxDepth: DefaultMaxDepth,
		Lighting: LightingUnclamped,
	}
}

// MergeShadingConfig overlays the non-zero fields of override onto base
func MergeShadingConfig(base, override ShadingConfig) ShadingConfig {
	if override.MaxDepth > 0 {
		base.MaxDepth = override.MaxDepth
	}
	if override.Lighting != "" {
		base.Lighting = override.Lighting
	}
	return base
}
