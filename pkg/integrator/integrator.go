package integrator

import (
	"math/rand/v2"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along a primary ray.
	// random drives any stochastic choices and must not be shared between goroutines.
	RayColor(ray core.Ray, scene *scene.Scene, random *rand.Rand) (core.Color, TraceStats)
}

// TraceStats counts the work done while tracing one primary ray
type TraceStats struct {
	Rays       int // Nearest-hit queries, one per shading level reached
	ShadowRays int // Occlusion queries toward lights
	Depth      int // Deepest recursion level that ran a nearest-hit query, 1-based
}

// Add accumulates other into s, keeping the deeper of the two depths
func (s *TraceStats) Add(other TraceStats) {
	s.Rays += other.Rays
	s.ShadowRays += other.ShadowRays
	s.Depth = max(s.Depth, other.Depth)
}
