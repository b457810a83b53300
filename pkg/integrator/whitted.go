package integrator

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// WhittedIntegrator implements recursive ray tracing with point-light
// shadows, Phong highlights and mirror or glossy reflection
type WhittedIntegrator struct {
	config core.ShadingConfig
}

// NewWhittedIntegrator creates a new Whitted integrator. Zero fields of config
// take their default values.
func NewWhittedIntegrator(config core.ShadingConfig) *WhittedIntegrator {
	return &WhittedIntegrator{
		config: core.MergeShadingConfig(core.DefaultShadingConfig(), config),
	}
}

// Config returns the effective shading configuration
func (w *WhittedIntegrator) Config() core.ShadingConfig {
	return w.config
}

// RayColor computes the color for a primary ray
func (w *WhittedIntegrator) RayColor(ray core.Ray, scene *scene.Scene, random *rand.Rand) (core.Color, TraceStats) {
	var stats TraceStats
	color := w.CastRay(ray, scene, random, 0, &stats)
	return color, stats
}

// CastRay returns the color seen along ray at the given recursion depth.
// Rays at MaxDepth, and rays that hit nothing, return the scene background.
// Each call recurses at most once, so a primary ray costs at most MaxDepth
// nearest-hit queries.
func (w *WhittedIntegrator) CastRay(ray core.Ray, scene *scene.Scene, random *rand.Rand, depth int, stats *TraceStats) core.Color {
	if depth >= w.config.MaxDepth {
		return scene.Background
	}

	stats.Rays++
	stats.Depth = max(stats.Depth, depth+1)

	hit, isHit := scene.Hit(ray)
	if !isHit {
		return scene.Background
	}

	mat := hit.Material

	// Reflection term; skipped when it carries no weight
	reflectionColor := core.Color{}
	if mat.Reflective != 0 {
		direction := ray.Direction.Reflect(hit.Normal)
		if mat.IsGlossy() {
			direction = perturb(direction, mat.Rough, random)
		}
		reflected := core.Offset(hit.Point, hit.Normal, direction)
		reflectionColor = w.CastRay(reflected, scene, random, depth+1, stats)
	}

	lighting := w.DirectLighting(scene, hit, ray)
	stats.ShadowRays += lighting.ShadowRays

	// The highlight is untinted and ambient only dampens the diffuse term
	return mat.Diffuse.Multiply((1 - mat.Ambient) * lighting.Diffuse).
		AddScalar(mat.Specular * lighting.Specular).
		Add(reflectionColor.Multiply(mat.Reflective))
}

// LightingResult is the accumulated direct light strength at a shading point
type LightingResult struct {
	Diffuse    float64 // Sum of strength * cos over visible lights
	Specular   float64 // Sum of strength * cos^exp over visible lights
	ShadowRays int     // Number of occlusion queries issued
}

// DirectLighting sums the diffuse and specular light strength arriving at the
// hit point from every unoccluded light. Occlusion is tested without a
// distance cap, so geometry behind a light still shadows it.
func (w *WhittedIntegrator) DirectLighting(scene *scene.Scene, hit geometry.HitRecord, ray core.Ray) LightingResult {
	var result LightingResult

	for _, light := range scene.Lights {
		sample := light.Sample(hit.Point)

		shadowRay := core.Offset(hit.Point, hit.Normal, sample.Direction)
		result.ShadowRays++
		if scene.Occluded(shadowRay) {
			continue
		}

		diffuseDot := hit.Normal.Dot(sample.Direction)
		if diffuseDot <= 0 {
			// Light is behind the surface
			continue
		}
		diffuse := sample.Strength * diffuseDot

		specular := 0.0
		lightReflection := sample.Direction.Reflect(hit.Normal)
		if specularDot := lightReflection.Dot(ray.Direction); specularDot > 0 {
			specular = sample.Strength * math.Pow(specularDot, hit.Material.SpecularExp)
		}

		if w.config.Lighting == core.LightingClamped {
			diffuse = clamp01(diffuse)
			specular = clamp01(specular)
		}

		result.Diffuse += diffuse
		result.Specular += specular
	}

	return result
}

// perturb rotates direction about the x, y and z axes in turn, each by an
// angle drawn uniformly from [0, rough*π/2]
func perturb(direction core.Vec3, rough float64, random *rand.Rand) core.Vec3 {
	limit := rough * math.Pi / 2
	angles := core.NewVec3(
		random.Float64()*limit,
		random.Float64()*limit,
		random.Float64()*limit,
	)
	return direction.Rotate(angles)
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
