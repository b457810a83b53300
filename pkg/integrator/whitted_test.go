package integrator

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// createTestScene creates a matte floor triangle under a single light
func createTestScene(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.NewScene("test", core.NewColor(0.2, 0.3, 0.4))
	floor := material.Material{Diffuse: core.NewColor(1, 1, 1), Specular: 1, SpecularExp: 10}
	if err := s.AddQuad(
		core.NewVec3(-10, -1, 10),
		core.NewVec3(10, -1, 10),
		core.NewVec3(10, -1, -10),
		core.NewVec3(-10, -1, -10),
		floor,
	); err != nil {
		t.Fatalf("AddQuad: %v", err)
	}
	if err := s.AddLight(core.NewVec3(0, 5, -3), 1); err != nil {
		t.Fatalf("AddLight: %v", err)
	}
	return s
}

func newRandom() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestCastRay_MissReturnsBackground(t *testing.T) {
	s := createTestScene(t)
	integrator := NewWhittedIntegrator(core.ShadingConfig{})

	color, stats := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), s, newRandom())
	if color != s.Background {
		t.Errorf("Expected background %v, got %v", s.Background, color)
	}
	if stats.Rays != 1 || stats.ShadowRays != 0 {
		t.Errorf("Expected one ray and no shadow rays, got %+v", stats)
	}
}

func TestCastRay_AtMaxDepthReturnsBackground(t *testing.T) {
	s := createTestScene(t)
	integrator := NewWhittedIntegrator(core.ShadingConfig{MaxDepth: 5})

	var stats TraceStats
	down := core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, -1, 0))
	color := integrator.CastRay(down, s, newRandom(), 5, &stats)
	if color != s.Background {
		t.Errorf("Expected background at max depth, got %v", color)
	}
	if stats.Rays != 0 {
		t.Errorf("Expected no intersection queries at max depth, got %d", stats.Rays)
	}
}

func TestCastRay_LitFloor(t *testing.T) {
	s := createTestScene(t)
	integrator := NewWhittedIntegrator(core.ShadingConfig{})

	// Straight down onto the floor directly below the light
	color, stats := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, -1, 0)), s, newRandom())

	// diffuse = strength * cos = 1, specular = strength * 1^10 = 1
	expected := core.NewColor(2, 2, 2)
	if math.Abs(color.R-expected.R) > 1e-9 || math.Abs(color.G-expected.G) > 1e-9 || math.Abs(color.B-expected.B) > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, color)
	}
	if stats.Rays != 1 || stats.ShadowRays != 1 {
		t.Errorf("Reflective 0 must not recurse, got %+v", stats)
	}
}

func TestDirectLighting_OccluderBlocksLight(t *testing.T) {
	s := createTestScene(t)
	integrator := NewWhittedIntegrator(core.ShadingConfig{})
	ray := core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, -1, 0))

	hit, ok := s.Hit(ray)
	if !ok {
		t.Fatal("Expected floor hit")
	}
	unblocked := integrator.DirectLighting(s, hit, ray)
	if unblocked.Diffuse <= 0 || unblocked.Specular <= 0 {
		t.Fatalf("Expected light to reach the floor, got %+v", unblocked)
	}

	// Opaque sphere halfway between the floor point and the light
	if err := s.AddSphere(core.NewVec3(0, 2, -3), 0.5, material.NewMatte(core.NewColor(1, 1, 1))); err != nil {
		t.Fatal(err)
	}
	blocked := integrator.DirectLighting(s, hit, ray)
	if blocked.Diffuse != 0 || blocked.Specular != 0 {
		t.Errorf("Expected zero light behind the occluder, got %+v", blocked)
	}
	if blocked.ShadowRays != 1 {
		t.Errorf("Expected one shadow ray, got %d", blocked.ShadowRays)
	}
}

func TestDirectLighting_OccluderBeyondLightStillShadows(t *testing.T) {
	s := createTestScene(t)
	integrator := NewWhittedIntegrator(core.ShadingConfig{})
	ray := core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, -1, 0))
	hit, _ := s.Hit(ray)

	// The sphere sits above the light, farther away than the light itself
	if err := s.AddSphere(core.NewVec3(0, 10, -3), 1, material.NewMatte(core.NewColor(1, 1, 1))); err != nil {
		t.Fatal(err)
	}
	if result := integrator.DirectLighting(s, hit, ray); result.Diffuse != 0 || result.Specular != 0 {
		t.Errorf("Shadow rays are not capped at the light distance, got %+v", result)
	}
}

func TestDirectLighting_LightBehindSurface(t *testing.T) {
	s := scene.NewScene("behind", core.NewColor(0, 0, 0))
	if err := s.AddLight(core.NewVec3(0, -5, 0), 1); err != nil {
		t.Fatal(err)
	}
	hit := geometry.HitRecord{
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		Material: material.Material{Specular: 1, SpecularExp: 1},
	}

	result := NewWhittedIntegrator(core.ShadingConfig{}).DirectLighting(s, hit, core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)))
	if result.Diffuse != 0 || result.Specular != 0 {
		t.Errorf("Expected no light from behind the surface, got %+v", result)
	}
}

func TestDirectLighting_LightingModels(t *testing.T) {
	s := scene.NewScene("bright", core.NewColor(0, 0, 0))
	if err := s.AddLight(core.NewVec3(0, 5, 0), 3); err != nil {
		t.Fatal(err)
	}
	if err := s.AddLight(core.NewVec3(0, 7, 0), 0.5); err != nil {
		t.Fatal(err)
	}
	hit := geometry.HitRecord{
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		Material: material.Material{Specular: 1, SpecularExp: 1},
	}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	tests := []struct {
		model    core.LightingModel
		diffuse  float64
		specular float64
	}{
		{core.LightingUnclamped, 3.5, 3.5},
		{core.LightingClamped, 1.5, 1.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.model), func(t *testing.T) {
			integrator := NewWhittedIntegrator(core.ShadingConfig{Lighting: tt.model})
			result := integrator.DirectLighting(s, hit, ray)
			if math.Abs(result.Diffuse-tt.diffuse) > 1e-9 || math.Abs(result.Specular-tt.specular) > 1e-9 {
				t.Errorf("Expected diffuse=%f specular=%f, got %+v", tt.diffuse, tt.specular, result)
			}
		})
	}
}

func TestCastRay_DepthBoundBetweenMirrors(t *testing.T) {
	s := scene.NewScene("hall of mirrors", core.NewColor(1, 0.5, 0.25))
	mirror := material.Material{Reflective: 0.7}
	for _, z := range []float64{-1, 1} {
		if err := s.AddQuad(
			core.NewVec3(-10, -10, z),
			core.NewVec3(10, -10, z),
			core.NewVec3(10, 10, z),
			core.NewVec3(-10, 10, z),
			mirror,
		); err != nil {
			t.Fatal(err)
		}
	}
	ray := core.NewRay(core.NewVec3(1, -3, 0), core.NewVec3(0, 0, -1))

	for _, maxDepth := range []int{1, 2, 5} {
		integrator := NewWhittedIntegrator(core.ShadingConfig{MaxDepth: maxDepth})
		color, stats := integrator.RayColor(ray, s, newRandom())

		if stats.Rays != maxDepth || stats.Depth != maxDepth {
			t.Errorf("MaxDepth %d: expected %d rays at depth %d, got %+v", maxDepth, maxDepth, maxDepth, stats)
		}

		// Every bounce hits a mirror, then the last level returns the background
		expected := s.Background.Multiply(math.Pow(0.7, float64(maxDepth)))
		if math.Abs(color.R-expected.R) > 1e-9 || math.Abs(color.G-expected.G) > 1e-9 || math.Abs(color.B-expected.B) > 1e-9 {
			t.Errorf("MaxDepth %d: expected %v, got %v", maxDepth, expected, color)
		}
	}
}

func TestCastRay_DepthBoundOnBuiltinScenes(t *testing.T) {
	for _, name := range scene.Names() {
		s, err := scene.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		integrator := NewWhittedIntegrator(s.Shading)
		random := newRandom()

		for i := 0; i < 200; i++ {
			dir := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, -1).Normalize()
			_, stats := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), dir), s, random)
			if stats.Rays > core.DefaultMaxDepth || stats.Depth > core.DefaultMaxDepth {
				t.Fatalf("%s: recursion exceeded max depth: %+v", name, stats)
			}
		}
	}
}

func TestRayColor_RedSphere(t *testing.T) {
	s, err := scene.Create("red-sphere")
	if err != nil {
		t.Fatal(err)
	}
	integrator := NewWhittedIntegrator(s.Shading)

	color, _ := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), s, newRandom())
	if color.R <= 0 {
		t.Errorf("Expected red channel > 0, got %v", color)
	}
	if math.Abs(color.G) > 1e-12 || math.Abs(color.B) > 1e-12 {
		t.Errorf("Expected green and blue ≈ 0, got %v", color)
	}
}

func TestRayColor_GlossyIsDeterministicPerSeed(t *testing.T) {
	s, err := scene.Create("fuzzy")
	if err != nil {
		t.Fatal(err)
	}
	integrator := NewWhittedIntegrator(s.Shading)

	// Aim at the fuzzy mirror sphere
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, -9).Normalize())
	trace := func(seed uint64) core.Color {
		color, _ := integrator.RayColor(ray, s, rand.New(rand.NewPCG(seed, 7)))
		return color
	}

	if a, b := trace(42), trace(42); a != b {
		t.Errorf("Same seed produced different colors: %v vs %v", a, b)
	}
}

func TestPerturb_StaysWithinRoughness(t *testing.T) {
	random := newRandom()
	direction := core.NewVec3(0, 0, -1)
	rough := 0.03
	maxAngle := 3 * rough * math.Pi / 2

	for i := 0; i < 1000; i++ {
		p := perturb(direction, rough, random)
		if math.Abs(p.Length()-1) > 1e-9 {
			t.Fatalf("Perturbed direction not unit length: %v", p)
		}
		if angle := math.Acos(math.Min(1, p.Dot(direction))); angle > maxAngle+1e-9 {
			t.Fatalf("Perturbation angle %f exceeds %f", angle, maxAngle)
		}
	}
}

func TestTraceStats_Add(t *testing.T) {
	stats := TraceStats{Rays: 2, ShadowRays: 3, Depth: 2}
	stats.Add(TraceStats{Rays: 5, ShadowRays: 1, Depth: 4})
	if stats != (TraceStats{Rays: 7, ShadowRays: 4, Depth: 4}) {
		t.Errorf("Unexpected sum %+v", stats)
	}
}
