package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewSpheresScene creates a spheres-only scene of perfect mirrors resting on a
// large matte ground sphere. Per-light contributions are clamped, which keeps
// the stacked highlights of neighbouring mirrors from blowing out.
func NewSpheresScene() (*Scene, error) {
	b := newSceneBuilder("spheres", core.NewColor(0.5, 0.5, 1))
	b.scene.Width = 800
	b.scene.Height = 600
	b.scene.Shading.Lighting = core.LightingClamped

	mirror := material.Material{
		Ambient:     0.1,
		Specular:    1,
		SpecularExp: 40,
		Reflective:  1,
	}
	tinted := func(c core.Color) material.Material {
		m := mirror
		m.Diffuse = c
		m.Reflective = 0.5
		return m
	}

	// Ground
	b.check(b.scene.AddSphere(core.NewVec3(0, -1001, -10), 1000, material.NewDull(core.NewColor(0.6, 0.6, 0.6), 10)))

	// Row of mirrors, the middle one untinted
	b.check(b.scene.AddSphere(core.NewVec3(0, 0, -10), 1, mirror))
	b.check(b.scene.AddSphere(core.NewVec3(-2.2, 0, -9), 1, tinted(core.NewColor(1, 0, 0))))
	b.check(b.scene.AddSphere(core.NewVec3(2.2, 0, -9), 1, tinted(core.NewColor(0, 0, 1))))
	b.check(b.scene.AddSphere(core.NewVec3(0, -0.5, -7), 0.5, tinted(core.NewColor(0, 1, 0))))

	b.check(b.scene.AddLight(core.NewVec3(-3, 6, -4), 1))
	b.check(b.scene.AddLight(core.NewVec3(4, 4, -5), 0.6))

	return b.build()
}

// NewRedSphereScene creates a single matte red sphere straight ahead of the
// camera on a black background, lit from above
func NewRedSphereScene() (*Scene, error) {
	b := newSceneBuilder("red-sphere", core.NewColor(0, 0, 0))
	b.scene.Width = 400
	b.scene.Height = 400

	b.check(b.scene.AddSphere(core.NewVec3(0, 0, -3), 1, material.NewMatte(core.NewColor(1, 0, 0))))
	b.check(b.scene.AddLight(core.NewVec3(0, 10, 0), 1))

	return b.build()
}
