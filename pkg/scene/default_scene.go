package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates the reference scene: a mirror sphere and two dull
// spheres standing on a red floor in front of a blue wall, with a small
// mirror triangle hanging at the top right
func NewDefaultScene() (*Scene, error) {
	return newDefaultScene("default", material.NewMirror())
}

// NewFuzzyScene creates the reference scene with a rough mirror on the big sphere
func NewFuzzyScene() (*Scene, error) {
	return newDefaultScene("fuzzy", material.NewFuzzyMirror())
}

func newDefaultScene(name string, bigSphere material.Material) (*Scene, error) {
	b := newSceneBuilder(name, core.NewColor(0.5, 0.5, 1))
	b.scene.Width = 1000
	b.scene.Height = 1000

	// Create materials
	red := core.NewColor(1, 0, 0)
	green := core.NewColor(0, 1, 0)
	blue := core.NewColor(0, 0, 1)

	mirror := material.NewMirror()
	shinyRed := material.NewShiny(red)
	shinyBlue := material.NewShiny(blue)
	dullRed := material.NewDull(red, 20)
	dullGreen := material.NewDull(green, 40)

	// Spheres
	b.check(b.scene.AddSphere(core.NewVec3(1, 0, -9), 1, bigSphere))
	b.check(b.scene.AddSphere(core.NewVec3(-1, 0, -10), 0.5, dullRed))
	b.check(b.scene.AddSphere(core.NewVec3(-1, -1, -6), 0.5, dullGreen))

	// Floor and back wall
	b.check(b.scene.AddQuad(
		core.NewVec3(4, -2, -4),
		core.NewVec3(4, -2, -12),
		core.NewVec3(-4, -2, -12),
		core.NewVec3(-4, -2, -4),
		shinyRed,
	))
	b.check(b.scene.AddQuad(
		core.NewVec3(4, -2, -12),
		core.NewVec3(4, 4, -12),
		core.NewVec3(-4, 4, -12),
		core.NewVec3(-4, -2, -12),
		shinyBlue,
	))

	b.check(b.scene.AddTriangle(
		core.NewVec3(4, 2, -8.5),
		core.NewVec3(2, 2, -11.5),
		core.NewVec3(2, 4, -8.5),
		mirror,
	))

	b.check(b.scene.AddLight(core.NewVec3(-2, 5, -6), 1))
	b.check(b.scene.AddLight(core.NewVec3(2, 5, -6), 0.5))

	return b.build()
}
