package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/imageio"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	camera     *Camera
	seed       uint64
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene *scene.Scene, integratorInst integrator.Integrator, camera *Camera, seed uint64) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		integrator: integratorInst,
		camera:     camera,
		seed:       seed,
	}
}

// RenderTile renders every pixel of the tile into img, row by row.
// Only pixels inside tile.Bounds are written, so tiles with disjoint bounds
// may render into the same image concurrently.
func (tr *TileRenderer) RenderTile(tile *Tile, img *imageio.Image) RenderStats {
	return tr.RenderTileBounds(tile.Bounds, tile, img)
}

// RenderTileBounds renders the pixels within bounds using the tile's generator
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, tile *Tile, img *imageio.Image) RenderStats {
	stats := RenderStats{Tiles: 1}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ray := tr.camera.GetRay(i, j)
			random := tile.pixelRandom(tr.seed, j*img.Width+i)

			color, trace := tr.integrator.RayColor(ray, tr.scene, random)
			img.Set(i, j, color)
			stats.AddPixel(trace)
		}
	}

	return stats
}
