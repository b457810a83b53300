package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/imageio"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderConfig contains configuration for parallel rendering
type RenderConfig struct {
	TileSize   int    // Edge length of square tiles (0 = DefaultTileSize)
	NumWorkers int    // Number of parallel workers (0 = use CPU count)
	Seed       uint64 // Seed for glossy reflection jitter
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   DefaultTileSize,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       1,
	}
}

// TileCompletionResult reports a finished tile during Render
type TileCompletionResult struct {
	Tile       *Tile
	TileNumber int         // Completion order (1-based)
	TotalTiles int         // Total number of tiles in the image
	Image      *image.RGBA // Quantized pixels of just this tile
}

// RenderOptions controls optional Render behaviour
type RenderOptions struct {
	TileCallback func(TileCompletionResult) // Called from the collecting goroutine as tiles finish
}

// Raytracer renders a scene through a camera with an integrator
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	camera     *Camera
	width      int
	height     int
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a raytracer for a width × height image. The scene's
// shading configuration selects the integrator's depth and lighting model.
func NewRaytracer(scene *scene.Scene, width, height int, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	camera, err := NewCamera(width, height)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NopLogger{}
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}

	return &Raytracer{
		scene:      scene,
		integrator: integrator.NewWhittedIntegrator(scene.Shading),
		camera:     camera,
		width:      width,
		height:     height,
		config:     config,
		logger:     logger,
	}, nil
}

// SetIntegrator replaces the integrator used for every pixel
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Render renders the image in parallel tiles. Cancelling ctx stops the render
// between tiles and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context, options ...RenderOptions) (*imageio.Image, RenderStats, error) {
	var opts RenderOptions
	if len(options) > 0 {
		opts = options[0]
	}

	img, err := imageio.NewImage(rt.width, rt.height)
	if err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize)
	tileRenderer := NewTileRenderer(rt.scene, rt.integrator, rt.camera, rt.config.Seed)

	pool := NewWorkerPool(tileRenderer, len(tiles), rt.config.NumWorkers)
	pool.Start(ctx)

	rt.logger.Printf("Rendering %s at %dx%d: %d primitives, %d lights, %d tiles on %d workers\n",
		rt.scene.Name, rt.width, rt.height, rt.scene.GetPrimitiveCount(), len(rt.scene.Lights), len(tiles), pool.GetNumWorkers())

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Image: img})
	}
	go pool.Stop()

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var renderErr error
	completed := 0
	nextReport := 10

	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			renderErr = result.Error
			continue
		}

		completed++
		stats.Merge(result.Stats)

		if opts.TileCallback != nil {
			opts.TileCallback(TileCompletionResult{
				Tile:       result.Tile,
				TileNumber: completed,
				TotalTiles: len(tiles),
				Image:      img.SubImageRGBA(result.Tile.Bounds),
			})
		}

		if percent := completed * 100 / len(tiles); percent >= nextReport {
			rt.logger.Printf("Rendered %d/%d tiles (%d%%)\n", completed, len(tiles), percent)
			nextReport = percent/10*10 + 10
		}
	}

	stats.Duration = time.Since(startTime)

	if renderErr != nil {
		rt.logger.Printf("Rendering cancelled after %d/%d tiles\n", completed, len(tiles))
		return nil, stats, fmt.Errorf("render cancelled: %w", renderErr)
	}

	rt.logger.Printf("Render completed in %v: %d rays, %d shadow rays, max depth %d\n",
		stats.Duration, stats.TotalRays, stats.TotalShadowRays, stats.MaxDepthReached)

	return img, stats, nil
}

// RenderSequential renders the image in scanline order on the calling
// goroutine. It produces exactly the same pixels as Render.
func (rt *Raytracer) RenderSequential() (*imageio.Image, RenderStats, error) {
	img, err := imageio.NewImage(rt.width, rt.height)
	if err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	tile := NewTile(0, img.Bounds())
	tileRenderer := NewTileRenderer(rt.scene, rt.integrator, rt.camera, rt.config.Seed)

	stats := tileRenderer.RenderTile(tile, img)
	stats.Workers = 1
	stats.Duration = time.Since(startTime)

	return img, stats, nil
}
