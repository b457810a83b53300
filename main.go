package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/imageio"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/storage"
)

// Used when neither the flags nor the scene give a size
const (
	fallbackWidth  = 400
	fallbackHeight = 400
)

func main() {
	cfg, err := config.Load(".env", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		cfg.Help = true
	} else if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Show help if requested
	if cfg.Help {
		printHelp(cfg)
		return
	}

	if err := run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp(cfg config.Config) {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	cfg.FlagSet(os.Stdout).PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	fmt.Println("  default    - Mirror sphere, colored spheres, floor, back wall and a mirror triangle")
	fmt.Println("  fuzzy      - The default scene with a glossy big sphere")
	fmt.Println("  spheres    - Mirror spheres on a large ground sphere, clamped lighting")
	fmt.Println("  red-sphere - A single matte red sphere on black")
	fmt.Println()
	fmt.Println("Settings may also come from RAYTRACER_* and S3_* environment variables or a .env file.")
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless -output is given")
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, err := createScene(cfg)
	if err != nil {
		return err
	}
	selectedScene.Shading = core.MergeShadingConfig(selectedScene.Shading, cfg.ShadingOverrides())

	width, height := outputSize(cfg, selectedScene)
	fmt.Printf("Using %s scene at %dx%d (max depth %d, %s lighting)\n",
		selectedScene.Name, width, height, selectedScene.Shading.MaxDepth, selectedScene.Shading.Lighting)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, err := render(ctx, cfg, selectedScene, width, height)
	if err != nil {
		return err
	}

	filename := cfg.Output
	if filename == "" {
		filename = filepath.Join(createOutputDir(selectedScene.Name),
			fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	}
	if err := imageio.Save(filename, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	if cfg.Upload {
		url, err := upload(ctx, cfg, img, filename)
		if err != nil {
			return err
		}
		fmt.Printf("Render uploaded to %s\n", url)
	}

	return nil
}

// createScene builds the scene named by the configuration. A scene file takes
// precedence over a built-in scene name.
func createScene(cfg config.Config) (*scene.Scene, error) {
	if cfg.SceneFile != "" {
		return scene.LoadFile(cfg.SceneFile)
	}
	return scene.Create(cfg.Scene)
}

// outputSize resolves the final image size: flags first, then the scene's
// recommendation, then a fallback. A single given dimension keeps the
// scene's aspect ratio.
func outputSize(cfg config.Config, s *scene.Scene) (int, int) {
	width, height := s.Width, s.Height
	if width <= 0 || height <= 0 {
		width, height = fallbackWidth, fallbackHeight
	}

	switch {
	case cfg.Width > 0 && cfg.Height > 0:
		return cfg.Width, cfg.Height
	case cfg.Width > 0:
		return cfg.Width, max(1, cfg.Width*height/width)
	case cfg.Height > 0:
		return max(1, cfg.Height*width/height), cfg.Height
	default:
		return width, height
	}
}

// render traces the scene at supersample × the output size, downsamples to
// the output size and applies the box filter
func render(ctx context.Context, cfg config.Config, s *scene.Scene, width, height int) (*imageio.Image, error) {
	factor := max(cfg.Supersample, 1)

	raytracer, err := renderer.NewRaytracer(s, width*factor, height*factor, renderer.RenderConfig{
		TileSize:   cfg.TileSize,
		NumWorkers: cfg.Workers,
		Seed:       cfg.Seed,
	}, renderer.NewDefaultLogger())
	if err != nil {
		return nil, err
	}

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Rays per pixel: %.2f (%d shadow rays, deepest bounce %d)\n",
		stats.AverageRaysPerPixel(), stats.TotalShadowRays, stats.MaxDepthReached)

	if factor > 1 {
		if img, err = imageio.Downsample(img, width, height); err != nil {
			return nil, fmt.Errorf("failed to downsample: %w", err)
		}
	}
	if cfg.Antialias > 0 {
		if img, err = imageio.BoxFilter(img, cfg.Antialias); err != nil {
			return nil, fmt.Errorf("failed to antialias: %w", err)
		}
	}

	return img, nil
}

func upload(ctx context.Context, cfg config.Config, img *imageio.Image, filename string) (string, error) {
	uploader, err := storage.NewUploader(cfg.S3, renderer.NewDefaultLogger())
	if err != nil {
		return "", err
	}
	format, err := imageio.FormatForPath(filename)
	if err != nil {
		return "", err
	}
	return uploader.UploadImage(ctx, img, format, storage.NewRenderID())
}

// createOutputDir returns the directory renders of the named scene are saved
// to when no output path is given
func createOutputDir(sceneName string) string {
	base := strings.ToLower(strings.TrimSpace(sceneName))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, base)
	if strings.Trim(base, "-") == "" {
		base = "scene"
	}
	return filepath.Join("output", base)
}
