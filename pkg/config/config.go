package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/imageio"
	"github.com/df07/go-whitted-raytracer/pkg/storage"
)

// Config holds everything the command-line renderer needs
type Config struct {
	Scene       string // Built-in scene name
	SceneFile   string // JSON scene file; takes precedence over Scene
	ScenesDir   string // Directory scanned for JSON scene files
	Width       int    // 0 = scene recommendation
	Height      int    // 0 = scene recommendation
	Output      string // Output path; empty = output/<scene>/render_<timestamp>.png
	MaxDepth    int    // 0 = scene recommendation
	Lighting    string // Empty = scene recommendation
	Workers     int    // 0 = CPU count
	TileSize    int
	Seed        uint64
	Antialias   int // Box filter sample size, 0 = off
	Supersample int // Render at this multiple of the output size, then downsample
	Upload      bool
	Help        bool
	S3          storage.Config
}

// Default returns the built-in defaults
func Default() Config {
	return Config{
		Scene:       "default",
		ScenesDir:   "scenes",
		TileSize:    32,
		Seed:        1,
		Supersample: 1,
	}
}

// Load builds the configuration from defaults, then the .env file at envFile
// (a missing file is ignored), then the process environment, then args.
// Later sources override earlier ones.
func Load(envFile string, args []string) (Config, error) {
	cfg := Default()

	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to read %s: %w", envFile, err)
	}
	lookup := func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return cfg, err
	}

	flags := cfg.FlagSet(io.Discard)
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// applyEnv overrides fields from RAYTRACER_* and S3_* variables
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	str := func(key string, dst *string) {
		if value, ok := lookup(key); ok {
			*dst = value
		}
	}
	num := func(key string, dst *int) {
		if value, ok := lookup(key); ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	str("RAYTRACER_SCENE", &c.Scene)
	str("RAYTRACER_SCENE_FILE", &c.SceneFile)
	str("RAYTRACER_SCENES_DIR", &c.ScenesDir)
	str("RAYTRACER_OUTPUT", &c.Output)
	str("RAYTRACER_LIGHTING", &c.Lighting)
	num("RAYTRACER_WIDTH", &c.Width)
	num("RAYTRACER_HEIGHT", &c.Height)
	num("RAYTRACER_MAX_DEPTH", &c.MaxDepth)
	num("RAYTRACER_WORKERS", &c.Workers)
	num("RAYTRACER_TILE_SIZE", &c.TileSize)
	num("RAYTRACER_ANTIALIAS", &c.Antialias)
	num("RAYTRACER_SUPERSAMPLE", &c.Supersample)

	if value, ok := lookup("RAYTRACER_SEED"); ok {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("RAYTRACER_SEED: %w", err))
		} else {
			c.Seed = seed
		}
	}
	if value, ok := lookup("RAYTRACER_UPLOAD"); ok {
		upload, err := strconv.ParseBool(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("RAYTRACER_UPLOAD: %w", err))
		} else {
			c.Upload = upload
		}
	}

	str("S3_ACCESS_KEY", &c.S3.AccessKey)
	str("S3_SECRET_KEY", &c.S3.SecretKey)
	str("S3_ENDPOINT", &c.S3.Endpoint)
	str("S3_REGION", &c.S3.Region)
	str("S3_BUCKET", &c.S3.Bucket)
	str("S3_PREFIX", &c.S3.Prefix)
	str("S3_PUBLIC_URL", &c.S3.PublicURL)

	return errors.Join(errs...)
}

// FlagSet returns command-line flags bound to c, using the current field
// values as defaults. Usage output goes to w.
func (c *Config) FlagSet(w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(w)

	fs.StringVar(&c.Scene, "scene", c.Scene, "Built-in scene: default, fuzzy, spheres, red-sphere")
	fs.StringVar(&c.SceneFile, "scene-file", c.SceneFile, "JSON scene file (overrides -scene)")
	fs.StringVar(&c.ScenesDir, "scenes-dir", c.ScenesDir, "Directory of JSON scene files")
	fs.IntVar(&c.Width, "width", c.Width, "Image width (0 = scene default)")
	fs.IntVar(&c.Height, "height", c.Height, "Image height (0 = scene default)")
	fs.StringVar(&c.Output, "output", c.Output, "Output file, .ppm or .png (default output/<scene>/render_<timestamp>.png)")
	fs.IntVar(&c.MaxDepth, "max-depth", c.MaxDepth, "Maximum reflection depth (0 = scene default)")
	fs.StringVar(&c.Lighting, "lighting", c.Lighting, "Lighting model: unclamped or clamped (empty = scene default)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&c.TileSize, "tile-size", c.TileSize, "Tile edge length in pixels")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Seed for glossy reflections")
	fs.IntVar(&c.Antialias, "antialias", c.Antialias, "Box filter sample size (0 = off)")
	fs.IntVar(&c.Supersample, "supersample", c.Supersample, "Supersampling factor (1 = off)")
	fs.BoolVar(&c.Upload, "upload", c.Upload, "Upload the result to S3")
	fs.BoolVar(&c.Help, "help", c.Help, "Show help information")

	return fs
}

// Validate rejects nonsensical values
func (c Config) Validate() error {
	var errs []error

	if c.SceneFile == "" && c.Scene == "" {
		errs = append(errs, errors.New("either a scene or a scene file is required"))
	}
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("width and height must be non-negative, got %dx%d", c.Width, c.Height))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max depth must be non-negative, got %d", c.MaxDepth))
	}
	if _, err := core.ParseLightingModel(c.Lighting); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be non-negative, got %d", c.Workers))
	}
	if c.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile size must be positive, got %d", c.TileSize))
	}
	if c.Antialias < 0 {
		errs = append(errs, fmt.Errorf("antialias sample size must be non-negative, got %d", c.Antialias))
	}
	if c.Supersample < 1 {
		errs = append(errs, fmt.Errorf("supersample factor must be at least 1, got %d", c.Supersample))
	}
	if c.Output != "" {
		if _, err := imageio.FormatForPath(c.Output); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Upload && !c.S3.Enabled() {
		errs = append(errs, fmt.Errorf("-upload requires S3_BUCKET: %w", storage.ErrNotConfigured))
	}

	return errors.Join(errs...)
}

// ShadingOverrides returns the shading settings given on the command line.
// Zero fields leave the scene's recommendation in place.
func (c Config) ShadingOverrides() core.ShadingConfig {
	shading := core.ShadingConfig{MaxDepth: c.MaxDepth}
	if c.Lighting != "" {
		shading.Lighting, _ = core.ParseLightingModel(c.Lighting)
	}
	return shading
}
