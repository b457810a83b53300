package renderer

import (
	"image"
	"math/rand/v2"
)

// DefaultTileSize is the edge length of a square render tile in pixels
const DefaultTileSize = 32

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)

	source *rand.PCG  // Reseeded for every pixel
	random *rand.Rand // Draws from source
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	source := rand.NewPCG(0, 0)
	return &Tile{
		ID:     id,
		Bounds: bounds,
		source: source,
		random: rand.New(source),
	}
}

// pixelRandom reseeds the tile's generator for one pixel. The stream depends
// only on the render seed and the pixel's row-major index, never on which
// tile or worker renders it.
func (t *Tile) pixelRandom(seed uint64, pixelIndex int) *rand.Rand {
	t.source.Seed(seed, uint64(pixelIndex))
	return t.random
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}
