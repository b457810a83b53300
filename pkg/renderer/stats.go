package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalRays       int           // Nearest-hit queries, primary and reflected
	TotalShadowRays int           // Occlusion queries toward lights
	MaxDepthReached int           // Deepest recursion level reached by any pixel
	Tiles           int           // Number of tiles rendered
	Workers         int           // Number of workers used
	Duration        time.Duration // Wall-clock render time
}

// AddPixel accumulates the trace statistics of one pixel
func (rs *RenderStats) AddPixel(trace integrator.TraceStats) {
	rs.TotalPixels++
	rs.TotalRays += trace.Rays
	rs.TotalShadowRays += trace.ShadowRays
	rs.MaxDepthReached = max(rs.MaxDepthReached, trace.Depth)
}

// Merge accumulates the pixel counters of another set of stats
func (rs *RenderStats) Merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalRays += other.TotalRays
	rs.TotalShadowRays += other.TotalShadowRays
	rs.MaxDepthReached = max(rs.MaxDepthReached, other.MaxDepthReached)
	rs.Tiles += other.Tiles
}

// AverageRaysPerPixel returns the mean number of nearest-hit queries per pixel
func (rs RenderStats) AverageRaysPerPixel() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.TotalRays) / float64(rs.TotalPixels)
}
