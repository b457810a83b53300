package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/fogleman/gg"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/imageio"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/storage"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completion order (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// CompleteUpdate is the final event of a successful render
type CompleteUpdate struct {
	RenderID        string  `json:"renderId"`
	Scene           string  `json:"scene"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	ImageData       string  `json:"imageData"` // Base64 encoded PNG of the whole image
	ElapsedMs       int64   `json:"elapsedMs"`
	TotalRays       int     `json:"totalRays"`
	TotalShadowRays int     `json:"totalShadowRays"`
	RaysPerPixel    float64 `json:"raysPerPixel"`
	MaxDepthReached int     `json:"maxDepthReached"`
	PrimitiveCount  int     `json:"primitiveCount"`
	URL             string  `json:"url,omitempty"` // Set when the render was uploaded
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene and streams console output, finished tiles
// and the final image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	// Parse and validate request
	req, err := s.parseSceneParams(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Setup console logging and streaming
	renderID, consoleChan, webLogger := s.setupConsoleLogging()
	var consoleDone sync.WaitGroup
	consoleDone.Add(1)
	go func() {
		defer consoleDone.Done()
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()
	stopConsole := func() {
		close(consoleChan)
		consoleDone.Wait()
	}

	update, err := s.render(ctx, req, renderID, webLogger, sseEventChan)
	stopConsole()
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	data, err := json.Marshal(update)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode result: %v", err))
		return
	}
	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// render runs one render, forwarding finished tiles as they arrive
func (s *Server) render(ctx context.Context, req *RenderRequest, renderID string, logger core.Logger, sseEventChan chan SSEEvent) (*CompleteUpdate, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	config := renderer.DefaultRenderConfig()
	config.Seed = req.Seed
	raytracer, err := renderer.NewRaytracer(sceneObj, req.Width, req.Height, config, logger)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	img, stats, err := raytracer.Render(ctx, renderer.RenderOptions{
		TileCallback: func(result renderer.TileCompletionResult) {
			s.handleTileUpdate(ctx, sseEventChan, result)
		},
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imageio.WritePNG(&buf, img); err != nil {
		return nil, err
	}

	update := &CompleteUpdate{
		RenderID:        renderID,
		Scene:           sceneObj.Name,
		Width:           req.Width,
		Height:          req.Height,
		ImageData:       base64.StdEncoding.EncodeToString(buf.Bytes()),
		ElapsedMs:       time.Since(startTime).Milliseconds(),
		TotalRays:       stats.TotalRays,
		TotalShadowRays: stats.TotalShadowRays,
		RaysPerPixel:    stats.AverageRaysPerPixel(),
		MaxDepthReached: stats.MaxDepthReached,
		PrimitiveCount:  sceneObj.GetPrimitiveCount(),
	}

	if s.uploader != nil {
		key := storage.ObjectKey("", renderID, imageio.FormatPNG)
		url, err := s.uploader.Upload(ctx, buf.Bytes(), key, imageio.FormatPNG.ContentType())
		if err != nil {
			// The image is still delivered inline
			logger.Printf("Upload failed: %v\n", err)
		} else {
			update.URL = url
		}
	}

	return update, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (string, chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := storage.NewRenderID()
	webLogger := NewWebLogger(renderID, consoleChan)
	return renderID, consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe).
// It returns once sseEventChan is closed and drained, or the client disconnects.
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	broken := false
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if broken {
				continue
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write; drain so senders never block
				broken = true
				continue
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
			// Client disconnected, keep draining so loggers never block
		}
	}
}

// handleTileUpdate processes and sends tile update events
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan SSEEvent, tileResult renderer.TileCompletionResult) {
	// Check if client is still connected
	select {
	case <-ctx.Done():
		return
	default:
	}

	tileData, err := s.imageToBase64PNG(tileResult.Image)
	if err != nil {
		log.Printf("Error encoding tile %d: %v", tileResult.Tile.ID, err)
		return
	}

	update := TileUpdate{
		TileX:      tileResult.Tile.Bounds.Min.X,
		TileY:      tileResult.Tile.Bounds.Min.Y,
		ImageData:  tileData,
		TileNumber: tileResult.TileNumber,
		TotalTiles: tileResult.TotalTiles,
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling tile update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "tile", Data: string(data)}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img *image.RGBA) (string, error) {
	var buf bytes.Buffer
	if err := gg.NewContextForRGBA(img).EncodePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
