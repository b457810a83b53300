package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/storage"
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	uploader  *storage.Uploader // nil when uploads are not configured
}

// NewServer creates a new web server. Scene files are listed from scenesDir.
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// SetUploader publishes every completed render through uploader
func (s *Server) SetUploader(uploader *storage.Uploader) {
	s.uploader = uploader
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string             `json:"scene"`    // Built-in scene ID or "file:<name>"
	Width    int                `json:"width"`    // Image width
	Height   int                `json:"height"`   // Image height
	MaxDepth int                `json:"maxDepth"` // 0 = scene recommendation
	Lighting core.LightingModel `json:"lighting"` // Empty = scene recommendation
	Seed     uint64             `json:"seed"`
}

// Handler returns the HTTP handler serving the API and static files
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files, grouped for display
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseSceneParams parses the parameters shared by render and inspect requests
func (s *Server) parseSceneParams(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default"}

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 10, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 400, 10, 2000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 0, 0, 50); err != nil {
		return nil, err
	}
	if lighting := query.Get("lighting"); lighting != "" {
		if req.Lighting, err = core.ParseLightingModel(lighting); err != nil {
			return nil, err
		}
	}

	req.Seed = 1
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseUint(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene and applies the request's shading
// overrides. Scene files are addressed as "file:<name>" and must live in the
// scenes directory.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	var sceneObj *scene.Scene
	var err error

	if name, ok := strings.CutPrefix(req.Scene, "file:"); ok {
		if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			return nil, fmt.Errorf("invalid scene file name: %q", name)
		}
		sceneObj, err = scene.LoadFile(filepath.Join(s.scenesDir, name+".json"))
	} else {
		sceneObj, err = scene.Create(req.Scene)
	}
	if err != nil {
		return nil, err
	}

	sceneObj.Shading = core.MergeShadingConfig(sceneObj.Shading, core.ShadingConfig{
		MaxDepth: req.MaxDepth,
		Lighting: req.Lighting,
	})
	return sceneObj, nil
}

// writeJSON writes v with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// errorStatus maps scene errors to HTTP status codes
func errorStatus(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) || errors.Is(err, fs.ErrNotExist) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
