package server

import (
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit                bool                   `json:"hit"`
	GeometryType       string                 `json:"geometryType,omitempty"`
	Point              [3]float64             `json:"point"`
	Normal             [3]float64             `json:"normal"`
	Distance           float64                `json:"distance"`
	FrontFace          bool                   `json:"frontFace"`
	Color              [3]float64             `json:"color"` // Unclamped shaded color of the pixel
	Diffuse            float64                `json:"diffuse"`
	Specular           float64                `json:"specular"`
	ShadowRays         int                    `json:"shadowRays"`
	Material           map[string]interface{} `json:"material,omitempty"`
	GeometryProperties map[string]interface{} `json:"geometryProperties,omitempty"`
}

// InspectResult contains the hit record and shape seen through one pixel
type InspectResult struct {
	Hit       bool
	HitRecord geometry.HitRecord
	Ray       core.Ray
	Shape     geometry.Shape // nil on a miss
}

// handleInspect reports what the camera sees through one pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseSceneParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	x, err := parseIntParam(r.URL.Query(), "x", -1, 0, req.Width-1)
	if err == nil && x < 0 {
		err = fmt.Errorf("x is required")
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	y, err := parseIntParam(r.URL.Query(), "y", -1, 0, req.Height-1)
	if err == nil && y < 0 {
		err = fmt.Errorf("y is required")
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, errorStatus(err), map[string]string{"error": err.Error()})
		return
	}

	result, err := inspectPixel(sceneObj, req.Width, req.Height, x, y)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	response := InspectResponse{Hit: result.Hit}

	whitted := integrator.NewWhittedIntegrator(sceneObj.Shading)
	random := rand.New(rand.NewPCG(req.Seed, uint64(y*req.Width+x)))
	color, _ := whitted.RayColor(result.Ray, sceneObj, random)
	response.Color = [3]float64{color.R, color.G, color.B}

	if result.Hit {
		hit := result.HitRecord
		lighting := whitted.DirectLighting(sceneObj, hit, result.Ray)

		response.Point = vec(hit.Point)
		response.Normal = vec(hit.Normal)
		response.Distance = hit.T
		response.FrontFace = hit.FrontFace
		response.Diffuse = lighting.Diffuse
		response.Specular = lighting.Specular
		response.ShadowRays = lighting.ShadowRays
		response.Material = extractMaterialInfo(hit.Material)
		response.GeometryType, response.GeometryProperties = extractGeometryInfo(result.Shape)
	}

	writeJSON(w, http.StatusOK, response)
}

// inspectPixel casts the camera ray through the given pixel and returns the
// nearest object it hits
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) (InspectResult, error) {
	camera, err := renderer.NewCamera(width, height)
	if err != nil {
		return InspectResult{}, err
	}
	ray := camera.GetRay(pixelX, pixelY)

	hit, isHit := sceneObj.Hit(ray)
	if !isHit {
		return InspectResult{Ray: ray}, nil
	}

	// Find the shape the scene query settled on; the first at the same
	// distance wins, as in the scene's own scan
	for _, shape := range sceneObj.Shapes() {
		if t, ok := shape.Hit(ray); ok && t == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Ray: ray, Shape: shape}, nil
		}
	}

	return InspectResult{Hit: true, HitRecord: hit, Ray: ray}, nil
}

// extractMaterialInfo lists a material's coefficients
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"diffuse":     [3]float64{mat.Diffuse.R, mat.Diffuse.G, mat.Diffuse.B},
		"ambient":     mat.Ambient,
		"specular":    mat.Specular,
		"specularExp": mat.SpecularExp,
		"reflective":  mat.Reflective,
		"rough":       mat.Rough,
	}
	r, g, b := quantizeHex(mat.Diffuse)
	properties["color"] = fmt.Sprintf("#%02x%02x%02x", r, g, b)
	if mat.IsGlossy() {
		properties["glossy"] = true
	}
	return properties
}

// extractGeometryInfo describes the hit shape
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vec(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vec(geom.V0), vec(geom.V1), vec(geom.V2)}
		properties["normal"] = vec(geom.GetNormal())
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func quantizeHex(c core.Color) (int, int, int) {
	clamped := c.Clamp(0, 1)
	return int(clamped.R * 255), int(clamped.G * 255), int(clamped.B * 255)
}
