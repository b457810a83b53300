package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

type builtinScene struct {
	info  SceneInfo
	build func() (*Scene, error)
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Mirror and dull spheres on a red floor in front of a blue wall",
		},
		build: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "fuzzy",
			Name:        "Fuzzy Mirror",
			Description: "Default scene with a rough mirror on the big sphere",
		},
		build: NewFuzzyScene,
	},
	{
		info: SceneInfo{
			ID:          "spheres",
			Name:        "Mirror Spheres",
			Description: "Spheres only, perfect mirrors, clamped lighting",
		},
		build: NewSpheresScene,
	},
	{
		info: SceneInfo{
			ID:          "red-sphere",
			Name:        "Red Sphere",
			Description: "Single matte red sphere lit from above",
		},
		build: NewRedSphereScene,
	},
}

// Create builds the built-in scene registered under name
func Create(name string) (*Scene, error) {
	id := strings.ToLower(strings.TrimSpace(name))
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.build()
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// Names returns the IDs of all built-in scenes, sorted
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		names = append(names, b.info.ID)
	}
	sort.Strings(names)
	return names
}

// ListBuiltinScenes returns metadata for every built-in scene, including its
// recommended size and lighting model
func ListBuiltinScenes() ([]SceneInfo, error) {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		s, err := b.build()
		if err != nil {
			return nil, err
		}
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = "builtin"
		info.Width = s.Width
		info.Height = s.Height
		info.Lighting = string(s.Shading.Lighting)
		infos = append(infos, info)
	}
	return infos, nil
}
