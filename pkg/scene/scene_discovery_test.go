package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"mirror-room", "Mirror Room"},
		{"red_sphere", "Red Sphere"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneFileMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name:    "complete_metadata.json",
			content: `{"name": "Mirror Room", "description": "Two facing mirrors", "group": "Mirrors", "width": 640, "height": 480, "lighting": "clamped"}`,
			expected: SceneInfo{
				ID:          "file:complete_metadata",
				Name:        "Mirror Room",
				DisplayName: "Mirror Room",
				Description: "Two facing mirrors",
				Group:       "Mirrors",
				Type:        "file",
				Width:       640,
				Height:      480,
				Lighting:    "clamped",
			},
		},
		{
			name:    "no_metadata.json",
			content: `{"background": [0, 0, 0]}`,
			expected: SceneInfo{
				ID:          "file:no_metadata",
				Name:        "No Metadata", // From filename
				DisplayName: "No Metadata",
				Group:       sceneFileGroup,
				Type:        "file",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("Failed to write temp file: %v", err)
			}

			result, err := ParseSceneFileMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneFileMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseSceneFileMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b-scene.json": `{"name": "Beta"}`,
		"a-scene.json": `{"name": "Alpha"}`,
		"broken.json":  `{"name": `,
		"notes.txt":    `not a scene`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].DisplayName != "Alpha" || scenes[1].DisplayName != "Beta" {
		t.Errorf("Expected scenes sorted by display name, got %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Errorf("ListSceneFiles() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty slice, got %v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "extra.json"), []byte(`{"name": "Extra"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}
	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}

	builtIn := response.Groups[0]
	if builtIn.Name != builtinGroup {
		t.Fatalf("Expected built-in group first, got %q", builtIn.Name)
	}

	expectedScenes := Names()
	if len(builtIn.Scenes) != len(expectedScenes) {
		t.Errorf("Built-in scenes count = %d, want %d", len(builtIn.Scenes), len(expectedScenes))
	}
	sceneIDs := make(map[string]bool)
	for _, scene := range builtIn.Scenes {
		sceneIDs[scene.ID] = true
		if scene.Type != "builtin" || scene.Width <= 0 || scene.Height <= 0 || scene.Lighting == "" {
			t.Errorf("Incomplete built-in scene info: %+v", scene)
		}
	}
	for _, expectedID := range expectedScenes {
		if !sceneIDs[expectedID] {
			t.Errorf("Missing expected built-in scene: %s", expectedID)
		}
	}

	files := response.Groups[1]
	if files.Name != sceneFileGroup || len(files.Scenes) != 1 || files.Scenes[0].ID != "file:extra" {
		t.Errorf("Unexpected scene file group: %+v", files)
	}
}
