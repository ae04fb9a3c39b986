package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered scene in the output manifest.
type ManifestEntry struct {
	Scene     string `json:"scene"`
	Image     string `json:"image"`
	Shapes    int    `json:"shapes"`
	Lights    int    `json:"lights"`
	Triangles int    `json:"triangles"`
	Frames    int    `json:"frames"`
}

// WriteManifest writes the successful results to path as JSON.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Scene:     r.Scene,
			Image:     r.Image,
			Shapes:    r.Shapes,
			Lights:    r.Lights,
			Triangles: r.Triangles,
			Frames:    r.Frames,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
