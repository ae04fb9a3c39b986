// Package texture resolves the texture files referenced by scene materials.
// Textures are located, never decoded.
package texture

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"primscene/internal/scene"
)

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".tga": true, ".bmp": true, ".webp": true,
}

// Index maps lowercase file names and stems to filesystem paths.
// An exact file name match wins over a stem match.
type Index struct {
	names map[string]string // base.lower() → full path
	stems map[string]string // stem.lower() → full path
}

// BuildIndex scans dir and its subdirectories for image files.
func BuildIndex(dir string) *Index {
	idx := &Index{
		names: make(map[string]string),
		stems: make(map[string]string),
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !imageExts[ext] {
			return nil
		}
		base := strings.ToLower(filepath.Base(path))
		stem := strings.TrimSuffix(base, ext)

		if _, exists := idx.names[base]; !exists {
			idx.names[base] = path
		}
		if _, exists := idx.stems[stem]; !exists {
			idx.stems[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
func (idx *Index) ResolvePath(texName string) (string, bool) {
	// Strip path prefix (e.g., "textures\\wall.png" → "wall.png")
	texName = strings.ReplaceAll(texName, "\\", "/")
	base := strings.ToLower(filepath.Base(texName))

	if path, ok := idx.names[base]; ok {
		return path, true
	}
	path, ok := idx.stems[strings.TrimSuffix(base, filepath.Ext(base))]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.names)
}

// Missing returns the sorted, de-duplicated texture names referenced by
// shapes that the index cannot resolve.
func (idx *Index) Missing(shapes []scene.RenderShape) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, s := range shapes {
		name := s.Primitive.Material.Texture.Filename
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := idx.ResolvePath(name); !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
