package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	c := Config{SceneDir: dir}
	c.Resolve(Flags{})

	assert.Equal(t, filepath.Join(dir, "renders"), c.OutputDir)
	assert.Equal(t, 10, c.Param1)
	assert.Equal(t, 10, c.Param2)
	assert.Equal(t, 0.1, c.NearPlane)
	assert.Equal(t, 100.0, c.FarPlane)
	assert.Equal(t, 1024, c.Width)
	assert.Equal(t, 768, c.Height)
	assert.Equal(t, 2, c.Supersample)
	assert.Equal(t, FormatWebP, c.Format)
	assert.Zero(t, c.Orbit)
	assert.Equal(t, runtime.NumCPU(), c.Workers)
	assert.False(t, c.LegacyCache)
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "scene_dir": "/scenes",
  "output_dir": "out",
  "param1": 4,
  "param2": 6,
  "near_plane": 1,
  "far_plane": 0.5,
  "format": "TGA",
  "workers": 3
}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	c.Resolve(Flags{Param2: 9, Width: 320, LegacyCache: true})

	assert.Equal(t, filepath.Join("/scenes", "out"), c.OutputDir)
	assert.Equal(t, 4, c.Param1)
	assert.Equal(t, 9, c.Param2)
	assert.Equal(t, 1.0, c.NearPlane)
	assert.Equal(t, 100.0, c.FarPlane)
	assert.Equal(t, 320, c.Width)
	assert.Equal(t, FormatTGA, c.Format)
	assert.Equal(t, 3, c.Workers)
	assert.True(t, c.LegacyCache)
}

func TestResolveUnknownFormatFallsBack(t *testing.T) {
	c := Config{SceneDir: t.TempDir(), Format: "bmp"}
	c.Resolve(Flags{})
	assert.Equal(t, FormatWebP, c.Format)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "config: read")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "config: parse")
}
