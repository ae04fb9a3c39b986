package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Output formats.
const (
	FormatWebP = "webp"
	FormatTGA  = "tga"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	SceneDir  string `json:"scene_dir"`
	OutputDir string `json:"output_dir"`

	// Tessellation
	Param1      int  `json:"param1"`
	Param2      int  `json:"param2"`
	LegacyCache bool `json:"legacy_cache"`

	// Camera
	NearPlane float64 `json:"near_plane"`
	FarPlane  float64 `json:"far_plane"`

	// Render settings
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Supersample int    `json:"supersample"`
	Format      string `json:"format"`
	Orbit       int    `json:"orbit_frames"`
	FrameMs     int    `json:"frame_ms"`
	Workers     int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SceneDir != "" {
		c.SceneDir = flags.SceneDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Param1 > 0 {
		c.Param1 = flags.Param1
	}
	if flags.Param2 > 0 {
		c.Param2 = flags.Param2
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Orbit > 0 {
		c.Orbit = flags.Orbit
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LegacyCache {
		c.LegacyCache = true
	}

	if c.SceneDir == "" {
		c.SceneDir, _ = os.Getwd()
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.SceneDir, "renders")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.SceneDir, c.OutputDir)
	}

	// Defaults for tessellation and camera
	if c.Param1 <= 0 {
		c.Param1 = 10
	}
	if c.Param2 <= 0 {
		c.Param2 = 10
	}
	if c.NearPlane <= 0 {
		c.NearPlane = 0.1
	}
	if c.FarPlane <= c.NearPlane {
		c.FarPlane = 100
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 1024
	}
	if c.Height <= 0 {
		c.Height = 768
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format != FormatTGA {
		c.Format = FormatWebP
	}
	if c.FrameMs <= 0 {
		c.FrameMs = 80
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SceneDir    string
	OutputDir   string
	Param1      int
	Param2      int
	Width       int
	Height      int
	Format      string
	Orbit       int
	Workers     int
	LegacyCache bool
}
