// Package batch renders many scene files concurrently and writes the
// encoded previews plus a manifest to an output directory.
package batch

import (
	"fmt"
	"image"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"primscene/internal/config"
	"primscene/internal/log"
	"primscene/internal/postprocess"
	"primscene/internal/raster"
	"primscene/internal/session"
	"primscene/internal/shape"
	"primscene/internal/viewmatrix"
)

var logger = log.New("batch")

// Config holds all shared resources for a batch run.
type Config struct {
	SceneDir  string // output names mirror scene paths relative to this
	OutputDir string
	Cache     *shape.Cache
	Settings  session.Settings
	Render    raster.Options
	Format    string
	Orbit     int // frames in a turntable animation; 0 renders a still
	FrameMs   int
	Workers   int
}

// FromConfig builds a batch configuration from resolved settings.
func FromConfig(c config.Config) Config {
	policy := shape.PolicyInvalidate
	if c.LegacyCache {
		policy = shape.PolicyLegacy
	}

	// Unresolved fields keep the raster defaults.
	render := raster.DefaultOptions()
	if c.Width > 0 && c.Height > 0 {
		render.Width, render.Height = c.Width, c.Height
	}
	if c.Supersample > 0 {
		render.Supersample = c.Supersample
	}
	if c.NearPlane > 0 && c.FarPlane > c.NearPlane {
		render.Near, render.Far = c.NearPlane, c.FarPlane
	}

	return Config{
		SceneDir:  c.SceneDir,
		OutputDir: c.OutputDir,
		Cache:     shape.NewCache(policy),
		Settings:  session.Settings{Param1: c.Param1, Param2: c.Param2},
		Render:    render,
		Format:  c.Format,
		Orbit:   c.Orbit,
		FrameMs: c.FrameMs,
		Workers: c.Workers,
	}
}

// Result holds the outcome of processing one scene.
type Result struct {
	Scene     string
	Image     string
	Shapes    int
	Lights    int
	Triangles int
	Frames    int
	Success   bool
	Error     string
}

// Run processes all scenes using a worker pool.
func Run(cfg Config, scenes []string) []Result {
	total := len(scenes)
	results := make([]Result, total)
	var processed atomic.Int64

	if cfg.Cache == nil {
		cfg.Cache = shape.NewCache(shape.PolicyInvalidate)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					logger.Infof("[%d/%d] %.1f scenes/sec", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	sceneChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(cfg, scenes[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work. Scenes that map to an output already claimed by an
	// earlier scene fail instead of overwriting it.
	owners := make(map[string]string, total)
	for i, path := range scenes {
		name := OutputName(cfg.SceneDir, path, cfg.Format)
		if prev, taken := owners[name]; taken {
			results[i] = Result{Scene: path, Error: fmt.Sprintf("output %s already written by %s", name, prev)}
			processed.Add(1)
			continue
		}
		owners[name] = path
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	return results
}

func processScene(cfg Config, path string) Result {
	res := Result{Scene: path}

	s := session.New(cfg.Cache, cfg.Settings)
	if err := s.SceneChanged(path); err != nil {
		res.Error = err.Error()
		return res
	}
	return RenderSession(cfg, s)
}

// RenderSession renders the scene currently held by s and writes it to
// cfg.OutputDir, named after the scene file.
func RenderSession(cfg Config, s *session.Session) Result {
	path := s.Path()
	res := Result{Scene: path}
	if path == "" {
		res.Error = "no scene loaded"
		return res
	}

	data := s.Data()
	res.Shapes = len(data.Shapes)
	res.Lights = len(data.Lights)
	res.Triangles = s.TriangleCount()

	calls := s.DrawCalls()
	frames := 1
	if cfg.Orbit > 1 && cfg.Format != config.FormatTGA {
		frames = cfg.Orbit
	}

	images := make([]image.Image, 0, frames)
	for i := 0; i < frames; i++ {
		camera := data.Camera
		if frames > 1 {
			camera = viewmatrix.Orbit(camera, 2*math.Pi*float64(i)/float64(frames))
		}

		img, st := raster.RenderPreview(calls, camera, cfg.Render)
		if st.Clipped > 0 {
			logger.Debugf("%s: %d triangles behind the camera", path, st.Clipped)
		}
		if st.Covered == 0 && st.Triangles > 0 {
			logger.Warningf("%s: frame %d is empty, nothing in view", path, i)
		}

		// Post-processing: supersample downsample
		if cfg.Render.Supersample > 1 {
			img = postprocess.Downsample(img, cfg.Render.Width, cfg.Render.Height)
		}
		images = append(images, img)
	}
	res.Frames = frames

	res.Image = OutputName(cfg.SceneDir, path, cfg.Format)
	outPath := filepath.Join(cfg.OutputDir, filepath.FromSlash(res.Image))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if frames > 1 {
		err = EncodeAnimation(f, images, cfg.FrameMs)
	} else {
		err = Encode(f, images[0], cfg.Format)
	}
	if err != nil {
		f.Close()
		res.Error = fmt.Sprintf("%s encode: %v", cfg.Format, err)
		return res
	}
	if err := f.Close(); err != nil {
		res.Error = fmt.Sprintf("close %s: %v", outPath, err)
		return res
	}

	res.Success = true
	return res
}

// OutputName returns the slash-separated image path, relative to the output
// directory, for the scene at path. Scenes under sceneDir keep their
// subdirectories; any other scene is named after its file alone.
func OutputName(sceneDir, path, format string) string {
	rel := filepath.Base(path)
	if sceneDir != "" {
		if r, err := filepath.Rel(sceneDir, path); err == nil && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			rel = r
		}
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel))) + "." + Ext(format)
}

// nonScenes are files that share a scene extension but are written or read
// by the tools themselves.
var nonScenes = map[string]bool{
	"manifest.json": true,
	"config.json":   true,
}

// FindScenes returns the scene files under dir, sorted by path. The skip
// directories (typically the output directory) are not descended into.
func FindScenes(dir string, skip ...string) ([]string, error) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		if abs, err := filepath.Abs(s); err == nil {
			skipped[abs] = true
		}
	}

	var scenes []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && skipped[abs] && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if nonScenes[strings.ToLower(d.Name())] {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".json", ".toml":
			scenes = append(scenes, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	sort.Strings(scenes)
	return scenes, nil
}
