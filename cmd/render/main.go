package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"primscene/internal/batch"
	"primscene/internal/config"
	"primscene/internal/log"
	"primscene/internal/session"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Render only this scene file")
	testN := flag.Int("test", 0, "Render only first N scenes for testing")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	sceneDir := flag.String("scenes", "", "Directory searched for scene files (default: cwd)")
	outputDir := flag.String("output", "", "Output directory (default: <scenes>/renders)")
	param1 := flag.Int("param1", 0, "Tessellation parameter 1 (default: 10)")
	param2 := flag.Int("param2", 0, "Tessellation parameter 2 (default: 10)")
	width := flag.Int("width", 0, "Image width (default: 1024)")
	height := flag.Int("height", 0, "Image height (default: 768)")
	format := flag.String("format", "", "Output format: webp or tga (default: webp)")
	orbit := flag.Int("orbit", 0, "Render an animated WebP turntable with N frames")
	legacy := flag.Bool("legacy-cache", false, "Keep the first mesh generated per shape type")
	watch := flag.Bool("watch", false, "Re-render -scene whenever the file changes")
	verbose := flag.Bool("v", false, "Verbose logging")
	debug := flag.Bool("vv", false, "Debug logging")
	logLevel := flag.String("log-level", "", "Log level: debug, info, notice, warning or error (overrides -v/-vv)")

	flag.Parse()

	switch {
	case *logLevel != "":
		level, err := log.ParseLevel(*logLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		log.SetLevel(level)
	case *debug:
		log.SetLevel(log.Debug)
	case *verbose:
		log.SetLevel(log.Info)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	flags := config.Flags{
		SceneDir:    *sceneDir,
		OutputDir:   *outputDir,
		Param1:      *param1,
		Param2:      *param2,
		Width:       *width,
		Height:      *height,
		Format:      *format,
		Orbit:       *orbit,
		Workers:     *workers,
		LegacyCache: *legacy,
	}
	cfg.Resolve(flags)

	if *watch {
		if *sceneFile == "" {
			fmt.Fprintln(os.Stderr, "Error: -watch requires -scene")
			os.Exit(2)
		}
		reload := func() (config.Config, error) {
			var c config.Config
			if *configFile != "" {
				var err error
				if c, err = config.Load(*configFile); err != nil {
					return c, err
				}
			}
			c.Resolve(flags)
			return c, nil
		}
		os.Exit(watchScene(cfg, *sceneFile, reload))
	}

	var scenes []string
	if *sceneFile != "" {
		scenes = []string{*sceneFile}
	} else {
		var err error
		scenes, err = batch.FindScenes(cfg.SceneDir, cfg.OutputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Limit for testing
	if *testN > 0 && *testN < len(scenes) {
		scenes = scenes[:*testN]
	}

	if len(scenes) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	batchCfg := batch.FromConfig(cfg)

	mode := ""
	if cfg.Orbit > 1 && cfg.Format == config.FormatWebP {
		mode = fmt.Sprintf(" (orbit: %d frames)", cfg.Orbit)
	} else if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Primitive scene preview → %s%s\n", batch.Ext(cfg.Format), mode)
	fmt.Printf("Scenes: %d, Workers: %d, Tessellation: %d×%d, Cache: %s\n",
		len(scenes), cfg.Workers, cfg.Param1, cfg.Param2, batchCfg.Cache.Policy())
	fmt.Printf("Size: %d×%d (×%d supersample)\n", cfg.Width, cfg.Height, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batchCfg, scenes)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	stats := batchCfg.Cache.Stats()
	fmt.Printf("Rendered: %d/%d (mesh cache: %d hits, %d misses)\n", success, len(scenes), stats.Hits, stats.Misses)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Scene, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// watchScene renders path once and again after every change until
// interrupted. A scene that fails to reload keeps its last good render.
// SIGHUP re-reads the configuration and applies its tessellation settings.
func watchScene(cfg config.Config, path string, reload func() (config.Config, error)) int {
	batchCfg := batch.FromConfig(cfg)
	s := session.New(batchCfg.Cache, batchCfg.Settings)
	if err := s.SceneChanged(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	render := func() {
		start := time.Now()
		r := batch.RenderSession(batchCfg, s)
		if !r.Success {
			fmt.Printf("  %s: %s\n", r.Scene, r.Error)
			return
		}
		fmt.Printf("  %s → %s (%d shapes, %d triangles, %.0fms)\n",
			filepath.Base(r.Scene), filepath.Join(cfg.OutputDir, r.Image),
			r.Shapes, r.Triangles, float64(time.Since(start).Microseconds())/1000)
	}

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", path)
	render()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	settings := make(chan session.Settings)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
			}
			c, err := reload()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: config reload failed: %v\n", err)
				continue
			}
			select {
			case settings <- session.Settings{Param1: c.Param1, Param2: c.Param2}:
			case <-ctx.Done():
				return
			}
		}
	}()

	err := s.Watch(ctx, session.DefaultDebounce, settings, func(err error) {
		if err != nil {
			fmt.Printf("  reload failed, keeping previous scene: %v\n", err)
			return
		}
		render()
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
