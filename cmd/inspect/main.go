package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"primscene/internal/log"
	"primscene/internal/mathutil"
	"primscene/internal/report"
	"primscene/internal/session"
	"primscene/internal/shape"
	"primscene/internal/texture"
)

func main() {
	param1 := flag.Int("param1", 10, "Tessellation parameter 1")
	param2 := flag.Int("param2", 10, "Tessellation parameter 2")
	legacy := flag.Bool("legacy-cache", false, "Keep the first mesh generated per shape type")
	verbose := flag.Bool("v", false, "Verbose logging")
	logLevel := flag.String("log-level", "", "Log level: debug, info, notice, warning or error (overrides -v)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: inspect [flags] scene.yaml\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	switch {
	case *logLevel != "":
		level, err := log.ParseLevel(*logLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		log.SetLevel(level)
	case *verbose:
		log.SetLevel(log.Debug)
	}

	policy := shape.PolicyInvalidate
	if *legacy {
		policy = shape.PolicyLegacy
	}
	s := session.New(shape.NewCache(policy), session.Settings{Param1: *param1, Param2: *param2})
	if err := s.SceneChanged(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data := s.Data()
	cam := data.Camera
	fmt.Printf("Scene: %s\n", s.Path())
	fmt.Printf("Global: ka=%.2f kd=%.2f ks=%.2f kt=%.2f\n", data.Global.Ka, data.Global.Kd, data.Global.Ks, data.Global.Kt)
	fmt.Printf("Camera: pos=%v look=%v up=%v fov=%.1f°\n",
		cam.Pos.Vec3(), cam.Look.Vec3(), cam.Up.Vec3(), cam.HeightAngle*180/math.Pi)

	fmt.Printf("\nShapes (%d):\n", len(data.Shapes))
	fmt.Print(report.Shapes(s.DrawCalls()))

	var singular int
	for _, rs := range data.Shapes {
		if !mathutil.Mat4Mul(rs.CTM, rs.InverseCTM).IsIdentity() {
			singular++
		}
	}
	if singular > 0 {
		fmt.Printf("Warning: %d shapes have a singular or ill-conditioned transform\n", singular)
	}

	texIndex := texture.BuildIndex(filepath.Dir(s.Path()))
	if missing := texIndex.Missing(data.Shapes); len(missing) > 0 {
		fmt.Printf("Warning: %d textures not found under %s: %v\n", len(missing), filepath.Dir(s.Path()), missing)
	}

	fmt.Printf("\nLights (%d):\n", len(data.Lights))
	fmt.Print(report.Lights(data.Lights))

	var rows []report.MeshRow
	for _, t := range shape.Types() {
		m, ok := s.Mesh(t)
		if !ok {
			continue
		}
		p1, p2 := shape.Clamp(t, *param1, *param2)
		rows = append(rows, report.MeshRow{Type: t, Param1: p1, Param2: p2, Mesh: m})
	}
	fmt.Printf("\nMeshes:\n")
	fmt.Print(report.Meshes(rows))
	fmt.Printf("Triangles drawn: %d\n", s.TriangleCount())
}
