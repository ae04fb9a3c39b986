package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"primscene/internal/report"
	"primscene/internal/shape"
)

func main() {
	typeName := flag.String("type", "all", "Shape type: cube, sphere, cone, cylinder or all")
	param1 := flag.Int("param1", 10, "Tessellation parameter 1")
	param2 := flag.Int("param2", 10, "Tessellation parameter 2")
	raw := flag.Bool("raw", false, "Use the parameters as given, without clamping to the shape minimum")
	outPath := flag.String("out", "", "Write the vertex buffer as little-endian float32 (single type only)")
	flag.Parse()

	types := shape.Types()
	if *typeName != "all" {
		t, ok := shape.ParseType(*typeName)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown shape type %q\n", *typeName)
			os.Exit(2)
		}
		types = []shape.Type{t}
	}
	if *outPath != "" && len(types) != 1 {
		fmt.Fprintln(os.Stderr, "Error: -out needs a single -type")
		os.Exit(2)
	}

	var rows []report.MeshRow
	for _, t := range types {
		p1, p2 := *param1, *param2
		if !*raw {
			p1, p2 = shape.Clamp(t, p1, p2)
		}
		rows = append(rows, report.MeshRow{Type: t, Param1: p1, Param2: p2, Mesh: shape.Generate(t, p1, p2)})
	}
	fmt.Print(report.Meshes(rows))

	if *outPath == "" {
		return
	}
	if err := writeRaw(*outPath, rows[0].Mesh); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d vertices (stride %d floats) to %s\n", rows[0].Mesh.VertexCount(), shape.Stride, *outPath)
}

func writeRaw(path string, m shape.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tessellate: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, []float32(m)); err != nil {
		f.Close()
		return fmt.Errorf("tessellate: write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("tessellate: write %s: %w", path, err)
	}
	return f.Close()
}
