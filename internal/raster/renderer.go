// Package raster is a software z-buffer rasterizer that previews flattened
// scenes by coloring each pixel with its world-space surface normal.
package raster

import (
	"image"
	"image/color"

	"primscene/internal/mathutil"
	"primscene/internal/scene"
	"primscene/internal/session"
	"primscene/internal/shape"
	"primscene/internal/viewmatrix"
)

// Options controls the preview render.
type Options struct {
	Width       int
	Height      int
	Supersample int
	Near        float64
	Far         float64
	Background  color.NRGBA
	// DoubleSided disables back-face culling.
	DoubleSided bool
}

// DefaultOptions matches the host viewport export size.
func DefaultOptions() Options {
	return Options{
		Width:       1024,
		Height:      768,
		Supersample: 1,
		Near:        viewmatrix.DefaultNear,
		Far:         viewmatrix.DefaultFar,
	}
}

// Stats counts what happened to the triangles of one render.
type Stats struct {
	Triangles int
	Culled    int
	Clipped   int
	Drawn     int
	Covered   int // pixels written at the rendered resolution
}

// RenderPreview draws the calls as seen by camera. The returned image is
// Width·Supersample × Height·Supersample; callers downsample it.
func RenderPreview(calls []session.DrawCall, camera scene.CameraData, opts Options) (*image.NRGBA, Stats) {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	w, h := opts.Width*ss, opts.Height*ss
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0)), Stats{}
	}

	fb := NewFrameBuffer(w, h)
	if opts.Background.A > 0 {
		fb.Fill(opts.Background)
	}

	vp := viewmatrix.ViewProjection(camera, opts.Near, opts.Far, float64(opts.Width)/float64(opts.Height))

	var st Stats
	var verts []Vertex
	for _, call := range calls {
		if call.VertexCount == 0 {
			continue
		}
		mvp := mathutil.Mat4Mul(vp, call.Shape.CTM)
		verts = projectMesh(verts[:0], call.Mesh, mvp, call.Shape.NormalCTM, w, h)

		for i := 0; i+2 < len(verts); i += 3 {
			st.Triangles++
			v0, v1, v2 := verts[i], verts[i+1], verts[i+2]
			if v0.Behind || v1.Behind || v2.Behind {
				st.Clipped++
				continue
			}
			if !opts.DoubleSided && !FrontFacing(v0, v1, v2) {
				st.Culled++
				continue
			}
			RasterizeTriangle(fb, v0, v1, v2)
			st.Drawn++
		}
	}
	st.Covered = fb.Covered()
	return fb.Image(), st
}

// projectMesh appends one projected vertex per mesh vertex to dst.
func projectMesh(dst []Vertex, m shape.Mesh, mvp mathutil.Mat4, normalCTM mathutil.Mat3, w, h int) []Vertex {
	for i := 0; i < m.VertexCount(); i++ {
		pos, n := m.Vertex(i)
		sx, sy, depth, ok := viewmatrix.Project(pos, mvp, w, h)
		dst = append(dst, Vertex{
			X:      sx,
			Y:      sy,
			Z:      depth,
			Normal: normalCTM.MulVec3(n).Normalize(),
			Behind: !ok,
		})
	}
	return dst
}
