package raster

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primscene/internal/mathutil"
	"primscene/internal/scene"
	"primscene/internal/session"
	"primscene/internal/shape"
)

func assertPixel(t *testing.T, fb *FrameBuffer, x, y int, r, g, b, a uint8) {
	t.Helper()
	i := (y*fb.Width + x) * 4
	assert.Equal(t, []uint8{r, g, b, a}, fb.Color[i:i+4], "pixel (%d,%d)", x, y)
}

func TestNewFrameBuffer(t *testing.T) {
	fb := NewFrameBuffer(8, 4)
	assert.Len(t, fb.Color, 8*4*4)
	require.Len(t, fb.ZBuf, 8*4)
	assert.True(t, math.IsInf(fb.ZBuf[5], -1))
	assert.Zero(t, fb.Covered())

	fb.Fill(color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	assertPixel(t, fb, 7, 3, 10, 20, 30, 255)
	assert.Zero(t, fb.Covered())

	img := fb.Image()
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestFrontFacing(t *testing.T) {
	// Counter-clockwise with Y up becomes clockwise once Y points down.
	a := Vertex{X: 0, Y: 10}
	b := Vertex{X: 10, Y: 10}
	c := Vertex{X: 0, Y: 0}
	assert.True(t, FrontFacing(a, b, c))
	assert.False(t, FrontFacing(a, c, b))
	assert.False(t, FrontFacing(a, a, b))
}

func TestRasterizeTriangleDepth(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	forward := mathutil.Vec3{0, 0, 1}
	up := mathutil.Vec3{0, 1, 0}

	far := [3]Vertex{
		{X: 0, Y: 0, Z: 0.1, Normal: forward},
		{X: 15, Y: 0, Z: 0.1, Normal: forward},
		{X: 0, Y: 15, Z: 0.1, Normal: forward},
	}
	RasterizeTriangle(fb, far[0], far[1], far[2])
	assertPixel(t, fb, 2, 2, 128, 128, 255, 255)
	assertPixel(t, fb, 14, 14, 0, 0, 0, 0)
	covered := fb.Covered()
	assert.Greater(t, covered, 100)

	near := far
	for i := range near {
		near[i].Z = 0.5
		near[i].Normal = up
	}
	RasterizeTriangle(fb, near[0], near[1], near[2])
	assertPixel(t, fb, 2, 2, 128, 255, 128, 255)
	assert.Equal(t, covered, fb.Covered())

	// Farther than what is already drawn: rejected.
	behind := far
	for i := range behind {
		behind[i].Z = -0.5
		behind[i].Normal = up.Negate()
	}
	RasterizeTriangle(fb, behind[0], behind[1], behind[2])
	assertPixel(t, fb, 2, 2, 128, 255, 128, 255)
}

func TestRasterizeSamplesPixelCentres(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	n := mathutil.Vec3{0, 0, 1}
	// Two triangles covering exactly the square [0,2]×[0,2].
	RasterizeTriangle(fb, Vertex{X: 0, Y: 0, Normal: n}, Vertex{X: 2, Y: 0, Normal: n}, Vertex{X: 0, Y: 2, Normal: n})
	RasterizeTriangle(fb, Vertex{X: 2, Y: 0, Normal: n}, Vertex{X: 2, Y: 2, Normal: n}, Vertex{X: 0, Y: 2, Normal: n})

	assert.Equal(t, 4, fb.Covered())
	assertPixel(t, fb, 1, 1, 128, 128, 255, 255)
	assertPixel(t, fb, 2, 0, 0, 0, 0, 0)
	assertPixel(t, fb, 0, 2, 0, 0, 0, 0)
}

func TestRasterizeTriangleOffscreen(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	n := mathutil.Vec3{0, 0, 1}
	RasterizeTriangle(fb,
		Vertex{X: -20, Y: -20, Normal: n},
		Vertex{X: -10, Y: -20, Normal: n},
		Vertex{X: -20, Y: -10, Normal: n},
	)
	assert.Zero(t, fb.Covered())
}

func sphereCall(ctm mathutil.Mat4) session.DrawCall {
	m := shape.GenerateSphere(10, 10)
	return session.DrawCall{
		Shape:       scene.NewRenderShape(scene.Primitive{Type: shape.Sphere}, ctm),
		Mesh:        m,
		VertexCount: m.VertexCount(),
	}
}

func frontCamera() scene.CameraData {
	return scene.CameraData{
		Pos:         mathutil.Point(0, 0, 5),
		Look:        mathutil.Direction(0, 0, -1),
		Up:          mathutil.Direction(0, 1, 0),
		HeightAngle: mathutil.Deg2Rad(45),
	}
}

func TestRenderPreviewSphere(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 64, 48

	img, st := RenderPreview([]session.DrawCall{sphereCall(mathutil.Mat4Identity())}, frontCamera(), opts)
	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 48, img.Bounds().Dy())

	center := img.NRGBAAt(32, 24)
	assert.Equal(t, uint8(255), center.A)
	assert.InDelta(t, 128, int(center.R), 12)
	assert.InDelta(t, 128, int(center.G), 12)
	assert.InDelta(t, 255, int(center.B), 12)

	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)

	assert.Equal(t, 6*10*10/3, st.Triangles)
	assert.Greater(t, st.Culled, 0)
	assert.Greater(t, st.Drawn, 0)
	assert.Equal(t, st.Triangles, st.Culled+st.Drawn)
	assert.Zero(t, st.Clipped)
	assert.Positive(t, st.Covered)
}

func TestRenderPreviewDoubleSided(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 32, 32
	opts.DoubleSided = true

	_, st := RenderPreview([]session.DrawCall{sphereCall(mathutil.Mat4Identity())}, frontCamera(), opts)
	assert.Zero(t, st.Culled)
	assert.Equal(t, st.Triangles, st.Drawn)
}

func TestRenderPreviewBehindCamera(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 32, 32
	opts.Background = color.NRGBA{R: 1, G: 2, B: 3, A: 255}

	call := sphereCall(mathutil.Translate(mathutil.Vec3{0, 0, 10}))
	img, st := RenderPreview([]session.DrawCall{call}, frontCamera(), opts)
	assert.Equal(t, st.Triangles, st.Clipped)
	assert.Zero(t, st.Covered)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, img.NRGBAAt(16, 16))
}

func TestRenderPreviewSupersample(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 20, 10
	opts.Supersample = 3

	img, _ := RenderPreview(nil, frontCamera(), opts)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}
