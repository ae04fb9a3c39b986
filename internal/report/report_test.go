package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"primscene/internal/mathutil"
	"primscene/internal/scene"
	"primscene/internal/session"
	"primscene/internal/shape"
)

func TestShapes(t *testing.T) {
	ctm := mathutil.Mat4Mul(mathutil.Translate(mathutil.Vec3{1, 2, 3}), mathutil.Scale(mathutil.Vec3{2, 1, 1}))
	box := shape.GenerateBox(1)
	prim := scene.Primitive{
		Type: shape.Box,
		Material: scene.Material{
			Texture: scene.TextureMap{Filename: "wood.png", RepeatU: 2, RepeatV: 3},
		},
	}
	calls := []session.DrawCall{{
		Shape:       scene.NewRenderShape(prim, ctm),
		Mesh:        box,
		VertexCount: box.VertexCount(),
	}}

	out := Shapes(calls)
	assert.Contains(t, out, "cube")
	assert.Contains(t, out, "(1, 2, 3)")
	assert.Contains(t, out, "(2, 1, 1)")
	assert.Contains(t, out, "wood.png (2x3)")
	assert.Contains(t, out, "12")
}

func TestLights(t *testing.T) {
	lights := []scene.RenderLight{
		{ID: 4, Type: scene.LightPoint, Color: mathutil.Vec3{1, 1, 1}, Pos: mathutil.Point(1, 2, 3)},
		{ID: 5, Type: scene.LightSpot, Dir: mathutil.Direction(0, -1, 0), Angle: mathutil.Deg2Rad(30)},
		{ID: 6, Type: scene.LightArea},
	}

	out := Lights(lights)
	assert.Contains(t, out, "point")
	assert.Contains(t, out, "(1, 2, 3)")
	assert.Contains(t, out, "(0, -1, 0)")
	assert.Contains(t, out, "30.0°")
	assert.Contains(t, out, "area")
	// Header, separators and three rows.
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 6)
}

func TestMeshes(t *testing.T) {
	m := shape.GenerateSphere(2, 3)
	out := Meshes([]MeshRow{{Type: shape.Sphere, Param1: 2, Param2: 3, Mesh: m}})
	assert.Contains(t, out, "sphere")
	assert.Contains(t, out, "36")
	assert.Contains(t, out, "864")
}
