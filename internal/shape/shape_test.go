package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primscene/internal/mathutil"
)

const tol = 1e-6

func triangle(m Mesh, tri int) (p [3]mathutil.Vec3, n [3]mathutil.Vec3) {
	for k := 0; k < 3; k++ {
		p[k], n[k] = m.Vertex(tri*3 + k)
	}
	return
}

// assertOutwardWinding checks that every non-degenerate triangle is wound
// counter-clockwise around the direction its vertex normals point to.
func assertOutwardWinding(t *testing.T, m Mesh) {
	t.Helper()
	for tri := 0; tri < m.TriangleCount(); tri++ {
		p, n := triangle(m, tri)
		face := p[1].Sub(p[0]).Cross(p[2].Sub(p[0]))
		if face.Len() < 1e-9 {
			continue
		}
		avg := n[0].Add(n[1]).Add(n[2])
		if !assert.Greater(t, face.Dot(avg), 0.0, "triangle %d wound inwards", tri) {
			return
		}
	}
}

func assertInCube(t *testing.T, m Mesh) {
	t.Helper()
	min, max := m.Bounds()
	for k := 0; k < 3; k++ {
		assert.GreaterOrEqual(t, min[k], -0.5-tol)
		assert.LessOrEqual(t, max[k], 0.5+tol)
	}
}

func TestBoxSingleSubdivision(t *testing.T) {
	m := GenerateBox(1)
	require.Equal(t, 36, m.VertexCount())
	assert.Len(t, m, 36*Stride)
	assertInCube(t, m)

	for tri := 0; tri < m.TriangleCount(); tri++ {
		_, n := triangle(m, tri)
		assert.Equal(t, n[0], n[1])
		assert.Equal(t, n[0], n[2])
		assert.InDelta(t, 1, n[0].Len(), tol)
	}
	assertOutwardWinding(t, m)
}

func TestBoxFaceOrderAndNormals(t *testing.T) {
	m := GenerateBox(2)
	require.Equal(t, 6*4*6, m.VertexCount())

	want := []mathutil.Vec3{{0, 0, 1}, {0, 0, -1}, {0, 1, 0}, {0, -1, 0}, {1, 0, 0}, {-1, 0, 0}}
	perFace := m.VertexCount() / 6
	for f, normal := range want {
		for v := f * perFace; v < (f+1)*perFace; v++ {
			p, n := m.Vertex(v)
			assert.InDeltaSlice(t, normal[:], n[:], tol)
			// Every vertex lies on its face plane.
			assert.InDelta(t, 0.5, p.Dot(normal), tol)
		}
	}
}

func TestBoxVertexCount(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		assert.Equal(t, 6*n*n*6, GenerateBox(n).VertexCount())
	}
}

func TestSphere(t *testing.T) {
	m := GenerateSphere(2, 3)
	require.Equal(t, 36, m.VertexCount())

	for v := 0; v < m.VertexCount(); v++ {
		p, n := m.Vertex(v)
		onSurface := p.Normalize().Scale(0.5)
		outward := p.Normalize()
		assert.InDeltaSlice(t, p[:], onSurface[:], tol)
		assert.InDeltaSlice(t, outward[:], n[:], tol)
	}
	assertOutwardWinding(t, m)
}

func TestSphereCounts(t *testing.T) {
	tests := []struct{ m, n int }{{2, 3}, {4, 8}, {10, 10}}
	for _, tt := range tests {
		m := GenerateSphere(tt.m, tt.n)
		assert.Equal(t, 6*tt.m*tt.n, m.VertexCount())
		min, max := m.Bounds()
		assert.InDelta(t, -0.5, min[1], tol)
		assert.InDelta(t, 0.5, max[1], tol)
	}
}

func TestCylinder(t *testing.T) {
	for _, h := range []int{1, 2, 4} {
		const n = 3
		m := GenerateCylinder(n, h)
		lateral := n * h * 2
		require.Equal(t, lateral+2*n, m.TriangleCount())
		assertInCube(t, m)

		for v := 0; v < lateral*3; v++ {
			_, normal := m.Vertex(v)
			assert.Zero(t, normal[1])
			assert.InDelta(t, 1, normal.Len(), tol)
		}
		for v := lateral * 3; v < (lateral+n)*3; v++ {
			p, normal := m.Vertex(v)
			assert.Equal(t, mathutil.Vec3{0, 1, 0}, normal)
			assert.InDelta(t, 0.5, p[1], tol)
		}
		for v := (lateral + n) * 3; v < m.VertexCount(); v++ {
			p, normal := m.Vertex(v)
			assert.Equal(t, mathutil.Vec3{0, -1, 0}, normal)
			assert.InDelta(t, -0.5, p[1], tol)
		}
		assertOutwardWinding(t, m)
	}
}

func TestCone(t *testing.T) {
	const n, h = 3, 2
	m := GenerateCone(n, h)
	lateral := n * h * 2
	require.Equal(t, lateral+n, m.TriangleCount())
	assertInCube(t, m)

	min, max := m.Bounds()
	assert.InDelta(t, -0.5, min[1], tol)
	assert.InDelta(t, 0.5, max[1], tol)

	for v := 0; v < lateral*3; v++ {
		p, normal := m.Vertex(v)
		assert.Zero(t, normal[1])
		if p[1] < 0.5-tol {
			assert.InDelta(t, 1, normal.Len(), tol)
		}
	}
	for v := lateral * 3; v < m.VertexCount(); v++ {
		p, normal := m.Vertex(v)
		assert.Equal(t, mathutil.Vec3{0, -1, 0}, normal)
		assert.InDelta(t, -0.5, p[1], tol)
	}
	assertOutwardWinding(t, m)
}

func TestConeApexRadius(t *testing.T) {
	m := GenerateCone(8, 1)
	for v := 0; v < 8*2*3; v++ {
		p, _ := m.Vertex(v)
		r := mathutil.Vec3{p[0], 0, p[2]}.Len()
		// Radius shrinks linearly from 0.5 at the base to 0 at the apex.
		assert.InDelta(t, 0.5*(0.5-p[1]), r, tol)
	}
}

func TestGenerateDispatch(t *testing.T) {
	for _, typ := range Types() {
		p1, p2 := Clamp(typ, 0, 0)
		m := Generate(typ, p1, p2)
		assert.NotEmpty(t, m, typ.String())
		assert.Zero(t, len(m)%(Stride*3), typ.String())
	}
	assert.Empty(t, Generate(Type(42), 5, 5))
}

func TestClamp(t *testing.T) {
	tests := []struct {
		typ                    Type
		in1, in2, want1, want2 int
	}{
		{Box, 0, 7, 1, 0},
		{Box, 4, 0, 4, 0},
		{Sphere, 1, 1, 2, 3},
		{Sphere, 5, 6, 5, 6},
		{Cone, 0, 0, 3, 1},
		{Cylinder, 10, -2, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			p1, p2 := Clamp(tt.typ, tt.in1, tt.in2)
			assert.Equal(t, tt.want1, p1)
			assert.Equal(t, tt.want2, p2)
		})
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, ok := ParseType(typ.String())
		require.True(t, ok)
		assert.Equal(t, typ, got)
	}
	got, ok := ParseType(" Box ")
	assert.True(t, ok)
	assert.Equal(t, Box, got)

	_, ok = ParseType("torus")
	assert.False(t, ok)
}

func TestGenerateBelowMinimum(t *testing.T) {
	tests := []struct {
		name   string
		typ    Type
		p1, p2 int
	}{
		{"sphere negative wedges", Sphere, -1, 3},
		{"sphere negative tiles", Sphere, 3, -1},
		{"cone negative segments", Cone, -1, 1},
		{"cone negative rings", Cone, 3, -2},
		{"cylinder negative segments", Cylinder, -1, 3},
		{"cylinder negative rings", Cylinder, 3, -1},
		{"box negative", Box, -1, 0},
		{"zero params", Sphere, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Mesh
			require.NotPanics(t, func() { m = Generate(tt.typ, tt.p1, tt.p2) })
			assert.Zero(t, len(m)%(3*Stride), "partial triangle")
		})
	}
}
