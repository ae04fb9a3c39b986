// Package shape tessellates the unit primitives (box, sphere, cone,
// cylinder) into non-indexed triangle lists.
//
// Every generator is a pure function of its two resolution parameters and
// returns vertices centered on the local origin with a characteristic size of
// one. Each vertex is six float32 values: position xyz followed by normal xyz.
// Front faces are wound counter-clockwise.
package shape

import (
	"fmt"
	"math"
	"strings"

	"primscene/internal/mathutil"
)

// Type identifies one of the closed set of tessellated primitives.
type Type int

const (
	Box Type = iota
	Sphere
	Cone
	Cylinder
)

// Types returns every primitive type in declaration order.
func Types() []Type {
	return []Type{Box, Sphere, Cone, Cylinder}
}

func (t Type) String() string {
	switch t {
	case Box:
		return "cube"
	case Sphere:
		return "sphere"
	case Cone:
		return "cone"
	case Cylinder:
		return "cylinder"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a scene-file primitive name to its Type.
func ParseType(name string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cube", "box":
		return Box, true
	case "sphere":
		return Sphere, true
	case "cone":
		return Cone, true
	case "cylinder":
		return Cylinder, true
	}
	return 0, false
}

// Generate tessellates t with the given parameters. Parameters are expected
// to be clamped already (see Clamp); an unknown type yields an empty mesh.
func Generate(t Type, param1, param2 int) Mesh {
	switch t {
	case Box:
		return GenerateBox(param1)
	case Sphere:
		return GenerateSphere(param1, param2)
	case Cone:
		return GenerateCone(param1, param2)
	case Cylinder:
		return GenerateCylinder(param1, param2)
	}
	return nil
}

// MinParams returns the smallest geometrically meaningful parameters for t.
// Box ignores param2.
func MinParams(t Type) (param1, param2 int) {
	switch t {
	case Box:
		return 1, 0
	case Sphere:
		return 2, 3
	case Cone, Cylinder:
		return 3, 1
	}
	return 0, 0
}

// Clamp raises param1/param2 to the minimums of t.
func Clamp(t Type, param1, param2 int) (int, int) {
	min1, min2 := MinParams(t)
	if param1 < min1 {
		param1 = min1
	}
	if param2 < min2 {
		param2 = min2
	}
	if t == Box {
		param2 = 0
	}
	return param1, param2
}

// Stride is the number of float32 values per vertex.
const Stride = 6

// Mesh is a flat triangle list: every Stride floats form one vertex and
// every three vertices form one triangle.
type Mesh []float32

// VertexCount returns the number of vertices in the mesh.
func (m Mesh) VertexCount() int {
	return len(m) / Stride
}

// TriangleCount returns the number of triangles in the mesh.
func (m Mesh) TriangleCount() int {
	return m.VertexCount() / 3
}

// Vertex returns the position and normal of vertex i.
func (m Mesh) Vertex(i int) (pos, normal mathutil.Vec3) {
	o := i * Stride
	pos = mathutil.Vec3{float64(m[o]), float64(m[o+1]), float64(m[o+2])}
	normal = mathutil.Vec3{float64(m[o+3]), float64(m[o+4]), float64(m[o+5])}
	return
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
// An empty mesh returns an inverted (+Inf, -Inf) box.
func (m Mesh) Bounds() (min, max mathutil.Vec3) {
	min = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i < m.VertexCount(); i++ {
		p, _ := m.Vertex(i)
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return min, max
}

// reserve returns an empty mesh with room for the given number of vertices.
// Parameters below the minimum can make the count negative.
func reserve(vertices int) Mesh {
	if vertices < 0 {
		vertices = 0
	}
	return make(Mesh, 0, vertices*Stride)
}

func (m *Mesh) push(pos, normal mathutil.Vec3) {
	*m = append(*m,
		float32(pos[0]), float32(pos[1]), float32(pos[2]),
		float32(normal[0]), float32(normal[1]), float32(normal[2]),
	)
}

// radial returns the horizontal direction of p, the lateral normal used by
// cones and cylinders. It ignores the slant of a cone's surface.
func radial(p mathutil.Vec3) mathutil.Vec3 {
	return mathutil.Vec3{p[0], 0, p[2]}.Normalize()
}
