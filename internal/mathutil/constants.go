package mathutil

import "math"

// Epsilon is the tolerance used when comparing derived geometry.
const Epsilon = 1e-9

var (
	// Origin is the homogeneous local origin; lights sit here before their CTM.
	Origin = Point(0, 0, 0)

	// WorldUp is the +Y axis shared by cameras and cap normals.
	WorldUp = Vec3{0, 1, 0}
)

// IsFinite reports whether every entry of m is neither NaN nor ±Inf.
func (m Mat4) IsFinite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
