package shape

import (
	"math"

	"primscene/internal/mathutil"
)

const sphereRadius = 0.5

// GenerateSphere tessellates a sphere of radius 0.5 into n wedges around
// the Y axis, each split into m tiles from pole to pole.
func GenerateSphere(m, n int) Mesh {
	mesh := reserve(6 * m * n)
	thetaStep := 2 * math.Pi / float64(n)
	phiStep := math.Pi / float64(m)

	for j := 0; j < n; j++ {
		theta0 := float64(j) * thetaStep
		theta1 := float64(j+1) * thetaStep

		for i := 0; i < m; i++ {
			phi0 := float64(i) * phiStep
			phi1 := float64(i+1) * phiStep

			mesh.sphereTile(
				spherical(phi0, theta0),
				spherical(phi0, theta1),
				spherical(phi1, theta0),
				spherical(phi1, theta1),
			)
		}
	}
	return mesh
}

func spherical(phi, theta float64) mathutil.Vec3 {
	return mathutil.Vec3{
		sphereRadius * math.Sin(phi) * math.Sin(theta),
		sphereRadius * math.Cos(phi),
		sphereRadius * math.Sin(phi) * math.Cos(theta),
	}
}

func (m *Mesh) sphereTile(topLeft, topRight, bottomLeft, bottomRight mathutil.Vec3) {
	// Re-project the corners so accumulated trig error never drifts off the radius.
	tl := topLeft.Normalize().Scale(sphereRadius)
	tr := topRight.Normalize().Scale(sphereRadius)
	bl := bottomLeft.Normalize().Scale(sphereRadius)
	br := bottomRight.Normalize().Scale(sphereRadius)

	m.push(tl, tl.Normalize())
	m.push(bl, bl.Normalize())
	m.push(tr, tr.Normalize())

	m.push(bl, bl.Normalize())
	m.push(br, br.Normalize())
	m.push(tr, tr.Normalize())
}
