package shape

import (
	"math"

	"primscene/internal/mathutil"
)

// GenerateCylinder tessellates a cylinder of radius 0.5 spanning y in
// [-0.5, 0.5] with n radial segments, h stacked rings and two capped ends.
func GenerateCylinder(n, h int) Mesh {
	const radius = 0.5

	m := reserve(6*n*h + 6*n)
	angleStep := 2 * math.Pi / float64(n)
	heightStep := 1.0 / float64(h)

	for i := 0; i < n; i++ {
		a0 := float64(i) * angleStep
		a1 := float64(i+1) * angleStep

		for j := 0; j < h; j++ {
			y0 := -0.5 + float64(j)*heightStep
			y1 := y0 + heightStep

			bl := ring(radius, a0, y0)
			br := ring(radius, a1, y0)
			tl := ring(radius, a0, y1)
			tr := ring(radius, a1, y1)

			m.push(bl, radial(bl))
			m.push(tl, radial(tl))
			m.push(br, radial(br))

			m.push(tl, radial(tl))
			m.push(tr, radial(tr))
			m.push(br, radial(br))
		}
	}

	m.cylinderCap(n, true)
	m.cylinderCap(n, false)
	return m
}

func (m *Mesh) cylinderCap(n int, top bool) {
	const radius = 0.5

	y, normal := -0.5, mathutil.WorldUp.Negate()
	if top {
		y, normal = 0.5, mathutil.WorldUp
	}
	center := mathutil.Vec3{0, y, 0}
	angleStep := 2 * math.Pi / float64(n)

	for i := 0; i < n; i++ {
		p1 := ring(radius, float64(i)*angleStep, y)
		p2 := ring(radius, float64(i+1)*angleStep, y)

		// The caps face opposite ways, so the fans are wound in opposite orders.
		if top {
			m.push(p2, normal)
			m.push(p1, normal)
			m.push(center, normal)
		} else {
			m.push(center, normal)
			m.push(p1, normal)
			m.push(p2, normal)
		}
	}
}
