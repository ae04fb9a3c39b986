package shape

import (
	"math"

	"primscene/internal/mathutil"
)

// GenerateCone tessellates a cone of base radius 0.5 and height 1 with n
// radial segments and h stacked rings, apex at y=+0.5 and base at y=-0.5.
func GenerateCone(n, h int) Mesh {
	const radius, height = 0.5, 1.0

	m := reserve(6*n*h + 3*n)
	thetaStep := 2 * math.Pi / float64(n)
	heightStep := height / float64(h)

	for i := 0; i < n; i++ {
		theta0 := float64(i) * thetaStep
		theta1 := float64(i+1) * thetaStep

		for j := 0; j < h; j++ {
			y0 := float64(j) * heightStep
			y1 := float64(j+1) * heightStep
			r0 := radius * (1 - float64(j)/float64(h))
			r1 := radius * (1 - float64(j+1)/float64(h))

			bl := ring(r0, theta0, y0)
			br := ring(r0, theta1, y0)
			tl := ring(r1, theta0, y1)
			tr := ring(r1, theta1, y1)

			m.push(bl, radial(bl))
			m.push(tl, radial(tl))
			m.push(tr, radial(tr))

			m.push(bl, radial(bl))
			m.push(tr, radial(tr))
			m.push(br, radial(br))
		}
	}

	down := mathutil.WorldUp.Negate()
	center := mathutil.Vec3{}
	for i := 0; i < n; i++ {
		p1 := ring(radius, float64(i)*thetaStep, 0)
		p2 := ring(radius, float64(i+1)*thetaStep, 0)

		m.push(center, down)
		m.push(p1, down)
		m.push(p2, down)
	}

	for i := 1; i < len(m); i += Stride {
		m[i] -= height / 2
	}
	return m
}

// ring returns the point at angle theta on the horizontal circle of radius r at height y.
func ring(r, theta, y float64) mathutil.Vec3 {
	return mathutil.Vec3{r * math.Cos(theta), y, r * math.Sin(theta)}
}
