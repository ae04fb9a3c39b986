package shape

import "primscene/internal/mathutil"

// boxFaces lists each face as (topLeft, topRight, bottomLeft, bottomRight)
// as seen from outside the box.
var boxFaces = [6][4]mathutil.Vec3{
	// front
	{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}},
	// back
	{{0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}},
	// top
	{{-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}},
	// bottom
	{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}},
	// right
	{{0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}},
	// left
	{{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}},
}

// GenerateBox tessellates the unit cube [-0.5, 0.5]³, splitting every face
// into an n×n grid of flat-shaded quads.
func GenerateBox(n int) Mesh {
	m := reserve(6 * n * n * 6)
	for _, f := range boxFaces {
		m.boxFace(f[0], f[1], f[2], f[3], n)
	}
	return m
}

func (m *Mesh) boxFace(topLeft, topRight, bottomLeft, bottomRight mathutil.Vec3, n int) {
	normal := topRight.Sub(topLeft).Cross(bottomLeft.Sub(topLeft)).Normalize().Negate()

	hStep := topRight.Sub(topLeft).Scale(1 / float64(n))
	vStep := bottomLeft.Sub(topLeft).Scale(1 / float64(n))

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			tl := topLeft.Add(hStep.Scale(float64(j))).Add(vStep.Scale(float64(i)))
			tr := tl.Add(hStep)
			bl := tl.Add(vStep)
			br := bl.Add(hStep)

			m.push(tl, normal)
			m.push(bl, normal)
			m.push(tr, normal)

			m.push(bl, normal)
			m.push(br, normal)
			m.push(tr, normal)
		}
	}
}
