package raster

import (
	"math"

	"primscene/internal/mathutil"
)

// Vertex is a projected vertex: screen position, depth and world normal.
// Behind marks vertices at or behind the eye, which have no valid position.
type Vertex struct {
	X, Y, Z float64
	Normal  mathutil.Vec3
	Behind  bool
}

// Area2 returns twice the signed screen-space area of a triangle. Screen Y
// points down, so triangles wound counter-clockwise in NDC come out negative.
func Area2(v0, v1, v2 Vertex) float64 {
	return (v1.X-v0.X)*(v2.Y-v0.Y) - (v2.X-v0.X)*(v1.Y-v0.Y)
}

// FrontFacing reports whether the triangle faces the viewer under the
// counter-clockwise front-face convention. Degenerate triangles do not.
func FrontFacing(v0, v1, v2 Vertex) bool {
	return Area2(v0, v1, v2) < 0
}

// RasterizeTriangle fills a triangle with its interpolated normal encoded
// as color, (n+1)/2 per channel, testing and writing the z-buffer.
//
// This is the hot path and does not allocate.
func RasterizeTriangle(fb *FrameBuffer, v0, v1, v2 Vertex) {
	x0, y0, z0 := v0.X, v0.Y, v0.Z
	x1, y1, z1 := v1.X, v1.Y, v1.Z
	x2, y2, z2 := v2.X, v2.Y, v2.Z

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	n0, n1, n2 := v0.Normal, v1.Normal, v2.Normal

	// Pixels are sampled at their centres.
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			nx := w0*n0[0] + w1*n1[0] + w2*n2[0]
			ny := w0*n0[1] + w1*n1[1] + w2*n2[1]
			nz := w0*n0[2] + w1*n1[2] + w2*n2[2]
			nl := math.Sqrt(nx*nx + ny*ny + nz*nz)
			if nl > 1e-12 {
				inv := 1.0 / nl
				nx *= inv
				ny *= inv
				nz *= inv
			}

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255((nx + 1) * 127.5)
			fb.Color[pxIdx+1] = clamp255((ny + 1) * 127.5)
			fb.Color[pxIdx+2] = clamp255((nz + 1) * 127.5)
			fb.Color[pxIdx+3] = 255
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
