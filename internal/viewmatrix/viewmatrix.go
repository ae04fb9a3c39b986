// Package viewmatrix builds camera view and projection matrices and maps
// world-space points to screen pixels.
package viewmatrix

import (
	"math"

	"primscene/internal/mathutil"
	"primscene/internal/scene"
)

// Default clip planes used when settings leave them unset.
const (
	DefaultNear = 0.1
	DefaultFar  = 100.0
)

// View returns the world-to-camera matrix. The camera looks down its -w
// axis, with w = -look and v the component of up orthogonal to w.
func View(c scene.CameraData) mathutil.Mat4 {
	w := c.Look.Vec3().Negate().Normalize()
	up := c.Up.Vec3()
	v := up.Sub(w.Scale(up.Dot(w))).Normalize()
	u := v.Cross(w)

	rot := mathutil.Mat4{
		u[0], u[1], u[2], 0,
		v[0], v[1], v[2], 0,
		w[0], w[1], w[2], 0,
		0, 0, 0, 1,
	}
	return mathutil.Mat4Mul(rot, mathutil.Translate(c.Pos.Vec3().Negate()))
}

// Projection returns the perspective matrix mapping the view frustum to the
// [-1,1] clip cube. It is built in three stages: scale the frustum to the
// canonical volume, unhinge it to a parallel volume, then remap depth.
// The horizontal angle is taken as heightAngle·aspect.
func Projection(near, far, heightAngle, aspect float64) mathutil.Mat4 {
	widthAngle := heightAngle * aspect

	scale := mathutil.Scale(mathutil.Vec3{
		1 / (far * math.Tan(widthAngle/2)),
		1 / (far * math.Tan(heightAngle/2)),
		1 / far,
	})

	c := -near / far
	unhinge := mathutil.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1 / (1 + c), -c / (1 + c),
		0, 0, -1, 0,
	}

	remap := mathutil.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, -2, -1,
		0, 0, 0, 1,
	}

	return mathutil.Mat4Mul(remap, mathutil.Mat4Mul(unhinge, scale))
}

// ViewProjection returns Projection·View for the camera and an image of the
// given aspect ratio.
func ViewProjection(c scene.CameraData, near, far, aspect float64) mathutil.Mat4 {
	return mathutil.Mat4Mul(Projection(near, far, c.HeightAngle, aspect), View(c))
}

// Project maps a world-space point to pixel coordinates on a width×height
// image. Depth is the negated NDC z, so larger values are nearer. ok is
// false for points at or behind the eye.
func Project(p mathutil.Vec3, viewProj mathutil.Mat4, width, height int) (sx, sy, depth float64, ok bool) {
	clip := viewProj.MulVec4(p.Vec4(1))
	if clip[3] <= mathutil.Epsilon {
		return 0, 0, 0, false
	}
	x := clip[0] / clip[3]
	y := clip[1] / clip[3]
	z := clip[2] / clip[3]

	sx = (x + 1) / 2 * float64(width)
	sy = (1 - y) / 2 * float64(height)
	return sx, sy, -z, true
}

// Orbit returns the camera rotated by angle radians about the world Y axis
// through the origin. Position, look and up rotate together.
func Orbit(c scene.CameraData, angle float64) scene.CameraData {
	r := mathutil.Rotate(mathutil.WorldUp, angle)
	c.Pos = r.MulVec4(c.Pos)
	c.Look = r.MulVec4(c.Look)
	c.Up = r.MulVec4(c.Up)
	return c
}
