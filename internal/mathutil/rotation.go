package mathutil

import "math"

// AxisAngle returns a 3×3 rotation of a radians about axis (normalized here).
// Positive angles rotate counter-clockwise when looking down the axis.
func AxisAngle(axis Vec3, a float64) Mat3 {
	return QuatToMat3(QuatFromAxisAngle(axis.Normalize(), a))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
