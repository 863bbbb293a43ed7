// Package xform holds the transform helpers that gomath does not provide
// directly. Everything else goes through dprec.
package xform

import (
	"github.com/mokiat/gomath/dprec"
)

// Pose builds a transform without scale.
func Pose(translation dprec.Vec3, rotation dprec.Quat) dprec.Mat4 {
	return dprec.TRSMat4(translation, rotation, dprec.NewVec3(1.0, 1.0, 1.0))
}

// WithPosition returns a copy of the transform with its translation
// replaced.
func WithPosition(m dprec.Mat4, p dprec.Vec3) dprec.Mat4 {
	m.M14, m.M24, m.M34 = p.X, p.Y, p.Z
	return m
}

// Relative returns the rotation that takes from into to when applied
// after it: to * inverse(from).
func Relative(to, from dprec.Quat) dprec.Quat {
	return dprec.UnitQuat(dprec.QuatProd(to, dprec.InverseQuat(from)))
}

// SameRotation reports whether a and b describe the same rotation within
// eps, treating q and -q as equal.
func SameRotation(a, b dprec.Quat, eps float64) bool {
	dot := dprec.QuatDot(dprec.UnitQuat(a), dprec.UnitQuat(b))
	return dprec.Abs(dprec.Abs(dot)-1.0) <= eps
}

// Lerp interpolates linearly between a and b. At t == 1 the result is b
// exactly, which dprec.Vec3Lerp does not promise.
func Lerp(a, b dprec.Vec3, t float64) dprec.Vec3 {
	if t >= 1.0 {
		return b
	}
	if t <= 0.0 {
		return a
	}
	return dprec.Vec3Sum(a, dprec.Vec3Prod(dprec.Vec3Diff(b, a), t))
}
