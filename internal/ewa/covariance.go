package ewa

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// LowPass is added to both diagonal entries of every 2D covariance so
	// that each splat covers at least about one pixel.
	LowPass = 0.3

	// frustumSlack widens the clamp applied to the tangent ratios t.x/t.z
	// and t.y/t.z relative to the half field of view.
	frustumSlack = 1.3
)

// Rotation returns the rotation matrix of q after normalization.
// q is stored as (w, x, y, z) in mgl64.Quat. A zero quaternion yields NaNs;
// callers validate beforehand.
func Rotation(q mgl64.Quat) mgl64.Mat3 {
	n := q.Len()
	w, x, y, z := q.W/n, q.V[0]/n, q.V[1]/n, q.V[2]/n

	return mgl64.Mat3FromRows(
		mgl64.Vec3{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		mgl64.Vec3{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		mgl64.Vec3{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	)
}

// Covariance3D builds Σ = (R·S)(R·S)ᵀ from a scale vector and a rotation.
// The result is symmetric positive semi-definite for any finite input.
func Covariance3D(scale mgl64.Vec3, rot mgl64.Quat) mgl64.Mat3 {
	l := Rotation(rot).Mul3(mgl64.Diag3(scale))
	return l.Mul3(l.Transpose())
}

// Covariance2D projects cov3D to screen space around mean using the
// first-order Taylor expansion of the perspective projection, then adds the
// LowPass term. The result is the top-left 2x2 block of J·W·Σ·Wᵀ·Jᵀ.
func Covariance2D(mean mgl64.Vec3, cov3D mgl64.Mat3, view mgl64.Mat4, fovX, fovY, focalX, focalY float64) mgl64.Mat2 {
	t := view.Mul4x1(mean.Vec4(1)).Vec3()

	limX := frustumSlack * math.Tan(fovX*0.5)
	limY := frustumSlack * math.Tan(fovY*0.5)

	tz := t.Z()
	tx := clamp(t.X()/tz, -limX, limX) * tz
	ty := clamp(t.Y()/tz, -limY, limY) * tz

	j := mgl64.Mat3FromRows(
		mgl64.Vec3{focalX / tz, 0, -focalX * tx / (tz * tz)},
		mgl64.Vec3{0, focalY / tz, -focalY * ty / (tz * tz)},
		mgl64.Vec3{0, 0, 0},
	)
	w := view.Mat3()

	jw := j.Mul3(w)
	full := jw.Mul3(cov3D).Mul3(jw.Transpose())

	return mgl64.Mat2{
		full.At(0, 0) + LowPass, full.At(1, 0),
		full.At(0, 1), full.At(1, 1) + LowPass,
	}
}

// Conic returns the inverse of a 2D covariance packed as (a, b, c) with
// inverse = [[a, b], [b, c]]. ok is false when the matrix is not positive
// definite or not finite.
func Conic(cov mgl64.Mat2) (conic [3]float64, ok bool) {
	c00, c01, c10, c11 := cov.At(0, 0), cov.At(0, 1), cov.At(1, 0), cov.At(1, 1)
	det := c00*c11 - c01*c10
	if !(det > 0) || math.IsInf(det, 0) || !(c00 > 0) {
		return conic, false
	}
	inv := 1 / det
	off := -0.5 * (c01 + c10) * inv
	return [3]float64{c11 * inv, off, c00 * inv}, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
