package ewa

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// discriminantFloor bounds mid²-det from below before the square root.
const discriminantFloor = 0.1

// Eigenvalues returns the two eigenvalues of a 2D covariance, larger first.
func Eigenvalues(cov mgl64.Mat2) (float64, float64) {
	c00, c01, c10, c11 := cov.At(0, 0), cov.At(0, 1), cov.At(1, 0), cov.At(1, 1)
	det := c00*c11 - c01*c10
	mid := 0.5 * (c00 + c11)
	d := math.Sqrt(math.Max(mid*mid-det, discriminantFloor))
	return mid + d, mid - d
}

// Radius returns the 3-sigma screen-space radius ceil(3·sqrt(λmax)).
// Non-finite or negative eigenvalues yield 0.
func Radius(cov mgl64.Mat2) float64 {
	l1, l2 := Eigenvalues(cov)
	l := math.Max(l1, l2)
	if !(l > 0) || math.IsInf(l, 0) {
		return 0
	}
	return math.Ceil(3 * math.Sqrt(l))
}
