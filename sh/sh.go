// Package sh evaluates real spherical harmonics color bases.
//
// A primitive's view-dependent color is stored as (degree+1)² RGB
// coefficients. Eval returns the raw basis sum for a unit view direction;
// renderers shift it by +0.5 and clamp at zero before use.
package sh

import "github.com/go-gl/mathgl/mgl64"

// MaxDegree is the highest supported basis degree.
const MaxDegree = 3

// Basis normalization constants.
const (
	c0 = 0.28209479177387814
	c1 = 0.4886025119029199
)

var c2 = [5]float64{
	1.0925484305920792,
	-1.0925484305920792,
	0.31539156525252005,
	-1.0925484305920792,
	0.5462742152960396,
}

var c3 = [7]float64{
	-0.5900435899266435,
	2.890611442640554,
	-0.4570457994644658,
	0.3731763325901154,
	-0.4570457994644658,
	1.445305721320277,
	-0.5900435899266435,
}

// CoefficientCount returns the number of coefficients a basis of the given
// degree needs.
func CoefficientCount(degree int) int {
	return (degree + 1) * (degree + 1)
}

// Eval sums the basis of the given degree for direction dir, which must be
// unit length. coeffs must hold at least CoefficientCount(degree) entries
// and degree must be in [0, MaxDegree]; Eval panics otherwise.
func Eval(degree int, coeffs []mgl64.Vec3, dir mgl64.Vec3) mgl64.Vec3 {
	_ = coeffs[CoefficientCount(degree)-1]

	result := coeffs[0].Mul(c0)
	if degree < 1 {
		return result
	}

	x, y, z := dir.X(), dir.Y(), dir.Z()
	result = result.
		Sub(coeffs[1].Mul(c1 * y)).
		Add(coeffs[2].Mul(c1 * z)).
		Sub(coeffs[3].Mul(c1 * x))
	if degree < 2 {
		return result
	}

	xx, yy, zz := x*x, y*y, z*z
	xy, yz, xz := x*y, y*z, x*z
	result = result.
		Add(coeffs[4].Mul(c2[0] * xy)).
		Add(coeffs[5].Mul(c2[1] * yz)).
		Add(coeffs[6].Mul(c2[2] * (2*zz - xx - yy))).
		Add(coeffs[7].Mul(c2[3] * xz)).
		Add(coeffs[8].Mul(c2[4] * (xx - yy)))
	if degree < 3 {
		return result
	}

	return result.
		Add(coeffs[9].Mul(c3[0] * y * (3*xx - yy))).
		Add(coeffs[10].Mul(c3[1] * xy * z)).
		Add(coeffs[11].Mul(c3[2] * y * (4*zz - xx - yy))).
		Add(coeffs[12].Mul(c3[3] * z * (2*zz - 3*xx - 3*yy))).
		Add(coeffs[13].Mul(c3[4] * x * (4*zz - xx - yy))).
		Add(coeffs[14].Mul(c3[5] * z * (xx - yy))).
		Add(coeffs[15].Mul(c3[6] * x * (xx - 3*yy)))
}

// FromRGB returns the degree-0 coefficient that evaluates to rgb after the
// renderer's +0.5 shift.
func FromRGB(rgb mgl64.Vec3) mgl64.Vec3 {
	return rgb.Sub(mgl64.Vec3{0.5, 0.5, 0.5}).Mul(1 / c0)
}

// Evaluator adapts Eval to a method value.
type Evaluator struct{}

// Evaluate calls Eval.
func (Evaluator) Evaluate(degree int, coeffs []mgl64.Vec3, dir mgl64.Vec3) mgl64.Vec3 {
	return Eval(degree, coeffs, dir)
}
