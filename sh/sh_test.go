package sh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCoefficientCount(t *testing.T) {
	want := []int{1, 4, 9, 16}
	for d, w := range want {
		if got := CoefficientCount(d); got != w {
			t.Errorf("CoefficientCount(%d) = %d, want %d", d, got, w)
		}
	}
}

func TestEval_DegreeZeroIgnoresDirection(t *testing.T) {
	coeffs := []mgl64.Vec3{{1, 2, 3}}
	a := Eval(0, coeffs, mgl64.Vec3{0, 0, 1})
	b := Eval(0, coeffs, mgl64.Vec3{1, 0, 0})
	if a != b {
		t.Errorf("Eval differs by direction: %v vs %v", a, b)
	}
	if !a.ApproxEqualThreshold(mgl64.Vec3{c0, 2 * c0, 3 * c0}, 1e-12) {
		t.Errorf("Eval() = %v", a)
	}
}

func TestFromRGB_RoundTrip(t *testing.T) {
	rgb := mgl64.Vec3{0.1, 0.5, 0.9}
	got := Eval(0, []mgl64.Vec3{FromRGB(rgb)}, mgl64.Vec3{0, 0, 1}).Add(mgl64.Vec3{0.5, 0.5, 0.5})
	if !got.ApproxEqualThreshold(rgb, 1e-12) {
		t.Errorf("round trip = %v, want %v", got, rgb)
	}
}

func TestEval_DegreeOneTerms(t *testing.T) {
	coeffs := make([]mgl64.Vec3, 4)
	coeffs[2] = mgl64.Vec3{1, 1, 1} // z term

	up := Eval(1, coeffs, mgl64.Vec3{0, 0, 1})
	down := Eval(1, coeffs, mgl64.Vec3{0, 0, -1})
	if math.Abs(up[0]-c1) > 1e-12 || math.Abs(down[0]+c1) > 1e-12 {
		t.Errorf("z term: up=%v down=%v, want ±%v", up, down, c1)
	}
}

func TestEval_HigherDegreesOnlyAddTerms(t *testing.T) {
	coeffs := make([]mgl64.Vec3, 16)
	coeffs[0] = mgl64.Vec3{1, 1, 1}
	dir := mgl64.Vec3{1, 2, 2}.Normalize()

	base := Eval(0, coeffs, dir)
	for d := 1; d <= MaxDegree; d++ {
		if got := Eval(d, coeffs, dir); !got.ApproxEqualThreshold(base, 1e-12) {
			t.Errorf("degree %d with zero higher coefficients = %v, want %v", d, got, base)
		}
	}

	coeffs[15] = mgl64.Vec3{1, 0, 0}
	if got := Eval(3, coeffs, dir); got.ApproxEqualThreshold(base, 1e-12) {
		t.Error("degree 3 coefficient had no effect")
	}
}

func TestEval_PanicsOnShortCoefficients(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Eval with too few coefficients did not panic")
		}
	}()
	Eval(2, make([]mgl64.Vec3, 4), mgl64.Vec3{0, 0, 1})
}
