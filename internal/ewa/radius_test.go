package ewa

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRadius(t *testing.T) {
	tests := []struct {
		name string
		cov  mgl64.Mat2
		want float64
	}{
		{"unit", mgl64.Mat2{1, 0, 0, 1}, 4},
		{"isotropic 4", mgl64.Mat2{4, 0, 0, 4}, 7},
		{"anisotropic", mgl64.Mat2{9, 0, 0, 1}, 9},
		{"low pass only", mgl64.Mat2{LowPass, 0, 0, LowPass}, math.Ceil(3 * math.Sqrt(LowPass+math.Sqrt(0.1)))},
		{"zero", mgl64.Mat2{}, 2},
		{"nan", mgl64.Mat2{math.NaN(), 0, 0, 1}, 0},
		{"negative", mgl64.Mat2{-5, 0, 0, -5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Radius(tt.cov); got != tt.want {
				t.Errorf("Radius() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRadius_MonotonicInLargestEigenvalue(t *testing.T) {
	prev := 0.0
	for l := 1.0; l < 400; l += 3.7 {
		r := Radius(mgl64.Mat2{l, 0, 0, 1})
		if r < prev {
			t.Fatalf("Radius decreased: λ=%v r=%v prev=%v", l, r, prev)
		}
		prev = r
	}
}

func TestEigenvalues(t *testing.T) {
	l1, l2 := Eigenvalues(mgl64.Mat2{5, 2, 2, 2})
	// exact eigenvalues are 6 and 1
	if math.Abs(l1-6) > 1e-12 || math.Abs(l2-1) > 1e-12 {
		t.Errorf("Eigenvalues() = (%v,%v), want (6,1)", l1, l2)
	}
}
