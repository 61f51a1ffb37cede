package wide

import "github.com/chewxy/math32"

// F32x8 represents 8 float32 values for SIMD-style operations.
// Designed for Go compiler auto-vectorization with fixed-size arrays.
type F32x8 [Lanes]float32

// SplatF32 creates F32x8 with all elements set to n.
func SplatF32(n float32) F32x8 {
	var result F32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// Ramp returns {start, start+1, ..., start+7}.
func Ramp(start float32) F32x8 {
	var result F32x8
	for i := range result {
		result[i] = start + float32(i)
	}
	return result
}

// Add performs element-wise addition.
func (v F32x8) Add(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise subtraction.
func (v F32x8) Sub(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs element-wise multiplication.
func (v F32x8) Mul(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// Scale multiplies every element by s.
func (v F32x8) Scale(s float32) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] * s
	}
	return result
}

// MulAdd returns v*m + a element-wise.
func (v F32x8) MulAdd(m, a F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i]*m[i] + a[i]
	}
	return result
}

// Exp computes e**v[i] for each element.
func (v F32x8) Exp() F32x8 {
	var result F32x8
	for i := range v {
		result[i] = math32.Exp(v[i])
	}
	return result
}

// MinScalar clamps every element to at most s.
func (v F32x8) MinScalar(s float32) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = math32.Min(v[i], s)
	}
	return result
}

// Min performs element-wise minimum.
func (v F32x8) Min(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		if v[i] < other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// Max performs element-wise maximum.
func (v F32x8) Max(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		if v[i] > other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}
