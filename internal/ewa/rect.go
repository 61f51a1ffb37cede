package ewa

import "github.com/go-gl/mathgl/mgl64"

// Rect returns the axis-aligned square of half-size radius around center,
// clamped to [0,width-1]×[0,height-1].
func Rect(center mgl64.Vec2, radius float64, width, height int) (lo, hi mgl64.Vec2) {
	maxX := float64(width - 1)
	maxY := float64(height - 1)
	lo = mgl64.Vec2{
		clampRect(center.X()-radius, maxX),
		clampRect(center.Y()-radius, maxY),
	}
	hi = mgl64.Vec2{
		clampRect(center.X()+radius, maxX),
		clampRect(center.Y()+radius, maxY),
	}
	return lo, hi
}

// clampRect clamps v to [0, hi]. NaN maps to 0.
func clampRect(v, hi float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
