package splat

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RGB is a linear color. Components are nominally in [0, 1].
type RGB struct {
	R, G, B float64
}

// Common backgrounds.
var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
)

// Color converts c to an opaque color.NRGBA, clamping each component.
func (c RGB) Color() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: 255,
	}
}

func (c RGB) array32() [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

func to8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// ColorEvaluator computes the raw view-dependent color of a primitive from
// its coefficients and the unit direction from the camera center to the
// primitive. The renderer adds 0.5 and clamps at zero.
type ColorEvaluator interface {
	Evaluate(degree int, coeffs []mgl64.Vec3, dir mgl64.Vec3) mgl64.Vec3
}

// ColorFunc adapts a function to ColorEvaluator.
type ColorFunc func(degree int, coeffs []mgl64.Vec3, dir mgl64.Vec3) mgl64.Vec3

// Evaluate calls f.
func (f ColorFunc) Evaluate(degree int, coeffs []mgl64.Vec3, dir mgl64.Vec3) mgl64.Vec3 {
	return f(degree, coeffs, dir)
}

// primitiveColor evaluates the color of p as seen from center.
func primitiveColor(ev ColorEvaluator, degree int, p *Primitive, center mgl64.Vec3) RGB {
	dir := p.Position.Sub(center)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	raw := ev.Evaluate(degree, p.SH, dir)
	return RGB{
		R: math.Max(raw.X()+0.5, 0),
		G: math.Max(raw.Y()+0.5, 0),
		B: math.Max(raw.Z()+0.5, 0),
	}
}
