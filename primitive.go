package splat

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/splat/sh"
)

// Primitive is an anisotropic 3D Gaussian.
type Primitive struct {
	// Position is the center in world space.
	Position mgl64.Vec3

	// Opacity is the peak alpha in [0, 1].
	Opacity float64

	// Scale holds the standard deviations along the local axes. Every
	// component must be positive.
	Scale mgl64.Vec3

	// Rotation orients the local axes. It need not be normalized but must
	// not be zero.
	Rotation mgl64.Quat

	// SH holds the view-dependent color coefficients, at least
	// sh.CoefficientCount(Scene.Degree) of them.
	SH []mgl64.Vec3
}

// Validate checks p. When needColor is set the coefficient count is checked
// against degree as well.
func (p *Primitive) Validate(degree int, needColor bool) error {
	if !finite3(p.Position) || !finite3(p.Scale) || !finite3(p.Rotation.V) || !finite(p.Rotation.W) {
		return ErrNonFinite
	}
	if !(p.Opacity >= 0 && p.Opacity <= 1) {
		return ErrOpacityRange
	}
	if p.Scale.X() <= 0 || p.Scale.Y() <= 0 || p.Scale.Z() <= 0 {
		return ErrNonPositiveScale
	}
	if p.Rotation.Len() == 0 {
		return ErrZeroRotation
	}
	if needColor && len(p.SH) < sh.CoefficientCount(degree) {
		return ErrCoefficientCount
	}
	return nil
}

// Scene is the set of primitives rendered in one call.
type Scene struct {
	Primitives []Primitive

	// Degree is the active color basis degree shared by all primitives.
	Degree int
}

// Validate checks every primitive and the degree.
func (s *Scene) Validate(needColor bool) error {
	if needColor && (s.Degree < 0 || s.Degree > sh.MaxDegree) {
		return fmt.Errorf("%w: degree %d", ErrCoefficientCount, s.Degree)
	}
	for i := range s.Primitives {
		if err := s.Primitives[i].Validate(s.Degree, needColor); err != nil {
			return fmt.Errorf("splat: primitive %d: %w", i, err)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finite3(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}
