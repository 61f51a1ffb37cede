package splat

import "errors"

// Validation errors. Render wraps them with the offending primitive index;
// use errors.Is to test for them.
var (
	// ErrZeroRotation is returned for a rotation quaternion of zero norm.
	ErrZeroRotation = errors.New("splat: rotation quaternion has zero norm")

	// ErrNonPositiveScale is returned when a scale component is <= 0.
	ErrNonPositiveScale = errors.New("splat: scale component is not positive")

	// ErrOpacityRange is returned for opacity outside [0, 1].
	ErrOpacityRange = errors.New("splat: opacity outside [0, 1]")

	// ErrNonFinite is returned for NaN or infinite primitive parameters.
	ErrNonFinite = errors.New("splat: non-finite primitive parameter")

	// ErrInvalidCamera is returned for unusable camera parameters.
	ErrInvalidCamera = errors.New("splat: invalid camera")

	// ErrCoefficientCount is returned when a primitive has fewer color
	// coefficients than the active degree needs, or the degree is unsupported.
	ErrCoefficientCount = errors.New("splat: color coefficient count does not match degree")

	// ErrOverrideColorCount is returned when override colors do not match
	// the primitive count.
	ErrOverrideColorCount = errors.New("splat: override color count does not match primitives")

	// ErrClosed is returned by Render after Close.
	ErrClosed = errors.New("splat: renderer is closed")
)
