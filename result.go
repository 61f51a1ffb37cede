package splat

import "github.com/go-gl/mathgl/mgl64"

// Result is the output of one render call.
type Result struct {
	// Image is the composited frame.
	Image *Framebuffer

	// ScreenMeans are the projected primitive centers in pixels, for every
	// primitive including culled ones.
	ScreenMeans []mgl64.Vec2

	// Visible[i] is true iff Radii[i] > 0.
	Visible []bool

	// Radii are the screen-space bounding radii in pixels. Culled
	// primitives have radius 0.
	Radii []float64

	// Depths are the view-space depths of the primitive centers.
	Depths []float64

	// Alpha is the per-pixel accumulated alpha, row-major. Nil unless the
	// renderer was created WithAuxiliaryBuffers(true).
	Alpha []float32

	// Depth is the per-pixel alpha-weighted depth, row-major. Nil unless
	// the renderer was created WithAuxiliaryBuffers(true).
	Depth []float32

	Stats Stats
}

// Stats summarizes one render call.
type Stats struct {
	// Primitives is the number of input primitives.
	Primitives int

	// Visible is the number of primitives with a positive radius.
	Visible int

	// Tiles is the number of tiles in the frame.
	Tiles int

	// ActiveTiles is the number of tiles with at least one candidate.
	ActiveTiles int

	// Pairs is the total number of tile/primitive overlaps.
	Pairs int
}
