package ewa

import "github.com/go-gl/mathgl/mgl64"

const (
	// NearCutoff is the minimum view-space depth of a visible center.
	NearCutoff = 0.2

	// divideEpsilon guards the perspective divide against w == 0.
	divideEpsilon = 1e-6
)

// Projection is the result of projecting a single center.
type Projection struct {
	// NDC is the homogeneous clip position divided by w.
	NDC mgl64.Vec4

	// View is the center in camera space.
	View mgl64.Vec3

	// Visible reports whether View.Z() >= NearCutoff.
	Visible bool
}

// Depth returns the view-space depth.
func (p Projection) Depth() float64 {
	return p.View.Z()
}

// Project maps a world-space point through view and then proj.
func Project(point mgl64.Vec3, view, proj mgl64.Mat4) Projection {
	o := point.Vec4(1)
	v := view.Mul4x1(o)
	h := proj.Mul4x1(v)

	pw := 1.0 / (h.W() + divideEpsilon)

	return Projection{
		NDC:     h.Mul(pw),
		View:    v.Vec3(),
		Visible: v.Z() >= NearCutoff,
	}
}

// ProjectAll projects every point. The three returned slices have len(points).
func ProjectAll(points []mgl64.Vec3, view, proj mgl64.Mat4) (ndc []mgl64.Vec4, viewPoints []mgl64.Vec3, visible []bool) {
	ndc = make([]mgl64.Vec4, len(points))
	viewPoints = make([]mgl64.Vec3, len(points))
	visible = make([]bool, len(points))

	for i, p := range points {
		pr := Project(p, view, proj)
		ndc[i] = pr.NDC
		viewPoints[i] = pr.View
		visible[i] = pr.Visible
	}
	return ndc, viewPoints, visible
}

// NDCToPixel converts normalized device coordinates to pixel coordinates
// where integer values are pixel centers.
func NDCToPixel(ndc mgl64.Vec4, width, height int) mgl64.Vec2 {
	return mgl64.Vec2{
		((ndc.X()+1)*float64(width) - 1) * 0.5,
		((ndc.Y()+1)*float64(height) - 1) * 0.5,
	}
}
