package splat

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera describes a pinhole camera for one frame.
//
// View maps world space to camera space, where +x points right, +y points
// down the image and +z points forward. Proj maps camera space to clip
// space with w equal to the camera-space depth.
type Camera struct {
	View mgl64.Mat4
	Proj mgl64.Mat4

	// FovX and FovY are the full fields of view in radians.
	FovX, FovY float64

	// FocalX and FocalY are the focal lengths in pixels.
	FocalX, FocalY float64

	Width, Height int

	// Center is the camera position in world space.
	Center mgl64.Vec3
}

// CameraParams are the inputs of NewCamera.
type CameraParams struct {
	View          mgl64.Mat4
	FovX, FovY    float64
	Width, Height int

	// ZNear and ZFar bound the depth range of Proj. Zero values select
	// 0.01 and 100.
	ZNear, ZFar float64
}

// NewCamera derives focal lengths, projection and center from p.
func NewCamera(p CameraParams) (Camera, error) {
	znear, zfar := p.ZNear, p.ZFar
	if znear == 0 {
		znear = 0.01
	}
	if zfar == 0 {
		zfar = 100
	}
	if !(znear > 0 && zfar > znear) {
		return Camera{}, fmt.Errorf("%w: depth range [%v, %v]", ErrInvalidCamera, znear, zfar)
	}

	c := Camera{
		View:   p.View,
		Proj:   ProjectionMatrix(znear, zfar, p.FovX, p.FovY),
		FovX:   p.FovX,
		FovY:   p.FovY,
		FocalX: FocalFromFov(p.FovX, p.Width),
		FocalY: FocalFromFov(p.FovY, p.Height),
		Width:  p.Width,
		Height: p.Height,
		Center: p.View.Inv().Col(3).Vec3(),
	}
	if err := c.Validate(); err != nil {
		return Camera{}, err
	}
	return c, nil
}

// Validate reports whether c can be rendered.
func (c *Camera) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidCamera, c.Width, c.Height)
	case !(c.FovX > 0 && c.FovX < math.Pi) || !(c.FovY > 0 && c.FovY < math.Pi):
		return fmt.Errorf("%w: field of view (%v, %v)", ErrInvalidCamera, c.FovX, c.FovY)
	case !(c.FocalX > 0) || !(c.FocalY > 0) || math.IsInf(c.FocalX, 0) || math.IsInf(c.FocalY, 0):
		return fmt.Errorf("%w: focal length (%v, %v)", ErrInvalidCamera, c.FocalX, c.FocalY)
	}
	return nil
}

// FocalFromFov returns the focal length in pixels for a field of view
// spanning the given number of pixels.
func FocalFromFov(fov float64, pixels int) float64 {
	return float64(pixels) / (2 * math.Tan(fov/2))
}

// FovFromFocal is the inverse of FocalFromFov.
func FovFromFocal(focal float64, pixels int) float64 {
	return 2 * math.Atan(float64(pixels)/(2*focal))
}

// ProjectionMatrix returns a symmetric perspective projection for a camera
// looking down +z. Clip w equals camera-space z, and clip z/w maps
// [znear, zfar] to [0, 1].
func ProjectionMatrix(znear, zfar, fovX, fovY float64) mgl64.Mat4 {
	top := math.Tan(fovY/2) * znear
	right := math.Tan(fovX/2) * znear

	var p mgl64.Mat4
	p.Set(0, 0, znear/right)
	p.Set(1, 1, znear/top)
	p.Set(2, 2, zfar/(zfar-znear))
	p.Set(2, 3, -zfar*znear/(zfar-znear))
	p.Set(3, 2, 1)
	return p
}

// LookAt returns a view matrix for a camera at eye looking at target.
// up is the world direction that appears at the top of the image.
func LookAt(eye, target, up mgl64.Vec3) mgl64.Mat4 {
	forward := target.Sub(eye).Normalize()
	// Image y grows downwards, so the camera's +y is world "down".
	down := forward.Mul(up.Dot(forward)).Sub(up).Normalize()
	right := down.Cross(forward)

	rot := mgl64.Mat4FromRows(
		right.Vec4(0),
		down.Vec4(0),
		forward.Vec4(0),
		mgl64.Vec4{0, 0, 0, 1},
	)
	return rot.Mul4(mgl64.Translate3D(-eye.X(), -eye.Y(), -eye.Z()))
}
