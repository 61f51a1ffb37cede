package splat

import (
	"image"
	"image/color"
)

// Framebuffer is a row-major RGB image with float32 components.
type Framebuffer struct {
	width  int
	height int
	pix    []float32 // 3 components per pixel
}

// NewFramebuffer creates a black framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]float32, width*height*3),
	}
}

// Width returns the width of the framebuffer.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the height of the framebuffer.
func (f *Framebuffer) Height() int {
	return f.height
}

// Pix returns the raw components, one scanline per image row.
func (f *Framebuffer) Pix() []float32 {
	return f.pix
}

// Pixel returns the color at (x, y), or Black when out of bounds.
func (f *Framebuffer) Pixel(x, y int) RGB {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return Black
	}
	i := (y*f.width + x) * 3
	return RGB{
		R: float64(f.pix[i]),
		G: float64(f.pix[i+1]),
		B: float64(f.pix[i+2]),
	}
}

// SetPixel sets the color at (x, y). Out-of-bounds writes are ignored.
func (f *Framebuffer) SetPixel(x, y int, c RGB) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := (y*f.width + x) * 3
	f.pix[i] = float32(c.R)
	f.pix[i+1] = float32(c.G)
	f.pix[i+2] = float32(c.B)
}

// ToImage converts the framebuffer to an 8-bit image, clamping to [0, 1].
func (f *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			img.SetNRGBA(x, y, f.Pixel(x, y).Color())
		}
	}
	return img
}

// ColorModel implements the image.Image interface.
func (f *Framebuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements the image.Image interface.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// At implements the image.Image interface.
func (f *Framebuffer) At(x, y int) color.Color {
	return f.Pixel(x, y).Color()
}
