package main

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// writePNG encodes img to path, upscaling by an integer factor first when
// scale > 1. Nearest-neighbour keeps individual pixels visible; otherwise
// Catmull-Rom is used.
func writePNG(path string, img image.Image, scale int, nearest bool) error {
	if scale > 1 {
		b := img.Bounds()
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		var interp draw.Interpolator = draw.CatmullRom
		if nearest {
			interp = draw.NearestNeighbor
		}
		interp.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
