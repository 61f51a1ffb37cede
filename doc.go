// Package splat renders scenes of anisotropic 3D Gaussians ("splats") into
// images with a tile-based software rasterizer.
//
// # Overview
//
// Each primitive has a center, an opacity, a per-axis scale, a rotation and
// a set of view-dependent color coefficients. For one frame the renderer
//
//  1. projects every center to pixel coordinates and culls centers closer
//     than the near cutoff,
//  2. builds the 3D covariance from scale and rotation and projects it to a
//     2D screen-space covariance with the local-affine (EWA) approximation,
//  3. derives a conservative 3-sigma radius and bounding rectangle,
//  4. bins primitives to 16x16 pixel tiles and composites each tile front
//     to back over a background color.
//
// # Quick Start
//
//	cam, err := splat.NewCamera(splat.CameraParams{
//	    View:  splat.LookAt(eye, target, up),
//	    FovX:  math.Pi / 3,
//	    FovY:  math.Pi / 4,
//	    Width: 640, Height: 480,
//	})
//	if err != nil {
//	    return err
//	}
//
//	r := splat.NewRenderer()
//	defer r.Close()
//
//	res, err := r.Render(cam, scene, splat.RenderOptions{Background: splat.Black})
//	if err != nil {
//	    return err
//	}
//	img := res.Image.ToImage()
//
// # Coordinate System
//
//   - Camera space: +x right, +y down, +z forward
//   - Pixel space: origin at the top-left pixel center, x right, y down
//
// # Concurrency
//
// Tiles write disjoint regions of the framebuffer and are rendered on a
// fixed-size worker pool without locking. Within a tile, primitives are
// composited strictly in ascending depth order; ties are broken by
// primitive index, so output is identical for every backend and worker
// count.
package splat
