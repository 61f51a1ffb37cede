// Package ewa implements the per-primitive geometry of Gaussian splatting:
// projection of centers to screen space, construction of 3D covariances from
// scale and rotation, their local-affine (EWA) projection to 2D, and the
// conservative screen-space radius used for tile binning.
//
// All matrices follow the column-vector convention of mgl64: a point p is
// transformed as M·p, and the view matrix maps world space to a camera space
// where +z points forward and +y points down the image.
//
// Every function here is pure. Nothing in this package holds state or
// returns errors; numeric edge cases are handled by clamping.
package ewa
