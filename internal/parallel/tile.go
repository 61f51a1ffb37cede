// Package parallel provides the tile-based splat rasterizer.
//
// The image is divided into 16x16 pixel tiles. Splats are binned to the tiles
// their bounding rectangles overlap, each tile composites its candidates
// front to back, and tiles are rendered independently, optionally in
// parallel on a WorkerPool. Key features:
//
//   - 16x16 tiles, truncated at the right and bottom image edges
//   - one global depth sort, so every bin is already front-to-back
//   - per-tile scratch buffers reused via sync.Pool
//   - disjoint per-tile writes into the target, no locking
//
// Thread safety: TileGrid is immutable after construction. TileRasterizer
// must not be used for two Rasterize calls at the same time.
package parallel

// Tile size constants.
const (
	// TileSize is the width and height of a full tile in pixels.
	TileSize = 16

	// TilePixels is the number of pixels in a full tile.
	TilePixels = TileSize * TileSize
)

// Tile is a rectangular block of the image.
//
// Edge tiles may have smaller actual dimensions when the image is not
// evenly divisible by the tile size.
type Tile struct {
	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based).
	Y int

	// Width is the actual width in pixels (may be < TileSize for edge tiles).
	Width int

	// Height is the actual height in pixels (may be < TileSize for edge tiles).
	Height int
}

// Origin returns the top-left pixel of the tile in image space.
func (t Tile) Origin() (x, y int) {
	return t.X * TileSize, t.Y * TileSize
}

// Bounds returns the pixel bounds of this tile in image space.
// Returns (x, y, width, height) where x,y is the top-left corner.
func (t Tile) Bounds() (x, y, w, h int) {
	return t.X * TileSize, t.Y * TileSize, t.Width, t.Height
}

// Contains returns true if the image-space pixel (px, py) is within this tile.
func (t Tile) Contains(px, py int) bool {
	ox, oy := t.Origin()
	return px >= ox && px < ox+t.Width &&
		py >= oy && py < oy+t.Height
}

// Pixels returns the number of pixels covered by the tile.
func (t Tile) Pixels() int {
	return t.Width * t.Height
}

// Overlaps reports whether the rectangle [lo,hi] intersects the tile.
// The test is strict: max(lo, tileMin) < min(hi, tileMax) on both axes,
// where tileMax is the last pixel row/column of the tile.
func (t Tile) Overlaps(loX, loY, hiX, hiY float32) bool {
	ox, oy := t.Origin()
	minX := float32(ox)
	minY := float32(oy)
	maxX := float32(ox + t.Width - 1)
	maxY := float32(oy + t.Height - 1)

	return max(loX, minX) < min(hiX, maxX) &&
		max(loY, minY) < min(hiY, maxY)
}
