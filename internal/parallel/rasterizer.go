package parallel

import (
	"cmp"
	"slices"

	"github.com/gogpu/splat/internal/wide"
)

// MaxAlpha caps the per-splat alpha used in compositing.
const MaxAlpha = 0.99

// Splat is a primitive reduced to screen space for one frame.
type Splat struct {
	// Mean is the projected center in pixel coordinates.
	Mean [2]float32

	// Conic is the inverse 2D covariance packed as (a, b, c) for
	// [[a, b], [b, c]].
	Conic [3]float32

	// Opacity is in [0,1].
	Opacity float32

	// Color is linear RGB.
	Color [3]float32

	// Depth is the view-space depth used for ordering.
	Depth float64

	// Radius is the screen-space radius. Splats with Radius <= 0 are culled.
	Radius float32

	// Min and Max are the clamped bounding rectangle corners.
	Min, Max [2]float32
}

// Target is the output of a rasterization pass. Color holds Width*Height
// RGB triples row-major. Alpha and Depth are optional per-pixel planes;
// nil slices are not written.
type Target struct {
	Width, Height int
	Color         []float32
	Alpha         []float32
	Depth         []float32
}

// Stats describes one rasterization pass.
type Stats struct {
	// Splats is the number of splats with a positive radius.
	Splats int

	// Tiles is the total number of tiles in the grid.
	Tiles int

	// ActiveTiles is the number of tiles with at least one candidate.
	ActiveTiles int

	// Pairs is the total number of (tile, splat) candidate pairs.
	Pairs int
}

// TileRasterizer bins splats to tiles and composites each tile.
//
// The bins and the depth order are retained between calls and resliced,
// so steady-state rendering of similar scenes does not allocate them again.
type TileRasterizer struct {
	pool    *WorkerPool
	scratch *ScratchPool
	order   []int32
	bins    [][]int32
}

// NewTileRasterizer creates a rasterizer. A nil pool renders tiles
// serially on the calling goroutine in row-major order.
func NewTileRasterizer(pool *WorkerPool) *TileRasterizer {
	return &TileRasterizer{
		pool:    pool,
		scratch: NewScratchPool(),
	}
}

// Rasterize composites splats into dst over background bg.
// Every pixel of dst is written, including pixels of tiles with no
// candidates, which receive the background.
func (r *TileRasterizer) Rasterize(dst *Target, splats []Splat, bg [3]float32) Stats {
	grid := NewTileGrid(dst.Width, dst.Height)
	r.sortByDepth(splats)
	pairs := r.bin(grid, splats)

	tiles := grid.AllTiles()
	shade := func(i int) {
		r.renderTile(dst, tiles[i], splats, r.bins[i], bg)
	}

	if r.pool == nil {
		for i := range tiles {
			shade(i)
		}
	} else {
		r.pool.ExecuteAll(len(tiles), shade)
	}

	active := 0
	for _, b := range r.bins {
		if len(b) > 0 {
			active++
		}
	}
	return Stats{
		Splats:      len(r.order),
		Tiles:       len(tiles),
		ActiveTiles: active,
		Pairs:       pairs,
	}
}

// sortByDepth orders the indices of non-culled splats nearest first.
// Ties are broken by index so the result is deterministic.
func (r *TileRasterizer) sortByDepth(splats []Splat) {
	r.order = r.order[:0]
	for i := range splats {
		if splats[i].Radius > 0 {
			r.order = append(r.order, int32(i)) //nolint:gosec // splat counts fit in int32
		}
	}
	slices.SortFunc(r.order, func(a, b int32) int {
		if c := cmp.Compare(splats[a].Depth, splats[b].Depth); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

// bin appends every ordered splat to the bins of the tiles its rectangle
// overlaps. Because splats are visited in depth order, each bin is already
// sorted front to back. Returns the number of pairs.
func (r *TileRasterizer) bin(grid *TileGrid, splats []Splat) int {
	n := grid.TileCount()
	if cap(r.bins) < n {
		r.bins = append(r.bins[:cap(r.bins)], make([][]int32, n-cap(r.bins))...)
	}
	r.bins = r.bins[:n]
	for i := range r.bins {
		r.bins[i] = r.bins[i][:0]
	}

	pairs := 0
	for _, idx := range r.order {
		sp := &splats[idx]
		tx0, ty0, tx1, ty1 := grid.TileRange(sp.Min[0], sp.Min[1], sp.Max[0], sp.Max[1])
		for ty := ty0; ty <= ty1; ty++ {
			for tx := tx0; tx <= tx1; tx++ {
				ti := grid.Index(tx, ty)
				if !grid.tiles[ti].Overlaps(sp.Min[0], sp.Min[1], sp.Max[0], sp.Max[1]) {
					continue
				}
				r.bins[ti] = append(r.bins[ti], idx)
				pairs++
			}
		}
	}
	return pairs
}

// renderTile composites one tile. Pixels are processed 8 at a time along
// each row; lanes past the tile's right edge are computed and discarded.
func (r *TileRasterizer) renderTile(dst *Target, t Tile, splats []Splat, bin []int32, bg [3]float32) {
	ox, oy := t.Origin()

	if len(bin) == 0 {
		fillBackground(dst, t, bg)
		return
	}

	s := r.scratch.get()
	defer r.scratch.put(s)
	s.gather(splats, bin)

	for row := 0; row < t.Height; row++ {
		py := oy + row
		for col := 0; col < t.Width; col += wide.Lanes {
			px := ox + col
			c := compositeChunk(s, float32(px), float32(py))

			n := min(wide.Lanes, t.Width-col)
			base := py*dst.Width + px
			for l := 0; l < n; l++ {
				rest := 1 - c.acc[l]
				o := (base + l) * 3
				dst.Color[o] = c.r[l] + rest*bg[0]
				dst.Color[o+1] = c.g[l] + rest*bg[1]
				dst.Color[o+2] = c.b[l] + rest*bg[2]
				if dst.Alpha != nil {
					dst.Alpha[base+l] = c.acc[l]
				}
				if dst.Depth != nil {
					dst.Depth[base+l] = c.depth[l]
				}
			}
		}
	}
}

// chunk is the compositing state of 8 horizontally adjacent pixels.
type chunk struct {
	r, g, b wide.F32x8
	acc     wide.F32x8
	depth   wide.F32x8
}

// compositeChunk accumulates all candidates of a tile, front to back, for
// the pixels (px..px+7, py).
func compositeChunk(s *tileScratch, px, py float32) chunk {
	var c chunk
	trans := wide.SplatF32(1)
	xs := wide.Ramp(px)

	for k := range s.meanX {
		dx := xs.Sub(wide.SplatF32(s.meanX[k]))
		dy := py - s.meanY[k]

		// power = -0.5*(a*dx² + c*dy²) - b*dx*dy
		quad := dx.Mul(dx).Scale(s.conicA[k]).
			Add(dx.Scale(2 * s.conicB[k] * dy)).
			Add(wide.SplatF32(s.conicC[k] * dy * dy))
		weight := quad.Scale(-0.5).Exp()

		alpha := weight.Scale(s.opacity[k]).MinScalar(MaxAlpha)
		contrib := trans.Mul(alpha)

		c.r = contrib.MulAdd(wide.SplatF32(s.r[k]), c.r)
		c.g = contrib.MulAdd(wide.SplatF32(s.g[k]), c.g)
		c.b = contrib.MulAdd(wide.SplatF32(s.b[k]), c.b)
		c.depth = contrib.MulAdd(wide.SplatF32(s.depth[k]), c.depth)
		c.acc = c.acc.Add(contrib)

		trans = trans.Sub(contrib)
	}
	return c
}

// fillBackground writes bg into every pixel of an empty tile.
func fillBackground(dst *Target, t Tile, bg [3]float32) {
	ox, oy := t.Origin()
	for row := 0; row < t.Height; row++ {
		base := (oy+row)*dst.Width + ox
		for col := 0; col < t.Width; col++ {
			o := (base + col) * 3
			dst.Color[o] = bg[0]
			dst.Color[o+1] = bg[1]
			dst.Color[o+2] = bg[2]
			if dst.Alpha != nil {
				dst.Alpha[base+col] = 0
			}
			if dst.Depth != nil {
				dst.Depth[base+col] = 0
			}
		}
	}
}
