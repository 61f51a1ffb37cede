package splat

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/splat/internal/ewa"
	"github.com/gogpu/splat/internal/parallel"
)

// preprocessChunk is the number of primitives handled per pool job during
// screen-space preprocessing.
const preprocessChunk = 1024

// Renderer rasterizes scenes of 3D Gaussians.
//
// A Renderer owns a worker pool (BackendParallel) and scratch memory that is
// reused between frames. Render calls on one Renderer are serialized.
// Call Close to stop the workers.
type Renderer struct {
	mu     sync.Mutex
	opts   options
	pool   *parallel.WorkerPool
	raster *parallel.TileRasterizer
	splats []parallel.Splat
	closed bool
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{opts: o}
	if o.backend == BackendParallel {
		r.pool = parallel.NewWorkerPool(o.workers)
	}
	r.raster = parallel.NewTileRasterizer(r.pool)

	r.logger().Debug("splat: renderer created",
		"backend", o.backend.String(),
		"workers", r.workers(),
		"auxiliary", o.auxiliary)
	return r
}

// Render draws scene as seen by cam.
//
// Inputs are validated first; invalid primitives or cameras yield an error
// wrapping one of the package's sentinel errors and no image. Beyond
// validation, rendering never fails: numeric edge cases are clamped and
// degenerate primitives are culled.
func (r *Renderer) Render(cam Camera, scene Scene, ro RenderOptions) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if err := cam.Validate(); err != nil {
		return nil, err
	}
	if ro.OverrideColors != nil && len(ro.OverrideColors) != len(scene.Primitives) {
		return nil, fmt.Errorf("%w: %d colors for %d primitives",
			ErrOverrideColorCount, len(ro.OverrideColors), len(scene.Primitives))
	}
	if err := scene.Validate(ro.OverrideColors == nil); err != nil {
		return nil, err
	}

	n := len(scene.Primitives)
	res := &Result{
		Image:       NewFramebuffer(cam.Width, cam.Height),
		ScreenMeans: make([]mgl64.Vec2, n),
		Visible:     make([]bool, n),
		Radii:       make([]float64, n),
		Depths:      make([]float64, n),
	}
	if r.opts.auxiliary {
		res.Alpha = make([]float32, cam.Width*cam.Height)
		res.Depth = make([]float32, cam.Width*cam.Height)
	}

	if cap(r.splats) < n {
		r.splats = make([]parallel.Splat, n)
	}
	r.splats = r.splats[:n]

	p := preprocessor{
		cam:      &cam,
		scene:    &scene,
		override: ro.OverrideColors,
		opts:     &r.opts,
		res:      res,
		splats:   r.splats,
	}
	degenerate := r.preprocess(&p)
	if degenerate > 0 {
		r.logger().Warn("splat: culled primitives with degenerate covariance",
			"count", degenerate)
	}

	target := &parallel.Target{
		Width:  cam.Width,
		Height: cam.Height,
		Color:  res.Image.pix,
		Alpha:  res.Alpha,
		Depth:  res.Depth,
	}
	st := r.raster.Rasterize(target, r.splats, ro.Background.array32())

	res.Stats = Stats{
		Primitives:  n,
		Visible:     st.Splats,
		Tiles:       st.Tiles,
		ActiveTiles: st.ActiveTiles,
		Pairs:       st.Pairs,
	}
	r.logger().Debug("splat: frame rendered",
		"width", cam.Width,
		"height", cam.Height,
		"primitives", n,
		"visible", st.Splats,
		"tiles", st.Tiles,
		"active_tiles", st.ActiveTiles,
		"pairs", st.Pairs)
	return res, nil
}

// preprocess fills the screen-space splats and the per-primitive outputs.
// Returns the number of primitives culled for a degenerate covariance.
func (r *Renderer) preprocess(p *preprocessor) int {
	n := len(p.scene.Primitives)
	chunks := (n + preprocessChunk - 1) / preprocessChunk
	counts := make([]int, chunks)

	run := func(c int) {
		lo := c * preprocessChunk
		hi := min(lo+preprocessChunk, n)
		for i := lo; i < hi; i++ {
			if !p.prepare(i) {
				counts[c]++
			}
		}
	}

	if r.pool == nil {
		for c := range chunks {
			run(c)
		}
	} else {
		r.pool.ExecuteAll(chunks, run)
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// Close stops the worker pool. Subsequent Render calls return ErrClosed.
// Close is safe to call multiple times.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	if r.pool != nil {
		r.pool.Close()
	}
}

// Backend returns the configured backend.
func (r *Renderer) Backend() Backend {
	return r.opts.backend
}

func (r *Renderer) workers() int {
	if r.pool == nil {
		return 1
	}
	return r.pool.Workers()
}

func (r *Renderer) logger() *slog.Logger {
	if r.opts.logger != nil {
		return r.opts.logger
	}
	return Logger()
}

// preprocessor holds the shared read-only inputs of one frame. prepare
// writes only to index i of its output slices, so distinct indices may be
// prepared concurrently.
type preprocessor struct {
	cam      *Camera
	scene    *Scene
	override []RGB
	opts     *options
	res      *Result
	splats   []parallel.Splat
}

// prepare projects primitive i. Returns false when the primitive passed the
// near-plane test but its covariance degenerated.
func (p *preprocessor) prepare(i int) bool {
	prim := &p.scene.Primitives[i]
	cam := p.cam

	proj := ewa.Project(prim.Position, cam.View, cam.Proj)
	mean := ewa.NDCToPixel(proj.NDC, cam.Width, cam.Height)
	depth := proj.Depth()

	p.res.ScreenMeans[i] = mean
	p.res.Depths[i] = depth
	p.splats[i] = parallel.Splat{Depth: depth}

	if !proj.Visible {
		return true
	}

	cov3 := ewa.Covariance3D(prim.Scale.Mul(p.opts.scaleModifier), prim.Rotation)
	cov2 := ewa.Covariance2D(prim.Position, cov3, cam.View, cam.FovX, cam.FovY, cam.FocalX, cam.FocalY)

	conic, ok := ewa.Conic(cov2)
	radius := ewa.Radius(cov2)
	if !ok || radius <= 0 || !finite(mean.X()) || !finite(mean.Y()) {
		return false
	}

	var color RGB
	if p.override != nil {
		color = p.override[i]
	} else {
		color = primitiveColor(p.opts.evaluator, p.scene.Degree, prim, cam.Center)
	}

	lo, hi := ewa.Rect(mean, radius, cam.Width, cam.Height)

	p.res.Radii[i] = radius
	p.res.Visible[i] = true
	p.splats[i] = parallel.Splat{
		Mean:    [2]float32{float32(mean.X()), float32(mean.Y())},
		Conic:   [3]float32{float32(conic[0]), float32(conic[1]), float32(conic[2])},
		Opacity: float32(prim.Opacity),
		Color:   color.array32(),
		Depth:   depth,
		Radius:  float32(radius),
		Min:     [2]float32{float32(lo.X()), float32(lo.Y())},
		Max:     [2]float32{float32(hi.X()), float32(hi.Y())},
	}
	return true
}

// Render is a convenience wrapper that renders one frame with a temporary
// Renderer.
func Render(cam Camera, scene Scene, ro RenderOptions, opts ...Option) (*Result, error) {
	r := NewRenderer(opts...)
	defer r.Close()
	return r.Render(cam, scene, ro)
}
