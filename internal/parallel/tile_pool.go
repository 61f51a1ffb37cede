package parallel

import "sync"

// tileScratch holds the per-tile structure-of-arrays copy of the splats
// binned to one tile, in front-to-back order.
type tileScratch struct {
	meanX, meanY []float32
	conicA       []float32
	conicB       []float32
	conicC       []float32
	opacity      []float32
	r, g, b      []float32
	depth        []float32
}

// reset resizes every lane to n, growing the backing arrays when needed.
func (s *tileScratch) reset(n int) {
	s.meanX = grow(s.meanX, n)
	s.meanY = grow(s.meanY, n)
	s.conicA = grow(s.conicA, n)
	s.conicB = grow(s.conicB, n)
	s.conicC = grow(s.conicC, n)
	s.opacity = grow(s.opacity, n)
	s.r = grow(s.r, n)
	s.g = grow(s.g, n)
	s.b = grow(s.b, n)
	s.depth = grow(s.depth, n)
}

// gather copies the splats listed in bin into the scratch lanes.
func (s *tileScratch) gather(splats []Splat, bin []int32) {
	s.reset(len(bin))
	for k, idx := range bin {
		sp := &splats[idx]
		s.meanX[k] = sp.Mean[0]
		s.meanY[k] = sp.Mean[1]
		s.conicA[k] = sp.Conic[0]
		s.conicB[k] = sp.Conic[1]
		s.conicC[k] = sp.Conic[2]
		s.opacity[k] = sp.Opacity
		s.r[k] = sp.Color[0]
		s.g[k] = sp.Color[1]
		s.b[k] = sp.Color[2]
		s.depth[k] = float32(sp.Depth)
	}
}

func grow(s []float32, n int) []float32 {
	if cap(s) < n {
		return make([]float32, n, max(n, 2*cap(s)))
	}
	return s[:n]
}

// ScratchPool provides reuse of per-tile scratch buffers via sync.Pool.
//
// The pool reduces GC pressure by keeping the buffers of earlier tiles and
// frames around; a buffer only grows when a tile has more candidates than
// any tile it served before.
//
// Thread safety: ScratchPool is safe for concurrent use.
type ScratchPool struct {
	pool sync.Pool
}

// NewScratchPool creates a new scratch pool.
func NewScratchPool() *ScratchPool {
	p := &ScratchPool{}
	p.pool.New = func() any {
		return &tileScratch{}
	}
	return p
}

// get retrieves a scratch buffer from the pool.
func (p *ScratchPool) get() *tileScratch {
	return p.pool.Get().(*tileScratch)
}

// put returns a scratch buffer to the pool. nil is a no-op.
func (p *ScratchPool) put(s *tileScratch) {
	if s == nil {
		return
	}
	p.pool.Put(s)
}
