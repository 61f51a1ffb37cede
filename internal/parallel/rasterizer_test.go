package parallel

import (
	"math"
	"math/rand/v2"
	"testing"
)

// isoSplat builds an isotropic splat of variance v centered at (mx, my).
func isoSplat(mx, my, v, opacity float32, color [3]float32, depth float64, w, h int) Splat {
	r := float32(math.Ceil(3 * math.Sqrt(float64(v))))
	clampf := func(x, hi float32) float32 { return max(0, min(x, hi)) }
	return Splat{
		Mean:    [2]float32{mx, my},
		Conic:   [3]float32{1 / v, 0, 1 / v},
		Opacity: opacity,
		Color:   color,
		Depth:   depth,
		Radius:  r,
		Min:     [2]float32{clampf(mx-r, float32(w-1)), clampf(my-r, float32(h-1))},
		Max:     [2]float32{clampf(mx+r, float32(w-1)), clampf(my+r, float32(h-1))},
	}
}

func newTarget(w, h int, aux bool) *Target {
	t := &Target{Width: w, Height: h, Color: make([]float32, w*h*3)}
	if aux {
		t.Alpha = make([]float32, w*h)
		t.Depth = make([]float32, w*h)
	}
	return t
}

func pixel(dst *Target, x, y int) [3]float32 {
	o := (y*dst.Width + x) * 3
	return [3]float32{dst.Color[o], dst.Color[o+1], dst.Color[o+2]}
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func assertPixel(t *testing.T, dst *Target, x, y int, want [3]float64) {
	t.Helper()
	got := pixel(dst, x, y)
	for c := range 3 {
		if !near(float64(got[c]), want[c], 1e-5) {
			t.Errorf("pixel(%d,%d)[%d] = %v, want %v", x, y, c, got[c], want[c])
		}
	}
}

func TestRasterize_SinglePrimitive(t *testing.T) {
	const v = 4.0
	color := [3]float32{0.2, 0.6, 1.0}

	tests := []struct {
		name string
		bg   [3]float32
	}{
		{"black", [3]float32{0, 0, 0}},
		{"white", [3]float32{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := newTarget(32, 32, false)
			r := NewTileRasterizer(nil)
			r.Rasterize(dst, []Splat{isoSplat(12, 12, v, 1, color, 1, 32, 32)}, tt.bg)

			// offset (2, 1): weight = exp(-0.5 * 5 / v)
			w := math.Exp(-0.5 * 5 / v)
			var want [3]float64
			for c := range 3 {
				want[c] = w*float64(color[c]) + (1-w)*float64(tt.bg[c])
			}
			assertPixel(t, dst, 14, 13, want)
		})
	}
}

func TestRasterize_AlphaCap(t *testing.T) {
	dst := newTarget(16, 16, true)
	r := NewTileRasterizer(nil)
	r.Rasterize(dst, []Splat{isoSplat(8, 8, 2, 1, [3]float32{1, 1, 1}, 1, 16, 16)}, [3]float32{})

	assertPixel(t, dst, 8, 8, [3]float64{MaxAlpha, MaxAlpha, MaxAlpha})
	if a := dst.Alpha[8*16+8]; !near(float64(a), MaxAlpha, 1e-6) {
		t.Errorf("Alpha = %v, want %v", a, MaxAlpha)
	}
}

func TestRasterize_TwoPrimitivesOrder(t *testing.T) {
	const w, h = 20, 20
	c1 := [3]float32{1, 0, 0}
	c2 := [3]float32{0, 0, 1}
	bg := [3]float32{1, 1, 1}

	near1 := isoSplat(10, 10, 9, 0.6, c1, 1, w, h)
	far2 := isoSplat(10, 10, 9, 0.8, c2, 5, w, h)

	// Input order is far-first; output must composite near-first.
	dst := newTarget(w, h, true)
	r := NewTileRasterizer(nil)
	stats := r.Rasterize(dst, []Splat{far2, near1}, bg)

	g := math.Exp(-0.5 * 9 / 9) // offset (3, 0)
	a1 := 0.6 * g
	a2 := 0.8 * g
	var want [3]float64
	for c := range 3 {
		want[c] = a1*float64(c1[c]) + (1-a1)*a2*float64(c2[c]) + (1-a1)*(1-a2)*float64(bg[c])
	}
	assertPixel(t, dst, 13, 10, want)

	wantDepth := a1*1 + (1-a1)*a2*5
	if d := dst.Depth[10*w+13]; !near(float64(d), wantDepth, 1e-5) {
		t.Errorf("Depth = %v, want %v", d, wantDepth)
	}
	wantAlpha := 1 - (1-a1)*(1-a2)
	if a := dst.Alpha[10*w+13]; !near(float64(a), wantAlpha, 1e-5) {
		t.Errorf("Alpha = %v, want %v", a, wantAlpha)
	}

	if stats.Splats != 2 || stats.Tiles != 4 {
		t.Errorf("stats = %+v, want Splats=2 Tiles=4", stats)
	}
}

func TestRasterize_EmptyFillsBackground(t *testing.T) {
	sizes := [][2]int{{16, 16}, {33, 7}, {1, 1}}
	bg := [3]float32{0.25, 0.5, 0.75}

	for _, sz := range sizes {
		dst := newTarget(sz[0], sz[1], false)
		for i := range dst.Color {
			dst.Color[i] = -1
		}

		r := NewTileRasterizer(nil)
		stats := r.Rasterize(dst, nil, bg)

		if stats.ActiveTiles != 0 || stats.Pairs != 0 {
			t.Errorf("%v: stats = %+v, want no active tiles", sz, stats)
		}
		for i, v := range dst.Color {
			if v != bg[i%3] {
				t.Fatalf("%v: Color[%d] = %v, want %v", sz, i, v, bg[i%3])
			}
		}
	}
}

func TestRasterize_CulledSplatIgnored(t *testing.T) {
	sp := isoSplat(8, 8, 4, 1, [3]float32{1, 1, 1}, 1, 16, 16)
	sp.Radius = 0

	dst := newTarget(16, 16, false)
	r := NewTileRasterizer(nil)
	stats := r.Rasterize(dst, []Splat{sp}, [3]float32{})

	if stats.Splats != 0 {
		t.Errorf("Splats = %d, want 0", stats.Splats)
	}
	assertPixel(t, dst, 8, 8, [3]float64{})
}

func TestRasterize_RaggedEdgeTile(t *testing.T) {
	const w, h = 19, 21
	dst := newTarget(w, h, false)
	r := NewTileRasterizer(nil)
	r.Rasterize(dst, []Splat{isoSplat(18, 20, 4, 1, [3]float32{1, 0, 0}, 1, w, h)}, [3]float32{})

	g := math.Exp(-0.5 * 1 / 4.0) // offset (-1, 0)
	assertPixel(t, dst, 17, 20, [3]float64{g, 0, 0})
}

func randomSplats(n, w, h int, seed uint64) []Splat {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]Splat, n)
	for i := range out {
		out[i] = isoSplat(
			rng.Float32()*float32(w), rng.Float32()*float32(h),
			0.5+rng.Float32()*30, rng.Float32(),
			[3]float32{rng.Float32(), rng.Float32(), rng.Float32()},
			float64(rng.IntN(20)), w, h)
	}
	return out
}

func TestRasterize_SerialMatchesParallel(t *testing.T) {
	const w, h = 97, 61
	splats := randomSplats(300, w, h, 42)
	bg := [3]float32{1, 1, 1}

	serial := newTarget(w, h, true)
	NewTileRasterizer(nil).Rasterize(serial, splats, bg)

	pool := NewWorkerPool(4)
	defer pool.Close()
	par := newTarget(w, h, true)
	pr := NewTileRasterizer(pool)

	// Render twice to exercise reuse of bins and scratch.
	pr.Rasterize(par, splats[:50], bg)
	pr.Rasterize(par, splats, bg)

	for i := range serial.Color {
		if serial.Color[i] != par.Color[i] {
			t.Fatalf("Color[%d]: serial %v, parallel %v", i, serial.Color[i], par.Color[i])
		}
	}
	for i := range serial.Alpha {
		if serial.Alpha[i] != par.Alpha[i] || serial.Depth[i] != par.Depth[i] {
			t.Fatalf("aux[%d] differs", i)
		}
	}
}

func TestRasterize_ColorBounded(t *testing.T) {
	const w, h = 40, 40
	dst := newTarget(w, h, true)
	NewTileRasterizer(nil).Rasterize(dst, randomSplats(200, w, h, 3), [3]float32{1, 1, 1})

	for i, v := range dst.Color {
		if v < 0 || v > 1+1e-5 {
			t.Fatalf("Color[%d] = %v outside [0,1]", i, v)
		}
	}
	for i, a := range dst.Alpha {
		if a < 0 || a > 1+1e-5 {
			t.Fatalf("Alpha[%d] = %v outside [0,1]", i, a)
		}
	}
}

func BenchmarkRasterize(b *testing.B) {
	const w, h = 256, 256
	splats := randomSplats(2000, w, h, 9)
	pool := NewWorkerPool(0)
	defer pool.Close()
	r := NewTileRasterizer(pool)
	dst := newTarget(w, h, false)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r.Rasterize(dst, splats, [3]float32{})
	}
}
