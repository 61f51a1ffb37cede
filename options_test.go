package splat

import (
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/splat/sh"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.backend != BackendParallel {
		t.Errorf("backend = %v, want parallel", o.backend)
	}
	if o.scaleModifier != 1 {
		t.Errorf("scaleModifier = %v, want 1", o.scaleModifier)
	}
	if _, ok := o.evaluator.(sh.Evaluator); !ok {
		t.Errorf("evaluator = %T, want sh.Evaluator", o.evaluator)
	}
}

func TestOptions(t *testing.T) {
	ev := ColorFunc(func(int, []mgl64.Vec3, mgl64.Vec3) mgl64.Vec3 { return mgl64.Vec3{} })
	l := slog.Default()

	o := defaultOptions()
	for _, opt := range []Option{
		WithBackend(BackendSerial),
		WithWorkers(3),
		WithColorEvaluator(ev),
		WithColorEvaluator(nil),
		WithScaleModifier(2),
		WithScaleModifier(-1),
		WithAuxiliaryBuffers(true),
		WithLogger(l),
	} {
		opt(&o)
	}

	if o.backend != BackendSerial || o.workers != 3 || o.scaleModifier != 2 || !o.auxiliary || o.logger != l {
		t.Errorf("options = %+v", o)
	}
	if _, ok := o.evaluator.(ColorFunc); !ok {
		t.Errorf("evaluator = %T, want ColorFunc", o.evaluator)
	}
}

func TestBackend_String(t *testing.T) {
	tests := []struct {
		b    Backend
		want string
	}{
		{BackendParallel, "parallel"},
		{BackendSerial, "serial"},
		{Backend(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.b.String(); got != tt.want {
			t.Errorf("Backend(%d).String() = %q, want %q", tt.b, got, tt.want)
		}
	}
}

func TestNewRenderer_Backend(t *testing.T) {
	r := NewRenderer(WithBackend(BackendSerial))
	defer r.Close()
	if r.Backend() != BackendSerial || r.workers() != 1 {
		t.Errorf("Backend() = %v workers = %d, want serial/1", r.Backend(), r.workers())
	}

	p := NewRenderer(WithWorkers(2))
	defer p.Close()
	if p.workers() != 2 {
		t.Errorf("workers() = %d, want 2", p.workers())
	}
}
