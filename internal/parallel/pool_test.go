package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const numTasks = 1000
	var seen [numTasks]atomic.Int32

	pool.ExecuteAll(numTasks, func(i int) {
		seen[i].Add(1)
	})

	for i := range seen {
		if n := seen[i].Load(); n != 1 {
			t.Errorf("index %d executed %d times, want 1", i, n)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	// Should not panic or block
	pool.ExecuteAll(0, func(int) { t.Error("fn called for n=0") })
	pool.ExecuteAll(3, nil)
}

func TestWorkerPool_ExecuteAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close() // idempotent

	if pool.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}

	var counter atomic.Int64
	pool.ExecuteAll(5, func(int) { counter.Add(1) })
	if counter.Load() != 5 {
		t.Errorf("counter = %d, want 5 (inline fallback)", counter.Load())
	}
}

func TestWorkerPool_Reuse(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	var counter atomic.Int64
	for round := 0; round < 20; round++ {
		pool.ExecuteAll(37, func(int) { counter.Add(1) })
	}
	if counter.Load() != 20*37 {
		t.Errorf("counter = %d, want %d", counter.Load(), 20*37)
	}
}
