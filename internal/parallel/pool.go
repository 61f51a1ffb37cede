package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// job is one unit of work: fn(index) for a shared fn.
type job struct {
	fn    func(int)
	index int
	done  *sync.WaitGroup
}

func (j job) run() {
	defer j.done.Done()
	j.fn(j.index)
}

// WorkerPool is a fixed-size pool of goroutines for rendering tiles.
//
// Each worker has its own queue and steals from the other queues when its
// own is empty, which balances tiles with very different candidate counts.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan job
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Buffer size: a few items per worker hides the scheduling latency.
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan job, workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan job, queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case j := <-myQueue:
			j.run()

		default:
			if stolen, ok := p.steal(id); ok {
				stolen.run()
				continue
			}
			// No work available anywhere, block on own queue.
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case j := <-myQueue:
				j.run()
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan job) {
	for {
		select {
		case j := <-queue:
			j.run()
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
func (p *WorkerPool) steal(myID int) (job, bool) {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case j := <-p.workQueues[i]:
			return j, true
		default:
		}
	}
	return job{}, false
}

// ExecuteAll calls fn(i) for every i in [0, n) across the workers and waits
// for all calls to complete. Items are dealt round-robin; idle workers steal.
// If the pool is closed, the remaining items run on the calling goroutine.
func (p *WorkerPool) ExecuteAll(n int, fn func(i int)) {
	if n <= 0 || fn == nil {
		return
	}
	if !p.running.Load() {
		for i := range n {
			fn(i)
		}
		return
	}

	var completion sync.WaitGroup
	completion.Add(n)

	for i := range n {
		j := job{fn: fn, index: i, done: &completion}
		select {
		case p.workQueues[i%p.workers] <- j:
		case <-p.done:
			j.run()
		}
	}

	completion.Wait()
}

// Close stops accepting new work, waits for queued work to complete,
// and then stops all workers. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
