// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs jobs on a fixed set of goroutines.
//
// Each worker has its own queue. An idle worker steals from the other
// queues, so a few slow jobs (very large screenshots) do not leave the
// remaining workers waiting.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds one job queue per worker.
	queues []chan func()

	// done signals workers to stop.
	done chan struct{}
	wg   sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			drain(own)
			return
		case job := <-own:
			run(job)
		default:
			if job := p.steal(id); job != nil {
				run(job)
				continue
			}
			select {
			case <-p.done:
				drain(own)
				return
			case job := <-own:
				run(job)
			}
		}
	}
}

func run(job func()) {
	if job != nil {
		job()
	}
}

// drain runs whatever is left in a queue.
func drain(q chan func()) {
	for {
		select {
		case job := <-q:
			run(job)
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll distributes jobs round-robin across workers and waits for all
// of them. On a closed pool the jobs run on the calling goroutine instead,
// so ExecuteAll always returns with every job done.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 {
		return
	}
	if !p.running.Load() {
		for _, job := range jobs {
			run(job)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, job := range jobs {
		wrapped := func() {
			defer wg.Done()
			run(job)
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	wg.Wait()
}

// Map calls fn(i) for every i in [0, n) on the pool and returns the results
// in index order.
func Map[T any](p *WorkerPool, n int, fn func(i int) T) []T {
	out := make([]T, n)
	jobs := make([]func(), n)
	for i := range jobs {
		jobs[i] = func() { out[i] = fn(i) }
	}
	p.ExecuteAll(jobs)
	return out
}

// Close stops accepting work, lets queued jobs finish and stops the
// workers. Close is safe to call multiple times.
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
