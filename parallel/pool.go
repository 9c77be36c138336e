package parallel

import (
	"runtime"
	"sync"
)

// Pool is a fixed-size worker pool for index-parallel phases.
//
// A Pool carries no mutable state between calls; it is safe to share one
// Pool across many solves or to create one per solve. Workers are spawned
// per call and joined before the call returns, so no goroutines outlive
// any Pool method.
type Pool struct {
	workers int // number of workers, always ≥ 1
}

// NewPool returns a Pool with the given number of workers.
// Non-positive values select runtime.GOMAXPROCS(0).
// Complexity: O(1).
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Pool{workers: workers}
}

// Workers reports the pool size.
func (p *Pool) Workers() int { return p.workers }

// Run executes every task exactly once across the pool's workers and
// blocks until all have returned. It is ForEach with heterogeneous bodies,
// for phases made of a handful of dissimilar jobs.
func (p *Pool) Run(tasks ...func()) {
	p.ForEach(len(tasks), func(i int) { tasks[i]() })
}

// ForEach invokes fn(i) exactly once for every i in [0, n) and blocks until
// all invocations have returned (barrier join).
//
// Work is distributed as contiguous index ranges over a channel, so uneven
// tasks balance across workers. fn must confine its writes to slots owned
// by its index; under that contract the outcome is deterministic and
// independent of scheduling.
//
// Complexity: O(n) total work, O(W) goroutines, one channel send per batch.
func (p *Pool) ForEach(n int, fn func(i int)) {
	// 1) Trivial sizes: nothing to do, or cheaper to run inline.
	if n <= 0 {
		return
	}
	workers := p.workers
	if workers > n {
		workers = n
	}
	if workers == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}

		return
	}

	// 2) Choose a batch size: a few batches per worker keeps the channel
	//    traffic low while still smoothing out uneven task durations.
	batch := n / (workers * 4)
	if batch < 1 {
		batch = 1
	}

	// 3) Spawn workers draining [lo, hi) ranges from the channel.
	ranges := make(chan [2]int, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for r := range ranges {
				for i := r[0]; i < r[1]; i++ {
					fn(i)
				}
			}
		}()
	}

	// 4) Feed all ranges, then close and join. wg.Wait is the phase barrier:
	//    every write made by fn happens-before ForEach returns.
	for lo := 0; lo < n; lo += batch {
		hi := lo + batch
		if hi > n {
			hi = n
		}
		ranges <- [2]int{lo, hi}
	}
	close(ranges)
	wg.Wait()
}
