// Copyright 2025 The go-randqs Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for running many
// independent sort trials. Workers are started once and reused, so profiling
// hundreds of seeds does not pay for a goroutine per trial.
//
// Each task must own the data it touches. The pool never shares a sequence
// between workers; a trial that sorts a slice must allocate or copy it
// inside the task.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelForAtomic(trials, func(i int) {
//	    data := generate(n, seed+uint64(i))
//	    stats[i], errs[i] = randqs.SortSlice(randqs.New(randqs.WithSeed(seed+uint64(i))), data)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of worker goroutines fed from a shared task channel.
type Pool struct {
	numWorkers int
	tasks      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
}

type task struct {
	run  func()
	done *sync.WaitGroup
}

// New starts a pool of numWorkers workers. If numWorkers <= 0 the pool uses
// GOMAXPROCS workers.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		tasks:      make(chan task, numWorkers*2),
	}
	for w := 0; w < numWorkers; w++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	for t := range p.tasks {
		t.run()
		t.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops the workers once queued tasks finish. It is safe to call more
// than once. A closed pool runs submitted work on the calling goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.tasks)
	})
}

// ParallelFor splits [0, n) into one contiguous chunk per worker and calls
// fn(start, end) for each chunk. It blocks until every chunk is done.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if p.closed.Load() || workers == 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		start := start
		end := min(start+chunk, n)
		wg.Add(1)
		p.tasks <- task{
			run:  func() { fn(start, end) },
			done: &wg,
		}
	}
	wg.Wait()
}

// ParallelForAtomic calls fn(i) for every i in [0, n). Workers claim indices
// one at a time from a shared counter, which balances trials whose cost
// varies widely. It blocks until every index is done.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if p.closed.Load() || workers == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		p.tasks <- task{
			run: func() {
				for {
					i := int(next.Add(1)) - 1
					if i >= n {
						return
					}
					fn(i)
				}
			},
			done: &wg,
		}
	}
	wg.Wait()
}
