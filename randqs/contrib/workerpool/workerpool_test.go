// Copyright 2025 The go-randqs Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"slices"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelForCoversEveryIndexOnce(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	for _, n := range []int{1, 3, 4, 7, 100, 1001} {
		hits := make([]atomic.Int32, n)
		pool.ParallelFor(n, func(start, end int) {
			for i := start; i < end; i++ {
				hits[i].Add(1)
			}
		})
		for i := range hits {
			if got := hits[i].Load(); got != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, got)
			}
		}
	}
}

// TestParallelForAtomicPrivateTrials runs one sort per index, each on its
// own slice, the way trial runners use the pool.
func TestParallelForAtomicPrivateTrials(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	const trials = 64
	results := make([][]int, trials)
	pool.ParallelForAtomic(trials, func(i int) {
		data := make([]int, 50+i)
		for j := range data {
			data[j] = (j * 7919) % (i + 3)
		}
		slices.Sort(data)
		results[i] = data
	})

	for i, data := range results {
		if len(data) != 50+i {
			t.Fatalf("trial %d produced %d elements", i, len(data))
		}
		if !slices.IsSorted(data) {
			t.Errorf("trial %d is not sorted", i)
		}
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})
	pool.ParallelForAtomic(-1, func(i int) {
		called = true
	})

	if called {
		t.Error("n<=0 should not call fn")
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)
	pool.ParallelForAtomic(n, func(i int) {
		results[i] = i * 2
	})
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i]++
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2+1 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2+1)
		}
	}
}

func BenchmarkParallelForAtomic(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelForAtomic(n, func(i int) {
			_ = i * i
		})
	}
}
