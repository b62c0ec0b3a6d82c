// Copyright 2025 go-randqs Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package randqs

import "github.com/rs/zerolog"

// Sorter sorts sequences with pivots drawn from its Source.
//
// A Sorter holds no per-call state. It may be shared between goroutines
// sorting distinct sequences as long as its Source is safe for concurrent use,
// which DefaultSource is and NewSource is not.
type Sorter struct {
	src    Source
	log    zerolog.Logger
	checks bool
}

// Option configures a Sorter.
type Option func(*Sorter)

// WithSource makes the Sorter draw pivots from src.
func WithSource(src Source) Option {
	return func(s *Sorter) {
		s.src = src
	}
}

// WithSeed makes the Sorter draw pivots from a private deterministic source.
func WithSeed(seed uint64) Option {
	return WithSource(NewSource(seed))
}

// WithLogger sets the logger. Completed calls are logged at debug level and
// failures at warn level.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Sorter) {
		s.log = log
	}
}

// WithChecks enables or disables the comparator consistency checks.
// They are enabled by default and cost O(n) extra comparisons per call.
func WithChecks(enabled bool) Option {
	return func(s *Sorter) {
		s.checks = enabled
	}
}

// New returns a Sorter using DefaultSource, a no-op logger and consistency
// checks, adjusted by opts.
func New(opts ...Option) *Sorter {
	s := &Sorter{
		log:    zerolog.Nop(),
		checks: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = DefaultSource()
	}
	return s
}

// Sort sorts data in place.
func (s *Sorter) Sort(data Interface) (Stats, error) {
	n := data.Len()
	return s.SortRange(data, 0, n-1)
}

// SortRange sorts the inclusive range [lo, hi] of data in place. Elements
// outside the range are not touched.
//
// It returns *InvalidRangeError, without moving anything, unless
// 0 <= lo, hi < data.Len() and lo <= hi+1.
func (s *Sorter) SortRange(data Interface, lo, hi int) (Stats, error) {
	n := data.Len()
	if err := checkRange(lo, hi, n); err != nil {
		s.log.Warn().Err(err).Msg("rejected sort range")
		return Stats{}, err
	}

	r := s.newRun(data)
	err := r.protect(func() error {
		if err := r.quickSort(lo, hi); err != nil {
			return err
		}
		if s.checks {
			return r.verifySorted(lo, hi)
		}
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Int("lo", lo).Int("hi", hi).Msg("sort failed")
		return r.stats, err
	}

	s.log.Debug().
		Int("n", hi-lo+1).
		Int("comparisons", r.stats.Comparisons).
		Int("swaps", r.stats.Swaps).
		Int("max_depth", r.stats.MaxDepth).
		Int("max_pending", r.stats.MaxPending).
		Msg("sorted range")
	return r.stats, nil
}

// Select rearranges data so that position k holds the element that would be
// there if data were sorted. Every element before k is <= data[k] and every
// element after k is >= data[k].
func (s *Sorter) Select(data Interface, k int) (Stats, error) {
	n := data.Len()
	if k < 0 || k >= n {
		err := &InvalidRangeError{Lo: k, Hi: k, Len: n}
		s.log.Warn().Err(err).Msg("rejected select index")
		return Stats{}, err
	}

	r := s.newRun(data)
	err := r.protect(func() error {
		if err := r.selectK(0, n-1, k); err != nil {
			return err
		}
		if s.checks {
			return r.verifySelected(0, n-1, k)
		}
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Int("k", k).Msg("select failed")
		return r.stats, err
	}

	s.log.Debug().
		Int("n", n).
		Int("k", k).
		Int("comparisons", r.stats.Comparisons).
		Int("partitions", r.stats.Partitions).
		Msg("selected element")
	return r.stats, nil
}

func (s *Sorter) newRun(data Interface) *run {
	return &run{
		data:   data,
		src:    s.src,
		checks: s.checks,
	}
}
