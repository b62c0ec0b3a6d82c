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

import "math/bits"

// run holds the state of a single sort or select call.
type run struct {
	data   Interface
	src    Source
	checks bool
	stats  Stats

	// cur is the range being partitioned, for error reports.
	cur span
	// inLess is set while the comparator runs so that its panics can be told
	// apart from panics raised by Swap or by this package.
	inLess bool
}

// protect runs fn and converts a panic raised inside Less into a
// *ComparisonError. Any other panic is re-raised.
func (r *run) protect(fn func() error) (err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if !r.inLess {
			panic(p)
		}
		r.inLess = false
		reason, cause := panicCause(p)
		err = &ComparisonError{Lo: r.cur.lo, Hi: r.cur.hi, Reason: reason, Cause: cause}
	}()
	return fn()
}

func (r *run) less(i, j int) bool {
	r.inLess = true
	ok := r.data.Less(i, j)
	r.inLess = false
	return ok
}

func (r *run) swap(i, j int) {
	if i == j {
		return
	}
	r.data.Swap(i, j)
	r.stats.Swaps++
}

// partition rearranges [cur.lo, cur.hi] around a random pivot and returns the
// pivot's final index b. Afterwards every element in [lo, b) is <= the pivot
// and every element in (b, hi] is > the pivot.
func (r *run) partition(cur span) (int, error) {
	r.cur = cur
	r.stats.Partitions++
	r.stats.MaxDepth = max(r.stats.MaxDepth, cur.depth)

	lo, hi := cur.lo, cur.hi
	p := lo + r.src.Intn(hi-lo+1)
	r.swap(p, hi)

	if r.checks && r.less(hi, hi) {
		return 0, &ComparisonError{Lo: lo, Hi: hi, Reason: "comparator reports an element less than itself"}
	}

	b := lo
	for j := lo; j < hi; j++ {
		r.stats.Comparisons++
		if !r.less(hi, j) {
			r.swap(b, j)
			b++
		}
	}
	r.swap(b, hi)
	return b, nil
}

// quickSort sorts [lo, hi] with an explicit work-list. The larger side of
// each partition is pushed and the smaller side is processed next, so the
// work-list never holds more than log2(hi-lo+1) ranges.
func (r *run) quickSort(lo, hi int) error {
	if lo >= hi {
		return nil
	}

	pending := make([]span, 0, bits.Len(uint(hi-lo+1)))
	cur := span{lo: lo, hi: hi, depth: 1}
	for {
		for cur.lo < cur.hi {
			b, err := r.partition(cur)
			if err != nil {
				return err
			}

			small := span{lo: cur.lo, hi: b - 1, depth: cur.depth + 1}
			large := span{lo: b + 1, hi: cur.hi, depth: cur.depth + 1}
			if small.size() > large.size() {
				small, large = large, small
			}
			if large.lo < large.hi {
				pending = append(pending, large)
				r.stats.MaxPending = max(r.stats.MaxPending, len(pending))
			}
			cur = small
		}

		if len(pending) == 0 {
			return nil
		}
		cur = pending[len(pending)-1]
		pending = pending[:len(pending)-1]
	}
}

// selectK partitions [lo, hi] until index k holds its sorted element.
func (r *run) selectK(lo, hi, k int) error {
	cur := span{lo: lo, hi: hi, depth: 1}
	for cur.lo < cur.hi {
		b, err := r.partition(cur)
		if err != nil {
			return err
		}
		switch {
		case k < b:
			cur = span{lo: cur.lo, hi: b - 1, depth: cur.depth + 1}
		case k > b:
			cur = span{lo: b + 1, hi: cur.hi, depth: cur.depth + 1}
		default:
			return nil
		}
	}
	return nil
}

// verifySorted reports adjacent elements of [lo, hi] that are out of order.
// Under a strict weak ordering partitioning always yields ordered output, so
// any such pair proves the comparator inconsistent.
func (r *run) verifySorted(lo, hi int) error {
	if lo == hi {
		return r.verifySingle(lo)
	}
	for i := lo; i < hi; i++ {
		r.cur = span{lo: i, hi: i + 1}
		if r.less(i+1, i) {
			return &ComparisonError{Lo: i, Hi: i + 1, Reason: "comparator is inconsistent: adjacent elements out of order after sorting"}
		}
	}
	return nil
}

// verifySelected reports elements on the wrong side of position k.
func (r *run) verifySelected(lo, hi, k int) error {
	if lo == hi {
		return r.verifySingle(k)
	}
	for i := lo; i < k; i++ {
		r.cur = span{lo: i, hi: k}
		if r.less(k, i) {
			return &ComparisonError{Lo: i, Hi: k, Reason: "comparator is inconsistent: element before the selected index is greater"}
		}
	}
	for i := k + 1; i <= hi; i++ {
		r.cur = span{lo: k, hi: i}
		if r.less(i, k) {
			return &ComparisonError{Lo: k, Hi: i, Reason: "comparator is inconsistent: element after the selected index is smaller"}
		}
	}
	return nil
}

// verifySingle compares the element at i with itself. A one-element range is
// never partitioned, so this is the only comparison it gets.
func (r *run) verifySingle(i int) error {
	r.cur = span{lo: i, hi: i}
	if r.less(i, i) {
		return &ComparisonError{Lo: i, Hi: i, Reason: "comparator reports an element less than itself"}
	}
	return nil
}
