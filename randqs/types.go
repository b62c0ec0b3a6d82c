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

import "golang.org/x/exp/constraints"

// Ordered is a constraint for element types with a natural total order.
//
// Floating point NaN values are not ordered with respect to anything; sorting
// or selecting from a slice containing NaN reports a ComparisonError caused by
// ErrUnordered. A lone NaN in a one-element range is only caught by the
// consistency checks, so WithChecks(false) lets it through.
type Ordered interface {
	constraints.Ordered
}

// Interface is a mutable, randomly-indexable sequence. It has the same shape
// as sort.Interface so existing collection types can be sorted directly.
//
// Less may panic to signal a failed comparison; the panic is reported as a
// *ComparisonError.
type Interface interface {
	// Len is the number of elements in the sequence.
	Len() int
	// Less reports whether the element at i must sort before the element at j.
	Less(i, j int) bool
	// Swap exchanges the elements at i and j.
	Swap(i, j int)
}

// Stats describes the work done by one sort or select call.
type Stats struct {
	// Comparisons counts element comparisons made by partition scans.
	// Consistency checks are not included.
	Comparisons int

	// Swaps counts swaps that exchanged two distinct positions.
	Swaps int

	// Partitions counts partition steps.
	Partitions int

	// MaxDepth is the depth of the deepest partition step, where the
	// partition of the whole range has depth 1.
	MaxDepth int

	// MaxPending is the high-water mark of the work-list of pending ranges.
	MaxPending int
}

// span is an inclusive range [lo, hi] and its depth in the partition tree.
type span struct {
	lo, hi int
	depth  int
}

func (s span) size() int {
	return s.hi - s.lo + 1
}
