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

import "errors"

// ErrUnordered is the cause of the ComparisonError reported when a slice of
// floats contains NaN.
var ErrUnordered = errors.New("NaN has no position in a total order")

// Sort sorts data in place in ascending order using the process-wide source.
func Sort[T Ordered](data []T) error {
	_, err := SortSlice(New(), data)
	return err
}

// SortRange sorts the inclusive range [lo, hi] of data in place.
func SortRange[T Ordered](data []T, lo, hi int) error {
	_, err := New().SortRange(orderedSlice[T](data), lo, hi)
	return err
}

// SortFunc sorts data in place in the order defined by cmp, which returns a
// negative number when a < b, a positive number when a > b and zero when they
// are equivalent.
func SortFunc[T any](data []T, cmp func(a, b T) int) error {
	_, err := SortSliceFunc(New(), data, cmp)
	return err
}

// SortFuncErr is like SortFunc for comparators that can fail. The first error
// returned by cmp aborts the sort and is the Cause of the *ComparisonError.
func SortFuncErr[T any](data []T, cmp func(a, b T) (int, error)) error {
	_, err := New().Sort(errFuncSlice[T]{data: data, cmp: cmp})
	return err
}

// SortInterface sorts data in place using the process-wide source.
func SortInterface(data Interface) error {
	_, err := New().Sort(data)
	return err
}

// Select rearranges data so that data[k] is the k-th smallest element and
// returns it. Elements before k are <= data[k] and elements after are >=.
func Select[T Ordered](data []T, k int) (T, error) {
	if _, err := New().Select(orderedSlice[T](data), k); err != nil {
		var zero T
		return zero, err
	}
	return data[k], nil
}

// SortSlice sorts data in place with s.
func SortSlice[T Ordered](s *Sorter, data []T) (Stats, error) {
	return s.Sort(orderedSlice[T](data))
}

// SortSliceFunc sorts data in place with s in the order defined by cmp.
func SortSliceFunc[T any](s *Sorter, data []T, cmp func(a, b T) int) (Stats, error) {
	return s.Sort(funcSlice[T]{data: data, cmp: cmp})
}

// IsSorted reports whether data is sorted in ascending order.
func IsSorted[T Ordered](data []T) bool {
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return false
		}
	}
	return true
}

// IsSortedFunc reports whether data is sorted in the order defined by cmp.
func IsSortedFunc[T any](data []T, cmp func(a, b T) int) bool {
	for i := 1; i < len(data); i++ {
		if cmp(data[i], data[i-1]) < 0 {
			return false
		}
	}
	return true
}

// orderedSlice sorts by the natural order of T.
type orderedSlice[T Ordered] []T

func (s orderedSlice[T]) Len() int { return len(s) }

func (s orderedSlice[T]) Less(i, j int) bool {
	a, b := s[i], s[j]
	if isNaN(a) || isNaN(b) {
		panic(compareFailure{err: ErrUnordered})
	}
	return a < b
}

func (s orderedSlice[T]) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// isNaN is only ever true for floating point NaN.
func isNaN[T Ordered](v T) bool {
	return v != v
}

type funcSlice[T any] struct {
	data []T
	cmp  func(a, b T) int
}

func (s funcSlice[T]) Len() int           { return len(s.data) }
func (s funcSlice[T]) Less(i, j int) bool { return s.cmp(s.data[i], s.data[j]) < 0 }
func (s funcSlice[T]) Swap(i, j int)      { s.data[i], s.data[j] = s.data[j], s.data[i] }

type errFuncSlice[T any] struct {
	data []T
	cmp  func(a, b T) (int, error)
}

func (s errFuncSlice[T]) Len() int { return len(s.data) }

func (s errFuncSlice[T]) Less(i, j int) bool {
	c, err := s.cmp(s.data[i], s.data[j])
	if err != nil {
		panic(compareFailure{err: err})
	}
	return c < 0
}

func (s errFuncSlice[T]) Swap(i, j int) { s.data[i], s.data[j] = s.data[j], s.data[i] }
