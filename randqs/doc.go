// Package randqs provides an in-place randomized quicksort.
//
// Every partition step draws its pivot uniformly at random from the active
// range, so the expected number of comparisons is O(n log n) for every input
// order, including the sorted, reversed and organ-pipe inputs that push
// first/last/median-of-three pivot rules to O(n²).
//
// # Algorithm
//
// Each step works on an inclusive range [lo, hi]:
//   - A pivot index is drawn from [lo, hi] and swapped to hi
//   - A Lomuto scan moves every element <= pivot in front of a boundary b
//   - The pivot is swapped into b, its final position
//   - The larger of [lo, b-1] and [b+1, hi] is pushed on a work-list and the
//     smaller one is processed next
//
// Elements equal to the pivot always land on the left side. Pending work is
// bounded by log2(n) ranges regardless of how unlucky the pivots are.
//
// The sort is not stable.
//
// # Randomness
//
// A Sorter draws pivots from a Source. The zero-configuration Sorter uses the
// process-wide DefaultSource, which is seeded exactly once: from the
// RANDQS_SEED environment variable when it holds a valid uint64, otherwise from
// crypto/rand. Tests and reproductions inject their own Source with WithSource
// or WithSeed.
//
// # Errors
//
// Invalid bounds are reported as *InvalidRangeError before anything is moved.
// A comparator that panics, returns an error, or is caught contradicting
// itself produces a *ComparisonError. Detection of inconsistent comparators is
// best effort. After a ComparisonError the data still holds the same elements
// but their order is unspecified.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-randqs/randqs"
//
//	func Process(data []int) error {
//	    return randqs.Sort(data)
//	}
//
//	func ProcessReproducibly(data []float64) (randqs.Stats, error) {
//	    s := randqs.New(randqs.WithSeed(42))
//	    return randqs.SortSlice(s, data)
//	}
package randqs
