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

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrInvalidRange matches every *InvalidRangeError.
	ErrInvalidRange = errors.New("invalid range")

	// ErrComparison matches every *ComparisonError.
	ErrComparison = errors.New("comparison failed")
)

// InvalidRangeError reports bounds outside the sequence. Nothing has been
// moved when it is returned.
type InvalidRangeError struct {
	Lo, Hi int
	Len    int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range [%d, %d] for sequence of length %d", e.Lo, e.Hi, e.Len)
}

func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// checkRange validates the inclusive range [lo, hi] against a sequence of
// length n. The empty range lo == hi+1 is valid.
func checkRange(lo, hi, n int) error {
	if lo < 0 || hi >= n || lo > hi+1 {
		return &InvalidRangeError{Lo: lo, Hi: hi, Len: n}
	}
	return nil
}

// ComparisonError reports a comparator that failed or contradicted itself
// while [Lo, Hi] was being processed. The order of the sequence is
// unspecified afterwards; its elements are unchanged.
type ComparisonError struct {
	Lo, Hi int
	Reason string
	Cause  error
}

func (e *ComparisonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("comparison failed in range [%d, %d]: %s: %v", e.Lo, e.Hi, e.Reason, e.Cause)
	}
	return fmt.Sprintf("comparison failed in range [%d, %d]: %s", e.Lo, e.Hi, e.Reason)
}

func (e *ComparisonError) Unwrap() error {
	return e.Cause
}

func (e *ComparisonError) Is(target error) bool {
	return target == ErrComparison
}

// compareFailure carries an error returned by a fallible comparator out of
// Less, which has no error result.
type compareFailure struct {
	err error
}

// panicCause turns a recovered panic value into an error carrying a stack.
func panicCause(r any) (string, error) {
	switch v := r.(type) {
	case compareFailure:
		return "comparator returned an error", v.err
	case error:
		return "comparator panicked", pkgerrors.WithStack(v)
	default:
		return "comparator panicked", pkgerrors.Errorf("%v", v)
	}
}
