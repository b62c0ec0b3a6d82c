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

package depth

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Pattern is a family of inputs to profile.
type Pattern int

const (
	// Random draws values uniformly from [0, 4n).
	Random Pattern = iota

	// Sorted is 0, 1, ..., n-1.
	Sorted

	// Reversed is n, n-1, ..., 1.
	Reversed

	// Equal repeats a single value.
	Equal

	// OrganPipe rises to the middle and falls back.
	OrganPipe

	// FewUnique draws values from [0, 8).
	FewUnique
)

var patternNames = map[Pattern]string{
	Random:    "random",
	Sorted:    "sorted",
	Reversed:  "reversed",
	Equal:     "equal",
	OrganPipe: "organ-pipe",
	FewUnique: "few-unique",
}

// String returns the pattern name.
func (p Pattern) String() string {
	if name, ok := patternNames[p]; ok {
		return name
	}
	return "unknown"
}

func (p Pattern) valid() bool {
	_, ok := patternNames[p]
	return ok
}

// ParsePattern returns the pattern with the given name.
func ParsePattern(name string) (Pattern, error) {
	for p, n := range patternNames {
		if n == name {
			return p, nil
		}
	}
	return 0, errors.Errorf("unknown input pattern %q", name)
}

// Generate returns n values following p. Random patterns are drawn from a
// source seeded with seed, so the same arguments give the same input.
func (p Pattern) Generate(n int, seed uint64) []int {
	data := make([]int, n)
	r := rand.New(rand.NewSource(seed))
	for i := range data {
		switch p {
		case Random:
			data[i] = r.Intn(4 * n)
		case Sorted:
			data[i] = i
		case Reversed:
			data[i] = n - i
		case Equal:
			data[i] = 7
		case OrganPipe:
			data[i] = min(i, n-1-i)
		case FewUnique:
			data[i] = r.Intn(8)
		}
	}
	return data
}
