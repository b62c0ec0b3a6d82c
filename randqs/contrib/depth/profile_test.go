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
	"bytes"
	"math"
	"slices"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-randqs/randqs"
	"github.com/ajroetker/go-randqs/randqs/contrib/workerpool"
)

// TestReversedDepthVariesAcrossSeeds sorts the same descending input of
// 10,000 elements with different seeds. The depth must not settle on the
// linear worst case and must differ between runs.
func TestReversedDepthVariesAcrossSeeds(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	const n = 10000
	cfg := DefaultConfig(n)
	cfg.Pattern = Reversed
	cfg.Trials = 16
	cfg.BaseSeed = 2025

	p, err := Run(pool, cfg)
	require.NoError(t, err)
	require.Len(t, p.Trials, 16)

	log2n := math.Log2(n)
	assert.Less(t, p.Depth.Mean, 4*log2n)
	assert.Less(t, p.Depth.Max, float64(n)/10)
	assert.GreaterOrEqual(t, p.Depth.Min, log2n)
	assert.Greater(t, p.DistinctDepths, 1)
	assert.Greater(t, p.Depth.StdDev, 0.0)

	// Distinct keys, so the mean should track 2(n+1)H(n) - 4n closely.
	assert.InEpsilon(t, p.ExpectedComparisons, p.Comparisons.Mean, 0.15)

	seeds := make(map[uint64]bool)
	for _, tr := range p.Trials {
		assert.False(t, seeds[tr.Seed], "seed %d reused", tr.Seed)
		seeds[tr.Seed] = true
	}
}

func TestSortedAndOrganPipeStayLogarithmic(t *testing.T) {
	pool := workerpool.New(0)
	defer pool.Close()

	for _, pattern := range []Pattern{Sorted, OrganPipe, Random} {
		t.Run(pattern.String(), func(t *testing.T) {
			cfg := DefaultConfig(4096)
			cfg.Pattern = pattern
			cfg.Trials = 8

			p, err := Run(pool, cfg)
			require.NoError(t, err)
			assert.Less(t, p.Depth.Mean, 4*math.Log2(4096))
			assert.LessOrEqual(t, p.Depth.Min, p.Depth.Median)
			assert.LessOrEqual(t, p.Depth.Median, p.Depth.Max)
		})
	}
}

// TestEqualKeysDegenerate documents the cost of sending keys equal to the
// pivot to the left side: an all-equal input peels one element per step.
func TestEqualKeysDegenerate(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Close()

	const n = 500
	cfg := DefaultConfig(n)
	cfg.Pattern = Equal
	cfg.Trials = 4

	p, err := Run(pool, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, p.DistinctDepths)
	assert.Equal(t, float64(n-1), p.Depth.Max)
	assert.Equal(t, float64(n*(n-1)/2), p.Comparisons.Mean)
	assert.Zero(t, p.Comparisons.StdDev)
}

func TestRunCustomOrder(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Close()

	cfg := DefaultConfig(300)
	cfg.Compare = func(a, b int) int { return b - a }
	p, err := Run(pool, cfg)
	require.NoError(t, err)
	assert.Len(t, p.Trials, DefaultTrials)
}

func TestRunAggregatesTrialFailures(t *testing.T) {
	// One worker keeps writes to buf sequential.
	pool := workerpool.New(1)
	defer pool.Close()

	var buf bytes.Buffer
	cfg := DefaultConfig(50)
	cfg.Trials = 5
	cfg.Logger = zerolog.New(&buf)
	cfg.Compare = func(a, b int) int { panic("comparator unavailable") }

	p, err := Run(pool, cfg)
	require.Nil(t, p)
	require.ErrorIs(t, err, randqs.ErrComparison)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 5)
	assert.Contains(t, buf.String(), "profile failed")
}

func TestRunVerifiesOutputs(t *testing.T) {
	pool := workerpool.New(3)
	defer pool.Close()

	cfg := DefaultConfig(40)
	cfg.Trials = 7
	cfg.NoChecks = true
	cfg.Compare = func(a, b int) int { return -1 }

	p, err := Run(pool, cfg)
	require.Nil(t, p)
	require.ErrorContains(t, err, "produced unsorted output")

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 7)

	// With the sorter's checks on the same comparator fails inside the sort.
	cfg.NoChecks = false
	_, err = Run(pool, cfg)
	require.ErrorIs(t, err, randqs.ErrComparison)
	assert.NotContains(t, err.Error(), "produced unsorted output")
}

func TestRunNilPool(t *testing.T) {
	cfg := DefaultConfig(10)
	cfg.Trials = 4
	p, err := Run(nil, cfg)
	require.NoError(t, err)
	assert.Len(t, p.Trials, 4)
	assert.Equal(t, cfg.BaseSeed+1, p.Trials[0].Seed)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig(10).Validate())

	cfg := Config{N: 0, Trials: 0, Pattern: Pattern(99)}
	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)

	pool := workerpool.New(1)
	defer pool.Close()
	_, err = Run(pool, cfg)
	require.ErrorContains(t, err, "invalid profile config")
}

func TestExpectedComparisons(t *testing.T) {
	assert.Zero(t, ExpectedComparisons(0))
	assert.Zero(t, ExpectedComparisons(1))
	assert.InDelta(t, 1.0, ExpectedComparisons(2), 1e-9)
	// 2*4*(1+1/2+1/3) - 12 = 8/3
	assert.InDelta(t, 8.0/3.0, ExpectedComparisons(3), 1e-9)
}

func TestPatterns(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, Sorted.Generate(4, 0))
	assert.Equal(t, []int{4, 3, 2, 1}, Reversed.Generate(4, 0))
	assert.Equal(t, []int{7, 7, 7}, Equal.Generate(3, 0))
	assert.Equal(t, []int{0, 1, 2, 1, 0}, OrganPipe.Generate(5, 0))
	assert.Equal(t, Random.Generate(100, 9), Random.Generate(100, 9))

	few := FewUnique.Generate(1000, 3)
	assert.True(t, slices.IndexFunc(few, func(v int) bool { return v < 0 || v >= 8 }) < 0)

	for p := range patternNames {
		parsed, err := ParsePattern(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	_, err := ParsePattern("zigzag")
	require.Error(t, err)
	assert.Equal(t, "unknown", Pattern(-1).String())
}
