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

// Package depth measures how partition depth and comparison counts of the
// randomized quicksort vary across pivot seeds on a fixed input.
//
// Every trial sorts a private copy of the same input with its own seed, so
// the spread of the results reflects pivot choices only.
package depth

import (
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/ajroetker/go-randqs/randqs"
	"github.com/ajroetker/go-randqs/randqs/contrib/workerpool"
)

// DefaultTrials is the number of seeds profiled by DefaultConfig.
const DefaultTrials = 32

// Config describes a profile.
type Config struct {
	// N is the input length.
	N int

	// Trials is the number of seeds to sort the input with.
	Trials int

	// Pattern selects the input.
	Pattern Pattern

	// BaseSeed seeds the input; trial i sorts with seed BaseSeed+1+i.
	BaseSeed uint64

	// Compare, when set, replaces the natural order of ints.
	Compare func(a, b int) int

	// NoChecks turns off the sorter's consistency checks. Run still verifies
	// that every trial's output is in order.
	NoChecks bool

	Logger zerolog.Logger
}

// DefaultConfig returns a profile of n random values over DefaultTrials seeds.
func DefaultConfig(n int) Config {
	return Config{
		N:       n,
		Trials:  DefaultTrials,
		Pattern: Random,
		Logger:  zerolog.Nop(),
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.N < 1 {
		result = multierror.Append(result, errors.Errorf("input length must be positive, got %d", c.N))
	}
	if c.Trials < 1 {
		result = multierror.Append(result, errors.Errorf("trial count must be positive, got %d", c.Trials))
	}
	if !c.Pattern.valid() {
		result = multierror.Append(result, errors.Errorf("unknown input pattern %d", int(c.Pattern)))
	}
	return result.ErrorOrNil()
}

// Trial is the outcome of sorting the input with one seed.
type Trial struct {
	Seed  uint64
	Stats randqs.Stats
}

// Summary holds descriptive statistics of one measurement across trials.
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

// Profile is the result of Run.
type Profile struct {
	N       int
	Pattern Pattern
	Trials  []Trial

	// Depth summarizes Stats.MaxDepth.
	Depth Summary
	// Comparisons summarizes Stats.Comparisons.
	Comparisons Summary
	// DistinctDepths is the number of different MaxDepth values seen.
	DistinctDepths int
	// ExpectedComparisons is the mean comparison count for N distinct keys.
	ExpectedComparisons float64
}

// Run sorts cfg.Trials copies of the configured input on pool, each with its
// own seed, checks that every output is in order, and summarizes the results.
// If any trial fails, Run returns all trial errors and no profile. A nil pool
// runs on a temporary pool sized to GOMAXPROCS.
func Run(pool *workerpool.Pool, cfg Config) (*Profile, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid profile config")
	}
	if pool == nil {
		pool = workerpool.New(0)
		defer pool.Close()
	}

	input := cfg.Pattern.Generate(cfg.N, cfg.BaseSeed)
	trials := make([]Trial, cfg.Trials)
	outputs := make([][]int, cfg.Trials)
	errs := make([]error, cfg.Trials)

	pool.ParallelForAtomic(cfg.Trials, func(i int) {
		seed := cfg.BaseSeed + 1 + uint64(i)
		trials[i], outputs[i], errs[i] = runTrial(input, seed, cfg)
	})

	// Outputs are verified in chunks, outside the sorter.
	pool.ParallelFor(cfg.Trials, func(start, end int) {
		for i := start; i < end; i++ {
			if errs[i] == nil && !isSorted(outputs[i], cfg.Compare) {
				errs[i] = errors.Errorf("trial with seed %d produced unsorted output", trials[i].Seed)
			}
		}
	})

	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		cfg.Logger.Warn().
			Str("component", "depth_profile").
			Int("failed_trials", len(result.Errors)).
			Err(err).
			Msg("profile failed")
		return nil, err
	}

	p := &Profile{
		N:                   cfg.N,
		Pattern:             cfg.Pattern,
		Trials:              trials,
		ExpectedComparisons: ExpectedComparisons(cfg.N),
	}

	depths := lo.Map(trials, func(t Trial, _ int) int { return t.Stats.MaxDepth })
	p.DistinctDepths = len(lo.Uniq(depths))

	var err error
	p.Depth, err = summarize(lo.Map(depths, func(d int, _ int) float64 { return float64(d) }))
	if err != nil {
		return nil, errors.Wrap(err, "could not summarize depths")
	}
	p.Comparisons, err = summarize(lo.Map(trials, func(t Trial, _ int) float64 { return float64(t.Stats.Comparisons) }))
	if err != nil {
		return nil, errors.Wrap(err, "could not summarize comparisons")
	}

	cfg.Logger.Info().
		Str("component", "depth_profile").
		Str("pattern", cfg.Pattern.String()).
		Int("n", cfg.N).
		Int("trials", cfg.Trials).
		Float64("mean_depth", p.Depth.Mean).
		Float64("max_depth", p.Depth.Max).
		Int("distinct_depths", p.DistinctDepths).
		Float64("mean_comparisons", p.Comparisons.Mean).
		Float64("expected_comparisons", p.ExpectedComparisons).
		Msg("profile complete")
	return p, nil
}

func runTrial(input []int, seed uint64, cfg Config) (Trial, []int, error) {
	data := slices.Clone(input)
	s := randqs.New(randqs.WithSeed(seed), randqs.WithLogger(cfg.Logger), randqs.WithChecks(!cfg.NoChecks))

	var st randqs.Stats
	var err error
	if cfg.Compare != nil {
		st, err = randqs.SortSliceFunc(s, data, cfg.Compare)
	} else {
		st, err = randqs.SortSlice(s, data)
	}
	if err != nil {
		return Trial{}, nil, errors.Wrapf(err, "trial with seed %d failed", seed)
	}
	return Trial{Seed: seed, Stats: st}, data, nil
}

func isSorted(data []int, cmp func(a, b int) int) bool {
	if cmp != nil {
		return randqs.IsSortedFunc(data, cmp)
	}
	return randqs.IsSorted(data)
}

// ExpectedComparisons returns 2(n+1)H(n) - 4n, the mean number of partition
// comparisons when sorting n distinct keys, where H(n) is the n-th harmonic
// number.
func ExpectedComparisons(n int) float64 {
	if n < 2 {
		return 0
	}
	h := 0.0
	for k := 1; k <= n; k++ {
		h += 1 / float64(k)
	}
	return 2*float64(n+1)*h - 4*float64(n)
}

func summarize(values []float64) (Summary, error) {
	data := stats.Float64Data(values)

	var s Summary
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Summary{}, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, err
	}
	return s, nil
}
