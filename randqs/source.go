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
	crand "crypto/rand"
	"encoding/binary"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// SeedEnv names the environment variable holding the seed of the
// process-wide source.
const SeedEnv = "RANDQS_SEED"

// Source supplies pivot indices.
//
// Intn returns a uniformly distributed value in [0, n) and is only called with
// n > 0. *rand.Rand from golang.org/x/exp/rand and from math/rand satisfy it.
type Source interface {
	Intn(n int) int
}

var (
	defaultOnce   sync.Once
	defaultSource *rand.Rand
	defaultSeed   uint64
)

// DefaultSource returns the process-wide source. It is seeded on first use
// and is safe for concurrent use.
func DefaultSource() Source {
	initDefaultSource()
	return defaultSource
}

// DefaultSeed returns the seed the process-wide source was initialized with.
func DefaultSeed() uint64 {
	initDefaultSource()
	return defaultSeed
}

func initDefaultSource() {
	defaultOnce.Do(func() {
		seed, ok := SeedFromEnv()
		if !ok {
			seed = entropySeed()
		}
		src := &rand.LockedSource{}
		src.Seed(seed)
		defaultSeed = seed
		defaultSource = rand.New(src)
	})
}

// NewSource returns a deterministic source seeded with seed.
// It is not safe for concurrent use.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}

// SeedFromEnv reads the RANDQS_SEED environment variable.
// It returns false when the variable is unset or not a valid uint64.
func SeedFromEnv() (uint64, bool) {
	val := os.Getenv(SeedEnv)
	if val == "" {
		return 0, false
	}
	seed, err := strconv.ParseUint(val, 0, 64)
	if err != nil {
		return 0, false
	}
	return seed, true
}

// entropySeed reads a seed from crypto/rand, falling back to the clock if the
// system RNG is unavailable.
func entropySeed() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(buf[:])
}
