package core

import (
	"math"
	"math/rand/v2"
	"sync"
)

// RNG is a mutex-guarded wrapper around math/rand/v2 for deterministic
// seeding. A single RNG may be shared between goroutines.
type RNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Seed resets the stream to the state NewRNG(seed) would produce.
func (r *RNG) Seed(seed int64) {
	r.mu.Lock()
	r.r = rand.New(rand.NewPCG(uint64(seed), 0))
	r.mu.Unlock()
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.IntN(2) == 1
}

// Sign returns -1 or +1 with equal probability.
func (r *RNG) Sign() int {
	if r.Bool() {
		return 1
	}
	return -1
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.IntN(n)
}

// Int32N returns a random int32 in [0, n). It returns 0 when n <= 0.
func (r *RNG) Int32N(n int32) int32 {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Int32N(n)
}

// Int64N returns a random int64 in [0, n). It returns 0 when n <= 0.
func (r *RNG) Int64N(n int64) int64 {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Int64N(n)
}

// Int64 returns a non-negative random int64, typically used to derive seeds.
func (r *RNG) Int64() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Int64()
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Float64()
}

// OneInChance draws two values from [0, round(1/p)) and succeeds when they
// are equal, so the real success rate is 1/round(1/p) rather than p. Tuned
// constants depend on this exact scheme. Non-positive and NaN probabilities
// never succeed.
func (r *RNG) OneInChance(p float64) bool {
	n := ChanceRange(p)
	if n == 0 {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Int64N(n) == r.r.Int64N(n)
}

// ChanceRange returns the draw range OneInChance uses for p, or 0 when p can
// never succeed. The range is floored at 1 and capped at MaxInt32.
func ChanceRange(p float64) int64 {
	if math.IsNaN(p) || p <= 0 {
		return 0
	}
	inv := math.Round(1 / p)
	if inv < 1 {
		return 1
	}
	if inv > math.MaxInt32 {
		return math.MaxInt32
	}
	return int64(inv)
}
