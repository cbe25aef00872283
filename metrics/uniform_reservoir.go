package metrics

import (
	"math/rand"
	"sync"

	"github.com/appmetrics/appmetrics/clock"
)

// UniformReservoir is a random sampling reservoir of floating-point values,
// using Vitter's Algorithm R to produce a statistically representative
// sample of an unbounded stream in bounded memory.
type UniformReservoir struct {
	mu     sync.Mutex
	size   int
	values []float64
	count  int64
	rnd    *rand.Rand
}

// NewUniformReservoir builds a UniformReservoir with the given capacity.
func NewUniformReservoir(clk clock.Clock, size int) *UniformReservoir {
	return &UniformReservoir{
		size:   size,
		values: make([]float64, 0, size),
		rnd:    rand.New(rand.NewSource(seedFrom(clk))),
	}
}

// Add records a new observation, replacing a uniformly-chosen existing
// slot once the reservoir is full.
func (r *UniformReservoir) Add(value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.count++
	if r.count <= int64(r.size) {
		r.values = append(r.values, value)
		return
	}

	j := r.rnd.Int63n(r.count)
	if j < int64(r.size) {
		r.values[j] = value
	}
}

// Size returns the number of observations currently held, at most the
// configured capacity.
func (r *UniformReservoir) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Count returns the total number of Add calls ever made.
func (r *UniformReservoir) Count() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Snapshot returns a copy of the current sample, each with weight 1.
func (r *UniformReservoir) Snapshot() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Sample, len(r.values))
	for i, v := range r.values {
		out[i] = Sample{Value: v, Weight: 1}
	}
	return out
}
