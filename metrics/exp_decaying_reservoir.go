package metrics

import (
	"container/heap"
	"math"
	"math/rand"
	"sync"

	"github.com/appmetrics/appmetrics/clock"
)

// decayEntry is one slot in the forward-decay priority heap: a value and
// the forward-decay priority assigned to it at insertion time.
type decayEntry struct {
	priority float64
	value    float64
}

// decayHeap is a min-heap on priority, so the lowest-priority (most
// decayed) entry is always at index 0 and is the one evicted on overflow.
type decayHeap []decayEntry

func (h decayHeap) Len() int            { return len(h) }
func (h decayHeap) Less(i, j int) bool  { return h[i].priority < h[j].priority }
func (h decayHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *decayHeap) Push(x interface{}) { *h = append(*h, x.(decayEntry)) }
func (h *decayHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ExpDecayingReservoir implements forward-decay priority sampling (Cormode
// et al.): every observation is assigned a priority exp(alpha*(t-t0))/u for
// a fresh random draw u, so that recent observations are exponentially
// more likely to survive than old ones, while the reservoir remains a
// bounded, representative sample rather than a plain recency window.
type ExpDecayingReservoir struct {
	mu             sync.Mutex
	size           int
	alpha          float64
	rescaleSeconds float64
	clk            clock.Clock
	rnd            *rand.Rand

	heap          decayHeap
	count         int64
	landmark      float64
	nextRescaleAt float64
}

// NewExpDecayingReservoir builds an ExpDecayingReservoir with the given
// capacity, decay rate alpha, and rescale interval in seconds.
func NewExpDecayingReservoir(clk clock.Clock, size int, alpha, rescaleSeconds float64) *ExpDecayingReservoir {
	now := clk.Now()
	r := &ExpDecayingReservoir{
		size:           size,
		alpha:          alpha,
		rescaleSeconds: rescaleSeconds,
		clk:            clk,
		rnd:            rand.New(rand.NewSource(seedFrom(clk))),
		heap:           make(decayHeap, 0, size),
		landmark:       now,
		nextRescaleAt:  now + rescaleSeconds,
	}
	return r
}

// rescaleLocked re-landmarks every priority to the current time, per the
// original forward-decay algorithm's overflow-avoidance step: priorities
// grow without bound as t - landmark grows, so periodically every priority
// is recomputed relative to a new landmark at "now" and the old relative
// ordering (which is all the heap invariant depends on) is preserved.
func (r *ExpDecayingReservoir) rescaleLocked(now float64) {
	oldLandmark := r.landmark
	r.landmark = now
	factor := math.Exp(-r.alpha * (r.landmark - oldLandmark))
	for i := range r.heap {
		r.heap[i].priority *= factor
	}
	heap.Init(&r.heap)
	r.nextRescaleAt = now + r.rescaleSeconds
}

// Add records a new observation with a freshly drawn forward-decay
// priority, replacing the minimum-priority entry once the reservoir is
// full.
func (r *ExpDecayingReservoir) Add(value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clk.Now()
	if now >= r.nextRescaleAt {
		r.rescaleLocked(now)
	}

	r.count++
	u := 1 - r.rnd.Float64()
	priority := math.Exp(r.alpha*(now-r.landmark)) / u

	entry := decayEntry{priority: priority, value: value}
	if len(r.heap) < r.size {
		heap.Push(&r.heap, entry)
		return
	}
	if len(r.heap) > 0 && priority > r.heap[0].priority {
		r.heap[0] = entry
		heap.Fix(&r.heap, 0)
	}
}

// Size returns the number of observations currently held, at most the
// configured capacity.
func (r *ExpDecayingReservoir) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.heap)
}

// Count returns the total number of Add calls ever made.
func (r *ExpDecayingReservoir) Count() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Snapshot returns the current sample, each weighted by its forward-decay
// priority as required by the weighted-statistics kernel.
func (r *ExpDecayingReservoir) Snapshot() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Sample, len(r.heap))
	for i, e := range r.heap {
		out[i] = Sample{Value: e.value, Weight: e.priority}
	}
	return out
}
