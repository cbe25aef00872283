package metrics

import (
	"sync"

	"github.com/appmetrics/appmetrics/clock"
)

type timedValue struct {
	timestamp float64
	value     float64
}

// SlidingTimeReservoir keeps every observation made within the trailing
// window, dropping entries older than the window on every Add and
// Snapshot (so a snapshot taken long after the last Add still only holds
// entries within W seconds of "now").
type SlidingTimeReservoir struct {
	mu      sync.Mutex
	window  float64
	clk     clock.Clock
	entries []timedValue
	count   int64
}

// NewSlidingTimeReservoir builds a SlidingTimeReservoir with the given
// window, in seconds.
func NewSlidingTimeReservoir(clk clock.Clock, windowSeconds float64) *SlidingTimeReservoir {
	return &SlidingTimeReservoir{window: windowSeconds, clk: clk}
}

func (r *SlidingTimeReservoir) evictLocked(now float64) {
	cutoff := now - r.window
	i := 0
	for i < len(r.entries) && r.entries[i].timestamp < cutoff {
		i++
	}
	if i > 0 {
		r.entries = append(r.entries[:0], r.entries[i:]...)
	}
}

// Add records a new observation at the current clock time, first dropping
// any entries that have aged out of the window.
func (r *SlidingTimeReservoir) Add(value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clk.Now()
	r.count++
	r.evictLocked(now)
	r.entries = append(r.entries, timedValue{timestamp: now, value: value})
}

// Size returns the number of observations within the window as of now.
func (r *SlidingTimeReservoir) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictLocked(r.clk.Now())
	return len(r.entries)
}

// Count returns the total number of Add calls ever made.
func (r *SlidingTimeReservoir) Count() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Snapshot returns the values currently within the window, in insertion
// order, each with weight 1.
func (r *SlidingTimeReservoir) Snapshot() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictLocked(r.clk.Now())
	out := make([]Sample, len(r.entries))
	for i, e := range r.entries {
		out[i] = Sample{Value: e.value, Weight: 1}
	}
	return out
}
