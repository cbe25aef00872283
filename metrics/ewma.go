package metrics

import (
	"math"
	"sync"

	"github.com/appmetrics/appmetrics/clock"
)

// ewmaTickSeconds is the fixed tick interval EWMA rates are defined over,
// matching the 5-second tick rcrowley/go-metrics and the original meter
// implementation both use.
const ewmaTickSeconds = 5.0

// ewma is an exponentially-weighted moving average over a fixed 5-second
// tick, parameterized by the averaging window it approximates (1m, 5m,
// 15m, 1d). Events accumulate in an uncounted bucket between ticks; reading
// the rate lazily applies every tick that has elapsed since the last
// read, so a long idle gap still decays the average correctly instead of
// leaving it stuck at its last observed value.
type ewma struct {
	mu          sync.Mutex
	alpha       float64
	uncounted   int64
	value       float64
	initialized bool
	lastTick    float64
	clk         clock.Clock
}

// newEWMA builds an ewma for the given averaging window, in seconds.
func newEWMA(clk clock.Clock, windowSeconds float64) *ewma {
	alpha := 1 - math.Exp(-ewmaTickSeconds/windowSeconds)
	return &ewma{alpha: alpha, clk: clk, lastTick: clk.Now()}
}

// update accumulates n events into the current tick's bucket.
func (e *ewma) update(n int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.uncounted += n
}

// tickIfDue applies every 5-second tick that has elapsed since the last
// one. Only the first tick folds in the events actually observed during
// it; any further catch-up ticks (elapsed idle periods) decay the average
// toward zero, since no events occurred during them.
func (e *ewma) tickIfDue() {
	now := e.clk.Now()
	elapsed := now - e.lastTick
	if elapsed < ewmaTickSeconds {
		return
	}
	ticks := int64(elapsed / ewmaTickSeconds)

	count := e.uncounted
	e.uncounted = 0
	instantRate := float64(count) / ewmaTickSeconds

	if !e.initialized {
		e.value = instantRate
		e.initialized = true
	} else {
		e.value += e.alpha * (instantRate - e.value)
	}
	for i := int64(1); i < ticks; i++ {
		e.value += e.alpha * (0 - e.value)
	}
	e.lastTick += float64(ticks) * ewmaTickSeconds
}

// rate returns the current per-second rate estimate.
func (e *ewma) rate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickIfDue()
	return e.value
}

// tick applies any catch-up ticks due since the last one, without folding
// in a new observation. Meter.Notify calls this before update so that a
// burst of notifies spanning more than one tick boundary charges each
// observation to its own tick window instead of piling everything into
// whichever tick happens to be current when Get is next called.
func (e *ewma) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickIfDue()
}
