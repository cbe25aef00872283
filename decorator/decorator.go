package decorator

import (
	"time"

	"github.com/appmetrics/appmetrics/clock"
	"github.com/appmetrics/appmetrics/metrics"
)

// TimeFunc wraps f so that every call's wall-clock duration, in seconds,
// is notified to h.
func TimeFunc(h *metrics.Histogram, f func()) func() {
	return TimeFuncWithClock(clock.NewSystemClock(), h, f)
}

// TimeFuncWithClock is TimeFunc with an injectable clock, for deterministic
// tests.
func TimeFuncWithClock(clk clock.Clock, h *metrics.Histogram, f func()) func() {
	return func() {
		start := clk.Now()
		f()
		elapsed := clk.Now() - start
		h.Notify(elapsed)
	}
}

// TimeCall runs f once, notifying its wall-clock duration to h and
// returning how long it took.
func TimeCall(h *metrics.Histogram, f func()) time.Duration {
	start := time.Now()
	f()
	elapsed := time.Since(start)
	h.Notify(elapsed.Seconds())
	return elapsed
}

// CountCalls wraps f so that every call increments m by one.
func CountCalls(m *metrics.Meter, f func()) func() {
	return func() {
		m.Notify(1)
		f()
	}
}
