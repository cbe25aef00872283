package metrics

import (
	"sync"

	"github.com/appmetrics/appmetrics/clock"
)

// Meter windows, in seconds, per §4.F: one minute, five minutes, fifteen
// minutes, one day.
const (
	meterWindowOne     = 60.0
	meterWindowFive    = 300.0
	meterWindowFifteen = 900.0
	meterWindowOneDay  = 86400.0
)

// Meter tracks an event rate, reporting both a lifetime mean and
// EWMA-smoothed rates at four time horizons.
type Meter struct {
	mu        sync.Mutex
	count     int64
	startTime float64
	clk       clock.Clock

	oneMinute     *ewma
	fiveMinute    *ewma
	fifteenMinute *ewma
	day           *ewma
}

// newMeterInstrument builds a Meter whose start_time is the clock's current
// reading.
func newMeterInstrument(clk clock.Clock) *Meter {
	return &Meter{
		clk:           clk,
		startTime:     clk.Now(),
		oneMinute:     newEWMA(clk, meterWindowOne),
		fiveMinute:    newEWMA(clk, meterWindowFive),
		fifteenMinute: newEWMA(clk, meterWindowFifteen),
		day:           newEWMA(clk, meterWindowOneDay),
	}
}

// Kind identifies this instrument as a meter.
func (m *Meter) Kind() Kind { return KindMeter }

// Notify coerces v to an integer, increments the lifetime count, and
// folds it into every EWMA's uncounted bucket. A non-numeric v returns
// InputTypeError and leaves the meter unchanged.
//
// Per §4.C, elapsed idle ticks must be caught up before the new
// observation is folded in, so that a burst of notifies spanning more
// than one 5-second tick boundary doesn't charge every observation to
// whichever tick happens to be current - each EWMA ticks first, then
// accumulates n, mirroring the original implementation's tick() call
// ahead of avg.update() in Meter.notify().
func (m *Meter) Notify(v interface{}) error {
	n, ok := coerceInt64(v)
	if !ok {
		return NewInputTypeError("meter", v)
	}

	m.mu.Lock()
	m.count += n
	m.mu.Unlock()

	m.tickAll()
	m.oneMinute.update(n)
	m.fiveMinute.update(n)
	m.fifteenMinute.update(n)
	m.day.update(n)
	return nil
}

// tickAll applies any catch-up ticks due on every window, independent of
// folding in a new observation.
func (m *Meter) tickAll() {
	m.oneMinute.tick()
	m.fiveMinute.tick()
	m.fifteenMinute.tick()
	m.day.tick()
}

// Get triggers a tick on every EWMA and returns the current summary:
// count, the lifetime mean rate, and the four windowed rates.
func (m *Meter) Get() Summary {
	m.mu.Lock()
	count := m.count
	start := m.startTime
	m.mu.Unlock()

	now := m.clk.Now()
	elapsed := now - start
	mean := 0.0
	if elapsed > 0 {
		mean = float64(count) / elapsed
	}

	return Summary{
		"kind":    string(KindMeter),
		"count":   count,
		"mean":    mean,
		"one":     m.oneMinute.rate(),
		"five":    m.fiveMinute.rate(),
		"fifteen": m.fifteenMinute.rate(),
		"day":     m.day.rate(),
	}
}

// Raw returns the meter's lifetime count.
func (m *Meter) Raw() interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Count returns the meter's lifetime count, for callers that don't need
// the Instrument interface.
func (m *Meter) Count() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}
