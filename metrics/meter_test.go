package metrics

import (
	"testing"
	"time"

	"github.com/appmetrics/appmetrics/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeterLifetimeMean(t *testing.T) {
	clk := clock.NewFakeClock(0)
	m := newMeterInstrument(clk)

	require.NoError(t, m.Notify(10))
	clk.Advance(10 * time.Second)

	summary := m.Get()
	assert.Equal(t, "meter", summary["kind"])
	assert.Equal(t, int64(10), summary["count"])
	assert.InDelta(t, 1.0, summary["mean"].(float64), 1e-9)
}

func TestMeterIdleDecay(t *testing.T) {
	clk := clock.NewFakeClock(0)
	m := newMeterInstrument(clk)
	require.NoError(t, m.Notify(1))

	clk.Advance(5 * time.Second)
	first := m.Get()["one"].(float64)
	require.Greater(t, first, 0.0)

	previous := first
	for i := 0; i < 50; i++ {
		clk.Advance(5 * time.Second)
		current := m.Get()["one"].(float64)
		assert.LessOrEqual(t, current, previous)
		previous = current
	}
	assert.Less(t, previous, first)
}

func TestMeterNotifyTicksBeforeFoldingInAcrossIdleBoundary(t *testing.T) {
	clk := clock.NewFakeClock(0)
	m := newMeterInstrument(clk)

	require.NoError(t, m.Notify(60))
	firstTickRate := m.oneMinute.rate()

	clk.Advance(5 * time.Second)
	require.NoError(t, m.Notify(60))

	assert.Greater(t, firstTickRate, 0.0, "first burst should have already ticked into a nonzero rate")
	assert.NotEqual(t, int64(120), m.oneMinute.uncounted,
		"a notify after a tick boundary must not pile onto the prior tick's uncounted bucket")
}

func TestMeterRejectsNonNumeric(t *testing.T) {
	clk := clock.NewFakeClock(0)
	m := newMeterInstrument(clk)
	err := m.Notify(map[string]int{})
	require.Error(t, err)
	assert.IsType(t, InputTypeError{}, err)
	assert.Equal(t, int64(0), m.Count())
}
