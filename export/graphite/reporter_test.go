package graphite

import (
	"testing"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appmetrics/appmetrics/clock"
	"github.com/appmetrics/appmetrics/metrics"
)

func TestReporterSyncTranslatesEveryKind(t *testing.T) {
	clk := clock.NewFakeClock(0)
	registry := metrics.NewRegistry(clk)

	c, err := registry.NewCounter("requests")
	require.NoError(t, err)
	require.NoError(t, c.Notify(42))

	g, err := registry.NewGauge("temperature")
	require.NoError(t, err)
	require.NoError(t, g.Notify(98.6))

	h, err := registry.NewHistogram("latency", metrics.UniformReservoirOpts(10))
	require.NoError(t, err)
	require.NoError(t, h.Notify(1))
	require.NoError(t, h.Notify(2))

	m, err := registry.NewMeter("hits")
	require.NoError(t, err)
	require.NoError(t, m.Notify(3))

	reporter := NewReporter(registry, Config{})
	reporter.Sync()

	gc := gometrics.GetOrRegisterCounter("requests", reporter.shadow)
	assert.Equal(t, int64(42), gc.Count())

	gg := gometrics.GetOrRegisterGaugeFloat64("temperature", reporter.shadow)
	assert.Equal(t, 98.6, gg.Value())

	gh := gometrics.GetOrRegisterHistogram("latency", reporter.shadow, gometrics.NewUniformSample(10))
	assert.Equal(t, int64(2), gh.Count())

	gm := gometrics.GetOrRegisterMeter("hits", reporter.shadow)
	assert.Equal(t, int64(3), gm.Count())
}

func TestReporterSyncSkipsNonNumericGauge(t *testing.T) {
	clk := clock.NewFakeClock(0)
	registry := metrics.NewRegistry(clk)
	g, err := registry.NewGauge("label")
	require.NoError(t, err)
	require.NoError(t, g.Notify("not a number"))

	reporter := NewReporter(registry, Config{})
	assert.NotPanics(t, func() { reporter.Sync() })
}
