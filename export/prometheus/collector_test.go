package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appmetrics/appmetrics/clock"
	"github.com/appmetrics/appmetrics/metrics"
)

func collect(t *testing.T, c *Collector) []*dto.Metric {
	t.Helper()
	ch := make(chan prometheus.Metric, 16)
	c.Collect(ch)
	close(ch)

	var out []*dto.Metric
	for m := range ch {
		pb := &dto.Metric{}
		require.NoError(t, m.Write(pb))
		out = append(out, pb)
	}
	return out
}

func TestCollectorTranslatesEveryKind(t *testing.T) {
	clk := clock.NewFakeClock(0)
	registry := metrics.NewRegistry(clk)

	cnt, err := registry.NewCounter("requests")
	require.NoError(t, err)
	require.NoError(t, cnt.Notify(42))

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

	metricsOut := collect(t, NewCollector(registry, "demo"))
	require.Len(t, metricsOut, 4)

	byCounterName := map[float64]bool{}
	for _, pb := range metricsOut {
		if pb.Counter != nil {
			byCounterName[pb.Counter.GetValue()] = true
		}
	}
	assert.True(t, byCounterName[42], "expected the requests counter's value to be exported")
	assert.True(t, byCounterName[3], "expected the meter's lifetime count to be exported")

	var sawGauge, sawHistogram bool
	for _, pb := range metricsOut {
		if pb.Gauge != nil {
			sawGauge = true
			assert.InDelta(t, 98.6, pb.Gauge.GetValue(), 1e-9)
		}
		if pb.Histogram != nil {
			sawHistogram = true
			assert.Equal(t, uint64(2), pb.Histogram.GetSampleCount())
		}
	}
	assert.True(t, sawGauge)
	assert.True(t, sawHistogram)
}

func TestCollectorSkipsNonNumericGauge(t *testing.T) {
	clk := clock.NewFakeClock(0)
	registry := metrics.NewRegistry(clk)
	g, err := registry.NewGauge("label")
	require.NoError(t, err)
	require.NoError(t, g.Notify("not a number"))

	metricsOut := collect(t, NewCollector(registry, "demo"))
	assert.Empty(t, metricsOut)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "requests_latency_seconds", sanitizeName("requests.latency_seconds"))
	assert.Equal(t, "pool_size", sanitizeName("pool-size"))
}
