// Package prometheus exposes a metrics.Registry through the Prometheus
// client library: a Collector mirrors every registered instrument onto
// prometheus.Metric values on each Collect call, the way the teacher's
// PrometheusRegistryAdapter builds one prometheus.Collector per named
// metric up front. Here the registry's name set is dynamic, so a single
// Collector describes and collects the whole Registry on demand instead
// of pre-registering one metric per name.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/appmetrics/appmetrics/metrics"
)

const namespace = "appmetrics"

// Collector adapts a *metrics.Registry to prometheus.Collector, so it can
// be registered with a prometheus.Registry and scraped via promhttp.
type Collector struct {
	source    *metrics.Registry
	subsystem string
}

// NewCollector builds a Collector over source. subsystem is applied to
// every exported metric's Prometheus namespace, mirroring the teacher's
// per-service subsystem tagging in PrometheusRegistryAdapter.
func NewCollector(source *metrics.Registry, subsystem string) *Collector {
	return &Collector{source: source, subsystem: subsystem}
}

// Describe is intentionally a no-op: the registry's name set changes at
// runtime, so Collector is an "unchecked" collector per the
// prometheus.Collector contract and sends no descriptors ahead of time.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {}

// Collect renders every instrument currently in source as a prometheus
// metric, translating each Kind the way PrometheusRegistryAdapter's
// NewCounter/NewHistogram/NewMeter map onto prometheus.Counter/
// Histogram/Summary.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, name := range c.source.List() {
		inst, err := c.source.Metric(name)
		if err != nil {
			continue
		}
		c.collectInstrument(ch, name, inst)
	}
}

func (c *Collector) collectInstrument(ch chan<- prometheus.Metric, name string, inst metrics.Instrument) {
	switch inst.Kind() {
	case metrics.KindCounter:
		value, _ := inst.Raw().(int64)
		desc := c.desc(name, "counter total")
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(value))

	case metrics.KindGauge:
		summary := inst.Get()
		gv, ok := summary["value"].(metrics.GaugeValue)
		if !ok {
			return
		}
		f, ok := numericValue(gv.Interface())
		if !ok {
			return
		}
		desc := c.desc(name, "gauge value")
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, f)

	case metrics.KindHistogram:
		values, _ := inst.Raw().([]float64)
		desc := c.desc(name, "histogram of sampled values")
		count, sum, buckets := histogramBuckets(values)
		ch <- prometheus.MustNewConstHistogram(desc, count, sum, buckets)

	case metrics.KindMeter:
		count, _ := inst.Raw().(int64)
		desc := c.desc(name, "meter total observations")
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(count))
	}
}

func (c *Collector) desc(name, help string) *prometheus.Desc {
	return prometheus.NewDesc(
		prometheus.BuildFQName(namespace, c.subsystem, sanitizeName(name)),
		name+" "+help,
		nil, nil,
	)
}

// histogramBuckets computes the cumulative bucket counts
// NewConstHistogram expects from a flat slice of observed values, using
// the same fixed bucket boundaries PrometheusRegistryAdapter.NewHistogram
// hard-codes for its latency-shaped histograms.
func histogramBuckets(values []float64) (count uint64, sum float64, buckets map[float64]uint64) {
	bounds := []float64{0.005, 0.01, 0.025, 0.05, 0.075, 0.1, 0.25, 0.5, 0.75, 1, 2.5, 5, 7.5, 10, 20, 100, 200, 300, 500, 1000}
	buckets = make(map[float64]uint64, len(bounds))
	for _, v := range values {
		count++
		sum += v
		for _, b := range bounds {
			if v <= b {
				buckets[b]++
			}
		}
	}
	return count, sum, buckets
}

// numericValue coerces an arbitrary Gauge value to float64, skipping
// gauges holding a non-numeric payload since Prometheus samples are
// always floating point.
func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

// sanitizeName replaces the dotted instrument-name separator this
// module uses (e.g. "requests.latency_seconds") with the underscore
// Prometheus metric names require.
func sanitizeName(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		if name[i] == '.' || name[i] == '-' {
			out[i] = '_'
		} else {
			out[i] = name[i]
		}
	}
	return string(out)
}
