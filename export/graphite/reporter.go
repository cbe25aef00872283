package graphite

import (
	"fmt"
	"net"
	"sync"

	cyberdeliaGraphite "github.com/cyberdelia/go-metrics-graphite"
	gometrics "github.com/rcrowley/go-metrics"

	"github.com/appmetrics/appmetrics/metrics"
)

// Reporter mirrors a metrics.Registry onto a dedicated go-metrics registry
// on every Sync, so that the standard go-metrics-graphite flusher can ship
// it over the wire unmodified.
type Reporter struct {
	config   Config
	source   *metrics.Registry
	shadow   gometrics.Registry
	mu       sync.Mutex
	lastMark map[string]int64
}

// NewReporter builds a Reporter translating source's instruments onto a
// fresh go-metrics registry.
func NewReporter(source *metrics.Registry, config Config) *Reporter {
	return &Reporter{
		config:   config,
		source:   source,
		shadow:   gometrics.NewRegistry(),
		lastMark: make(map[string]int64),
	}
}

// Start resolves the configured Graphite address and launches the
// go-metrics-graphite flusher loop against this Reporter's shadow
// registry, matching the teacher's own Init function. It returns
// immediately; the flusher runs until the process exits.
func (r *Reporter) Start() error {
	if !r.config.Enabled {
		return nil
	}
	addr, err := net.ResolveTCPAddr("tcp", r.config.URI)
	if err != nil {
		return fmt.Errorf("cannot resolve graphite address %s: %w", r.config.URI, err)
	}
	go cyberdeliaGraphite.Graphite(r.shadow, r.config.Interval, r.config.Prefix, addr)
	return nil
}

// Sync translates the current state of every instrument in source onto
// the shadow go-metrics registry. Call this once per report interval,
// just ahead of when the flusher is due to fire.
func (r *Reporter) Sync() {
	for _, name := range r.source.List() {
		inst, err := r.source.Metric(name)
		if err != nil {
			continue
		}
		r.syncInstrument(name, inst)
	}
}

func (r *Reporter) syncInstrument(name string, inst metrics.Instrument) {
	switch inst.Kind() {
	case metrics.KindCounter:
		summary := inst.Get()
		value, _ := summary["value"].(int64)
		gc := gometrics.GetOrRegisterCounter(name, r.shadow)
		gc.Clear()
		gc.Inc(value)

	case metrics.KindGauge:
		summary := inst.Get()
		if gv, ok := summary["value"].(metrics.GaugeValue); ok {
			if f, ok := numericValue(gv.Interface()); ok {
				gg := gometrics.GetOrRegisterGaugeFloat64(name, r.shadow)
				gg.Update(f)
			}
		}

	case metrics.KindHistogram:
		values, _ := inst.Raw().([]float64)
		gh := gometrics.GetOrRegisterHistogram(name, r.shadow, gometrics.NewUniformSample(metrics.DefaultReservoirSize))
		gh.Clear()
		for _, v := range values {
			gh.Update(int64(v))
		}

	case metrics.KindMeter:
		count, _ := inst.Raw().(int64)
		gm := gometrics.GetOrRegisterMeter(name, r.shadow)

		r.mu.Lock()
		delta := count - r.lastMark[name]
		r.lastMark[name] = count
		r.mu.Unlock()

		if delta > 0 {
			gm.Mark(delta)
		}
	}
}

// numericValue coerces an arbitrary Gauge value to float64 for export,
// skipping gauges holding a non-numeric payload (strings, structs) since
// Graphite has no representation for them.
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
