package metrics

import (
	"sync"

	"github.com/appmetrics/appmetrics/clock"
)

// Histogram wraps a Reservoir, exposing the coerce/add/statistics-kernel
// pipeline described in §4.E.
type Histogram struct {
	mu        sync.Mutex
	reservoir Reservoir
	opts      ReservoirOpts
}

// newHistogramInstrument builds a Histogram backed by a freshly constructed
// reservoir of the given kind.
func newHistogramInstrument(clk clock.Clock, opts ReservoirOpts) (*Histogram, error) {
	r, err := NewReservoir(clk, opts)
	if err != nil {
		return nil, err
	}
	return &Histogram{reservoir: r, opts: opts}, nil
}

// Kind identifies this instrument as a histogram.
func (h *Histogram) Kind() Kind { return KindHistogram }

// Notify coerces v to a float64 and adds it to the backing reservoir. A
// non-numeric v returns InputTypeError and leaves the reservoir
// untouched.
func (h *Histogram) Notify(v interface{}) error {
	f, ok := coerceFloat64(v)
	if !ok {
		return NewInputTypeError("histogram", v)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reservoir.Add(f)
	return nil
}

// Get runs the statistics kernel over the reservoir's current snapshot.
func (h *Histogram) Get() Summary {
	h.mu.Lock()
	snapshot := h.reservoir.Snapshot()
	h.mu.Unlock()

	stats := Compute(snapshot)
	return summaryFromStatistics(stats)
}

// Raw returns the list of values currently stored in the reservoir
// (weights dropped), in reservoir order.
func (h *Histogram) Raw() interface{} {
	h.mu.Lock()
	snapshot := h.reservoir.Snapshot()
	h.mu.Unlock()

	values := make([]float64, len(snapshot))
	for i, s := range snapshot {
		values[i] = s.Value
	}
	return values
}

func summaryFromStatistics(stats Statistics) Summary {
	percentiles := make([][2]float64, len(stats.Percentiles))
	for i, pt := range stats.Percentiles {
		percentiles[i] = [2]float64{pt.P, pt.Value}
	}
	histogram := make([][2]float64, len(stats.Histogram))
	for i, b := range stats.Histogram {
		histogram[i] = [2]float64{b.UpperBound, float64(b.Count)}
	}
	return Summary{
		"kind":               string(KindHistogram),
		"n":                  stats.N,
		"min":                stats.Min,
		"max":                stats.Max,
		"arithmetic_mean":    stats.ArithmeticMean,
		"variance":           stats.Variance,
		"standard_deviation": stats.StandardDeviation,
		"geometric_mean":     stats.GeometricMean,
		"harmonic_mean":      stats.HarmonicMean,
		"median":             stats.Median,
		"percentile":         percentiles,
		"skewness":           stats.Skewness,
		"kurtosis":           stats.Kurtosis,
		"histogram":          histogram,
	}
}
