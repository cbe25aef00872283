package metrics

// Kind names the concrete instrument variant a Summary was produced by.
type Kind string

const (
	KindCounter   Kind = "counter"
	KindGauge     Kind = "gauge"
	KindHistogram Kind = "histogram"
	KindMeter     Kind = "meter"
)

// MetricTypes enumerates the valid kind names new() accepts, mirroring
// metrics.METRIC_TYPES.
var MetricTypes = []Kind{KindCounter, KindGauge, KindHistogram, KindMeter}

// Summary is the computed, JSON-safe document an instrument's Get returns:
// a mapping from stable field name to number or string, always including
// a "kind" discriminator.
type Summary map[string]interface{}

// Instrument is the polymorphic metric type (§3): every variant exposes
// Notify (ingest), Get (computed summary) and Raw (underlying state).
type Instrument interface {
	// Kind identifies the concrete instrument variant.
	Kind() Kind
	// Notify ingests one observation, coercing v to whatever type this
	// instrument variant expects. A coercion failure returns
	// InputTypeError and leaves the instrument unmodified.
	Notify(v interface{}) error
	// Get returns the instrument's current computed summary.
	Get() Summary
	// Raw returns the instrument's underlying state, for callers that
	// need more than the summary (e.g. a histogram's stored samples).
	Raw() interface{}
}
