package metrics

import (
	"sync"

	"github.com/appmetrics/appmetrics/clock"
)

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the process-wide default Registry, constructing it on
// first use with the system clock.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = NewRegistry(clock.NewSystemClock())
	}
	return defaultRegistry
}

// ResetDefault replaces the default registry with a fresh, empty one.
// Intended for test isolation between packages that both reach for the
// process-global registry.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = NewRegistry(clock.NewSystemClock())
}

// NewCounter returns the named Counter from the default registry.
func NewCounter(name string) (*Counter, error) { return Default().NewCounter(name) }

// NewGauge returns the named Gauge from the default registry.
func NewGauge(name string) (*Gauge, error) { return Default().NewGauge(name) }

// NewMeter returns the named Meter from the default registry.
func NewMeter(name string) (*Meter, error) { return Default().NewMeter(name) }

// NewHistogram returns the named Histogram from the default registry,
// defaulting to a Uniform reservoir of DefaultReservoirSize when opts is
// the zero value.
func NewHistogram(name string, opts ReservoirOpts) (*Histogram, error) {
	if opts.Kind == "" {
		opts = UniformReservoirOpts(0)
	}
	return Default().NewHistogram(name, opts)
}

// Metric returns the named instrument from the default registry.
func Metric(name string) (Instrument, error) { return Default().Metric(name) }

// Delete removes the named instrument from the default registry.
func Delete(name string) { Default().Delete(name) }

// Names returns the sorted list of metric names in the default registry.
func Names() []string { return Default().List() }

// Tag tags name in the default registry.
func Tag(name, tag string) error { return Default().Tag(name, tag) }

// Untag removes name from tag in the default registry.
func Untag(name, tag string) bool { return Default().Untag(name, tag) }

// Tags returns the default registry's tag snapshot.
func Tags() map[string][]string { return Default().Tags() }

// ByTag returns the default registry's by-tag summary map.
func ByTag(tag string) map[string]Summary { return Default().ByTag(tag) }
