package metrics

import (
	"sort"
	"sync"

	"github.com/appmetrics/appmetrics/clock"
	"github.com/appmetrics/appmetrics/logging"
)

// entry pairs a stored instrument with the kind/opts it was constructed
// with, which New needs to decide idempotence on a repeat call.
type entry struct {
	instrument Instrument
	kind       Kind
	opts       ReservoirOpts
}

// Registry is the named instrument store and tag index described in §3
// and §4.G: a single coarse lock guards the name and tag tables and every
// create/delete operation, while each instrument is internally
// synchronized so readers and writers on different instruments never
// contend on the registry lock. Lifecycle events (create, duplicate
// rejection, delete) are reported through logger, which defaults to a
// no-op until SetLogger is called.
type Registry struct {
	mu     sync.Mutex
	clk    clock.Clock
	byName map[string]*entry
	tags   map[string]map[string]struct{}
	logger logging.Logger
}

// NewRegistry builds an empty Registry driven by clk. Lifecycle events are
// discarded until SetLogger is called.
func NewRegistry(clk clock.Clock) *Registry {
	return &Registry{
		clk:    clk,
		byName: make(map[string]*entry),
		tags:   make(map[string]map[string]struct{}),
		logger: noopLogger{},
	}
}

// SetLogger wires logger into the registry so that metric creation,
// duplicate-kind rejections, and deletions are logged as they happen.
func (r *Registry) SetLogger(logger logging.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// NewCounter returns the named Counter, creating it if absent.
func (r *Registry) NewCounter(name string) (*Counter, error) {
	inst, err := r.new(name, KindCounter, ReservoirOpts{}, func() (Instrument, error) {
		return newCounterInstrument(), nil
	})
	if err != nil {
		return nil, err
	}
	return inst.(*Counter), nil
}

// NewGauge returns the named Gauge, creating it if absent.
func (r *Registry) NewGauge(name string) (*Gauge, error) {
	inst, err := r.new(name, KindGauge, ReservoirOpts{}, func() (Instrument, error) {
		return newGaugeInstrument(), nil
	})
	if err != nil {
		return nil, err
	}
	return inst.(*Gauge), nil
}

// NewMeter returns the named Meter, creating it if absent.
func (r *Registry) NewMeter(name string) (*Meter, error) {
	inst, err := r.new(name, KindMeter, ReservoirOpts{}, func() (Instrument, error) {
		return newMeterInstrument(r.clk), nil
	})
	if err != nil {
		return nil, err
	}
	return inst.(*Meter), nil
}

// NewHistogram returns the named Histogram backed by the given reservoir
// opts, creating it if absent.
func (r *Registry) NewHistogram(name string, opts ReservoirOpts) (*Histogram, error) {
	inst, err := r.new(name, KindHistogram, opts, func() (Instrument, error) {
		return newHistogramInstrument(r.clk, opts)
	})
	if err != nil {
		return nil, err
	}
	return inst.(*Histogram), nil
}

// new implements the shared new(kind, name, opts) semantics of §4.G: under
// lock, a same-kind/same-opts existing instrument is returned as-is
// (idempotent); a different kind or opts fails with DuplicateMetricError;
// otherwise build is invoked to construct a fresh instrument while the
// lock is held, matching the registry's never-concurrently-construct
// guarantee for a given name.
func (r *Registry) new(name string, kind Kind, opts ReservoirOpts, build func() (Instrument, error)) (Instrument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[name]; ok {
		if existing.kind == kind && existing.opts.Equal(opts) {
			return existing.instrument, nil
		}
		r.logger.Clone().String("metric", name).Warning("duplicate metric requested with a different kind or reservoir configuration")
		return nil, NewDuplicateMetricError(name, "existing metric has a different kind or reservoir configuration")
	}

	inst, err := build()
	if err != nil {
		return nil, err
	}
	r.byName[name] = &entry{instrument: inst, kind: kind, opts: opts}
	r.logger.Clone().String("metric", name).Info("metric created")
	return inst, nil
}

// Metric returns the instrument registered under name, or
// InvalidMetricError if none exists.
func (r *Registry) Metric(name string) (Instrument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byName[name]
	if !ok {
		return nil, NewInvalidMetricError(name)
	}
	return e.instrument, nil
}

// Delete removes the named instrument and detaches it from every tag,
// dropping any tag that becomes empty as a result.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; ok {
		r.logger.Clone().String("metric", name).Info("metric deleted")
	}
	delete(r.byName, name)
	for tag, names := range r.tags {
		delete(names, name)
		if len(names) == 0 {
			delete(r.tags, tag)
		}
	}
}

// Tag requires that name exists and inserts it into tag's name set.
func (r *Registry) Tag(name, tag string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; !ok {
		return NewInvalidMetricError(name)
	}
	names, ok := r.tags[tag]
	if !ok {
		names = make(map[string]struct{})
		r.tags[tag] = names
	}
	names[name] = struct{}{}
	return nil
}

// Untag removes name from tag's set, reporting whether a removal
// happened, and drops tag entirely if its set becomes empty.
func (r *Registry) Untag(name, tag string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	names, ok := r.tags[tag]
	if !ok {
		return false
	}
	if _, present := names[name]; !present {
		return false
	}
	delete(names, name)
	if len(names) == 0 {
		delete(r.tags, tag)
	}
	return true
}

// Tags returns a snapshot of tag -> sorted list of names.
func (r *Registry) Tags() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]string, len(r.tags))
	for tag, names := range r.tags {
		list := make([]string, 0, len(names))
		for name := range names {
			list = append(list, name)
		}
		sort.Strings(list)
		out[tag] = list
	}
	return out
}

// ByTag returns {name: summary} for every name currently in tag,
// invoking each instrument's Get outside the registry lock: the lock is
// held only long enough to copy the set of names, after which readers
// and concurrent notify traffic on other instruments proceed freely. An
// absent tag yields an empty map, not an error.
func (r *Registry) ByTag(tag string) map[string]Summary {
	r.mu.Lock()
	names := r.tags[tag]
	snapshot := make([]string, 0, len(names))
	instruments := make([]Instrument, 0, len(names))
	for name := range names {
		if e, ok := r.byName[name]; ok {
			snapshot = append(snapshot, name)
			instruments = append(instruments, e.instrument)
		}
	}
	r.mu.Unlock()

	out := make(map[string]Summary, len(snapshot))
	for i, name := range snapshot {
		out[name] = instruments[i].Get()
	}
	return out
}

// List returns the sorted list of every registered metric name.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
