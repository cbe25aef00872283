// Package metrics is a thread-safe, in-process registry of named metric
// instruments - counters, gauges, histograms and meters - built on a
// statistical sampling and rate-estimation engine.
//
// Producers call Notify on an instrument obtained from a Registry; readers
// call Get to obtain a computed summary. Histograms sample an unbounded
// stream through one of four bounded Reservoir disciplines (uniform,
// sliding-count, sliding-time, exponentially-decaying priority) and reduce
// the sample through the statistics kernel in statistics.go. Meters produce
// EWMA rate estimates at four time horizons.
//
// The package does not persist anything to disk or across processes; it is
// the in-memory engine that downstream exporters (Graphite, HTTP, CSV - see
// the sibling export/ packages) read snapshots from.
package metrics
