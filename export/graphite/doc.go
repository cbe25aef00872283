// Package graphite bridges a metrics.Registry to Graphite: on a
// configurable interval it mirrors every instrument's current Raw/Get
// state onto a dedicated rcrowley/go-metrics registry and flushes that
// registry over the wire with cyberdelia/go-metrics-graphite, exactly the
// two libraries the teacher repo's own metrics/graphite/go-metrics
// package wires together for the same purpose.
//
// The core engine in package metrics is not built on go-metrics; this
// package only translates snapshots of it into go-metrics' shape at
// export time.
package graphite
