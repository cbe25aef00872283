package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/appmetrics/appmetrics/metrics"
)

// NewPrometheusRegistry builds a prometheus.Registry carrying the standard
// Go runtime and process collectors, mirroring the teacher's
// NewPrometheusRegistry.
func NewPrometheusRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return registry
}

// NewHandler builds a prometheus.Registry seeded with the runtime
// collectors plus a Collector over source, and returns the scrape
// endpoint's http.Handler ready to mount alongside httpmetrics' own
// router.
func NewHandler(source *metrics.Registry, subsystem string) http.Handler {
	registry := NewPrometheusRegistry()
	registry.MustRegister(NewCollector(source, subsystem))
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
