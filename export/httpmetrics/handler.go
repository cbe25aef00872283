package httpmetrics

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/appmetrics/appmetrics/metrics"
)

// NewRouter builds the HTTP exposition surface over registry: GET /metrics
// for the full snapshot, GET /metrics/{name} for one instrument, and
// GET /metrics/tag/{tag} for a tag's summaries.
func NewRouter(registry *metrics.Registry) chi.Router {
	r := chi.NewRouter()
	r.Get("/metrics", listAll(registry))
	r.Get("/metrics/{name}", getOne(registry))
	r.Get("/metrics/tag/{tag}", getByTag(registry))
	return r
}

func listAll(registry *metrics.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		out := make(map[string]metrics.Summary)
		for _, name := range registry.List() {
			inst, err := registry.Metric(name)
			if err != nil {
				continue
			}
			out[name] = inst.Get()
		}
		render.JSON(w, req, out)
	}
}

func getOne(registry *metrics.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		inst, err := registry.Metric(name)
		if err != nil {
			renderError(w, req, err)
			return
		}
		render.JSON(w, req, inst.Get())
	}
}

func getByTag(registry *metrics.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		tag := chi.URLParam(req, "tag")
		render.JSON(w, req, registry.ByTag(tag))
	}
}

// renderError maps the core error kinds of spec.md §7 to the status
// codes the collaborator contract in §6 specifies.
func renderError(w http.ResponseWriter, req *http.Request, err error) {
	var invalidMetric metrics.InvalidMetricError
	var duplicateMetric metrics.DuplicateMetricError
	var inputType metrics.InputTypeError

	switch {
	case errors.As(err, &invalidMetric):
		render.Render(w, req, ErrorNotFound(err)) //nolint:errcheck
	case errors.As(err, &duplicateMetric):
		render.Render(w, req, ErrorInvalidRequest(err)) //nolint:errcheck
	case errors.As(err, &inputType):
		render.Render(w, req, ErrorInvalidRequest(err)) //nolint:errcheck
	default:
		render.Render(w, req, ErrorInternalServer(err)) //nolint:errcheck
	}
}
