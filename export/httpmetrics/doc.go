// Package httpmetrics is the HTTP JSON exposition surface spec.md §6
// describes as an external collaborator of the core engine: a
// go-chi/chi router exposing a registry's instrument summaries over
// GET /metrics, GET /metrics/{name} and GET /metrics/tag/{tag}, rendered
// with go-chi/render.
package httpmetrics
