// Package decorator wraps ordinary functions with timing or call-counting
// instrumentation, the thin function-wrapping helpers spec.md §9 describes
// as expressible on top of the core engine rather than part of it.
//
// It mirrors the `with_histogram`/`with_meter` decorators of the Python
// implementation these helpers are modeled on: instead of a decorator
// syntax, each helper here returns a wrapped function of the same shape.
package decorator
