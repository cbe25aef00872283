package metrics

import (
	"encoding/json"
	"sync"
)

// GaugeValueKind discriminates the dynamic type a GaugeValue carries, per
// spec.md §9's "model the Gauge value as a tagged variant."
type GaugeValueKind string

const (
	GaugeValueInt64   GaugeValueKind = "int64"
	GaugeValueFloat64 GaugeValueKind = "float64"
	GaugeValueString  GaugeValueKind = "string"
	GaugeValueBool    GaugeValueKind = "bool"
	GaugeValueNil     GaugeValueKind = "null"
)

// GaugeValue is a tagged union of {int64, float64, string, bool, null}.
// JSON serialization follows the tag rather than Go's default interface
// marshaling, so a gauge set to an int64 round-trips as a JSON number, not
// a string.
type GaugeValue struct {
	kind GaugeValueKind
	i    int64
	f    float64
	s    string
	b    bool
}

// newGaugeValue tags v by its concrete Go type. Any type not in the tagged
// set is coerced to its string representation rather than rejected, since
// Gauge.Notify never fails.
func newGaugeValue(v interface{}) GaugeValue {
	switch n := v.(type) {
	case nil:
		return GaugeValue{kind: GaugeValueNil}
	case int64:
		return GaugeValue{kind: GaugeValueInt64, i: n}
	case int:
		return GaugeValue{kind: GaugeValueInt64, i: int64(n)}
	case int32:
		return GaugeValue{kind: GaugeValueInt64, i: int64(n)}
	case float64:
		return GaugeValue{kind: GaugeValueFloat64, f: n}
	case float32:
		return GaugeValue{kind: GaugeValueFloat64, f: float64(n)}
	case string:
		return GaugeValue{kind: GaugeValueString, s: n}
	case bool:
		return GaugeValue{kind: GaugeValueBool, b: n}
	default:
		return GaugeValue{kind: GaugeValueString, s: jsonStringify(n)}
	}
}

func jsonStringify(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Kind reports which variant this value holds.
func (g GaugeValue) Kind() GaugeValueKind { return g.kind }

// Interface returns the value as its underlying Go type, the representation
// Gauge.Raw() hands back to callers.
func (g GaugeValue) Interface() interface{} {
	switch g.kind {
	case GaugeValueInt64:
		return g.i
	case GaugeValueFloat64:
		return g.f
	case GaugeValueString:
		return g.s
	case GaugeValueBool:
		return g.b
	default:
		return nil
	}
}

// MarshalJSON follows the tag: a GaugeValueInt64 marshals as a JSON number
// from its int64 payload, never through Go's generic interface{} encoding.
func (g GaugeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Interface())
}

// Gauge holds a single tagged value, last-writer-wins.
type Gauge struct {
	mu    sync.Mutex
	value GaugeValue
}

// newGaugeInstrument builds a Gauge with a nil initial value.
func newGaugeInstrument() *Gauge {
	return &Gauge{value: GaugeValue{kind: GaugeValueNil}}
}

// Kind identifies this instrument as a gauge.
func (g *Gauge) Kind() Kind { return KindGauge }

// Notify replaces the gauge's value unconditionally; a gauge accepts any
// type, so this never fails.
func (g *Gauge) Notify(v interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.value = newGaugeValue(v)
	return nil
}

// Get returns {kind: "gauge", value}, with value following the tagged
// variant's JSON encoding.
func (g *Gauge) Get() Summary {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Summary{
		"kind":  string(KindGauge),
		"value": g.value,
	}
}

// Raw returns the gauge's current value as its underlying Go type.
func (g *Gauge) Raw() interface{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value.Interface()
}
