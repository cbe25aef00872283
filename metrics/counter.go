package metrics

import "sync/atomic"

// Counter is an atomic, signed 64-bit accumulator.
type Counter struct {
	value int64
}

// newCounterInstrument builds an empty Counter.
func newCounterInstrument() *Counter {
	return &Counter{}
}

// Kind identifies this instrument as a counter.
func (c *Counter) Kind() Kind { return KindCounter }

// Notify coerces v to an integer and atomically adds it, accepting
// negative values. A non-numeric v returns InputTypeError and leaves the
// counter unchanged.
func (c *Counter) Notify(v interface{}) error {
	n, ok := coerceInt64(v)
	if !ok {
		return NewInputTypeError("counter", v)
	}
	atomic.AddInt64(&c.value, n)
	return nil
}

// Get returns {kind: "counter", value}.
func (c *Counter) Get() Summary {
	return Summary{
		"kind":  string(KindCounter),
		"value": atomic.LoadInt64(&c.value),
	}
}

// Raw returns the counter's current value.
func (c *Counter) Raw() interface{} {
	return atomic.LoadInt64(&c.value)
}

// Value returns the counter's current value as a plain int64, for callers
// that don't need the Instrument interface.
func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.value)
}
