package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterNotifyAndGet(t *testing.T) {
	c := newCounterInstrument()

	require.NoError(t, c.Notify(10))
	require.NoError(t, c.Notify(-3))

	assert.Equal(t, int64(7), c.Value())
	assert.Equal(t, Summary{"kind": "counter", "value": int64(7)}, c.Get())
}

func TestCounterRejectsNonNumeric(t *testing.T) {
	c := newCounterInstrument()
	require.NoError(t, c.Notify(5))

	err := c.Notify("not a number")
	require.Error(t, err)
	assert.IsType(t, InputTypeError{}, err)
	assert.Equal(t, int64(5), c.Value(), "a rejected Notify must not mutate the counter")
}

func TestCounterAcceptsCoercibleTypes(t *testing.T) {
	c := newCounterInstrument()
	require.NoError(t, c.Notify(int32(2)))
	require.NoError(t, c.Notify(3.9))
	require.NoError(t, c.Notify("4"))
	assert.Equal(t, int64(9), c.Value())
}
