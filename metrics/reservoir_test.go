package metrics

import (
	"testing"

	"github.com/appmetrics/appmetrics/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservoirOptsValidate(t *testing.T) {
	require.NoError(t, UniformReservoirOpts(10).Validate())
	require.Error(t, ReservoirOpts{Kind: ReservoirUniform, Size: 0}.Validate())

	require.NoError(t, SlidingTimeReservoirOpts(30).Validate())
	require.Error(t, ReservoirOpts{Kind: ReservoirSlidingTime, WindowSeconds: -1}.Validate())

	require.NoError(t, ExpDecayingReservoirOpts(10, 0.01, 60).Validate())
	require.Error(t, ReservoirOpts{Kind: ReservoirExpDecaying, Size: 10, Alpha: 0, RescaleSeconds: 60}.Validate())
	require.Error(t, ReservoirOpts{Kind: ReservoirExpDecaying, Size: 10, Alpha: 0.01, RescaleSeconds: 0}.Validate())
}

func TestReservoirOptsDefaults(t *testing.T) {
	assert.Equal(t, DefaultReservoirSize, UniformReservoirOpts(0).Size)
	assert.Equal(t, DefaultWindowSeconds, SlidingTimeReservoirOpts(0).WindowSeconds)
	opts := ExpDecayingReservoirOpts(0, 0, 0)
	assert.Equal(t, DefaultReservoirSize, opts.Size)
	assert.Equal(t, DefaultDecayAlpha, opts.Alpha)
	assert.Equal(t, DefaultRescaleSeconds, opts.RescaleSeconds)
}

func TestReservoirOptsEqual(t *testing.T) {
	assert.True(t, UniformReservoirOpts(10).Equal(UniformReservoirOpts(10)))
	assert.False(t, UniformReservoirOpts(10).Equal(UniformReservoirOpts(20)))
	assert.False(t, UniformReservoirOpts(10).Equal(SlidingWindowReservoirOpts(10)))
}

func TestNewReservoirDispatch(t *testing.T) {
	clk := clock.NewFakeClock(0)

	r, err := NewReservoir(clk, UniformReservoirOpts(5))
	require.NoError(t, err)
	_, ok := r.(*UniformReservoir)
	assert.True(t, ok)

	r, err = NewReservoir(clk, SlidingWindowReservoirOpts(5))
	require.NoError(t, err)
	_, ok = r.(*SlidingWindowReservoir)
	assert.True(t, ok)

	r, err = NewReservoir(clk, SlidingTimeReservoirOpts(5))
	require.NoError(t, err)
	_, ok = r.(*SlidingTimeReservoir)
	assert.True(t, ok)

	r, err = NewReservoir(clk, ExpDecayingReservoirOpts(5, 0.01, 60))
	require.NoError(t, err)
	_, ok = r.(*ExpDecayingReservoir)
	assert.True(t, ok)

	_, err = NewReservoir(clk, ReservoirOpts{Kind: "bogus"})
	require.Error(t, err)
}
