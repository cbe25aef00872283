package metrics

import (
	"testing"

	"github.com/appmetrics/appmetrics/clock"
	"github.com/appmetrics/appmetrics/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger counts Info/Warning calls; Clone returns itself so the
// count survives the Clone().String(...).Info(...) call chain Registry
// uses.
type recordingLogger struct {
	noopLogger
	infos, warnings *int
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{infos: new(int), warnings: new(int)}
}

func (l *recordingLogger) Info(args ...interface{})                { *l.infos++ }
func (l *recordingLogger) Warning(args ...interface{})             { *l.warnings++ }
func (l *recordingLogger) Clone() logging.Logger                   { return l }
func (l *recordingLogger) String(key, value string) logging.Logger { return l }

func newTestRegistry() *Registry {
	return NewRegistry(clock.NewFakeClock(0))
}

func TestRegistryCounterIdempotence(t *testing.T) {
	r := newTestRegistry()

	c1, err := r.NewCounter("x")
	require.NoError(t, err)
	c2, err := r.NewCounter("x")
	require.NoError(t, err)

	assert.Same(t, c1, c2, "a second New for the same name and kind must return the same instrument")

	_, err = r.NewGauge("x")
	require.Error(t, err)
	assert.IsType(t, DuplicateMetricError{}, err)
}

func TestRegistryHistogramDuplicateOptsMismatch(t *testing.T) {
	r := newTestRegistry()

	_, err := r.NewHistogram("h", UniformReservoirOpts(10))
	require.NoError(t, err)

	_, err = r.NewHistogram("h", UniformReservoirOpts(20))
	require.Error(t, err)
	assert.IsType(t, DuplicateMetricError{}, err)

	same, err := r.NewHistogram("h", UniformReservoirOpts(10))
	require.NoError(t, err)
	assert.NotNil(t, same)
}

func TestRegistryMetricNotFound(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Metric("missing")
	require.Error(t, err)
	assert.IsType(t, InvalidMetricError{}, err)
}

func TestRegistryTagDetachmentOnDelete(t *testing.T) {
	r := newTestRegistry()

	_, err := r.NewCounter("a")
	require.NoError(t, err)
	_, err = r.NewCounter("b")
	require.NoError(t, err)

	require.NoError(t, r.Tag("a", "group"))
	require.NoError(t, r.Tag("b", "group"))
	require.NoError(t, r.Tag("a", "solo"))

	r.Delete("a")

	tags := r.Tags()
	assert.ElementsMatch(t, []string{"b"}, tags["group"])
	_, soloStillExists := tags["solo"]
	assert.False(t, soloStillExists, "a tag with no remaining members must disappear")

	_, err = r.Metric("a")
	require.Error(t, err)
}

func TestRegistryUntagReportsWhetherRemovalHappened(t *testing.T) {
	r := newTestRegistry()
	_, err := r.NewCounter("a")
	require.NoError(t, err)
	require.NoError(t, r.Tag("a", "group"))

	assert.True(t, r.Untag("a", "group"))
	assert.False(t, r.Untag("a", "group"), "untagging an already-absent membership reports false")
	assert.False(t, r.Untag("a", "nonexistent-tag"))
}

func TestRegistryByTagAbsentTagIsEmpty(t *testing.T) {
	r := newTestRegistry()
	assert.Empty(t, r.ByTag("nothing-here"))
}

func TestRegistryByTagReturnsSummaries(t *testing.T) {
	r := newTestRegistry()
	c, err := r.NewCounter("requests")
	require.NoError(t, err)
	require.NoError(t, c.Notify(5))
	require.NoError(t, r.Tag("requests", "http"))

	summaries := r.ByTag("http")
	require.Contains(t, summaries, "requests")
	assert.Equal(t, int64(5), summaries["requests"]["value"])
}

func TestRegistryListIsSorted(t *testing.T) {
	r := newTestRegistry()
	for _, name := range []string{"zebra", "alpha", "mid"} {
		_, err := r.NewCounter(name)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"alpha", "mid", "zebra"}, r.List())
}

// TestEndToEndE1 is spec scenario E1.
func TestEndToEndE1(t *testing.T) {
	r := newTestRegistry()
	c, err := r.NewCounter("c")
	require.NoError(t, err)
	require.NoError(t, c.Notify(10))
	require.NoError(t, c.Notify(-3))
	assert.Equal(t, Summary{"kind": "counter", "value": int64(7)}, c.Get())
}

// TestEndToEndE5 is spec scenario E5.
func TestEndToEndE5(t *testing.T) {
	r := newTestRegistry()
	_, err := r.NewHistogram("h", UniformReservoirOpts(0))
	require.NoError(t, err)
	require.NoError(t, r.Tag("h", "g"))
	r.Delete("h")
	assert.Empty(t, r.Tags())
}

// TestEndToEndE6 is spec scenario E6.
func TestEndToEndE6(t *testing.T) {
	r := newTestRegistry()
	h, err := r.NewHistogram("h", SlidingTimeReservoirOpts(30))
	require.NoError(t, err)
	assert.Equal(t, "histogram", h.Get()["kind"])
}

func TestRegistryLogsLifecycleEvents(t *testing.T) {
	r := newTestRegistry()
	logger := newRecordingLogger()
	r.SetLogger(logger)

	_, err := r.NewCounter("requests")
	require.NoError(t, err)
	assert.Equal(t, 1, *logger.infos, "creating a new metric should log once")

	_, err = r.NewCounter("requests")
	require.NoError(t, err)
	assert.Equal(t, 1, *logger.infos, "re-fetching an existing metric of the same kind is not a create")

	_, err = r.NewGauge("requests")
	require.Error(t, err)
	assert.Equal(t, 1, *logger.warnings, "a duplicate-kind request should log a warning")

	r.Delete("requests")
	assert.Equal(t, 2, *logger.infos, "deleting an existing metric should log once")

	r.Delete("requests")
	assert.Equal(t, 2, *logger.infos, "deleting an already-absent metric should not log again")
}

func TestRegistryDefaultLoggerIsNoop(t *testing.T) {
	r := newTestRegistry()
	assert.NotPanics(t, func() {
		_, _ = r.NewCounter("requests")
		r.Delete("requests")
	})
}
