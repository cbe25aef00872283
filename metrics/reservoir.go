package metrics

import (
	"sync/atomic"

	"github.com/appmetrics/appmetrics/clock"
)

// Sample is one observation held by a Reservoir. Weight is 1 for every
// reservoir discipline except ExpDecaying, where it is the observation's
// forward-decay priority.
type Sample struct {
	Value  float64
	Weight float64
}

// Reservoir holds a bounded multiset of observations. Add is O(1)
// amortized; Snapshot is a read-only copy safe to read after the call
// returns, even while concurrent Adds continue.
type Reservoir interface {
	// Add records a new observation.
	Add(value float64)
	// Size returns the number of observations currently held.
	Size() int
	// Count returns the total number of Add calls ever made, independent
	// of how many are currently retained.
	Count() int64
	// Snapshot returns the current sample as an ordered sequence of
	// (value, weight) pairs.
	Snapshot() []Sample
}

// reservoirNonce gives every reservoir a process-unique seed component, so
// that two reservoirs constructed in the same clock tick still sample
// independently.
var reservoirNonce int64

func nextNonce() int64 {
	return atomic.AddInt64(&reservoirNonce, 1)
}

// seedFrom derives an RNG seed from the current clock reading and the
// process-unique nonce, per the concurrency model's requirement that each
// reservoir own its own seeded RNG.
func seedFrom(clk clock.Clock) int64 {
	t := clk.Now()
	return int64(t*1e9) ^ nextNonce()
}

// Default reservoir construction parameters (§4.B).
const (
	DefaultReservoirSize  = 1028
	DefaultDecayAlpha     = 0.015
	DefaultRescaleSeconds = 3600.0
	DefaultWindowSeconds  = 60.0
)

// ReservoirKind names the sampling discipline backing a Histogram, per the
// enumeration in spec §6.
type ReservoirKind string

const (
	ReservoirUniform      ReservoirKind = "uniform"
	ReservoirSlidingCount ReservoirKind = "sliding_window"
	ReservoirSlidingTime  ReservoirKind = "sliding_time"
	ReservoirExpDecaying  ReservoirKind = "exp_decaying"
)

// ReservoirOpts is the tagged union behind new_histogram's reservoir
// kwargs (design note §9): a single struct carrying the fields relevant to
// whichever Kind is set, with an Equal method the registry uses to decide
// whether a re-`New` call is idempotent.
type ReservoirOpts struct {
	Kind ReservoirKind

	// Size applies to Uniform, SlidingCount and ExpDecaying.
	Size int
	// WindowSeconds applies to SlidingTime.
	WindowSeconds float64
	// Alpha and RescaleSeconds apply to ExpDecaying.
	Alpha          float64
	RescaleSeconds float64
}

// UniformReservoirOpts returns opts for a Uniform reservoir of the given
// size, or DefaultReservoirSize if size is 0.
func UniformReservoirOpts(size int) ReservoirOpts {
	if size == 0 {
		size = DefaultReservoirSize
	}
	return ReservoirOpts{Kind: ReservoirUniform, Size: size}
}

// SlidingWindowReservoirOpts returns opts for a SlidingCount reservoir of
// the given size, or DefaultReservoirSize if size is 0.
func SlidingWindowReservoirOpts(size int) ReservoirOpts {
	if size == 0 {
		size = DefaultReservoirSize
	}
	return ReservoirOpts{Kind: ReservoirSlidingCount, Size: size}
}

// SlidingTimeReservoirOpts returns opts for a SlidingTime reservoir with
// the given window, or DefaultWindowSeconds if window is 0.
func SlidingTimeReservoirOpts(windowSeconds float64) ReservoirOpts {
	if windowSeconds == 0 {
		windowSeconds = DefaultWindowSeconds
	}
	return ReservoirOpts{Kind: ReservoirSlidingTime, WindowSeconds: windowSeconds}
}

// ExpDecayingReservoirOpts returns opts for an ExpDecaying reservoir,
// applying defaults to any zero field.
func ExpDecayingReservoirOpts(size int, alpha, rescaleSeconds float64) ReservoirOpts {
	if size == 0 {
		size = DefaultReservoirSize
	}
	if alpha == 0 {
		alpha = DefaultDecayAlpha
	}
	if rescaleSeconds == 0 {
		rescaleSeconds = DefaultRescaleSeconds
	}
	return ReservoirOpts{Kind: ReservoirExpDecaying, Size: size, Alpha: alpha, RescaleSeconds: rescaleSeconds}
}

// Equal reports whether two ReservoirOpts describe the same reservoir,
// which is what the registry needs to decide idempotence in New. Two zero
// values (the opts stored for counters, gauges and meters) are equal.
func (o ReservoirOpts) Equal(other ReservoirOpts) bool {
	if o.Kind != other.Kind {
		return false
	}
	switch o.Kind {
	case "":
		return true
	case ReservoirUniform, ReservoirSlidingCount:
		return o.Size == other.Size
	case ReservoirSlidingTime:
		return o.WindowSeconds == other.WindowSeconds
	case ReservoirExpDecaying:
		return o.Size == other.Size && o.Alpha == other.Alpha && o.RescaleSeconds == other.RescaleSeconds
	default:
		return false
	}
}

// Validate checks the invariants from spec §7 (InvalidConfigError: invalid
// reservoir size, negative window, alpha <= 0). An unknown Kind is an
// InvalidMetricError.
func (o ReservoirOpts) Validate() error {
	switch o.Kind {
	case ReservoirUniform, ReservoirSlidingCount:
		if o.Size <= 0 {
			return NewInvalidConfigError("reservoir size must be positive")
		}
	case ReservoirSlidingTime:
		if o.WindowSeconds < 0 {
			return NewInvalidConfigError("window must not be negative")
		}
	case ReservoirExpDecaying:
		if o.Size <= 0 {
			return NewInvalidConfigError("reservoir size must be positive")
		}
		if o.Alpha <= 0 {
			return NewInvalidConfigError("alpha must be positive")
		}
		if o.RescaleSeconds <= 0 {
			return NewInvalidConfigError("rescale interval must be positive")
		}
	default:
		return NewInvalidMetricError(string(o.Kind))
	}
	return nil
}

// NewReservoir builds the Reservoir named by opts.Kind.
func NewReservoir(clk clock.Clock, opts ReservoirOpts) (Reservoir, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch opts.Kind {
	case ReservoirUniform:
		return NewUniformReservoir(clk, opts.Size), nil
	case ReservoirSlidingCount:
		return NewSlidingWindowReservoir(opts.Size), nil
	case ReservoirSlidingTime:
		return NewSlidingTimeReservoir(clk, opts.WindowSeconds), nil
	case ReservoirExpDecaying:
		return NewExpDecayingReservoir(clk, opts.Size, opts.Alpha, opts.RescaleSeconds), nil
	default:
		return nil, NewInvalidMetricError(string(opts.Kind))
	}
}
