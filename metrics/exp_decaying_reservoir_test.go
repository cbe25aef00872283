package metrics

import (
	"testing"
	"time"

	"github.com/appmetrics/appmetrics/clock"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExpDecayingReservoirCapacity(t *testing.T) {
	Convey("Given an exp-decaying reservoir of size 5", t, func() {
		clk := clock.NewFakeClock(1000)
		r := NewExpDecayingReservoir(clk, 5, DefaultDecayAlpha, DefaultRescaleSeconds)

		Convey("It never holds more than capacity, however many values are added", func() {
			for i := 0; i < 500; i++ {
				r.Add(float64(i))
			}
			So(r.Size(), ShouldBeLessThanOrEqualTo, 5)
			So(r.Count(), ShouldEqual, int64(500))
		})

		Convey("Every snapshot entry carries a positive priority weight", func() {
			for i := 0; i < 10; i++ {
				r.Add(float64(i))
			}
			for _, s := range r.Snapshot() {
				So(s.Weight, ShouldBeGreaterThan, 0)
			}
		})
	})
}

func TestExpDecayingReservoirMinPriorityMonotonic(t *testing.T) {
	Convey("Given a full exp-decaying reservoir between rescales", t, func() {
		clk := clock.NewFakeClock(0)
		r := NewExpDecayingReservoir(clk, 3, DefaultDecayAlpha, DefaultRescaleSeconds)

		for i := 0; i < 3; i++ {
			r.Add(float64(i))
		}

		Convey("the minimum stored priority never decreases as new values are added", func() {
			minPriority := func() float64 {
				m := r.heap[0].priority
				for _, e := range r.heap {
					if e.priority < m {
						m = e.priority
					}
				}
				return m
			}

			last := minPriority()
			for i := 0; i < 200; i++ {
				clk.Advance(time.Second)
				r.Add(float64(i + 100))
				current := minPriority()
				So(current, ShouldBeGreaterThanOrEqualTo, last)
				last = current
			}
		})
	})
}
