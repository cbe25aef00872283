package metrics

import (
	"testing"
	"time"

	"github.com/appmetrics/appmetrics/clock"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSlidingTimeReservoirWindow(t *testing.T) {
	Convey("Given a sliding-time reservoir with a 10s window", t, func() {
		clk := clock.NewFakeClock(0)
		r := NewSlidingTimeReservoir(clk, 10)

		Convey("Entries within the window all survive", func() {
			r.Add(1)
			clk.Advance(4 * time.Second)
			r.Add(2)
			So(r.Size(), ShouldEqual, 2)
		})

		Convey("Entries older than the window are purged on Add", func() {
			r.Add(1)
			clk.Advance(11 * time.Second)
			r.Add(2)
			values := valuesOf(r.Snapshot())
			So(values, ShouldResemble, []float64{2})
		})

		Convey("Entries are also purged on a bare Snapshot, with no intervening Add", func() {
			r.Add(1)
			clk.Advance(5 * time.Second)
			r.Add(2)
			clk.Advance(6 * time.Second)

			for _, s := range r.Snapshot() {
				So(s.Value, ShouldEqual, 2)
			}
		})

		Convey("Count tracks every Add regardless of expiry", func() {
			r.Add(1)
			clk.Advance(20 * time.Second)
			r.Add(2)
			r.Add(3)
			So(r.Count(), ShouldEqual, int64(3))
			So(r.Size(), ShouldEqual, 2)
		})
	})
}
