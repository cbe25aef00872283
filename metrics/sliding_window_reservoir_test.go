package metrics

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSlidingWindowReservoir(t *testing.T) {
	Convey("Given a sliding-count reservoir of size 3", t, func() {
		r := NewSlidingWindowReservoir(3)

		Convey("It holds every value until capacity is reached", func() {
			r.Add(1)
			r.Add(2)
			So(r.Size(), ShouldEqual, 2)
			values := valuesOf(r.Snapshot())
			So(values, ShouldResemble, []float64{1, 2})
		})

		Convey("On overflow, it drops the oldest (FIFO)", func() {
			r.Add(1)
			r.Add(2)
			r.Add(3)
			r.Add(4)
			So(r.Size(), ShouldEqual, 3)
			So(r.Count(), ShouldEqual, int64(4))
			values := valuesOf(r.Snapshot())
			So(values, ShouldResemble, []float64{2, 3, 4})
		})

		Convey("It never exceeds capacity across many insertions", func() {
			for i := 0; i < 500; i++ {
				r.Add(float64(i))
			}
			So(r.Size(), ShouldEqual, 3)
			values := valuesOf(r.Snapshot())
			So(values, ShouldResemble, []float64{497, 498, 499})
		})
	})
}

func valuesOf(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}
