package metrics

import (
	"math"
	"sort"
)

// PercentileLevels are the percentiles reported in every Summary's
// Percentiles field, per §4.D.
var PercentileLevels = []float64{50, 75, 90, 95, 99, 99.9}

// Statistics is the weighted-statistics kernel's output: the full set of
// fields §4.D defines over a (possibly weighted) sample.
type Statistics struct {
	N                 int64
	Min               float64
	Max               float64
	ArithmeticMean    float64
	Variance          float64
	StandardDeviation float64
	GeometricMean     float64
	HarmonicMean      float64
	Median            float64
	Percentiles       []PercentilePoint
	Skewness          float64
	Kurtosis          float64
	Histogram         []HistogramBin
}

// PercentilePoint is one (p, value) entry of Statistics.Percentiles.
type PercentilePoint struct {
	P     float64
	Value float64
}

// HistogramBin is one (bin_upper_bound, count) entry of an auto-binned
// histogram.
type HistogramBin struct {
	UpperBound float64
	Count      int64
}

// zeroStatistics is the §4.D error-policy result for an empty sample.
func zeroStatistics() Statistics {
	pts := make([]PercentilePoint, len(PercentileLevels))
	for i, p := range PercentileLevels {
		pts[i] = PercentilePoint{P: p, Value: 0}
	}
	return Statistics{
		Percentiles: pts,
		Histogram:   []HistogramBin{{UpperBound: 0, Count: 0}},
	}
}

// Compute runs the weighted-statistics kernel (§4.D) over samples, which
// need not be pre-sorted or pre-weighted (a zero Weight is treated as 1).
func Compute(samples []Sample) Statistics {
	n := len(samples)
	if n == 0 {
		return zeroStatistics()
	}

	sorted := make([]Sample, n)
	copy(sorted, samples)
	for i := range sorted {
		if sorted[i].Weight == 0 {
			sorted[i].Weight = 1
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })

	var sumW, sumWV float64
	min := sorted[0].Value
	max := sorted[0].Value
	for _, s := range sorted {
		sumW += s.Weight
		sumWV += s.Weight * s.Value
		if s.Value < min {
			min = s.Value
		}
		if s.Value > max {
			max = s.Value
		}
	}
	mean := sumWV / sumW

	stats := Statistics{
		N:              int64(n),
		Min:            min,
		Max:            max,
		ArithmeticMean: mean,
	}

	if n >= 2 {
		stats.Variance = weightedVariance(sorted, sumW, mean)
		stats.StandardDeviation = math.Sqrt(stats.Variance)
	}
	if stats.Variance > 0 {
		stats.Skewness = weightedMoment(sorted, sumW, mean, 3) / math.Pow(stats.StandardDeviation, 3)
		stats.Kurtosis = weightedMoment(sorted, sumW, mean, 4)/math.Pow(stats.StandardDeviation, 4) - 3
	}

	stats.GeometricMean = geometricMean(sorted, sumW)
	stats.HarmonicMean = harmonicMean(sorted, sumW)

	positions := cumulativePositions(sorted, sumW)
	stats.Median = percentileAt(sorted, positions, 0.5)
	stats.Percentiles = make([]PercentilePoint, len(PercentileLevels))
	for i, p := range PercentileLevels {
		stats.Percentiles[i] = PercentilePoint{P: p, Value: percentileAt(sorted, positions, p/100)}
	}

	stats.Histogram = autoBin(sorted, min, max, n)
	return stats
}

// weightedVariance is the Bessel-corrected ("reliability weights")
// two-pass weighted sample variance: Σwᵢ(vᵢ-mean)² / (V1 - V2/V1), with
// V1=Σwᵢ, V2=Σwᵢ². Returns 0 when V1 - V2/V1 is not positive (e.g. n==1,
// guarded above).
func weightedVariance(sorted []Sample, sumW, mean float64) float64 {
	var v1, v2, m2 float64
	for _, s := range sorted {
		v1 += s.Weight
		v2 += s.Weight * s.Weight
		d := s.Value - mean
		m2 += s.Weight * d * d
	}
	denom := v1 - v2/v1
	if denom <= 0 {
		return 0
	}
	return m2 / denom
}

// weightedMoment computes the compensated-summation weighted central
// moment Σwᵢ(vᵢ-mean)^k / Σwᵢ, used for skewness (k=3) and kurtosis (k=4).
func weightedMoment(sorted []Sample, sumW, mean float64, k int) float64 {
	var sum, c float64
	for _, s := range sorted {
		d := math.Pow(s.Value-mean, float64(k)) * s.Weight
		y := d - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum / sumW
}

func geometricMean(sorted []Sample, sumW float64) float64 {
	for _, s := range sorted {
		if s.Value <= 0 {
			return 0
		}
	}
	var sum float64
	for _, s := range sorted {
		sum += s.Weight * math.Log(s.Value)
	}
	return math.Exp(sum / sumW)
}

func harmonicMean(sorted []Sample, sumW float64) float64 {
	for _, s := range sorted {
		if s.Value <= 0 {
			return 0
		}
	}
	var sum float64
	for _, s := range sorted {
		sum += s.Weight / s.Value
	}
	if sum == 0 {
		return 0
	}
	return sumW / sum
}

// cumulativePositions assigns each (value-sorted) sample a position in
// [0,1]: the centered cumulative weight (cumulative weight strictly
// before this sample, plus half its own weight) divided by the total
// weight. Centering on the half-weight midpoint is what makes the median
// of an odd-sized, equally-weighted sample land exactly on its middle
// element rather than halfway into it.
func cumulativePositions(sorted []Sample, sumW float64) []float64 {
	positions := make([]float64, len(sorted))
	var cumBefore float64
	for i, s := range sorted {
		positions[i] = (cumBefore + s.Weight/2) / sumW
		cumBefore += s.Weight
	}
	return positions
}

// percentileAt finds the value at position p (in [0,1]) within a
// value-sorted, position-assigned sample, linearly interpolating between
// the two surrounding order statistics. p below the first position or
// above the last clamps to that extreme value.
func percentileAt(sorted []Sample, positions []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0].Value
	}
	if p <= positions[0] {
		return sorted[0].Value
	}
	last := len(sorted) - 1
	if p >= positions[last] {
		return sorted[last].Value
	}
	for i := 0; i < last; i++ {
		if p >= positions[i] && p <= positions[i+1] {
			span := positions[i+1] - positions[i]
			if span == 0 {
				return sorted[i].Value
			}
			frac := (p - positions[i]) / span
			return sorted[i].Value + frac*(sorted[i+1].Value-sorted[i].Value)
		}
	}
	return sorted[last].Value
}

// autoBin implements §4.D's literal auto-binning algorithm: bin width is
// 1.0 if the range is under 1, else the range divided by ceil(sqrt(n)),
// rounded to one significant digit. Bins start at min, extend rightward
// until they cover max, and are half-open except the final bin which is
// closed on the right.
func autoBin(sorted []Sample, min, max float64, n int) []HistogramBin {
	var width float64
	if max-min < 1 {
		width = 1.0
	} else {
		width = roundToOneSigFig((max - min) / math.Ceil(math.Sqrt(float64(n))))
	}
	if width <= 0 {
		width = 1.0
	}

	var bins []HistogramBin
	lower := min
	for {
		upper := lower + width
		bins = append(bins, HistogramBin{UpperBound: upper})
		if upper >= max {
			break
		}
		lower = upper
	}

	for _, s := range sorted {
		for i := range bins {
			isLast := i == len(bins)-1
			lo := min + float64(i)*width
			hi := bins[i].UpperBound
			if isLast {
				if s.Value >= lo && s.Value <= hi {
					bins[i].Count++
					break
				}
			} else if s.Value >= lo && s.Value < hi {
				bins[i].Count++
				break
			}
		}
	}
	return bins
}

// roundToOneSigFig rounds x to one significant decimal digit, e.g.
// 0.0347 -> 0.03, 234 -> 200, 1.6 -> 2.
func roundToOneSigFig(x float64) float64 {
	if x == 0 {
		return 0
	}
	sign := 1.0
	if x < 0 {
		sign = -1.0
		x = -x
	}
	exponent := math.Floor(math.Log10(x))
	factor := math.Pow(10, exponent)
	return sign * math.Round(x/factor) * factor
}
