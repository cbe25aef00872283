package csvreport

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/appmetrics/appmetrics/clock"
	"github.com/appmetrics/appmetrics/metrics"
)

// histogramHeader and meterHeader mirror the original CSVReporter's flat
// column layout: histograms don't fit a tabular format so their
// histogram/kind fields are dropped and percentiles are flattened into
// named columns; meters are reported as-is plus a timestamp.
var (
	histogramHeader = []string{
		"time", "n", "min", "max", "arithmetic_mean", "median", "harmonic_mean",
		"geometric_mean", "standard_deviation", "variance", "percentile_50",
		"percentile_75", "percentile_90", "percentile_95", "percentile_99",
		"percentile_99.9", "kurtosis", "skewness",
	}
	meterHeader = []string{"time", "count", "mean", "one", "five", "fifteen", "day"}
)

// Reporter writes one CSV file per (metric name, kind) pair into a
// directory, appending a row on every Write call and writing the header
// only the first time a file is created.
type Reporter struct {
	directory string
	clk       clock.Clock
}

// NewReporter builds a Reporter writing into directory, timestamping rows
// with clk.
func NewReporter(directory string, clk clock.Clock) *Reporter {
	return &Reporter{directory: directory, clk: clk}
}

// Write dumps every histogram and meter currently in tag to their CSV
// files. Counters and gauges aren't part of the original tabular format
// and are skipped, matching dump_histogram/dump_meter being the only
// dispatchable methods on the reference CSVReporter.
func (r *Reporter) Write(registry *metrics.Registry, tag string) error {
	for name, summary := range registry.ByTag(tag) {
		kind, _ := summary["kind"].(string)
		switch metrics.Kind(kind) {
		case metrics.KindHistogram:
			if err := r.writeRow(name, "histogram", histogramHeader, r.histogramRow(summary)); err != nil {
				return err
			}
		case metrics.KindMeter:
			if err := r.writeRow(name, "meter", meterHeader, r.meterRow(summary)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Reporter) histogramRow(s metrics.Summary) []string {
	percentiles := map[string]float64{}
	if pts, ok := s["percentile"].([][2]float64); ok {
		for _, pt := range pts {
			percentiles[formatPercentileLabel(pt[0])] = pt[1]
		}
	}
	return []string{
		formatFloat(r.clk.Now()),
		fmt.Sprintf("%v", s["n"]),
		formatFloat(toFloat(s["min"])),
		formatFloat(toFloat(s["max"])),
		formatFloat(toFloat(s["arithmetic_mean"])),
		formatFloat(toFloat(s["median"])),
		formatFloat(toFloat(s["harmonic_mean"])),
		formatFloat(toFloat(s["geometric_mean"])),
		formatFloat(toFloat(s["standard_deviation"])),
		formatFloat(toFloat(s["variance"])),
		formatFloat(percentiles["50"]),
		formatFloat(percentiles["75"]),
		formatFloat(percentiles["90"]),
		formatFloat(percentiles["95"]),
		formatFloat(percentiles["99"]),
		formatFloat(percentiles["99.9"]),
		formatFloat(toFloat(s["kurtosis"])),
		formatFloat(toFloat(s["skewness"])),
	}
}

func (r *Reporter) meterRow(s metrics.Summary) []string {
	return []string{
		formatFloat(r.clk.Now()),
		fmt.Sprintf("%v", s["count"]),
		formatFloat(toFloat(s["mean"])),
		formatFloat(toFloat(s["one"])),
		formatFloat(toFloat(s["five"])),
		formatFloat(toFloat(s["fifteen"])),
		formatFloat(toFloat(s["day"])),
	}
}

func (r *Reporter) writeRow(name, kind string, header, row []string) error {
	path := filepath.Join(r.directory, fmt.Sprintf("%s_%s.csv", name, kind))
	_, err := os.Stat(path)
	isNew := os.IsNotExist(err)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func formatPercentileLabel(p float64) string {
	if p == float64(int64(p)) {
		return strconv.FormatInt(int64(p), 10)
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toFloat(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}
