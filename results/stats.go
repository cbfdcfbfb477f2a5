package results

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
)

// LatencyStats is the per-cell latency distribution in milliseconds. All
// fields are NaN when the cell had no latency samples; NaN means "no data"
// and is never conflated with a real zero.
type LatencyStats struct {
	Average float64
	P0      float64
	P10     float64
	P90     float64
	P99     float64
	StdDev  float64
}

// column name stems, in artifact order
var latencyStatNames = []string{
	"Average Latency",
	"P0 Latency",
	"P10 Latency",
	"P90 Latency",
	"P99 Latency",
	"StdDev Latency",
}

func (s LatencyStats) values() []float64 {
	return []float64{s.Average, s.P0, s.P10, s.P90, s.P99, s.StdDev}
}

// computeStats summarizes latency samples given in seconds, scaled to
// milliseconds and rounded to digits. StdDev is the sample estimator (N-1).
func computeStats(samples []float64, digits int) LatencyStats {
	if len(samples) == 0 {
		nan := math.NaN()
		return LatencyStats{nan, nan, nan, nan, nan, nan}
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	return LatencyStats{
		Average: roundTo(stat.Mean(samples, nil)*1000, digits),
		P0:      roundTo(sorted[0]*1000, digits),
		P10:     roundTo(stat.Quantile(0.10, stat.LinInterp, sorted, nil)*1000, digits),
		P90:     roundTo(stat.Quantile(0.90, stat.LinInterp, sorted, nil)*1000, digits),
		P99:     roundTo(stat.Quantile(0.99, stat.LinInterp, sorted, nil)*1000, digits),
		StdDev:  roundTo(stat.StdDev(samples, nil)*1000, digits),
	}
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}

// ECDF returns the empirical CDF of the samples as plottable points.
func ECDF(samples []float64) plotter.XYs {
	n := len(samples)
	sorted := append([]float64(nil), samples...)
	stat.SortWeighted(sorted, nil)
	ecdfs := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		ecdfs[i].X = sorted[i]
		ecdfs[i].Y = stat.CDF(sorted[i], stat.Empirical, sorted, nil)
	}
	return ecdfs
}
