package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated solver statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`
	Ticks           int   `csv:"ticks"`
	Creatures       int   `csv:"creatures"`

	// Fold corrections during the window
	Corrections    int     `csv:"corrections"`
	CorrectionsCW  int     `csv:"corrections_cw"`
	CorrectionsCCW int     `csv:"corrections_ccw"`
	CorrectionRate float64 `csv:"correction_rate"` // per creature per tick

	// Joint bend distribution (degrees, sampled every tick)
	BendMean float64 `csv:"bend_mean"`
	BendStd  float64 `csv:"bend_std"`
	BendP50  float64 `csv:"bend_p50"`
	BendP90  float64 `csv:"bend_p90"`
	BendMax  float64 `csv:"bend_max"`

	HeadTravel float64 `csv:"head_travel"` // summed over creatures
	MaxStretch float64 `csv:"max_stretch"` // worst link error seen
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// BendStats summarizes a set of joint bends. values is sorted in place.
func BendStats(values []float64) (mean, std, p50, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}
	sort.Float64s(values)
	if n == 1 {
		return values[0], 0, values[0], values[0], values[0]
	}
	mean, std = stat.MeanStdDev(values, nil)
	return mean, std, Percentile(values, 0.5), Percentile(values, 0.9), values[n-1]
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("creatures", s.Creatures),
		slog.Int("corrections", s.Corrections),
		slog.Int("corrections_cw", s.CorrectionsCW),
		slog.Int("corrections_ccw", s.CorrectionsCCW),
		slog.Float64("correction_rate", s.CorrectionRate),
		slog.Float64("bend_mean", s.BendMean),
		slog.Float64("bend_std", s.BendStd),
		slog.Float64("bend_p50", s.BendP50),
		slog.Float64("bend_p90", s.BendP90),
		slog.Float64("bend_max", s.BendMax),
		slog.Float64("head_travel", s.HeadTravel),
		slog.Float64("max_stretch", s.MaxStretch),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
