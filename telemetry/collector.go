// Package telemetry provides solver statistics, bookmarks, snapshots and
// performance tracking.
package telemetry

import "github.com/pthm-cable/serpent/spine"

// Collector accumulates solver results within a window of ticks and
// produces WindowStats.
type Collector struct {
	windowTicks     int32
	windowStartTick int32

	ticks          int
	corrections    int
	correctionsCW  int
	correctionsCCW int
	headTravel     float64
	maxStretch     float64
	bends          []float64
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int32(windowTicks)}
}

// RecordReport folds one creature's tick report into the window.
// Only the last correction's side is known per report, so the side
// counters attribute every correction of that tick to it.
func (c *Collector) RecordReport(r spine.Report) {
	c.corrections += r.Corrections
	c.headTravel += r.HeadStep
	if r.Corrections == 0 {
		return
	}
	switch r.Last.Side {
	case spine.SideLeft:
		c.correctionsCCW += r.Corrections
	case spine.SideRight:
		c.correctionsCW += r.Corrections
	}
}

// RecordBends adds joint bend samples (degrees) to the window.
func (c *Collector) RecordBends(bends []float64) {
	c.bends = append(c.bends, bends...)
}

// RecordStretch tracks the worst link error seen in the window.
func (c *Collector) RecordStretch(s float64) {
	if s > c.maxStretch {
		c.maxStretch = s
	}
}

// EndTick marks the end of one simulation tick.
func (c *Collector) EndTick() {
	c.ticks++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, creatures int) WindowStats {
	mean, std, p50, p90, max := BendStats(c.bends)

	var rate float64
	if c.ticks > 0 && creatures > 0 {
		rate = float64(c.corrections) / float64(c.ticks*creatures)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Ticks:           c.ticks,
		Creatures:       creatures,
		Corrections:     c.corrections,
		CorrectionsCW:   c.correctionsCW,
		CorrectionsCCW:  c.correctionsCCW,
		CorrectionRate:  rate,
		BendMean:        mean,
		BendStd:         std,
		BendP50:         p50,
		BendP90:         p90,
		BendMax:         max,
		HeadTravel:      c.headTravel,
		MaxStretch:      c.maxStretch,
	}

	c.windowStartTick = currentTick
	c.ticks = 0
	c.corrections = 0
	c.correctionsCW = 0
	c.correctionsCCW = 0
	c.headTravel = 0
	c.maxStretch = 0
	c.bends = c.bends[:0]

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int32 {
	return c.windowTicks
}
