package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/serpent/spine"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestBendStats(t *testing.T) {
	values := []float64{20, 0, 10, 5, 15}
	mean, std, p50, p90, max := BendStats(values)

	if mean != 10 {
		t.Errorf("mean = %v, want 10", mean)
	}
	// Sample standard deviation of 0,5,10,15,20.
	if math.Abs(std-math.Sqrt(62.5)) > 1e-9 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(62.5))
	}
	if p50 != 10 || math.Abs(p90-18) > 1e-9 || max != 20 {
		t.Errorf("p50=%v p90=%v max=%v", p50, p90, max)
	}
}

func TestBendStatsSmall(t *testing.T) {
	if m, s, p50, p90, max := BendStats(nil); m != 0 || s != 0 || p50 != 0 || p90 != 0 || max != 0 {
		t.Error("empty slice should return all zeros")
	}
	if m, s, _, _, max := BendStats([]float64{7}); m != 7 || s != 0 || max != 7 {
		t.Errorf("single value: mean=%v std=%v max=%v", m, s, max)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)

	for tick := int32(1); tick <= 10; tick++ {
		for creature := 0; creature < 2; creature++ {
			r := spine.Report{HeadStep: 4}
			if tick%5 == 0 && creature == 0 {
				r.Corrections = 2
				r.Last = spine.Correction{Side: spine.SideRight}
			}
			c.RecordReport(r)
			c.RecordBends([]float64{0, 10})
		}
		c.RecordStretch(float64(tick) * 1e-9)
		c.EndTick()
		if c.ShouldFlush(tick) != (tick == 10) {
			t.Fatalf("ShouldFlush(%d) wrong for a 10 tick window", tick)
		}
	}

	s := c.Flush(10, 2)
	if s.Ticks != 10 || s.Creatures != 2 {
		t.Errorf("ticks=%d creatures=%d", s.Ticks, s.Creatures)
	}
	if s.Corrections != 4 || s.CorrectionsCW != 4 || s.CorrectionsCCW != 0 {
		t.Errorf("corrections=%d cw=%d ccw=%d", s.Corrections, s.CorrectionsCW, s.CorrectionsCCW)
	}
	if math.Abs(s.CorrectionRate-0.2) > 1e-12 {
		t.Errorf("rate = %v, want 0.2", s.CorrectionRate)
	}
	if math.Abs(s.HeadTravel-80) > 1e-12 {
		t.Errorf("head travel = %v, want 80", s.HeadTravel)
	}
	if s.BendMean != 5 || s.BendMax != 10 {
		t.Errorf("bend mean=%v max=%v", s.BendMean, s.BendMax)
	}
	if math.Abs(s.MaxStretch-1e-8) > 1e-15 {
		t.Errorf("max stretch = %v", s.MaxStretch)
	}

	// Counters reset for the next window.
	next := c.Flush(20, 2)
	if next.WindowStartTick != 10 || next.Corrections != 0 || next.Ticks != 0 || next.BendMax != 0 {
		t.Errorf("second window not reset: %+v", next)
	}
	if c.ShouldFlush(25) {
		t.Error("ShouldFlush(25) after flush at 20")
	}
}
