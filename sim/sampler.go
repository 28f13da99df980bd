package sim

import (
	"github.com/pthm-cable/serpent/spine"
	"github.com/pthm-cable/serpent/systems"
	"github.com/pthm-cable/serpent/telemetry"
)

// Sampler feeds each tick's per-creature results into a window collector
// and remembers the most recent fold correction.
type Sampler struct {
	Collector *telemetry.Collector

	Last    spine.Correction
	HasLast bool

	bends []float64
}

// NewSampler creates a sampler with a collector of windowTicks ticks.
func NewSampler(windowTicks int) *Sampler {
	return &Sampler{Collector: telemetry.NewCollector(windowTicks)}
}

// Record samples every creature after a solve.
func (s *Sampler) Record(f *CreatureFilter, sum systems.TickSummary) {
	query := f.Query()
	for query.Next() {
		_, sp, _, _, motion, _ := query.Get()

		s.Collector.RecordReport(motion.Last)
		if motion.Last.Corrections > 0 {
			s.Last = motion.Last.Last
			s.HasLast = true
		}

		s.bends = systems.JointBends(sp.Group, s.bends[:0])
		s.Collector.RecordBends(s.bends)
	}
	s.Collector.RecordStretch(sum.MaxStretch)
	s.Collector.EndTick()
}
