package game

import "time"

// perfSamples is roughly two seconds of frames at 60fps.
const perfSamples = 120

// phaseRing is a fixed-size ring of durations for one phase.
type phaseRing struct {
	buf   [perfSamples]time.Duration
	next  int
	count int
	sum   time.Duration
}

func (r *phaseRing) add(d time.Duration) {
	if r.count == perfSamples {
		r.sum -= r.buf[r.next]
	} else {
		r.count++
	}
	r.buf[r.next] = d
	r.sum += d
	r.next = (r.next + 1) % perfSamples
}

func (r *phaseRing) avg() time.Duration {
	if r.count == 0 {
		return 0
	}
	return r.sum / time.Duration(r.count)
}

// PerfStats tracks recent per-frame time of each registered phase for the
// on-screen panel. Window telemetry uses telemetry.PerfCollector instead.
type PerfStats struct {
	phases map[string]*phaseRing
}

// NewPerfStats creates a new performance stats tracker.
func NewPerfStats() *PerfStats {
	return &PerfStats{phases: make(map[string]*phaseRing)}
}

// Record adds a duration sample for the named phase.
func (p *PerfStats) Record(name string, d time.Duration) {
	r, ok := p.phases[name]
	if !ok {
		r = &phaseRing{}
		p.phases[name] = r
	}
	r.add(d)
}

// Avg returns the average duration for the named phase.
func (p *PerfStats) Avg(name string) time.Duration {
	if r, ok := p.phases[name]; ok {
		return r.avg()
	}
	return 0
}

// Total returns the sum of all average durations.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for _, r := range p.phases {
		total += r.avg()
	}
	return total
}

// Averages returns the average duration of every recorded phase.
func (p *PerfStats) Averages() map[string]time.Duration {
	out := make(map[string]time.Duration, len(p.phases))
	for name, r := range p.phases {
		out[name] = r.avg()
	}
	return out
}
