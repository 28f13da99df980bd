package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/sim"
	"github.com/pthm-cable/serpent/telemetry"
)

// Fitness weights.
const (
	warmupWindows = 2   // skip the windows where the chain unfolds from its start layout
	bendWeight    = 4.0 // penalty per squared relative excess of p90 bend
)

// Score summarizes the windows of one evaluation.
type Score struct {
	CorrectionRate float64
	BendP90        float64
	Windows        int
}

// FitnessEvaluator runs headless solver runs and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
	mode       string
	maxBend    float64

	mu        sync.Mutex
	lastScore Score
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, mode string, maxBend float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		mode:       mode,
		maxBend:    maxBend,
	}
}

// LastScore returns the averaged score from the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() Score {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Seeds run concurrently, each on its own run and config copy.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	scores := make([]Score, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows, err := fe.runSolver(x, s)
			if err != nil {
				errs[idx] = err
				return
			}
			scores[idx] = scoreWindows(windows)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	var avg Score
	for i, sc := range scores {
		if errs[i] != nil || sc.Windows == 0 {
			return math.Inf(1)
		}
		total += fe.computeFitness(sc)
		avg.CorrectionRate += sc.CorrectionRate
		avg.BendP90 += sc.BendP90
		avg.Windows += sc.Windows
	}

	n := float64(len(fe.seeds))
	avg.CorrectionRate /= n
	avg.BendP90 /= n
	fe.mu.Lock()
	fe.lastScore = avg
	fe.mu.Unlock()

	return total / n
}

// runSolver executes one headless run and returns its window stats.
func (fe *FitnessEvaluator) runSolver(x []float64, seed int64) ([]telemetry.WindowStats, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("candidate config: %w", err)
	}

	mode, err := components.ParseSteerMode(fe.mode)
	if err != nil {
		return nil, err
	}

	var windows []telemetry.WindowStats
	r, err := sim.NewRun(cfg, seed, mode, func(stats telemetry.WindowStats) {
		windows = append(windows, stats)
	})
	if err != nil {
		return nil, err
	}

	for r.Tick() < fe.maxTicks {
		r.Step()
	}
	return windows, nil
}

// copyConfig returns a copy of the base config whose fold band can be
// changed independently. Creature definitions are shared read-only.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// scoreWindows averages correction rate and p90 bend past the warmup.
func scoreWindows(windows []telemetry.WindowStats) Score {
	if len(windows) <= warmupWindows {
		return Score{}
	}
	valid := windows[warmupWindows:]

	var sc Score
	for _, w := range valid {
		sc.CorrectionRate += w.CorrectionRate
		sc.BendP90 += w.BendP90
	}
	sc.Windows = len(valid)
	sc.CorrectionRate /= float64(sc.Windows)
	sc.BendP90 /= float64(sc.Windows)
	return sc
}

// computeFitness trades fold corrections against joint bend: a band wide
// enough to never correct still loses once the p90 bend passes maxBend.
func (fe *FitnessEvaluator) computeFitness(sc Score) float64 {
	excess := math.Max(0, sc.BendP90-fe.maxBend) / fe.maxBend
	return sc.CorrectionRate + bendWeight*excess*excess
}
