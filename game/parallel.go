package game

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/spine"
	"github.com/pthm-cable/serpent/systems"
)

// chainJob is one creature's tick of work. Chains share nothing, so each
// job is solved head to tail on a single worker.
type chainJob struct {
	group  *spine.NodeGroup
	target r2.Vec
	motion *components.Motion

	report  spine.Report
	stretch float64
}

// workChunk represents a range of jobs for a worker to process.
type workChunk struct {
	start, end int
}

// parallelState holds the worker pool for solving chains concurrently.
type parallelState struct {
	jobs       []chainJob
	numWorkers int

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState() *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		jobs:       make([]chainJob, 0, 64),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker solves chunks until stopped.
func (p *parallelState) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			for i := chunk.start; i < chunk.end; i++ {
				job := &p.jobs[i]
				job.group.SetTarget(job.target)
				job.report = job.group.Advance()
				job.stretch = systems.Stretch(job.group)
			}
			p.doneChan <- struct{}{}
		}
	}
}

// run solves every queued job and blocks until all are done.
func (p *parallelState) run() {
	n := len(p.jobs)
	if n == 0 {
		return
	}
	p.startWorkers()

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	chunks := 0
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		p.workChan <- workChunk{start: start, end: end}
		chunks++
	}
	for i := 0; i < chunks; i++ {
		<-p.doneChan
	}
}

// solveParallel is the worker-pool equivalent of ChainSystem.Solve.
func (g *Game) solveParallel() systems.TickSummary {
	p := g.parallel

	// Phase A: queue jobs (single-threaded, the world is not touched by workers)
	p.jobs = p.jobs[:0]
	query := g.creatureFilter.Query()
	for query.Next() {
		_, sp, target, _, motion, _ := query.Get()
		p.jobs = append(p.jobs, chainJob{group: sp.Group, target: target.Point, motion: motion})
	}

	// Phase B: solve
	p.run()

	// Phase C: apply results in world order
	var sum systems.TickSummary
	for i := range p.jobs {
		job := &p.jobs[i]
		job.motion.Record(job.report)

		sum.Creatures++
		sum.Corrections += job.report.Corrections
		sum.HeadTravel += job.report.HeadStep
		if job.stretch > sum.MaxStretch {
			sum.MaxStretch = job.stretch
		}
	}
	return sum
}
