package main

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/serpent/spine"
	"github.com/pthm-cable/serpent/systems"
)

// TargetRecord is one row of the input trace: from Tick on, the head seeks
// (X, Y) until the next row.
type TargetRecord struct {
	Tick int     `csv:"tick"`
	X    float64 `csv:"x"`
	Y    float64 `csv:"y"`
}

// TraceRecord is one solved tick.
type TraceRecord struct {
	Tick        int     `csv:"tick"`
	TargetX     float64 `csv:"target_x"`
	TargetY     float64 `csv:"target_y"`
	HeadX       float64 `csv:"head_x"`
	HeadY       float64 `csv:"head_y"`
	TailX       float64 `csv:"tail_x"`
	TailY       float64 `csv:"tail_y"`
	HeadStep    float64 `csv:"head_step"`
	Corrections int     `csv:"corrections"`
	Side        string  `csv:"side"`
	MaxBend     float64 `csv:"max_bend"`
}

// NodeRecord is one node's position at one tick.
type NodeRecord struct {
	Tick int     `csv:"tick"`
	Node int     `csv:"node"`
	X    float64 `csv:"x"`
	Y    float64 `csv:"y"`
}

// sortTargets orders targets by tick and rejects negative or repeated ticks.
func sortTargets(targets []TargetRecord) error {
	sort.SliceStable(targets, func(i, j int) bool { return targets[i].Tick < targets[j].Tick })
	for i, t := range targets {
		if t.Tick < 0 {
			return fmt.Errorf("row %d: negative tick %d", i, t.Tick)
		}
		if i > 0 && t.Tick == targets[i-1].Tick {
			return fmt.Errorf("tick %d appears twice", t.Tick)
		}
	}
	return nil
}

// replay advances g for ticks ticks, steering toward the target active at
// each tick. Before the first target row the head holds still. Targets must
// be sorted. When nodes is non-nil every node position is appended to it.
func replay(g *spine.NodeGroup, targets []TargetRecord, ticks int, nodes *[]NodeRecord) []TraceRecord {
	out := make([]TraceRecord, 0, ticks)
	var bends []float64
	next := 0
	target := g.Head().Position

	for tick := 0; tick < ticks; tick++ {
		for next < len(targets) && targets[next].Tick <= tick {
			target = r2.Vec{X: targets[next].X, Y: targets[next].Y}
			next++
		}
		g.SetTarget(target)
		r := g.Advance()

		bends = systems.JointBends(g, bends[:0])
		var maxBend float64
		for _, b := range bends {
			maxBend = max(maxBend, b)
		}

		rec := TraceRecord{
			Tick:        tick,
			TargetX:     target.X,
			TargetY:     target.Y,
			HeadX:       g.Head().Position.X,
			HeadY:       g.Head().Position.Y,
			TailX:       g.Tail().Position.X,
			TailY:       g.Tail().Position.Y,
			HeadStep:    r.HeadStep,
			Corrections: r.Corrections,
			MaxBend:     maxBend,
		}
		if r.Corrections > 0 {
			rec.Side = r.Last.Side.String()
		}
		out = append(out, rec)

		if nodes != nil {
			for i, n := range g.Nodes() {
				*nodes = append(*nodes, NodeRecord{Tick: tick, Node: i, X: n.Position.X, Y: n.Position.Y})
			}
		}
	}
	return out
}
