// Package components defines ECS components for creatures.
package components

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/serpent/spine"
)

// Identity names a creature.
type Identity struct {
	Name  string
	Index int // position in the configured creature list
}

// Spine holds the creature's solved chain. The group is owned by the entity.
type Spine struct {
	Group *spine.NodeGroup
}

// Target is the point the head seeks on the next tick.
type Target struct {
	Point r2.Vec
}

// SteerMode determines how a creature's target is produced.
type SteerMode uint8

const (
	SteerPointer SteerMode = iota // follow the mouse
	SteerWander                   // drift on a noise field
	SteerOrbit                    // circle a fixed centre
	SteerScript                   // visit waypoints in order
)

// Steering holds per-creature target generation state.
type Steering struct {
	Mode     SteerMode
	Clock    float64 // ticks advanced in the current mode
	Waypoint int     // next script waypoint
	Seed     float64 // per-creature noise offset
}

// Appearance holds drawing colors.
type Appearance struct {
	Fill    color.RGBA
	Outline color.RGBA
}

// Motion accumulates solver results for display and telemetry.
type Motion struct {
	Last             spine.Report // report from the most recent tick
	TotalCorrections int
	Travel           float64 // total head distance
}

// Record folds one tick's report into the totals.
func (m *Motion) Record(r spine.Report) {
	m.Last = r
	m.TotalCorrections += r.Corrections
	m.Travel += r.HeadStep
}
