package spine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// FoldBand is the range of joint bends (degrees) treated as a fold.
// A joint whose remapped bend satisfies Min < |bend| < Max is pulled back to
// the band edge. Bends near 0 and near 360 both mean a straight joint, so
// the same joint reads as either d or 360-d depending on where the headings
// cross 180. Max must therefore be 360-Min.
type FoldBand struct {
	Min float64
	Max float64
}

// NewFoldBand returns the band that allows min degrees of bend per joint.
func NewFoldBand(min float64) FoldBand {
	return FoldBand{Min: min, Max: 360 - min}
}

// bandTolerance absorbs rounding in configured band edges.
const bandTolerance = 1e-9

// Fold band presets.
var (
	// SlitherBand allows 20 degrees of bend per joint.
	SlitherBand = NewFoldBand(20)
	// LooseBand allows a right angle per joint.
	LooseBand = NewFoldBand(90)
)

// Validate checks that 0 < Min < 180 and Max = 360-Min.
func (b FoldBand) Validate() error {
	if b.Min <= 0 || b.Min >= 180 {
		return fmt.Errorf("%w: fold band min %g must lie in (0, 180)", ErrInvalidFoldBand, b.Min)
	}
	if math.Abs(b.Max-(360-b.Min)) > bandTolerance {
		return fmt.Errorf("%w: fold band [%g, %g] must be symmetric, max = 360 - min", ErrInvalidFoldBand, b.Min, b.Max)
	}
	return nil
}

// Folded reports whether a remapped bend lies inside the band.
func (b FoldBand) Folded(bend float64) bool {
	a := math.Abs(bend)
	return a > b.Min && a < b.Max
}

// CandidateOffset is the angle (degrees, either side of the previous node's
// heading) at which corrected positions are placed on its constraint circle.
func (b FoldBand) CandidateOffset() float64 {
	return 180 - b.Min
}

// Side names which candidate a correction picked, relative to the previous
// node's heading.
type Side int

const (
	SideNone  Side = iota
	SideLeft       // +offset, counter-clockwise on screen
	SideRight      // -offset, clockwise on screen
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "ccw"
	case SideRight:
		return "cw"
	default:
		return "none"
	}
}

// Correction describes one fold correction applied during a tick.
type Correction struct {
	Node int     // index of the corrected node
	Bend float64 // remapped bend before correction, degrees

	// Angular deviation (degrees) between the node's link and the link it
	// would have at each candidate. The smaller one wins.
	DeviationLeft  float64
	DeviationRight float64

	Side Side
}

// Report summarizes one solver tick.
type Report struct {
	HeadStep    float64    // distance the head moved
	Corrections int        // fold corrections applied
	Last        Correction // most recent correction, valid when Corrections > 0
}

// Bend returns the remapped angle difference in degrees between node i and
// its predecessor. The result lies in (-360, 360).
func (g *NodeGroup) Bend(i int) float64 {
	prevDeg := remapDegrees(Degrees(g.Heading(g.nodes[i].prev)))
	curDeg := remapDegrees(Degrees(g.Heading(i)))
	return curDeg - prevDeg
}

// correctFold re-seats node i on its predecessor's constraint circle when the
// joint has folded past the band. Of the two positions at the band edge, the
// one closest to the node's current link direction is chosen.
func (g *NodeGroup) correctFold(i int) (Correction, bool) {
	bend := g.Bend(i)
	if !g.fold.Folded(bend) {
		return Correction{}, false
	}

	prev := g.nodes[i].prev
	offset := g.fold.CandidateOffset()
	left := g.PointOnConstraintCircle(prev, offset)
	right := g.PointOnConstraintCircle(prev, -offset)

	link := g.VectorToConnected(i)
	prevPos := g.nodes[prev].Position
	devLeft := AngleBetween(link, VectorFromPoints(left, prevPos))
	devRight := AngleBetween(link, VectorFromPoints(right, prevPos))

	c := Correction{
		Node:           i,
		Bend:           bend,
		DeviationLeft:  Degrees(devLeft),
		DeviationRight: Degrees(devRight),
	}
	var pos r2.Vec
	if devLeft < devRight {
		pos, c.Side = left, SideLeft
	} else {
		pos, c.Side = right, SideRight
	}
	g.nodes[i].Position = pos
	return c, true
}
