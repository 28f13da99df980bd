package spine

import "gonum.org/v1/gonum/spatial/r2"

// Offsets (degrees from a node's heading) of the default skin points.
const (
	LeftLinkAngle  = 90.0
	RightLinkAngle = -90.0
)

// noLink marks the head's missing predecessor.
const noLink = -1

// Node is one segment of the spine.
//
// Position is rewritten every tick by the solver. Size and ConstraintRadius
// are fixed at construction; ConstraintRadius bounds the distance of the
// following node, not of this one.
type Node struct {
	Position         r2.Vec
	Size             float64
	ConstraintRadius float64

	// DesiredPoint is the point the head seeks. Unused on body nodes.
	DesiredPoint r2.Vec

	// ExtraDrawAngles are ascending offsets (degrees) of additional skin
	// points, normally only set on the head and tail.
	ExtraDrawAngles []float64

	// Derived skin points, refreshed each tick.
	LeftLink    r2.Vec
	RightLink   r2.Vec
	ExtraPoints []r2.Vec

	prev int

	// facing is the last non-degenerate unit direction toward the previous
	// node (or the target for the head).
	facing r2.Vec
}

func newNode(prev int, pos r2.Vec, constraintRadius, size float64, extraAngles []float64) Node {
	n := Node{
		Position:         pos,
		Size:             size,
		ConstraintRadius: constraintRadius,
		prev:             prev,
		facing:           r2.Vec{X: 1},
	}
	if len(extraAngles) > 0 {
		n.ExtraDrawAngles = append([]float64(nil), extraAngles...)
		n.ExtraPoints = make([]r2.Vec, len(extraAngles))
	}
	return n
}

// IsHead reports whether the node leads its chain.
func (n *Node) IsHead() bool { return n.prev == noLink }


// NodeView is a read-only snapshot of a node for debug drawing.
type NodeView struct {
	Position         r2.Vec
	Size             float64
	ConstraintRadius float64
	LeftLink         r2.Vec
	RightLink        r2.Vec
}

func (n *Node) view() NodeView {
	return NodeView{
		Position:         n.Position,
		Size:             n.Size,
		ConstraintRadius: n.ConstraintRadius,
		LeftLink:         n.LeftLink,
		RightLink:        n.RightLink,
	}
}

// VectorToConnected returns the displacement from node i to its previous node.
// It panics on the head, which has no previous node.
func (g *NodeGroup) VectorToConnected(i int) r2.Vec {
	n := &g.nodes[i]
	if n.IsHead() {
		panic("spine: VectorToConnected called on head node")
	}
	return VectorFromPoints(n.Position, g.nodes[n.prev].Position)
}

// direction returns the unit forward direction of node i: toward the target
// for the head, toward the previous node otherwise. Coincident points fall
// back to the last known facing.
func (g *NodeGroup) direction(i int) r2.Vec {
	n := &g.nodes[i]
	var d r2.Vec
	if n.IsHead() {
		d = Normalize(VectorFromPoints(n.Position, n.DesiredPoint))
	} else {
		d = Normalize(g.VectorToConnected(i))
	}
	if d == (r2.Vec{}) {
		return n.facing
	}
	return d
}

// Heading returns the on-screen forward angle of node i in radians, in
// (0, 2pi]. Due right reads as 2pi.
func (g *NodeGroup) Heading(i int) float64 {
	return screenAngle(g.direction(i))
}

// PointOnSizeCircle returns the point at angleDeg from node i's heading on its
// visual circle.
func (g *NodeGroup) PointOnSizeCircle(i int, angleDeg float64) r2.Vec {
	n := &g.nodes[i]
	return PointOnCircle(n.Position, n.Size, g.Heading(i)+Radians(angleDeg))
}

// PointOnConstraintCircle returns the point at angleDeg from node i's heading
// on its constraint circle.
func (g *NodeGroup) PointOnConstraintCircle(i int, angleDeg float64) r2.Vec {
	n := &g.nodes[i]
	return PointOnCircle(n.Position, n.ConstraintRadius, g.Heading(i)+Radians(angleDeg))
}

// relax moves node i onto its predecessor's constraint circle along the line
// joining them. The predecessor must already be resolved for this tick.
func (g *NodeGroup) relax(i int) {
	n := &g.nodes[i]
	prev := &g.nodes[n.prev]
	link := Normalize(g.VectorToConnected(i))
	if link == (r2.Vec{}) {
		link = n.facing
	}
	n.Position = Subtract(prev.Position, Scale(link, prev.ConstraintRadius))
}

// updateDrawPoints recomputes the skin points of node i.
func (g *NodeGroup) updateDrawPoints(i int) {
	n := &g.nodes[i]
	n.LeftLink = g.PointOnSizeCircle(i, LeftLinkAngle)
	n.RightLink = g.PointOnSizeCircle(i, RightLinkAngle)
	for j, a := range n.ExtraDrawAngles {
		n.ExtraPoints[j] = g.PointOnSizeCircle(i, a)
	}
}

// rememberFacing records node i's current direction for later degenerate ticks.
func (g *NodeGroup) rememberFacing(i int) {
	g.nodes[i].facing = g.direction(i)
}
