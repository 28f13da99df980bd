package spine

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Construction errors.
var (
	ErrInvalidDimension      = errors.New("spine: size and constraint radius must be positive")
	ErrInvalidSpeed          = errors.New("spine: speed must not be negative")
	ErrAnglesNotAscending    = errors.New("spine: extra draw angles must be strictly ascending")
	ErrTailAnglesNotPositive = errors.New("spine: tail extra draw angles must be positive")
	ErrTailAttached          = errors.New("spine: tail already attached")
	ErrInvalidFoldBand       = errors.New("spine: invalid fold band")
)

// LayoutSpacing is the x gap between nodes in the initial layout. The first
// tick pulls every node onto its constraint circle.
const LayoutSpacing = 40.0

// EyeAngle is the offset (degrees) of each eye from the head's heading.
const EyeAngle = 50.0

// NodeGroup is a single chain of nodes, head first, forming one creature's
// spine. It is not safe for concurrent use; each tick depends on the
// previous node in the chain having been resolved first.
type NodeGroup struct {
	Speed            float64 // head step per tick
	DesiredPoint     r2.Vec  // external target, set before each tick
	StartingPosition r2.Vec

	nodes        []Node
	fold         FoldBand
	tailAttached bool
}

// Option configures a NodeGroup.
type Option func(*NodeGroup)

// WithFoldBand sets the fold band. The default is SlitherBand.
func WithFoldBand(b FoldBand) Option {
	return func(g *NodeGroup) { g.fold = b }
}

// NewNodeGroup creates a chain holding only its head at start. Body nodes are
// added with AttachNewNode and AttachTailNode.
func NewNodeGroup(speed, headSize, headConstraintRadius float64, start r2.Vec, headExtraAngles []float64, opts ...Option) (*NodeGroup, error) {
	if speed < 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSpeed, speed)
	}
	if err := checkDimensions(headConstraintRadius, headSize); err != nil {
		return nil, fmt.Errorf("head: %w", err)
	}
	if err := checkAscending(headExtraAngles); err != nil {
		return nil, fmt.Errorf("head: %w", err)
	}

	g := &NodeGroup{
		Speed:            speed,
		StartingPosition: start,
		fold:             SlitherBand,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.fold.Validate(); err != nil {
		return nil, err
	}

	g.nodes = append(g.nodes, newNode(noLink, start, headConstraintRadius, headSize, headExtraAngles))
	g.updateDrawPoints(0)
	return g, nil
}

// AttachNewNode appends a body node behind the current tail.
func (g *NodeGroup) AttachNewNode(constraintRadius, size float64) error {
	return g.attach(constraintRadius, size, nil)
}

// AttachTailNode appends the final node, carrying extra skin points at the
// given angles. The angles must be strictly ascending and all positive so
// the closing cap runs left to right; nothing can be attached afterwards.
func (g *NodeGroup) AttachTailNode(constraintRadius, size float64, extraAngles []float64) error {
	if err := checkAscending(extraAngles); err != nil {
		return fmt.Errorf("tail: %w", err)
	}
	for _, a := range extraAngles {
		if a <= 0 {
			return fmt.Errorf("tail: %w: %g", ErrTailAnglesNotPositive, a)
		}
	}
	if err := g.attach(constraintRadius, size, extraAngles); err != nil {
		return err
	}
	g.tailAttached = true
	return nil
}

func (g *NodeGroup) attach(constraintRadius, size float64, extraAngles []float64) error {
	if g.tailAttached {
		return ErrTailAttached
	}
	if err := checkDimensions(constraintRadius, size); err != nil {
		return err
	}

	last := len(g.nodes) - 1
	pos := r2.Vec{
		X: g.StartingPosition.X - LayoutSpacing*float64(len(g.nodes)),
		Y: g.StartingPosition.Y,
	}
	g.nodes = append(g.nodes, newNode(last, pos, constraintRadius, size, extraAngles))
	g.updateDrawPoints(last + 1)
	return nil
}

// TotalNodes returns the number of nodes, head included.
func (g *NodeGroup) TotalNodes() int { return len(g.nodes) }

// FoldBand returns the active fold band.
func (g *NodeGroup) FoldBand() FoldBand { return g.fold }

// SetFoldBand replaces the fold band between ticks.
func (g *NodeGroup) SetFoldBand(b FoldBand) error {
	if err := b.Validate(); err != nil {
		return err
	}
	g.fold = b
	return nil
}

// SetTarget records the point the head should move toward on the next tick.
func (g *NodeGroup) SetTarget(p r2.Vec) {
	g.DesiredPoint = p
}

// UpdateHeadNode hands the group's desired point to the head.
func (g *NodeGroup) UpdateHeadNode() {
	g.nodes[0].DesiredPoint = g.DesiredPoint
}

// Advance runs one tick: the head takes its target, then the chain is solved.
func (g *NodeGroup) Advance() Report {
	g.UpdateHeadNode()
	return g.UpdateNodePositions()
}

// UpdateNodePositions steps the head toward its desired point by Speed, then
// resolves every following node in order: distance constraint first, then
// the fold check.
func (g *NodeGroup) UpdateNodePositions() Report {
	var r Report

	head := &g.nodes[0]
	step := Scale(Normalize(VectorFromPoints(head.Position, head.DesiredPoint)), g.Speed)
	head.Position = r2.Add(head.Position, step)
	r.HeadStep = Magnitude(step)
	g.rememberFacing(0)
	g.updateDrawPoints(0)

	for i := 1; i < len(g.nodes); i++ {
		g.relax(i)
		if c, ok := g.correctFold(i); ok {
			r.Corrections++
			r.Last = c
		}
		g.rememberFacing(i)
		g.updateDrawPoints(i)
	}
	return r
}

// Node returns a snapshot of node i.
func (g *NodeGroup) Node(i int) NodeView { return g.nodes[i].view() }

// Head returns a snapshot of the head node.
func (g *NodeGroup) Head() NodeView { return g.nodes[0].view() }

// Tail returns a snapshot of the last node.
func (g *NodeGroup) Tail() NodeView { return g.nodes[len(g.nodes)-1].view() }

// Nodes returns snapshots of every node, head first.
func (g *NodeGroup) Nodes() []NodeView {
	out := make([]NodeView, len(g.nodes))
	for i := range g.nodes {
		out[i] = g.nodes[i].view()
	}
	return out
}

// ContourPoints returns the closed skin polygon: head extras, left links head
// to tail, tail extras, then right links tail to head.
func (g *NodeGroup) ContourPoints() []r2.Vec {
	return g.AppendContour(nil)
}

// AppendContour appends the skin polygon to dst and returns it, so callers
// can reuse a buffer across frames.
func (g *NodeGroup) AppendContour(dst []r2.Vec) []r2.Vec {
	last := len(g.nodes) - 1
	dst = append(dst, g.nodes[0].ExtraPoints...)
	for i := range g.nodes {
		dst = append(dst, g.nodes[i].LeftLink)
	}
	if last > 0 {
		dst = append(dst, g.nodes[last].ExtraPoints...)
	}
	for i := last; i >= 0; i-- {
		dst = append(dst, g.nodes[i].RightLink)
	}
	return dst
}

// ContourLen returns the number of points ContourPoints would produce.
func (g *NodeGroup) ContourLen() int {
	return g.ContourLayout().Len()
}

// ContourLayout describes where each node's points sit in the contour.
type ContourLayout struct {
	HeadExtras int
	Nodes      int
	TailExtras int
}

// ContourLayout returns the layout of the polygon AppendContour produces.
func (g *NodeGroup) ContourLayout() ContourLayout {
	l := ContourLayout{HeadExtras: len(g.nodes[0].ExtraPoints), Nodes: len(g.nodes)}
	if last := len(g.nodes) - 1; last > 0 {
		l.TailExtras = len(g.nodes[last].ExtraPoints)
	}
	return l
}

// Len returns the number of contour points.
func (l ContourLayout) Len() int { return l.HeadExtras + 2*l.Nodes + l.TailExtras }

// Left returns the contour index of node i's left link.
func (l ContourLayout) Left(i int) int { return l.HeadExtras + i }

// Right returns the contour index of node i's right link.
func (l ContourLayout) Right(i int) int {
	return l.HeadExtras + l.Nodes + l.TailExtras + (l.Nodes - 1 - i)
}

// Triangles appends a triangulation of the contour to dst as index triples.
// The body is split into one quad per link; each cap is fanned from a link
// point, which is valid because cap points all lie on one node's circle.
func (l ContourLayout) Triangles(dst [][3]int) [][3]int {
	if l.Nodes == 0 {
		return dst
	}
	for i := 0; i+1 < l.Nodes; i++ {
		dst = append(dst,
			[3]int{l.Left(i), l.Left(i + 1), l.Right(i + 1)},
			[3]int{l.Left(i), l.Right(i + 1), l.Right(i)},
		)
	}

	// Head cap: right link, head extras, left link.
	prev := 0
	for k := 1; k <= l.HeadExtras; k++ {
		next := k
		if k == l.HeadExtras {
			next = l.Left(0)
		}
		dst = append(dst, [3]int{l.Right(0), prev, next})
		prev = next
	}

	// Tail cap: left link, tail extras, right link.
	last := l.Nodes - 1
	first := l.HeadExtras + l.Nodes
	for k := 0; k < l.TailExtras; k++ {
		next := first + k + 1
		if k == l.TailExtras-1 {
			next = l.Right(last)
		}
		dst = append(dst, [3]int{l.Left(last), first + k, next})
	}
	return dst
}

// EyePositions returns the eye centres: points at +-EyeAngle on the head's
// circle, pulled halfway back toward the head centre.
func (g *NodeGroup) EyePositions() (left, right r2.Vec) {
	head := &g.nodes[0]
	eye := func(deg float64) r2.Vec {
		p := g.PointOnSizeCircle(0, deg)
		pull := Scale(Normalize(VectorFromPoints(head.Position, p)), head.Size/2)
		return Subtract(p, pull)
	}
	return eye(EyeAngle), eye(-EyeAngle)
}

func checkDimensions(constraintRadius, size float64) error {
	if constraintRadius <= 0 || size <= 0 {
		return fmt.Errorf("%w: radius %g, size %g", ErrInvalidDimension, constraintRadius, size)
	}
	return nil
}

func checkAscending(angles []float64) error {
	for i := 1; i < len(angles); i++ {
		if angles[i] <= angles[i-1] {
			return fmt.Errorf("%w: %g follows %g", ErrAnglesNotAscending, angles[i], angles[i-1])
		}
	}
	return nil
}
