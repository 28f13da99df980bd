package spine

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-6

var (
	demoHeadAngles = []float64{-30, 0, 30}
	demoTailAngles = []float64{150, 155, 160, 165, 170, 175, 180, 185, 190, 195, 200, 205, 210}
)

// newScenarioGroup builds the head (size 30, radius 10) plus three body nodes
// (radius 10, size 25) starting at (400, 400).
func newScenarioGroup(t *testing.T) *NodeGroup {
	t.Helper()
	g, err := NewNodeGroup(4, 30, 10, r2.Vec{X: 400, Y: 400}, nil)
	if err != nil {
		t.Fatalf("NewNodeGroup: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := g.AttachNewNode(10, 25); err != nil {
			t.Fatalf("AttachNewNode: %v", err)
		}
	}
	return g
}

// newDemoGroup builds a long snake with head and tail caps.
func newDemoGroup(t *testing.T) *NodeGroup {
	t.Helper()
	g, err := NewNodeGroup(4, 30, 10, r2.Vec{X: 400, Y: 400}, demoHeadAngles)
	if err != nil {
		t.Fatalf("NewNodeGroup: %v", err)
	}
	for i := 0; i < 30; i++ {
		if err := g.AttachNewNode(10, 28-float64(i)/3); err != nil {
			t.Fatalf("AttachNewNode: %v", err)
		}
	}
	if err := g.AttachTailNode(20, 15, demoTailAngles); err != nil {
		t.Fatalf("AttachTailNode: %v", err)
	}
	return g
}

// zigzagTargets returns a deterministic target stream with sharp turns.
func zigzagTargets(n int) []r2.Vec {
	out := make([]r2.Vec, n)
	for i := range out {
		phase := float64(i) / 15
		out[i] = r2.Vec{
			X: 400 + 250*math.Cos(phase*1.3),
			Y: 400 + 200*math.Sin(phase*2.1),
		}
		if (i/40)%2 == 1 {
			out[i].X = 800 - out[i].X
		}
	}
	return out
}

func assertConstraints(t *testing.T, g *NodeGroup, tick int) {
	t.Helper()
	for i := 1; i < g.TotalNodes(); i++ {
		cur := g.Node(i)
		prev := g.Node(i - 1)
		d := Magnitude(Subtract(cur.Position, prev.Position))
		if math.Abs(d-prev.ConstraintRadius) > eps {
			t.Fatalf("tick %d node %d: distance %v, want %v", tick, i, d, prev.ConstraintRadius)
		}
	}
}

func TestAttachLayout(t *testing.T) {
	g := newScenarioGroup(t)

	if g.TotalNodes() != 4 {
		t.Fatalf("TotalNodes = %d, want 4", g.TotalNodes())
	}
	wantX := []float64{400, 360, 320, 280}
	for i, x := range wantX {
		p := g.Node(i).Position
		if p.X != x || p.Y != 400 {
			t.Errorf("node %d at %v, want (%v, 400)", i, p, x)
		}
	}

	if !g.nodes[0].IsHead() {
		t.Error("node 0 should be head")
	}
	for i := 1; i < len(g.nodes); i++ {
		if g.nodes[i].IsHead() || g.nodes[i].prev != i-1 {
			t.Errorf("node %d links to %d, want %d", i, g.nodes[i].prev, i-1)
		}
	}
}

func TestAttachTailNode(t *testing.T) {
	g := newScenarioGroup(t)
	if err := g.AttachTailNode(20, 15, demoTailAngles); err != nil {
		t.Fatalf("AttachTailNode: %v", err)
	}
	if g.TotalNodes() != 5 {
		t.Errorf("TotalNodes = %d, want 5", g.TotalNodes())
	}
	if got := len(g.nodes[4].ExtraPoints); got != len(demoTailAngles) {
		t.Errorf("tail extra points = %d, want %d", got, len(demoTailAngles))
	}

	if err := g.AttachNewNode(10, 10); !errors.Is(err, ErrTailAttached) {
		t.Errorf("attach after tail: err = %v, want ErrTailAttached", err)
	}
}

func TestConstructionErrors(t *testing.T) {
	start := r2.Vec{X: 100, Y: 100}

	tests := []struct {
		name  string
		build func() error
		want  error
	}{
		{"negative speed", func() error {
			_, err := NewNodeGroup(-1, 30, 10, start, nil)
			return err
		}, ErrInvalidSpeed},
		{"zero head size", func() error {
			_, err := NewNodeGroup(4, 0, 10, start, nil)
			return err
		}, ErrInvalidDimension},
		{"head angles descending", func() error {
			_, err := NewNodeGroup(4, 30, 10, start, []float64{30, 0, -30})
			return err
		}, ErrAnglesNotAscending},
		{"bad fold band", func() error {
			_, err := NewNodeGroup(4, 30, 10, start, nil, WithFoldBand(FoldBand{Min: 200, Max: 100}))
			return err
		}, ErrInvalidFoldBand},
		{"zero body radius", func() error {
			g, _ := NewNodeGroup(4, 30, 10, start, nil)
			return g.AttachNewNode(0, 10)
		}, ErrInvalidDimension},
		{"tail angles not ascending", func() error {
			g, _ := NewNodeGroup(4, 30, 10, start, nil)
			return g.AttachTailNode(10, 10, []float64{170, 160})
		}, ErrAnglesNotAscending},
		{"tail angle not positive", func() error {
			g, _ := NewNodeGroup(4, 30, 10, start, nil)
			return g.AttachTailNode(10, 10, []float64{-10, 160})
		}, ErrTailAnglesNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.build(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFirstTickStraightRight(t *testing.T) {
	g := newScenarioGroup(t)
	g.SetTarget(r2.Vec{X: 500, Y: 400})
	r := g.Advance()

	head := g.Head().Position
	if math.Abs(head.X-404) > eps || math.Abs(head.Y-400) > eps {
		t.Errorf("head after one tick = %v, want (404, 400)", head)
	}
	if math.Abs(r.HeadStep-4) > eps {
		t.Errorf("HeadStep = %v, want 4", r.HeadStep)
	}
	if r.Corrections != 0 {
		t.Errorf("Corrections = %d, want 0 for a straight chain", r.Corrections)
	}
	assertConstraints(t, g, 1)
}

func TestChainStraightensBehindHead(t *testing.T) {
	g := newScenarioGroup(t)
	target := r2.Vec{X: 500, Y: 400}
	for tick := 1; tick <= 50; tick++ {
		g.SetTarget(target)
		g.Advance()
		assertConstraints(t, g, tick)
	}

	prevX := math.Inf(1)
	for i, n := range g.Nodes() {
		if math.Abs(n.Position.Y-400) > 1e-3 {
			t.Errorf("node %d y = %v, want ~400", i, n.Position.Y)
		}
		if n.Position.X >= prevX {
			t.Errorf("node %d x = %v, not behind previous %v", i, n.Position.X, prevX)
		}
		if i > 0 && math.Abs(prevX-n.Position.X-10) > 1e-3 {
			t.Errorf("node %d spacing = %v, want 10", i, prevX-n.Position.X)
		}
		prevX = n.Position.X
	}
}

func TestHeadStepBound(t *testing.T) {
	g := newDemoGroup(t)
	for tick, target := range zigzagTargets(300) {
		before := g.Head().Position
		g.SetTarget(target)
		r := g.Advance()
		after := g.Head().Position

		moved := Magnitude(Subtract(after, before))
		if moved > g.Speed+eps {
			t.Fatalf("tick %d: head moved %v, speed %v", tick, moved, g.Speed)
		}
		if target != before && math.Abs(moved-g.Speed) > eps {
			t.Fatalf("tick %d: head moved %v, want exactly %v", tick, moved, g.Speed)
		}
		if math.Abs(r.HeadStep-moved) > eps {
			t.Fatalf("tick %d: HeadStep %v, moved %v", tick, r.HeadStep, moved)
		}
	}
}

func TestTargetOnHeadIsZeroStep(t *testing.T) {
	g := newScenarioGroup(t)
	g.SetTarget(r2.Vec{X: 500, Y: 400})
	for i := 0; i < 10; i++ {
		g.Advance()
	}

	head := g.Head().Position
	g.SetTarget(head)
	r := g.Advance()

	if r.HeadStep != 0 {
		t.Errorf("HeadStep = %v, want 0", r.HeadStep)
	}
	if g.Head().Position != head {
		t.Errorf("head moved from %v to %v", head, g.Head().Position)
	}
	if r.Corrections != 0 {
		t.Errorf("Corrections = %d; a stationary head should keep its facing", r.Corrections)
	}
	for i, n := range g.Nodes() {
		if math.IsNaN(n.Position.X) || math.IsNaN(n.Position.Y) || math.IsNaN(n.LeftLink.X) {
			t.Fatalf("node %d has NaN after zero step", i)
		}
	}
}

func TestConstraintInvariantUnderZigzag(t *testing.T) {
	g := newDemoGroup(t)
	for tick, target := range zigzagTargets(500) {
		g.SetTarget(target)
		g.Advance()
		assertConstraints(t, g, tick)
	}
}

func TestContourSize(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *NodeGroup
		want  int
	}{
		{"no extras", newScenarioGroup, 0 + 4 + 0 + 4},
		{"demo snake", newDemoGroup, len(demoHeadAngles) + 32 + len(demoTailAngles) + 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.build(t)
			g.SetTarget(r2.Vec{X: 600, Y: 300})
			g.Advance()

			pts := g.ContourPoints()
			if len(pts) != tt.want {
				t.Errorf("len(ContourPoints) = %d, want %d", len(pts), tt.want)
			}
			if g.ContourLen() != tt.want {
				t.Errorf("ContourLen = %d, want %d", g.ContourLen(), tt.want)
			}
		})
	}
}

func TestContourOrder(t *testing.T) {
	g := newDemoGroup(t)
	g.SetTarget(r2.Vec{X: 700, Y: 400})
	for i := 0; i < 60; i++ {
		g.Advance()
	}

	pts := g.ContourPoints()
	n := g.TotalNodes()
	h := len(demoHeadAngles)
	tl := len(demoTailAngles)

	for i, a := range demoHeadAngles {
		if want := g.PointOnSizeCircle(0, a); pts[i] != want {
			t.Errorf("head extra %d = %v, want %v", i, pts[i], want)
		}
	}
	for i := 0; i < n; i++ {
		if pts[h+i] != g.Node(i).LeftLink {
			t.Errorf("left link %d out of order", i)
		}
	}
	for i := 0; i < tl; i++ {
		if pts[h+n+i] != g.nodes[n-1].ExtraPoints[i] {
			t.Errorf("tail extra %d out of order", i)
		}
	}
	for i := 0; i < n; i++ {
		if pts[h+n+tl+i] != g.Node(n-1-i).RightLink {
			t.Errorf("right link %d not reversed", i)
		}
	}

	// Chain points right, so the left side of the body is above it on screen.
	mid := g.Node(n / 2)
	if mid.LeftLink.Y >= mid.Position.Y || mid.RightLink.Y <= mid.Position.Y {
		t.Errorf("left/right links on wrong sides: left %v right %v centre %v",
			mid.LeftLink, mid.RightLink, mid.Position)
	}
}

func TestAppendContourReusesBuffer(t *testing.T) {
	g := newDemoGroup(t)
	buf := make([]r2.Vec, 0, g.ContourLen())
	buf = g.AppendContour(buf[:0])
	if len(buf) != g.ContourLen() {
		t.Fatalf("len = %d, want %d", len(buf), g.ContourLen())
	}
	if cap(buf) != g.ContourLen() {
		t.Errorf("buffer reallocated: cap %d", cap(buf))
	}
}

func TestEyePositions(t *testing.T) {
	g := newScenarioGroup(t)
	g.SetTarget(r2.Vec{X: 500, Y: 400})
	g.Advance()

	head := g.Head()
	left, right := g.EyePositions()

	for name, eye := range map[string]r2.Vec{"left": left, "right": right} {
		d := Magnitude(Subtract(eye, head.Position))
		if math.Abs(d-head.Size/2) > eps {
			t.Errorf("%s eye distance %v, want %v", name, d, head.Size/2)
		}
		if eye.X <= head.Position.X {
			t.Errorf("%s eye %v should sit ahead of head centre %v", name, eye, head.Position)
		}
	}
	if left.Y >= head.Position.Y || right.Y <= head.Position.Y {
		t.Errorf("eyes on wrong sides: left %v right %v", left, right)
	}
}

func TestDeterminism(t *testing.T) {
	a := newDemoGroup(t)
	b := newDemoGroup(t)

	for tick, target := range zigzagTargets(400) {
		a.SetTarget(target)
		b.SetTarget(target)
		ra := a.Advance()
		rb := b.Advance()
		if ra != rb {
			t.Fatalf("tick %d: reports differ: %+v vs %+v", tick, ra, rb)
		}
		for i := 0; i < a.TotalNodes(); i++ {
			if a.Node(i) != b.Node(i) {
				t.Fatalf("tick %d node %d differs", tick, i)
			}
		}
	}
}

func TestVectorToConnectedPanicsOnHead(t *testing.T) {
	g := newScenarioGroup(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for head node")
		}
	}()
	g.VectorToConnected(0)
}

func TestSingleNodeGroup(t *testing.T) {
	g, err := NewNodeGroup(2, 10, 5, r2.Vec{X: 50, Y: 50}, []float64{-10, 10})
	if err != nil {
		t.Fatal(err)
	}
	g.SetTarget(r2.Vec{X: 50, Y: 0})
	g.Advance()

	if got := g.Head().Position; math.Abs(got.Y-48) > eps {
		t.Errorf("head = %v, want y 48", got)
	}
	if len(g.ContourPoints()) != 2+2 {
		t.Errorf("contour len = %d, want 4", len(g.ContourPoints()))
	}
}

func TestContourLayoutIndices(t *testing.T) {
	g := newDemoGroup(t)
	g.SetTarget(r2.Vec{X: 700, Y: 400})
	g.Advance()

	l := g.ContourLayout()
	pts := g.ContourPoints()
	if l.Len() != len(pts) {
		t.Fatalf("Len = %d, want %d", l.Len(), len(pts))
	}
	for i := 0; i < g.TotalNodes(); i++ {
		if pts[l.Left(i)] != g.Node(i).LeftLink || pts[l.Right(i)] != g.Node(i).RightLink {
			t.Fatalf("node %d link index mismatch", i)
		}
	}
}

func TestContourTriangles(t *testing.T) {
	tests := []struct {
		name   string
		layout ContourLayout
	}{
		{"demo", ContourLayout{HeadExtras: 3, Nodes: 32, TailExtras: 13}},
		{"no extras", ContourLayout{Nodes: 4}},
		{"single node", ContourLayout{HeadExtras: 3, Nodes: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris := tt.layout.Triangles(nil)
			// A simple polygon with V vertices splits into V-2 triangles.
			if want := tt.layout.Len() - 2; len(tris) != want {
				t.Fatalf("got %d triangles, want %d", len(tris), want)
			}
			used := make([]bool, tt.layout.Len())
			for _, tri := range tris {
				if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
					t.Fatalf("degenerate triangle %v", tri)
				}
				for _, idx := range tri {
					if idx < 0 || idx >= tt.layout.Len() {
						t.Fatalf("index %d out of range", idx)
					}
					used[idx] = true
				}
			}
			for i, u := range used {
				if !u {
					t.Errorf("contour point %d not covered", i)
				}
			}
		})
	}
}

func TestContourTrianglesCoverStraightBody(t *testing.T) {
	g := newDemoGroup(t)
	g.SetTarget(r2.Vec{X: 2000, Y: 400})
	for i := 0; i < 5; i++ {
		g.Advance()
	}

	pts := g.ContourPoints()
	var polygon, triangles float64
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		polygon += a.X*b.Y - b.X*a.Y
	}
	for _, tri := range g.ContourLayout().Triangles(nil) {
		a, b, c := pts[tri[0]], pts[tri[1]], pts[tri[2]]
		triangles += math.Abs((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y))
	}
	if math.Abs(math.Abs(polygon)-triangles) > 1e-6*triangles {
		t.Errorf("triangulated area %v differs from polygon area %v", triangles/2, math.Abs(polygon)/2)
	}
}
