package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

func testTargetConfig() config.TargetConfig {
	return config.TargetConfig{
		Mode:        config.TargetWander,
		ReachRadius: 5,
		Wander:      config.WanderConfig{Frequency: 0.01, Lookahead: 60, Margin: 50},
		Orbit:       config.OrbitConfig{Radius: 200, Lead: 0.4},
		Script: []config.PointConfig{
			{X: 100, Y: 100},
			{X: 300, Y: 100},
		},
	}
}

func TestPointerWithoutInputHoldsHead(t *testing.T) {
	s := NewSteeringSystem(testTargetConfig(), 800, 600, 1)
	st := &components.Steering{Mode: components.SteerPointer}
	head := r2.Vec{X: 10, Y: 20}

	if got := s.TargetFor(st, head); got != head {
		t.Errorf("target = %v, want head %v", got, head)
	}

	s.SetPointer(r2.Vec{X: 500, Y: 50})
	if got := s.TargetFor(st, head); got != (r2.Vec{X: 500, Y: 50}) {
		t.Errorf("target = %v, want pointer", got)
	}
	if st.Clock != 2 {
		t.Errorf("clock = %v, want 2", st.Clock)
	}
}

func TestWanderStaysAhead(t *testing.T) {
	s := NewSteeringSystem(testTargetConfig(), 800, 600, 7)
	st := &components.Steering{Mode: components.SteerWander, Seed: 3}
	head := r2.Vec{X: 400, Y: 300}

	for i := 0; i < 100; i++ {
		target := s.TargetFor(st, head)
		d := r2.Norm(r2.Sub(target, head))
		if math.Abs(d-60) > 1e-9 {
			t.Fatalf("tick %d: target %v is %v from head, want lookahead 60", i, target, d)
		}
	}
}

func TestWanderReturnsFromMargin(t *testing.T) {
	s := NewSteeringSystem(testTargetConfig(), 800, 600, 7)
	st := &components.Steering{Mode: components.SteerWander}

	got := s.TargetFor(st, r2.Vec{X: 10, Y: 10})
	if got != (r2.Vec{X: 400, Y: 300}) {
		t.Errorf("target from margin = %v, want world centre", got)
	}
}

func TestWanderDeterministic(t *testing.T) {
	a := NewSteeringSystem(testTargetConfig(), 800, 600, 42)
	b := NewSteeringSystem(testTargetConfig(), 800, 600, 42)
	sa := &components.Steering{Mode: components.SteerWander}
	sb := &components.Steering{Mode: components.SteerWander}
	head := r2.Vec{X: 400, Y: 300}

	for i := 0; i < 50; i++ {
		if ta, tb := a.TargetFor(sa, head), b.TargetFor(sb, head); ta != tb {
			t.Fatalf("tick %d: %v != %v", i, ta, tb)
		}
	}
}

func TestOrbitLeadsHead(t *testing.T) {
	s := NewSteeringSystem(testTargetConfig(), 800, 600, 1)
	st := &components.Steering{Mode: components.SteerOrbit}

	head := r2.Vec{X: 600, Y: 300} // due right of centre
	got := s.TargetFor(st, head)
	want := r2.Vec{X: 400 + 200*math.Cos(0.4), Y: 300 + 200*math.Sin(0.4)}
	if r2.Norm(r2.Sub(got, want)) > 1e-9 {
		t.Errorf("orbit target = %v, want %v", got, want)
	}
}

func TestScriptAdvancesWaypoints(t *testing.T) {
	s := NewSteeringSystem(testTargetConfig(), 800, 600, 1)
	st := &components.Steering{Mode: components.SteerScript}

	if got := s.TargetFor(st, r2.Vec{}); got != (r2.Vec{X: 100, Y: 100}) {
		t.Errorf("first waypoint = %v", got)
	}
	// Reaching the first waypoint moves on to the second.
	if got := s.TargetFor(st, r2.Vec{X: 102, Y: 100}); got != (r2.Vec{X: 300, Y: 100}) {
		t.Errorf("after reach = %v, want second waypoint", got)
	}
	// And the list loops.
	if got := s.TargetFor(st, r2.Vec{X: 300, Y: 99}); got != (r2.Vec{X: 100, Y: 100}) {
		t.Errorf("after loop = %v, want first waypoint", got)
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{Max: r2.Vec{X: 100, Y: 50}}
	in := r.Inset(10)
	if in.Min != (r2.Vec{X: 10, Y: 10}) || in.Max != (r2.Vec{X: 90, Y: 40}) {
		t.Errorf("Inset(10) = %+v", in)
	}

	collapsed := r.Inset(40)
	if collapsed.Min.Y != 25 || collapsed.Max.Y != 25 {
		t.Errorf("over-inset should collapse to centre, got %+v", collapsed)
	}
	if !r.Contains(r2.Vec{X: 100, Y: 50}) || r.Contains(r2.Vec{X: -1}) {
		t.Error("Contains edge handling wrong")
	}
}
