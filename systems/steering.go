package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
)

// SteeringSystem produces each creature's target for the next tick.
// The pointer is a plain stream of world coordinates fed in by the caller.
type SteeringSystem struct {
	cfg    config.TargetConfig
	noise  opensimplex.Noise
	bounds Rect

	pointer    r2.Vec
	hasPointer bool
}

// NewSteeringSystem creates a steering system for a world of the given size.
func NewSteeringSystem(cfg config.TargetConfig, worldW, worldH float64, seed int64) *SteeringSystem {
	return &SteeringSystem{
		cfg:    cfg,
		noise:  opensimplex.NewNormalized(seed),
		bounds: Rect{Max: r2.Vec{X: worldW, Y: worldH}},
	}
}

// SetPointer records the latest pointer position in world coordinates.
func (s *SteeringSystem) SetPointer(p r2.Vec) {
	s.pointer = p
	s.hasPointer = true
}

// Pointer returns the last pointer position and whether one was seen.
func (s *SteeringSystem) Pointer() (r2.Vec, bool) {
	return s.pointer, s.hasPointer
}

// TargetFor returns the target for a creature whose head is at head, and
// advances the creature's steering clock.
func (s *SteeringSystem) TargetFor(st *components.Steering, head r2.Vec) r2.Vec {
	defer func() { st.Clock++ }()

	switch st.Mode {
	case components.SteerWander:
		return s.wander(st, head)
	case components.SteerOrbit:
		return s.orbit(st, head)
	case components.SteerScript:
		return s.script(st, head)
	default:
		if !s.hasPointer {
			return head
		}
		return s.pointer
	}
}

// wander aims a fixed distance ahead along a heading taken from a noise
// field, turning back to the centre once the head strays into the margin.
func (s *SteeringSystem) wander(st *components.Steering, head r2.Vec) r2.Vec {
	w := s.cfg.Wander
	if !s.bounds.Inset(w.Margin).Contains(head) {
		return s.bounds.Center()
	}
	n := s.noise.Eval2(st.Seed, st.Clock*w.Frequency)
	angle := (n - 0.5) * 4 * math.Pi
	return r2.Vec{
		X: head.X + w.Lookahead*math.Cos(angle),
		Y: head.Y + w.Lookahead*math.Sin(angle),
	}
}

// orbit aims at a point on a circle around the world centre, a fixed lead
// angle ahead of the head's own bearing.
func (s *SteeringSystem) orbit(st *components.Steering, head r2.Vec) r2.Vec {
	o := s.cfg.Orbit
	c := s.bounds.Center()
	bearing := math.Atan2(head.Y-c.Y, head.X-c.X)
	if head == c {
		bearing = st.Seed
	}
	a := bearing + o.Lead
	return r2.Vec{X: c.X + o.Radius*math.Cos(a), Y: c.Y + o.Radius*math.Sin(a)}
}

// script walks the configured waypoints in order, looping at the end.
func (s *SteeringSystem) script(st *components.Steering, head r2.Vec) r2.Vec {
	pts := s.cfg.Script
	if len(pts) == 0 {
		return head
	}
	st.Waypoint %= len(pts)
	p := r2.Vec{X: pts[st.Waypoint].X, Y: pts[st.Waypoint].Y}
	if r2.Norm(r2.Sub(p, head)) <= s.cfg.ReachRadius {
		st.Waypoint = (st.Waypoint + 1) % len(pts)
		p = r2.Vec{X: pts[st.Waypoint].X, Y: pts[st.Waypoint].Y}
	}
	return p
}
