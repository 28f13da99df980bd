package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/serpent/camera"
	"github.com/pthm-cable/serpent/spine"
)

var (
	wireSize       = rl.Color{R: 255, G: 255, B: 255, A: 120}
	wireConstraint = rl.Color{R: 100, G: 180, B: 255, A: 90}
	wireSpine      = rl.Color{R: 255, G: 200, B: 100, A: 200}
	wireLink       = rl.Color{R: 100, G: 255, B: 100, A: 220}
	targetColor    = rl.Color{R: 255, G: 80, B: 80, A: 220}
)

func toScreen(cam *camera.Camera, p r2.Vec) rl.Vector2 {
	sx, sy := cam.WorldToScreen(float32(p.X), float32(p.Y))
	return rl.Vector2{X: sx, Y: sy}
}

// DrawWireframe draws every node's size and constraint circles, the spine
// between node centres, and the link points.
func DrawWireframe(g *spine.NodeGroup, cam *camera.Camera) {
	var prev rl.Vector2
	for i := 0; i < g.TotalNodes(); i++ {
		n := g.Node(i)
		c := toScreen(cam, n.Position)

		rl.DrawCircleLinesV(c, float32(n.Size)*cam.Zoom, wireSize)
		rl.DrawCircleLinesV(c, float32(n.ConstraintRadius)*cam.Zoom, wireConstraint)
		if i > 0 {
			rl.DrawLineV(prev, c, wireSpine)
		}
		rl.DrawCircleV(toScreen(cam, n.LeftLink), 2, wireLink)
		rl.DrawCircleV(toScreen(cam, n.RightLink), 2, wireLink)
		prev = c
	}
}

// DrawTarget marks a creature's target with a crosshair.
func DrawTarget(p r2.Vec, cam *camera.Camera) {
	c := toScreen(cam, p)
	const arm = 8
	rl.DrawLineV(rl.Vector2{X: c.X - arm, Y: c.Y}, rl.Vector2{X: c.X + arm, Y: c.Y}, targetColor)
	rl.DrawLineV(rl.Vector2{X: c.X, Y: c.Y - arm}, rl.Vector2{X: c.X, Y: c.Y + arm}, targetColor)
	rl.DrawCircleLinesV(c, arm/2, targetColor)
}
