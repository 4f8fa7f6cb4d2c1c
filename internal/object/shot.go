package object

import (
	"github.com/tomz197/asteroidfield/internal/draw"
	"github.com/tomz197/asteroidfield/internal/physics"
)

// Shot is a bullet fired by the ship.
type Shot struct {
	Body
	Lifetime float64 // Seconds remaining before removal
}

// NewShot creates a shot at pos traveling with velocity vel.
func NewShot(pos, vel physics.Vector, radius, lifetime float64) *Shot {
	return &Shot{
		Body:     Body{Position: pos, Velocity: vel, Radius: radius},
		Lifetime: lifetime,
	}
}

// Update moves the shot. It expires once it is fully off-screen or its
// lifetime runs out.
func (s *Shot) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()

	s.Lifetime -= dt
	if s.Lifetime <= 0 {
		return true
	}

	s.Advance(dt)

	return ctx.Screen.Outside(s.Position, s.Radius)
}

// Draw renders the shot as a filled circle.
func (s *Shot) Draw(r draw.Renderer) {
	r.DrawCircle(point(s.Position), s.Radius, true)
}
