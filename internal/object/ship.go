package object

import (
	"github.com/tomz197/asteroidfield/internal/draw"
	"github.com/tomz197/asteroidfield/internal/input"
	"github.com/tomz197/asteroidfield/internal/physics"
)

// forwardReference is the direction a ship with zero rotation faces.
var forwardReference = physics.Vector{X: 0, Y: 1}

// ShipSpec holds the tunables of a player ship.
type ShipSpec struct {
	Radius        float64 // Collision radius, also the triangle size
	Speed         float64 // Units per second while thrusting
	TurnSpeed     float64 // Degrees per second
	ShotSpeed     float64 // Units per second
	ShotRadius    float64
	ShotLifetime  float64 // Seconds before an unlucky shot expires
	ShootCooldown float64 // Minimum seconds between shots
}

// Ship is the player-controlled triangle. Its collision shape is its circle.
type Ship struct {
	Body
	Rotation      float64 // Degrees; 0 faces +Y, positive turns clockwise on screen
	ShootCooldown float64 // Seconds until the next shot is allowed

	spec ShipSpec
}

// NewShip creates a ship at rest at the given position.
func NewShip(pos physics.Vector, spec ShipSpec) *Ship {
	return &Ship{
		Body: Body{Position: pos, Radius: spec.Radius},
		spec: spec,
	}
}

// Forward returns the unit vector the ship is facing.
func (s *Ship) Forward() physics.Vector {
	return forwardReference.Rotate(s.Rotation)
}

// Rotate turns the ship clockwise by TurnSpeed * dt degrees.
func (s *Ship) Rotate(dt float64) {
	s.Rotation += s.spec.TurnSpeed * dt
}

// Move moves the ship along its facing. A negative dt moves it backward.
func (s *Ship) Move(dt float64) {
	s.Position = s.Position.Add(s.Forward().Scale(s.spec.Speed * dt))
}

// Shoot fires a shot from the ship's position if the cooldown has expired.
// Returns nil when the ship cannot fire yet.
func (s *Ship) Shoot(spawner Spawner) *Shot {
	if s.ShootCooldown > 0 {
		return nil
	}

	shot := NewShot(s.Position, s.Forward().Scale(s.spec.ShotSpeed), s.spec.ShotRadius, s.spec.ShotLifetime)
	if spawner != nil {
		spawner.Spawn(shot)
	}
	s.ShootCooldown = s.spec.ShootCooldown
	return shot
}

// Respawn puts the ship back at pos and stops it.
func (s *Ship) Respawn(pos physics.Vector) {
	s.Position = pos
	s.Velocity = physics.Zero
}

// Update handles rotation, movement and shooting from this frame's input.
func (s *Ship) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()
	in := ctx.Input

	if in.Held(input.TurnLeft) {
		// Applied directly rather than through Rotate(-dt).
		s.Rotation -= s.spec.TurnSpeed * dt
	}
	if in.Held(input.TurnRight) {
		s.Rotate(dt)
	}

	if in.Held(input.Thrust) {
		s.Move(dt)
	}
	if in.Held(input.Reverse) {
		s.Move(-dt)
	}

	s.Advance(dt)

	if s.ShootCooldown > 0 {
		s.ShootCooldown -= dt
	}
	if in.Held(input.Fire) && s.ShootCooldown <= 0 {
		s.Shoot(ctx.Spawner)
	}

	return false
}

// Triangle returns the nose, rear-left and rear-right vertices used for drawing.
func (s *Ship) Triangle() [3]physics.Vector {
	forward := s.Forward()
	right := forwardReference.Rotate(s.Rotation + 90).Scale(s.Radius / 1.5)

	tail := s.Position.Sub(forward.Scale(s.Radius))
	return [3]physics.Vector{
		s.Position.Add(forward.Scale(s.Radius)),
		tail.Sub(right),
		tail.Add(right),
	}
}

// Draw renders the ship as a triangle outline.
func (s *Ship) Draw(r draw.Renderer) {
	tri := s.Triangle()
	r.DrawPolygon([]draw.Point{point(tri[0]), point(tri[1]), point(tri[2])})
}
