package object

import (
	"math/rand"

	"github.com/tomz197/asteroidfield/internal/draw"
	"github.com/tomz197/asteroidfield/internal/physics"
)

// Split parameters.
const (
	splitMinAngle  = 20.0 // Degrees
	splitMaxAngle  = 50.0 // Degrees
	splitSpeedUp   = 1.2
	splitDebris    = 6
	debrisSpeed    = 60.0
	debrisLifetime = 0.5
)

// AsteroidSpec holds the size rules shared by an asteroid and its fragments.
type AsteroidSpec struct {
	MinRadius  float64 // Smallest size; each split shrinks by this much
	CullMargin float64 // Distance past the arena edge at which an asteroid is dropped
}

// Asteroid is a drifting space rock.
type Asteroid struct {
	Body
	spec AsteroidSpec
}

// NewAsteroid creates an asteroid at pos moving with vel.
func NewAsteroid(pos, vel physics.Vector, radius float64, spec AsteroidSpec) *Asteroid {
	return &Asteroid{
		Body: Body{Position: pos, Velocity: vel, Radius: radius},
		spec: spec,
	}
}

// Update moves the asteroid in a straight line. Asteroids that drift far
// outside the arena are dropped.
func (a *Asteroid) Update(ctx UpdateContext) bool {
	a.Advance(ctx.Delta.Seconds())

	if a.spec.CullMargin > 0 && ctx.Screen.Outside(a.Position, a.spec.CullMargin) {
		return true
	}
	return false
}

// Split removes the asteroid and, unless it is already the smallest size,
// spawns two fragments one size smaller that fly off at mirrored angles
// between 20 and 50 degrees, 20% faster than the parent.
// Fragments are returned for inspection; they are already spawned.
func (a *Asteroid) Split(spawner Spawner, rng *rand.Rand) []*Asteroid {
	spawner.Despawn(a)
	SpawnDebris(a.Position, splitDebris, debrisSpeed, debrisLifetime, spawner, rng)

	if a.Radius <= a.spec.MinRadius {
		return nil
	}

	angle := splitMinAngle + rng.Float64()*(splitMaxAngle-splitMinAngle)
	radius := a.Radius - a.spec.MinRadius

	children := []*Asteroid{
		NewAsteroid(a.Position, a.Velocity.Rotate(angle).Scale(splitSpeedUp), radius, a.spec),
		NewAsteroid(a.Position, a.Velocity.Rotate(-angle).Scale(splitSpeedUp), radius, a.spec),
	}
	for _, child := range children {
		spawner.Spawn(child)
	}
	return children
}

// Draw renders the asteroid as a circle outline.
func (a *Asteroid) Draw(r draw.Renderer) {
	r.DrawCircle(point(a.Position), a.Radius, false)
}
