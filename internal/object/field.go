package object

import (
	"github.com/tomz197/asteroidfield/internal/physics"
)

// Spawn velocity ranges.
const (
	spawnMinSpeed = 40  // Units per second
	spawnMaxSpeed = 100 // Units per second
	spawnMaxSkew  = 30  // Degrees either side of the inward direction
)

// FieldSpec holds the tunables of the asteroid field.
type FieldSpec struct {
	MinRadius float64 // Radius of the smallest asteroid kind
	MaxRadius float64 // Radius of the largest asteroid kind
	Kinds     int     // Number of asteroid sizes
	SpawnRate float64 // Seconds between spawns
}

// edge is a screen boundary asteroids enter from.
type edge struct {
	dir physics.Vector                 // Inward unit direction
	pos func(t float64) physics.Vector // Point just outside the edge, t in [0,1)
}

// Field spawns asteroids just outside a random screen edge on a fixed timer.
type Field struct {
	Timer float64 // Seconds since the last spawn

	spec  FieldSpec
	edges [4]edge
}

// NewField creates an asteroid field around the given screen.
func NewField(screen Screen, spec FieldSpec) *Field {
	w, h, m := screen.Width, screen.Height, spec.MaxRadius
	return &Field{
		spec: spec,
		edges: [4]edge{
			{ // Left
				dir: physics.Vector{X: 1, Y: 0},
				pos: func(t float64) physics.Vector { return physics.Vector{X: -m, Y: t * h} },
			},
			{ // Right
				dir: physics.Vector{X: -1, Y: 0},
				pos: func(t float64) physics.Vector { return physics.Vector{X: w + m, Y: t * h} },
			},
			{ // Top
				dir: physics.Vector{X: 0, Y: 1},
				pos: func(t float64) physics.Vector { return physics.Vector{X: t * w, Y: -m} },
			},
			{ // Bottom
				dir: physics.Vector{X: 0, Y: -1},
				pos: func(t float64) physics.Vector { return physics.Vector{X: t * w, Y: h + m} },
			},
		},
	}
}

// AsteroidSpec returns the size rules for asteroids this field creates.
// Asteroids are dropped once they are two maximum radii past the edge, which
// is further out than any spawn point.
func (f *Field) AsteroidSpec() AsteroidSpec {
	return AsteroidSpec{MinRadius: f.spec.MinRadius, CullMargin: 2 * f.spec.MaxRadius}
}

// ResetTimer restarts the spawn interval.
func (f *Field) ResetTimer() {
	f.Timer = 0
}

// Update advances the spawn timer and spawns one asteroid when the interval
// has passed. Returns the new asteroid, or nil.
func (f *Field) Update(ctx UpdateContext) *Asteroid {
	f.Timer += ctx.Delta.Seconds()
	if f.Timer <= f.spec.SpawnRate {
		return nil
	}
	f.Timer = 0
	return f.SpawnOne(ctx)
}

// SpawnOne spawns an asteroid at a random edge, heading inward with up to
// 30 degrees of skew.
func (f *Field) SpawnOne(ctx UpdateContext) *Asteroid {
	rng := ctx.Rand

	e := f.edges[rng.Intn(len(f.edges))]
	speed := float64(spawnMinSpeed + rng.Intn(spawnMaxSpeed-spawnMinSpeed+1))
	skew := float64(rng.Intn(2*spawnMaxSkew+1) - spawnMaxSkew)
	velocity := e.dir.Scale(speed).Rotate(skew)
	position := e.pos(rng.Float64())

	kind := 1 + rng.Intn(f.spec.Kinds)
	asteroid := NewAsteroid(position, velocity, f.spec.MinRadius*float64(kind), f.AsteroidSpec())

	if ctx.Spawner != nil {
		ctx.Spawner.Spawn(asteroid)
	}
	return asteroid
}
