package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/asteroidfield/internal/draw"
	"github.com/tomz197/asteroidfield/internal/physics"
)

// debrisPool is a sync.Pool for reusing Debris objects to reduce allocations.
var debrisPool = sync.Pool{
	New: func() any {
		return &Debris{}
	},
}

// Debris is a short-lived visual fragment left behind by a destroyed asteroid.
// It never collides with anything.
type Debris struct {
	Position    physics.Vector
	Velocity    physics.Vector
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 1/60 s (1.0 = no drag)
}

// NewDebris creates a single debris fragment from the pool.
func NewDebris(pos, vel physics.Vector, lifetime float64) *Debris {
	d := debrisPool.Get().(*Debris)
	d.Position = pos
	d.Velocity = vel
	d.Lifetime = lifetime
	d.MaxLifetime = lifetime
	d.Drag = 0.95
	return d
}

// Release returns the fragment to the pool for reuse.
// Should be called when the fragment is removed from the game.
func (d *Debris) Release() {
	*d = Debris{}
	debrisPool.Put(d)
}

// SpawnDebris creates fragments in a circular burst around pos.
func SpawnDebris(pos physics.Vector, count int, speed, lifetime float64, spawner Spawner, rng *rand.Rand) {
	if spawner == nil || rng == nil {
		return
	}

	for i := 0; i < count; i++ {
		angle := rng.Float64() * 360
		// 50% to 150% of the base speed, 50% to 100% of the base lifetime
		spd := speed * (0.5 + rng.Float64())
		life := lifetime * (0.5 + rng.Float64()*0.5)

		vel := physics.Vector{X: spd, Y: 0}.Rotate(angle)
		spawner.Spawn(NewDebris(pos, vel, life))
	}
}

// Update moves the fragment and checks its lifetime.
func (d *Debris) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()

	d.Lifetime -= dt
	if d.Lifetime <= 0 {
		return true
	}

	d.Velocity = d.Velocity.Scale(math.Pow(d.Drag, dt*60))
	d.Position = d.Position.Add(d.Velocity.Scale(dt))

	return false
}

// Draw renders the fragment as a single point. Fragments in the last quarter
// of their life are not drawn.
func (d *Debris) Draw(r draw.Renderer) {
	if d.MaxLifetime > 0 && d.Lifetime/d.MaxLifetime < 0.25 {
		return
	}
	r.DrawCircle(point(d.Position), 0, true)
}
