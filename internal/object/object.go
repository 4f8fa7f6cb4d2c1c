// Package object defines the game entities: the ship, asteroids, shots and
// the visual-only debris, all moving circles in a bounded arena.
package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/asteroidfield/internal/draw"
	"github.com/tomz197/asteroidfield/internal/input"
	"github.com/tomz197/asteroidfield/internal/physics"
)

// Spawner allows objects to add and remove objects during update.
type Spawner interface {
	// Spawn inserts obj. Inserts made during a pass are visible after it.
	Spawn(obj Object)
	// Despawn removes obj from every collection at once.
	Despawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   input.Input
	Screen  Screen
	Spawner Spawner
	Rand    *rand.Rand
}

// Screen is the visible arena in world units. The origin is the top-left corner.
type Screen struct {
	Width  float64
	Height float64
}

// Center returns the middle of the arena.
func (s Screen) Center() physics.Vector {
	return physics.Vector{X: s.Width / 2, Y: s.Height / 2}
}

// Outside reports whether p lies more than margin beyond any arena edge.
func (s Screen) Outside(p physics.Vector, margin float64) bool {
	return p.X < -margin || p.X > s.Width+margin ||
		p.Y < -margin || p.Y > s.Height+margin
}

// Diagonal returns the length of the arena diagonal.
func (s Screen) Diagonal() float64 {
	return physics.Vector{X: s.Width, Y: s.Height}.Length()
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw emits the object's shape at its current position.
	Draw(r draw.Renderer)
}

// Collider is implemented by objects that take part in collision checks.
type Collider interface {
	Circle() physics.Circle
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Body is the moving circle every collidable entity is built on.
type Body struct {
	Position physics.Vector
	Velocity physics.Vector
	Radius   float64
}

// Circle returns the body's collision circle.
func (b *Body) Circle() physics.Circle {
	return physics.Circle{Center: b.Position, Radius: b.Radius}
}

// CollidesWith reports whether the two circles overlap. It is symmetric and
// tangent circles do not collide.
func (b *Body) CollidesWith(other Collider) bool {
	return b.Circle().Overlaps(other.Circle())
}

// Advance moves the body by its velocity over dt seconds.
func (b *Body) Advance(dt float64) {
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}

func point(v physics.Vector) draw.Point {
	return draw.Point{X: v.X, Y: v.Y}
}
