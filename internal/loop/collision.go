package loop

import (
	"github.com/tomz197/asteroidfield/internal/object"
	"github.com/tomz197/asteroidfield/internal/world"
)

// collectCollidables snapshots the live asteroids and shots, reusing the
// scratch slices, and rebuilds the shot grid.
func (g *Game) collectCollidables() {
	g.asteroids = g.asteroids[:0]
	g.shots = g.shots[:0]

	g.arena.Each(world.Asteroid, func(obj object.Object) bool {
		if a, ok := obj.(*object.Asteroid); ok {
			g.asteroids = append(g.asteroids, a)
		}
		return true
	})
	g.arena.Each(world.Shot, func(obj object.Object) bool {
		if s, ok := obj.(*object.Shot); ok {
			g.shots = append(g.shots, s)
		}
		return true
	})

	g.grid.Clear()
	for i, s := range g.shots {
		g.grid.Insert(s.Position, i)
	}
}

// resolveCollisions checks every asteroid of the frame-start snapshot against
// the ship and the shots. Fragments from splits are checked next frame.
func (g *Game) resolveCollisions() {
	g.collectCollidables()

	shipHit := false
	for _, a := range g.asteroids {
		if !g.arena.Alive(a) {
			continue
		}

		if !shipHit && g.ship.CollidesWith(a) {
			shipHit = true
			if g.loseLife() {
				return
			}
		}

		if shot := g.firstShotHitting(a); shot != nil {
			g.session.Score += g.settings.Score(a.Radius)
			a.Split(g.arena, g.rng)
			g.arena.Despawn(shot)
		}
	}
}

// firstShotHitting returns the earliest-inserted live shot overlapping a, or nil.
func (g *Game) firstShotHitting(a *object.Asteroid) *object.Shot {
	best := -1
	g.grid.QueryAround(a.Position, func(i int) bool {
		if best >= 0 && i > best {
			return false
		}
		s := g.shots[i]
		if g.arena.Alive(s) && s.CollidesWith(a) {
			best = i
		}
		return false
	})
	if best < 0 {
		return nil
	}
	return g.shots[best]
}

// loseLife takes a life after a ship hit. Returns true if the game is over;
// otherwise the ship is back at the arena center, at rest.
func (g *Game) loseLife() bool {
	g.session.Lives--
	object.SpawnDebris(g.ship.Position, shipDebrisCount, shipDebrisSpeed, shipDebrisLifetime, g.arena, g.rng)

	if g.session.Lives <= 0 {
		g.session.Phase = PhaseGameOver
		g.logger.Info("game over", "score", g.session.Score, "level", g.session.Level)
		return true
	}

	g.ship.Respawn(g.screen.Center())
	g.logger.Info("life lost", "lives", g.session.Lives, "score", g.session.Score)
	return false
}
