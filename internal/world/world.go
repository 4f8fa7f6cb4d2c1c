// Package world holds the live entities of a game session in a single arena.
// Each entity carries role flags saying which collections it belongs to, so
// removing it from the arena removes it from all of them at once.
package world

import (
	"github.com/tomz197/asteroidfield/internal/object"
)

// Role is a set of collection memberships.
type Role uint8

const (
	Updatable Role = 1 << iota // Updated every frame
	Drawable                   // Drawn every frame
	Asteroid                   // Checked against the ship and shots
	Shot                       // Checked against asteroids

	// None marks a despawned entry waiting for compaction.
	None Role = 0
)

// Has reports whether r includes every role in other.
func (r Role) Has(other Role) bool {
	return r&other == other
}

// RolesOf returns the roles an object joins when it is spawned.
func RolesOf(obj object.Object) Role {
	switch obj.(type) {
	case *object.Asteroid:
		return Updatable | Drawable | Asteroid
	case *object.Shot:
		return Updatable | Drawable | Shot
	default:
		return Updatable | Drawable
	}
}

type entry struct {
	obj   object.Object
	roles Role
}

// Arena stores every live entity in insertion order.
//
// Spawned objects are queued and only become visible after Flush, so a pass
// over the arena never sees entities inserted during that pass. Despawned
// objects lose their roles immediately and are dropped by Compact.
type Arena struct {
	entries []entry
	index   map[object.Object]int // Position in entries
	pending []object.Object
	dead    int
}

// Ensure Arena satisfies object.Spawner.
var _ object.Spawner = (*Arena)(nil)

// New creates an empty arena.
func New() *Arena {
	return &Arena{
		index: make(map[object.Object]int),
	}
}

// Add inserts obj immediately with its default roles.
func (a *Arena) Add(obj object.Object) {
	a.AddWithRoles(obj, RolesOf(obj))
}

// AddWithRoles inserts obj immediately with explicit roles. Adding an object
// that is already in the arena only replaces its roles; None marks it
// despawned.
func (a *Arena) AddWithRoles(obj object.Object, roles Role) {
	if i, ok := a.index[obj]; ok {
		switch was := a.entries[i].roles; {
		case was == None && roles != None:
			a.dead--
		case was != None && roles == None:
			a.dead++
		}
		a.entries[i].roles = roles
		return
	}
	if roles == None {
		a.dead++
	}
	a.index[obj] = len(a.entries)
	a.entries = append(a.entries, entry{obj: obj, roles: roles})
}

// Spawn queues obj to be added by the next Flush.
func (a *Arena) Spawn(obj object.Object) {
	a.pending = append(a.pending, obj)
}

// Despawn removes obj from every collection. Queued objects are dropped from
// the queue. Despawning an unknown object does nothing.
func (a *Arena) Despawn(obj object.Object) {
	if i, ok := a.index[obj]; ok {
		if a.entries[i].roles != None {
			a.entries[i].roles = None
			a.dead++
		}
		return
	}
	for i, p := range a.pending {
		if p == obj {
			a.pending = append(a.pending[:i], a.pending[i+1:]...)
			object.ReleaseObject(obj)
			return
		}
	}
}

// Flush adds all queued objects and returns how many were added.
func (a *Arena) Flush() int {
	n := len(a.pending)
	for _, obj := range a.pending {
		a.Add(obj)
	}
	clear(a.pending)
	a.pending = a.pending[:0]
	return n
}

// Compact drops despawned entries, releasing pooled objects, and keeps the
// order of the rest.
func (a *Arena) Compact() {
	if a.dead == 0 {
		return
	}

	kept := a.entries[:0]
	for _, e := range a.entries {
		if e.roles == None {
			delete(a.index, e.obj)
			object.ReleaseObject(e.obj)
			continue
		}
		a.index[e.obj] = len(kept)
		kept = append(kept, e)
	}
	clear(a.entries[len(kept):])
	a.entries = kept
	a.dead = 0
}

// Alive reports whether obj is in the arena and not despawned.
func (a *Arena) Alive(obj object.Object) bool {
	i, ok := a.index[obj]
	return ok && a.entries[i].roles != None
}

// Each calls fn for every live object that has role, in insertion order.
// Objects despawned during the pass are skipped; objects added during the
// pass are not visited. Iteration stops if fn returns false.
func (a *Arena) Each(role Role, fn func(obj object.Object) bool) {
	n := len(a.entries)
	for i := 0; i < n; i++ {
		e := a.entries[i]
		if e.roles == None || !e.roles.Has(role) {
			continue
		}
		if !fn(e.obj) {
			return
		}
	}
}

// Count returns the number of live objects with role.
func (a *Arena) Count(role Role) int {
	n := 0
	a.Each(role, func(object.Object) bool {
		n++
		return true
	})
	return n
}

// Len returns the number of entries including despawned ones not yet compacted.
func (a *Arena) Len() int {
	return len(a.entries)
}
