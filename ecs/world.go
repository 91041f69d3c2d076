package ecs

import (
	"errors"
	"fmt"

	"github.com/milk9111/runrotate/ecs/component"
)

var ErrEntityNotAlive = errors.New("ecs: entity not alive")

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, their objects, the group arena and system order.
type World struct {
	entities entityStore
	systems  []System
	events   EventQueue

	objects    SparseSet[*component.Object]
	containers SparseSet[[]GroupID]
	groups     []*Group
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// Spawn allocates an entity for o.
func (w *World) Spawn(o *component.Object) Entity {
	e := w.entities.create()
	w.objects.Set(e.ID, o)
	return e
}

// Destroy releases the handle; its object is no longer reachable.
func (w *World) Destroy(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	w.detach(e)
	w.objects.Remove(e.ID)
	w.containers.Remove(e.ID)
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Len returns the number of live handles.
func (w *World) Len() int {
	return w.entities.count()
}

// Object returns the object behind e, or nil for stale handles.
func (w *World) Object(e Entity) *component.Object {
	if !w.entities.isAlive(e) {
		return nil
	}
	o, _ := w.objects.Get(e.ID)
	return o
}

// MustObject is Object for callers that hold handles they know are live.
func (w *World) MustObject(e Entity) *component.Object {
	o := w.Object(e)
	if o == nil {
		panic(fmt.Sprintf("%v: %s", ErrEntityNotAlive, e))
	}
	return o
}

// NewGroup registers an empty group in the arena.
func (w *World) NewGroup(name string) GroupID {
	w.groups = append(w.groups, &Group{id: GroupID(len(w.groups) + 1), name: name})
	return GroupID(len(w.groups))
}

// Group returns the group for id, or nil.
func (w *World) Group(id GroupID) *Group {
	if id <= 0 || int(id) > len(w.groups) {
		return nil
	}
	return w.groups[id-1]
}

// AddToGroup inserts entities into a group and records the group as one of
// each entity's containers. Adding twice has no further effect.
func (w *World) AddToGroup(id GroupID, ents ...Entity) error {
	g := w.Group(id)
	if g == nil {
		return fmt.Errorf("ecs: unknown group %d", id)
	}
	for _, e := range ents {
		if !w.entities.isAlive(e) {
			return fmt.Errorf("ecs: add %s to %s: %w", e, g.name, ErrEntityNotAlive)
		}
		if !g.members.Set(e.ID, e) {
			continue
		}
		held, _ := w.containers.Get(e.ID)
		w.containers.Set(e.ID, append(held, id))
	}
	return nil
}

// RemoveFromGroup is the inverse of AddToGroup.
func (w *World) RemoveFromGroup(id GroupID, e Entity) bool {
	g := w.Group(id)
	if !g.Has(e) {
		return false
	}
	g.members.Remove(e.ID)
	held, _ := w.containers.Get(e.ID)
	for i, gid := range held {
		if gid == id {
			held = append(held[:i], held[i+1:]...)
			break
		}
	}
	w.containers.Set(e.ID, held)
	return true
}

// Containers lists the groups e currently belongs to.
func (w *World) Containers(e Entity) []GroupID {
	held, _ := w.containers.Get(e.ID)
	return append([]GroupID(nil), held...)
}

// Kill marks the object dead and removes it from every group it belongs to.
// The handle stays valid so level control can still inspect the object.
func (w *World) Kill(e Entity) {
	o := w.Object(e)
	if o == nil || o.Dead {
		return
	}
	o.Dead = true
	w.detach(e)
	w.events.Push(Event{Kind: EventDied, Entity: e})
}

func (w *World) detach(e Entity) {
	for _, id := range w.Containers(e) {
		w.RemoveFromGroup(id, e)
	}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once. Events raised during the tick stay queued
// until drained.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		s.Update(w)
	}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
