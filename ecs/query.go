package ecs

// Scene is the per-tick view the physics engine reads: every entity in the
// level and the collidable subset (everything not marked background).
type Scene struct {
	All        []Entity
	Collidable []Entity
}

// Compose snapshots the scene from the all-objects group minus the
// background group.
func (w *World) Compose(all, background GroupID) Scene {
	members := w.Group(all).Entities()
	return Scene{
		All:        members,
		Collidable: Difference(members, w.Group(background)),
	}
}

// Difference returns the entities of a not present in b.
func Difference(a []Entity, b *Group) []Entity {
	out := make([]Entity, 0, len(a))
	for _, e := range a {
		if !b.Has(e) {
			out = append(out, e)
		}
	}
	return out
}
