package ecs

// GroupID is a handle into the World's group arena. Entities refer to their
// containers by id, never by pointer.
type GroupID int

// Group is an unordered set of entities with identity semantics.
type Group struct {
	id      GroupID
	name    string
	members SparseSet[Entity]
}

func (g *Group) ID() GroupID {
	return g.id
}

func (g *Group) Name() string {
	return g.name
}

func (g *Group) Has(e Entity) bool {
	if g == nil {
		return false
	}
	v, ok := g.members.Get(e.ID)
	return ok && v == e
}

func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return g.members.Len()
}

// Entities returns a snapshot of the members, safe to hold across removals.
func (g *Group) Entities() []Entity {
	if g == nil {
		return nil
	}
	return append([]Entity(nil), g.members.Values()...)
}
