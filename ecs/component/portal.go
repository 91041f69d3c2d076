package component

import "github.com/jakecoffman/cp"

// Portal links an object to its twin. Portals pair by id: 0 with 1, 2 with 3.
type Portal struct {
	ID   int
	Twin cp.Vector
}

func (p *Portal) PairID() int {
	return p.ID ^ 1
}

func NewPortal(id int, pos, twin cp.Vector, size int) *Object {
	o := NewObject(KindPortal, pos, size, size)
	o.Portal = &Portal{ID: id, Twin: twin}
	return o
}
