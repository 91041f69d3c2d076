package ecs

import "strconv"

// Entity is a generational handle into a World. The zero value is the empty
// marker: it never refers to a live object.
type Entity struct {
	ID  int
	Gen int
}

func (e Entity) Valid() bool {
	return e.ID > 0
}

func (e Entity) String() string {
	if !e.Valid() {
		return "-"
	}
	return strconv.Itoa(e.ID) + "." + strconv.Itoa(e.Gen)
}
