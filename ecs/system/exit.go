package system

import (
	"math"

	"github.com/milk9111/runrotate/ecs"
	"github.com/milk9111/runrotate/ecs/component"
)

// ExitSystem flags the player once it stands in an exit cell.
type ExitSystem struct {
	all    ecs.GroupID
	player ecs.Entity
}

func NewExitSystem(all ecs.GroupID, player ecs.Entity) *ExitSystem {
	return &ExitSystem{all: all, player: player}
}

func (s *ExitSystem) Update(w *ecs.World) {
	CheckExit(w, s.player, w.Group(s.all).Entities())
}

// CheckExit requires the player to be horizontally within half of the
// combined half widths of a prize, so it has to be well inside the door.
func CheckExit(w *ecs.World, self ecs.Entity, all []ecs.Entity) bool {
	o := w.Object(self)
	if o == nil || o.Player == nil {
		return false
	}
	if o.Player.ReachedExit {
		return true
	}
	for _, e := range all {
		if e == self {
			continue
		}
		p := w.Object(e)
		if p == nil || p.Kind != component.KindPrize {
			continue
		}
		dist, reach := o.Separation(p)
		if dist.X < math.Floor(reach.X/2) && dist.Y < reach.Y {
			o.Player.ReachedExit = true
			w.Events().Push(ecs.Event{Kind: ecs.EventReachedExit, Entity: self})
			return true
		}
	}
	return false
}
