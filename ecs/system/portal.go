package system

import (
	"github.com/milk9111/runrotate/ecs"
	"github.com/milk9111/runrotate/ecs/component"
)

// checkPortals teleports o to the twin of the portal it overlaps, once per
// approach. The in-transit latch only clears once o is in a portal's column
// but vertically clear of it; leaving sideways keeps the latch set.
func checkPortals(w *ecs.World, self ecs.Entity, o *component.Object, all []ecs.Entity) {
	m := o.Motion
	var entered *component.Object
	cleared := false
	for _, e := range all {
		if e == self {
			continue
		}
		p := w.Object(e)
		if p == nil || p.Portal == nil {
			continue
		}
		if o.Overlaps(p) {
			if entered == nil {
				entered = p
			}
			continue
		}
		dist, reach := o.Separation(p)
		if dist.X < reach.X && dist.Y > reach.Y {
			cleared = true
		}
	}

	switch {
	case entered != nil:
		if !m.InTransit {
			m.InTransit = true
			o.SetPosition(entered.Portal.Twin)
			w.Events().Push(ecs.Event{Kind: ecs.EventTeleported, Entity: self})
		}
	case cleared:
		m.InTransit = false
	}
}
