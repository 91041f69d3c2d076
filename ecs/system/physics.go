package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/runrotate/common"
	"github.com/milk9111/runrotate/ecs"
	"github.com/milk9111/runrotate/ecs/component"
)

// airControl divides the horizontal speed while ascending.
const airControl = 1.5

// PhysicsSystem integrates every member of the dynamic group once per tick
// against a scene snapshot taken at the start of the tick.
type PhysicsSystem struct {
	all        ecs.GroupID
	background ecs.GroupID
	dynamic    ecs.GroupID
}

func NewPhysicsSystem(all, background, dynamic ecs.GroupID) *PhysicsSystem {
	return &PhysicsSystem{all: all, background: background, dynamic: dynamic}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	scene := w.Compose(s.all, s.background)
	for _, e := range w.Group(s.dynamic).Entities() {
		Integrate(w, e, scene)
	}
}

// Integrate advances one dynamic entity by one tick. Blocked moves revert to
// the position held at the start of the tick; nothing is ever pushed out.
func Integrate(w *ecs.World, self ecs.Entity, scene ecs.Scene) {
	o := w.Object(self)
	if o == nil || o.Dead || o.Motion == nil {
		return
	}
	m := o.Motion
	prev := o.Position()

	blocked := func() bool { return collides(w, self, o, scene.Collidable) }
	shift := func(dx, dy float64) {
		o.SetPosition(o.Position().Add(cp.Vector{X: dx, Y: dy}))
	}
	revertX := func() { o.SetPosition(cp.Vector{X: prev.X, Y: o.Position().Y}) }
	revertY := func() { o.SetPosition(cp.Vector{X: o.Position().X, Y: prev.Y}) }

	if m.Right && !m.Up {
		shift(m.XSpeed, 0)
		if blocked() {
			revertX()
		}
	}
	if m.Left && !m.Up {
		shift(-m.XSpeed, 0)
		if blocked() {
			revertX()
		}
	}

	if m.Up {
		shift(0, -m.YSpeed)
		m.YSpeed -= m.Gravity
		if blocked() {
			m.Up = false
			m.YSpeed = 0
			revertY()
		}

		nudge := common.FloorDiv(m.XSpeed, airControl)
		if m.Left {
			shift(-nudge, 0)
			if blocked() {
				m.Left = false
				revertX()
			}
		} else if m.Right {
			shift(nudge, 0)
			if blocked() {
				m.Right = false
				revertX()
			}
		}
	} else if m.Down {
		shift(0, m.YSpeed)
		m.YSpeed += m.Gravity
		if blocked() {
			landed := !m.OnFloor
			m.OnFloor = true
			m.Down = false
			revertY()
			m.Ground = o.Center().Y
			if landed {
				w.Events().Push(ecs.Event{Kind: ecs.EventLanded, Entity: self})
			}
		}
	}

	if !m.Up && !m.Down && !supported(w, self, o, scene.Collidable) {
		m.YSpeed = m.BaseYSpeed
		m.Down = true
	}

	if m.YSpeed > m.BaseYSpeed {
		m.YSpeed = m.BaseYSpeed
	}

	checkPortals(w, self, o, scene.All)
	checkHazards(w, self, o, scene.All)
}

// collides short-circuits on the first overlapping collidable.
func collides(w *ecs.World, self ecs.Entity, o *component.Object, collidable []ecs.Entity) bool {
	for _, e := range collidable {
		if e == self {
			continue
		}
		other := w.Object(e)
		if other == nil || other.Dead {
			continue
		}
		if o.Overlaps(other) {
			return true
		}
	}
	return false
}

// supported reports whether something collidable sits directly below o in its
// column within touching distance. Touching counts as support; a neighbour
// above or beside o does not.
func supported(w *ecs.World, self ecs.Entity, o *component.Object, collidable []ecs.Entity) bool {
	for _, e := range collidable {
		if e == self {
			continue
		}
		other := w.Object(e)
		if other == nil || other.Dead {
			continue
		}
		if other.Center().Y <= o.Center().Y {
			continue
		}
		dist, reach := o.Separation(other)
		if dist.X < reach.X && dist.Y <= reach.Y {
			return true
		}
	}
	return false
}
