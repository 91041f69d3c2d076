package system

import (
	"github.com/milk9111/runrotate/ecs"
	"github.com/milk9111/runrotate/ecs/component"
)

// checkHazards kills o on contact with any hazardous object in the scene.
func checkHazards(w *ecs.World, self ecs.Entity, o *component.Object, all []ecs.Entity) {
	for _, e := range all {
		if e == self {
			continue
		}
		h := w.Object(e)
		if h == nil || !h.Hazardous {
			continue
		}
		if o.Overlaps(h) {
			w.Kill(self)
			return
		}
	}
}
