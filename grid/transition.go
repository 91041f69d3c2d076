package grid

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/runrotate/ecs"
	"github.com/milk9111/runrotate/ecs/component"
)

// Move carries one object from its pre-rotation position to its new cell.
type Move struct {
	Entity ecs.Entity
	Object *component.Object
	From   cp.Vector
	To     cp.Vector
}

// Plan builds the moves for every occupant of g and clears their on-floor
// flags.
func Plan(w *ecs.World, g Grid, cellSize float64) []Move {
	var moves []Move
	for r, row := range g {
		for c, e := range row {
			o := w.Object(e)
			if o == nil {
				continue
			}
			o.ClearFloor()
			moves = append(moves, Move{
				Entity: e,
				Object: o,
				From:   o.Position(),
				To:     cp.Vector{X: float64(c) * cellSize, Y: float64(r) * cellSize},
			})
		}
	}
	return moves
}

// Transition interpolates a set of moves linearly over a fixed number of
// steps. The last step lands every object exactly on its target.
type Transition struct {
	moves []Move
	steps int
	step  int
}

func NewTransition(moves []Move, steps int) *Transition {
	if steps < 1 {
		steps = 1
	}
	return &Transition{moves: moves, steps: steps}
}

// Step advances one interpolation step and reports whether more remain.
func (t *Transition) Step() bool {
	if t.Done() {
		return false
	}
	t.step++
	f := float64(t.step) / float64(t.steps)
	for _, m := range t.moves {
		m.Object.SetPosition(m.From.Lerp(m.To, f))
	}
	return !t.Done()
}

func (t *Transition) Done() bool {
	return t.step >= t.steps
}

func (t *Transition) Moves() []Move {
	return t.moves
}

// Animate runs a whole transition in the foreground, calling onStep after
// every step so the caller can render. It cannot be interrupted.
func Animate(moves []Move, steps int, onStep func(step int)) {
	t := NewTransition(moves, steps)
	for !t.Done() {
		t.Step()
		if onStep != nil {
			onStep(t.step)
		}
	}
}

// RelinkPortals points every portal's twin at its partner's current
// position. With fewer than two portals nothing changes.
func RelinkPortals(w *ecs.World, ents []ecs.Entity) {
	byID := make(map[int]*component.Object)
	for _, e := range ents {
		if o := w.Object(e); o != nil && o.Portal != nil {
			byID[o.Portal.ID] = o
		}
	}
	for _, o := range byID {
		if twin, ok := byID[o.Portal.PairID()]; ok {
			o.Portal.Twin = twin.Position()
		}
	}
}
