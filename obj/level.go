package obj

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/runrotate/ecs"
	"github.com/milk9111/runrotate/ecs/component"
	"github.com/milk9111/runrotate/ecs/system"
	"github.com/milk9111/runrotate/grid"
	"github.com/milk9111/runrotate/levels"
	"github.com/milk9111/runrotate/prefabs"
)

type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusDead
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusDead:
		return "dead"
	}
	return "playing"
}

// Level is a running instance of a level definition: its world, groups and
// rotation state.
type Level struct {
	Def    *levels.Def
	tuning *prefabs.TuningSpec

	world      *ecs.World
	all        ecs.GroupID
	static     ecs.GroupID
	background ecs.GroupID
	dynamic    ecs.GroupID
	player     ecs.Entity

	transition *grid.Transition
	ticks      int
	rotations  int
}

// NewLevel builds the world for def. Gravity and transition length come
// from the tuning spec unless the level overrides them.
func NewLevel(def *levels.Def, tuning *prefabs.TuningSpec) *Level {
	l := &Level{Def: def, tuning: tuning}
	l.build()
	return l
}

func (l *Level) build() {
	d := l.Def
	w := ecs.NewWorld()
	l.world = w
	l.static = w.NewGroup("static")
	l.background = w.NewGroup("background")
	l.dynamic = w.NewGroup("dynamic")
	l.all = w.NewGroup("all")
	l.transition = nil
	l.ticks, l.rotations = 0, 0

	gravity := d.Gravity
	if gravity == 0 {
		gravity = l.tuning.Gravity
	}
	speeds := component.Speeds{X: d.XSpeed, Y: d.YSpeed, Gravity: gravity}
	cell := d.CellSize

	add := func(group ecs.GroupID, o *component.Object) ecs.Entity {
		e := w.Spawn(o)
		_ = w.AddToGroup(group, e)
		_ = w.AddToGroup(l.all, e)
		return e
	}

	// Later members of the all group win shared grid cells, so statics go
	// first and dynamics last.
	taken := make(map[levels.Point]bool)
	for _, p := range d.Blocks {
		taken[p] = true
		add(l.static, component.NewBlock(p.Vec(), cell))
	}
	for _, p := range frame(d.Cells(), cell) {
		if taken[p] {
			continue
		}
		taken[p] = true
		add(l.static, component.NewBlock(p.Vec(), cell))
	}

	add(l.background, component.NewPrize(d.Prize.Vec(), cell))
	for _, p := range d.Skulls {
		add(l.background, component.NewSkull(p.Vec(), cell))
	}
	if len(d.Portals) == 2 {
		a, b := d.Portals[0].Vec(), d.Portals[1].Vec()
		add(l.background, component.NewPortal(0, a, b, cell))
		add(l.background, component.NewPortal(1, b, a, cell))
	}

	for _, p := range d.Boxes {
		add(l.dynamic, component.NewBox(p.Vec(), cell, speeds))
	}
	ps := speeds
	if d.PlayerGravity != 0 {
		ps.Gravity = d.PlayerGravity
	}
	l.player = add(l.dynamic, component.NewPlayer(d.Player.Vec(), d.PlayerSize(), ps))

	w.AddSystem(system.NewPhysicsSystem(l.all, l.background, l.dynamic))
	w.AddSystem(system.NewExitSystem(l.all, l.player))

	log.Debug("level built", "level", d.Name, "objects", w.Len(), "cells", d.Cells())
}

// frame lists the top-left corners of the outer ring of cells.
func frame(cells, cell int) []levels.Point {
	seen := make(map[levels.Point]bool)
	var out []levels.Point
	last := float64((cells - 1) * cell)
	for j := 0; j < cells; j++ {
		v := float64(j * cell)
		for _, p := range []levels.Point{{v, 0}, {v, last}, {0, v}, {last, v}} {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// Reset rebuilds the level from its definition.
func (l *Level) Reset() {
	log.Info("level reset", "level", l.Def.Name)
	l.build()
}

func (l *Level) World() *ecs.World {
	return l.world
}

func (l *Level) PlayerEntity() ecs.Entity {
	return l.player
}

func (l *Level) Player() *component.Object {
	return l.world.MustObject(l.player)
}

func (l *Level) Ticks() int {
	return l.ticks
}

func (l *Level) Rotations() int {
	return l.rotations
}

// Status reports the terminal state. Reaching the exit wins even if the
// same tick killed the player.
func (l *Level) Status() Status {
	p := l.Player()
	switch {
	case p.Player.ReachedExit:
		return StatusWon
	case p.Dead:
		return StatusDead
	}
	return StatusPlaying
}

// Update runs one simulation tick, or one rotation step while a rotation is
// in progress.
func (l *Level) Update() {
	if l.transition != nil {
		l.StepRotation()
		return
	}
	if l.Status() != StatusPlaying {
		return
	}
	l.world.Update()
	l.ticks++
	for _, ev := range l.world.Events().Drain() {
		o := l.world.Object(ev.Entity)
		kind := "?"
		if o != nil {
			kind = o.Kind.String()
		}
		switch ev.Kind {
		case ecs.EventDied, ecs.EventReachedExit:
			log.Info("level event", "level", l.Def.Name, "event", ev.Kind, "kind", kind, "tick", l.ticks)
		default:
			log.Debug("level event", "level", l.Def.Name, "event", ev.Kind, "kind", kind, "entity", ev.Entity)
		}
	}
}

// SetIntent sets a horizontal or descend intent on the player. Jumps go
// through Jump.
func (l *Level) SetIntent(i component.Intent, on bool) {
	if i == component.IntentUp && on {
		l.Jump()
		return
	}
	l.Player().Motion.Set(i, on)
}

// Jump starts an ascent if the player stands at its recorded ground height.
func (l *Level) Jump() bool {
	p := l.Player()
	if !p.Grounded() {
		return false
	}
	p.Motion.Up = true
	return true
}

func (l *Level) Rotating() bool {
	return l.transition != nil
}

// BeginRotation snaps the level to its grid, rotates it and starts the
// transition. It does nothing while another rotation runs or the level has
// ended.
func (l *Level) BeginRotation(dir grid.Direction) bool {
	moves, ok := l.plan(dir)
	if !ok {
		return false
	}
	l.transition = grid.NewTransition(moves, l.tuning.TransitionSteps)
	return true
}

func (l *Level) plan(dir grid.Direction) ([]grid.Move, bool) {
	if l.transition != nil || l.Status() != StatusPlaying {
		return nil, false
	}
	cell := float64(l.Def.CellSize)
	g := grid.Snap(l.world, l.all, cell, l.Def.Cells())
	moves := grid.Plan(l.world, grid.Rotate(g, dir), cell)
	l.rotations++
	log.Info("rotation started", "level", l.Def.Name, "dir", dir, "moves", len(moves))
	return moves, true
}

// StepRotation advances the running transition by one step. On the last step
// the portals are relinked to their new positions.
func (l *Level) StepRotation() {
	if l.transition == nil {
		return
	}
	if l.transition.Step() {
		return
	}
	l.transition = nil
	l.finishRotation()
}

func (l *Level) finishRotation() {
	grid.RelinkPortals(l.world, l.world.Group(l.background).Entities())
	log.Debug("rotation finished", "level", l.Def.Name, "rotations", l.rotations)
}

// Rotate performs a whole rotation in the foreground, calling onStep after
// every step.
func (l *Level) Rotate(dir grid.Direction, onStep func(step int)) bool {
	moves, ok := l.plan(dir)
	if !ok {
		return false
	}
	grid.Animate(moves, l.tuning.TransitionSteps, onStep)
	l.finishRotation()
	return true
}

// Layout renders the current snapped grid without moving anything.
func (l *Level) Layout() string {
	cell := float64(l.Def.CellSize)
	n := l.Def.Cells()
	g := grid.New(n)
	for _, e := range l.world.Group(l.all).Entities() {
		o := l.world.Object(e)
		p := o.Position()
		r := int(grid.RoundToCell(p.Y, cell) / cell)
		c := int(grid.RoundToCell(p.X, cell) / cell)
		if r < 0 || c < 0 || r >= n || c >= n {
			continue
		}
		g[r][c] = e
	}
	return grid.Layout(l.world, g)
}

// Each visits live objects in draw order: statics, background, dynamics.
func (l *Level) Each(fn func(e ecs.Entity, o *component.Object)) {
	for _, id := range []ecs.GroupID{l.static, l.background, l.dynamic} {
		for _, e := range l.world.Group(id).Entities() {
			if o := l.world.Object(e); o != nil && !o.Dead {
				fn(e, o)
			}
		}
	}
}

// Bounds is the level's playfield in pixels.
func (l *Level) Bounds() cp.BB {
	s := float64(l.Def.Display)
	return cp.BB{L: 0, B: 0, R: s, T: s}
}

func (l *Level) String() string {
	return fmt.Sprintf("%s (%s, tick %d, %d rotations)", l.Def.Name, l.Status(), l.ticks, l.rotations)
}
