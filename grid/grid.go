// Package grid maps level objects onto a square cell grid, rotates that grid
// a quarter turn and moves every object to its new cell.
package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/runrotate/ecs"
)

// Grid is a square array of entity handles indexed [row][column]. The zero
// Entity marks an empty cell.
type Grid [][]ecs.Entity

// New returns an empty n x n grid.
func New(n int) Grid {
	g := make(Grid, n)
	for i := range g {
		g[i] = make([]ecs.Entity, n)
	}
	return g
}

func (g Grid) Size() int {
	return len(g)
}

func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(other[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// RoundToCell rounds coord to a cell boundary. A remainder of at least half a
// cell rounds up.
func RoundToCell(coord, cell float64) float64 {
	rem := math.Mod(coord, cell)
	if rem < 0 {
		rem += cell
	}
	if rem >= math.Floor(cell/2) {
		return coord + cell - rem
	}
	return coord - rem
}

// Snap moves every member of group onto the nearest cell boundary and
// returns the occupancy grid. When two objects snap into one cell the later
// member in group order owns it. An object that snaps outside the grid is a
// programming error and panics.
func Snap(w *ecs.World, group ecs.GroupID, cellSize float64, n int) Grid {
	g := New(n)
	limits := cp.BB{L: 0, B: 0, R: float64(n - 1), T: float64(n - 1)}
	for _, e := range w.Group(group).Entities() {
		o := w.MustObject(e)
		p := o.Position()
		snapped := cp.Vector{X: RoundToCell(p.X, cellSize), Y: RoundToCell(p.Y, cellSize)}
		cell := cp.Vector{X: math.Floor(snapped.X / cellSize), Y: math.Floor(snapped.Y / cellSize)}
		if !limits.ContainsVect(cell) {
			panic(fmt.Sprintf("grid: %s %s at (%g,%g) snaps outside the %dx%d grid", o.Kind, e, p.X, p.Y, n, n))
		}
		o.SetPosition(snapped)
		g[int(cell.Y)][int(cell.X)] = e
	}
	return g
}

// Layout renders the grid one row per line using each occupant's glyph.
func Layout(w *ecs.World, g Grid) string {
	var b strings.Builder
	for _, row := range g {
		for _, e := range row {
			o := w.Object(e)
			if o == nil {
				b.WriteByte('.')
				continue
			}
			b.WriteByte(o.Kind.Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
