package grid

import "fmt"

// Direction of a quarter turn.
type Direction int

const (
	Right Direction = iota
	Left
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "right", "cw":
		return Right, nil
	case "left", "ccw":
		return Left, nil
	}
	return Right, fmt.Errorf("grid: unknown rotation direction %q", s)
}

// Rotate returns g turned a quarter turn. Right is clockwise: row r of the
// result is column r of g read bottom to top. The input must be square.
func Rotate(g Grid, dir Direction) Grid {
	n := g.Size()
	for r, row := range g {
		if len(row) != n {
			panic(fmt.Sprintf("grid: rotate needs a square grid, row %d has %d cells for %d rows", r, len(row), n))
		}
	}
	out := New(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if dir == Left {
				out[r][c] = g[c][n-1-r]
			} else {
				out[r][c] = g[n-1-c][r]
			}
		}
	}
	return out
}
