// Package aim turns a colour blob seen by a camera into steering input. The
// camera worker runs on its own goroutine and only ever publishes a point and
// an active flag; the game tick reads whatever was published last.
package aim

import (
	"sync/atomic"

	"github.com/jakecoffman/cp"
)

// Reading is one published aim sample in display coordinates.
type Reading struct {
	Point  cp.Vector
	Active bool
}

// Tracker hands readings from the worker to the game loop. Readers may see
// a value a frame or two old.
type Tracker struct {
	last atomic.Pointer[Reading]
}

func (t *Tracker) Publish(r Reading) {
	t.last.Store(&r)
}

// Read returns the latest reading, inactive if nothing was published yet.
func (t *Tracker) Read() Reading {
	if r := t.last.Load(); r != nil {
		return *r
	}
	return Reading{}
}
