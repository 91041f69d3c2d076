package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Object is the geometric unit every level entity is built from. Position is
// the top-left corner in pixels; the center is always position + half size.
type Object struct {
	Kind      Kind
	Width     int
	Height    int
	Hazardous bool
	Dead      bool

	// Optional capabilities. Nil when the kind does not carry them.
	Motion *Motion
	Portal *Portal
	Player *Player

	pos  cp.Vector
	half cp.Vector
}

func NewObject(kind Kind, pos cp.Vector, width, height int) *Object {
	return &Object{
		Kind:      kind,
		Width:     width,
		Height:    height,
		Hazardous: kind == KindSkull,
		pos:       pos,
		half:      cp.Vector{X: float64(width / 2), Y: float64(height / 2)},
	}
}

func NewBlock(pos cp.Vector, size int) *Object {
	return NewObject(KindBlock, pos, size, size)
}

func NewSkull(pos cp.Vector, size int) *Object {
	return NewObject(KindSkull, pos, size, size)
}

func NewPrize(pos cp.Vector, size int) *Object {
	return NewObject(KindPrize, pos, size, size)
}

func (o *Object) Position() cp.Vector {
	return o.pos
}

func (o *Object) SetPosition(p cp.Vector) {
	o.pos = p
}

// HalfSize uses integer halves of the pixel size.
func (o *Object) HalfSize() cp.Vector {
	return o.half
}

func (o *Object) Center() cp.Vector {
	return o.pos.Add(o.half)
}

// Separation returns the absolute distance between the two centers and the
// sum of both half sizes, per axis.
func (o *Object) Separation(other *Object) (dist, reach cp.Vector) {
	a, b := o.Center(), other.Center()
	dist = cp.Vector{X: math.Abs(a.X - b.X), Y: math.Abs(a.Y - b.Y)}
	reach = o.half.Add(other.half)
	return dist, reach
}

// Overlaps is a strict axis-aligned box test: touching edges do not overlap.
func (o *Object) Overlaps(other *Object) bool {
	if o == nil || other == nil {
		return false
	}
	dist, reach := o.Separation(other)
	return dist.X < reach.X && dist.Y < reach.Y
}

// ClearFloor drops the on-floor flag of dynamic objects. Static objects have
// nothing to clear.
func (o *Object) ClearFloor() {
	if o.Motion != nil {
		o.Motion.OnFloor = false
	}
}
