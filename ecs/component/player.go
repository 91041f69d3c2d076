package component

import "github.com/jakecoffman/cp"

type Player struct {
	ReachedExit bool
}

// Pose is the presentation state derived from a player's motion.
type Pose uint8

const (
	PoseStand Pose = iota
	PoseRight
	PoseLeft
	PoseJump
	PoseFall
)

func (p Pose) String() string {
	switch p {
	case PoseRight:
		return "right"
	case PoseLeft:
		return "left"
	case PoseJump:
		return "jump"
	case PoseFall:
		return "fall"
	}
	return "stand"
}

func NewPlayer(pos cp.Vector, size int, s Speeds) *Object {
	o := NewObject(KindPlayer, pos, size, size)
	o.Motion = NewMotion(s, o.Center().Y)
	o.Player = &Player{}
	return o
}

func (o *Object) Pose() Pose {
	m := o.Motion
	if m == nil {
		return PoseStand
	}
	switch {
	case m.Right && !m.Up:
		return PoseRight
	case m.Left && !m.Up:
		return PoseLeft
	case m.YSpeed < 0 || !m.OnFloor:
		return PoseFall
	case m.Up:
		return PoseJump
	}
	return PoseStand
}
