package component

import "github.com/jakecoffman/cp"

// Intent is one of the four motion-intent flags of a dynamic object.
type Intent uint8

const (
	IntentLeft Intent = iota
	IntentRight
	IntentUp
	IntentDown
)

func (i Intent) String() string {
	switch i {
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentUp:
		return "up"
	case IntentDown:
		return "down"
	}
	return "unknown"
}

func ParseIntent(name string) (Intent, bool) {
	for _, i := range []Intent{IntentLeft, IntentRight, IntentUp, IntentDown} {
		if i.String() == name {
			return i, true
		}
	}
	return 0, false
}

// Speeds configures a dynamic object. Y is the initial vertical speed and
// also the terminal value the vertical speed is clamped to.
type Speeds struct {
	X       float64
	Y       float64
	Gravity float64
}

// Motion is the dynamic capability: per-axis speeds, intent flags and the
// state the physics tick carries between frames.
type Motion struct {
	XSpeed     float64
	BaseYSpeed float64
	YSpeed     float64
	Gravity    float64

	Left  bool
	Right bool
	Up    bool
	Down  bool

	// Ground is the center-y recorded at the last landing.
	Ground    float64
	OnFloor   bool
	InTransit bool
}

func NewMotion(s Speeds, centerY float64) *Motion {
	return &Motion{
		XSpeed:     s.X,
		BaseYSpeed: s.Y,
		YSpeed:     s.Y,
		Gravity:    s.Gravity,
		Ground:     centerY,
	}
}

func (m *Motion) Set(i Intent, on bool) {
	switch i {
	case IntentLeft:
		m.Left = on
	case IntentRight:
		m.Right = on
	case IntentUp:
		m.Up = on
	case IntentDown:
		m.Down = on
	}
}

func (m *Motion) Held(i Intent) bool {
	switch i {
	case IntentLeft:
		return m.Left
	case IntentRight:
		return m.Right
	case IntentUp:
		return m.Up
	case IntentDown:
		return m.Down
	}
	return false
}

func NewBox(pos cp.Vector, size int, s Speeds) *Object {
	o := NewObject(KindBox, pos, size, size)
	o.Motion = NewMotion(s, o.Center().Y)
	return o
}

// Grounded reports whether the object rests at its recorded ground height.
// Jumps are only accepted in this state.
func (o *Object) Grounded() bool {
	return o.Motion != nil && o.Center().Y == o.Motion.Ground
}
