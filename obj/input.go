package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/runrotate/ecs/component"
	"github.com/milk9111/runrotate/grid"
)

// Input is one frame of keyboard edges. Intents change only on press and
// release so camera steering can hold them between key events.
type Input struct {
	LeftPressed   bool
	LeftReleased  bool
	RightPressed  bool
	RightReleased bool
	JumpPressed   bool
	// Rotations fire on key release.
	RotateLeft  bool
	RotateRight bool

	Pause      bool
	CopyLayout bool

	// pending holds movement edges seen while the level turns. They apply,
	// last edge wins, once the rotation has finished.
	pending map[component.Intent]bool
}

// Update polls the keyboard.
func (i *Input) Update() {
	i.LeftPressed = inpututil.IsKeyJustPressed(ebiten.KeyA)
	i.LeftReleased = inpututil.IsKeyJustReleased(ebiten.KeyA)
	i.RightPressed = inpututil.IsKeyJustPressed(ebiten.KeyD)
	i.RightReleased = inpututil.IsKeyJustReleased(ebiten.KeyD)
	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeySpace)

	i.RotateLeft = inpututil.IsKeyJustReleased(ebiten.KeyLeft) || inpututil.IsKeyJustReleased(ebiten.KeyZ)
	i.RotateRight = inpututil.IsKeyJustReleased(ebiten.KeyRight) || inpututil.IsKeyJustReleased(ebiten.KeyX)

	i.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)
	i.CopyLayout = inpututil.IsKeyJustPressed(ebiten.KeyF5)
}

// Apply feeds the frame's edges into the level. Movement edges made while a
// rotation runs, or in the frame that starts one, are held back and applied
// when the rotation ends. Jumps are not held.
func (i *Input) Apply(l *Level) {
	i.hold(component.IntentLeft, i.LeftPressed, i.LeftReleased)
	i.hold(component.IntentRight, i.RightPressed, i.RightReleased)
	if l.Status() != StatusPlaying || l.Rotating() {
		return
	}
	switch {
	case i.RotateLeft:
		l.BeginRotation(grid.Left)
		return
	case i.RotateRight:
		l.BeginRotation(grid.Right)
		return
	}
	for _, in := range []component.Intent{component.IntentLeft, component.IntentRight} {
		if on, ok := i.pending[in]; ok {
			l.SetIntent(in, on)
		}
	}
	clear(i.pending)
	if i.JumpPressed {
		l.Jump()
	}
}

func (i *Input) hold(in component.Intent, pressed, released bool) {
	if !pressed && !released {
		return
	}
	if i.pending == nil {
		i.pending = make(map[component.Intent]bool)
	}
	if pressed {
		i.pending[in] = true
	}
	if released {
		i.pending[in] = false
	}
}

// Steer applies intents produced by camera steering. Jumps stay gated on
// the ground check.
func Steer(l *Level, intents map[component.Intent]bool) {
	if l.Rotating() || l.Status() != StatusPlaying {
		return
	}
	for _, i := range []component.Intent{component.IntentLeft, component.IntentRight, component.IntentDown, component.IntentUp} {
		on, ok := intents[i]
		if !ok {
			continue
		}
		if i == component.IntentUp {
			if on {
				l.Jump()
			}
			continue
		}
		l.SetIntent(i, on)
	}
}
