package component

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestOverlapsIsSymmetric(t *testing.T) {
	cases := []struct {
		name string
		a, b *Object
		want bool
	}{
		{"same cell", NewBlock(cp.Vector{}, 100), NewBlock(cp.Vector{}, 100), true},
		{"touching edge", NewBlock(cp.Vector{}, 100), NewBlock(cp.Vector{X: 100}, 100), false},
		{"touching corner", NewBlock(cp.Vector{}, 100), NewBlock(cp.Vector{X: 100, Y: 100}, 100), false},
		{"one pixel in", NewBlock(cp.Vector{}, 100), NewBlock(cp.Vector{X: 99}, 100), true},
		{"player in cell", NewPlayer(cp.Vector{X: 5, Y: 5}, 90, Speeds{}), NewBlock(cp.Vector{}, 100), true},
		{"apart", NewBlock(cp.Vector{}, 50), NewSkull(cp.Vector{X: 300, Y: 10}, 50), false},
		{"nil", NewBlock(cp.Vector{}, 100), nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.a.Overlaps(c.b))
			assert.Equal(t, c.want, c.b.Overlaps(c.a))
		})
	}
}

func TestHalfSizeTruncates(t *testing.T) {
	o := NewPlayer(cp.Vector{X: 10, Y: 20}, 45, Speeds{})
	assert.Equal(t, cp.Vector{X: 22, Y: 22}, o.HalfSize())
	assert.Equal(t, cp.Vector{X: 32, Y: 42}, o.Center())
}

func TestCapabilities(t *testing.T) {
	assert.True(t, NewSkull(cp.Vector{}, 100).Hazardous)
	assert.False(t, NewBlock(cp.Vector{}, 100).Hazardous)
	assert.Nil(t, NewBlock(cp.Vector{}, 100).Motion)

	box := NewBox(cp.Vector{Y: 100}, 100, Speeds{X: 6, Y: 10, Gravity: 0.4})
	assert.True(t, box.Kind.Dynamic())
	assert.Equal(t, 150.0, box.Motion.Ground)
	assert.True(t, box.Grounded())

	p := NewPortal(3, cp.Vector{}, cp.Vector{X: 100}, 100)
	assert.Equal(t, 2, p.Portal.PairID())
	assert.Equal(t, 1, NewPortal(0, cp.Vector{}, cp.Vector{}, 100).Portal.PairID())
}

func TestClearFloor(t *testing.T) {
	box := NewBox(cp.Vector{}, 100, Speeds{})
	box.Motion.OnFloor = true
	box.ClearFloor()
	assert.False(t, box.Motion.OnFloor)

	NewBlock(cp.Vector{}, 100).ClearFloor()
}

func TestPose(t *testing.T) {
	cases := []struct {
		name string
		set  func(m *Motion)
		want Pose
	}{
		{"stand", func(m *Motion) { m.OnFloor = true }, PoseStand},
		{"walk right", func(m *Motion) { m.OnFloor = true; m.Right = true }, PoseRight},
		{"walk left", func(m *Motion) { m.Left = true }, PoseLeft},
		{"jump", func(m *Motion) { m.OnFloor = true; m.Up = true; m.Right = true }, PoseJump},
		{"falling off a ledge", func(m *Motion) {}, PoseFall},
		{"past the apex", func(m *Motion) { m.OnFloor = true; m.Up = true; m.YSpeed = -1 }, PoseFall},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPlayer(cp.Vector{}, 90, Speeds{X: 6, Y: 10, Gravity: 0.4})
			c.set(p.Motion)
			assert.Equal(t, c.want, p.Pose())
		})
	}
}

func TestParseNames(t *testing.T) {
	for _, k := range []Kind{KindBlock, KindSkull, KindPortal, KindPrize, KindPlayer, KindBox} {
		got, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("ghost")
	assert.False(t, ok)

	for _, i := range []Intent{IntentLeft, IntentRight, IntentUp, IntentDown} {
		got, ok := ParseIntent(i.String())
		assert.True(t, ok)
		assert.Equal(t, i, got)
	}
	_, ok = ParseIntent("jump")
	assert.False(t, ok)
}
