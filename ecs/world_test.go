package ecs

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/runrotate/ecs/component"
)

func block(x, y float64) *component.Object {
	return component.NewBlock(cp.Vector{X: x, Y: y}, 100)
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.Spawn(block(float64(i*100), 0)))
			}
			if w.Len() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, w.Len())
			}
			if c.destroyIndex >= 0 {
				e := ents[c.destroyIndex]
				if !w.Destroy(e) {
					t.Fatalf("Destroy should return true for alive entity")
				}
				if w.IsAlive(e) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.Object(e) != nil {
					t.Fatalf("stale handle should not resolve")
				}
				if w.Destroy(e) {
					t.Fatalf("second Destroy should return false")
				}
			}
		})
	}
}

func TestWorldReusesIDsWithNewGeneration(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(block(0, 0))
	w.Destroy(a)
	b := w.Spawn(block(100, 0))

	if b.ID != a.ID || b.Gen == a.Gen {
		t.Fatalf("expected reused id with new generation, got %s after %s", b, a)
	}
	if w.Object(a) != nil {
		t.Fatalf("old handle resolved after reuse")
	}
	if got := w.MustObject(b).Position(); got.X != 100 {
		t.Fatalf("expected new object, got position %v", got)
	}
}

func TestMustObjectPanicsOnStaleHandle(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(block(0, 0))
	w.Destroy(e)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	w.MustObject(e)
}

func TestGroupMembership(t *testing.T) {
	w := NewWorld()
	all := w.NewGroup("all")
	static := w.NewGroup("static")
	e1 := w.Spawn(block(0, 0))
	e2 := w.Spawn(block(100, 0))

	tests := []struct {
		name  string
		run   func() error
		check func(t *testing.T)
	}{
		{
			name: "add_both",
			run:  func() error { return w.AddToGroup(all, e1, e2) },
			check: func(t *testing.T) {
				if w.Group(all).Len() != 2 {
					t.Fatalf("expected 2 members, got %d", w.Group(all).Len())
				}
			},
		},
		{
			name: "add_twice_is_noop",
			run:  func() error { return w.AddToGroup(all, e1) },
			check: func(t *testing.T) {
				if w.Group(all).Len() != 2 {
					t.Fatalf("expected 2 members, got %d", w.Group(all).Len())
				}
				if n := len(w.Containers(e1)); n != 1 {
					t.Fatalf("expected 1 container, got %d", n)
				}
			},
		},
		{
			name: "back_references",
			run:  func() error { return w.AddToGroup(static, e1) },
			check: func(t *testing.T) {
				got := w.Containers(e1)
				if len(got) != 2 || got[0] != all || got[1] != static {
					t.Fatalf("unexpected containers %v", got)
				}
			},
		},
		{
			name: "remove",
			run: func() error {
				if !w.RemoveFromGroup(all, e2) {
					return errors.New("remove failed")
				}
				return nil
			},
			check: func(t *testing.T) {
				if w.Group(all).Has(e2) {
					t.Fatalf("e2 still in group")
				}
				if len(w.Containers(e2)) != 0 {
					t.Fatalf("e2 still has containers %v", w.Containers(e2))
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestAddToGroupErrors(t *testing.T) {
	w := NewWorld()
	g := w.NewGroup("all")
	e := w.Spawn(block(0, 0))
	w.Destroy(e)

	if err := w.AddToGroup(g, e); !errors.Is(err, ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if err := w.AddToGroup(GroupID(42)); err == nil {
		t.Fatalf("expected error for unknown group")
	}
}

func TestKillDetachesFromAllGroups(t *testing.T) {
	w := NewWorld()
	all := w.NewGroup("all")
	dynamic := w.NewGroup("dynamic")
	e := w.Spawn(block(0, 0))
	other := w.Spawn(block(100, 0))
	if err := w.AddToGroup(all, e, other); err != nil {
		t.Fatal(err)
	}
	if err := w.AddToGroup(dynamic, e); err != nil {
		t.Fatal(err)
	}

	w.Kill(e)
	w.Kill(e)

	if !w.MustObject(e).Dead {
		t.Fatalf("expected dead flag")
	}
	if w.Group(all).Has(e) || w.Group(dynamic).Has(e) {
		t.Fatalf("dead entity still grouped")
	}
	if !w.Group(all).Has(other) {
		t.Fatalf("other entity was detached")
	}
	events := w.Events().Drain()
	if len(events) != 1 || events[0].Kind != EventDied || events[0].Entity != e {
		t.Fatalf("expected one died event, got %v", events)
	}
	if w.Events().Drain() != nil {
		t.Fatalf("queue not cleared")
	}
}

func TestComposeScene(t *testing.T) {
	w := NewWorld()
	all := w.NewGroup("all")
	background := w.NewGroup("background")
	wall := w.Spawn(block(0, 0))
	skull := w.Spawn(component.NewSkull(cp.Vector{X: 100}, 100))
	if err := w.AddToGroup(all, wall, skull); err != nil {
		t.Fatal(err)
	}
	if err := w.AddToGroup(background, skull); err != nil {
		t.Fatal(err)
	}

	scene := w.Compose(all, background)
	if len(scene.All) != 2 {
		t.Fatalf("expected 2 in scene, got %d", len(scene.All))
	}
	set := toSet(scene.Collidable)
	if _, ok := set[wall]; !ok || len(set) != 1 {
		t.Fatalf("expected only the wall to collide, got %v", scene.Collidable)
	}
}

type countingSystem struct{ n int }

func (s *countingSystem) Update(*World) { s.n++ }

func TestUpdateRunsSystemsInOrder(t *testing.T) {
	w := NewWorld()
	a, b := &countingSystem{}, &countingSystem{}
	w.AddSystem(a)
	w.AddSystem(nil)
	w.AddSystem(b)
	w.Update()
	w.Update()
	if a.n != 2 || b.n != 2 {
		t.Fatalf("expected both systems twice, got %d and %d", a.n, b.n)
	}
}

func TestSparseSetSwapRemove(t *testing.T) {
	var s SparseSet[string]
	for i, v := range []string{"a", "b", "c"} {
		if !s.Set(i+1, v) {
			t.Fatalf("Set(%d) should be new", i+1)
		}
	}
	if s.Set(2, "B") {
		t.Fatalf("update reported as new")
	}
	if !s.Remove(1) || s.Remove(1) {
		t.Fatalf("remove should succeed once")
	}
	if s.Len() != 2 {
		t.Fatalf("expected len 2, got %d", s.Len())
	}
	if v, ok := s.Get(3); !ok || v != "c" {
		t.Fatalf("expected c after swap, got %q %v", v, ok)
	}
	if v, _ := s.Get(2); v != "B" {
		t.Fatalf("expected B, got %q", v)
	}
	if s.Has(0) || s.Has(99) {
		t.Fatalf("out of range ids should be absent")
	}
}
