package aim

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/runrotate/ecs/component"
	"github.com/milk9111/runrotate/prefabs"
)

// Steering runs the scripted policy that turns an aim point into motion
// intents. It is not safe for concurrent use.
type Steering struct {
	path     string
	compiled *tengo.Compiled
}

// LoadSteering compiles a steering script from prefabs/scripts.
func LoadSteering(name string) (*Steering, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("aim: load steering %s: %w", name, err)
	}
	s, err := NewSteering(src)
	if err != nil {
		return nil, fmt.Errorf("aim: compile steering %s: %w", name, err)
	}
	s.path = name
	return s, nil
}

func NewSteering(src []byte) (*Steering, error) {
	script := tengo.NewScript(src)
	for name, v := range map[string]any{
		"aim_x":    0.0,
		"aim_y":    0.0,
		"width":    0.0,
		"height":   0.0,
		"grounded": false,
	} {
		if err := script.Add(name, v); err != nil {
			return nil, err
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &Steering{compiled: compiled}, nil
}

func (s *Steering) Path() string {
	return s.path
}

// Intents evaluates the policy. Only intents the script names are returned;
// the rest keep whatever state they had.
func (s *Steering) Intents(aim cp.Vector, display cp.Vector, grounded bool) (map[component.Intent]bool, error) {
	set := func(name string, v any) error {
		if err := s.compiled.Set(name, v); err != nil {
			return fmt.Errorf("aim: set %s: %w", name, err)
		}
		return nil
	}
	if err := set("aim_x", aim.X); err != nil {
		return nil, err
	}
	if err := set("aim_y", aim.Y); err != nil {
		return nil, err
	}
	if err := set("width", display.X); err != nil {
		return nil, err
	}
	if err := set("height", display.Y); err != nil {
		return nil, err
	}
	if err := set("grounded", grounded); err != nil {
		return nil, err
	}
	if err := s.compiled.Run(); err != nil {
		return nil, fmt.Errorf("aim: run steering: %w", err)
	}

	out := make(map[component.Intent]bool)
	for name, v := range s.compiled.Get("intent").Map() {
		i, ok := component.ParseIntent(name)
		if !ok {
			return nil, fmt.Errorf("aim: steering set unknown intent %q", name)
		}
		on, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("aim: steering intent %q is %T, want bool", name, v)
		}
		out[i] = on
	}
	return out, nil
}
