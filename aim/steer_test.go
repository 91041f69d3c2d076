package aim

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/runrotate/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSteering(t *testing.T) {
	s, err := LoadSteering("steer.tengo")
	require.NoError(t, err)
	assert.Equal(t, "steer.tengo", s.Path())

	display := cp.Vector{X: 700, Y: 700}
	cases := []struct {
		name     string
		aim      cp.Vector
		grounded bool
		want     map[component.Intent]bool
	}{
		{"lower right walks right", cp.Vector{X: 600, Y: 600}, false,
			map[component.Intent]bool{component.IntentLeft: false, component.IntentRight: true}},
		{"lower left walks left", cp.Vector{X: 100, Y: 600}, true,
			map[component.Intent]bool{component.IntentRight: false, component.IntentLeft: true}},
		{"upper left jumps left", cp.Vector{X: 100, Y: 100}, true,
			map[component.Intent]bool{component.IntentRight: false, component.IntentUp: true, component.IntentLeft: true}},
		{"upper right jumps right", cp.Vector{X: 600, Y: 100}, true,
			map[component.Intent]bool{component.IntentLeft: false, component.IntentUp: true, component.IntentRight: true}},
		{"no jump in the air", cp.Vector{X: 100, Y: 100}, false, map[component.Intent]bool{}},
		{"dead zone", cp.Vector{X: 350, Y: 300}, true, map[component.Intent]bool{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := s.Intents(c.aim, display, c.grounded)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestSteeringErrors(t *testing.T) {
	_, err := NewSteering([]byte("intent := {"))
	assert.Error(t, err)

	s, err := NewSteering([]byte(`intent := {jump: true}`))
	require.NoError(t, err)
	_, err = s.Intents(cp.Vector{}, cp.Vector{X: 700, Y: 700}, true)
	assert.ErrorContains(t, err, "unknown intent")

	s, err = NewSteering([]byte(`intent := {left: 1}`))
	require.NoError(t, err)
	_, err = s.Intents(cp.Vector{}, cp.Vector{X: 700, Y: 700}, true)
	assert.ErrorContains(t, err, "want bool")
}
