package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func useDir(t *testing.T, dir string) {
	t.Helper()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })
}

func TestLoadEmbeddedSpecs(t *testing.T) {
	useDir(t, t.TempDir())

	tuning, err := LoadTuningSpec()
	require.NoError(t, err)
	assert.Equal(t, 0.4, tuning.Gravity)
	assert.Equal(t, 60, tuning.FPS)
	assert.Equal(t, 100, tuning.TransitionSteps)
	assert.Equal(t, color.NRGBA{R: 0x2d, G: 0x3a, B: 0x67, A: 0xff}, tuning.Background.Color)
	assert.Contains(t, tuning.Poses, "fall")

	aim, err := LoadAimSpec()
	require.NoError(t, err)
	assert.Equal(t, 15.0, aim.HMax)
	assert.Equal(t, 85, aim.SMin)
	assert.Equal(t, 141, aim.VMin)
	assert.Equal(t, "steer.tengo", aim.Script)

	src, err := LoadScript(aim.Script)
	require.NoError(t, err)
	assert.Contains(t, string(src), "intent")
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tuning.yaml"), []byte("gravity: 0.7\ntransition_steps: 10\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "steer.tengo"), []byte("intent := {}"), 0o644))

	tuning, err := LoadTuningSpec()
	require.NoError(t, err)
	assert.Equal(t, 0.7, tuning.Gravity)
	assert.Equal(t, 10, tuning.TransitionSteps)
	assert.Equal(t, 60, tuning.FPS, "missing fields take defaults")

	src, err := LoadScript("scripts/steer.tengo")
	require.NoError(t, err)
	assert.Equal(t, "intent := {}", string(src))

	_, ok := ModTime("tuning.yaml")
	assert.True(t, ok)
	_, ok = ModTime("aim.yaml")
	assert.False(t, ok)
}

func TestTuningColorFallback(t *testing.T) {
	var spec TuningSpec
	require.NoError(t, yaml.Unmarshal([]byte("colors:\n  skull: \"#ff0000\"\n"), &spec))

	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, spec.Color("skull", color.White))
	assert.Equal(t, color.White, spec.Color("box", color.White))

	var nilSpec *TuningSpec
	assert.Equal(t, color.Black, nilSpec.Color("skull", color.Black))
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{`"#ff8000"`, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{`"#ff800080"`, color.NRGBA{R: 0xff, G: 0x80, A: 0x80}, false},
		{`"#xyz"`, nil, true},
		{`[1, 2]`, nil, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got.Color)
		})
	}
}
