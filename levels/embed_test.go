package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedLevels(t *testing.T) {
	names := Names()
	require.Equal(t, []string{"level1", "level2", "level3"}, names)

	cases := map[string]struct {
		cells, player int
		portals       int
	}{
		"level1": {7, 90, 0},
		"level2": {7, 90, 2},
		"level3": {14, 50, 2},
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			d, err := Load(name)
			require.NoError(t, err)
			want := cases[name]
			assert.Equal(t, name, d.Name)
			assert.Equal(t, 700, d.Display)
			assert.Equal(t, want.cells, d.Cells())
			assert.Equal(t, want.player, d.PlayerSize())
			assert.Len(t, d.Portals, want.portals)
			assert.NotZero(t, d.Fingerprint)
		})
	}
}

func TestLoadAcceptsSuffixAndPrefix(t *testing.T) {
	a, err := Load("level2.json")
	require.NoError(t, err)
	b, err := Load("levels/level2")
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)

	_, err = Load("level9")
	assert.Error(t, err)
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.json")
	data := []byte(`{"name":"tiny","cell_size":100,"display":300,"x_speed":6,"y_speed":10,"player":[100,100],"prize":[100,100]}`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Cells())
}

func TestFingerprintTracksContent(t *testing.T) {
	base := `{"name":"x","cell_size":100,"x_speed":6,"y_speed":10,"player":[100,100],"prize":[200,100]}`
	a, err := Parse([]byte(base))
	require.NoError(t, err)
	b, err := Parse([]byte(base))
	require.NoError(t, err)
	c, err := Parse([]byte(base + "\n"))
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"zero cell", `{"name":"x","cell_size":0,"x_speed":6,"y_speed":10}`},
		{"uneven display", `{"name":"x","cell_size":300,"x_speed":6,"y_speed":10}`},
		{"no speed", `{"name":"x","cell_size":100,"y_speed":10}`},
		{"one portal", `{"name":"x","cell_size":100,"x_speed":6,"y_speed":10,"portals":[[100,100]]}`},
		{"outside", `{"name":"x","cell_size":100,"x_speed":6,"y_speed":10,"skulls":[[650,0]]}`},
		{"player outside", `{"name":"x","cell_size":100,"x_speed":6,"y_speed":10,"player":[-1,0]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.json))
			assert.True(t, errors.Is(err, ErrInvalidLevel), "got %v", err)
		})
	}

	_, err := Parse([]byte(`{`))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidLevel))
}
