package prefabs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/tuning.yaml", ChangeSpec, true},
		{"prefabs/AIM.YML", ChangeSpec, true},
		{"prefabs/scripts/steer.tengo", ChangeScript, true},
		{"prefabs/tuning.yaml~", 0, false},
		{"prefabs/notes.txt", 0, false},
	}
	for _, c := range cases {
		kind, ok := classify(c.path)
		assert.Equal(t, c.ok, ok, c.path)
		if ok {
			assert.Equal(t, c.kind, kind, c.path)
		}
	}

	assert.Equal(t, "steer.tengo", Change{Path: "prefabs/scripts/steer.tengo"}.Name())
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Change, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(c Change) { changes <- c })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tuning.yaml"), []byte("gravity: 0.5\n"), 0o644))

	select {
	case c := <-changes:
		assert.Equal(t, "tuning.yaml", c.Name())
		assert.Equal(t, ChangeSpec, c.Kind)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
