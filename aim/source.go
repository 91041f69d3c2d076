package aim

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

var ErrNoFrame = errors.New("aim: frame source closed")

// FrameSource yields camera frames. Next blocks until a frame is available.
type FrameSource interface {
	Next(ctx context.Context) (image.Image, error)
}

// DirSource reads frames that an external capture tool drops into a
// directory. Tools should write to a temporary name and rename into place so
// a frame is never decoded half written.
type DirSource struct {
	dir     string
	watcher *fsnotify.Watcher
}

func NewDirSource(dir string) (*DirSource, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("aim: watch %s: %w", dir, err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("aim: watch %s: %w", dir, err)
	}
	return &DirSource{dir: dir, watcher: w}, nil
}

func (s *DirSource) Close() error {
	return s.watcher.Close()
}

func (s *DirSource) Next(ctx context.Context) (image.Image, error) {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return nil, ErrNoFrame
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !isFrame(event.Name) {
				continue
			}
			img, err := decodeFrame(event.Name)
			if err != nil {
				log.Debug("skipping frame", "path", event.Name, "err", err)
				continue
			}
			return img, nil
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil, ErrNoFrame
			}
			return nil, fmt.Errorf("aim: watch %s: %w", s.dir, err)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func isFrame(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func decodeFrame(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
