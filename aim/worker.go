package aim

import (
	"context"
	"errors"
	"image"
	"sync/atomic"

	"github.com/jakecoffman/cp"
)

// Worker pulls frames, finds the blob and publishes the aim point.
type Worker struct {
	src        FrameSource
	tracker    *Tracker
	display    cp.Vector
	thresholds atomic.Pointer[Thresholds]
}

func NewWorker(src FrameSource, tracker *Tracker, display cp.Vector, th Thresholds) *Worker {
	w := &Worker{src: src, tracker: tracker, display: display}
	w.SetThresholds(th)
	return w
}

// SetThresholds swaps the colour range; safe to call from another goroutine.
func (w *Worker) SetThresholds(th Thresholds) {
	w.thresholds.Store(&th)
}

// Run processes frames until ctx is cancelled or the source fails.
func (w *Worker) Run(ctx context.Context) error {
	for {
		img, err := w.src.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, ErrNoFrame) {
				return nil
			}
			return err
		}
		w.Process(img)
	}
}

// Process handles one frame. Losing the blob deactivates steering but keeps
// the last point.
func (w *Worker) Process(img image.Image) Reading {
	r := w.tracker.Read()
	blob, ok := Detect(img, *w.thresholds.Load())
	r.Active = ok
	if ok {
		r.Point = AimPoint(blob, img.Bounds(), w.display)
	}
	w.tracker.Publish(r)
	return r
}
