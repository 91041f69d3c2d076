package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/runrotate/aim"
	"github.com/milk9111/runrotate/common"
	"github.com/milk9111/runrotate/levels"
	"github.com/milk9111/runrotate/prefabs"
	"github.com/milk9111/runrotate/stats"
)

var (
	flagLevel     string
	flagAimFrames string
	flagFPS       int
	flagWatch     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the levels in order",
	Long: `Play the embedded levels in order, starting from --level. Dying
restarts the level; reaching the exit moves on to the next one.

Camera steering reads frames that an external capture tool writes into
--aim-frames and steers the player toward a coloured marker.

Examples:
  runrotate play
  runrotate play --level level2
  runrotate play --level ./mylevel.json
  runrotate play --aim-frames /tmp/frames --watch`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level name or path to a level JSON file")
	playCmd.Flags().StringVar(&flagAimFrames, "aim-frames", "", "Directory of camera frames for aim steering")
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = tuning.yaml)")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Hot-reload prefabs/ from disk")
}

func runPlay(cmd *cobra.Command, args []string) error {
	tuning, err := prefabs.LoadTuningSpec()
	if err != nil {
		return err
	}
	aimSpec, err := prefabs.LoadAimSpec()
	if err != nil {
		return err
	}

	names, start := playlist(flagLevel)
	opts := GameOptions{Tuning: tuning, Levels: names, Start: start}

	if store, err := stats.Open(flagDBPath); err != nil {
		log.Warn("run records disabled", "db", flagDBPath, "err", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	group, ctx := errgroup.WithContext(ctx)

	var worker *aim.Worker
	if flagAimFrames != "" {
		src, err := aim.NewDirSource(flagAimFrames)
		if err != nil {
			return err
		}
		steering, err := aim.LoadSteering(aimSpec.Script)
		if err != nil {
			src.Close()
			return err
		}
		opts.Tracker = &aim.Tracker{}
		opts.Steering = steering
		display := float64(common.DisplaySize)
		worker = aim.NewWorker(src, opts.Tracker, cp.Vector{X: display, Y: display}, aim.ThresholdsFromSpec(aimSpec))
		group.Go(func() error {
			defer src.Close()
			return worker.Run(ctx)
		})
		log.Info("aim steering enabled", "frames", flagAimFrames, "script", aimSpec.Script)
	}

	game, err := NewGame(opts)
	if err != nil {
		return err
	}

	if flagWatch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			return fmt.Errorf("watch %s: %w", prefabs.Dir, err)
		}
		group.Go(func() error {
			defer watcher.Close()
			return watcher.Run(ctx, func(c prefabs.Change) {
				if c.Kind == prefabs.ChangeSpec && c.Name() == "aim.yaml" && worker != nil {
					if spec, err := prefabs.LoadAimSpec(); err == nil {
						worker.SetThresholds(aim.ThresholdsFromSpec(spec))
					}
				}
				game.Reload(c)
			})
		})
		log.Info("watching prefabs", "dir", prefabs.Dir)
	}

	fps := tuning.FPS
	if flagFPS > 0 {
		fps = flagFPS
	}
	ebiten.SetTPS(fps)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("runrotate")

	runErr := ebiten.RunGame(game)
	game.Close()
	cancel()
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("background worker failed", "err", err)
	}
	if errors.Is(runErr, ebiten.Termination) {
		return nil
	}
	return runErr
}

// playlist returns the level order and the index to start from. A path that
// is not an embedded level plays on its own.
func playlist(level string) ([]string, int) {
	names := levels.Names()
	if level == "" {
		return names, 0
	}
	if i := slices.Index(names, strings.TrimSuffix(level, ".json")); i >= 0 {
		return names, i
	}
	return []string{level}, 0
}
