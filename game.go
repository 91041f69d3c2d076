package main

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"

	"github.com/milk9111/runrotate/aim"
	"github.com/milk9111/runrotate/ecs"
	"github.com/milk9111/runrotate/ecs/component"
	"github.com/milk9111/runrotate/levels"
	"github.com/milk9111/runrotate/obj"
	"github.com/milk9111/runrotate/prefabs"
	"github.com/milk9111/runrotate/stats"
)

var kindFallback = map[component.Kind]color.Color{
	component.KindBlock:  colornames.Slategray,
	component.KindSkull:  colornames.Crimson,
	component.KindPortal: colornames.Mediumpurple,
	component.KindPrize:  colornames.Gold,
	component.KindPlayer: colornames.Limegreen,
	component.KindBox:    colornames.Sienna,
}

type GameOptions struct {
	Tuning *prefabs.TuningSpec
	Levels []string
	Start  int
	// Store, Tracker and Steering are optional.
	Store    *stats.Store
	Tracker  *aim.Tracker
	Steering *aim.Steering
}

type Game struct {
	tuning *prefabs.TuningSpec
	names  []string
	index  int
	level  *obj.Level
	input  obj.Input

	tracker     *aim.Tracker
	steering    *aim.Steering
	steerFailed bool

	store   *stats.Store
	session uuid.UUID

	paused  bool
	pauseUI *ebitenui.UI
	quit    bool

	reloads   chan prefabs.Change
	clipboard error
	clipInit  bool
}

func NewGame(opts GameOptions) (*Game, error) {
	if len(opts.Levels) == 0 {
		return nil, fmt.Errorf("%w: no levels to play", levels.ErrInvalidLevel)
	}
	g := &Game{
		tuning:   opts.Tuning,
		names:    opts.Levels,
		index:    opts.Start,
		tracker:  opts.Tracker,
		steering: opts.Steering,
		store:    opts.Store,
		session:  uuid.New(),
		reloads:  make(chan prefabs.Change, 8),
	}
	if err := g.load(g.index); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)
	log.Info("session started", "session", g.session, "level", g.level.Def.Name)
	return g, nil
}

func (g *Game) load(i int) error {
	def, err := levels.Load(g.names[i])
	if err != nil {
		return err
	}
	g.index = i
	g.level = obj.NewLevel(def, g.tuning)
	log.Info("level loaded", "level", def.Name, "fingerprint", fmt.Sprintf("%016x", def.Fingerprint))
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.applyReloads()

	g.input.Update()
	if g.input.CopyLayout {
		g.copyLayout()
	}
	if g.input.Pause && !g.level.Rotating() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	// Input.Apply holds movement edges back while the level turns.
	g.input.Apply(g.level)
	g.steer()
	g.level.Update()

	switch g.level.Status() {
	case obj.StatusWon:
		g.record(stats.OutcomeWon)
		g.advance()
	case obj.StatusDead:
		g.record(stats.OutcomeDied)
		g.level.Reset()
	}
	return nil
}

func (g *Game) steer() {
	if g.tracker == nil || g.steering == nil {
		return
	}
	r := g.tracker.Read()
	if !r.Active {
		return
	}
	d := float64(g.level.Def.Display)
	intents, err := g.steering.Intents(r.Point, cp.Vector{X: d, Y: d}, g.level.Player().Grounded())
	if err != nil {
		if !g.steerFailed {
			log.Error("steering failed", "script", g.steering.Path(), "err", err)
		}
		g.steerFailed = true
		return
	}
	g.steerFailed = false
	obj.Steer(g.level, intents)
}

func (g *Game) advance() {
	next := (g.index + 1) % len(g.names)
	if err := g.load(next); err != nil {
		log.Error("cannot load next level", "level", g.names[next], "err", err)
		g.level.Reset()
	}
}

// Restart rebuilds the current level, counting the abandoned run as a quit.
func (g *Game) Restart() {
	g.record(stats.OutcomeQuit)
	g.level.Reset()
	g.paused = false
}

func (g *Game) Resume() {
	g.paused = false
}

func (g *Game) Quit() {
	g.quit = true
}

// Close records an unfinished run. Call it after the game loop exits.
func (g *Game) Close() {
	if g.level.Status() == obj.StatusPlaying && g.level.Ticks() > 0 {
		g.record(stats.OutcomeQuit)
	}
	if g.store == nil {
		return
	}
	runs, err := g.store.Session(g.session)
	if err != nil {
		log.Warn("session summary unavailable", "err", err)
		return
	}
	counts := make(map[stats.Outcome]int)
	for _, r := range runs {
		counts[r.Outcome]++
	}
	log.Info("session finished", "session", g.session, "runs", len(runs),
		"won", counts[stats.OutcomeWon], "died", counts[stats.OutcomeDied])
}

func (g *Game) record(outcome stats.Outcome) {
	if g.store == nil {
		return
	}
	def := g.level.Def
	_, err := g.store.Record(stats.Run{
		Session:     g.session,
		Level:       def.Name,
		Fingerprint: def.Fingerprint,
		Outcome:     outcome,
		Ticks:       g.level.Ticks(),
		Rotations:   g.level.Rotations(),
	})
	if err != nil {
		log.Error("cannot record run", "level", def.Name, "err", err)
	}
}

// Reload queues a prefab change for the game loop. It is safe to call from
// the watcher goroutine; changes are dropped if the queue is full.
func (g *Game) Reload(c prefabs.Change) {
	select {
	case g.reloads <- c:
	default:
		log.Warn("reload dropped", "path", c.Path)
	}
}

func (g *Game) applyReloads() {
	for {
		select {
		case c := <-g.reloads:
			g.reload(c)
		default:
			return
		}
	}
}

func (g *Game) reload(c prefabs.Change) {
	switch c.Kind {
	case prefabs.ChangeSpec:
		if c.Name() != "tuning.yaml" {
			return
		}
		spec, err := prefabs.LoadTuningSpec()
		if err != nil {
			log.Error("tuning reload failed", "err", err)
			return
		}
		g.tuning = spec
		mod, _ := prefabs.ModTime(c.Name())
		log.Info("tuning reloaded; applies from the next level load", "modified", mod)
	case prefabs.ChangeScript:
		if g.steering == nil || c.Name() != filepath.Base(g.steering.Path()) {
			return
		}
		s, err := aim.LoadSteering(g.steering.Path())
		if err != nil {
			log.Error("steering reload failed", "err", err)
			return
		}
		g.steering = s
		g.steerFailed = false
		log.Info("steering reloaded", "script", c.Name())
	}
}

func (g *Game) copyLayout() {
	if !g.clipInit {
		g.clipInit = true
		g.clipboard = clipboard.Init()
	}
	if g.clipboard != nil {
		log.Warn("clipboard unavailable", "err", g.clipboard)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.level.Layout()))
	log.Info("layout copied", "level", g.level.Def.Name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorOr(g.tuning.Background, colornames.Midnightblue))
	margin := float32(g.tuning.SideMargin)

	g.level.Each(func(_ ecs.Entity, o *component.Object) {
		p := o.Position()
		x, y := margin+float32(p.X), float32(p.Y)
		w, h := float32(o.Width), float32(o.Height)
		vector.DrawFilledRect(screen, x, y, w, h, g.colorFor(o), false)
		if o.Kind == component.KindPortal || o.Kind == component.KindPrize {
			vector.StrokeRect(screen, x+4, y+4, w-8, h-8, 2, color.White, false)
		}
	})

	if g.tracker != nil {
		if r := g.tracker.Read(); r.Active {
			vector.StrokeCircle(screen, margin+float32(r.Point.X), float32(r.Point.Y), 12, 2, colornames.Orangered, true)
		}
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  rotations: %d", g.level.Def.Name, g.level.Rotations()), 4, 4)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) colorFor(o *component.Object) color.Color {
	fallback := kindFallback[o.Kind]
	if o.Kind == component.KindPlayer {
		if c, ok := g.tuning.Poses[o.Pose().String()]; ok {
			return colorOr(c, fallback)
		}
	}
	return g.tuning.Color(o.Kind.String(), fallback)
}

func colorOr(c *prefabs.YAMLColor, fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	d := g.level.Def.Display
	return d + 2*g.tuning.SideMargin, d
}
