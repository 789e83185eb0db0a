package main

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/milk9111/scenetween/scene"
	"github.com/milk9111/scenetween/specs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	log   *zap.Logger
	world *scene.World

	scenePath string
	watcher   *specs.Watcher
}

func NewGame(log *zap.Logger, scenePath string, watch bool) (*Game, error) {
	sp, err := specs.Load(scenePath)
	if err != nil {
		return nil, err
	}

	world := scene.NewWorld(log)
	if err := specs.Build(world, sp, filepath.Dir(scenePath)); err != nil {
		return nil, err
	}

	g := &Game{
		log:       log,
		world:     world,
		scenePath: scenePath,
	}

	if watch {
		w, err := specs.Watch([]string{filepath.Dir(scenePath)})
		if err != nil {
			log.Warn("demo: scene watch disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	g.pollWatcher()
	g.handleInput()
	g.world.Update(1000.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Info("demo: scene file changed", zap.String("path", path))
			changed = true
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("demo: scene watch error", zap.Error(err))
			}
		default:
			if changed {
				g.reload()
			}
			return
		}
	}
}

func (g *Game) reload() {
	sp, err := specs.Load(g.scenePath)
	if err != nil {
		g.log.Warn("demo: reload failed", zap.Error(err))
		return
	}
	if err := specs.Reapply(g.world, sp, filepath.Dir(g.scenePath)); err != nil {
		g.log.Warn("demo: reload failed", zap.Error(err))
	}
}

// handleInput maps keys to entity events so the triggered animations in the
// scene file can be exercised interactively.
func (g *Game) handleInput() {
	emit := func(entity, event string) {
		if e := g.world.Entity(entity); e != nil {
			e.Emit(event, nil)
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		emit("pulse-box", "fade")
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		emit("pulse-box", "freeze")
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		emit("pulse-box", "thaw")
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		emit("slide-box", "tint")
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		for _, e := range g.world.Entities() {
			if e.Paused() {
				e.Play()
			} else {
				e.Pause()
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, e := range g.world.Entities() {
		drawBox(screen, e)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f    t=%.0fms    [F]ade  [P]ause fade  [R]esume fade  [T]int  [Space] pause all",
		ebiten.ActualFPS(), g.world.Now()))
}

// drawBox renders an entity as a rect centered on its node position, sized by
// scale, with a spoke line showing the z euler angle. Rotation animations
// write radians, so the angle is used as-is.
func drawBox(screen *ebiten.Image, e *scene.Entity) {
	const half = 40.0
	n := e.Node()
	if n == nil || !n.Visible {
		return
	}
	cx, cy := float32(n.Position[0]), float32(n.Position[1])
	w := float32(half * n.Scale[0])
	h := float32(half * n.Scale[1])
	clr := materialColor(e)

	vector.FillRect(screen, cx-w, cy-h, 2*w, 2*h, clr, true)

	angle := n.Rotation[2]
	spoke := float64(w)
	ex := float32(float64(cx) + spoke*math.Cos(angle))
	ey := float32(float64(cy) + spoke*math.Sin(angle))
	vector.StrokeLine(screen, cx, cy, ex, ey, 2, color.Black, true)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
