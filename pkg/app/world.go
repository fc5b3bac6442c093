package app

import (
	"fmt"
	"log/slog"

	"github.com/taigrr/diorama/pkg/config"
	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/scene"
	"github.com/taigrr/diorama/pkg/shader"
	"github.com/taigrr/diorama/pkg/world"
)

// sceneAspect is the canvas shape of the first-person scenes.
const sceneAspect = 4.0 / 3.0

// World walks the procedural tower grid.
type World struct {
	State *scene.RenderState
}

// NewWorld builds the grid from cfg.
func NewWorld(cache *geometry.Cache, cfg *config.Config, log *slog.Logger) (*World, error) {
	if log == nil {
		log = slog.Default()
	}
	cam, err := render.NewCamera(cfg.CameraOptions(sceneAspect))
	if err != nil {
		return nil, fmt.Errorf("world camera: %w", err)
	}
	items, err := world.Grid(cache, cfg.GridOptions(), world.NewRand(cfg.World.Seed))
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	w := &World{State: scene.NewRenderState()}
	w.State.Camera = cam
	w.State.Graph.Add(items...)
	log.Info("world built", "drawables", len(items), "cubes", w.State.Graph.Count(scene.KindCube), "seed", cfg.World.Seed)
	return w, nil
}

func (*World) Name() string             { return "world" }
func (*World) Aspect() float64          { return sceneAspect }
func (*World) Flat() bool               { return false }
func (*World) Background() render.Color { return render.ColorFromVec(world.SkyColor) }

func (w *World) HandleEvent(ev Event) {
	if ev.Kind == KeyPress {
		flyKey(w.State.Camera, ev.Key)
		return
	}
	flyDrag(w.State.Camera, ev)
}

func (*World) Update(float64) {}

func (w *World) Render(c *shader.Contract) {
	w.State.Draw(c)
}

func (w *World) Status() string {
	e := w.State.Camera.Eye()
	return fmt.Sprintf("eye %.1f %.1f %.1f  %d cubes  w/s/a/d move  q/e pan  drag look",
		e.X, e.Y, e.Z, w.State.Graph.Count(scene.KindCube))
}
