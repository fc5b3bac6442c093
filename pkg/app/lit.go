package app

import (
	"fmt"

	"github.com/taigrr/diorama/pkg/config"
	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/motion"
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/scene"
	"github.com/taigrr/diorama/pkg/shader"
	"github.com/taigrr/diorama/pkg/world"
)

// Light slider steps and limits.
const (
	radiusStep = 0.5
	heightStep = 0.5
	maxRadius  = 10.0
	maxHeight  = 10.0
)

// lightPalette is what the color key cycles through.
var lightPalette = []math3d.Vec3{
	math3d.V3(1, 1, 1),
	math3d.V3(1, 0.85, 0.6),
	math3d.V3(0.6, 0.8, 1),
	math3d.V3(1, 0.3, 0.3),
}

// Lit is the Phong showcase: a light orbits a textured cube and a sphere.
// Radius and height changes ease in.
type Lit struct {
	State   *scene.RenderState
	Light   *scene.Light
	Markers *world.Markers

	radius, height motion.Follower
	palette        int
}

// NewLit builds the lit scene from cfg.
func NewLit(cache *geometry.Cache, cfg *config.Config) (*Lit, error) {
	cam, err := render.NewCamera(cfg.CameraOptions(sceneAspect))
	if err != nil {
		return nil, fmt.Errorf("lit camera: %w", err)
	}
	light := cfg.NewLight()
	objs, markers, err := world.Lit(cache, cfg.LitOptions(), light.Position())
	if err != nil {
		return nil, err
	}

	l := &Lit{
		State:   scene.NewRenderState(),
		Light:   light,
		Markers: markers,
		radius:  motion.NewFollower(cfg.Render.FPS, light.Radius),
		height:  motion.NewFollower(cfg.Render.FPS, light.Height),
	}
	l.State.Camera = cam
	l.State.Light = light
	l.State.Graph.Add(objs...)
	l.State.Markers = markers.Drawables()
	return l, nil
}

func (*Lit) Name() string             { return "lit" }
func (*Lit) Aspect() float64          { return sceneAspect }
func (*Lit) Flat() bool               { return false }
func (*Lit) Background() render.Color { return render.ColorFromVec(world.SkyColor) }

func (l *Lit) HandleEvent(ev Event) {
	if ev.Kind != KeyPress {
		flyDrag(l.State.Camera, ev)
		return
	}
	if flyKey(l.State.Camera, ev.Key) {
		return
	}
	switch ev.Key {
	case "n":
		l.State.ShowNormals = !l.State.ShowNormals
	case "l":
		l.Light.Enabled = !l.Light.Enabled
	case "c":
		l.palette = (l.palette + 1) % len(lightPalette)
		l.Light.Color = lightPalette[l.palette]
	case "[":
		l.radius.Target = math3d.Clamp(l.radius.Target-radiusStep, 0, maxRadius)
	case "]":
		l.radius.Target = math3d.Clamp(l.radius.Target+radiusStep, 0, maxRadius)
	case ";":
		l.height.Target = math3d.Clamp(l.height.Target-heightStep, -maxHeight, maxHeight)
	case "'":
		l.height.Target = math3d.Clamp(l.height.Target+heightStep, -maxHeight, maxHeight)
	}
}

// Update moves the light one step along its orbit and the markers with it.
func (l *Lit) Update(float64) {
	l.Light.Radius = l.radius.Update()
	l.Light.Height = l.height.Update()
	l.Light.Advance()
	l.Markers.Update(l.Light.Position())
}

func (l *Lit) Render(c *shader.Contract) {
	l.State.Draw(c)
}

func (l *Lit) Status() string {
	on := "off"
	if l.Light.Enabled {
		on = "on"
	}
	return fmt.Sprintf("light %s  radius %.1f height %.1f  n normals  l light  c color  [/] radius  ;/' height",
		on, l.radius.Target, l.height.Target)
}
