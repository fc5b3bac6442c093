package app

import (
	"fmt"

	"github.com/taigrr/diorama/pkg/animal"
	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/scene"
	"github.com/taigrr/diorama/pkg/shader"
	"github.com/taigrr/diorama/pkg/xform"
)

// Joint slider steps.
const (
	jointStep = 5.0
	headStep  = 0.05
)

// Drag sensitivity, in degrees per reference pixel. The release speed
// keeps the model spinning.
const (
	dragDegrees = 0.5
	flingScale  = 0.25
)

// AnimalMode poses the articulated quadruped.
type AnimalMode struct {
	Animal *animal.Animal
	State  *scene.RenderState

	cache   *geometry.Cache
	stack   *xform.Stack
	lastDX  float64
	lastDY  float64
	dragged bool
}

// NewAnimal creates the mode with the animal at rest.
func NewAnimal(cache *geometry.Cache, fps int) (*AnimalMode, error) {
	m := &AnimalMode{
		Animal: animal.New(fps),
		State:  scene.NewRenderState(),
		cache:  cache,
		stack:  xform.New(),
	}
	cam, err := render.NewCamera(animal.CameraOptions(m.Aspect()))
	if err != nil {
		return nil, fmt.Errorf("animal camera: %w", err)
	}
	m.State.Camera = cam
	m.rebuild()
	return m, nil
}

func (*AnimalMode) Name() string             { return "animal" }
func (*AnimalMode) Aspect() float64          { return 1 }
func (*AnimalMode) Flat() bool               { return false }
func (*AnimalMode) Background() render.Color { return render.RGB(230, 230, 230) }

func (m *AnimalMode) HandleEvent(ev Event) {
	a := m.Animal
	switch ev.Kind {
	case KeyPress:
		j := &a.Joints
		switch ev.Key {
		case "j":
			j.Hip -= jointStep
		case "k":
			j.Hip += jointStep
		case "u":
			j.Knee -= jointStep
		case "i":
			j.Knee += jointStep
		case "n":
			j.Foot -= jointStep
		case "m":
			j.Foot += jointStep
		case ",":
			j.HeadZ -= headStep
		case ".":
			j.HeadZ += headStep
		case "space":
			a.ToggleWalk()
		case "0":
			a.Joints = animal.Joints{}
			a.View.Set(animal.DefaultPitch, animal.DefaultYaw)
		}
		a.Joints = a.Joints.Clamp()

	case MouseDown:
		if ev.Shift {
			a.Poke()
		}
		m.dragged = false

	case MouseDrag:
		a.View.Yaw.Position += ev.DX * dragDegrees
		a.View.Pitch.Position += ev.DY * dragDegrees
		m.lastDX, m.lastDY = ev.DX, ev.DY
		m.dragged = true

	case MouseUp:
		if m.dragged {
			a.View.Impulse(m.lastDY*dragDegrees*flingScale, m.lastDX*dragDegrees*flingScale)
		}
		m.dragged = false
	}
}

func (m *AnimalMode) rebuild() {
	m.State.Graph.Clear()
	m.Animal.Build(m.stack, m.cache, m.State.Graph, m.Animal.Clock())
}

func (m *AnimalMode) Update(dt float64) {
	m.Animal.Update(dt)
	m.rebuild()
}

func (m *AnimalMode) Render(c *shader.Contract) {
	m.State.Draw(c)
}

func (m *AnimalMode) Status() string {
	a := m.Animal
	walk := "still"
	if a.Walking {
		walk = "walking"
	}
	j := a.Joints
	return fmt.Sprintf("%s  hip %.0f knee %.0f foot %.0f head %.2f  j/k u/i n/m ,/. space walk  shift-click poke",
		walk, j.Hip, j.Knee, j.Foot, j.HeadZ)
}
