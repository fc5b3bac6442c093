package scene

import (
	"math"

	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/shader"
)

// Light is a point light orbiting the Y axis.
type Light struct {
	Color   math3d.Vec3
	Enabled bool

	// Angle is the orbit position in radians.
	Angle float64
	// OrbitSpeed is added to Angle on every Advance.
	OrbitSpeed float64
	Radius     float64
	Height     float64
}

// DefaultLight returns a white light 3 units out and 2 up, turning 0.01
// radians per frame.
func DefaultLight() *Light {
	return &Light{
		Color:      math3d.V3(1, 1, 1),
		Enabled:    true,
		OrbitSpeed: 0.01,
		Radius:     3,
		Height:     2,
	}
}

// Position returns the light's world position.
func (l *Light) Position() math3d.Vec3 {
	return math3d.V3(math.Cos(l.Angle)*l.Radius, l.Height, math.Sin(l.Angle)*l.Radius)
}

// Advance moves the light one frame along its orbit.
func (l *Light) Advance() {
	l.Angle += l.OrbitSpeed
}

// RenderState is everything a frame needs besides the program: the camera,
// the light, display toggles, the scene and the marker drawables drawn
// after it. A nil Camera draws with identity view and projection; a nil
// Light draws unlit.
type RenderState struct {
	Camera      *render.Camera
	Light       *Light
	ShowNormals bool
	Graph       *Graph
	// Markers are drawn after Graph and are not part of it.
	Markers []Drawable
}

// NewRenderState returns a state with an empty graph.
func NewRenderState() *RenderState {
	return &RenderState{Graph: NewGraph()}
}

// Apply uploads the per-frame uniforms.
func (s *RenderState) Apply(c *shader.Contract) {
	if s.Camera != nil {
		c.SetCamera(s.Camera.ViewMatrix(), s.Camera.ProjMatrix())
	} else {
		c.SetCamera(math3d.Identity(), math3d.Identity())
	}
	if s.Light != nil {
		c.SetLight(s.Light.Position(), s.Light.Color)
		c.SetLighting(s.Light.Enabled)
	} else {
		c.SetLighting(false)
	}
	c.SetShowNormals(s.ShowNormals)
}

// Draw applies the frame uniforms and draws the graph then the markers.
func (s *RenderState) Draw(c *shader.Contract) {
	s.Apply(c)
	if s.Graph != nil {
		s.Graph.Draw(c)
	}
	for _, m := range s.Markers {
		m.Draw(c)
	}
}
