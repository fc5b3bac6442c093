package app

import (
	"fmt"
	"log/slog"

	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/scene"
	"github.com/taigrr/diorama/pkg/shader"
	"github.com/taigrr/diorama/pkg/world"
)

// Slider is a bounded value adjusted in fixed steps.
type Slider struct {
	Name     string
	Min, Max float64
	Step     float64
	value    *float64
}

// Value returns the current value.
func (s Slider) Value() float64 { return *s.value }

// Nudge moves the value by n steps, staying inside [Min, Max].
func (s Slider) Nudge(n float64) {
	*s.value = math3d.Clamp(*s.value+n*s.Step, s.Min, s.Max)
}

// Sketch is the paint program: clicks and drags stamp the selected shape,
// the picture key appends the diorama, and sliders set color, alpha, size
// and disc segments.
type Sketch struct {
	Brush  scene.Brush
	Canvas *scene.Graph

	sliders  []Slider
	active   int
	segments float64
	log      *slog.Logger
}

// NewSketch creates an empty canvas painting with brush.
func NewSketch(brush scene.Brush, log *slog.Logger) *Sketch {
	if log == nil {
		log = slog.Default()
	}
	s := &Sketch{Brush: brush, Canvas: scene.NewGraph(), log: log}
	s.segments = float64(brush.Segments)
	s.sliders = []Slider{
		{Name: "red", Max: 1, Step: 0.05, value: &s.Brush.Color.X},
		{Name: "green", Max: 1, Step: 0.05, value: &s.Brush.Color.Y},
		{Name: "blue", Max: 1, Step: 0.05, value: &s.Brush.Color.Z},
		{Name: "alpha", Max: 1, Step: 0.05, value: &s.Brush.Color.W},
		{Name: "size", Min: 1, Max: 100, Step: 1, value: &s.Brush.Size},
		{Name: "segments", Min: 3, Max: 100, Step: 1, value: &s.segments},
	}
	return s
}

func (*Sketch) Name() string             { return "sketch" }
func (*Sketch) Aspect() float64          { return 1 }
func (*Sketch) Flat() bool               { return true }
func (*Sketch) Background() render.Color { return render.ColorBlack }

// Slider returns the slider the +/- keys adjust.
func (s *Sketch) Slider() Slider { return s.sliders[s.active] }

// sliderKeys selects sliders: r, g, b, v (alpha), z (size), x (segments).
var sliderKeys = map[string]int{"r": 0, "g": 1, "b": 2, "v": 3, "z": 4, "x": 5}

func (s *Sketch) HandleEvent(ev Event) {
	switch ev.Kind {
	case MouseDown, MouseDrag:
		s.stamp(ev.Pos)
	case KeyPress:
		s.key(ev.Key)
	}
}

func (s *Sketch) key(k string) {
	switch k {
	case "1":
		s.Brush.Kind = scene.KindPoint
	case "2":
		s.Brush.Kind = scene.KindTriangle
	case "3":
		s.Brush.Kind = scene.KindDisc
	case "c":
		s.Canvas.Clear()
	case "p":
		s.Canvas.Add(world.Diorama(s.Brush.Color.W)...)
	case "+", "=":
		s.Slider().Nudge(1)
	case "-", "_":
		s.Slider().Nudge(-1)
	default:
		if i, ok := sliderKeys[k]; ok {
			s.active = i
		}
	}
	s.Brush.Segments = int(s.segments)
}

func (s *Sketch) stamp(pos math3d.Vec2) {
	d, err := s.Brush.Stamp(pos)
	if err != nil {
		s.log.Warn("stamp failed", "kind", s.Brush.Kind, "err", err)
		return
	}
	s.Canvas.Add(d)
}

func (*Sketch) Update(float64) {}

func (s *Sketch) Render(c *shader.Contract) {
	c.SetCamera(math3d.Identity(), math3d.Identity())
	s.Canvas.Draw(c)
}

func (s *Sketch) Status() string {
	sl := s.Slider()
	return fmt.Sprintf("%s  %d shapes  [%s %.2f]  1/2/3 shape  c clear  p picture  r/g/b/v/z/x +/-",
		s.Brush.Kind, s.Canvas.Len(), sl.Name, sl.Value())
}

// Picture shows the fixed diorama.
type Picture struct {
	Canvas *scene.Graph
}

// NewPicture creates the diorama at full opacity.
func NewPicture() *Picture {
	return &Picture{Canvas: scene.NewGraph(world.Diorama(1)...)}
}

func (*Picture) Name() string             { return "picture" }
func (*Picture) Aspect() float64          { return 1 }
func (*Picture) Flat() bool               { return true }
func (*Picture) Background() render.Color { return render.ColorBlack }
func (*Picture) HandleEvent(Event)        {}
func (*Picture) Update(float64)           {}

func (p *Picture) Render(c *shader.Contract) {
	c.SetCamera(math3d.Identity(), math3d.Identity())
	p.Canvas.Draw(c)
}

func (p *Picture) Status() string {
	return fmt.Sprintf("%d triangles", p.Canvas.Count(scene.KindTriangle))
}
