// Package animal builds an articulated quadruped out of cubes by walking a
// transform stack: a body, four legs of hip, knee and foot segments, and a
// head.
package animal

import (
	"math"

	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/motion"
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/scene"
	"github.com/taigrr/diorama/pkg/xform"
)

// Slider limits.
const (
	MaxJoint = 90.0
	MaxHeadZ = 0.5
)

// PokeDuration is how long, in seconds, the head wobbles after a poke.
const PokeDuration = 0.2

// Default view angles in degrees.
const (
	DefaultYaw   = 30.0
	DefaultPitch = 10.0
)

// Part colors.
var (
	// BodyColor colors the torso.
	BodyColor = math3d.V4(0.8, 0.6, 0.3, 1)
	// LegColor colors all four legs.
	LegColor = math3d.V4(0.3, 0.5, 0.2, 1)
	// HeadColor colors the head.
	HeadColor = math3d.V4(0.2, 0.7, 0.9, 1)
)

var zAxis = math3d.V3(0, 0, 1)

// Joints are the slider-driven angles in degrees, and the head's sideways
// offset.
type Joints struct {
	Hip   float64
	Knee  float64
	Foot  float64
	HeadZ float64
}

// Clamp limits every joint to its slider range.
func (j Joints) Clamp() Joints {
	return Joints{
		Hip:   math3d.Clamp(j.Hip, -MaxJoint, MaxJoint),
		Knee:  math3d.Clamp(j.Knee, -MaxJoint, MaxJoint),
		Foot:  math3d.Clamp(j.Foot, -MaxJoint, MaxJoint),
		HeadZ: math3d.Clamp(j.HeadZ, -MaxHeadZ, MaxHeadZ),
	}
}

// Pose is the resolved set of angles for one frame.
type Pose struct {
	Hip, Knee, Foot float64
	BodyBob         float64
	HeadNod         float64
	// HeadWobble is the poke rotation of the head about Z.
	HeadWobble float64
}

// Animal is the quadruped's state between frames.
type Animal struct {
	Joints  Joints
	Walking bool
	// View spins the whole model; drags add inertia.
	View *motion.Rotation

	clock  float64
	poked  bool
	pokeAt float64
}

// New creates an animal standing still at the default view angles.
func New(fps int) *Animal {
	view := motion.NewRotation(fps)
	view.Set(DefaultPitch, DefaultYaw)
	return &Animal{View: view}
}

// Clock returns the animation time in seconds.
func (a *Animal) Clock() float64 {
	return a.clock
}

// Update advances the animation by dt seconds.
func (a *Animal) Update(dt float64) {
	a.clock += dt
	a.View.Update()
	if a.poked && a.clock-a.pokeAt > PokeDuration {
		a.poked = false
	}
}

// ToggleWalk starts or stops the walk cycle.
func (a *Animal) ToggleWalk() {
	a.Walking = !a.Walking
}

// Poke starts a head wobble.
func (a *Animal) Poke() {
	a.poked = true
	a.pokeAt = a.clock
}

// Poked reports whether the head is wobbling.
func (a *Animal) Poked() bool {
	return a.poked
}

// PoseAt resolves the joint angles at clock time t. While walking the
// sliders are ignored and the joints follow the gait.
func (a *Animal) PoseAt(t float64) Pose {
	var p Pose
	if a.Walking {
		phase := 2 * t
		p.BodyBob = 0.05 * math.Abs(math.Sin(2*phase))
		p.HeadNod = 5 * math.Sin(2*phase)
		p.Hip = 30 * math.Sin(phase)
		p.Knee = 30 * math.Sin(phase+math.Pi/4)
		p.Foot = 15 * math.Sin(phase+math.Pi/2)
	} else {
		j := a.Joints.Clamp()
		p.Hip, p.Knee, p.Foot = j.Hip, j.Knee, j.Foot
	}
	if a.poked {
		if dt := (t - a.pokeAt) / PokeDuration; dt >= 0 && dt <= 1 {
			p.HeadWobble = 15 * math.Sin(dt*10)
		}
	}
	return p
}

// Build appends the animal's cubes to g as they are at clock time t. The
// stack is left at the depth it had on entry.
func (a *Animal) Build(s *xform.Stack, cache *geometry.Cache, g *scene.Graph, t float64) {
	p := a.PoseAt(t)
	emit := func(color math3d.Vec4) {
		g.Add(scene.NewCube(cache, s.Current(), scene.Solid(color)))
	}

	s.Scope(func() {
		s.RotateDeg(a.View.Yaw.Position, math3d.Up()).
			RotateDeg(a.View.Pitch.Position, math3d.V3(1, 0, 0))

		s.Scope(func() {
			s.Translate(0, p.BodyBob, 0).Scale(2, 1, 1)
			emit(BodyColor)
		})

		// Diagonal legs swing together.
		legs := []struct {
			x, z float64
			sign float64
		}{
			{0.8, 0.5, -1},
			{-0.8, 0.5, 1},
			{0.8, -0.5, 1},
			{-0.8, -0.5, -1},
		}
		for _, l := range legs {
			leg(s, l.x, l.z, p.Hip*l.sign, p.Knee*l.sign, p.Foot*l.sign, func() { emit(LegColor) })
		}

		s.Scope(func() {
			if p.HeadWobble != 0 {
				s.RotateDeg(p.HeadWobble, zAxis)
			}
			s.Translate(1.3, 0.4+p.BodyBob, a.Joints.Clamp().HeadZ).
				RotateDeg(p.HeadNod, zAxis).
				Scale(0.6, 0.6, 0.6)
			emit(HeadColor)
		})
	})
}

// leg draws a three segment leg. Each segment is placed in its parent's
// scaled frame.
func leg(s *xform.Stack, x, z, hip, knee, foot float64, emit func()) {
	s.Scope(func() {
		s.Translate(x, -0.5, z).RotateDeg(hip, zAxis).Scale(0.2, 1, 0.2)
		emit()

		s.Scope(func() {
			s.Translate(0, -0.7, 0).RotateDeg(knee, zAxis)
			emit()

			s.Scope(func() {
				s.Translate(0, -0.6, 0.1).RotateDeg(foot, zAxis).Scale(0.2, 0.4, 0.5)
				emit()
			})
		})
	})
}

// CubeCount is the number of cubes Build adds.
const CubeCount = 1 + 4*3 + 1

// CameraOptions returns the fixed viewpoint the animal is shown from.
func CameraOptions(aspect float64) render.CameraOptions {
	opts := render.DefaultCameraOptions(aspect)
	opts.Eye = math3d.V3(3, 3, 7)
	opts.At = math3d.Zero3()
	opts.FOV = 45
	opts.Far = 100
	return opts
}
