// Package motion provides spring-damped values for drag inertia and eased
// sliders, stepped once per frame.
package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/diorama/pkg/math3d"
)

// Spring tuning shared by all values: moderate speed, critically damped so
// nothing overshoots.
const (
	frequency = 4.0
	damping   = 1.0
)

// restEpsilon is the speed below which a value counts as settled.
const restEpsilon = 1e-4

// Axis is one rotation axis. Each frame the velocity is added to the
// position and then eased toward zero by a spring.
type Axis struct {
	Position float64
	Velocity float64

	spring harmonica.Spring
	accel  float64
}

// NewAxis creates an axis stepped at fps frames per second.
func NewAxis(fps int) Axis {
	return Axis{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Update advances one frame.
func (a *Axis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
}

// Impulse adds to the velocity.
func (a *Axis) Impulse(v float64) {
	a.Velocity += v
}

// Resting reports whether the axis has come to rest.
func (a *Axis) Resting() bool {
	return math.Abs(a.Velocity) < restEpsilon && math.Abs(a.accel) < restEpsilon
}

// Rotation is a yaw/pitch pair in degrees with inertia, used to spin a
// model with mouse drags.
type Rotation struct {
	Pitch, Yaw Axis
	fps        int
}

// NewRotation creates a rotation at rest.
func NewRotation(fps int) *Rotation {
	return &Rotation{Pitch: NewAxis(fps), Yaw: NewAxis(fps), fps: fps}
}

// Update advances both axes one frame.
func (r *Rotation) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
}

// Impulse adds angular velocity in degrees per frame.
func (r *Rotation) Impulse(pitch, yaw float64) {
	r.Pitch.Impulse(pitch)
	r.Yaw.Impulse(yaw)
}

// Set places the rotation at the given angles and stops it.
func (r *Rotation) Set(pitch, yaw float64) {
	r.Reset()
	r.Pitch.Position = pitch
	r.Yaw.Position = yaw
}

// Reset stops the rotation and returns it to zero.
func (r *Rotation) Reset() {
	r.Pitch = NewAxis(r.fps)
	r.Yaw = NewAxis(r.fps)
}

// Matrix returns the pitch rotation about X applied after the yaw about Y.
func (r *Rotation) Matrix() math3d.Mat4 {
	return math3d.RotateDeg(r.Pitch.Position, math3d.V3(1, 0, 0)).
		Mul(math3d.RotateDeg(r.Yaw.Position, math3d.Up()))
}

// Follower eases Value toward Target.
type Follower struct {
	Value  float64
	Target float64

	spring harmonica.Spring
	vel    float64
}

// NewFollower creates a follower resting at value.
func NewFollower(fps int, value float64) Follower {
	return Follower{
		Value:  value,
		Target: value,
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// Update advances one frame and returns the new value.
func (f *Follower) Update() float64 {
	f.Value, f.vel = f.spring.Update(f.Value, f.vel, f.Target)
	return f.Value
}

// Settled reports whether Value has reached Target.
func (f *Follower) Settled() bool {
	return math.Abs(f.Value-f.Target) < restEpsilon && math.Abs(f.vel) < restEpsilon
}
