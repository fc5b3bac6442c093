package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/diorama/pkg/math3d"
)

var (
	// ErrDegenerateBasis is returned when eye, at and up do not span a view.
	ErrDegenerateBasis = errors.New("render: degenerate camera basis")
	// ErrProjection is returned for unusable projection parameters.
	ErrProjection = errors.New("render: invalid projection")
)

// DefaultPanStep is the pan angle, in degrees before turn speed scaling,
// used by PanLeft and PanRight when called without an argument.
const DefaultPanStep = 5.0

// CameraOptions configures a Camera. FOV is the vertical field of view in
// degrees.
type CameraOptions struct {
	Eye       math3d.Vec3
	At        math3d.Vec3
	Up        math3d.Vec3
	Speed     float64
	TurnSpeed float64
	FOV       float64
	Aspect    float64
	Near      float64
	Far       float64
}

// DefaultCameraOptions returns a camera standing 2 units up, 5 units back,
// looking down -Z.
func DefaultCameraOptions(aspect float64) CameraOptions {
	return CameraOptions{
		Eye:       math3d.V3(0, 2, 5),
		At:        math3d.V3(0, 2, 0),
		Up:        math3d.Up(),
		Speed:     0.2,
		TurnSpeed: 0.2,
		FOV:       60,
		Aspect:    aspect,
		Near:      0.1,
		Far:       1000,
	}
}

// Camera is a free-flight camera described by an eye point, a target point
// and an up vector. Every mutation recomputes the view matrix before
// returning; the projection is fixed at construction.
type Camera struct {
	eye       math3d.Vec3
	at        math3d.Vec3
	up        math3d.Vec3
	speed     float64
	turnSpeed float64

	view math3d.Mat4
	proj math3d.Mat4
}

// NewCamera validates opts and builds a camera.
func NewCamera(opts CameraOptions) (*Camera, error) {
	gaze := opts.At.Sub(opts.Eye)
	if gaze.LenSq() == 0 {
		return nil, fmt.Errorf("%w: eye and at coincide at %v", ErrDegenerateBasis, opts.Eye)
	}
	if opts.Up.LenSq() == 0 || math3d.Parallel(gaze, opts.Up) {
		return nil, fmt.Errorf("%w: up %v is parallel to gaze %v", ErrDegenerateBasis, opts.Up, gaze)
	}
	if opts.FOV <= 0 || opts.FOV >= 180 {
		return nil, fmt.Errorf("%w: fov %v out of (0, 180)", ErrProjection, opts.FOV)
	}
	if opts.Aspect <= 0 {
		return nil, fmt.Errorf("%w: aspect %v", ErrProjection, opts.Aspect)
	}
	if opts.Near <= 0 || opts.Far <= opts.Near {
		return nil, fmt.Errorf("%w: near %v far %v", ErrProjection, opts.Near, opts.Far)
	}

	c := &Camera{
		eye:       opts.Eye,
		at:        opts.At,
		up:        opts.Up,
		speed:     opts.Speed,
		turnSpeed: opts.TurnSpeed,
		proj:      math3d.Perspective(math3d.Radians(opts.FOV), opts.Aspect, opts.Near, opts.Far),
	}
	c.updateView()
	return c, nil
}

func (c *Camera) updateView() {
	c.view = math3d.LookAt(c.eye, c.at, c.up)
}

// Eye returns the camera position.
func (c *Camera) Eye() math3d.Vec3 { return c.eye }

// At returns the point the camera looks at.
func (c *Camera) At() math3d.Vec3 { return c.at }

// Up returns the up vector.
func (c *Camera) Up() math3d.Vec3 { return c.up }

// Forward returns the unnormalized gaze vector at - eye.
func (c *Camera) Forward() math3d.Vec3 { return c.at.Sub(c.eye) }

// ViewMatrix returns the view matrix for the current eye/at/up.
func (c *Camera) ViewMatrix() math3d.Mat4 { return c.view }

// ProjMatrix returns the projection matrix.
func (c *Camera) ProjMatrix() math3d.Mat4 { return c.proj }

// ViewProjMatrix returns proj * view.
func (c *Camera) ViewProjMatrix() math3d.Mat4 {
	return c.proj.Mul(c.view)
}

func (c *Camera) translate(d math3d.Vec3) {
	c.eye = c.eye.Add(d)
	c.at = c.at.Add(d)
	c.updateView()
}

// MoveForward moves eye and at by speed along the gaze.
func (c *Camera) MoveForward() {
	c.translate(c.at.Sub(c.eye).Normalize().Scale(c.speed))
}

// MoveBack moves eye and at by speed against the gaze.
func (c *Camera) MoveBack() {
	c.translate(c.eye.Sub(c.at).Normalize().Scale(c.speed))
}

// MoveLeft strafes along up x forward.
func (c *Camera) MoveLeft() {
	c.translate(c.up.Cross(c.Forward()).Normalize().Scale(c.speed))
}

// MoveRight strafes along forward x up.
func (c *Camera) MoveRight() {
	c.translate(c.Forward().Cross(c.up).Normalize().Scale(c.speed))
}

// PanLeft turns the gaze left about up by deg (default DefaultPanStep)
// scaled by the turn speed.
func (c *Camera) PanLeft(deg ...float64) {
	c.Pan(panStep(deg))
}

// PanRight turns the gaze right; see PanLeft.
func (c *Camera) PanRight(deg ...float64) {
	c.Pan(-panStep(deg))
}

func panStep(deg []float64) float64 {
	if len(deg) == 0 {
		return DefaultPanStep
	}
	return deg[0]
}

// Pan rotates the gaze about up by dx*turnSpeed degrees. Positive values
// turn left. Mouse drags feed the horizontal pixel delta here.
func (c *Camera) Pan(dx float64) {
	f := math3d.RotateDeg(dx*c.turnSpeed, c.up).MulVec3Dir(c.Forward())
	c.at = c.eye.Add(f)
	c.updateView()
}

// Tilt rotates the gaze about the right axis by dy*turnSpeed degrees.
// Positive values look up. Pitch is not clamped: the gaze can pass over
// the pole and the view flips. A tilt that starts with the gaze exactly
// along up has no right axis and is ignored.
func (c *Camera) Tilt(dy float64) {
	f := c.Forward()
	right := f.Cross(c.up)
	if right.LenSq() == 0 {
		return
	}
	f = math3d.RotateDeg(dy*c.turnSpeed, right).MulVec3Dir(f)
	c.at = c.eye.Add(f)
	c.updateView()
}
