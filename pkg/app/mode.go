// Package app runs the interactive programs in a terminal: a frame loop
// that maps input to the active mode and presents the software framebuffer
// with half blocks, plus headless snapshots.
package app

import (
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/shader"
)

// Mode is one interactive program.
type Mode interface {
	Name() string
	// Aspect is the canvas width over height. The loop letterboxes the
	// canvas inside the terminal to keep it.
	Aspect() float64
	// Flat modes draw 2D shapes in order with alpha blending and no depth
	// test.
	Flat() bool
	Background() render.Color
	HandleEvent(ev Event)
	// Update advances the mode by dt seconds. It is called once per frame.
	Update(dt float64)
	Render(c *shader.Contract)
	// Status is the HUD line describing the mode's state.
	Status() string
}

// flyKey applies the free-flight key map to cam and reports whether key
// belonged to it.
func flyKey(cam *render.Camera, key string) bool {
	switch key {
	case "w":
		cam.MoveForward()
	case "s":
		cam.MoveBack()
	case "a":
		cam.MoveLeft()
	case "d":
		cam.MoveRight()
	case "q":
		cam.PanLeft()
	case "e":
		cam.PanRight()
	default:
		return false
	}
	return true
}

// flyDrag turns cam with a mouse drag: horizontal motion pans, upward
// motion tilts up.
func flyDrag(cam *render.Camera, ev Event) {
	if ev.Kind != MouseDrag {
		return
	}
	cam.Pan(ev.DX)
	cam.Tilt(-ev.DY)
}
