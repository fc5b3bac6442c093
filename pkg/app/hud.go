package app

import (
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/diorama/pkg/render"
)

var (
	hudBG     = render.RGB(0, 0, 0)
	hudFPS    = render.RGB(80, 250, 120)
	hudTitle  = render.RGB(255, 255, 255)
	hudStatus = render.RGB(200, 200, 200)
)

// HUD draws the frame rate and mode name on the top row and the mode's
// status on the bottom row.
type HUD struct {
	Visible bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD.
func NewHUD(visible bool) *HUD {
	return &HUD{Visible: visible, fpsTime: time.Now()}
}

// Toggle shows or hides the HUD.
func (h *HUD) Toggle() {
	h.Visible = !h.Visible
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 {
	return h.fps
}

// Tick counts a frame presented at now. The rate is measured over one
// second windows.
func (h *HUD) Tick(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// Draw writes the HUD rows over scr.
func (h *HUD) Draw(scr uv.Screen, m Mode) {
	if !h.Visible {
		return
	}
	b := scr.Bounds()
	fps := fmt.Sprintf(" %.0f FPS ", h.fps)
	render.DrawText(scr, b.Min.X, b.Min.Y, fps, hudFPS, hudBG)

	title := " " + m.Name() + " "
	render.DrawText(scr, max(b.Min.X, (b.Dx()-len(title))/2), b.Min.Y, title, hudTitle, hudBG)

	render.DrawText(scr, b.Min.X, b.Max.Y-1, " "+m.Status()+" ", hudStatus, hudBG)
}
