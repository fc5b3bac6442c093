package app

import (
	"image"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/math3d"
)

// ReferenceCanvas is the canvas width, in pixels, drag deltas are scaled
// to so mouse sensitivity does not depend on the terminal size.
const ReferenceCanvas = 2 * geometry.ReferenceHalf

// EventKind is the kind of an input event.
type EventKind int

const (
	KeyPress EventKind = iota
	MouseDown
	MouseUp
	MouseDrag
)

// Event is a terminal input event in canvas terms.
type Event struct {
	Kind EventKind
	// Key is the lower-cased keystroke for KeyPress, e.g. "w", "space", "[".
	Key string
	// Pos is the pointer in canvas coordinates: [-1, 1] on both axes, +Y up.
	Pos math3d.Vec2
	// DX and DY are the drag motion in reference canvas pixels, +Y down.
	DX, DY float64
	Shift  bool
}

// Key returns a KeyPress event, handy for tests and scripted input.
func Key(k string) Event {
	return Event{Kind: KeyPress, Key: k}
}

// translator turns terminal cell events into canvas events. It tracks the
// pressed button itself since motion reports arrive for every pointer move.
type translator struct {
	viewport     image.Rectangle
	down         bool
	lastX, lastY int
}

// canvasPos maps the centre of cell (x, y) to canvas coordinates. Each cell
// covers two framebuffer rows.
func (t *translator) canvasPos(x, y int) math3d.Vec2 {
	vp := t.viewport
	if vp.Empty() {
		return math3d.Vec2{}
	}
	px := float64(x) + 0.5
	py := float64(2*y) + 1
	return math3d.V2(
		(px-float64(vp.Min.X))/float64(vp.Dx())*2-1,
		1-(py-float64(vp.Min.Y))/float64(vp.Dy())*2,
	)
}

func (t *translator) delta(x, y int) (dx, dy float64) {
	vp := t.viewport
	if vp.Empty() {
		return 0, 0
	}
	dx = float64(x-t.lastX) * ReferenceCanvas / float64(vp.Dx())
	dy = float64(2*(y-t.lastY)) * ReferenceCanvas / float64(vp.Dy())
	return dx, dy
}

func shifted(m uv.KeyMod) bool {
	return m&uv.ModShift != 0
}

// translate converts ev. Events the modes have no use for report false.
func (t *translator) translate(ev uv.Event) (Event, bool) {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		return Event{Kind: KeyPress, Key: strings.ToLower(ev.String())}, true

	case uv.MouseClickEvent:
		if ev.Button != uv.MouseLeft {
			return Event{}, false
		}
		t.down = true
		t.lastX, t.lastY = ev.X, ev.Y
		return Event{Kind: MouseDown, Pos: t.canvasPos(ev.X, ev.Y), Shift: shifted(ev.Mod)}, true

	case uv.MouseReleaseEvent:
		if !t.down {
			return Event{}, false
		}
		t.down = false
		return Event{Kind: MouseUp, Pos: t.canvasPos(ev.X, ev.Y), Shift: shifted(ev.Mod)}, true

	case uv.MouseMotionEvent:
		if !t.down {
			return Event{}, false
		}
		dx, dy := t.delta(ev.X, ev.Y)
		t.lastX, t.lastY = ev.X, ev.Y
		if dx == 0 && dy == 0 {
			return Event{}, false
		}
		return Event{
			Kind:  MouseDrag,
			Pos:   t.canvasPos(ev.X, ev.Y),
			DX:    dx,
			DY:    dy,
			Shift: shifted(ev.Mod),
		}, true
	}
	return Event{}, false
}

// Letterbox returns the largest rectangle of the given aspect ratio
// centred in a width x height target.
func Letterbox(width, height int, aspect float64) image.Rectangle {
	if width <= 0 || height <= 0 || aspect <= 0 {
		return image.Rectangle{}
	}
	w, h := width, int(float64(width)/aspect+0.5)
	if h > height {
		w, h = int(float64(height)*aspect+0.5), height
	}
	w, h = max(w, 1), max(h, 1)
	x := (width - w) / 2
	y := (height - h) / 2
	return image.Rect(x, y, x+w, y+h)
}
