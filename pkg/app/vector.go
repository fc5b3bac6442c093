package app

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/render"
)

var (
	// ErrUnknownOp is returned for an operation the vector lab lacks.
	ErrUnknownOp = errors.New("app: unknown vector operation")
	// ErrDivideByZero is returned by div with a zero scalar.
	ErrDivideByZero = errors.New("app: division by zero")
)

// VectorOps lists the vector lab operations.
var VectorOps = []string{"add", "sub", "mul", "div", "magnitude", "normalize", "angle", "area"}

// VectorPixels is how many pixels one unit spans on a 400 pixel canvas.
const VectorPixels = 20

// VectorResult is the outcome of a vector lab operation: the two inputs,
// the derived vectors and a line of text.
type VectorResult struct {
	Op      string
	V1, V2  math3d.Vec3
	Derived []math3d.Vec3
	Text    string
}

// VectorLab applies op to two 2D vectors. mul and div scale both inputs by
// scalar. A zero-length vector has no direction: its unit vector has NaN
// components, printed as undefined, and angle is NaN.
func VectorLab(op string, v1, v2 math3d.Vec2, scalar float64) (VectorResult, error) {
	a, b := v1.Vec3(), v2.Vec3()
	r := VectorResult{Op: op, V1: a, V2: b}
	switch strings.ToLower(op) {
	case "add":
		s := a.Add(b)
		r.Derived = []math3d.Vec3{s}
		r.Text = fmt.Sprintf("v1 + v2 = (%.2f, %.2f)", s.X, s.Y)
	case "sub":
		d := a.Sub(b)
		r.Derived = []math3d.Vec3{d}
		r.Text = fmt.Sprintf("v1 - v2 = (%.2f, %.2f)", d.X, d.Y)
	case "mul":
		r.Derived = []math3d.Vec3{a.Scale(scalar), b.Scale(scalar)}
		r.Text = fmt.Sprintf("scaled by %g", scalar)
	case "div":
		if scalar == 0 {
			return r, ErrDivideByZero
		}
		r.Derived = []math3d.Vec3{a.Div(scalar), b.Div(scalar)}
		r.Text = fmt.Sprintf("divided by %g", scalar)
	case "magnitude":
		ua, ub := unit(a), unit(b)
		r.Derived = []math3d.Vec3{ua, ub}
		r.Text = fmt.Sprintf("|v1| = %.2f  |v2| = %.2f", a.Len(), b.Len())
		if undefined(ua) || undefined(ub) {
			r.Text += fmt.Sprintf("  v1/|v1| = %s  v2/|v2| = %s", formatVec(ua), formatVec(ub))
		}
	case "normalize":
		ua, ub := unit(a), unit(b)
		r.Derived = []math3d.Vec3{ua, ub}
		r.Text = fmt.Sprintf("v1/|v1| = %s  v2/|v2| = %s", formatVec(ua), formatVec(ub))
	case "angle":
		r.Derived = []math3d.Vec3{unit(a), unit(b)}
		r.Text = fmt.Sprintf("angle = %.2f degrees", math3d.AngleBetween(a, b))
	case "area":
		r.Text = fmt.Sprintf("area = %.2f", math3d.TriangleArea(a, b))
	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
	return r, nil
}

// unit returns v scaled to length 1, or NaN components when v is zero.
func unit(v math3d.Vec3) math3d.Vec3 {
	if v.Len() == 0 {
		n := math.NaN()
		return math3d.V3(n, n, n)
	}
	return v.Normalize()
}

func undefined(v math3d.Vec3) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}

func formatVec(v math3d.Vec3) string {
	if undefined(v) {
		return "undefined"
	}
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// Draw clears fb to black and draws the inputs in red and blue and the
// derived vectors in green, all from the centre.
func (r VectorResult) Draw(fb *render.Framebuffer) {
	fb.Clear(render.ColorBlack)
	scale := VectorPixels * float64(fb.Height) / ReferenceCanvas
	ox, oy := fb.Width/2, fb.Height/2
	line := func(v math3d.Vec3, c render.Color) {
		if undefined(v) {
			return
		}
		x := ox + int(math.Round(v.X*scale))
		y := oy - int(math.Round(v.Y*scale))
		fb.DrawLine(ox, oy, x, y, c)
	}
	line(r.V1, render.ColorRed)
	line(r.V2, render.ColorBlue)
	for _, d := range r.Derived {
		line(d, render.ColorGreen)
	}
}
