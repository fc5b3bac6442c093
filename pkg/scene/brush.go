package scene

import (
	"fmt"

	"github.com/taigrr/diorama/pkg/math3d"
)

// Brush is the sketch tool: what a click stamps onto the canvas.
type Brush struct {
	Kind     Kind
	Color    math3d.Vec4
	Size     float64
	Segments int
}

// DefaultBrush stamps red points of size 10; discs get 20 segments.
func DefaultBrush() Brush {
	return Brush{
		Kind:     KindPoint,
		Color:    math3d.V4(1, 0, 0, 1),
		Size:     10,
		Segments: 20,
	}
}

// Stamp creates the drawable for a click at pos in canvas coordinates.
func (b Brush) Stamp(pos math3d.Vec2) (Drawable, error) {
	// Errors come back with an untyped nil Drawable.
	switch b.Kind {
	case KindPoint:
		p, err := NewPoint(pos, b.Size, b.Color)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindTriangle:
		t, err := NewTriangle(pos, b.Size, b.Color)
		if err != nil {
			return nil, err
		}
		return t, nil
	case KindDisc:
		d, err := NewDisc(pos, b.Size, b.Segments, b.Color)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("stamp: %s is not a canvas shape", b.Kind)
	}
}
