package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/taigrr/diorama/pkg/math3d"
)

var (
	// ErrSegments is returned for discs with fewer than 3 segments.
	ErrSegments = errors.New("geometry: disc needs at least 3 segments")
	// ErrSize is returned for 2D shapes of zero or non-finite size.
	ErrSize = errors.New("geometry: invalid shape size")
)

// ReferenceHalf is the half extent, in pixels, of the canvas 2D sizes are
// measured against. A shape of size ReferenceHalf spans the full half-height
// of clip space.
const ReferenceHalf = 200

// Extent converts a 2D shape size to clip-space units.
func Extent(size float64) float32 {
	return float32(size / ReferenceHalf)
}

// CheckSize fails with ErrSize for a size of zero, NaN or infinity.
// Negative sizes are valid and mirror the shape.
func CheckSize(size float64) error {
	if size == 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return fmt.Errorf("%w: %v", ErrSize, size)
	}
	return nil
}

// TriangleVertices returns the xy coordinates of an isosceles triangle
// centred on c whose half-height is size. A negative size mirrors it
// vertically.
func TriangleVertices(c math3d.Vec2, size float64) ([]float32, error) {
	if err := CheckSize(size); err != nil {
		return nil, err
	}
	x, y, d := float32(c.X), float32(c.Y), Extent(size)
	return []float32{
		x, y + d,
		x - d, y - d,
		x + d, y - d,
	}, nil
}

// DiscVertices returns a triangle fan around c as independent triangles,
// 3 vertices (6 floats) per segment.
func DiscVertices(c math3d.Vec2, size float64, segments int) ([]float32, error) {
	if segments < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrSegments, segments)
	}
	if err := CheckSize(size); err != nil {
		return nil, err
	}
	x, y, r := float32(c.X), float32(c.Y), Extent(size)
	out := make([]float32, 0, segments*6)
	step := 2 * math32.Pi / float32(segments)
	for i := range segments {
		a1 := float32(i) * step
		a2 := float32(i+1) * step
		out = append(out,
			x, y,
			x+r*math32.Cos(a1), y+r*math32.Sin(a1),
			x+r*math32.Cos(a2), y+r*math32.Sin(a2),
		)
	}
	return out, nil
}
