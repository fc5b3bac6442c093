package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/shader"
)

// Flat primitives live in normalized canvas coordinates and ignore the
// camera: they are drawn with the identity model matrix and lighting off.

// Point is a square point sprite. Size is in reference-canvas pixels.
type Point struct {
	Pos   math3d.Vec2
	Size  float64
	Color math3d.Vec4
}

// NewPoint creates a point. It fails with geometry.ErrSize for a zero or
// non-finite size.
func NewPoint(pos math3d.Vec2, size float64, color math3d.Vec4) (*Point, error) {
	if err := geometry.CheckSize(size); err != nil {
		return nil, fmt.Errorf("new point: %w", err)
	}
	return &Point{Pos: pos, Size: size, Color: color}, nil
}

// Kind returns KindPoint.
func (*Point) Kind() Kind { return KindPoint }
func (*Point) drawable()  {}

// Draw uses a constant position attribute; a point has no vertex buffer.
func (p *Point) Draw(c *shader.Contract) {
	c.Unlit(func() {
		c.SetModel(math3d.Identity())
		Solid(p.Color).apply(c)
		c.SetPointSize(p.Size)
		c.ConstAttrib(shader.Position, mgl32.Vec4{float32(p.Pos.X), float32(p.Pos.Y), 0, 1})
		c.DrawArrays(shader.Points, 0, 1)
	})
}

// Triangle is an upward triangle of half-height Size/200 around Center.
// A negative Size mirrors it vertically.
type Triangle struct {
	Center math3d.Vec2
	Size   float64
	Color  math3d.Vec4

	verts []float32
}

// NewTriangle creates a triangle and generates its vertices. It fails with
// geometry.ErrSize for a zero or non-finite size.
func NewTriangle(center math3d.Vec2, size float64, color math3d.Vec4) (*Triangle, error) {
	verts, err := geometry.TriangleVertices(center, size)
	if err != nil {
		return nil, fmt.Errorf("new triangle: %w", err)
	}
	return &Triangle{Center: center, Size: size, Color: color, verts: verts}, nil
}

// MustTriangle is NewTriangle for fixed sizes; it panics on error.
func MustTriangle(center math3d.Vec2, size float64, color math3d.Vec4) *Triangle {
	t, err := NewTriangle(center, size, color)
	if err != nil {
		panic(err)
	}
	return t
}

// Kind returns KindTriangle.
func (*Triangle) Kind() Kind { return KindTriangle }
func (*Triangle) drawable()  {}

// Vertices returns the generated x,y pairs.
func (t *Triangle) Vertices() []float32 { return t.verts }

// Draw draws the triangle unlit in its color.
func (t *Triangle) Draw(c *shader.Contract) {
	c.Unlit(func() {
		c.SetModel(math3d.Identity())
		Solid(t.Color).apply(c)
		c.SetPointSize(t.Size)
		c.Attrib(shader.Position, t.verts, 2, 0, 0)
		c.DrawArrays(shader.Triangles, 0, 3)
	})
}

// Disc is a circle of radius Size/200 drawn as a fan of Segments slices.
type Disc struct {
	Center   math3d.Vec2
	Size     float64
	Segments int
	Color    math3d.Vec4

	verts []float32
}

// NewDisc creates a disc. It fails with geometry.ErrSegments when segments
// is below 3 and geometry.ErrSize for a zero or non-finite size.
func NewDisc(center math3d.Vec2, size float64, segments int, color math3d.Vec4) (*Disc, error) {
	verts, err := geometry.DiscVertices(center, size, segments)
	if err != nil {
		return nil, fmt.Errorf("new disc: %w", err)
	}
	return &Disc{
		Center:   center,
		Size:     size,
		Segments: segments,
		Color:    color,
		verts:    verts,
	}, nil
}

// Kind returns KindDisc.
func (*Disc) Kind() Kind { return KindDisc }
func (*Disc) drawable()  {}

// Vertices returns the generated x,y pairs, three per segment.
func (d *Disc) Vertices() []float32 { return d.verts }

// Draw draws the disc as a triangle fan, unlit.
func (d *Disc) Draw(c *shader.Contract) {
	c.Unlit(func() {
		c.SetModel(math3d.Identity())
		Solid(d.Color).apply(c)
		c.Attrib(shader.Position, d.verts, 2, 0, 0)
		c.DrawArrays(shader.Triangles, 0, len(d.verts)/2)
	})
}
