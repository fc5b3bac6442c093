package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrSlices is returned for sphere tessellations that are too coarse or too
// fine for 16-bit indices.
var ErrSlices = errors.New("geometry: invalid sphere tessellation")

// Default sphere tessellation.
const (
	DefaultSlices = 24
	DefaultStacks = 16
)

// SphereMesh is a UV-tessellated unit sphere. Positions double as normals.
type SphereMesh struct {
	Slices    int
	Stacks    int
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint16
}

// NewSphere tessellates a unit sphere into slices around the Y axis and
// stacks from pole to pole. It needs at least 3 slices and 2 stacks.
func NewSphere(slices, stacks int) (*SphereMesh, error) {
	if slices < 3 || stacks < 2 {
		return nil, fmt.Errorf("%w: %d slices x %d stacks", ErrSlices, slices, stacks)
	}
	verts := (slices + 1) * (stacks + 1)
	if verts > 1<<16 {
		return nil, fmt.Errorf("%w: %d vertices exceed 16-bit indices", ErrSlices, verts)
	}

	m := &SphereMesh{
		Slices:    slices,
		Stacks:    stacks,
		Positions: make([]float32, 0, verts*3),
		UVs:       make([]float32, 0, verts*2),
		Indices:   make([]uint16, 0, 6*slices*stacks),
	}

	for stack := 0; stack <= stacks; stack++ {
		phi := float32(stack) * math32.Pi / float32(stacks)
		y := math32.Cos(phi)
		r := math32.Sin(phi)
		for slice := 0; slice <= slices; slice++ {
			theta := float32(slice) * 2 * math32.Pi / float32(slices)
			m.Positions = append(m.Positions, r*math32.Cos(theta), y, r*math32.Sin(theta))
			m.UVs = append(m.UVs, float32(slice)/float32(slices), 1-float32(stack)/float32(stacks))
		}
	}
	m.Normals = m.Positions

	for stack := range stacks {
		for slice := range slices {
			i1 := uint16(stack*(slices+1) + slice)
			i2 := i1 + uint16(slices) + 1
			m.Indices = append(m.Indices,
				i1, i2, i1+1,
				i1+1, i2, i2+1,
			)
		}
	}
	return m, nil
}

// VertexCount returns the number of distinct vertices.
func (m *SphereMesh) VertexCount() int {
	return len(m.Positions) / 3
}
