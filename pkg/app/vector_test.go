package app

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/render"
)

func TestVectorLab(t *testing.T) {
	v1, v2 := math3d.V2(2.25, 2.25), math3d.V2(1.5, 0.5)
	tests := []struct {
		op      string
		scalar  float64
		derived []math3d.Vec3
	}{
		{"add", 0, []math3d.Vec3{math3d.V3(3.75, 2.75, 0)}},
		{"sub", 0, []math3d.Vec3{math3d.V3(0.75, 1.75, 0)}},
		{"mul", 2, []math3d.Vec3{math3d.V3(4.5, 4.5, 0), math3d.V3(3, 1, 0)}},
		{"div", 0.5, []math3d.Vec3{math3d.V3(4.5, 4.5, 0), math3d.V3(3, 1, 0)}},
		{"area", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			r, err := VectorLab(tt.op, v1, v2, tt.scalar)
			require.NoError(t, err)
			require.Len(t, r.Derived, len(tt.derived))
			for i, want := range tt.derived {
				assert.InDelta(t, want.X, r.Derived[i].X, 1e-9)
				assert.InDelta(t, want.Y, r.Derived[i].Y, 1e-9)
			}
			assert.NotEmpty(t, r.Text)
		})
	}
}

func TestVectorLabMeasures(t *testing.T) {
	r, err := VectorLab("angle", math3d.V2(1, 0), math3d.V2(0, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, "angle = 90.00 degrees", r.Text)

	r, err = VectorLab("area", math3d.V2(1, 0), math3d.V2(0, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, "area = 0.50", r.Text)

	r, err = VectorLab("magnitude", math3d.V2(3, 4), math3d.V2(0, 2), 0)
	require.NoError(t, err)
	assert.Equal(t, "|v1| = 5.00  |v2| = 2.00", r.Text)
	assert.InDelta(t, 1, r.Derived[0].Len(), 1e-9)

	r, err = VectorLab("angle", math3d.V2(0, 0), math3d.V2(0, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, "angle = NaN degrees", r.Text)
	assert.True(t, math.IsNaN(r.Derived[0].X), "zero vector has no direction")
	assert.InDelta(t, 1, r.Derived[1].Y, 1e-9)

	_, err = VectorLab("div", math3d.V2(1, 0), math3d.V2(0, 1), 0)
	assert.ErrorIs(t, err, ErrDivideByZero)
	_, err = VectorLab("cross", math3d.V2(1, 0), math3d.V2(0, 1), 0)
	assert.ErrorIs(t, err, ErrUnknownOp)
}

func TestVectorLabZeroLength(t *testing.T) {
	r, err := VectorLab("normalize", math3d.V2(0, 0), math3d.V2(2, 0), 0)
	require.NoError(t, err)
	assert.Equal(t, "v1/|v1| = undefined  v2/|v2| = (1.00, 0.00)", r.Text)
	require.Len(t, r.Derived, 2)
	assert.True(t, math.IsNaN(r.Derived[0].X))
	assert.True(t, math.IsNaN(r.Derived[0].Y))
	assert.Equal(t, math3d.V3(1, 0, 0), r.Derived[1])

	r, err = VectorLab("magnitude", math3d.V2(0, 0), math3d.V2(1, 0), 0)
	require.NoError(t, err)
	assert.Equal(t, "|v1| = 0.00  |v2| = 1.00  v1/|v1| = undefined  v2/|v2| = (1.00, 0.00)", r.Text)
	assert.True(t, math.IsNaN(r.Derived[0].X))

	// Undefined results are skipped when drawing.
	fb := render.NewFramebuffer(400, 400)
	r.Draw(fb)
	assert.Equal(t, render.ColorGreen, fb.GetPixel(210, 200), "unit v2 over v2")
	assert.Equal(t, render.ColorBlack, fb.GetPixel(200, 190))
}

func TestVectorDraw(t *testing.T) {
	fb := render.NewFramebuffer(400, 400)
	r, err := VectorLab("add", math3d.V2(1, 0), math3d.V2(0, 1), 0)
	require.NoError(t, err)
	r.Draw(fb)

	assert.Equal(t, render.ColorRed, fb.GetPixel(220, 200))
	assert.Equal(t, render.ColorBlue, fb.GetPixel(200, 180))
	assert.Equal(t, render.ColorGreen, fb.GetPixel(220, 180), "sum tip")
	assert.Equal(t, render.ColorBlack, fb.GetPixel(10, 10))

	r.Derived = []math3d.Vec3{{X: math.NaN()}}
	assert.NotPanics(t, func() { r.Draw(fb) })
}
