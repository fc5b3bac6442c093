package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/scene"
)

func newCache(t testing.TB) *geometry.Cache {
	t.Helper()
	c, err := geometry.NewCache()
	require.NoError(t, err)
	return c
}

func TestDiorama(t *testing.T) {
	items := Diorama(0.5)
	require.Len(t, items, 22)
	for i, d := range items {
		assert.Equal(t, scene.KindTriangle, d.Kind(), "item %d", i)
		tri := d.(*scene.Triangle)
		assert.Equal(t, 0.5, tri.Color.W, "item %d", i)
	}

	// The backdrop edges meet at the horizon.
	sky := items[0].(*scene.Triangle).Vertices()
	ground := items[1].(*scene.Triangle).Vertices()
	assert.InDelta(t, horizon, sky[3], 1e-6)
	assert.InDelta(t, horizon, ground[3], 1e-6)
}

func TestGridDeterministic(t *testing.T) {
	cache := newCache(t)
	opts := DefaultGridOptions()

	a, err := Grid(cache, opts, NewRand(7))
	require.NoError(t, err)
	b, err := Grid(cache, opts, NewRand(7))
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].(*scene.Cube).Model, b[i].(*scene.Cube).Model)
		assert.Equal(t, a[i].(*scene.Cube).Material, b[i].(*scene.Cube).Material)
	}
	assert.Greater(t, len(a), 2)
}

func TestGridTowers(t *testing.T) {
	cache := newCache(t)
	opts := DefaultGridOptions()
	items, err := Grid(cache, opts, NewRand(42))
	require.NoError(t, err)

	ground := items[0].(*scene.Cube)
	assert.Equal(t, GroundColor, ground.Material.Color)
	assert.InDelta(t, -0.05, ground.Model.Translation().Y, 1e-12)
	sky := items[1].(*scene.Cube)
	assert.Equal(t, SkyColor, sky.Material.Color)

	half := float64(opts.MapSize) / 2
	type cell struct{ x, z float64 }
	heights := map[cell]int{}
	textures := map[cell]int{}
	for _, d := range items[2:] {
		cb := d.(*scene.Cube)
		p := cb.Model.Translation()
		assert.GreaterOrEqual(t, p.X, -half)
		assert.Less(t, p.X, half)
		assert.InDelta(t, 0.5, p.Y-float64(int(p.Y)), 1e-12, "cubes sit on integer levels")
		assert.Less(t, p.Y, float64(opts.MaxHeight))

		assert.Equal(t, 1.0, cb.Material.TexWeight)
		assert.GreaterOrEqual(t, cb.Material.TexIndex, 0)
		assert.Less(t, cb.Material.TexIndex, opts.Textures)

		k := cell{p.X, p.Z}
		if tex, ok := textures[k]; ok {
			assert.Equal(t, tex, cb.Material.TexIndex, "one texture per tower")
		}
		textures[k] = cb.Material.TexIndex
		heights[k]++
	}
	for k, h := range heights {
		assert.Less(t, h, opts.MaxHeight, "tower at %v", k)
	}
}

func TestGridDensity(t *testing.T) {
	cache := newCache(t)
	opts := DefaultGridOptions()

	opts.WallDensity = 0
	items, err := Grid(cache, opts, NewRand(1))
	require.NoError(t, err)
	assert.Len(t, items, 2, "ground and sky only")

	opts.WallDensity = 1
	opts.MaxHeight = 1
	items, err = Grid(cache, opts, NewRand(1))
	require.NoError(t, err)
	assert.Len(t, items, 2, "heights are always zero")
}

func TestGridOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*GridOptions)
	}{
		{"zero map", func(o *GridOptions) { o.MapSize = 0 }},
		{"zero height", func(o *GridOptions) { o.MaxHeight = 0 }},
		{"negative density", func(o *GridOptions) { o.WallDensity = -0.1 }},
		{"density over one", func(o *GridOptions) { o.WallDensity = 1.5 }},
		{"no textures", func(o *GridOptions) { o.Textures = 0 }},
	}
	cache := newCache(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultGridOptions()
			tt.modify(&opts)
			_, err := Grid(cache, opts, NewRand(1))
			assert.ErrorIs(t, err, ErrOptions)
		})
	}
}

func TestLit(t *testing.T) {
	cache := newCache(t)
	light := math3d.V3(3, 2, 0)
	objs, markers, err := Lit(cache, DefaultLitOptions(), light)
	require.NoError(t, err)
	require.Len(t, objs, 3)

	assert.Equal(t, scene.KindCube, objs[0].Kind())
	main := objs[1].(*scene.Cube)
	assert.Equal(t, math3d.V3(-1, 0.5, 0), main.Model.Translation())
	assert.Equal(t, 1.0, main.Material.TexWeight)
	sphere := objs[2].(*scene.Sphere)
	assert.Equal(t, geometry.DefaultSlices, sphere.Mesh().Slices)
	assert.Zero(t, sphere.Material.TexWeight)

	assert.Equal(t, light, markers.Light.Model.Translation())
	assert.Equal(t, math3d.V3(4, 2, 4), markers.Spot.Model.Translation())
	assert.Equal(t, LightMarkerColor, markers.Light.Material.Color)

	next := math3d.V3(0, 2, 3)
	markers.Update(next)
	assert.Equal(t, next, markers.Light.Model.Translation())
	assert.Len(t, markers.Drawables(), 2)

	_, _, err = Lit(cache, LitOptions{}, light)
	assert.ErrorIs(t, err, ErrOptions)
}

func TestLitModel(t *testing.T) {
	cache := newCache(t)
	opts := DefaultLitOptions()
	opts.Model = "../geometry/testdata/tri.gltf"
	objs, _, err := Lit(cache, opts, math3d.V3(3, 2, 0))
	require.NoError(t, err)
	require.Len(t, objs, 4)
	model := objs[3].(*scene.Model)
	assert.Equal(t, ModelPosition, model.Model.Translation())
	assert.Equal(t, 1, model.Mesh().TriangleCount())

	opts.Model = "missing.glb"
	_, _, err = Lit(cache, opts, math3d.V3(3, 2, 0))
	assert.Error(t, err)
}

func BenchmarkGrid(b *testing.B) {
	cache := newCache(b)
	opts := DefaultGridOptions()
	for b.Loop() {
		_, _ = Grid(cache, opts, NewRand(3))
	}
}
