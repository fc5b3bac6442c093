package app

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/diorama/pkg/animal"
	"github.com/taigrr/diorama/pkg/config"
	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/scene"
)

type patternUnits []*render.Texture

func (p patternUnits) Texture(unit int) *render.Texture {
	if unit < 0 || unit >= len(p) {
		return nil
	}
	return p[unit]
}

func newCache(t testing.TB) *geometry.Cache {
	t.Helper()
	c, err := geometry.NewCache()
	require.NoError(t, err)
	return c
}

func newLoop(t testing.TB) *Loop {
	t.Helper()
	l, err := NewLoop(patternUnits(Patterns()), Options{})
	require.NoError(t, err)
	return l
}

func TestSketchStamping(t *testing.T) {
	s := NewSketch(scene.DefaultBrush(), nil)

	s.HandleEvent(Event{Kind: MouseDown, Pos: math3d.V2(0, 0)})
	s.HandleEvent(Event{Kind: MouseDrag, Pos: math3d.V2(0.1, 0)})
	s.HandleEvent(Event{Kind: MouseUp, Pos: math3d.V2(0.1, 0)})
	assert.Equal(t, 2, s.Canvas.Count(scene.KindPoint))

	s.HandleEvent(Key("2"))
	s.HandleEvent(Event{Kind: MouseDown})
	s.HandleEvent(Key("3"))
	s.HandleEvent(Event{Kind: MouseDown})
	assert.Equal(t, 1, s.Canvas.Count(scene.KindTriangle))
	assert.Equal(t, 1, s.Canvas.Count(scene.KindDisc))

	s.HandleEvent(Key("p"))
	assert.Equal(t, 4+22, s.Canvas.Len())

	s.HandleEvent(Key("c"))
	assert.Zero(t, s.Canvas.Len())
}

func TestSketchSliders(t *testing.T) {
	s := NewSketch(scene.DefaultBrush(), nil)
	assert.Equal(t, "red", s.Slider().Name)

	s.HandleEvent(Key("-"))
	assert.InDelta(t, 0.95, s.Brush.Color.X, 1e-9)
	for range 5 {
		s.HandleEvent(Key("+"))
	}
	assert.Equal(t, 1.0, s.Brush.Color.X, "clamped at max")

	s.HandleEvent(Key("x"))
	for range 30 {
		s.HandleEvent(Key("-"))
	}
	assert.Equal(t, 3, s.Brush.Segments)

	s.HandleEvent(Key("z"))
	s.HandleEvent(Key("+"))
	assert.Equal(t, 11.0, s.Brush.Size)

	// Picture colors take the brush alpha.
	s.HandleEvent(Key("v"))
	for range 10 {
		s.HandleEvent(Key("-"))
	}
	s.HandleEvent(Key("p"))
	tri := s.Canvas.Items()[0].(*scene.Triangle)
	assert.InDelta(t, 0.5, tri.Color.W, 1e-9)
}

func TestSketchFrame(t *testing.T) {
	l := newLoop(t)
	l.Resize(60, 40)
	s := NewSketch(scene.DefaultBrush(), nil)
	s.HandleEvent(Event{Kind: MouseDown, Pos: math3d.V2(0, 0)})
	l.Frame(s)

	fb := l.Program().Framebuffer()
	assert.Equal(t, render.ColorRed, fb.GetPixel(30, 20))
	assert.Equal(t, render.ColorBlack, fb.GetPixel(2, 20), "letterbox bar")
	assert.True(t, l.Program().Rasterizer().Blend)
	assert.False(t, l.Program().Rasterizer().DepthTest)
}

func TestAnimalMode(t *testing.T) {
	m, err := NewAnimal(newCache(t), 60)
	require.NoError(t, err)
	assert.Equal(t, animal.CubeCount, m.State.Graph.Len())

	m.HandleEvent(Key("k"))
	m.HandleEvent(Key("u"))
	assert.Equal(t, 5.0, m.Animal.Joints.Hip)
	assert.Equal(t, -5.0, m.Animal.Joints.Knee)
	for range 30 {
		m.HandleEvent(Key("m"))
	}
	assert.Equal(t, animal.MaxJoint, m.Animal.Joints.Foot)

	m.HandleEvent(Key("space"))
	assert.True(t, m.Animal.Walking)

	m.HandleEvent(Event{Kind: MouseDown, Shift: true})
	assert.True(t, m.Animal.Poked())

	yaw := m.Animal.View.Yaw.Position
	m.HandleEvent(Event{Kind: MouseDrag, DX: 10})
	assert.InDelta(t, yaw+5, m.Animal.View.Yaw.Position, 1e-9)
	m.HandleEvent(Event{Kind: MouseUp})
	assert.Greater(t, m.Animal.View.Yaw.Velocity, 0.0, "release keeps spinning")

	m.Update(1.0 / 60)
	assert.Equal(t, animal.CubeCount, m.State.Graph.Len(), "rebuilt, not appended")

	m.HandleEvent(Key("0"))
	assert.Equal(t, animal.Joints{}, m.Animal.Joints)
	assert.Equal(t, animal.DefaultYaw, m.Animal.View.Yaw.Position)
}

func TestWorldMode(t *testing.T) {
	cfg := config.Default()
	cfg.World.MapSize = 8
	w, err := NewWorld(newCache(t), cfg, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, w.State.Graph.Count(scene.KindCube), 2)

	eye := w.State.Camera.Eye()
	w.HandleEvent(Key("w"))
	assert.Less(t, w.State.Camera.Eye().Z, eye.Z)

	at := w.State.Camera.At()
	w.HandleEvent(Event{Kind: MouseDrag, DX: 10})
	assert.NotEqual(t, at, w.State.Camera.At())
}

func TestLitMode(t *testing.T) {
	l, err := NewLit(newCache(t), config.Default())
	require.NoError(t, err)
	assert.Equal(t, 3, l.State.Graph.Len())
	assert.Len(t, l.State.Markers, 2)

	l.HandleEvent(Key("n"))
	assert.True(t, l.State.ShowNormals)
	l.HandleEvent(Key("l"))
	assert.False(t, l.Light.Enabled)
	l.HandleEvent(Key("c"))
	assert.NotEqual(t, math3d.V3(1, 1, 1), l.Light.Color)

	angle := l.Light.Angle
	l.Update(1.0 / 60)
	assert.InDelta(t, angle+0.01, l.Light.Angle, 1e-12)
	assert.Equal(t, l.Light.Position(), l.Markers.Light.Model.Translation())

	l.HandleEvent(Key("]"))
	for range 600 {
		l.Update(1.0 / 60)
	}
	assert.InDelta(t, 3.5, l.Light.Radius, 1e-3, "radius eases to its target")

	for range 40 {
		l.HandleEvent(Key("["))
	}
	assert.Zero(t, l.radius.Target)
}

func TestSnapshot(t *testing.T) {
	cache := newCache(t)
	cfg := config.Default()
	cfg.World.MapSize = 8

	animalMode, err := NewAnimal(cache, 60)
	require.NoError(t, err)
	worldMode, err := NewWorld(cache, cfg, nil)
	require.NoError(t, err)
	litMode, err := NewLit(cache, cfg)
	require.NoError(t, err)

	modes := []Mode{NewSketch(scene.DefaultBrush(), nil), NewPicture(), animalMode, worldMode, litMode}
	for _, m := range modes {
		t.Run(m.Name(), func(t *testing.T) {
			l := newLoop(t)
			path := filepath.Join(t.TempDir(), m.Name()+".png")
			require.NoError(t, l.Snapshot(m, 64, 48, path))

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()
			img, err := png.Decode(f)
			require.NoError(t, err)
			assert.Equal(t, 64, img.Bounds().Dx())
			assert.Equal(t, 48, img.Bounds().Dy())
		})
	}

	l := newLoop(t)
	require.NoError(t, l.Snapshot(animalMode, 64, 64, filepath.Join(t.TempDir(), "a.png")))
	fb := l.Program().Framebuffer()
	assert.NotEqual(t, animalMode.Background(), fb.GetPixel(32, 32), "the body covers the centre")
	assert.Positive(t, l.Program().Stats.Triangles)
	assert.True(t, l.Program().Rasterizer().DepthTest)

	err = l.Snapshot(NewPicture(), 8, 8, filepath.Join(t.TempDir(), "bad.gif"))
	assert.Error(t, err)
}

func TestHUD(t *testing.T) {
	h := NewHUD(false)
	h.Toggle()
	assert.True(t, h.Visible)

	start := h.fpsTime
	for i := range 30 {
		h.Tick(start.Add(time.Duration(i) * time.Second / 30))
	}
	h.Tick(start.Add(time.Second))
	assert.InDelta(t, 31, h.FPS(), 0.01)
}
