package animal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/scene"
	"github.com/taigrr/diorama/pkg/xform"
)

func build(t *testing.T, a *Animal, clock float64) []*scene.Cube {
	t.Helper()
	cache, err := geometry.NewCache()
	require.NoError(t, err)

	s := xform.New()
	g := scene.NewGraph()
	a.Build(s, cache, g, clock)
	require.Equal(t, 0, s.Depth(), "stack depth must be balanced")
	require.Equal(t, CubeCount, g.Len())

	cubes := make([]*scene.Cube, 0, g.Len())
	for _, d := range g.Items() {
		cubes = append(cubes, d.(*scene.Cube))
	}
	return cubes
}

func TestBuildLeavesStackBalanced(t *testing.T) {
	cache, err := geometry.NewCache()
	require.NoError(t, err)

	s := xform.New()
	s.Push()
	s.Translate(1, 2, 3)
	before := s.Current()

	a := New(60)
	a.Walking = true
	a.Poke()
	a.Build(s, cache, scene.NewGraph(), 0.05)

	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, before, s.Current())
}

func TestBuildPlacesParts(t *testing.T) {
	a := New(60)
	a.View.Set(0, 0)
	cubes := build(t, a, 0)

	body := cubes[0]
	assert.Equal(t, math3d.Scale(math3d.V3(2, 1, 1)), body.Model)
	assert.Equal(t, BodyColor, body.Material.Color)

	// First hip sits at (0.8, -0.5, 0.5).
	hip := cubes[1]
	assert.True(t, hip.Model.Translation().Sub(math3d.V3(0.8, -0.5, 0.5)).Len() < 1e-12,
		"hip at %v", hip.Model.Translation())

	head := cubes[len(cubes)-1]
	assert.Equal(t, HeadColor, head.Material.Color)
	assert.True(t, head.Model.Translation().Sub(math3d.V3(1.3, 0.4, 0)).Len() < 1e-12)
}

func TestSiblingLegsStartFromBody(t *testing.T) {
	a := New(60)
	a.View.Set(0, 0)
	a.Joints = Joints{Hip: 20, Knee: -35, Foot: 10}
	cubes := build(t, a, 0)

	// Each leg contributes hip, knee, foot in order after the body.
	wantHips := []math3d.Vec3{
		math3d.V3(0.8, -0.5, 0.5),
		math3d.V3(-0.8, -0.5, 0.5),
		math3d.V3(0.8, -0.5, -0.5),
		math3d.V3(-0.8, -0.5, -0.5),
	}
	for i, want := range wantHips {
		hip := cubes[1+3*i]
		got := hip.Model.Translation()
		if got.Sub(want).Len() > 1e-12 {
			t.Errorf("leg %d hip at %v, want %v", i, got, want)
		}
	}

	// Mirrored legs produce mirrored knees.
	k0 := cubes[2].Model.Translation()
	k1 := cubes[5].Model.Translation()
	assert.InDelta(t, k0.X-0.8, -(k1.X + 0.8), 1e-12)
	assert.InDelta(t, k0.Y, k1.Y, 1e-12)
}

func TestViewRotationAppliesToEveryPart(t *testing.T) {
	still := New(60)
	still.View.Set(0, 0)
	turned := New(60)
	turned.View.Set(0, 90)

	a, b := build(t, still, 0), build(t, turned, 0)
	r := math3d.RotateDeg(90, math3d.Up())
	for i := range a {
		if !r.Mul(a[i].Model).ApproxEqual(b[i].Model, 1e-12) {
			t.Errorf("part %d not rotated with the view", i)
		}
	}
}

func TestWalkCycle(t *testing.T) {
	a := New(60)
	a.Joints = Joints{Hip: 45}
	assert.Equal(t, 45.0, a.PoseAt(1).Hip)

	a.ToggleWalk()
	tests := []struct {
		t    float64
		want Pose
	}{
		{0, Pose{Knee: 30 * math.Sin(math.Pi/4), Foot: 15}},
		{math.Pi / 4, Pose{Hip: 30, Knee: 30 * math.Sin(3*math.Pi/4), Foot: 15 * math.Sin(math.Pi), BodyBob: 0, HeadNod: 5 * math.Sin(math.Pi)}},
	}
	for _, tc := range tests {
		got := a.PoseAt(tc.t)
		assert.InDelta(t, tc.want.Hip, got.Hip, 1e-9)
		assert.InDelta(t, tc.want.Knee, got.Knee, 1e-9)
		assert.InDelta(t, tc.want.Foot, got.Foot, 1e-9)
		assert.InDelta(t, tc.want.BodyBob, got.BodyBob, 1e-9)
		assert.InDelta(t, tc.want.HeadNod, got.HeadNod, 1e-9)
	}

	// Bob peaks at a quarter of the bob period.
	assert.InDelta(t, 0.05, a.PoseAt(math.Pi/8).BodyBob, 1e-9)
}

func TestPoke(t *testing.T) {
	a := New(60)
	a.Update(1)
	a.Poke()
	assert.True(t, a.Poked())
	assert.Zero(t, a.PoseAt(a.Clock()).HeadWobble)

	a.Update(0.1)
	assert.InDelta(t, 15*math.Sin(5), a.PoseAt(a.Clock()).HeadWobble, 1e-9)

	a.Update(0.15)
	assert.False(t, a.Poked(), "wobble ends after %v s", PokeDuration)
	assert.Zero(t, a.PoseAt(a.Clock()).HeadWobble)
}

func TestJointsClamp(t *testing.T) {
	j := Joints{Hip: 120, Knee: -200, Foot: 5, HeadZ: 3}.Clamp()
	assert.Equal(t, Joints{Hip: MaxJoint, Knee: -MaxJoint, Foot: 5, HeadZ: MaxHeadZ}, j)
}

func TestCameraOptions(t *testing.T) {
	c, err := render.NewCamera(CameraOptions(1))
	require.NoError(t, err)
	assert.Equal(t, math3d.V3(3, 3, 7), c.Eye())
}

func BenchmarkBuild(b *testing.B) {
	cache, _ := geometry.NewCache()
	a := New(60)
	a.Walking = true
	s := xform.New()
	g := scene.NewGraph()
	for b.Loop() {
		g.Clear()
		a.Build(s, cache, g, 1.5)
	}
}
