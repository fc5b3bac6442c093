package xform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/diorama/pkg/math3d"
)

func TestPushPopRoundTrip(t *testing.T) {
	s := New()
	s.Translate(1, 2, 3).RotateDeg(30, math3d.V3(0, 0, 1))
	before := s.Current()

	ops := []func(){
		func() { s.Push(); s.Scale(2, 2, 2) },
		func() { s.Push(); s.Translate(0, -0.7, 0) },
		func() { s.Pop() },
		func() { s.Push(); s.RotateDeg(45, math3d.V3(0, 1, 0)) },
		func() { s.Pop() },
		func() { s.Pop() },
	}
	for _, op := range ops {
		op()
	}

	assert.Equal(t, 0, s.Depth())
	assert.True(t, s.Current().ApproxEqual(before, 1e-12), "pose changed: got %v want %v", s.Current(), before)
}

func TestPopReturnsRestoredPose(t *testing.T) {
	s := New()
	s.Translate(1, 0, 0)
	want := s.Current()
	s.Push()
	s.Translate(5, 5, 5)
	got := s.Pop()
	if got != want {
		t.Errorf("Pop() = %v, want %v", got, want)
	}
}

func TestPopEmptyPanics(t *testing.T) {
	s := New()
	defer func() {
		r := recover()
		require.NotNil(t, r, "Pop on empty stack did not panic")
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrUnderflow))
	}()
	s.Pop()
}

func TestScopeRestoresOnPanic(t *testing.T) {
	s := New()
	s.Translate(0, 1, 0)
	before := s.Current()

	func() {
		defer func() { _ = recover() }()
		s.Scope(func() {
			s.Scale(3, 3, 3)
			panic("boom")
		})
	}()

	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, before, s.Current())
}

func TestScopeNested(t *testing.T) {
	s := New()
	var inner math3d.Mat4
	s.Scope(func() {
		s.Translate(1, 0, 0)
		s.Scope(func() {
			s.Translate(0, 1, 0)
			inner = s.Current()
		})
		assert.Equal(t, 1, s.Depth())
	})

	got := inner.MulVec3(math3d.Zero3())
	assert.InDelta(t, 1, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)
	assert.Equal(t, math3d.Identity(), s.Current())
}

func TestComposeMatchesStack(t *testing.T) {
	parent := math3d.Translate(math3d.V3(0.8, -0.5, 0.5))
	hip := math3d.RotateDeg(30, math3d.V3(0, 0, 1))
	knee := math3d.Translate(math3d.V3(0, -0.7, 0))

	s := New()
	s.Set(parent)
	s.Push()
	s.Mul(hip).Mul(knee)
	viaStack := s.Current()
	s.Pop()

	viaCompose := Compose(parent, hip, knee)
	if !viaStack.ApproxEqual(viaCompose, 1e-12) {
		t.Errorf("Compose = %v, stack = %v", viaCompose, viaStack)
	}
	if Compose(parent) != parent {
		t.Error("Compose with no locals should return parent")
	}
}

func BenchmarkScope(b *testing.B) {
	s := New()
	for b.Loop() {
		s.Scope(func() {
			s.Translate(0, -0.5, 0).RotateDeg(30, math3d.V3(0, 0, 1))
		})
	}
}
