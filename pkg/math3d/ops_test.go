package math3d

import (
	"math"
	"testing"
)

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"perpendicular", V3(1, 0, 0), V3(0, 1, 0), 90},
		{"same direction", V3(2, 0, 0), V3(5, 0, 0), 0},
		{"opposite", V3(1, 1, 0), V3(-1, -1, 0), 180},
		{"diagonal", V3(1, 0, 0), V3(1, 1, 0), 45},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AngleBetween(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("AngleBetween(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestAngleBetweenZeroVector(t *testing.T) {
	if got := AngleBetween(Zero3(), V3(1, 0, 0)); !math.IsNaN(got) {
		t.Errorf("AngleBetween with zero vector = %v, want NaN", got)
	}
	if got := AngleBetween(V3(0, 1, 0), Zero3()); !math.IsNaN(got) {
		t.Errorf("AngleBetween with zero vector = %v, want NaN", got)
	}
}

func TestTriangleArea(t *testing.T) {
	if got := TriangleArea(V3(1, 0, 0), V3(0, 1, 0)); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("TriangleArea = %v, want 0.5", got)
	}
	if got := TriangleArea(V3(2.25, 2.25, 0), V3(1.5, 0.5, 0)); math.Abs(got-1.125) > 1e-12 {
		t.Errorf("TriangleArea = %v, want 1.125", got)
	}
	if got := TriangleArea(V3(1, 1, 0), V3(2, 2, 0)); got != 0 {
		t.Errorf("TriangleArea of parallel vectors = %v, want 0", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := Zero3().Normalize(); got != Zero3() {
		t.Errorf("Normalize(0) = %v, want zero vector", got)
	}
}

func TestParallel(t *testing.T) {
	if !Parallel(V3(0, 1, 0), V3(0, -3, 0)) {
		t.Error("antiparallel vectors should be parallel")
	}
	if Parallel(V3(0, 1, 0), V3(0, 0, -1)) {
		t.Error("perpendicular vectors should not be parallel")
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	cases := []struct{ eye, at, up Vec3 }{
		{V3(0, 2, 5), V3(0, 2, 0), Up()},
		{V3(3, 3, 7), Zero3(), Up()},
		{V3(-4, 1, 2), V3(10, -2, 3), V3(0, 0, 1)},
	}
	for _, c := range cases {
		view := LookAt(c.eye, c.at, c.up)
		got := view.MulVec3(c.eye)
		if got.Len() > 1e-9 {
			t.Errorf("LookAt(%v,%v,%v) maps eye to %v, want origin", c.eye, c.at, c.up, got)
		}
		// The target must land on the negative view axis.
		target := view.MulVec3(c.at)
		if math.Abs(target.X) > 1e-9 || math.Abs(target.Y) > 1e-9 || target.Z >= 0 {
			t.Errorf("LookAt maps target to %v, want point on -Z", target)
		}
	}
}

func TestRotateDeg(t *testing.T) {
	got := RotateDeg(90, V3(0, 1, 0)).MulVec3Dir(V3(0, 0, -1))
	want := V3(-1, 0, 0)
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("RotateDeg(90, Y) * (0,0,-1) = %v, want %v", got, want)
	}
}

func TestGLRoundTrip(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateDeg(30, Up())).Mul(Scale(V3(2, 2, 2)))
	back := FromGL(m.GL())
	if !back.ApproxEqual(m, 1e-6) {
		t.Errorf("FromGL(GL(m)) = %v, want %v", back, m)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, want float64 }{
		{-2, 0}, {0.25, 0.25}, {3, 1},
	}
	for _, tc := range tests {
		if got := Clamp(tc.v, 0, 1); got != tc.want {
			t.Errorf("Clamp(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestNormalMatrix(t *testing.T) {
	m := Translate(V3(3, -1, 2)).Mul(Scale(V3(2, 1, 1)))
	n := m.NormalMatrix().MulVec3Dir(V3(1, 1, 0))
	tangent := m.MulVec3Dir(V3(1, -1, 0))

	if d := n.Dot(tangent); math.Abs(d) > 1e-9 {
		t.Errorf("normal %v not perpendicular to tangent %v (dot %v)", n, tangent, d)
	}
	if got, want := n.Normalize(), V3(0.5, 1, 0).Normalize(); got.Sub(want).Len() > 1e-9 {
		t.Errorf("normal direction = %v, want %v", got, want)
	}

	// The plain model matrix would tilt the same normal off the surface.
	if d := m.MulVec3Dir(V3(1, 1, 0)).Dot(tangent); math.Abs(d) < 1 {
		t.Errorf("model matrix unexpectedly kept the normal perpendicular (dot %v)", d)
	}

	if got := Scale(V3(0, 1, 1)).NormalMatrix(); got != Identity() {
		t.Errorf("singular NormalMatrix = %v, want identity", got)
	}
}
