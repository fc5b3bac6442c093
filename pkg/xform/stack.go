// Package xform composes hierarchical poses. A Stack holds the accumulated
// model matrix of the node being drawn plus the poses saved by its parents.
package xform

import (
	"errors"

	"github.com/taigrr/diorama/pkg/math3d"
)

// ErrUnderflow is the panic value raised when Pop is called on an empty stack.
var ErrUnderflow = errors.New("xform: pop on empty stack")

// Stack is a LIFO of saved poses around a current accumulated pose.
// The zero value is not ready for use; call New.
type Stack struct {
	current math3d.Mat4
	saved   []math3d.Mat4
}

// New returns a stack whose current pose is the identity.
func New() *Stack {
	return &Stack{current: math3d.Identity()}
}

// Current returns the accumulated pose.
func (s *Stack) Current() math3d.Mat4 {
	return s.current
}

// Set replaces the accumulated pose.
func (s *Stack) Set(m math3d.Mat4) {
	s.current = m
}

// Depth returns the number of saved poses.
func (s *Stack) Depth() int {
	return len(s.saved)
}

// Push saves a copy of the current pose.
func (s *Stack) Push() {
	s.saved = append(s.saved, s.current)
}

// Pop restores the most recently pushed pose and returns it.
// Popping an empty stack is a programming error and panics with ErrUnderflow.
func (s *Stack) Pop() math3d.Mat4 {
	n := len(s.saved)
	if n == 0 {
		panic(ErrUnderflow)
	}
	s.current = s.saved[n-1]
	s.saved = s.saved[:n-1]
	return s.current
}

// Scope runs fn between a Push and a Pop. The pop happens on every exit
// path, including a panic inside fn.
func (s *Stack) Scope(fn func()) {
	s.Push()
	defer s.Pop()
	fn()
}

// Mul post-multiplies the current pose by m (parent before child).
func (s *Stack) Mul(m math3d.Mat4) *Stack {
	s.current = s.current.Mul(m)
	return s
}

// Translate appends a translation to the current pose.
func (s *Stack) Translate(x, y, z float64) *Stack {
	return s.Mul(math3d.Translate(math3d.V3(x, y, z)))
}

// RotateDeg appends a rotation of deg degrees about axis.
func (s *Stack) RotateDeg(deg float64, axis math3d.Vec3) *Stack {
	return s.Mul(math3d.RotateDeg(deg, axis))
}

// Scale appends a non-uniform scale.
func (s *Stack) Scale(x, y, z float64) *Stack {
	return s.Mul(math3d.Scale(math3d.V3(x, y, z)))
}

// Compose returns parent multiplied by each local transform in order.
// It is the pure counterpart of a Push/Mul.../Pop sequence.
func Compose(parent math3d.Mat4, locals ...math3d.Mat4) math3d.Mat4 {
	out := parent
	for _, l := range locals {
		out = out.Mul(l)
	}
	return out
}
