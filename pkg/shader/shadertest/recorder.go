// Package shadertest provides a recording shader.Backend for tests.
package shadertest

import (
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/taigrr/diorama/pkg/shader"
)

// Attrib is the last source bound to an attribute.
type Attrib struct {
	Data   []float32
	Size   int
	Stride int
	Offset int
	// Const is set when the attribute was given a constant value.
	Const *mgl32.Vec4
}

// Draw is one recorded draw call together with the state it saw.
type Draw struct {
	Mode     shader.Mode
	First    int
	Count    int
	Indices  []uint16
	Uniforms map[string]any
	Attribs  map[string]Attrib
}

// Recorder implements shader.Backend by remembering every write.
type Recorder struct {
	// Missing lists slot names the recorder pretends not to expose.
	Missing []string

	Draws []Draw
	// Writes counts uniform writes per slot name.
	Writes map[string]int

	names    []string
	uniforms map[string]any
	attribs  map[string]Attrib
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{
		Writes:   make(map[string]int),
		uniforms: make(map[string]any),
		attribs:  make(map[string]Attrib),
	}
}

func (r *Recorder) lookup(name string) shader.Location {
	if slices.Contains(r.Missing, name) {
		return shader.NoLocation
	}
	if i := slices.Index(r.names, name); i >= 0 {
		return shader.Location(i)
	}
	r.names = append(r.names, name)
	return shader.Location(len(r.names) - 1)
}

func (r *Recorder) name(loc shader.Location) string {
	if loc < 0 || int(loc) >= len(r.names) {
		return ""
	}
	return r.names[loc]
}

func (r *Recorder) AttribLocation(name string) shader.Location { return r.lookup(name) }
func (r *Recorder) UniformLocation(name string) shader.Location { return r.lookup(name) }

func (r *Recorder) VertexAttribPointer(loc shader.Location, data []float32, size, stride, offset int) {
	r.attribs[r.name(loc)] = Attrib{Data: data, Size: size, Stride: stride, Offset: offset}
}

func (r *Recorder) VertexAttrib(loc shader.Location, v mgl32.Vec4) {
	r.attribs[r.name(loc)] = Attrib{Const: &v}
}

func (r *Recorder) set(loc shader.Location, v any) {
	n := r.name(loc)
	r.uniforms[n] = v
	r.Writes[n]++
}

func (r *Recorder) UniformInt(loc shader.Location, v int) { r.set(loc, v) }
func (r *Recorder) UniformFloat(loc shader.Location, v float32) { r.set(loc, v) }
func (r *Recorder) UniformVec3(loc shader.Location, v mgl32.Vec3) { r.set(loc, v) }
func (r *Recorder) UniformVec4(loc shader.Location, v mgl32.Vec4) { r.set(loc, v) }
func (r *Recorder) UniformMat4(loc shader.Location, m mgl32.Mat4) { r.set(loc, m) }

func (r *Recorder) DrawArrays(mode shader.Mode, first, count int) {
	r.Draws = append(r.Draws, Draw{
		Mode: mode, First: first, Count: count,
		Uniforms: maps.Clone(r.uniforms),
		Attribs:  maps.Clone(r.attribs),
	})
}

func (r *Recorder) DrawElements(mode shader.Mode, indices []uint16) {
	r.Draws = append(r.Draws, Draw{
		Mode: mode, Count: len(indices), Indices: indices,
		Uniforms: maps.Clone(r.uniforms),
		Attribs:  maps.Clone(r.attribs),
	})
}

// Uniform returns the current value of a uniform by slot.
func (r *Recorder) Uniform(s shader.Slot) any {
	return r.uniforms[s.String()]
}

// LastDraw returns the most recent draw call. It panics if none was made.
func (r *Recorder) LastDraw() Draw {
	return r.Draws[len(r.Draws)-1]
}

// Reset forgets recorded draws and write counts but keeps uniform state.
func (r *Recorder) Reset() {
	r.Draws = nil
	clear(r.Writes)
}

// Bind is a helper that binds a fresh recorder and returns both halves.
func Bind() (*Recorder, *shader.Contract) {
	r := New()
	c, err := shader.Bind(r)
	if err != nil {
		panic(err)
	}
	r.Reset()
	return r, c
}

// Lit reports whether the draw ran with the lighting uniform enabled.
func (d Draw) Lit() bool {
	v, _ := d.Uniforms[shader.UseLighting.String()].(int)
	return v != 0
}

// Model returns the model matrix the draw saw.
func (d Draw) Model() mgl32.Mat4 {
	m, _ := d.Uniforms[shader.ModelMatrix.String()].(mgl32.Mat4)
	return m
}

// Color returns the base color the draw saw.
func (d Draw) Color() mgl32.Vec4 {
	c, _ := d.Uniforms[shader.BaseColor.String()].(mgl32.Vec4)
	return c
}
