// Package shader describes the fixed set of attribute and uniform slots a
// drawable writes and binds them to a graphics program.
package shader

import "github.com/go-gl/mathgl/mgl32"

// Slot names one attribute or uniform the drawables write.
type Slot int

const (
	Position Slot = iota
	UV
	Normal
	ModelMatrix
	ViewMatrix
	ProjMatrix
	TexIndex
	TexWeight
	BaseColor
	LightPos
	LightColor
	UseLighting
	ShowNormals
	PointSize

	numSlots
)

var slotNames = [numSlots]string{
	Position:    "position",
	UV:          "uv",
	Normal:      "normal",
	ModelMatrix: "modelMatrix",
	ViewMatrix:  "viewMatrix",
	ProjMatrix:  "projMatrix",
	TexIndex:    "texIndex",
	TexWeight:   "texWeight",
	BaseColor:   "baseColor",
	LightPos:    "lightPos",
	LightColor:  "lightColor",
	UseLighting: "useLighting",
	ShowNormals: "showNormals",
	PointSize:   "pointSize",
}

// String returns the name the slot is looked up by.
func (s Slot) String() string {
	if s < 0 || s >= numSlots {
		return "unknown"
	}
	return slotNames[s]
}

// IsAttribute reports whether the slot is a per-vertex attribute.
func (s Slot) IsAttribute() bool {
	return s <= Normal
}

// Slots returns every slot in declaration order.
func Slots() []Slot {
	out := make([]Slot, numSlots)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}

// Location is a backend handle for a slot.
type Location int

// NoLocation is returned by a backend that does not expose a slot.
const NoLocation Location = -1

// Mode is the primitive assembly mode of a draw call.
type Mode int

const (
	Points Mode = iota
	Triangles
)

func (m Mode) String() string {
	switch m {
	case Points:
		return "points"
	case Triangles:
		return "triangles"
	default:
		return "unknown"
	}
}

// NoTexture is the texture index meaning "sample nothing".
const NoTexture = -1

// Backend is a linked graphics program. Stride and offset of vertex
// attribute pointers are counted in float32 elements.
type Backend interface {
	AttribLocation(name string) Location
	UniformLocation(name string) Location

	VertexAttribPointer(loc Location, data []float32, size, stride, offset int)
	VertexAttrib(loc Location, v mgl32.Vec4)

	UniformInt(loc Location, v int)
	UniformFloat(loc Location, v float32)
	UniformVec3(loc Location, v mgl32.Vec3)
	UniformVec4(loc Location, v mgl32.Vec4)
	UniformMat4(loc Location, m mgl32.Mat4)

	DrawArrays(mode Mode, first, count int)
	DrawElements(mode Mode, indices []uint16)
}
