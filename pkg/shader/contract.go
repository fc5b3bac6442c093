package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/taigrr/diorama/pkg/math3d"
)

// ErrMissingSlot is returned by Bind when the program does not expose a slot.
var ErrMissingSlot = errors.New("shader: missing slot")

// State is the uniform state last written through a Contract.
type State struct {
	Model       mgl32.Mat4
	View        mgl32.Mat4
	Proj        mgl32.Mat4
	TexIndex    int
	TexWeight   float32
	BaseColor   mgl32.Vec4
	LightPos    mgl32.Vec3
	LightColor  mgl32.Vec3
	UseLighting bool
	ShowNormals bool
	PointSize   float32
}

// Contract is a Backend with every slot resolved. Drawables write through
// it instead of touching locations directly.
type Contract struct {
	backend Backend
	loc     [numSlots]Location
	state   State
}

// Bind resolves every slot against b. It fails with ErrMissingSlot naming
// all slots the program does not expose.
func Bind(b Backend) (*Contract, error) {
	c := &Contract{backend: b}
	var missing []string
	for _, s := range Slots() {
		var loc Location
		if s.IsAttribute() {
			loc = b.AttribLocation(s.String())
		} else {
			loc = b.UniformLocation(s.String())
		}
		if loc < 0 {
			missing = append(missing, s.String())
		}
		c.loc[s] = loc
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingSlot, strings.Join(missing, ", "))
	}

	c.state.Model = mgl32.Ident4()
	c.state.View = mgl32.Ident4()
	c.state.Proj = mgl32.Ident4()
	c.state.TexIndex = NoTexture
	c.state.BaseColor = mgl32.Vec4{1, 1, 1, 1}
	c.state.LightColor = mgl32.Vec3{1, 1, 1}
	c.state.PointSize = 1
	c.flush()
	return c, nil
}

// flush writes the whole shadow state to the backend.
func (c *Contract) flush() {
	c.backend.UniformMat4(c.loc[ModelMatrix], c.state.Model)
	c.backend.UniformMat4(c.loc[ViewMatrix], c.state.View)
	c.backend.UniformMat4(c.loc[ProjMatrix], c.state.Proj)
	c.backend.UniformInt(c.loc[TexIndex], c.state.TexIndex)
	c.backend.UniformFloat(c.loc[TexWeight], c.state.TexWeight)
	c.backend.UniformVec4(c.loc[BaseColor], c.state.BaseColor)
	c.backend.UniformVec3(c.loc[LightPos], c.state.LightPos)
	c.backend.UniformVec3(c.loc[LightColor], c.state.LightColor)
	c.backend.UniformInt(c.loc[UseLighting], boolInt(c.state.UseLighting))
	c.backend.UniformInt(c.loc[ShowNormals], boolInt(c.state.ShowNormals))
	c.backend.UniformFloat(c.loc[PointSize], c.state.PointSize)
}

// State returns a copy of the uniform state.
func (c *Contract) State() State {
	return c.state
}

// Location returns the resolved handle of s.
func (c *Contract) Location(s Slot) Location {
	return c.loc[s]
}

// SetModel uploads the model matrix.
func (c *Contract) SetModel(m math3d.Mat4) {
	c.state.Model = m.GL()
	c.backend.UniformMat4(c.loc[ModelMatrix], c.state.Model)
}

// SetCamera uploads the view and projection matrices.
func (c *Contract) SetCamera(view, proj math3d.Mat4) {
	c.state.View = view.GL()
	c.state.Proj = proj.GL()
	c.backend.UniformMat4(c.loc[ViewMatrix], c.state.View)
	c.backend.UniformMat4(c.loc[ProjMatrix], c.state.Proj)
}

// SetMaterial uploads the texture unit, blend weight and base color.
// texIndex is NoTexture for untextured materials.
func (c *Contract) SetMaterial(texIndex int, texWeight float64, color math3d.Vec4) {
	c.state.TexIndex = texIndex
	c.state.TexWeight = float32(texWeight)
	c.state.BaseColor = color.GL()
	c.backend.UniformInt(c.loc[TexIndex], c.state.TexIndex)
	c.backend.UniformFloat(c.loc[TexWeight], c.state.TexWeight)
	c.backend.UniformVec4(c.loc[BaseColor], c.state.BaseColor)
}

// SetLight uploads the light position and color.
func (c *Contract) SetLight(pos, color math3d.Vec3) {
	c.state.LightPos = pos.GL()
	c.state.LightColor = color.GL()
	c.backend.UniformVec3(c.loc[LightPos], c.state.LightPos)
	c.backend.UniformVec3(c.loc[LightColor], c.state.LightColor)
}

// SetLighting toggles the lighting path.
func (c *Contract) SetLighting(on bool) {
	c.state.UseLighting = on
	c.backend.UniformInt(c.loc[UseLighting], boolInt(on))
}

// SetShowNormals toggles normal visualization.
func (c *Contract) SetShowNormals(on bool) {
	c.state.ShowNormals = on
	c.backend.UniformInt(c.loc[ShowNormals], boolInt(on))
}

// SetPointSize sets the size of point primitives in reference pixels.
func (c *Contract) SetPointSize(size float64) {
	c.state.PointSize = float32(size)
	c.backend.UniformFloat(c.loc[PointSize], c.state.PointSize)
}

// Unlit runs fn with lighting disabled and restores the previous setting.
func (c *Contract) Unlit(fn func()) {
	prev := c.state.UseLighting
	c.SetLighting(false)
	defer c.SetLighting(prev)
	fn()
}

// Attrib binds interleaved float data to an attribute slot.
func (c *Contract) Attrib(s Slot, data []float32, size, stride, offset int) {
	c.backend.VertexAttribPointer(c.loc[s], data, size, stride, offset)
}

// ConstAttrib sets a constant value for an attribute slot, replacing any
// bound array.
func (c *Contract) ConstAttrib(s Slot, v mgl32.Vec4) {
	c.backend.VertexAttrib(c.loc[s], v)
}

// DrawArrays issues a non-indexed draw.
func (c *Contract) DrawArrays(mode Mode, first, count int) {
	c.backend.DrawArrays(mode, first, count)
}

// DrawElements issues an indexed draw.
func (c *Contract) DrawElements(mode Mode, indices []uint16) {
	c.backend.DrawElements(mode, indices)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
