// Package scene holds the drawable primitives, the ordered scene graph and
// the per-frame render state that feeds them to a shader contract.
package scene

import (
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/shader"
)

// Kind identifies a drawable variant.
type Kind int

const (
	KindPoint Kind = iota
	KindTriangle
	KindDisc
	KindCube
	KindSphere
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindTriangle:
		return "triangle"
	case KindDisc:
		return "disc"
	case KindCube:
		return "cube"
	case KindSphere:
		return "sphere"
	case KindModel:
		return "model"
	default:
		return "unknown"
	}
}

// Is2D reports whether the kind is a flat, unlit canvas primitive.
func (k Kind) Is2D() bool {
	return k <= KindDisc
}

// Drawable is implemented by the canvas shapes, Cube, Sphere and Model only.
// Draw binds the primitive's vertex data, model matrix and material, then
// issues exactly one draw call.
type Drawable interface {
	Kind() Kind
	Draw(c *shader.Contract)

	drawable()
}

// Material is a drawable's texture blend and base color.
type Material struct {
	// TexIndex selects a texture unit, or shader.NoTexture.
	TexIndex int
	// TexWeight blends from Color (0) to the texture (1).
	TexWeight float64
	Color     math3d.Vec4
}

// Solid returns an untextured material.
func Solid(color math3d.Vec4) Material {
	return Material{TexIndex: shader.NoTexture, Color: color}
}

// Textured returns a material sampling unit with the given blend weight.
func Textured(unit int, weight float64, color math3d.Vec4) Material {
	return Material{TexIndex: unit, TexWeight: math3d.Clamp(weight, 0, 1), Color: color}
}

func (m Material) apply(c *shader.Contract) {
	c.SetMaterial(m.TexIndex, m.TexWeight, m.Color)
}
