package scene

import (
	"fmt"

	"github.com/taigrr/diorama/pkg/geometry"
	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/shader"
)

// Cube is a unit cube centred on the origin, placed by Model. All cubes
// share the cache's mesh.
type Cube struct {
	Model    math3d.Mat4
	Material Material

	mesh *geometry.CubeMesh
}

// NewCube creates a cube referencing the shared mesh in cache.
func NewCube(cache *geometry.Cache, model math3d.Mat4, mat Material) *Cube {
	return &Cube{Model: model, Material: mat, mesh: cache.Cube()}
}

// Kind returns KindCube.
func (*Cube) Kind() Kind { return KindCube }
func (*Cube) drawable()  {}

// Draw draws the cube with its model matrix and material.
func (cb *Cube) Draw(c *shader.Contract) {
	data := cb.mesh.Interleaved
	c.Attrib(shader.Position, data, 3, geometry.CubeStride, 0)
	c.Attrib(shader.UV, data, 2, geometry.CubeStride, 3)
	c.Attrib(shader.Normal, cb.mesh.Normals, 3, 0, 0)
	c.SetModel(cb.Model)
	cb.Material.apply(c)
	c.DrawArrays(shader.Triangles, 0, geometry.CubeVertexCount)
}

// Sphere is a unit UV sphere placed by Model.
type Sphere struct {
	Model    math3d.Mat4
	Material Material

	mesh *geometry.SphereMesh
}

// NewSphere creates a sphere with the given tessellation, sharing the mesh
// through cache. It fails with geometry.ErrSlices for slices < 3 or
// stacks < 2.
func NewSphere(cache *geometry.Cache, slices, stacks int, model math3d.Mat4, mat Material) (*Sphere, error) {
	mesh, err := cache.Sphere(slices, stacks)
	if err != nil {
		return nil, fmt.Errorf("new sphere: %w", err)
	}
	return &Sphere{Model: model, Material: mat, mesh: mesh}, nil
}

// Kind returns KindSphere.
func (*Sphere) Kind() Kind { return KindSphere }
func (*Sphere) drawable()  {}

// Mesh returns the shared tessellation.
func (s *Sphere) Mesh() *geometry.SphereMesh { return s.mesh }

// Draw draws the indexed sphere mesh with its model matrix and material.
func (s *Sphere) Draw(c *shader.Contract) {
	c.Attrib(shader.Position, s.mesh.Positions, 3, 0, 0)
	c.Attrib(shader.UV, s.mesh.UVs, 2, 0, 0)
	c.Attrib(shader.Normal, s.mesh.Normals, 3, 0, 0)
	c.SetModel(s.Model)
	s.Material.apply(c)
	c.DrawElements(shader.Triangles, s.mesh.Indices)
}

// Model is a mesh loaded from a glTF file, placed by Model.
type Model struct {
	Model    math3d.Mat4
	Material Material

	mesh *geometry.ModelMesh
}

// NewModel loads the file at path through cache, so repeated models of one
// file share their mesh.
func NewModel(cache *geometry.Cache, path string, model math3d.Mat4, mat Material) (*Model, error) {
	mesh, err := cache.Model(path)
	if err != nil {
		return nil, fmt.Errorf("new model: %w", err)
	}
	return &Model{Model: model, Material: mat, mesh: mesh}, nil
}

// Kind returns KindModel.
func (*Model) Kind() Kind { return KindModel }
func (*Model) drawable()  {}

// Mesh returns the shared mesh.
func (m *Model) Mesh() *geometry.ModelMesh { return m.mesh }

// Draw draws the loaded mesh with its model matrix and material.
func (m *Model) Draw(c *shader.Contract) {
	c.Attrib(shader.Position, m.mesh.Positions, 3, 0, 0)
	c.Attrib(shader.UV, m.mesh.UVs, 2, 0, 0)
	c.Attrib(shader.Normal, m.mesh.Normals, 3, 0, 0)
	c.SetModel(m.Model)
	m.Material.apply(c)
	c.DrawElements(shader.Triangles, m.mesh.Indices)
}
