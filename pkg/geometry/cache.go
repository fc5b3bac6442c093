package geometry

import "fmt"

type sphereKey struct{ slices, stacks int }

// Cache owns the shared meshes. It is populated by NewCache and handed out
// by reference; it is used from the render goroutine only.
type Cache struct {
	cube    *CubeMesh
	spheres map[sphereKey]*SphereMesh
	models  map[string]*ModelMesh
}

// NewCache builds the cube and the default sphere.
func NewCache() (*Cache, error) {
	c := &Cache{
		cube:    NewCube(),
		spheres: make(map[sphereKey]*SphereMesh),
		models:  make(map[string]*ModelMesh),
	}
	if _, err := c.Sphere(DefaultSlices, DefaultStacks); err != nil {
		return nil, fmt.Errorf("warm sphere: %w", err)
	}
	return c, nil
}

// Cube returns the shared cube mesh.
func (c *Cache) Cube() *CubeMesh {
	return c.cube
}

// Sphere returns the shared sphere for a tessellation, building it the first
// time it is asked for.
func (c *Cache) Sphere(slices, stacks int) (*SphereMesh, error) {
	k := sphereKey{slices, stacks}
	if m, ok := c.spheres[k]; ok {
		return m, nil
	}
	m, err := NewSphere(slices, stacks)
	if err != nil {
		return nil, err
	}
	c.spheres[k] = m
	return m, nil
}

// Model returns the mesh loaded from a glTF file, reading it the first time
// the path is asked for.
func (c *Cache) Model(path string) (*ModelMesh, error) {
	if m, ok := c.models[path]; ok {
		return m, nil
	}
	m, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	c.models[path] = m
	return m, nil
}

// Len returns the number of meshes held.
func (c *Cache) Len() int {
	return 1 + len(c.spheres) + len(c.models)
}
