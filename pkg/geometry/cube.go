// Package geometry generates the immutable vertex data shared by drawables.
// Buffers handed out by this package are read-only.
package geometry

// CubeStride is the number of floats per interleaved cube vertex (xyz + uv).
const CubeStride = 5

// CubeVertexCount is the number of vertices in a cube: 6 faces of 2 triangles.
const CubeVertexCount = 36

// Unit cube centred at the origin, faces in the order
// front, back, top, bottom, right, left.
var cubeInterleaved = [CubeVertexCount * CubeStride]float32{
	// front
	-0.5, -0.5, 0.5, 0, 0,
	0.5, -0.5, 0.5, 1, 0,
	0.5, 0.5, 0.5, 1, 1,
	-0.5, -0.5, 0.5, 0, 0,
	0.5, 0.5, 0.5, 1, 1,
	-0.5, 0.5, 0.5, 0, 1,
	// back
	0.5, -0.5, -0.5, 0, 0,
	-0.5, -0.5, -0.5, 1, 0,
	-0.5, 0.5, -0.5, 1, 1,
	0.5, -0.5, -0.5, 0, 0,
	-0.5, 0.5, -0.5, 1, 1,
	0.5, 0.5, -0.5, 0, 1,
	// top
	-0.5, 0.5, 0.5, 0, 0,
	0.5, 0.5, 0.5, 1, 0,
	0.5, 0.5, -0.5, 1, 1,
	-0.5, 0.5, 0.5, 0, 0,
	0.5, 0.5, -0.5, 1, 1,
	-0.5, 0.5, -0.5, 0, 1,
	// bottom
	-0.5, -0.5, -0.5, 0, 0,
	0.5, -0.5, -0.5, 1, 0,
	0.5, -0.5, 0.5, 1, 1,
	-0.5, -0.5, -0.5, 0, 0,
	0.5, -0.5, 0.5, 1, 1,
	-0.5, -0.5, 0.5, 0, 1,
	// right
	0.5, -0.5, 0.5, 0, 0,
	0.5, -0.5, -0.5, 1, 0,
	0.5, 0.5, -0.5, 1, 1,
	0.5, -0.5, 0.5, 0, 0,
	0.5, 0.5, -0.5, 1, 1,
	0.5, 0.5, 0.5, 0, 1,
	// left
	-0.5, -0.5, -0.5, 0, 0,
	-0.5, -0.5, 0.5, 1, 0,
	-0.5, 0.5, 0.5, 1, 1,
	-0.5, -0.5, -0.5, 0, 0,
	-0.5, 0.5, 0.5, 1, 1,
	-0.5, 0.5, -0.5, 0, 1,
}

var faceNormals = [6][3]float32{
	{0, 0, 1},
	{0, 0, -1},
	{0, 1, 0},
	{0, -1, 0},
	{1, 0, 0},
	{-1, 0, 0},
}

// CubeMesh holds the interleaved position/uv buffer and the per-vertex
// normal buffer of a unit cube.
type CubeMesh struct {
	Interleaved []float32
	Normals     []float32
}

// NewCube builds a cube mesh. Callers normally get the shared one from a Cache.
func NewCube() *CubeMesh {
	m := &CubeMesh{
		Interleaved: make([]float32, len(cubeInterleaved)),
		Normals:     make([]float32, 0, CubeVertexCount*3),
	}
	copy(m.Interleaved, cubeInterleaved[:])
	for _, n := range faceNormals {
		for range 6 {
			m.Normals = append(m.Normals, n[0], n[1], n[2])
		}
	}
	return m
}
