package geometry

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrModel is returned for glTF files that hold no drawable triangles or
// too many vertices for 16-bit indices.
var ErrModel = errors.New("geometry: unusable model")

// ModelMesh is an indexed triangle mesh read from a glTF or GLB file. It is
// recentred on the origin and scaled so its largest extent is 1, like the
// unit cube.
type ModelMesh struct {
	Name      string
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint16
}

// VertexCount returns the number of vertices.
func (m *ModelMesh) VertexCount() int { return len(m.Positions) / 3 }

// TriangleCount returns the number of triangles.
func (m *ModelMesh) TriangleCount() int { return len(m.Indices) / 3 }

// LoadModel reads every triangle primitive of every mesh in a glTF file into
// one mesh. Missing normals are rebuilt by averaging face normals.
func LoadModel(path string) (*ModelMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	m := &ModelMesh{Name: filepath.Base(path)}
	hasNormals := true
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			ok, err := m.addPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: %w", mesh.Name, err)
			}
			if ok {
				_, has := prim.Attributes[gltf.NORMAL]
				hasNormals = hasNormals && has
			}
		}
	}
	if len(m.Indices) == 0 {
		return nil, fmt.Errorf("%w: %s has no triangles", ErrModel, m.Name)
	}
	if !hasNormals {
		m.smoothNormals()
	}
	m.normalize()
	return m, nil
}

// addPrimitive appends one primitive, reporting false when it was skipped
// for not being a triangle list with positions.
func (m *ModelMesh) addPrimitive(doc *gltf.Document, prim *gltf.Primitive) (bool, error) {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		return false, nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return false, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return false, fmt.Errorf("read positions: %w", err)
	}
	base := m.VertexCount()
	if base+len(positions) > 1<<16 {
		return false, fmt.Errorf("%w: more than %d vertices", ErrModel, 1<<16)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return false, fmt.Errorf("read normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return false, fmt.Errorf("read uvs: %w", err)
		}
	}

	for i, p := range positions {
		m.Positions = append(m.Positions, p[0], p[1], p[2])
		n := [3]float32{0, 1, 0}
		if i < len(normals) {
			n = normals[i]
		}
		m.Normals = append(m.Normals, n[0], n[1], n[2])
		// glTF puts v=0 at the top of the image.
		var u, v float32
		if i < len(uvs) {
			u, v = uvs[i][0], 1-uvs[i][1]
		}
		m.UVs = append(m.UVs, u, v)
	}

	if prim.Indices == nil {
		for i := 0; i+2 < len(positions); i += 3 {
			m.Indices = append(m.Indices, uint16(base+i), uint16(base+i+1), uint16(base+i+2))
		}
		return true, nil
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return false, fmt.Errorf("read indices: %w", err)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		for _, ix := range indices[i : i+3] {
			if int(ix) >= len(positions) {
				return false, fmt.Errorf("%w: index %d out of %d vertices", ErrModel, ix, len(positions))
			}
			m.Indices = append(m.Indices, uint16(base+int(ix)))
		}
	}
	return true, nil
}

func (m *ModelMesh) vertex(i uint16) (x, y, z float32) {
	p := m.Positions[int(i)*3:]
	return p[0], p[1], p[2]
}

func (m *ModelMesh) smoothNormals() {
	clear(m.Normals)
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		ax, ay, az := m.vertex(a)
		bx, by, bz := m.vertex(b)
		cx, cy, cz := m.vertex(c)
		e1x, e1y, e1z := bx-ax, by-ay, bz-az
		e2x, e2y, e2z := cx-ax, cy-ay, cz-az
		// Unnormalized, so larger faces weigh more.
		nx := e1y*e2z - e1z*e2y
		ny := e1z*e2x - e1x*e2z
		nz := e1x*e2y - e1y*e2x
		for _, ix := range [3]uint16{a, b, c} {
			n := m.Normals[int(ix)*3:]
			n[0] += nx
			n[1] += ny
			n[2] += nz
		}
	}
	for i := 0; i < len(m.Normals); i += 3 {
		n := m.Normals[i : i+3]
		l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if l == 0 {
			n[1] = 1
			continue
		}
		n[0], n[1], n[2] = n[0]/l, n[1]/l, n[2]/l
	}
}

// normalize centres the bounding box on the origin and scales the largest
// extent to 1.
func (m *ModelMesh) normalize() {
	lo := [3]float32{math32.Inf(1), math32.Inf(1), math32.Inf(1)}
	hi := [3]float32{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)}
	for i := 0; i < len(m.Positions); i += 3 {
		for k := range 3 {
			lo[k] = min(lo[k], m.Positions[i+k])
			hi[k] = max(hi[k], m.Positions[i+k])
		}
	}
	var centre [3]float32
	var extent float32
	for k := range 3 {
		centre[k] = (lo[k] + hi[k]) / 2
		extent = max(extent, hi[k]-lo[k])
	}
	scale := float32(1)
	if extent > 0 {
		scale = 1 / extent
	}
	for i := 0; i < len(m.Positions); i += 3 {
		for k := range 3 {
			m.Positions[i+k] = (m.Positions[i+k] - centre[k]) * scale
		}
	}
}
