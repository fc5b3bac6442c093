package geometry

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTriangle writes a .gltf holding the triangle (0,0,0) (2,0,0) (0,2,0),
// optionally indexed, with the buffer embedded as a data URI.
func writeTriangle(t *testing.T, indices []uint16) string {
	t.Helper()
	var buf bytes.Buffer
	for _, f := range []float32{0, 0, 0, 2, 0, 0, 0, 2, 0} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, f))
	}
	for _, ix := range indices {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, ix))
	}

	views := `{"buffer":0,"byteLength":36}`
	accessors := `{"bufferView":0,"componentType":5126,"count":3,"type":"VEC3","min":[0,0,0],"max":[2,2,0]}`
	prim := `{"attributes":{"POSITION":0}}`
	if len(indices) > 0 {
		views += fmt.Sprintf(`,{"buffer":0,"byteOffset":36,"byteLength":%d}`, 2*len(indices))
		accessors += fmt.Sprintf(`,{"bufferView":1,"componentType":5123,"count":%d,"type":"SCALAR"}`, len(indices))
		prim = `{"attributes":{"POSITION":0},"indices":1}`
	}
	doc := fmt.Sprintf(`{"asset":{"version":"2.0"},`+
		`"buffers":[{"byteLength":%d,"uri":"data:application/octet-stream;base64,%s"}],`+
		`"bufferViews":[%s],"accessors":[%s],`+
		`"meshes":[{"name":"tri","primitives":[%s]}]}`,
		buf.Len(), base64.StdEncoding.EncodeToString(buf.Bytes()), views, accessors, prim)

	path := filepath.Join(t.TempDir(), "tri.gltf")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestLoadModel(t *testing.T) {
	for _, tc := range []struct {
		name    string
		indices []uint16
	}{
		{"indexed", []uint16{0, 1, 2}},
		{"sequential", nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, err := LoadModel(writeTriangle(t, tc.indices))
			require.NoError(t, err)
			assert.Equal(t, "tri.gltf", m.Name)
			assert.Equal(t, 3, m.VertexCount())
			assert.Equal(t, 1, m.TriangleCount())
			assert.Equal(t, []uint16{0, 1, 2}, m.Indices)

			// Recentred and scaled to unit extent.
			assert.InDeltaSlice(t, []float32{-.5, -.5, 0, .5, -.5, 0, -.5, .5, 0}, m.Positions, 1e-6)
			// Rebuilt normals face +Z.
			for i := 0; i < len(m.Normals); i += 3 {
				assert.InDeltaSlice(t, []float32{0, 0, 1}, m.Normals[i:i+3], 1e-6)
			}
			assert.Len(t, m.UVs, 6)
		})
	}
}

func TestLoadModelErrors(t *testing.T) {
	_, err := LoadModel(writeTriangle(t, []uint16{0, 1, 7}))
	assert.True(t, errors.Is(err, ErrModel), "bad index: %v", err)

	empty := filepath.Join(t.TempDir(), "empty.gltf")
	require.NoError(t, os.WriteFile(empty, []byte(`{"asset":{"version":"2.0"}}`), 0o644))
	_, err = LoadModel(empty)
	assert.True(t, errors.Is(err, ErrModel), "no meshes: %v", err)

	_, err = LoadModel(filepath.Join(t.TempDir(), "missing.glb"))
	assert.Error(t, err)
}

func TestCacheModel(t *testing.T) {
	c, err := NewCache()
	require.NoError(t, err)
	base := c.Len()

	path := writeTriangle(t, []uint16{0, 1, 2})
	a, err := c.Model(path)
	require.NoError(t, err)
	b, err := c.Model(path)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, base+1, c.Len())

	_, err = c.Model(filepath.Join(t.TempDir(), "missing.gltf"))
	assert.Error(t, err)
	assert.Equal(t, base+1, c.Len(), "failures are not cached")
}
