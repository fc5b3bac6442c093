package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/render"
	"github.com/taigrr/diorama/pkg/scene"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	_, err := render.NewCamera(cfg.CameraOptions(1.5))
	assert.NoError(t, err)
	assert.NoError(t, cfg.GridOptions().Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverlay(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
[camera]
eye = [1, 2, 3]
fov = 45

[world]
map_size = 8
seed = 99

[light]
color = [1, 0.5, 0]
model = "duck.glb"

[textures]
paths = ["a.png", "b.tga"]
watch = true

[sketch]
color = [0, 0, 1, 0.5]
`))
	require.NoError(t, err)

	assert.Equal(t, [3]float64{1, 2, 3}, cfg.Camera.Eye)
	assert.Equal(t, 45.0, cfg.Camera.FOV)
	assert.Equal(t, [3]float64{0, 2, 0}, cfg.Camera.At, "unset keys keep defaults")
	assert.Equal(t, 8, cfg.World.MapSize)
	assert.Equal(t, 5, cfg.World.MaxHeight)
	assert.Equal(t, uint64(99), cfg.World.Seed)
	assert.Equal(t, []string{"a.png", "b.tga"}, cfg.Textures.Paths)
	assert.True(t, cfg.Textures.Watch)

	assert.Equal(t, math3d.V3(1, 0.5, 0), cfg.NewLight().Color)
	b := cfg.Brush()
	assert.Equal(t, math3d.V4(0, 0, 1, 0.5), b.Color)
	assert.Equal(t, scene.KindPoint, b.Kind)
	assert.Equal(t, 8, cfg.GridOptions().MapSize)
	assert.Equal(t, "duck.glb", cfg.LitOptions().Model)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"unknown key", "[camera]\nzoom = 2\n"},
		{"unknown section", "[audio]\nvolume = 1\n"},
		{"fov", "[camera]\nfov = 180\n"},
		{"near far", "[camera]\nnear = 5\nfar = 1\n"},
		{"eye at", "[camera]\neye = [0, 2, 0]\n"},
		{"density", "[world]\nwall_density = 2.0\n"},
		{"map", "[world]\nmap_size = 0\n"},
		{"fps", "[render]\nfps = 0\n"},
		{"segments", "[sketch]\nsegments = 2\n"},
		{"too many textures", "[textures]\npaths = [\"a\", \"b\", \"c\", \"d\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.toml))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse(strings.NewReader("[camera\n"))
	assert.Error(t, err, "syntax error")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diorama.toml")
	require.NoError(t, os.WriteFile(path, []byte("[render]\nfps = 30\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Render.FPS)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
