package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendPixel(t *testing.T) {
	tests := []struct {
		name string
		dst  Color
		src  Color
		want Color
	}{
		{"opaque replaces", ColorBlack, ColorRed, ColorRed},
		{"transparent keeps", ColorBlue, RGBA(255, 0, 0, 0), ColorBlue},
		{"half over black", ColorBlack, RGBA(255, 255, 255, 128), RGBA(128, 128, 128, 255)},
		{"half over clear", Color{}, RGBA(200, 0, 0, 128), RGBA(100, 0, 0, 128)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(1, 1)
			fb.Clear(tc.dst)
			fb.BlendPixel(0, 0, tc.src)
			assert.Equal(t, tc.want, fb.GetPixel(0, 0))
		})
	}

	// Out of bounds is ignored.
	fb := NewFramebuffer(1, 1)
	fb.BlendPixel(5, 5, ColorRed)
	assert.Equal(t, Color{}, fb.GetPixel(0, 0))
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Clear(ColorRed)
	pixels := fb.Pixels

	fb.Resize(2, 2)
	assert.Equal(t, &pixels[0], &fb.Pixels[0], "same size keeps the buffer")

	fb.Resize(3, 5)
	assert.Len(t, fb.Pixels, 15)
	assert.Equal(t, Color{}, fb.GetPixel(2, 4))
}

func TestFramebufferSave(t *testing.T) {
	dir := t.TempDir()
	fb := NewFramebuffer(4, 3)
	fb.Clear(ColorSky)
	fb.SetPixel(1, 1, ColorRed)

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(dir, "shot.png")
		require.NoError(t, fb.Save(path))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		img, err := png.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, 4, img.Bounds().Dx())
		r, _, _, _ := img.At(1, 1).RGBA()
		assert.Equal(t, uint32(0xffff), r)
	})

	t.Run("webp", func(t *testing.T) {
		path := filepath.Join(dir, "shot.WEBP")
		require.NoError(t, fb.Save(path))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		img, err := nativewebp.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, 3, img.Bounds().Dy())
	})

	t.Run("unsupported", func(t *testing.T) {
		err := fb.Save(filepath.Join(dir, "shot.gif"))
		assert.ErrorContains(t, err, "unsupported extension")
	})
}

func TestDrawLine(t *testing.T) {
	fb := NewFramebuffer(5, 5)
	fb.DrawLine(0, 0, 4, 4, ColorWhite)
	for i := range 5 {
		assert.Equal(t, ColorWhite, fb.GetPixel(i, i))
	}
	assert.Equal(t, Color{}, fb.GetPixel(4, 0))
}
