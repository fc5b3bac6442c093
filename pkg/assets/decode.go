// Package assets loads texture images into render textures: decoding by
// file type, asynchronous loading behind placeholder units, and hot reload.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/qmuntal/gltf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"github.com/taigrr/diorama/pkg/render"
)

var (
	// ErrUnsupportedFormat is returned for file extensions with no decoder.
	ErrUnsupportedFormat = errors.New("assets: unsupported image format")
	// ErrNoImage is returned for a glTF document without a usable image.
	ErrNoImage = errors.New("assets: no embedded image")
)

// Supported lists the file extensions Decode understands.
var Supported = []string{".png", ".jpg", ".jpeg", ".bmp", ".webp", ".tga", ".gltf", ".glb"}

// LoadTexture decodes the image at path into a texture no larger than
// maxSize on either side. A maxSize of 0 keeps the original size.
func LoadTexture(path string, maxSize int) (*render.Texture, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return render.TextureFromImage(Fit(img, maxSize)), nil
}

// DecodeFile decodes the image at path, picking the decoder from the
// extension.
func DecodeFile(path string) (image.Image, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return firstImage(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f, ext)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Decode reads one image from r in the format named by ext.
func Decode(r io.Reader, ext string) (image.Image, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	case ".webp":
		return webp.Decode(r)
	case ".tga":
		return tga.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// firstImage returns the first image of a glTF or GLB document that decodes,
// whether it lives in a buffer view, a data URI or a file next to the
// document.
func firstImage(path string) (image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	for _, img := range doc.Images {
		data, err := imageData(doc, img, filepath.Dir(path))
		if err != nil || len(data) == 0 {
			continue
		}
		decoded, err := Decode(bytes.NewReader(data), sniff(data))
		if err != nil {
			continue
		}
		return decoded, nil
	}
	return nil, fmt.Errorf("%w in %s", ErrNoImage, path)
}

func imageData(doc *gltf.Document, img *gltf.Image, dir string) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		if *img.BufferView >= len(doc.BufferViews) {
			return nil, fmt.Errorf("buffer view %d out of range", *img.BufferView)
		}
		bv := doc.BufferViews[*img.BufferView]
		if bv.Buffer >= len(doc.Buffers) {
			return nil, fmt.Errorf("buffer %d out of range", bv.Buffer)
		}
		buf := doc.Buffers[bv.Buffer]
		end := bv.ByteOffset + bv.ByteLength
		if buf.Data == nil || end > len(buf.Data) {
			return nil, fmt.Errorf("buffer %d truncated", bv.Buffer)
		}
		return buf.Data[bv.ByteOffset:end], nil
	case img.IsEmbeddedResource():
		return img.MarshalData()
	case img.URI != "":
		return os.ReadFile(filepath.Join(dir, img.URI))
	}
	return nil, nil
}

// Fit scales img down so neither side exceeds maxSize, keeping the aspect
// ratio. Images already small enough are returned unchanged.
func Fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	scale := float64(maxSize) / float64(max(w, h))
	dw := max(1, int(float64(w)*scale))
	dh := max(1, int(float64(h)*scale))

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// sniff maps the signature of an embedded image to the extension Decode
// expects.
func sniff(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return ".png"
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		return ".jpg"
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return ".webp"
	case bytes.HasPrefix(data, []byte("BM")):
		return ".bmp"
	}
	return ""
}
