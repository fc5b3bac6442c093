package render

import (
	"image"
	"math"
)

// screenVertex is a vertex after the perspective divide and viewport
// transform.
type screenVertex struct {
	X, Y float64 // Screen coordinates
	Z    float64 // NDC depth, smaller is closer
	InvW float64 // 1/w for perspective-correct interpolation
}

// FragmentFunc shades one covered pixel. w holds the perspective-correct
// barycentric weights of the three vertices. Returning false discards the
// fragment.
type FragmentFunc func(w [3]float64) (Color, bool)

// Rasterizer scan-converts screen-space triangles and squares into a
// framebuffer with an optional depth test and alpha blending.
type Rasterizer struct {
	fb      *Framebuffer
	zbuffer []float64 // Depth buffer (1D array, row-major)

	// Viewport is the framebuffer region NDC [-1,1] maps onto.
	Viewport  image.Rectangle
	DepthTest bool
	Blend     bool

	// Fragments counts pixels written since the last ClearDepth.
	Fragments int
}

// NewRasterizer creates a rasterizer drawing into fb with the viewport
// covering the whole framebuffer.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{fb: fb, DepthTest: true}
	r.Resize()
	return r
}

// Resize reallocates the depth buffer to match the framebuffer and resets
// the viewport.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		r.Viewport = image.Rectangle{}
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
	r.Viewport = image.Rect(0, 0, r.fb.Width, r.fb.Height)
	r.ClearDepth()
}

// Framebuffer returns the target.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth clears the Z-buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	r.Fragments = 0
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// Depth returns the depth stored at (x, y).
func (r *Rasterizer) Depth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

// toScreen maps normalized device coordinates into the viewport.
// Screen Y grows downwards.
func (r *Rasterizer) toScreen(ndcX, ndcY float64) (x, y float64) {
	vp := r.Viewport
	x = float64(vp.Min.X) + (ndcX+1)*0.5*float64(vp.Dx())
	y = float64(vp.Min.Y) + (1-ndcY)*0.5*float64(vp.Dy())
	return x, y
}

// bounds clips a floating point box to the viewport and framebuffer.
func (r *Rasterizer) bounds(minX, minY, maxX, maxY float64) (x0, y0, x1, y1 int) {
	clip := r.Viewport.Intersect(image.Rect(0, 0, r.Width(), r.Height()))
	x0 = max(clip.Min.X, int(math.Floor(minX)))
	y0 = max(clip.Min.Y, int(math.Floor(minY)))
	x1 = min(clip.Max.X-1, int(math.Ceil(maxX)))
	y1 = min(clip.Max.Y-1, int(math.Ceil(maxY)))
	return x0, y0, x1, y1
}

// write applies the depth test and stores c. It reports whether the pixel
// was written.
func (r *Rasterizer) write(x, y int, z float64, c Color) bool {
	i := y*r.fb.Width + x
	if r.DepthTest {
		if z >= r.zbuffer[i] {
			return false
		}
		r.zbuffer[i] = z
	}
	if r.Blend {
		r.fb.BlendPixel(x, y, c)
	} else {
		r.fb.Pixels[i] = c
	}
	r.Fragments++
	return true
}

// edgeCoeffs returns A, B, C for the edge function of the line through
// (x0, y0) and (x1, y1): edge(x,y) = A*x + B*y + C.
// Positive = left of edge, negative = right of edge, zero = on edge.
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// DrawTriangle rasterizes a triangle of either winding. shade is called for
// every pixel whose centre is covered and that passes the early depth test.
func (r *Rasterizer) DrawTriangle(sv [3]screenVertex, shade FragmentFunc) {
	if r.fb == nil {
		return
	}

	// Edge i is opposite vertex i, so its value at a point is the
	// unnormalized barycentric weight of vertex i.
	a0, b0, c0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	a1, b1, c1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	a2, b2, c2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)

	area := a0*sv[0].X + b0*sv[0].Y + c0
	if area == 0 || math.IsNaN(area) {
		return
	}
	invArea := 1 / area

	minX, minY, maxX, maxY := r.bounds(
		min(sv[0].X, sv[1].X, sv[2].X), min(sv[0].Y, sv[1].Y, sv[2].Y),
		max(sv[0].X, sv[1].X, sv[2].X), max(sv[0].Y, sv[1].Y, sv[2].Y),
	)

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			l0 := (a0*px + b0*py + c0) * invArea
			l1 := (a1*px + b1*py + c1) * invArea
			l2 := (a2*px + b2*py + c2) * invArea
			if l0 < 0 || l1 < 0 || l2 < 0 {
				continue
			}

			// NDC depth is affine in screen space.
			z := l0*sv[0].Z + l1*sv[1].Z + l2*sv[2].Z
			if r.DepthTest && z >= r.zbuffer[y*r.fb.Width+x] {
				continue
			}

			// Perspective-correct weights: interpolate l/w, then renormalize.
			w0, w1, w2 := l0*sv[0].InvW, l1*sv[1].InvW, l2*sv[2].InvW
			sum := w0 + w1 + w2
			if sum == 0 {
				continue
			}
			c, ok := shade([3]float64{w0 / sum, w1 / sum, w2 / sum})
			if !ok {
				continue
			}
			r.write(x, y, z, c)
		}
	}
}

// DrawSquare fills an axis-aligned square of side size centred on (cx, cy).
// A square smaller than a pixel still covers the pixel containing its centre.
func (r *Rasterizer) DrawSquare(cx, cy, z, size float64, c Color) {
	if r.fb == nil {
		return
	}
	half := size / 2
	minX, minY, maxX, maxY := r.bounds(cx-half, cy-half, cx+half, cy+half)
	drawn := false
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		if py < cy-half || py > cy+half {
			continue
		}
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			if px < cx-half || px > cx+half {
				continue
			}
			r.write(x, y, z, c)
			drawn = true
		}
	}
	if !drawn {
		x, y := int(math.Floor(cx)), int(math.Floor(cy))
		if image.Pt(x, y).In(r.Viewport) && x < r.Width() && y < r.Height() && x >= 0 && y >= 0 {
			r.write(x, y, z, c)
		}
	}
}
