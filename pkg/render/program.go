package render

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/taigrr/diorama/pkg/math3d"
	"github.com/taigrr/diorama/pkg/shader"
)

// MaxTextureUnits is the number of texture units the program samples from.
const MaxTextureUnits = 3

// referenceCanvas is the canvas height, in pixels, point sizes are given for.
const referenceCanvas = 400

// Lighting constants of the fragment stage.
const (
	ambientStrength  = 0.2
	specularStrength = 0.5
	shininess        = 32
)

// TextureSource resolves a texture unit to its current texture. It may
// return nil for an empty unit.
type TextureSource interface {
	Texture(unit int) *Texture
}

// Stats counts the work of the current frame.
type Stats struct {
	DrawCalls int
	Triangles int
	Points    int
}

// attribute is the source of one vertex attribute: either an array bound
// with VertexAttribPointer or a constant.
type attribute struct {
	data   []float32
	size   int
	stride int
	offset int
	value  mgl32.Vec4
	array  bool
}

func (a *attribute) fetch(i int) mgl32.Vec4 {
	if !a.array {
		return a.value
	}
	stride := a.stride
	if stride == 0 {
		stride = a.size
	}
	base := a.offset + i*stride
	out := mgl32.Vec4{0, 0, 0, 1}
	for k := 0; k < a.size && k < 4; k++ {
		if base+k < len(a.data) {
			out[k] = a.data[base+k]
		}
	}
	return out
}

// uniforms is the state a draw call reads.
type uniforms struct {
	model       mgl32.Mat4
	view        mgl32.Mat4
	proj        mgl32.Mat4
	texIndex    int
	texWeight   float32
	baseColor   mgl32.Vec4
	lightPos    mgl32.Vec3
	lightColor  mgl32.Vec3
	useLighting bool
	showNormals bool
	pointSize   float32
}

// varying is a vertex after the vertex stage.
type varying struct {
	clip   mgl32.Vec4
	world  mgl32.Vec3
	normal mgl32.Vec3
	uv     mgl32.Vec2
}

func lerpVarying(a, b varying, t float32) varying {
	return varying{
		clip:   a.clip.Add(b.clip.Sub(a.clip).Mul(t)),
		world:  a.world.Add(b.world.Sub(a.world).Mul(t)),
		normal: a.normal.Add(b.normal.Sub(a.normal).Mul(t)),
		uv:     a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
	}
}

// Program is a software graphics program. It implements shader.Backend:
// draw calls run a vertex stage (model, view, projection), clip against the
// near plane, and rasterize with a fragment stage that blends texture and
// base color and applies ambient, diffuse and specular lighting.
type Program struct {
	rast     *Rasterizer
	textures TextureSource

	attribs [shader.Normal + 1]attribute
	u       uniforms

	viewProj mgl32.Mat4
	// normalMat follows the model matrix uniform.
	normalMat mgl32.Mat3

	Stats Stats
}

// NewProgram creates a program drawing into fb. textures may be nil.
func NewProgram(fb *Framebuffer, textures TextureSource) *Program {
	p := &Program{
		rast:     NewRasterizer(fb),
		textures: textures,
	}
	p.u.model = mgl32.Ident4()
	p.normalMat = mgl32.Ident3()
	p.u.view = mgl32.Ident4()
	p.u.proj = mgl32.Ident4()
	p.u.texIndex = shader.NoTexture
	p.u.baseColor = mgl32.Vec4{1, 1, 1, 1}
	p.u.lightColor = mgl32.Vec3{1, 1, 1}
	p.u.pointSize = 1
	p.attribs[shader.Position].value = mgl32.Vec4{0, 0, 0, 1}
	p.attribs[shader.UV].value = mgl32.Vec4{0, 0, 0, 1}
	p.attribs[shader.Normal].value = mgl32.Vec4{0, 0, 1, 0}
	return p
}

// Rasterizer exposes the pipeline settings (viewport, depth test, blend).
func (p *Program) Rasterizer() *Rasterizer {
	return p.rast
}

// Framebuffer returns the render target.
func (p *Program) Framebuffer() *Framebuffer {
	return p.rast.fb
}

// SetTextures replaces the texture source.
func (p *Program) SetTextures(t TextureSource) {
	p.textures = t
}

// Resize resizes the target and resets the viewport.
func (p *Program) Resize(width, height int) {
	p.rast.fb.Resize(width, height)
	p.rast.Resize()
}

// SetViewport restricts drawing to rect.
func (p *Program) SetViewport(rect image.Rectangle) {
	p.rast.Viewport = rect
}

// Clear fills the target with bg and resets depth and stats.
func (p *Program) Clear(bg Color) {
	p.rast.fb.Clear(bg)
	p.rast.ClearDepth()
	p.Stats = Stats{}
}

// AttribLocation implements shader.Backend.
func (p *Program) AttribLocation(name string) shader.Location {
	for _, s := range shader.Slots() {
		if s.IsAttribute() && s.String() == name {
			return shader.Location(s)
		}
	}
	return shader.NoLocation
}

// UniformLocation implements shader.Backend.
func (p *Program) UniformLocation(name string) shader.Location {
	for _, s := range shader.Slots() {
		if !s.IsAttribute() && s.String() == name {
			return shader.Location(s)
		}
	}
	return shader.NoLocation
}

func (p *Program) attrib(loc shader.Location) *attribute {
	if loc < 0 || int(loc) >= len(p.attribs) {
		return nil
	}
	return &p.attribs[loc]
}

// VertexAttribPointer implements shader.Backend. The slice is referenced,
// not copied.
func (p *Program) VertexAttribPointer(loc shader.Location, data []float32, size, stride, offset int) {
	if a := p.attrib(loc); a != nil {
		a.data, a.size, a.stride, a.offset = data, size, stride, offset
		a.array = true
	}
}

// VertexAttrib implements shader.Backend.
func (p *Program) VertexAttrib(loc shader.Location, v mgl32.Vec4) {
	if a := p.attrib(loc); a != nil {
		a.value = v
		a.array = false
		a.data = nil
	}
}

// UniformInt implements shader.Backend.
func (p *Program) UniformInt(loc shader.Location, v int) {
	switch shader.Slot(loc) {
	case shader.TexIndex:
		p.u.texIndex = v
	case shader.UseLighting:
		p.u.useLighting = v != 0
	case shader.ShowNormals:
		p.u.showNormals = v != 0
	}
}

// UniformFloat implements shader.Backend.
func (p *Program) UniformFloat(loc shader.Location, v float32) {
	switch shader.Slot(loc) {
	case shader.TexWeight:
		p.u.texWeight = v
	case shader.PointSize:
		p.u.pointSize = v
	}
}

// UniformVec3 implements shader.Backend.
func (p *Program) UniformVec3(loc shader.Location, v mgl32.Vec3) {
	switch shader.Slot(loc) {
	case shader.LightPos:
		p.u.lightPos = v
	case shader.LightColor:
		p.u.lightColor = v
	}
}

// UniformVec4 implements shader.Backend.
func (p *Program) UniformVec4(loc shader.Location, v mgl32.Vec4) {
	if shader.Slot(loc) == shader.BaseColor {
		p.u.baseColor = v
	}
}

// UniformMat4 implements shader.Backend.
func (p *Program) UniformMat4(loc shader.Location, m mgl32.Mat4) {
	switch shader.Slot(loc) {
	case shader.ModelMatrix:
		p.u.model = m
		p.normalMat = math3d.FromGL(m).NormalMatrix().GL().Mat3()
	case shader.ViewMatrix:
		p.u.view = m
	case shader.ProjMatrix:
		p.u.proj = m
	}
}

func (p *Program) begin() {
	p.viewProj = p.u.proj.Mul4(p.u.view)
	p.Stats.DrawCalls++
}

// DrawArrays implements shader.Backend.
func (p *Program) DrawArrays(mode shader.Mode, first, count int) {
	p.begin()
	switch mode {
	case shader.Points:
		for i := first; i < first+count; i++ {
			p.point(p.vertex(i))
		}
	case shader.Triangles:
		for i := first; i+2 < first+count; i += 3 {
			p.triangle([3]varying{p.vertex(i), p.vertex(i + 1), p.vertex(i + 2)})
		}
	}
}

// DrawElements implements shader.Backend.
func (p *Program) DrawElements(mode shader.Mode, indices []uint16) {
	p.begin()
	switch mode {
	case shader.Points:
		for _, i := range indices {
			p.point(p.vertex(int(i)))
		}
	case shader.Triangles:
		for i := 0; i+2 < len(indices); i += 3 {
			p.triangle([3]varying{
				p.vertex(int(indices[i])),
				p.vertex(int(indices[i+1])),
				p.vertex(int(indices[i+2])),
			})
		}
	}
}

// vertex runs the vertex stage for vertex i.
func (p *Program) vertex(i int) varying {
	pos := p.attribs[shader.Position].fetch(i)
	world := p.u.model.Mul4x1(pos)
	uv := p.attribs[shader.UV].fetch(i)
	return varying{
		clip:   p.viewProj.Mul4x1(world),
		world:  world.Vec3(),
		normal: p.normalMat.Mul3x1(p.attribs[shader.Normal].fetch(i).Vec3()),
		uv:     mgl32.Vec2{uv[0], uv[1]},
	}
}

// clipNear clips a polygon against the near plane z >= -w.
func clipNear(in []varying, out []varying) []varying {
	out = out[:0]
	for i := range in {
		a, b := in[i], in[(i+1)%len(in)]
		da, db := a.clip[2]+a.clip[3], b.clip[2]+b.clip[3]
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerpVarying(a, b, da/(da-db)))
		}
	}
	return out
}

func (p *Program) triangle(tri [3]varying) {
	var buf [4]varying
	poly := clipNear(tri[:], buf[:0])
	for k := 1; k+1 < len(poly); k++ {
		p.rasterize(poly[0], poly[k], poly[k+1])
	}
}

func (p *Program) project(v varying) (screenVertex, bool) {
	if v.clip[3] <= 0 {
		return screenVertex{}, false
	}
	invW := 1 / float64(v.clip[3])
	x, y := p.rast.toScreen(float64(v.clip[0])*invW, float64(v.clip[1])*invW)
	return screenVertex{X: x, Y: y, Z: float64(v.clip[2]) * invW, InvW: invW}, true
}

func (p *Program) rasterize(a, b, c varying) {
	var sv [3]screenVertex
	for i, v := range [3]varying{a, b, c} {
		s, ok := p.project(v)
		if !ok {
			return
		}
		sv[i] = s
	}
	p.Stats.Triangles++
	p.rast.DrawTriangle(sv, func(w [3]float64) (Color, bool) {
		w0, w1, w2 := float32(w[0]), float32(w[1]), float32(w[2])
		world := a.world.Mul(w0).Add(b.world.Mul(w1)).Add(c.world.Mul(w2))
		normal := a.normal.Mul(w0).Add(b.normal.Mul(w1)).Add(c.normal.Mul(w2))
		uv := a.uv.Mul(w0).Add(b.uv.Mul(w1)).Add(c.uv.Mul(w2))
		return p.fragment(world, normal, uv)
	})
}

// point draws a square point sprite of pointSize reference pixels.
func (p *Program) point(v varying) {
	if v.clip[2] < -v.clip[3] {
		return
	}
	s, ok := p.project(v)
	if !ok {
		return
	}
	p.Stats.Points++
	size := float64(p.u.pointSize) * float64(p.rast.Viewport.Dy()) / referenceCanvas
	c, ok := p.fragment(v.world, v.normal, v.uv)
	if !ok {
		return
	}
	p.rast.DrawSquare(s.X, s.Y, s.Z, size, c)
}

func (p *Program) texture(unit int) *Texture {
	if p.textures == nil || unit < 0 || unit >= MaxTextureUnits {
		return nil
	}
	return p.textures.Texture(unit)
}

// fragment shades one fragment. Fragments with zero alpha are discarded.
func (p *Program) fragment(world, normal mgl32.Vec3, uv mgl32.Vec2) (Color, bool) {
	texColor := mgl32.Vec4{1, 1, 1, 1}
	if t := p.texture(p.u.texIndex); t != nil {
		texColor = t.SampleVec(uv[0], uv[1])
	}
	w := p.u.texWeight
	base := p.u.baseColor.Mul(1 - w).Add(texColor.Mul(w))

	var out mgl32.Vec4
	switch {
	case p.u.showNormals:
		n := normalize(normal)
		out = mgl32.Vec4{n[0]*0.5 + 0.5, n[1]*0.5 + 0.5, n[2]*0.5 + 0.5, 1}
	case !p.u.useLighting:
		out = base
	default:
		out = p.u.light(world, normal, base)
	}
	if out[3] <= 0 {
		return Color{}, false
	}
	return toColor(out), true
}

// light applies ambient, diffuse and specular terms for the point light.
func (u *uniforms) light(world, normal mgl32.Vec3, base mgl32.Vec4) mgl32.Vec4 {
	n := normalize(normal)
	l := normalize(u.lightPos.Sub(world))
	v := l.Mul(-1)
	r := reflect(l.Mul(-1), n)

	rgb := base.Vec3()
	ambient := rgb.Mul(ambientStrength)
	diffuse := rgb.Mul(max(n.Dot(l), 0))
	spec := math32.Pow(max(r.Dot(v), 0), shininess)
	specular := u.lightColor.Mul(specularStrength * spec)

	lit := diffuse.Add(specular)
	final := ambient.Add(mgl32.Vec3{
		lit[0] * u.lightColor[0],
		lit[1] * u.lightColor[1],
		lit[2] * u.lightColor[2],
	})
	return final.Vec4(base[3])
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// reflect mirrors the incident vector i about the unit normal n.
func reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

func toColor(c mgl32.Vec4) Color {
	return Color{
		R: unit8(c[0]),
		G: unit8(c[1]),
		B: unit8(c[2]),
		A: unit8(c[3]),
	}
}

// unit8 maps [0,1] to [0,255], clamping.
func unit8(f float32) uint8 {
	switch {
	case f <= 0 || math32.IsNaN(f):
		return 0
	case f >= 1:
		return 255
	default:
		return uint8(f*255 + 0.5)
	}
}
