// Package glrender draws a ui command stream with OpenGL 3.3 core. Rects,
// glyphs and icons are batched into one dynamic mesh; clip commands become
// scissor state and force a flush.
package glrender

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/thicketui/thicket/engine/colors"
	"github.com/thicketui/thicket/engine/geom"
	"github.com/thicketui/thicket/engine/text"
	"github.com/thicketui/thicket/engine/ui"
)

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const (
	vStride      = 9
	vertsPerQuad = 4
	indsPerQuad  = 6
	maxTexSlots  = 16
)

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls int
	QuadCount int
}

type Renderer struct {
	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32
	white   uint32

	bank    *text.Bank
	atlases map[ui.Font]uint32

	verts    []float32
	inds     []uint32
	quads    int
	maxQuads int

	texArr [maxTexSlots]uint32
	texCnt int

	fbW, fbH int
	stats    Statistics
}

// New compiles the pipeline and allocates the dynamic batch mesh. A current
// GL context is required. bank supplies the glyph atlases for text drawing.
func New(bank *text.Bank, maxQuads int) (*Renderer, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	r := &Renderer{
		bank:     bank,
		atlases:  make(map[ui.Font]uint32),
		maxQuads: maxQuads,
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:     make([]uint32, 0, maxQuads*indsPerQuad),
	}

	var err error
	r.program, err = makeProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, maxQuads*vertsPerQuad*vStride*4, nil, gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, maxQuads*indsPerQuad*4, nil, gl.DYNAMIC_DRAW)

	const stride = vStride * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(6*4)))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(8*4)))

	gl.BindVertexArray(0)

	r.white = makeTexture(1, 1, []byte{255, 255, 255, 255})

	gl.UseProgram(r.program)
	for i := 0; i < maxTexSlots; i++ {
		name := fmt.Sprintf("uTex[%d]\x00", i)
		gl.Uniform1i(gl.GetUniformLocation(r.program, gl.Str(name)), int32(i))
	}
	gl.UseProgram(0)
	return r, nil
}

// Shutdown releases all GL objects.
func (r *Renderer) Shutdown() {
	for _, tex := range r.atlases {
		gl.DeleteTextures(1, &tex)
	}
	if r.white != 0 {
		gl.DeleteTextures(1, &r.white)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Clear fills the framebuffer with a solid color.
func (r *Renderer) Clear(col colors.Color) {
	cr, cg, cb, ca := col.Floats()
	gl.ClearColor(cr, cg, cb, ca)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Render draws ctx's finished frame into a framebuffer of the given pixel
// size.
func (r *Renderer) Render(ctx *ui.Context, fbW, fbH int) {
	r.fbW, r.fbH = fbW, fbH
	r.stats = Statistics{}
	r.resetBatch()

	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(0, 0, int32(fbW), int32(fbH))

	it := ctx.Commands()
	for cmd, ok := it.Next(); ok; cmd, ok = it.Next() {
		switch cmd.Kind {
		case ui.CommandClip:
			r.flush()
			r.scissor(cmd.Rect)
		case ui.CommandRect:
			r.pushQuad(cmd.Rect, cmd.Color, 0, 0, 0, 1, 1)
		case ui.CommandText:
			r.drawText(cmd.Font, cmd.Text, cmd.Pos, cmd.Color)
		case ui.CommandIcon:
			r.drawIcon(0, cmd.Icon, cmd.Rect, cmd.Color)
		}
	}
	r.flush()
	gl.Disable(gl.SCISSOR_TEST)
}

// Stats returns the snapshot from the last Render.
func (r *Renderer) Stats() Statistics { return r.stats }

// scissor converts a top-left-origin ui rect into GL's bottom-left origin.
func (r *Renderer) scissor(rect geom.Rect) {
	w, h := max(rect.W, 0), max(rect.H, 0)
	gl.Scissor(int32(rect.X), int32(r.fbH-(rect.Y+h)), int32(w), int32(h))
}

func (r *Renderer) drawText(font ui.Font, s string, pos geom.Vec2, col colors.Color) {
	f := r.bank.Get(font)
	slot := r.texSlot(r.atlasTexture(font, f))
	atlasW := float32(f.Atlas.Rect.Dx())
	atlasH := float32(f.Atlas.Rect.Dy())

	x := pos.X
	baseline := pos.Y + f.Ascent
	for _, ru := range s {
		g, ok := f.Glyphs[ru]
		if !ok {
			g = f.Glyphs['?']
		}
		if g.W > 0 && g.H > 0 {
			dst := geom.R(x+g.BearingX, baseline-g.BearingY, g.W, g.H)
			u0 := float32(g.AX) / atlasW
			v0 := float32(g.AY) / atlasH
			u1 := float32(g.AX+g.W) / atlasW
			v1 := float32(g.AY+g.H) / atlasH
			r.pushQuad(dst, col, slot, u0, v0, u1, v1)
		}
		x += g.Advance
	}
}

var iconRunes = map[ui.IconID]rune{
	ui.IconClose:     'x',
	ui.IconCheck:     'x',
	ui.IconCollapsed: '+',
	ui.IconExpanded:  '-',
}

// drawIcon renders built-in icons as centered glyphs from the bank's first
// font.
func (r *Renderer) drawIcon(font ui.Font, icon ui.IconID, rect geom.Rect, col colors.Color) {
	ru, ok := iconRunes[icon]
	if !ok {
		return
	}
	f := r.bank.Get(font)
	w := f.MeasureWidth(string(ru))
	pos := geom.V(rect.X+(rect.W-w)/2, rect.Y+(rect.H-f.LineHeight)/2)
	r.drawText(font, string(ru), pos, col)
}

func (r *Renderer) atlasTexture(h ui.Font, f *text.Font) uint32 {
	if tex, ok := r.atlases[h]; ok {
		return tex
	}
	b := f.Atlas.Bounds()
	tex := makeTexture(b.Dx(), b.Dy(), f.Atlas.Pix)
	r.atlases[h] = tex
	return tex
}

func (r *Renderer) texSlot(t uint32) float32 {
	for i := 0; i < r.texCnt; i++ {
		if r.texArr[i] == t {
			return float32(i)
		}
	}
	if r.texCnt >= maxTexSlots {
		r.flush()
	}
	r.texArr[r.texCnt] = t
	r.texCnt++
	return float32(r.texCnt - 1)
}

func (r *Renderer) pushQuad(rect geom.Rect, col colors.Color, slot float32, u0, v0, u1, v1 float32) {
	if r.quads >= r.maxQuads {
		r.flush()
	}
	cr, cg, cb, ca := col.Floats()
	x0, y0 := float32(rect.X), float32(rect.Y)
	x1, y1 := float32(rect.X+rect.W), float32(rect.Y+rect.H)

	start := uint32(len(r.verts) / vStride)
	r.verts = append(r.verts,
		x0, y0, cr, cg, cb, ca, u0, v0, slot,
		x1, y0, cr, cg, cb, ca, u1, v0, slot,
		x0, y1, cr, cg, cb, ca, u0, v1, slot,
		x1, y1, cr, cg, cb, ca, u1, v1, slot,
	)
	r.inds = append(r.inds,
		start+0, start+2, start+1,
		start+1, start+2, start+3,
	)
	r.quads++
	r.stats.QuadCount++
}

func (r *Renderer) flush() {
	if r.quads == 0 {
		return
	}
	gl.UseProgram(r.program)
	gl.BindVertexArray(r.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.verts)*4, gl.Ptr(r.verts))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(r.inds)*4, gl.Ptr(r.inds))

	for i := 0; i < r.texCnt; i++ {
		gl.ActiveTexture(uint32(gl.TEXTURE0 + i))
		gl.BindTexture(gl.TEXTURE_2D, r.texArr[i])
	}

	vp := ortho(float32(r.fbW), float32(r.fbH))
	gl.UniformMatrix4fv(gl.GetUniformLocation(r.program, gl.Str("uVP\x00")), 1, false, &vp[0])

	gl.DrawElements(gl.TRIANGLES, int32(len(r.inds)), gl.UNSIGNED_INT, nil)
	r.stats.DrawCalls++

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	r.resetBatch()
}

func (r *Renderer) resetBatch() {
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	r.quads = 0
	for i := range r.texArr {
		r.texArr[i] = 0
	}
	r.texArr[0] = r.white
	r.texCnt = 1
}

// ortho maps pixel space (origin top-left, y down) onto clip space.
func ortho(w, h float32) [16]float32 {
	return [16]float32{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
}

func makeTexture(w, h int, pixels []byte) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// --- Shader utilities ---

const vertexSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec4 aColor;
layout(location=2) in vec2 aUV;
layout(location=3) in float aTexIndex;
uniform mat4 uVP;
out vec4 vColor;
out vec2 vUV;
flat out float vTexIndex;
void main() {
    vColor = aColor;
    vUV = aUV;
    vTexIndex = aTexIndex;
    gl_Position = uVP * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const fragmentSource = `
#version 330 core
in vec4 vColor;
in vec2 vUV;
flat in float vTexIndex;
uniform sampler2D uTex[16];
out vec4 FragColor;
void main() {
    int i = int(vTexIndex + 0.5);
    FragColor = vColor * texture(uTex[i], vUV);
}
` + "\x00"

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
