package scene

import (
	"fmt"
	"image"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/soycan-sim/space-game/internal/engine/lighting"
	"github.com/soycan-sim/space-game/internal/engine/planet"
	"github.com/soycan-sim/space-game/internal/engine/scene/shaders"
	"github.com/soycan-sim/space-game/internal/engine/shader"
	"github.com/soycan-sim/space-game/pkg/math"
)

// surfaceTextureSize is the side length of baked planet color textures.
const surfaceTextureSize = 512

// PlanetRenderer draws planet surfaces with a single shared shader program.
type PlanetRenderer struct {
	// Shader
	program uint32

	// Uniform locations
	locModel         int32
	locViewProj      int32
	locTexture       int32
	locStarPos       int32
	locStarColor     int32
	locStarIntensity int32
	locAmbient       int32

	bodies []*Body
}

// NewPlanetRenderer creates a new planet renderer.
func NewPlanetRenderer() (*PlanetRenderer, error) {
	pr := &PlanetRenderer{}

	program, err := shader.CompileProgram(shaders.PlanetVertexShader, shaders.PlanetFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("planet shader: %w", err)
	}
	pr.program = program

	// Get uniform locations
	pr.locModel = shader.GetUniform(program, "uModel")
	pr.locViewProj = shader.GetUniform(program, "uViewProj")
	pr.locTexture = shader.GetUniform(program, "uTexture")
	pr.locStarPos = shader.GetUniform(program, "uStarPos")
	pr.locStarColor = shader.GetUniform(program, "uStarColor")
	pr.locStarIntensity = shader.GetUniform(program, "uStarIntensity")
	pr.locAmbient = shader.GetUniform(program, "uAmbient")

	return pr, nil
}

// Body is one planet's GPU residence: buffers, baked surface texture and the
// latest mesh delivery. It implements planet.MeshTarget, so rebuilt meshes
// land here and are uploaded on the GL thread during the next render.
type Body struct {
	planet *planet.Planet

	vao        uint32
	vbo        [3]uint32 // positions, normals, uvs
	ebo        uint32
	texture    uint32
	indexCount int32

	mu      sync.Mutex
	pending *planet.Mesh
}

// ApplyMesh implements planet.MeshTarget.
func (b *Body) ApplyMesh(m *planet.Mesh) {
	b.mu.Lock()
	b.pending = m
	b.mu.Unlock()
}

// AddBody registers a planet: bakes and uploads its surface texture and
// attaches the body as the planet's mesh target.
func (pr *PlanetRenderer) AddBody(p *planet.Planet) *Body {
	b := &Body{planet: p}
	b.texture = uploadSurfaceTexture(p.BakeSurfaceTexture(surfaceTextureSize))
	p.SetMeshTarget(b)
	pr.bodies = append(pr.bodies, b)
	return b
}

// Render draws every body lit by the star.
func (pr *PlanetRenderer) Render(viewProj math.Mat4, star lighting.Star) {
	gl.UseProgram(pr.program)

	// Set uniforms
	gl.UniformMatrix4fv(pr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(pr.locStarPos, star.Position[0], star.Position[1], star.Position[2])
	gl.Uniform3f(pr.locStarColor, star.Color[0], star.Color[1], star.Color[2])
	gl.Uniform1f(pr.locStarIntensity, star.Intensity)
	gl.Uniform1f(pr.locAmbient, star.Ambient)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(pr.locTexture, 0)

	for _, b := range pr.bodies {
		b.uploadPending()
		if b.indexCount == 0 {
			continue
		}

		pos := b.planet.Position()
		model := math.Translate(pos.X, pos.Y, pos.Z)
		gl.UniformMatrix4fv(pr.locModel, 1, false, &model[0])

		gl.BindTexture(gl.TEXTURE_2D, b.texture)
		gl.BindVertexArray(b.vao)
		gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)
}

// uploadPending moves the latest delivered mesh into GPU buffers. Buffer
// sizes change between rebuilds, so contents are re-specified wholesale.
func (b *Body) uploadPending() {
	b.mu.Lock()
	mesh := b.pending
	b.pending = nil
	b.mu.Unlock()

	if mesh == nil {
		return
	}
	if len(mesh.Positions) == 0 || len(mesh.Indices) == 0 {
		b.indexCount = 0
		return
	}

	if b.vao == 0 {
		gl.GenVertexArrays(1, &b.vao)
		gl.GenBuffers(3, &b.vbo[0])
		gl.GenBuffers(1, &b.ebo)
	}

	gl.BindVertexArray(b.vao)

	// Position (location 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo[0])
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Positions)*4, unsafe.Pointer(&mesh.Positions[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo[1])
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Normals)*4, unsafe.Pointer(&mesh.Normals[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(1)

	// TexCoord (location 2)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo[2])
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.UVs)*4, unsafe.Pointer(&mesh.UVs[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(2)

	// EBO
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.DYNAMIC_DRAW)

	gl.BindVertexArray(0)
	b.indexCount = int32(len(mesh.Indices))
}

// uploadSurfaceTexture uploads a baked RGBA image with mipmaps.
func uploadSurfaceTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	return texID
}

func (b *Body) destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo[0] != 0 {
		gl.DeleteBuffers(3, &b.vbo[0])
		b.vbo = [3]uint32{}
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
	if b.texture != 0 {
		gl.DeleteTextures(1, &b.texture)
		b.texture = 0
	}
	b.indexCount = 0
}

// Destroy releases all resources.
func (pr *PlanetRenderer) Destroy() {
	for _, b := range pr.bodies {
		b.destroy()
	}
	pr.bodies = nil
	if pr.program != 0 {
		gl.DeleteProgram(pr.program)
		pr.program = 0
	}
}
