package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/soycan-sim/space-game/internal/engine/scene/shaders"
	"github.com/soycan-sim/space-game/internal/engine/shader"
	"github.com/soycan-sim/space-game/pkg/math"
)

// LineRenderer draws unindexed line lists with a flat color, used for debug
// overlays such as mesh bounds.
type LineRenderer struct {
	program     uint32
	locViewProj int32
	locColor    int32

	vao   uint32
	vbo   uint32
	count int32
}

// NewLineRenderer creates a new line renderer.
func NewLineRenderer() (*LineRenderer, error) {
	lr := &LineRenderer{}

	program, err := shader.CompileProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	lr.program = program

	lr.locViewProj = shader.GetUniform(program, "uViewProj")
	lr.locColor = shader.GetUniform(program, "uColor")

	return lr, nil
}

// SetLines replaces the buffered line list. verts holds endpoint pairs,
// three floats each.
func (lr *LineRenderer) SetLines(verts []float32) {
	lr.count = int32(len(verts) / 3)
	if lr.count == 0 {
		return
	}

	if lr.vao == 0 {
		gl.GenVertexArrays(1, &lr.vao)
		gl.GenBuffers(1, &lr.vbo)
	}

	gl.BindVertexArray(lr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

// Render draws the buffered lines.
func (lr *LineRenderer) Render(viewProj math.Mat4, color [3]float32) {
	if lr.count == 0 {
		return
	}

	gl.UseProgram(lr.program)
	gl.UniformMatrix4fv(lr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(lr.locColor, color[0], color[1], color[2])

	gl.BindVertexArray(lr.vao)
	gl.DrawArrays(gl.LINES, 0, lr.count)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (lr *LineRenderer) Destroy() {
	if lr.vao != 0 {
		gl.DeleteVertexArrays(1, &lr.vao)
		lr.vao = 0
	}
	if lr.vbo != 0 {
		gl.DeleteBuffers(1, &lr.vbo)
		lr.vbo = 0
	}
	if lr.program != 0 {
		gl.DeleteProgram(lr.program)
		lr.program = 0
	}
	lr.count = 0
}
