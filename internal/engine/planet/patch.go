package planet

import "github.com/soycan-sim/space-game/pkg/math"

// Quad indexes four patch vertices, wound counter-clockwise seen from
// outside the sphere.
type Quad [4]int

// Patch owns one cube face's share of the sphere: a vertex arena with
// parallel cube-space block coordinates (the noise input, which stays on the
// flat cube face) and texture coordinates, plus the quads spanning them. The
// three sequences always have the same length and quads only ever hold valid
// indices into them.
type Patch struct {
	Vertices    []Vertex
	BlockCoords []math.Vec3
	TexCoords   []math.Vec2
	Quads       []Quad
}

// add appends a vertex with its block and texture coordinates and returns
// its arena index.
func (p *Patch) add(v Vertex, block math.Vec3, tex math.Vec2) int {
	p.Vertices = append(p.Vertices, v)
	p.BlockCoords = append(p.BlockCoords, block)
	p.TexCoords = append(p.TexCoords, tex)
	return len(p.Vertices) - 1
}
