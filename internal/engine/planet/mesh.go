package planet

import (
	gomath "math"

	"github.com/soycan-sim/space-game/pkg/math"
)

// Mesh is the flat buffer payload handed to the renderer: three position and
// three normal floats plus two texture floats per vertex, and two
// counter-clockwise triangles per quad.
type Mesh struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
	Bounds    Bounds
}

// VertexCount returns the number of vertices in the buffers.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// buildMesh concatenates patches into one payload: each arena's positions
// and texture coordinates are copied through, quads become triangle pairs
// split along the i,j,k / k,l,i diagonal with indices rebased past the
// previous patches, and normals are derived from the final triangle list.
func buildMesh(builders []*PatchBuilder) *Mesh {
	m := &Mesh{Bounds: emptyBounds()}
	for _, b := range builders {
		p := b.Patch()
		base := uint32(len(m.Positions) / 3)
		for i := range p.Vertices {
			pos := p.Vertices[i].Position
			m.Positions = append(m.Positions, pos.X, pos.Y, pos.Z)
			m.UVs = append(m.UVs, p.TexCoords[i].X, p.TexCoords[i].Y)
			m.Bounds.Extend(pos)
		}
		for _, q := range p.Quads {
			i := base + uint32(q[0])
			j := base + uint32(q[1])
			k := base + uint32(q[2])
			l := base + uint32(q[3])
			m.Indices = append(m.Indices, i, j, k, k, l, i)
		}
	}
	m.Normals = computeNormals(m.Positions, m.Indices)
	return m
}

// computeNormals accumulates unit face normals on each referenced vertex and
// renormalizes. Unreferenced or degenerate vertices fall back to their
// radial direction.
func computeNormals(positions []float32, indices []uint32) []float32 {
	normals := make([]float32, len(positions))
	for t := 0; t+2 < len(indices); t += 3 {
		i0 := indices[t] * 3
		i1 := indices[t+1] * 3
		i2 := indices[t+2] * 3
		a := math.Vec3{X: positions[i0], Y: positions[i0+1], Z: positions[i0+2]}
		b := math.Vec3{X: positions[i1], Y: positions[i1+1], Z: positions[i1+2]}
		c := math.Vec3{X: positions[i2], Y: positions[i2+1], Z: positions[i2+2]}

		n := b.Sub(a).Cross(c.Sub(a))
		if n.Length() < 1e-9 {
			continue
		}
		n = n.Normalize()
		for _, vi := range [3]uint32{i0, i1, i2} {
			normals[vi] += n.X
			normals[vi+1] += n.Y
			normals[vi+2] += n.Z
		}
	}
	for vi := 0; vi+2 < len(normals); vi += 3 {
		n := math.Vec3{X: normals[vi], Y: normals[vi+1], Z: normals[vi+2]}
		if n.Length() < 1e-5 {
			n = math.Vec3{X: positions[vi], Y: positions[vi+1], Z: positions[vi+2]}.Normalize()
		} else {
			n = n.Normalize()
		}
		normals[vi] = n.X
		normals[vi+1] = n.Y
		normals[vi+2] = n.Z
	}
	return normals
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

func emptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}

// DistanceTo returns the minimum distance from p to the box, zero when p is
// inside.
func (b Bounds) DistanceTo(p math.Vec3) float32 {
	dx := axisGap(p.X, b.Min.X, b.Max.X)
	dy := axisGap(p.Y, b.Min.Y, b.Max.Y)
	dz := axisGap(p.Z, b.Min.Z, b.Max.Z)
	return float32(gomath.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}

func axisGap(v, lo, hi float32) float32 {
	if v < lo {
		return lo - v
	}
	if v > hi {
		return v - hi
	}
	return 0
}
