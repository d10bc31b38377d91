package planet

import (
	"github.com/soycan-sim/space-game/internal/engine/lod"
	"github.com/soycan-sim/space-game/internal/engine/noise"
	"github.com/soycan-sim/space-game/pkg/math"
)

// Corners of the unit cube; faces below index into this table.
var cubeCorners = [8]math.Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: 1},
}

// The six cube faces, each wound counter-clockwise seen from outside.
var cubeFaces = [6][4]int{
	{4, 5, 6, 7}, // +Z
	{0, 3, 2, 1}, // -Z
	{1, 2, 6, 5}, // +X
	{0, 4, 7, 3}, // -X
	{3, 7, 6, 2}, // +Y
	{0, 1, 5, 4}, // -Y
}

// Texture corners per face, in face winding order.
var faceUVs = [4]math.Vec2{
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
}

// PatchBuilder refines and displaces a single cube-face patch.
type PatchBuilder struct {
	patch  Patch
	radius float32
	origin math.Vec3 // planet position, for world-space LOD distances
	height noise.Field
}

// NewPatchBuilder starts a builder on one root cube face (0-5). The root
// patch holds that face's four corners projected onto the sphere, all edge
// vertices at depth 0, spanned by a single quad.
func NewPatchBuilder(face int, radius float32, origin math.Vec3, height noise.Field) *PatchBuilder {
	b := &PatchBuilder{radius: radius, origin: origin, height: height}
	for k, ci := range cubeFaces[face] {
		corner := cubeCorners[ci]
		b.patch.add(Vertex{
			Position: corner.Normalize().Scale(radius),
			Edge:     true,
			ParentL:  NoParent,
			ParentR:  NoParent,
		}, corner, faceUVs[k])
	}
	b.patch.Quads = []Quad{{0, 1, 2, 3}}
	return b
}

// Patch exposes the arena being built.
func (b *PatchBuilder) Patch() *Patch {
	return &b.patch
}

// cut appends the spherical cut of vertices ai and bi together with midpoint
// block and texture coordinates, returning the new arena index.
func (b *PatchBuilder) cut(ai, bi int) int {
	p := &b.patch
	v := SphericalCut(p.Vertices[ai], p.Vertices[bi], ai, bi, b.radius)
	return p.add(v,
		p.BlockCoords[ai].Midpoint(p.BlockCoords[bi]),
		p.TexCoords[ai].Midpoint(p.TexCoords[bi]))
}

// centerCut is cut with the new vertex marked as a quad centerpoint.
func (b *PatchBuilder) centerCut(ai, bi int) int {
	p := &b.patch
	v := CenterCut(p.Vertices[ai], p.Vertices[bi], ai, bi, b.radius)
	return p.add(v,
		p.BlockCoords[ai].Midpoint(p.BlockCoords[bi]),
		p.TexCoords[ai].Midpoint(p.TexCoords[bi]))
}

// splitQuad cuts all four edges of q and its center, returning the four
// child quads in the parent's winding order.
func (b *PatchBuilder) splitQuad(q Quad) [4]Quad {
	ab := b.cut(q[0], q[1])
	bc := b.cut(q[1], q[2])
	cd := b.cut(q[2], q[3])
	da := b.cut(q[3], q[0])
	center := b.centerCut(ab, cd)
	return [4]Quad{
		{q[0], ab, center, da},
		{ab, q[1], bc, center},
		{center, bc, q[2], cd},
		{da, center, cd, q[3]},
	}
}

// Subdivide splits every quad in the patch once. n passes grow one root quad
// into 4^n quads.
func (b *PatchBuilder) Subdivide() {
	quads := b.patch.Quads
	next := make([]Quad, 0, len(quads)*4)
	for _, q := range quads {
		children := b.splitQuad(q)
		next = append(next, children[:]...)
	}
	b.patch.Quads = next
}

// SubdivideSurface splits only quads whose distance to target demands more
// refinement than currentDepth, reporting whether anything split. Quads
// beyond every tier keep their current refinement. Callers repeat with an
// increasing depth counter until nothing splits.
func (b *PatchBuilder) SubdivideSurface(target math.Vec3, tiers lod.Tiers, currentDepth int) bool {
	quads := b.patch.Quads
	next := make([]Quad, 0, len(quads))
	split := false
	for _, q := range quads {
		required, ok := tiers.DepthFor(b.quadBounds(q).DistanceTo(target))
		if !ok || currentDepth >= required {
			next = append(next, q)
			continue
		}
		children := b.splitQuad(q)
		next = append(next, children[:]...)
		split = true
	}
	b.patch.Quads = next
	return split
}

// quadBounds returns the world-space axis-aligned box around q's corners.
func (b *PatchBuilder) quadBounds(q Quad) Bounds {
	bounds := emptyBounds()
	for _, i := range q {
		bounds.Extend(b.patch.Vertices[i].Position.Add(b.origin))
	}
	return bounds
}

// Displace moves every vertex radially onto the height field surface.
func (b *PatchBuilder) Displace() {
	b.displace(nil, nil)
}

// DisplaceAdaptive is Displace with crack avoidance: a non-centerpoint
// vertex refined deeper than the tier at its own distance allows takes the
// average of its parents' radial heights instead of sampled noise, landing
// on the surface the coarser refinement implies.
func (b *PatchBuilder) DisplaceAdaptive(target math.Vec3, tiers lod.Tiers) {
	b.displace(&target, tiers)
}

// displace walks the arena in order. Cuts always append after their parents,
// so a blending vertex reads parent positions that are already displaced.
func (b *PatchBuilder) displace(target *math.Vec3, tiers lod.Tiers) {
	for i := range b.patch.Vertices {
		h := b.heightAt(i, target, tiers)
		v := &b.patch.Vertices[i]
		v.Position = v.Position.Normalize().Scale(b.radius + h)
	}
}

// heightAt computes the terrain height for vertex i. target is nil for
// uniform builds.
func (b *PatchBuilder) heightAt(i int, target *math.Vec3, tiers lod.Tiers) float32 {
	v := b.patch.Vertices[i]
	if target != nil && !v.Centerpoint && v.ParentL != NoParent && v.ParentR != NoParent {
		dist := v.Position.Add(b.origin).Distance(*target)
		if limit, ok := tiers.DepthFor(dist); ok && v.Depth > limit {
			l := b.patch.Vertices[v.ParentL].Position.Length()
			r := b.patch.Vertices[v.ParentR].Position.Length()
			return (l+r)/2 - b.radius
		}
	}
	return b.height.Sample(b.patch.BlockCoords[i], 1+v.Depth/2)
}
