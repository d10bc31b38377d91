// Package planet builds cube-sphere surface meshes with noise displacement
// and distance-adaptive, crack-free level of detail.
package planet

import "github.com/soycan-sim/space-game/pkg/math"

// NoParent marks a root vertex with no cut ancestry.
const NoParent = -1

// Vertex is a point on the evolving sphere mesh plus the subdivision
// bookkeeping that crack-free refinement relies on. Position is mutated in
// place during subdivision and displacement.
type Vertex struct {
	Position math.Vec3

	// Edge is true while the vertex lies on the boundary of the original
	// cube-face patch, where geometry must agree with the neighboring patch.
	Edge bool

	// Centerpoint is true only for vertices bisecting a quad's diagonal.
	// They are never collapse-blended since they have no counterpart on a
	// shared edge.
	Centerpoint bool

	// Depth counts subdivisions since the edge stopped being shared with the
	// neighboring patch. Root cube corners have depth 0.
	Depth int

	// ParentL and ParentR index the two vertices this one was cut from in
	// the owning patch's arena, or NoParent for root corners. Used only for
	// the height-collapse lookup.
	ParentL int
	ParentR int
}

// SphericalCut combines two vertices into the point halfway between them,
// reprojected onto the sphere of the given radius. ai and bi are the
// parents' arena indices. The cut is an edge only if both parents are, and
// its depth is one past the deeper parent.
func SphericalCut(a, b Vertex, ai, bi int, radius float32) Vertex {
	depth := a.Depth
	if b.Depth > depth {
		depth = b.Depth
	}
	return Vertex{
		Position: a.Position.Add(b.Position).Normalize().Scale(radius),
		Edge:     a.Edge && b.Edge,
		Depth:    depth + 1,
		ParentL:  ai,
		ParentR:  bi,
	}
}

// CenterCut is a spherical cut explicitly forced off the patch edge, used
// for the vertex bisecting a quad's diagonal. Forcing the cut non-edge takes
// one off its depth.
func CenterCut(a, b Vertex, ai, bi int, radius float32) Vertex {
	v := SphericalCut(a, b, ai, bi, radius)
	v.Edge = false
	v.Centerpoint = true
	v.Depth--
	return v
}
