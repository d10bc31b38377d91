package debug

import "github.com/soycan-sim/space-game/pkg/math"

// BoxEdges returns line-list vertices for the twelve edges of an
// axis-aligned box, two endpoints per edge, three floats per endpoint.
func BoxEdges(min, max math.Vec3) []float32 {
	return BoxEdgesAt(min, max, math.Vec3{})
}

// BoxEdgesAt offsets the box corners by a world position before emitting
// the edge list.
func BoxEdgesAt(min, max, offset math.Vec3) []float32 {
	lo := min.Add(offset)
	hi := max.Add(offset)
	corners := [8]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // verticals
	}

	verts := make([]float32, 0, len(edges)*6)
	for _, e := range edges {
		a, b := corners[e[0]], corners[e[1]]
		verts = append(verts, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}
	return verts
}
