package planet

import (
	"testing"

	"github.com/soycan-sim/space-game/internal/engine/lod"
	"github.com/soycan-sim/space-game/internal/engine/noise"
	"github.com/soycan-sim/space-game/pkg/math"
)

func testField(t *testing.T, seed int64) noise.Field {
	t.Helper()
	src, err := noise.NewSource(noise.KindSimplex, seed)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}
	return noise.NewField(src, noise.Params{
		Frequency:       0.05,
		OctaveScale:     2,
		Amplitude:       2,
		OctaveAmplitude: 0.5,
	})
}

func pow(base, exp int) int {
	n := 1
	for i := 0; i < exp; i++ {
		n *= base
	}
	return n
}

func TestRootPatch(t *testing.T) {
	const radius = 10.0
	b := NewPatchBuilder(0, radius, math.Vec3{}, testField(t, 1))
	p := b.Patch()

	if len(p.Vertices) != 4 || len(p.BlockCoords) != 4 || len(p.TexCoords) != 4 {
		t.Fatalf("root patch arena lengths = (%d, %d, %d), want (4, 4, 4)",
			len(p.Vertices), len(p.BlockCoords), len(p.TexCoords))
	}
	if len(p.Quads) != 1 {
		t.Fatalf("root patch quads = %d, want 1", len(p.Quads))
	}
	for i, v := range p.Vertices {
		if !v.Edge {
			t.Errorf("root vertex %d not an edge", i)
		}
		if v.Depth != 0 {
			t.Errorf("root vertex %d depth = %d, want 0", i, v.Depth)
		}
		if v.ParentL != NoParent || v.ParentR != NoParent {
			t.Errorf("root vertex %d has parents (%d, %d)", i, v.ParentL, v.ParentR)
		}
		if got := v.Position.Length(); absf(got-radius) > 1e-3 {
			t.Errorf("root vertex %d radial length = %v, want %v", i, got, radius)
		}
	}
}

func TestSubdivideQuadAndUniqueVertexCounts(t *testing.T) {
	for depth := 0; depth <= 4; depth++ {
		b := NewPatchBuilder(0, 10, math.Vec3{}, testField(t, 1))
		for i := 0; i < depth; i++ {
			b.Subdivide()
		}
		p := b.Patch()

		wantQuads := pow(4, depth)
		if len(p.Quads) != wantQuads {
			t.Errorf("depth %d: quads = %d, want %d", depth, len(p.Quads), wantQuads)
		}

		// Sibling quads cut shared edges independently, so the arena holds
		// duplicates; distinct block coordinates count the real grid. Block
		// midpoints halve exact binary fractions, making equality reliable.
		unique := make(map[math.Vec3]bool)
		for _, c := range p.BlockCoords {
			unique[c] = true
		}
		side := pow(2, depth) + 1
		if len(unique) != side*side {
			t.Errorf("depth %d: unique vertices = %d, want %d", depth, len(unique), side*side)
		}
	}
}

func TestSubdivideArenaInvariants(t *testing.T) {
	b := NewPatchBuilder(2, 50, math.Vec3{}, testField(t, 3))
	for i := 0; i < 3; i++ {
		b.Subdivide()
	}
	p := b.Patch()

	if len(p.Vertices) != len(p.BlockCoords) || len(p.Vertices) != len(p.TexCoords) {
		t.Fatalf("arena lengths diverged: %d vertices, %d blocks, %d uvs",
			len(p.Vertices), len(p.BlockCoords), len(p.TexCoords))
	}
	for qi, q := range p.Quads {
		for _, vi := range q {
			if vi < 0 || vi >= len(p.Vertices) {
				t.Fatalf("quad %d references vertex %d outside arena of %d", qi, vi, len(p.Vertices))
			}
		}
	}
	for i, v := range p.Vertices {
		if v.ParentL == NoParent || v.ParentR == NoParent {
			if i >= 4 {
				t.Errorf("cut vertex %d missing parents", i)
			}
			continue
		}
		if v.ParentL >= i || v.ParentR >= i {
			t.Errorf("vertex %d parents (%d, %d) must precede it in the arena", i, v.ParentL, v.ParentR)
		}
		deeper := p.Vertices[v.ParentL].Depth
		if d := p.Vertices[v.ParentR].Depth; d > deeper {
			deeper = d
		}
		want := deeper + 1
		if v.Centerpoint {
			want = deeper
		}
		if v.Depth != want {
			t.Errorf("vertex %d depth = %d, want %d", i, v.Depth, want)
		}
		if v.Centerpoint && v.Edge {
			t.Errorf("vertex %d is both centerpoint and edge", i)
		}
	}
}

func TestSubdivideEdgeMatchesFaceBoundary(t *testing.T) {
	// Face 0 spans the +Z cube face, so block X and Y run the boundary.
	b := NewPatchBuilder(0, 10, math.Vec3{}, testField(t, 1))
	for i := 0; i < 3; i++ {
		b.Subdivide()
	}
	p := b.Patch()
	for i, v := range p.Vertices {
		c := p.BlockCoords[i]
		onBoundary := absf(c.X) == 1 || absf(c.Y) == 1
		if v.Edge != onBoundary {
			t.Errorf("vertex %d at block %v: edge = %v, want %v", i, c, v.Edge, onBoundary)
		}
	}
}

func TestDisplacePreservesDirection(t *testing.T) {
	b := NewPatchBuilder(4, 30, math.Vec3{}, testField(t, 9))
	for i := 0; i < 3; i++ {
		b.Subdivide()
	}
	p := b.Patch()

	before := make([]math.Vec3, len(p.Vertices))
	for i, v := range p.Vertices {
		before[i] = v.Position.Normalize()
	}

	b.Displace()
	for i, v := range p.Vertices {
		after := v.Position.Normalize()
		if after.Distance(before[i]) > 1e-4 {
			t.Errorf("vertex %d direction drifted from %v to %v", i, before[i], after)
		}
	}
}

func TestDisplaceUniformHeights(t *testing.T) {
	b := NewPatchBuilder(1, 40, math.Vec3{}, testField(t, 5))
	for i := 0; i < 2; i++ {
		b.Subdivide()
	}
	p := b.Patch()
	b.Displace()

	for i, v := range p.Vertices {
		want := 40 + b.height.Sample(p.BlockCoords[i], 1+v.Depth/2)
		if got := v.Position.Length(); absf(got-want) > 1e-3 {
			t.Errorf("vertex %d radial length = %v, want %v", i, got, want)
		}
	}
}

func surfaceTestTiers(t *testing.T) lod.Tiers {
	t.Helper()
	tiers, err := lod.New(
		lod.Tier{Distance: 5, Depth: 9},
		lod.Tier{Distance: 10, Depth: 8},
		lod.Tier{Distance: 20, Depth: 7},
		lod.Tier{Distance: 40, Depth: 6},
		lod.Tier{Distance: 80, Depth: 5},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tiers
}

func TestSubdivideSurfaceTerminates(t *testing.T) {
	tiers := surfaceTestTiers(t)
	target := math.Vec3{Y: 54}

	// Face 4 is +Y, directly under the target.
	b := NewPatchBuilder(4, 50, math.Vec3{}, testField(t, 1))
	depth := 0
	for ; b.SubdivideSurface(target, tiers, depth); depth++ {
		if depth > tiers.MaxDepth() {
			t.Fatalf("still subdividing at depth %d, beyond the deepest tier %d", depth, tiers.MaxDepth())
		}
	}

	// A finished refinement stays finished.
	quads := len(b.Patch().Quads)
	if b.SubdivideSurface(target, tiers, depth) {
		t.Error("SubdivideSurface() reported a split after refinement finished")
	}
	if len(b.Patch().Quads) != quads {
		t.Errorf("quad count changed from %d to %d after refinement finished", quads, len(b.Patch().Quads))
	}
}

func TestSubdivideSurfaceRefinesNearTarget(t *testing.T) {
	tiers := surfaceTestTiers(t)
	target := math.Vec3{Y: 54}

	b := NewPatchBuilder(4, 50, math.Vec3{}, testField(t, 1))
	for depth := 0; b.SubdivideSurface(target, tiers, depth); depth++ {
	}
	p := b.Patch()

	maxDepth := 0
	var deepest math.Vec3
	for _, v := range p.Vertices {
		if v.Depth > maxDepth {
			maxDepth = v.Depth
			deepest = v.Position
		}
	}
	if maxDepth < 9 {
		t.Errorf("deepest vertex depth = %d, want at least 9", maxDepth)
	}
	subPoint := math.Vec3{Y: 50}
	if d := deepest.Distance(subPoint); d > 15 {
		t.Errorf("deepest vertex %v is %v from the sub-point, want nearby refinement", deepest, d)
	}

	// Depth 9 everywhere would take 4^9 quads; adaptive refinement must stay
	// far coarser away from the sub-point.
	if len(p.Quads) >= pow(4, 8) {
		t.Errorf("adaptive refinement produced %d quads, want far fewer than uniform depth 9", len(p.Quads))
	}
}

func TestDisplaceAdaptiveBlendsOverRefinedVertices(t *testing.T) {
	tiers := surfaceTestTiers(t)
	target := math.Vec3{Y: 54}
	const radius = 50.0

	b := NewPatchBuilder(4, radius, math.Vec3{}, testField(t, 1))
	for depth := 0; b.SubdivideSurface(target, tiers, depth); depth++ {
	}
	p := b.Patch()

	// Distances that picked the height rule are measured before displacement.
	preDist := make([]float32, len(p.Vertices))
	for i, v := range p.Vertices {
		preDist[i] = v.Position.Distance(target)
	}

	b.DisplaceAdaptive(target, tiers)

	blends := 0
	for i, v := range p.Vertices {
		limit, ok := tiers.DepthFor(preDist[i])
		blended := ok && !v.Centerpoint && v.ParentL != NoParent && v.ParentR != NoParent && v.Depth > limit
		got := v.Position.Length()
		if blended {
			blends++
			l := p.Vertices[v.ParentL].Position.Length()
			r := p.Vertices[v.ParentR].Position.Length()
			want := (l + r) / 2
			if absf(got-want) > 1e-3 {
				t.Errorf("vertex %d radial length = %v, want parent average %v", i, got, want)
			}
		} else {
			want := radius + b.height.Sample(p.BlockCoords[i], 1+v.Depth/2)
			if absf(got-want) > 1e-3 {
				t.Errorf("vertex %d radial length = %v, want sampled %v", i, got, want)
			}
		}
	}
	if blends == 0 {
		t.Error("no vertex used the collapse blend, refinement never outran its tier")
	}
}
