package planet

import (
	"testing"

	"github.com/soycan-sim/space-game/internal/engine/lod"
	"github.com/soycan-sim/space-game/internal/engine/noise"
	"github.com/soycan-sim/space-game/pkg/math"
)

func testDefinition(name string, radius float32) Definition {
	return Definition{
		Name:   name,
		Radius: radius,
		Seed:   7,
		Height: noise.Params{
			Frequency:       0.05,
			OctaveScale:     2,
			Amplitude:       2,
			OctaveAmplitude: 0.5,
		},
		Color:     noise.DefaultParams(),
		LowColor:  RGB{0.1, 0.2, 0.5},
		HighColor: RGB{0.9, 0.85, 0.7},
	}
}

func TestNewValidation(t *testing.T) {
	def := testDefinition("broken", -5)
	if _, err := New(def); err == nil {
		t.Error("New() with negative radius should fail")
	}
	def.Radius = 0
	if _, err := New(def); err == nil {
		t.Error("New() with zero radius should fail")
	}

	def = testDefinition("odd", 10)
	def.Noise = "whitenoise"
	if _, err := New(def); err == nil {
		t.Error("New() with unknown noise kind should fail")
	}
}

func TestNewDerivedParameters(t *testing.T) {
	p, err := New(testDefinition("earth", 10))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Name() != "earth" {
		t.Errorf("Name() = %q, want %q", p.Name(), "earth")
	}
	if p.Radius() != 10 {
		t.Errorf("Radius() = %v, want 10", p.Radius())
	}
	if p.AtmosphereRadius() != 15 {
		t.Errorf("AtmosphereRadius() = %v, want 15", p.AtmosphereRadius())
	}
	if p.Mesh() != nil {
		t.Error("Mesh() before any build should be nil")
	}
	if p.Version() != 0 {
		t.Errorf("Version() before any build = %d, want 0", p.Version())
	}
}

func TestBuildUniformMeshPayload(t *testing.T) {
	p, err := New(testDefinition("earth", 10))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	mesh := p.BuildUniformMesh(2)

	// Depth 2 arena per face: 4 roots + 5 + 4*5 cuts.
	const wantVerts = 6 * 29
	if mesh.VertexCount() != wantVerts {
		t.Errorf("VertexCount() = %d, want %d", mesh.VertexCount(), wantVerts)
	}
	if len(mesh.Positions) != wantVerts*3 {
		t.Errorf("len(Positions) = %d, want %d", len(mesh.Positions), wantVerts*3)
	}
	if len(mesh.Normals) != len(mesh.Positions) {
		t.Errorf("len(Normals) = %d, want %d", len(mesh.Normals), len(mesh.Positions))
	}
	if len(mesh.UVs) != wantVerts*2 {
		t.Errorf("len(UVs) = %d, want %d", len(mesh.UVs), wantVerts*2)
	}

	// 16 quads per face, two triangles each.
	const wantIndices = 6 * 16 * 6
	if len(mesh.Indices) != wantIndices {
		t.Errorf("len(Indices) = %d, want %d", len(mesh.Indices), wantIndices)
	}
	for i, idx := range mesh.Indices {
		if idx >= uint32(wantVerts) {
			t.Fatalf("index %d references vertex %d outside buffer of %d", i, idx, wantVerts)
		}
	}

	for vi := 0; vi+2 < len(mesh.Normals); vi += 3 {
		n := math.Vec3{X: mesh.Normals[vi], Y: mesh.Normals[vi+1], Z: mesh.Normals[vi+2]}
		if l := n.Length(); absf(l-1) > 1e-3 {
			t.Fatalf("normal %d has length %v, want 1", vi/3, l)
		}
	}

	if p.Mesh() != mesh {
		t.Error("Mesh() should return the last built payload")
	}
	if p.Version() != 1 {
		t.Errorf("Version() = %d, want 1", p.Version())
	}
}

func TestBuildUniformMeshDepthZero(t *testing.T) {
	p, err := New(testDefinition("moon", 5))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	mesh := p.BuildUniformMesh(0)
	if mesh.VertexCount() != 24 {
		t.Errorf("VertexCount() = %d, want 24", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", mesh.TriangleCount())
	}
}

func TestNormalsPointOutward(t *testing.T) {
	def := testDefinition("smooth", 10)
	def.Height.Amplitude = 0.3
	p, err := New(def)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	mesh := p.BuildUniformMesh(3)
	for vi := 0; vi+2 < len(mesh.Normals); vi += 3 {
		n := math.Vec3{X: mesh.Normals[vi], Y: mesh.Normals[vi+1], Z: mesh.Normals[vi+2]}
		dir := math.Vec3{X: mesh.Positions[vi], Y: mesh.Positions[vi+1], Z: mesh.Positions[vi+2]}.Normalize()
		if n.Dot(dir) <= 0 {
			t.Fatalf("normal %d points inward: normal %v at direction %v", vi/3, n, dir)
		}
	}
}

type recordingTarget struct {
	applied []*Mesh
}

func (r *recordingTarget) ApplyMesh(m *Mesh) {
	r.applied = append(r.applied, m)
}

func TestMeshTargetReceivesRebuilds(t *testing.T) {
	p, err := New(testDefinition("earth", 10))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	target := &recordingTarget{}
	p.SetMeshTarget(target)

	first := p.BuildUniformMesh(1)
	second := p.BuildUniformMesh(2)
	if len(target.applied) != 2 {
		t.Fatalf("target received %d meshes, want 2", len(target.applied))
	}
	if target.applied[0] != first || target.applied[1] != second {
		t.Error("target received different meshes than the builds returned")
	}
	if p.Version() != 2 {
		t.Errorf("Version() = %d, want 2", p.Version())
	}
}

func TestBuildAdaptiveMeshNearSurface(t *testing.T) {
	p, err := New(testDefinition("home", 50))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
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

	// Viewpoint 4 above the surface, well inside the 75 atmosphere radius.
	adaptive := p.BuildAdaptiveMesh(math.Vec3{Y: 54}, tiers)
	uniform := p.BuildUniformMesh(4)
	if adaptive.TriangleCount() <= uniform.TriangleCount() {
		t.Errorf("adaptive mesh has %d triangles, want more than uniform depth 4's %d",
			adaptive.TriangleCount(), uniform.TriangleCount())
	}
}

// quantized keys shared block coordinates across faces; boundary cuts halve
// exact binary fractions so direct equality is reliable.
func TestAdaptiveSeamConsistencyAcrossPatches(t *testing.T) {
	const radius = 50.0
	field := testField(t, 7)
	tiers := surfaceTestTiers(t)

	// Viewpoint straight above the cube edge shared by the +Z and +Y faces,
	// driving deep refinement right at a patch boundary.
	target := math.Vec3{Y: 38.18, Z: 38.18}

	builders := make([]*PatchBuilder, 6)
	for face := range builders {
		b := NewPatchBuilder(face, radius, math.Vec3{}, field)
		for depth := 0; b.SubdivideSurface(target, tiers, depth); depth++ {
		}
		b.DisplaceAdaptive(target, tiers)
		builders[face] = b
	}

	heights := make(map[math.Vec3][]float32)
	maxEdgeDepth := 0
	for _, b := range builders {
		p := b.Patch()
		for i, v := range p.Vertices {
			if !v.Edge {
				continue
			}
			heights[p.BlockCoords[i]] = append(heights[p.BlockCoords[i]], v.Position.Length())
			if v.Depth > maxEdgeDepth {
				maxEdgeDepth = v.Depth
			}
		}
	}
	if maxEdgeDepth < 8 {
		t.Fatalf("deepest boundary vertex depth = %d, want at least 8 near the shared edge", maxEdgeDepth)
	}

	shared := 0
	for coord, radials := range heights {
		if len(radials) < 2 {
			continue
		}
		shared++
		min, max := radials[0], radials[0]
		for _, r := range radials[1:] {
			if r < min {
				min = r
			}
			if r > max {
				max = r
			}
		}
		if max-min > 1e-3 {
			t.Errorf("boundary vertex at block %v disagrees across patches: spread %v", coord, max-min)
		}
	}
	if shared == 0 {
		t.Fatal("no boundary vertices were shared between patches")
	}
}
