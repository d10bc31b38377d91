package planet

import (
	"fmt"
	"sync"

	"github.com/soycan-sim/space-game/internal/engine/lod"
	"github.com/soycan-sim/space-game/internal/engine/noise"
	"github.com/soycan-sim/space-game/pkg/math"
)

// Planets switch to adaptive surface LOD once the viewpoint is closer than
// this multiple of their radius.
const atmosphereScale = 1.5

// MeshTarget receives rebuilt surface meshes. Renderers implement it so a
// planet can replace buffer contents while material and transform bindings
// survive.
type MeshTarget interface {
	ApplyMesh(*Mesh)
}

// RGB is a linear color triple.
type RGB [3]float32

// Definition holds the fixed parameters a planet is created with.
type Definition struct {
	Name      string
	Radius    float32
	Position  math.Vec3
	Noise     string // noise source kind, empty means simplex
	Seed      int64
	Height    noise.Params
	Color     noise.Params
	LowColor  RGB
	HighColor RGB
}

// Planet owns one body's physical parameters and orchestrates six patch
// builders into its surface mesh. Construction fixes radius and noise;
// position and the mesh payload mutate across regenerations.
type Planet struct {
	name       string
	radius     float32
	atmosphere float32
	position   math.Vec3
	height     noise.Field
	color      noise.Field
	lowColor   RGB
	highColor  RGB

	mesh    *Mesh
	version uint64
	target  MeshTarget
}

// New validates def and creates the planet with its two seeded noise fields,
// height at the definition seed and color one past it.
func New(def Definition) (*Planet, error) {
	if def.Radius <= 0 {
		return nil, fmt.Errorf("planet %q: radius %v must be positive", def.Name, def.Radius)
	}
	kind := def.Noise
	if kind == "" {
		kind = noise.KindSimplex
	}
	heightSrc, err := noise.NewSource(kind, def.Seed)
	if err != nil {
		return nil, fmt.Errorf("planet %q: %w", def.Name, err)
	}
	colorSrc, err := noise.NewSource(kind, def.Seed+1)
	if err != nil {
		return nil, fmt.Errorf("planet %q: %w", def.Name, err)
	}
	return &Planet{
		name:       def.Name,
		radius:     def.Radius,
		atmosphere: def.Radius * atmosphereScale,
		position:   def.Position,
		height:     noise.NewField(heightSrc, def.Height),
		color:      noise.NewField(colorSrc, def.Color),
		lowColor:   def.LowColor,
		highColor:  def.HighColor,
	}, nil
}

// Name returns the planet's name.
func (p *Planet) Name() string { return p.name }

// Radius returns the sea-level sphere radius.
func (p *Planet) Radius() float32 { return p.radius }

// AtmosphereRadius returns the adaptive-LOD switchover distance.
func (p *Planet) AtmosphereRadius() float32 { return p.atmosphere }

// Position returns the planet's world position.
func (p *Planet) Position() math.Vec3 { return p.position }

// SetPosition moves the planet.
func (p *Planet) SetPosition(pos math.Vec3) { p.position = pos }

// Mesh returns the most recently built surface mesh, nil before any build.
func (p *Planet) Mesh() *Mesh { return p.mesh }

// Version counts completed rebuilds.
func (p *Planet) Version() uint64 { return p.version }

// SetMeshTarget attaches the renderer-side receiver for rebuilt meshes.
func (p *Planet) SetMeshTarget(t MeshTarget) { p.target = t }

// BuildUniformMesh rebuilds the surface with every quad subdivided to the
// same depth, the whole-planet view from space.
func (p *Planet) BuildUniformMesh(depth int) *Mesh {
	return p.rebuild(func(b *PatchBuilder) {
		for i := 0; i < depth; i++ {
			b.Subdivide()
		}
		b.Displace()
	})
}

// BuildAdaptiveMesh rebuilds the surface refined around target, for
// viewpoints inside the atmosphere radius.
func (p *Planet) BuildAdaptiveMesh(target math.Vec3, tiers lod.Tiers) *Mesh {
	return p.rebuild(func(b *PatchBuilder) {
		for depth := 0; b.SubdivideSurface(target, tiers, depth); depth++ {
		}
		b.DisplaceAdaptive(target, tiers)
	})
}

// rebuild runs one builder per cube face concurrently, joins them in face
// order and swaps the assembled mesh in.
func (p *Planet) rebuild(build func(*PatchBuilder)) *Mesh {
	builders := make([]*PatchBuilder, 6)
	var wg sync.WaitGroup
	for face := range builders {
		wg.Add(1)
		go func(face int) {
			defer wg.Done()
			b := NewPatchBuilder(face, p.radius, p.position, p.height)
			build(b)
			builders[face] = b
		}(face)
	}
	wg.Wait()

	mesh := buildMesh(builders)
	p.mesh = mesh
	p.version++
	if p.target != nil {
		p.target.ApplyMesh(mesh)
	}
	return mesh
}
