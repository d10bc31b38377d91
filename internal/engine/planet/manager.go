package planet

import (
	"go.uber.org/zap"

	"github.com/soycan-sim/space-game/internal/engine/lod"
	"github.com/soycan-sim/space-game/internal/logger"
	"github.com/soycan-sim/space-game/pkg/math"
)

// State reports what the manager's last tick did.
type State int

const (
	// Idle means the viewpoint had not moved epsilon past the last accepted
	// position, so no planet was touched.
	Idle State = iota
	// Regenerating means the last tick rebuilt planet meshes.
	Regenerating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Regenerating:
		return "regenerating"
	default:
		return "unknown"
	}
}

// TargetSource is any object exposing a current viewpoint position, polled
// once per tick. Cameras implement it.
type TargetSource interface {
	Position() math.Vec3
}

// Manager re-levels a set of planets as the viewpoint moves: adaptive
// surface LOD inside a planet's atmosphere, tiered uniform LOD beyond it,
// nothing at all past the far table. The viewpoint epsilon bounds rebuild
// frequency under small or no movement. One manager instance carries all of
// its own state, so independent managers can coexist.
type Manager struct {
	planets []*Planet
	source  TargetSource

	epsilon  float32
	interval float64
	elapsed  float64

	last    math.Vec3
	hasLast bool
	state   State

	surfaceTiers lod.Tiers
	farTiers     lod.Tiers
}

// NewManager creates a manager polling source. epsilon is the minimum
// viewpoint travel that triggers regeneration, interval the accumulated
// seconds between ticks (0 ticks every Update).
func NewManager(source TargetSource, epsilon float32, interval float64) *Manager {
	return &Manager{
		source:       source,
		epsilon:      epsilon,
		interval:     interval,
		surfaceTiers: lod.DefaultSurfaceTiers(),
		farTiers:     lod.DefaultFarTiers(),
	}
}

// SetTiers replaces the surface and far tier tables.
func (m *Manager) SetTiers(surface, far lod.Tiers) error {
	if err := surface.Validate(); err != nil {
		return err
	}
	if err := far.Validate(); err != nil {
		return err
	}
	m.surfaceTiers = surface
	m.farTiers = far
	return nil
}

// Add puts a planet under management.
func (m *Manager) Add(p *Planet) {
	m.planets = append(m.planets, p)
}

// Planets returns the managed planets.
func (m *Manager) Planets() []*Planet {
	return m.planets
}

// State returns what the last tick did.
func (m *Manager) State() State {
	return m.state
}

// Update accumulates frame time and ticks once the interval has passed.
func (m *Manager) Update(dt float64) {
	m.elapsed += dt
	if m.elapsed < m.interval {
		return
	}
	m.elapsed = 0
	m.Tick()
}

// Tick polls the viewpoint and, when it has moved at least epsilon since
// the last accepted position, regenerates every managed planet. The new
// position is accepted only after all planets are processed. The first tick
// always regenerates.
func (m *Manager) Tick() {
	target := m.source.Position()
	if m.hasLast && target.Distance(m.last) < m.epsilon {
		m.state = Idle
		return
	}
	m.state = Regenerating
	for _, p := range m.planets {
		m.regenerate(p, target)
	}
	m.last = target
	m.hasLast = true
}

// regenerate rebuilds one planet for the given viewpoint: adaptive inside
// the atmosphere, uniform at the far-table depth outside it, untouched past
// the far table.
func (m *Manager) regenerate(p *Planet, target math.Vec3) {
	d := target.Distance(p.Position())
	if d < p.AtmosphereRadius() {
		mesh := p.BuildAdaptiveMesh(target, m.surfaceTiers)
		logger.Debug("rebuilt planet surface",
			zap.String("planet", p.Name()),
			zap.Float32("distance", d),
			zap.Int("vertices", mesh.VertexCount()),
			zap.Int("triangles", mesh.TriangleCount()))
		return
	}
	depth, ok := m.farTiers.DepthFor(d)
	if !ok {
		return
	}
	mesh := p.BuildUniformMesh(depth)
	logger.Debug("rebuilt planet",
		zap.String("planet", p.Name()),
		zap.Float32("distance", d),
		zap.Int("depth", depth),
		zap.Int("vertices", mesh.VertexCount()))
}
