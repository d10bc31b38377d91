// Package scene provides a reusable 3D scene rendering system for planetary
// space views. It handles planet surfaces and star lighting.
package scene

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/soycan-sim/space-game/internal/engine/camera"
	"github.com/soycan-sim/space-game/internal/engine/debug"
	"github.com/soycan-sim/space-game/internal/engine/lighting"
	"github.com/soycan-sim/space-game/internal/engine/planet"
	"github.com/soycan-sim/space-game/pkg/math"
)

const (
	nearPlane = 0.1
	farPlane  = 100000.0

	// starDistance pushes the default star far outside the playfield so its
	// light direction is near-parallel across any one planet.
	starDistance = 50000.0
)

// Config contains scene configuration options.
type Config struct {
	Width  int32
	Height int32
	FOV    float32 // Vertical field of view in degrees
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:  1280,
		Height: 720,
		FOV:    60,
	}
}

// Scene manages planet rendering and lighting for one universe view.
type Scene struct {
	// Configuration
	config Config

	// Renderers
	planetRenderer *PlanetRenderer
	lineRenderer   *LineRenderer

	// Lighting
	Star lighting.Star

	// ShowBounds overlays each planet's current mesh bounds as wireframes.
	ShowBounds bool
}

// New creates a new scene with the given configuration.
func New(cfg Config) (*Scene, error) {
	if cfg.FOV <= 0 {
		cfg.FOV = 60
	}
	s := &Scene{
		config: cfg,
	}

	// Default star up and to the side of the playfield
	dir := lighting.StarDirection(35, 40)
	s.Star = lighting.NewStar([3]float32{
		dir[0] * starDistance,
		dir[1] * starDistance,
		dir[2] * starDistance,
	})

	var err error
	s.planetRenderer, err = NewPlanetRenderer()
	if err != nil {
		return nil, fmt.Errorf("creating planet renderer: %w", err)
	}

	s.lineRenderer, err = NewLineRenderer()
	if err != nil {
		s.planetRenderer.Destroy()
		return nil, fmt.Errorf("creating line renderer: %w", err)
	}

	return s, nil
}

// AddPlanet registers a planet for rendering and returns its GPU body. Every
// mesh the planet rebuilds from then on is delivered to that body.
func (s *Scene) AddPlanet(p *planet.Planet) *Body {
	return s.planetRenderer.AddBody(p)
}

// Render draws the scene from a fly camera.
func (s *Scene) Render(cam *camera.FlyCamera) {
	s.RenderWithView(cam.ViewMatrix())
}

// RenderOrbit draws the scene from an orbit camera.
func (s *Scene) RenderOrbit(cam *camera.OrbitCamera) {
	s.RenderWithView(cam.ViewMatrix())
}

// RenderWithView renders the scene with a pre-computed view matrix.
func (s *Scene) RenderWithView(view math.Mat4) {
	aspect := float32(s.config.Width) / float32(s.config.Height)
	fovRad := s.config.FOV * gomath.Pi / 180
	proj := math.Perspective(fovRad, aspect, nearPlane, farPlane)
	viewProj := proj.Mul(view)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	s.planetRenderer.Render(viewProj, s.Star)

	if s.ShowBounds {
		s.renderBounds(viewProj)
	}
}

// renderBounds draws a wireframe box around every planet's current mesh.
// Mesh bounds are planet-local, so each box is offset by its planet's
// position.
func (s *Scene) renderBounds(viewProj math.Mat4) {
	var verts []float32
	for _, b := range s.planetRenderer.bodies {
		m := b.planet.Mesh()
		if m == nil || len(m.Positions) == 0 {
			continue
		}
		verts = append(verts, debug.BoxEdgesAt(m.Bounds.Min, m.Bounds.Max, b.planet.Position())...)
	}
	s.lineRenderer.SetLines(verts)
	s.lineRenderer.Render(viewProj, [3]float32{0.3, 1.0, 0.4})
}

// Resize updates the scene dimensions.
func (s *Scene) Resize(width, height int32) {
	if width == s.config.Width && height == s.config.Height {
		return
	}
	s.config.Width = width
	s.config.Height = height
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.planetRenderer != nil {
		s.planetRenderer.Destroy()
	}
	if s.lineRenderer != nil {
		s.lineRenderer.Destroy()
	}
}
