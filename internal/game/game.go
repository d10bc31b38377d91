// Package game implements the main game loop and universe setup.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/soycan-sim/space-game/internal/config"
	"github.com/soycan-sim/space-game/internal/engine/camera"
	"github.com/soycan-sim/space-game/internal/engine/debug"
	"github.com/soycan-sim/space-game/internal/engine/input"
	"github.com/soycan-sim/space-game/internal/engine/planet"
	"github.com/soycan-sim/space-game/internal/engine/renderer"
	"github.com/soycan-sim/space-game/internal/engine/scene"
	"github.com/soycan-sim/space-game/internal/engine/window"
	"github.com/soycan-sim/space-game/pkg/math"
)

const (
	windowTitle   = "space-game"
	screenshotDir = "screenshots"
)

// Game is the main game instance.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	camera   *camera.FlyCamera
	orbit    *camera.OrbitCamera
	manager  *planet.Manager

	orbitMode      bool
	mouseCaptured  bool
	screenshotNext bool
}

// New creates a new game instance.
func New(cfg *config.Config) (*Game, error) {
	slog.Info("initializing game",
		"width", cfg.Graphics.Width,
		"height", cfg.Graphics.Height,
		"seed", cfg.Generation.Seed,
		"planets", len(cfg.Universe.Planets),
	)

	g := &Game{
		config:  cfg,
		running: false,
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	drawW, drawH := g.window.GetDrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:  drawW,
		Height: drawH,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	// Create scene
	g.scene, err = scene.New(scene.Config{
		Width:  int32(drawW),
		Height: int32(drawH),
		FOV:    cfg.Graphics.FOV,
	})
	if err != nil {
		g.renderer.Close()
		g.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	// Create input handler
	g.input = input.New()

	// The LOD manager follows whichever camera is active
	g.camera = camera.NewFlyCamera()
	g.orbit = camera.NewOrbitCamera()
	g.manager = planet.NewManager(g,
		cfg.Generation.Epsilon, float64(cfg.Generation.Interval))

	if err := g.buildUniverse(); err != nil {
		g.Close()
		return nil, err
	}

	// First meshes before the first frame
	g.manager.Tick()

	g.setMouseCaptured(true)

	slog.Info("game initialized successfully")
	return g, nil
}

// buildUniverse creates every configured planet and wires it into the scene
// and the LOD manager.
func (g *Game) buildUniverse() error {
	for _, pc := range g.config.Universe.Planets {
		def, err := pc.Definition(g.config.Generation)
		if err != nil {
			return fmt.Errorf("universe: %w", err)
		}
		p, err := planet.New(def)
		if err != nil {
			return fmt.Errorf("universe: %w", err)
		}
		g.scene.AddPlanet(p)
		g.manager.Add(p)
	}

	// Start looking at the first planet from outside its atmosphere
	if planets := g.manager.Planets(); len(planets) > 0 {
		first := planets[0]
		offset := math.Vec3{Y: first.Radius() * 0.5, Z: first.Radius() * 4}
		g.camera.Pos = first.Position().Add(offset)
	}
	return nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	slog.Info("starting game loop")

	for g.running {
		// Calculate delta time
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			// Quit event received
			g.running = false
			break
		}

		// Handle events
		for _, event := range g.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				drawW, drawH := g.window.GetDrawableSize()
				g.renderer.Resize(drawW, drawH)
				g.scene.Resize(int32(drawW), int32(drawH))
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					g.running = false
				case sdl.SCANCODE_TAB:
					g.setMouseCaptured(!g.mouseCaptured)
				case sdl.SCANCODE_F5:
					g.toggleOrbitMode()
				case sdl.SCANCODE_F3:
					g.scene.ShowBounds = !g.scene.ShowBounds
					slog.Debug("bounds overlay", "enabled", g.scene.ShowBounds)
				case sdl.SCANCODE_F12:
					g.screenshotNext = true
				}
			}
		}

		// 2. Update game state
		if err := g.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		if err := g.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// Capture before the swap so the finished frame is still readable
		if g.screenshotNext {
			g.screenshotNext = false
			g.saveScreenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			slog.Debug("fps", "count", frameCount, "dt", fmt.Sprintf("%.2fms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	slog.Info("closing game")

	if g.scene != nil {
		g.scene.Destroy()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

// update advances the active camera and the planet LOD for one frame.
func (g *Game) update(dt float64) error {
	// Mouse look: drag orbits, relative motion flies
	if g.mouseCaptured {
		for _, event := range g.input.Events() {
			switch event.Type {
			case input.EventMouseMove:
				if g.orbitMode {
					g.orbit.HandleDrag(float32(event.RelX), float32(event.RelY))
				} else {
					g.camera.HandleMouse(float32(event.RelX), float32(event.RelY))
				}
			case input.EventMouseWheel:
				if g.orbitMode {
					g.orbit.HandleZoom(float32(event.Scroll))
				}
			}
		}
	}

	// Movement from held keys
	if !g.orbitMode {
		var forward, right, up float32
		if g.input.IsKeyDown(sdl.SCANCODE_W) {
			forward++
		}
		if g.input.IsKeyDown(sdl.SCANCODE_S) {
			forward--
		}
		if g.input.IsKeyDown(sdl.SCANCODE_D) {
			right++
		}
		if g.input.IsKeyDown(sdl.SCANCODE_A) {
			right--
		}
		if g.input.IsKeyDown(sdl.SCANCODE_SPACE) {
			up++
		}
		if g.input.IsKeyDown(sdl.SCANCODE_LCTRL) {
			up--
		}
		boost := g.input.IsKeyDown(sdl.SCANCODE_LSHIFT)
		g.camera.Move(forward, right, up, float32(dt), boost)
	}

	// Re-level planet meshes as the viewpoint moves
	g.manager.Update(dt)

	return nil
}

// render draws the current frame.
func (g *Game) render() error {
	g.renderer.Begin()
	if g.orbitMode {
		g.scene.RenderOrbit(g.orbit)
	} else {
		g.scene.Render(g.camera)
	}
	g.renderer.End()
	return nil
}

// Position returns the active camera's viewpoint. The LOD manager polls it.
func (g *Game) Position() math.Vec3 {
	if g.orbitMode {
		return g.orbit.Position()
	}
	return g.camera.Position()
}

// toggleOrbitMode switches between free flight and inspecting the planet
// closest to the current viewpoint.
func (g *Game) toggleOrbitMode() {
	g.orbitMode = !g.orbitMode
	if g.orbitMode {
		if p := g.nearestPlanet(); p != nil {
			g.orbit.FramePlanet(p.Position(), p.Radius())
		}
	}
	slog.Debug("orbit mode", "enabled", g.orbitMode)
}

func (g *Game) nearestPlanet() *planet.Planet {
	var nearest *planet.Planet
	var best float32
	for _, p := range g.manager.Planets() {
		d := g.camera.Position().Distance(p.Position())
		if nearest == nil || d < best {
			nearest, best = p, d
		}
	}
	return nearest
}

func (g *Game) setMouseCaptured(captured bool) {
	g.mouseCaptured = captured
	input.SetRelativeMouseMode(captured)
}

func (g *Game) saveScreenshot() {
	pixels, w, h := g.renderer.CapturePixels()
	if len(pixels) == 0 {
		return
	}
	path, err := debug.SaveScreenshot(screenshotDir, pixels, w, h)
	if err != nil {
		slog.Error("screenshot failed", "error", err)
		return
	}
	slog.Info("screenshot saved", "path", path)
}
