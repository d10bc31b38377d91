// planettool is a CLI utility for inspecting and benchmarking procedural
// planets without starting the game.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/soycan-sim/space-game/internal/config"
	"github.com/soycan-sim/space-game/internal/engine/lod"
	"github.com/soycan-sim/space-game/internal/engine/planet"
	"github.com/soycan-sim/space-game/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "mesh":
		cmdMesh(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`planettool - procedural planet inspection utility

Usage:
  planettool <command> [options]

Commands:
  info [-config file]                          List configured planets
  mesh [-config file] -planet name [options]   Benchmark mesh generation

Mesh options:
  -depth N       Deepest uniform subdivision to build (default 5)
  -altitude H    Viewpoint height above the surface for the adaptive
                 build (default 10)

Examples:
  planettool info
  planettool mesh -planet verda -depth 6
  planettool mesh -config config.yaml -planet cinder -altitude 3`)
}

// loadConfig reads the given config file, or the defaults when path is empty.
func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// buildPlanet resolves a named planet from the config.
func buildPlanet(cfg *config.Config, name string) *planet.Planet {
	for _, pc := range cfg.Universe.Planets {
		if pc.Name != name {
			continue
		}
		def, err := pc.Definition(cfg.Generation)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		p, err := planet.New(def)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return p
	}

	fmt.Fprintf(os.Stderr, "Planet not found: %s\n", name)
	fmt.Fprintln(os.Stderr, "Configured planets:")
	for _, pc := range cfg.Universe.Planets {
		fmt.Fprintf(os.Stderr, "  %s\n", pc.Name)
	}
	os.Exit(1)
	return nil
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (default: built-in defaults)")
	fs.Parse(args)

	cfg := loadConfig(*configPath)

	fmt.Printf("Seed:    %d\n", cfg.Generation.Seed)
	fmt.Printf("Noise:   %s\n", cfg.Generation.Noise)
	fmt.Printf("Planets: %d\n", len(cfg.Universe.Planets))
	fmt.Println()

	for _, pc := range cfg.Universe.Planets {
		def, err := pc.Definition(cfg.Generation)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		p, err := planet.New(def)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s\n", p.Name())
		fmt.Printf("  radius:     %.1f\n", p.Radius())
		fmt.Printf("  atmosphere: %.1f\n", p.AtmosphereRadius())
		fmt.Printf("  position:   (%.1f, %.1f, %.1f)\n",
			p.Position().X, p.Position().Y, p.Position().Z)
		fmt.Printf("  seed:       %d\n", def.Seed)
		fmt.Printf("  height:     freq %.3f, amp %.2f\n",
			def.Height.Frequency, def.Height.Amplitude)
		fmt.Println()
	}
}

func cmdMesh(args []string) {
	fs := flag.NewFlagSet("mesh", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (default: built-in defaults)")
	name := fs.String("planet", "", "Planet name")
	depth := fs.Int("depth", 5, "Deepest uniform subdivision to build")
	altitude := fs.Float64("altitude", 10, "Viewpoint height above the surface")
	fs.Parse(args)

	if *name == "" {
		fmt.Fprintln(os.Stderr, "Usage: planettool mesh -planet <name> [-depth N] [-altitude H]")
		os.Exit(1)
	}
	if *depth < 0 || *depth > 8 {
		fmt.Fprintf(os.Stderr, "Depth %d out of range (0-8)\n", *depth)
		os.Exit(1)
	}
	if *altitude < 0 {
		fmt.Fprintf(os.Stderr, "Altitude %g must not be negative\n", *altitude)
		os.Exit(1)
	}

	cfg := loadConfig(*configPath)
	p := buildPlanet(cfg, *name)

	fmt.Printf("Planet: %s (radius %.1f)\n\n", p.Name(), p.Radius())

	fmt.Println("Uniform:")
	for d := 0; d <= *depth; d++ {
		start := time.Now()
		mesh := p.BuildUniformMesh(d)
		elapsed := time.Since(start)
		fmt.Printf("  depth %d: %8d vertices %8d quads %8d triangles %8.1fms\n",
			d, mesh.VertexCount(), mesh.TriangleCount()/2, mesh.TriangleCount(),
			float64(elapsed.Microseconds())/1000)
	}

	tiers := lod.DefaultSurfaceTiers()
	target := p.Position().Add(math.Vec3{Y: p.Radius() + float32(*altitude)})

	start := time.Now()
	mesh := p.BuildAdaptiveMesh(target, tiers)
	elapsed := time.Since(start)

	fmt.Printf("\nAdaptive (altitude %.1f, max depth %d):\n", *altitude, tiers.MaxDepth())
	fmt.Printf("  %8d vertices %8d quads %8d triangles %8.1fms\n",
		mesh.VertexCount(), mesh.TriangleCount()/2, mesh.TriangleCount(),
		float64(elapsed.Microseconds())/1000)
}
