// Package config handles game configuration loading and management.
package config

import (
	"fmt"

	"github.com/soycan-sim/space-game/internal/engine/noise"
	"github.com/soycan-sim/space-game/internal/engine/planet"
	"github.com/soycan-sim/space-game/pkg/math"
)

// Config holds all game settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Generation GenerationConfig `yaml:"generation"`
	Universe   UniverseConfig   `yaml:"universe"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`
	FOV        float32 `yaml:"fov"` // Vertical field of view in degrees
}

// GenerationConfig holds procedural generation settings shared by every
// planet in the universe.
type GenerationConfig struct {
	Seed     int64   `yaml:"seed"`     // Master seed, offset per planet
	Noise    string  `yaml:"noise"`    // Noise backend: "simplex" or "perlin"
	Epsilon  float32 `yaml:"epsilon"`  // Viewpoint movement that forces a rebuild
	Interval float32 `yaml:"interval"` // Seconds between rebuild checks
}

// UniverseConfig declares the planets to generate.
type UniverseConfig struct {
	Planets []PlanetConfig `yaml:"planets"`
}

// PlanetConfig declares a single planet.
type PlanetConfig struct {
	Name       string       `yaml:"name"`
	Radius     float32      `yaml:"radius"`
	Position   [3]float32   `yaml:"position"`
	SeedOffset int64        `yaml:"seed_offset"`
	Height     noise.Params `yaml:"height"`
	Color      noise.Params `yaml:"color"`
	LowColor   string       `yaml:"low_color"`  // Hex color, e.g. "#1f4f7a"
	HighColor  string       `yaml:"high_color"` // Hex color, e.g. "#e8e4d8"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Definition resolves the planet declaration against the generation settings
// into the parameters the engine builds planets from.
func (p PlanetConfig) Definition(gen GenerationConfig) (planet.Definition, error) {
	low, err := ParseHexColor(p.LowColor)
	if err != nil {
		return planet.Definition{}, fmt.Errorf("planet %q low_color: %w", p.Name, err)
	}
	high, err := ParseHexColor(p.HighColor)
	if err != nil {
		return planet.Definition{}, fmt.Errorf("planet %q high_color: %w", p.Name, err)
	}
	return planet.Definition{
		Name:      p.Name,
		Radius:    p.Radius,
		Position:  math.Vec3{X: p.Position[0], Y: p.Position[1], Z: p.Position[2]},
		Noise:     gen.Noise,
		Seed:      gen.Seed + p.SeedOffset,
		Height:    p.Height,
		Color:     p.Color,
		LowColor:  low,
		HighColor: high,
	}, nil
}

// ParseHexColor parses "#rrggbb" (leading '#' optional) into a linear RGB
// triple with channels in [0, 1].
func ParseHexColor(s string) (planet.RGB, error) {
	hex := s
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return planet.RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	var rgb planet.RGB
	for i := 0; i < 3; i++ {
		hi, ok := hexNibble(hex[i*2])
		lo, ok2 := hexNibble(hex[i*2+1])
		if !ok || !ok2 {
			return planet.RGB{}, fmt.Errorf("invalid hex color %q", s)
		}
		rgb[i] = float32(hi<<4|lo) / 255
	}
	return rgb, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        60,
		},
		Generation: GenerationConfig{
			Seed:     1,
			Noise:    noise.KindSimplex,
			Epsilon:  5,
			Interval: 0.25,
		},
		Universe: UniverseConfig{
			Planets: []PlanetConfig{
				{
					Name:       "verda",
					Radius:     50,
					Position:   [3]float32{0, 0, -120},
					SeedOffset: 0,
					Height: noise.Params{
						Frequency:       0.05,
						OctaveScale:     2.0,
						Amplitude:       2.0,
						OctaveAmplitude: 0.5,
					},
					Color: noise.Params{
						Frequency:       0.8,
						OctaveScale:     2.0,
						Amplitude:       1.0,
						OctaveAmplitude: 0.5,
					},
					LowColor:  "#1f4f7a",
					HighColor: "#4a8f3c",
				},
				{
					Name:       "cinder",
					Radius:     30,
					Position:   [3]float32{200, 40, -300},
					SeedOffset: 1,
					Height: noise.Params{
						Frequency:       0.08,
						OctaveScale:     2.0,
						Amplitude:       1.5,
						OctaveAmplitude: 0.5,
					},
					Color: noise.Params{
						Frequency:       1.2,
						OctaveScale:     2.0,
						Amplitude:       1.0,
						OctaveAmplitude: 0.5,
					},
					LowColor:  "#6b3226",
					HighColor: "#d8c8a8",
				},
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
