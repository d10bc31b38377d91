// Package lighting provides light sources for scene rendering.
package lighting

import "math"

// DefaultAmbient is the ambient term applied when no value is configured,
// enough to keep night sides readable.
const DefaultAmbient = 0.15

// Star is the scene's light source. Planets are lit per-fragment from its
// world position.
type Star struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Intensity float32    // Light intensity multiplier
	Ambient   float32    // Ambient floor (0-1 range)
}

// NewStar creates a white star at the given position.
func NewStar(position [3]float32) Star {
	return Star{
		Position:  position,
		Color:     [3]float32{1, 1, 1},
		Intensity: 1.0,
		Ambient:   DefaultAmbient,
	}
}

// StarDirection converts longitude/latitude angles in degrees to a direction
// vector. Longitude is rotation around the Y axis (0-360), latitude is
// elevation from the horizon (0-90). Returns a normalized direction pointing
// towards the star.
func StarDirection(longitude, latitude float32) [3]float32 {
	// Convert degrees to radians
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	// Spherical to Cartesian conversion
	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return [3]float32{x, y, z}
}
