package noise

import (
	"fmt"

	"github.com/soycan-sim/space-game/pkg/math"
)

// Params describes the octave layering of a Field.
type Params struct {
	Frequency       float32 `yaml:"frequency"`
	OctaveScale     float32 `yaml:"octave_scale"`
	Amplitude       float32 `yaml:"amplitude"`
	OctaveAmplitude float32 `yaml:"octave_amplitude"`
	Offset          float32 `yaml:"offset"`
	AllowNegative   bool    `yaml:"allow_negative"`
}

// DefaultParams returns a gentle rolling-terrain layering.
func DefaultParams() Params {
	return Params{
		Frequency:       0.05,
		OctaveScale:     2.0,
		Amplitude:       1.0,
		OctaveAmplitude: 0.5,
		Offset:          0,
		AllowNegative:   false,
	}
}

// Field sums octaves of a Source into a scalar field over 3D space.
// Octave i evaluates the source at p*Frequency*OctaveScale^i and weighs it by
// Amplitude*OctaveAmplitude^i. Unless AllowNegative is set, each octave is
// remapped from [-1, 1] to [0, 1] before weighing. Offset is added once.
type Field struct {
	Source Source
	Params
}

// NewField wraps a source with octave parameters.
func NewField(src Source, p Params) Field {
	return Field{Source: src, Params: p}
}

// Sample evaluates the field at p with the given number of octaves.
// detail 0 yields exactly Offset. Negative detail is a programming error.
func (f Field) Sample(p math.Vec3, detail int) float32 {
	if detail < 0 {
		panic(fmt.Sprintf("noise: negative detail %d", detail))
	}
	freq := f.Frequency
	amp := f.Amplitude
	total := f.Offset
	for i := 0; i < detail; i++ {
		n := float32(f.Source.Eval3(
			float64(p.X*freq),
			float64(p.Y*freq),
			float64(p.Z*freq),
		))
		if !f.AllowNegative {
			n = (n + 1) / 2
		}
		total += n * amp
		freq *= f.OctaveScale
		amp *= f.OctaveAmplitude
	}
	return total
}
