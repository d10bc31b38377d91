// Package noise provides seeded 3D noise sources and octave-layered fields
// used to shape planet surfaces.
package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Supported source kinds.
const (
	KindSimplex = "simplex"
	KindPerlin  = "perlin"
)

// Perlin generator shape parameters.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// Source is a deterministic 3D noise primitive with output in roughly [-1, 1].
type Source interface {
	Eval3(x, y, z float64) float64
}

// NewSource creates a seeded noise source of the given kind.
func NewSource(kind string, seed int64) (Source, error) {
	switch kind {
	case KindSimplex:
		return opensimplex.New(seed), nil
	case KindPerlin:
		return perlinSource{perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}, nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", kind)
	}
}

type perlinSource struct {
	p *perlin.Perlin
}

func (s perlinSource) Eval3(x, y, z float64) float64 {
	return s.p.Noise3D(x, y, z)
}
