// Package lod maps viewpoint distance to subdivision depth through ordered
// tier tables.
package lod

import "fmt"

// Tier grants a subdivision depth to anything within its distance threshold.
type Tier struct {
	Distance float32 `yaml:"distance"`
	Depth    int     `yaml:"depth"`
}

// Tiers is scanned in order and the first tier whose threshold contains the
// queried distance wins, so tables must ascend by distance (nearest and
// deepest first).
type Tiers []Tier

// New validates the tier table and returns it.
func New(tiers ...Tier) (Tiers, error) {
	t := Tiers(tiers)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks thresholds are positive and strictly ascending and depths
// are non-negative.
func (t Tiers) Validate() error {
	for i, tier := range t {
		if tier.Distance <= 0 {
			return fmt.Errorf("lod: tier %d distance %v must be positive", i, tier.Distance)
		}
		if tier.Depth < 0 {
			return fmt.Errorf("lod: tier %d depth %d must not be negative", i, tier.Depth)
		}
		if i > 0 && tier.Distance <= t[i-1].Distance {
			return fmt.Errorf("lod: tier %d distance %v must ascend past %v", i, tier.Distance, t[i-1].Distance)
		}
	}
	return nil
}

// DepthFor returns the depth of the first tier containing d, or false when d
// lies beyond every threshold.
func (t Tiers) DepthFor(d float32) (int, bool) {
	for _, tier := range t {
		if d <= tier.Distance {
			return tier.Depth, true
		}
	}
	return 0, false
}

// MaxDepth returns the deepest subdivision any tier grants.
func (t Tiers) MaxDepth() int {
	max := 0
	for _, tier := range t {
		if tier.Depth > max {
			max = tier.Depth
		}
	}
	return max
}

// DefaultSurfaceTiers returns the fine-grained table used below the
// atmosphere boundary.
func DefaultSurfaceTiers() Tiers {
	return Tiers{
		{Distance: 5, Depth: 9},
		{Distance: 10, Depth: 8},
		{Distance: 20, Depth: 7},
		{Distance: 45, Depth: 6},
		{Distance: 100, Depth: 5},
		{Distance: 250, Depth: 4},
	}
}

// DefaultFarTiers returns the coarse table for whole-planet meshes seen from
// space.
func DefaultFarTiers() Tiers {
	return Tiers{
		{Distance: 200, Depth: 6},
		{Distance: 500, Depth: 5},
		{Distance: 1200, Depth: 4},
		{Distance: 3000, Depth: 3},
		{Distance: 8000, Depth: 2},
	}
}
