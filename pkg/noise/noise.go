// Package noise provides seeded, continuous 3D scalar noise.
package noise

import (
	"github.com/ojrac/opensimplex-go"
)

// Source is anything that can be sampled as a 3D scalar field.
type Source interface {
	Eval3(x, y, z float64) float64
}

// Generator samples OpenSimplex noise for a fixed seed.
// Output is in [-1, 1] and identical for identical inputs.
type Generator struct {
	seed  int64
	noise opensimplex.Noise
}

// New creates a generator seeded once for its lifetime.
func New(seed int64) *Generator {
	return &Generator{
		seed:  seed,
		noise: opensimplex.New(seed),
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Eval3 returns the noise value at (x, y, z).
func (g *Generator) Eval3(x, y, z float64) float64 {
	v := g.noise.Eval3(x, y, z)
	// opensimplex can overshoot the unit range by a tiny margin.
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Eval3f is Eval3 for float32 coordinates, as used by mesh code.
func (g *Generator) Eval3f(x, y, z float32) float32 {
	return float32(g.Eval3(float64(x), float64(y), float64(z)))
}
