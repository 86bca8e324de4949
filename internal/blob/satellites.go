package blob

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Satellite is a small decorative point orbiting the blob.
type Satellite struct {
	Position mgl32.Vec3
	Scale    float32
}

// GenerateSatellites places count points uniformly on a spherical shell of
// radius [1.2, 1.5] with scale [0.03, 0.06]. A negative count yields no
// points. The same seed always yields
// the same points, so they are generated once and never re-rolled.
func GenerateSatellites(seed int64, count int) []Satellite {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Satellite, max(count, 0))
	for i := range out {
		theta := rng.Float64() * math.Pi * 2
		phi := math.Acos(2*rng.Float64() - 1)
		radius := 1.2 + rng.Float64()*0.3

		out[i] = Satellite{
			Position: mgl32.Vec3{
				float32(radius * math.Sin(phi) * math.Cos(theta)),
				float32(radius * math.Sin(phi) * math.Sin(theta)),
				float32(radius * math.Cos(phi)),
			},
			Scale: float32(0.03 + rng.Float64()*0.03),
		}
	}
	return out
}
