// Package particles animates the field of small tumbling icosahedra that
// fills the page background.
package particles

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Particle is one instance of the field.
type Particle struct {
	Position      mgl32.Vec3
	Rotation      mgl32.Vec3 // Euler angles, radians, XYZ order
	RotationSpeed mgl32.Vec3 // radians per 60 Hz frame
	Scale         float32
}

// Field is a fixed set of particles whose rotation advances every frame.
type Field struct {
	Size      float32 // icosahedron radius
	particles []Particle
	matrices  []mgl32.Mat4
}

// NewField scatters count particles in a 10-unit cube around the origin.
// speed scales how fast each particle tumbles.
func NewField(seed int64, count int, size, speed float32) *Field {
	rng := rand.New(rand.NewSource(seed))
	f := &Field{
		Size:      size,
		particles: make([]Particle, count),
		matrices:  make([]mgl32.Mat4, count),
	}

	for i := range f.particles {
		f.particles[i] = Particle{
			Position: mgl32.Vec3{
				(rng.Float32() - 0.5) * 10,
				(rng.Float32() - 0.5) * 10,
				(rng.Float32() - 0.5) * 10,
			},
			Rotation: mgl32.Vec3{
				rng.Float32() * math.Pi,
				rng.Float32() * math.Pi,
				rng.Float32() * math.Pi,
			},
			Scale: rng.Float32()*0.5 + 0.5,
			RotationSpeed: mgl32.Vec3{
				(rng.Float32() - 0.5) * 0.01 * speed,
				(rng.Float32() - 0.5) * 0.01 * speed,
				(rng.Float32() - 0.5) * 0.01 * speed,
			},
		}
	}
	f.compose()
	return f
}

// Len returns the particle count.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns the particle state.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Step advances every particle's rotation by dt seconds and rebuilds the
// instance matrices in place.
func (f *Field) Step(dt float32) {
	frames := dt * 60
	for i := range f.particles {
		p := &f.particles[i]
		p.Rotation = p.Rotation.Add(p.RotationSpeed.Mul(frames))
	}
	f.compose()
}

// Matrices returns one model matrix per particle, valid until the next Step.
func (f *Field) Matrices() []mgl32.Mat4 {
	return f.matrices
}

func (f *Field) compose() {
	for i, p := range f.particles {
		q := mgl32.AnglesToQuat(p.Rotation[0], p.Rotation[1], p.Rotation[2], mgl32.XYZ)
		f.matrices[i] = mgl32.Translate3D(p.Position[0], p.Position[1], p.Position[2]).
			Mul4(q.Mat4()).
			Mul4(mgl32.Scale3D(p.Scale, p.Scale, p.Scale))
	}
}
