package blob

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfolio/internal/anim"
	"github.com/Faultbox/morphfolio/internal/logger"
	"github.com/Faultbox/morphfolio/pkg/mesh"
	"github.com/Faultbox/morphfolio/pkg/noise"
)

// Options configures a blob.
type Options struct {
	Seed             int64
	Speed            float32
	Complexity       float32
	Scale            float32
	Position         mgl32.Vec3
	Subdivisions     int
	CoreSubdivisions int
	FloatIntensity   float32
	Satellites       int
	Interactive      bool
	OnClick          func()
}

// DefaultOptions mirrors the hero section's blob.
func DefaultOptions() Options {
	return Options{
		Seed:             1,
		Speed:            0.5,
		Complexity:       3,
		Scale:            1.5,
		Subdivisions:     4,
		CoreSubdivisions: 2,
		FloatIntensity:   0.3,
		Satellites:       20,
		Interactive:      true,
	}
}

// CoreScale is the size of the inner static core relative to the blob.
const CoreScale = 0.6

// Frame is what one animation tick produced.
type Frame struct {
	Elapsed   float32
	Values    anim.Values
	Deformed  bool
	Frequency float32
}

// Blob ties the animator, deformer, inner core and satellites together.
type Blob struct {
	opts Options

	animator   *anim.Animator
	deformer   *Deformer
	core       *mesh.Mesh
	satellites []Satellite

	elapsed float32
	last    Frame
	mounted bool
}

// MaxSubdivisions bounds icosphere detail; level 6 already has 40962
// vertices.
const MaxSubdivisions = 6

// New builds the blob geometry and its animation state. The blob is not
// animated until Mount is called.
func New(opts Options) (*Blob, error) {
	for _, n := range []int{opts.Subdivisions, opts.CoreSubdivisions} {
		if n < 0 || n > MaxSubdivisions {
			return nil, fmt.Errorf("subdivisions %d outside 0..%d", n, MaxSubdivisions)
		}
	}

	sphere := mesh.Icosphere(1, opts.Subdivisions)
	def, err := NewDeformer(sphere, nil, opts.Speed)
	if err != nil {
		return nil, fmt.Errorf("creating deformer: %w", err)
	}
	if def.Degenerate() > 0 {
		logger.Warn("blob mesh has vertices at the origin; they will not be displaced",
			zap.Int("count", def.Degenerate()))
	}

	b := &Blob{
		opts: opts,
		animator: anim.New(anim.Config{
			Interactive:    opts.Interactive,
			FloatIntensity: float64(opts.FloatIntensity),
		}),
		deformer:   def,
		core:       mesh.Icosphere(1, opts.CoreSubdivisions),
		satellites: GenerateSatellites(opts.Seed, opts.Satellites),
	}

	logger.Debug("blob created",
		zap.Int("vertices", sphere.VertexCount()),
		zap.Int("triangles", sphere.TriangleCount()),
		zap.Int("satellites", len(b.satellites)),
		zap.Int64("seed", opts.Seed))
	return b, nil
}

// Mount seeds the noise generator and starts the float loop.
func (b *Blob) Mount() {
	if b.mounted {
		return
	}
	b.deformer.SetSampler(noise.New(b.opts.Seed))
	b.animator.Start()
	b.mounted = true
}

// Unmount stops all animation. Frame becomes a no-op until mounted again.
func (b *Blob) Unmount() {
	b.animator.Stop()
	b.deformer.SetSampler(nil)
	b.mounted = false
}

// Mounted reports whether the blob is animating.
func (b *Blob) Mounted() bool {
	return b.mounted
}

// Frame advances the blob by dt seconds. Springs are stepped first so the
// deformation pass uses this frame's eased values.
func (b *Blob) Frame(dt float32) Frame {
	if !b.mounted {
		return b.last
	}
	b.elapsed += dt
	values := b.animator.Step(float64(dt))

	freq := b.opts.Complexity * float32(values.FrequencyScale)
	deformed := b.deformer.Deform(b.elapsed, float32(values.MorphIntensity), freq)

	b.last = Frame{
		Elapsed:   b.elapsed,
		Values:    values,
		Deformed:  deformed,
		Frequency: freq,
	}
	return b.last
}

// PointerEnter marks the blob hovered if it is interactive.
func (b *Blob) PointerEnter() bool {
	return b.animator.Pointer(anim.PointerEnter)
}

// PointerLeave clears the hover state.
func (b *Blob) PointerLeave() bool {
	return b.animator.Pointer(anim.PointerLeave)
}

// Click invokes the click callback of an interactive blob.
func (b *Blob) Click() {
	if b.opts.Interactive && b.opts.OnClick != nil {
		b.opts.OnClick()
	}
}

// Hovered reports the current hover state.
func (b *Blob) Hovered() bool {
	return b.animator.State() == anim.Hovered
}

// Transform returns the floating group's model matrix:
// translate(position + float offset) * rotateY * scale(blob scale * hover scale).
func (b *Blob) Transform() mgl32.Mat4 {
	v := b.animator.Values()
	pos := b.opts.Position.Add(mgl32.Vec3{0, float32(v.FloatOffset), 0})
	s := b.opts.Scale * float32(v.Scale)
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl32.HomogRotate3DY(float32(v.RotationY))).
		Mul4(mgl32.Scale3D(s, s, s))
}

// SurfaceRadius is the world-space extent of the deformed surface alone,
// without the satellites.
func (b *Blob) SurfaceRadius() float32 {
	return b.deformer.Bounds().Extent() * b.opts.Scale * float32(b.animator.Values().Scale)
}

// BoundingRadius is the world-space radius that encloses the blob and
// its satellites at the current scale.
func (b *Blob) BoundingRadius() float32 {
	r := float32(1 + anim.MaxMorphIntensity())
	for _, s := range b.satellites {
		if l := s.Position.Len() + s.Scale; l > r {
			r = l
		}
	}
	return r * b.opts.Scale * float32(b.animator.Values().Scale)
}

// Center returns the world-space center of the floating group.
func (b *Blob) Center() mgl32.Vec3 {
	return b.Transform().Col(3).Vec3()
}

// Deformer exposes the deformed surface.
func (b *Blob) Deformer() *Deformer {
	return b.deformer
}

// Core returns the inner static mesh (unit radius, drawn at CoreScale).
func (b *Blob) Core() *mesh.Mesh {
	return b.core
}

// Satellites returns the decorative points.
func (b *Blob) Satellites() []Satellite {
	return b.satellites
}

// Animator exposes the hover/float state.
func (b *Blob) Animator() *anim.Animator {
	return b.animator
}

// Options returns the options the blob was built with.
func (b *Blob) Options() Options {
	return b.opts
}

// Last returns the most recent frame.
func (b *Blob) Last() Frame {
	return b.last
}
