// Package blob implements the morphing blob: a noise-displaced icosphere
// driven by hover/float animation.
package blob

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/morphfolio/pkg/mesh"
	"github.com/Faultbox/morphfolio/pkg/noise"
)

// Errors returned when building a deformer.
var (
	ErrEmptyMesh = errors.New("blob: mesh has no vertices")
)

// Sampler is the noise source the deformer reads from.
type Sampler interface {
	Eval3f(x, y, z float32) float32
}

var _ Sampler = (*noise.Generator)(nil)

// Deformer displaces a mesh's rest positions along their radial directions.
//
// The rest buffer is written once in NewDeformer and only read afterwards.
// Positions and normals are pre-sized arenas overwritten on every pass.
type Deformer struct {
	rest    []mgl32.Vec3
	dirs    []mgl32.Vec3 // unit radial direction per rest vertex, zero if degenerate
	indices []uint32

	positions []mgl32.Vec3
	normals   []mgl32.Vec3

	bounds mesh.Bounds

	sampler    Sampler
	speed      float32
	degenerate int
	version    uint64
}

// NewDeformer captures the rest positions of m. The mesh is not retained.
// A nil sampler is allowed; passes are skipped until SetSampler is called.
func NewDeformer(m *mesh.Mesh, sampler Sampler, speed float32) (*Deformer, error) {
	if m == nil || len(m.Positions) == 0 {
		return nil, ErrEmptyMesh
	}

	n := len(m.Positions)
	d := &Deformer{
		rest:      make([]mgl32.Vec3, n),
		dirs:      make([]mgl32.Vec3, n),
		indices:   make([]uint32, len(m.Indices)),
		positions: make([]mgl32.Vec3, n),
		normals:   make([]mgl32.Vec3, n),
		sampler:   sampler,
		speed:     speed,
	}
	copy(d.rest, m.Positions)
	copy(d.positions, m.Positions)
	copy(d.indices, m.Indices)

	for i, p := range d.rest {
		l := p.Len()
		if l == 0 {
			// The origin has no radial direction; it is left undisplaced.
			d.degenerate++
			continue
		}
		d.dirs[i] = p.Mul(1 / l)
	}

	mesh.ComputeNormals(d.normals, d.positions, d.indices)
	d.bounds = mesh.ComputeBounds(d.positions)
	return d, nil
}

// SetSampler installs the noise source once it becomes available.
func (d *Deformer) SetSampler(s Sampler) {
	d.sampler = s
}

// Ready reports whether a pass would run.
func (d *Deformer) Ready() bool {
	return d != nil && d.sampler != nil && len(d.rest) > 0
}

// Deform recomputes every working position from the rest buffer:
//
//	t = elapsed * speed
//	n = rest / |rest|
//	pos = rest + n * noise(n*frequency + t) * intensity
//
// then recomputes normals and bounds and bumps the version. Returns false without
// touching any buffer when the deformer is not ready yet.
func (d *Deformer) Deform(elapsed, intensity, frequency float32) bool {
	if !d.Ready() {
		return false
	}

	t := elapsed * d.speed
	for i, r := range d.rest {
		n := d.dirs[i]
		if n == (mgl32.Vec3{}) {
			d.positions[i] = r
			continue
		}
		s := d.sampler.Eval3f(n[0]*frequency+t, n[1]*frequency+t, n[2]*frequency+t)
		d.positions[i] = r.Add(n.Mul(s * intensity))
	}

	mesh.ComputeNormals(d.normals, d.positions, d.indices)
	d.bounds = mesh.ComputeBounds(d.positions)
	d.version++
	return true
}

// Rest returns the immutable rest positions. Callers must not modify it.
func (d *Deformer) Rest() []mgl32.Vec3 {
	return d.rest
}

// Positions returns the working positions of the last pass.
func (d *Deformer) Positions() []mgl32.Vec3 {
	return d.positions
}

// Normals returns the vertex normals of the last pass.
func (d *Deformer) Normals() []mgl32.Vec3 {
	return d.normals
}

// Indices returns the triangle indices.
func (d *Deformer) Indices() []uint32 {
	return d.indices
}

// Bounds returns the local bounding box of the working positions.
func (d *Deformer) Bounds() mesh.Bounds {
	return d.bounds
}

// Degenerate returns how many rest vertices sit at the origin.
func (d *Deformer) Degenerate() int {
	return d.degenerate
}

// Version increments after every completed pass; renderers compare it to
// decide whether the vertex buffer needs uploading.
func (d *Deformer) Version() uint64 {
	return d.version
}
