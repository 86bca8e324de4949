// Package scene composes the blob, its decorations, lights and camera into
// a renderer-agnostic draw list.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfolio/internal/blob"
	"github.com/Faultbox/morphfolio/internal/engine/camera"
	"github.com/Faultbox/morphfolio/internal/engine/picking"
	"github.com/Faultbox/morphfolio/internal/logger"
	"github.com/Faultbox/morphfolio/internal/particles"
)

// Kind identifies the geometry a draw item refers to.
type Kind int

const (
	KindBlob Kind = iota
	KindCore
	KindSatellite
	KindParticle
)

func (k Kind) String() string {
	switch k {
	case KindBlob:
		return "blob"
	case KindCore:
		return "core"
	case KindSatellite:
		return "satellite"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// Material describes surface shading for a draw item.
type Material struct {
	Color             mgl32.Vec3
	Emissive          mgl32.Vec3
	EmissiveIntensity float32
	Metalness         float32
	Roughness         float32
	Opacity           float32
	Transparent       bool
}

// Materials used by the about-section blob and the particle field.
var (
	BlobMaterial = Material{
		Color:             mgl32.Vec3{0.486, 0.227, 0.929}, // #7c3aed
		Emissive:          mgl32.Vec3{0.298, 0.114, 0.584}, // #4c1d95
		EmissiveIntensity: 0.4,
		Metalness:         0.8,
		Roughness:         0.2,
		Opacity:           1,
	}
	CoreMaterial = Material{
		Color:             mgl32.Vec3{0.655, 0.545, 0.980}, // #a78bfa
		Emissive:          mgl32.Vec3{0.545, 0.361, 0.965}, // #8b5cf6
		EmissiveIntensity: 0.6,
		Metalness:         0.9,
		Roughness:         0.1,
		Opacity:           0.7,
		Transparent:       true,
	}
	SatelliteMaterial = Material{
		Color:             mgl32.Vec3{0.769, 0.710, 0.992}, // #c4b5fd
		Emissive:          mgl32.Vec3{0.545, 0.361, 0.965},
		EmissiveIntensity: 1,
		Roughness:         1,
		Opacity:           1,
	}
	ParticleMaterial = Material{
		Color:       mgl32.Vec3{0.388, 0.4, 0.945}, // #6366f1
		Metalness:   0.2,
		Roughness:   0.5,
		Opacity:     0.7,
		Transparent: true,
	}
)

// DrawItem is one instance to render.
type DrawItem struct {
	Kind     Kind
	Model    mgl32.Mat4
	Material Material
}

// AmbientLight lights every surface uniformly.
type AmbientLight struct {
	Intensity float32
}

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Position  mgl32.Vec3
	Intensity float32
}

// Direction returns the normalized direction the light travels.
func (l DirectionalLight) Direction() mgl32.Vec3 {
	if l.Position.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return l.Position.Mul(-1).Normalize()
}

// Options configures composition.
type Options struct {
	CameraPosition mgl32.Vec3
	CameraFOV      float32
	Controls       bool
	Interactive    bool

	// Zoom and Pan extend the orbit controls. The hero scene leaves both
	// off so page scrolling is never captured.
	Zoom bool
	Pan  bool
}

// DefaultOptions returns the hero scene settings.
func DefaultOptions() Options {
	return Options{
		CameraPosition: mgl32.Vec3{0, 0, 5},
		CameraFOV:      50,
		Controls:       true,
		Interactive:    true,
	}
}

// Scene is a composed frame graph.
type Scene struct {
	opts Options

	Camera      *camera.OrbitCamera
	Ambient     AmbientLight
	Directional DirectionalLight

	blob      *blob.Blob
	particles *particles.Field

	items   []DrawItem
	hovered bool
	log     *zap.Logger
}

// Compose builds a scene around b. field may be nil.
func Compose(opts Options, b *blob.Blob, field *particles.Field) *Scene {
	cam := camera.NewOrbitCamera(opts.CameraPosition, opts.CameraFOV)
	if opts.Controls {
		cam.EnableRotate = true
		cam.EnableZoom = opts.Zoom
		cam.EnablePan = opts.Pan
		cam.RotateSpeed = 0.5
		cam.MinPolar = math.Pi / 4
		cam.MaxPolar = math.Pi / 2
	}

	s := &Scene{
		opts:        opts,
		Camera:      cam,
		Ambient:     AmbientLight{Intensity: 0.5},
		Directional: DirectionalLight{Position: mgl32.Vec3{10, 10, 5}, Intensity: 1},
		blob:        b,
		particles:   field,
		log:         logger.Named("scene"),
	}
	return s
}

// Options returns the composition options.
func (s *Scene) Options() Options {
	return s.opts
}

// Blob returns the composed blob.
func (s *Scene) Blob() *blob.Blob {
	return s.blob
}

// Particles returns the particle field, or nil.
func (s *Scene) Particles() *particles.Field {
	return s.particles
}

// Update advances the blob and particles by dt seconds.
func (s *Scene) Update(dt float32) blob.Frame {
	f := s.blob.Frame(dt)
	if s.particles != nil {
		s.particles.Step(dt)
	}
	return f
}

// DrawList flattens the scene into draw items for the current frame. The
// returned slice is reused by the next call.
func (s *Scene) DrawList() []DrawItem {
	s.items = s.items[:0]

	group := s.blob.Transform()
	s.items = append(s.items, DrawItem{Kind: KindBlob, Model: group, Material: BlobMaterial})
	s.items = append(s.items, DrawItem{
		Kind:     KindCore,
		Model:    group.Mul4(mgl32.Scale3D(blob.CoreScale, blob.CoreScale, blob.CoreScale)),
		Material: CoreMaterial,
	})

	for _, sat := range s.blob.Satellites() {
		p := sat.Position
		s.items = append(s.items, DrawItem{
			Kind: KindSatellite,
			Model: group.Mul4(mgl32.Translate3D(p[0], p[1], p[2])).
				Mul4(mgl32.Scale3D(sat.Scale, sat.Scale, sat.Scale)),
			Material: SatelliteMaterial,
		})
	}

	if s.particles != nil {
		for _, m := range s.particles.Matrices() {
			s.items = append(s.items, DrawItem{Kind: KindParticle, Model: m, Material: ParticleMaterial})
		}
	}
	return s.items
}

// PickSphere is the hover target: the deformed blob surface at its
// current scale. Satellites do not trigger hover.
func (s *Scene) PickSphere() picking.Sphere {
	return picking.Sphere{Center: s.blob.Center(), Radius: s.blob.SurfaceRadius()}
}

// PickBounds is a box around the whole floating group, satellites
// included. Rays that miss it skip the sphere test.
func (s *Scene) PickBounds() picking.AABB {
	r := s.blob.BoundingRadius()
	c := s.blob.Center()
	return picking.NewAABB(c.Sub(mgl32.Vec3{r, r, r}), c.Add(mgl32.Vec3{r, r, r}))
}

// Pointer handles pointer motion at pixel (x, y) in a w x h viewport.
// It returns true when the hover state changed.
func (s *Scene) Pointer(x, y, w, h float32) bool {
	if !s.opts.Interactive || w <= 0 || h <= 0 {
		return false
	}
	hit := s.hit(x, y, w, h)
	if hit == s.hovered {
		return false
	}

	s.hovered = hit
	if hit {
		s.log.Debug("pointer enter")
		return s.blob.PointerEnter()
	}
	s.log.Debug("pointer leave")
	return s.blob.PointerLeave()
}

// PointerOut clears hover when the pointer leaves the viewport.
func (s *Scene) PointerOut() bool {
	if !s.hovered {
		return false
	}
	s.hovered = false
	return s.blob.PointerLeave()
}

// Click forwards a click at (x, y) to the blob when it is under the pointer.
func (s *Scene) Click(x, y, w, h float32) bool {
	if !s.opts.Interactive || w <= 0 || h <= 0 {
		return false
	}
	if !s.hit(x, y, w, h) {
		return false
	}
	s.blob.Click()
	return true
}

func (s *Scene) hit(x, y, w, h float32) bool {
	s.Camera.Aspect = w / h
	ray := picking.ScreenToRay(x, y, w, h, s.Camera.ViewProjection().Inv())
	if _, hit := ray.IntersectAABB(s.PickBounds()); !hit {
		return false
	}
	_, hit := ray.IntersectSphere(s.PickSphere())
	return hit
}

// Zoom dollies the camera by a wheel delta when zoom is enabled.
func (s *Scene) Zoom(delta float32) {
	if !s.opts.Controls {
		return
	}
	s.Camera.HandleZoom(delta)
}

// Pan shifts the orbit target by a pointer drag when pan is enabled.
func (s *Scene) Pan(dx, dy float32) {
	if !s.opts.Controls {
		return
	}
	s.Camera.HandlePan(-dx, dy)
}

// Drag orbits the camera when controls are enabled.
func (s *Scene) Drag(dx, dy, viewportHeight float32) {
	if !s.opts.Controls {
		return
	}
	s.Camera.HandleDrag(dx, dy, viewportHeight)
}
