package blob

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/morphfolio/pkg/mesh"
	"github.com/Faultbox/morphfolio/pkg/noise"
)

func approxVec(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

// constSampler returns the same noise value everywhere.
type constSampler float32

func (c constSampler) Eval3f(x, y, z float32) float32 { return float32(c) }

// recordingSampler remembers the last coordinates it was sampled at.
type recordingSampler struct {
	calls   int
	x, y, z float32
}

func (r *recordingSampler) Eval3f(x, y, z float32) float32 {
	r.calls++
	r.x, r.y, r.z = x, y, z
	return 0.5
}

func TestNewDeformerEmpty(t *testing.T) {
	if _, err := NewDeformer(nil, nil, 1); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("nil mesh error = %v, want ErrEmptyMesh", err)
	}
	if _, err := NewDeformer(&mesh.Mesh{}, nil, 1); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("empty mesh error = %v, want ErrEmptyMesh", err)
	}
}

func TestDeformSkippedUntilReady(t *testing.T) {
	m := mesh.Icosphere(1, 1)
	d, err := NewDeformer(m, nil, 0.5)
	if err != nil {
		t.Fatalf("NewDeformer: %v", err)
	}

	if d.Deform(1, 0.3, 3) {
		t.Error("Deform ran without a sampler")
	}
	if d.Version() != 0 {
		t.Errorf("version bumped by skipped pass: %d", d.Version())
	}
	for i, p := range d.Positions() {
		if p != m.Positions[i] {
			t.Fatalf("skipped pass modified vertex %d", i)
		}
	}

	d.SetSampler(constSampler(1))
	if !d.Deform(1, 0.3, 3) {
		t.Fatal("Deform did not run once the sampler was set")
	}
	if d.Version() != 1 {
		t.Errorf("version = %d, want 1", d.Version())
	}
}

func TestDeformFormulaWiring(t *testing.T) {
	// speed 0.5, complexity 3, idle intensity 0.3, elapsed 0:
	// rest (1,0,0) must land on (1 + noise(3,0,0)*0.3, 0, 0).
	m := &mesh.Mesh{
		Positions: []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Indices:   []uint32{0, 1, 2},
	}
	gen := noise.New(2024)
	d, err := NewDeformer(m, gen, 0.5)
	if err != nil {
		t.Fatalf("NewDeformer: %v", err)
	}

	if !d.Deform(0, 0.3, 3) {
		t.Fatal("Deform skipped")
	}

	want := mgl32.Vec3{1 + gen.Eval3f(3, 0, 0)*0.3, 0, 0}
	if got := d.Positions()[0]; !approxVec(got, want, 1e-6) {
		t.Errorf("displaced (1,0,0) = %v, want %v", got, want)
	}
}

func TestDeformSampleCoordinates(t *testing.T) {
	m := &mesh.Mesh{Positions: []mgl32.Vec3{{0, 2, 0}}}
	rec := &recordingSampler{}
	d, _ := NewDeformer(m, rec, 0.5)

	d.Deform(4, 0.2, 3)

	// n = (0,1,0), t = 4 * 0.5 = 2
	if rec.x != 2 || rec.y != 5 || rec.z != 2 {
		t.Errorf("sampled at (%f, %f, %f), want (2, 5, 2)", rec.x, rec.y, rec.z)
	}
	// 2 + 1 * 0.5 * 0.2
	if got := d.Positions()[0]; !approxVec(got, mgl32.Vec3{0, 2.1, 0}, 1e-5) {
		t.Errorf("position = %v, want (0, 2.1, 0)", got)
	}
}

func TestDeformInvariants(t *testing.T) {
	m := mesh.Icosphere(1, 3)
	d, err := NewDeformer(m, noise.New(11), 0.5)
	if err != nil {
		t.Fatalf("NewDeformer: %v", err)
	}

	const bound = 0.8
	restCopy := append([]mgl32.Vec3(nil), d.Rest()...)

	for frame := 0; frame < 120; frame++ {
		elapsed := float32(frame) / 60
		intensity := float32(0.3 + 0.5*float64(frame%60)/59)
		d.Deform(elapsed, intensity, 4.5)

		if len(d.Positions()) != len(d.Rest()) {
			t.Fatalf("frame %d: working length %d != rest length %d", frame, len(d.Positions()), len(d.Rest()))
		}
		for i, p := range d.Positions() {
			if disp := p.Sub(d.Rest()[i]).Len(); disp > bound+1e-5 {
				t.Fatalf("frame %d vertex %d displaced %f > %f", frame, i, disp, bound)
			}
		}
	}

	for i := range restCopy {
		if restCopy[i] != d.Rest()[i] {
			t.Fatalf("rest vertex %d was modified", i)
		}
	}
}

func TestDeformRecomputesNormals(t *testing.T) {
	m := mesh.Icosphere(1, 2)
	d, _ := NewDeformer(m, constSampler(1), 1)

	d.Deform(0, 0.5, 1)

	// A uniform outward push keeps the sphere round, so normals stay radial.
	for i, n := range d.Normals() {
		if n.Dot(d.Rest()[i]) < 0.95 {
			t.Fatalf("normal %d not radial after uniform displacement: %v", i, n)
		}
	}
	if got := d.Positions()[0].Len(); math.Abs(float64(got-1.5)) > 1e-5 {
		t.Errorf("uniformly displaced radius = %f, want 1.5", got)
	}
}

func TestDeformUpdatesBounds(t *testing.T) {
	d, _ := NewDeformer(mesh.Icosphere(1, 2), constSampler(1), 1)
	if got := d.Bounds().Extent(); math.Abs(float64(got-1)) > 1e-5 {
		t.Errorf("rest extent = %f, want 1", got)
	}

	d.Deform(0, 0.5, 1)
	if got := d.Bounds().Extent(); math.Abs(float64(got-1.5)) > 1e-5 {
		t.Errorf("extent after push = %f, want 1.5", got)
	}

	d.SetSampler(constSampler(-1))
	d.Deform(0, 0.5, 1)
	if got := d.Bounds().Extent(); math.Abs(float64(got-0.5)) > 1e-5 {
		t.Errorf("extent after pull = %f, want 0.5", got)
	}
}

func TestDeformDegenerateVertex(t *testing.T) {
	m := &mesh.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	d, err := NewDeformer(m, constSampler(1), 1)
	if err != nil {
		t.Fatalf("NewDeformer: %v", err)
	}
	if d.Degenerate() != 1 {
		t.Errorf("Degenerate = %d, want 1", d.Degenerate())
	}

	d.Deform(1, 0.8, 3)

	origin := d.Positions()[0]
	if origin != (mgl32.Vec3{}) {
		t.Errorf("origin vertex moved to %v", origin)
	}
	for i, p := range d.Positions() {
		for k := 0; k < 3; k++ {
			if math.IsNaN(float64(p[k])) {
				t.Fatalf("vertex %d has NaN component", i)
			}
		}
	}
}

func TestGenerateSatellitesStable(t *testing.T) {
	a := GenerateSatellites(5, 20)
	b := GenerateSatellites(5, 20)

	if len(a) != 20 {
		t.Fatalf("got %d satellites, want 20", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("satellite %d differs between runs with the same seed", i)
		}
		r := a[i].Position.Len()
		if r < 1.2-1e-5 || r > 1.5+1e-5 {
			t.Errorf("satellite %d radius %f outside [1.2, 1.5]", i, r)
		}
		if a[i].Scale < 0.03 || a[i].Scale > 0.06 {
			t.Errorf("satellite %d scale %f outside [0.03, 0.06]", i, a[i].Scale)
		}
	}
}

func TestGenerateSatellitesNegativeCount(t *testing.T) {
	if got := GenerateSatellites(5, -1); len(got) != 0 {
		t.Errorf("got %d satellites for a negative count, want 0", len(got))
	}
}

func TestNewRejectsOutOfRangeDetail(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"subdivisions too high", func(o *Options) { o.Subdivisions = MaxSubdivisions + 1 }},
		{"negative subdivisions", func(o *Options) { o.Subdivisions = -1 }},
		{"core subdivisions too high", func(o *Options) { o.CoreSubdivisions = 40 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			if _, err := New(opts); err == nil {
				t.Error("expected error")
			}
		})
	}

	opts := DefaultOptions()
	opts.Subdivisions = 1
	opts.Satellites = -3
	b, err := New(opts)
	if err != nil {
		t.Fatalf("New with negative satellites: %v", err)
	}
	if len(b.Satellites()) != 0 {
		t.Errorf("got %d satellites, want 0", len(b.Satellites()))
	}
}

func TestBlobFrameLifecycle(t *testing.T) {
	opts := DefaultOptions()
	opts.Subdivisions = 2
	b, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if f := b.Frame(1.0 / 60); f.Deformed {
		t.Error("unmounted blob deformed")
	}

	b.Mount()
	f := b.Frame(1.0 / 60)
	if !f.Deformed {
		t.Fatal("mounted blob did not deform")
	}
	if f.Frequency != 3 {
		t.Errorf("idle frequency = %f, want 3", f.Frequency)
	}
	if math.Abs(f.Values.MorphIntensity-0.3) > 1e-9 {
		t.Errorf("idle intensity = %f, want 0.3", f.Values.MorphIntensity)
	}

	b.PointerEnter()
	f = b.Frame(1.0 / 60)
	if f.Frequency != 4.5 {
		t.Errorf("hovered frequency = %f, want 4.5", f.Frequency)
	}
	if f.Values.MorphIntensity <= 0.3 {
		t.Errorf("hovered intensity did not start rising: %f", f.Values.MorphIntensity)
	}

	b.Unmount()
	before := b.Deformer().Version()
	b.Frame(1.0 / 60)
	if b.Deformer().Version() != before {
		t.Error("unmounted blob kept deforming")
	}
	if b.Animator().Float().Active() {
		t.Error("float loop still active after unmount")
	}
}

func TestBlobHoverOrderingUsesCurrentFrame(t *testing.T) {
	opts := DefaultOptions()
	opts.Subdivisions = 1
	b, _ := New(opts)
	b.Mount()
	b.Frame(1.0 / 60)

	b.PointerEnter()
	f := b.Frame(1.0 / 60)

	// The frame must report the intensity the springs reached in this step.
	if f.Values != b.Animator().Values() {
		t.Errorf("frame values %+v differ from animator %+v", f.Values, b.Animator().Values())
	}
}

func TestBlobClick(t *testing.T) {
	clicks := 0
	opts := DefaultOptions()
	opts.Subdivisions = 0
	opts.OnClick = func() { clicks++ }

	b, _ := New(opts)
	b.Click()
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	opts.Interactive = false
	passive, _ := New(opts)
	passive.Click()
	if clicks != 1 {
		t.Error("passive blob fired click callback")
	}
	if passive.PointerEnter() {
		t.Error("passive blob accepted hover")
	}
}

func TestBlobTransform(t *testing.T) {
	opts := DefaultOptions()
	opts.Subdivisions = 0
	opts.Position = mgl32.Vec3{1, 2, 3}
	b, _ := New(opts)

	m := b.Transform()
	if c := b.Center(); !approxVec(c, mgl32.Vec3{1, 2, 3}, 1e-5) {
		t.Errorf("center = %v, want (1,2,3)", c)
	}
	// Idle scale 1 times blob scale 1.5, no rotation yet.
	if got := m.Col(0).Vec3().Len(); math.Abs(float64(got-1.5)) > 1e-5 {
		t.Errorf("transform scale = %f, want 1.5", got)
	}
	if r := b.BoundingRadius(); r < 1.5*1.8-1e-4 {
		t.Errorf("bounding radius %f smaller than max displaced surface", r)
	}
}

func TestSurfaceRadiusFollowsDeformation(t *testing.T) {
	opts := DefaultOptions()
	opts.Subdivisions = 2
	b, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := b.SurfaceRadius(); math.Abs(float64(got-1.5)) > 1e-4 {
		t.Errorf("undeformed surface radius = %f, want 1.5", got)
	}

	b.Mount()
	defer b.Unmount()
	for i := 0; i < 30; i++ {
		b.Frame(1.0 / 60)
		r := b.SurfaceRadius()
		if r <= 0 || r > b.BoundingRadius() {
			t.Fatalf("frame %d: surface radius %f outside (0, %f]", i, r, b.BoundingRadius())
		}
	}
}

func TestTransformAddsFloatAfterScale(t *testing.T) {
	opts := DefaultOptions()
	opts.Subdivisions = 0
	b, _ := New(opts)
	b.Mount()
	defer b.Unmount()
	for i := 0; i < 20; i++ {
		b.Frame(1.0 / 60)
	}

	off := float32(b.Animator().Values().FloatOffset)
	if got := b.Transform().Col(3).Y(); math.Abs(float64(got-off)) > 1e-5 {
		t.Errorf("translation y = %f, want unscaled float offset %f", got, off)
	}
}
