package anim

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"
)

func TestSpringConfigConversion(t *testing.T) {
	omega := HoverSpring.AngularFrequency()
	if math.Abs(omega-math.Sqrt(280)) > 1e-9 {
		t.Errorf("AngularFrequency = %f, want sqrt(280)", omega)
	}
	zeta := HoverSpring.DampingRatio()
	if zeta <= 1 {
		t.Errorf("HoverSpring damping ratio = %f, expected overdamped (> 1)", zeta)
	}
	if z := FloatSpring.DampingRatio(); z >= 1 {
		t.Errorf("FloatSpring damping ratio = %f, expected underdamped (< 1)", z)
	}
}

func TestValueConverges(t *testing.T) {
	v := NewValue(HoverSpring, 0.3)
	v.SetTarget(0.8)

	prev := v.Get()
	for i := 0; i < 600; i++ {
		cur := v.Step(1.0 / 60)
		if cur < prev-1e-12 {
			t.Fatalf("overdamped spring moved away from target at step %d: %f -> %f", i, prev, cur)
		}
		if cur > 0.8+1e-9 {
			t.Fatalf("overdamped spring overshot target: %f", cur)
		}
		prev = cur
	}
	if !v.AtRest(1e-3) {
		t.Errorf("value did not settle: pos=%f vel=%f", v.Get(), v.Velocity())
	}
}

func TestValueZeroStep(t *testing.T) {
	v := NewValue(HoverSpring, 1)
	v.SetTarget(2)
	if got := v.Step(0); got != 1 {
		t.Errorf("Step(0) = %f, want unchanged 1", got)
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name        string
		from        HoverState
		ev          PointerEvent
		interactive bool
		want        HoverState
	}{
		{"enter idle", Idle, PointerEnter, true, Hovered},
		{"enter hovered", Hovered, PointerEnter, true, Hovered},
		{"leave hovered", Hovered, PointerLeave, true, Idle},
		{"leave idle", Idle, PointerLeave, true, Idle},
		{"enter passive", Idle, PointerEnter, false, Idle},
		{"leave passive", Hovered, PointerLeave, false, Hovered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transition(tt.from, tt.ev, tt.interactive); got != tt.want {
				t.Errorf("Transition(%v, %v, %v) = %v, want %v", tt.from, tt.ev, tt.interactive, got, tt.want)
			}
		})
	}
}

func TestTargetsFor(t *testing.T) {
	idle := TargetsFor(Idle)
	if idle.MorphIntensity != 0.3 || idle.RotationSpeed != 0.1 {
		t.Errorf("idle targets = %+v", idle)
	}
	hov := TargetsFor(Hovered)
	if hov.MorphIntensity != 0.8 || hov.RotationSpeed != 0.2 {
		t.Errorf("hovered targets = %+v", hov)
	}
	if MaxMorphIntensity() != 0.8 {
		t.Errorf("MaxMorphIntensity = %f, want 0.8", MaxMorphIntensity())
	}
}

func TestHoverEnterIdempotent(t *testing.T) {
	a := New(Config{Interactive: true, FloatIntensity: 0.3})

	if !a.Pointer(PointerEnter) {
		t.Fatal("first enter should change state")
	}
	a.Step(0.05)
	before := a.Values()

	for i := 0; i < 5; i++ {
		if a.Pointer(PointerEnter) {
			t.Fatalf("repeated enter %d changed state", i)
		}
	}
	if a.Retargets() != 1 {
		t.Errorf("Retargets = %d, want 1", a.Retargets())
	}
	if a.morph.Target() != 0.8 || a.rotation.Target() != 0.2 {
		t.Errorf("targets changed by repeated enter: morph=%f rotation=%f", a.morph.Target(), a.rotation.Target())
	}
	if after := a.Values(); after != before {
		t.Errorf("repeated enter changed values: %+v -> %+v", before, after)
	}
}

func TestNonInteractiveIgnoresPointer(t *testing.T) {
	a := New(Config{Interactive: false})
	if a.SetHovered(true) {
		t.Error("non-interactive animator changed state on hover")
	}
	if a.State() != Idle {
		t.Errorf("state = %v, want idle", a.State())
	}
}

func TestMorphIntensityBounded(t *testing.T) {
	a := New(Config{Interactive: true, FloatIntensity: 1})
	a.Start()
	defer a.Stop()

	// Flip hover rapidly and slowly to stress retargeting mid-flight.
	for i := 0; i < 2000; i++ {
		if i%7 == 0 {
			a.SetHovered(i%14 == 0)
		}
		v := a.Step(1.0 / 120)
		if v.MorphIntensity < 0.3 || v.MorphIntensity > 0.8 {
			t.Fatalf("morph intensity %f outside [0.3, 0.8] at step %d", v.MorphIntensity, i)
		}
	}
}

func TestHoverEasesTowardTargets(t *testing.T) {
	a := New(Config{Interactive: true})
	a.SetHovered(true)

	v := a.Step(1.0 / 60)
	if v.MorphIntensity <= 0.3 || v.MorphIntensity >= 0.8 {
		t.Errorf("after one frame morph = %f, want strictly between idle and hovered", v.MorphIntensity)
	}
	if v.FrequencyScale != 1.5 {
		t.Errorf("frequency scale = %f, want 1.5 immediately", v.FrequencyScale)
	}

	for i := 0; i < 600; i++ {
		v = a.Step(1.0 / 60)
	}
	if math.Abs(v.MorphIntensity-0.8) > 1e-3 {
		t.Errorf("morph settled at %f, want 0.8", v.MorphIntensity)
	}
	if math.Abs(v.RotationSpeed-0.2) > 1e-3 {
		t.Errorf("rotation settled at %f, want 0.2", v.RotationSpeed)
	}
	if math.Abs(v.Scale-1.1) > 1e-3 {
		t.Errorf("scale settled at %f, want 1.1", v.Scale)
	}
}

func TestRotationPausesWhileHovered(t *testing.T) {
	a := New(Config{Interactive: true})

	a.Step(1)
	spun := a.Values().RotationY
	if spun <= 0 {
		t.Fatalf("idle animator did not rotate, RotationY = %f", spun)
	}
	// 0.1 speed * 0.01 per frame * 60 frames.
	if math.Abs(spun-0.06) > 1e-9 {
		t.Errorf("RotationY after 1s idle = %f, want 0.06", spun)
	}

	a.SetHovered(true)
	a.Step(1)
	if got := a.Values().RotationY; got != spun {
		t.Errorf("RotationY changed while hovered: %f -> %f", spun, got)
	}
}

func TestFloatLoopBoundedAndCyclic(t *testing.T) {
	const intensity = 1.0
	f := NewFloatLoop(intensity)
	f.Start()

	const dt = 1.0 / 1000
	limit := 0.1 * intensity
	crossings := 0
	nearZero := 0
	prev := f.Offset()

	for i := 0; i < 10000; i++ {
		off := f.Step(dt)
		if math.Abs(off) > limit+1e-12 {
			t.Fatalf("offset %f exceeds %f at step %d", off, limit, i)
		}
		if (prev < 0) != (off < 0) {
			crossings++
			if math.Abs(off) < 0.002 {
				nearZero++
			}
		}
		prev = off
	}

	if crossings < 6 {
		t.Errorf("offset crossed zero %d times in 10s, want at least 6", crossings)
	}
	if nearZero < crossings-1 {
		t.Errorf("only %d of %d crossings sampled within 0.002 of zero", nearZero, crossings)
	}
	if f.Legs() < 6 {
		t.Errorf("loop turned around %d times, want at least 6", f.Legs())
	}
}

func TestFloatLoopStopped(t *testing.T) {
	f := NewFloatLoop(1)
	if got := f.Step(0.1); got != 0 {
		t.Errorf("stopped loop Step = %f, want 0", got)
	}

	f.Start()
	for i := 0; i < 20; i++ {
		f.Step(1.0 / 60)
	}
	if f.Offset() == 0 {
		t.Fatal("running loop should have moved")
	}

	f.Stop()
	if f.Active() || f.Offset() != 0 {
		t.Errorf("Stop left active=%v offset=%f", f.Active(), f.Offset())
	}
}

func TestFloatLoopZeroIntensity(t *testing.T) {
	f := NewFloatLoop(0)
	f.Start()
	for i := 0; i < 100; i++ {
		if off := f.Step(1.0 / 60); off != 0 {
			t.Fatalf("zero intensity produced offset %f", off)
		}
	}
}

func TestFloatLoopRunCancels(t *testing.T) {
	f := NewFloatLoop(1)
	ctx, cancel := context.WithCancel(context.Background())

	var ticks atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- f.Run(ctx, 2*time.Millisecond, func(float64) {
			if ticks.Add(1) == 5 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("Run did not return after cancel")
	}

	if ticks.Load() < 5 {
		t.Errorf("onTick called %d times, want at least 5", ticks.Load())
	}
	if f.Active() {
		t.Error("loop still active after Run returned")
	}
}
