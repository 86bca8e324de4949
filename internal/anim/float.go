package anim

import (
	"context"
	"math"
	"time"
)

// floatAmplitude is the peak vertical offset per unit of float intensity.
const floatAmplitude = 0.1

// FloatLoop bobs a vertical offset between +A and -A forever, where
// A = 0.1 * intensity. Each leg eases on FloatSpring and the target flips
// once the spring settles. The loop only advances while started.
type FloatLoop struct {
	amplitude float64
	value     *Value
	sign      float64
	active    bool
	legs      int
}

// NewFloatLoop returns a stopped loop for the given float intensity.
func NewFloatLoop(intensity float64) *FloatLoop {
	return &FloatLoop{
		amplitude: math.Abs(floatAmplitude * intensity),
		value:     NewValue(FloatSpring, 0),
		sign:      1,
	}
}

// Amplitude returns the maximum magnitude of the offset.
func (f *FloatLoop) Amplitude() float64 {
	return f.amplitude
}

// Active reports whether the loop is running.
func (f *FloatLoop) Active() bool {
	return f.active
}

// Legs returns how many times the loop has reached a peak and turned around.
func (f *FloatLoop) Legs() int {
	return f.legs
}

// Start begins the loop from offset 0 heading up. Starting a running loop is a no-op.
func (f *FloatLoop) Start() {
	if f.active {
		return
	}
	f.active = true
	f.sign = 1
	f.legs = 0
	f.value.Reset(0)
	f.value.SetTarget(f.amplitude)
}

// Stop tears the loop down and returns the offset to 0.
func (f *FloatLoop) Stop() {
	f.active = false
	f.value.Reset(0)
}

// Step advances the loop by dt seconds and returns the offset.
func (f *FloatLoop) Step(dt float64) float64 {
	if !f.active {
		return 0
	}
	f.value.Step(dt)

	precision := f.amplitude * 0.01
	if precision < 1e-9 {
		precision = 1e-9
	}
	if f.value.AtRest(precision) {
		f.sign = -f.sign
		f.value.SetTarget(f.sign * f.amplitude)
		f.legs++
	}
	return f.Offset()
}

// Offset returns the current offset, clamped to the amplitude.
func (f *FloatLoop) Offset() float64 {
	if !f.active {
		return 0
	}
	return clamp(f.value.Get(), -f.amplitude, f.amplitude)
}

// Run drives the loop on a ticker until ctx is cancelled, calling onTick
// with each new offset. The loop is started on entry and stopped on exit,
// so nothing keeps running after Run returns.
func (f *FloatLoop) Run(ctx context.Context, interval time.Duration, onTick func(offset float64)) error {
	f.Start()
	defer f.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			off := f.Step(dt)
			if onTick != nil {
				onTick(off)
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
