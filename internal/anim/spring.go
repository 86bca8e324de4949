// Package anim provides spring-eased scalar animation for hover and float effects.
package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig describes a mass-spring-damper in physical terms.
type SpringConfig struct {
	Mass     float64
	Tension  float64
	Friction float64
}

// Spring presets used by the blob.
var (
	// HoverSpring eases morph intensity and rotation speed. It is overdamped.
	HoverSpring = SpringConfig{Mass: 1, Tension: 280, Friction: 60}
	// ScaleSpring eases the hover scale-up of the floating group.
	ScaleSpring = SpringConfig{Mass: 1, Tension: 300, Friction: 30}
	// FloatSpring drives the idle bobbing motion.
	FloatSpring = SpringConfig{Mass: 1, Tension: 120, Friction: 14}
)

// AngularFrequency returns sqrt(tension / mass).
func (c SpringConfig) AngularFrequency() float64 {
	m := c.Mass
	if m <= 0 {
		m = 1
	}
	return math.Sqrt(c.Tension / m)
}

// DampingRatio returns friction / (2 * sqrt(tension * mass)).
func (c SpringConfig) DampingRatio() float64 {
	m := c.Mass
	if m <= 0 {
		m = 1
	}
	if c.Tension <= 0 {
		return 1
	}
	return c.Friction / (2 * math.Sqrt(c.Tension*m))
}

// Value is a scalar converging on a target under spring dynamics.
type Value struct {
	cfg    SpringConfig
	pos    float64
	vel    float64
	target float64

	// harmonica springs are built for a fixed step; rebuilt when dt changes.
	dt     float64
	spring harmonica.Spring
}

// NewValue returns a value resting at initial.
func NewValue(cfg SpringConfig, initial float64) *Value {
	return &Value{
		cfg:    cfg,
		pos:    initial,
		target: initial,
	}
}

// SetTarget changes the equilibrium the value converges to.
func (v *Value) SetTarget(target float64) {
	v.target = target
}

// Target returns the current equilibrium.
func (v *Value) Target() float64 {
	return v.target
}

// Get returns the instantaneous value.
func (v *Value) Get() float64 {
	return v.pos
}

// Velocity returns the instantaneous velocity.
func (v *Value) Velocity() float64 {
	return v.vel
}

// Reset places the value at rest on pos, targeting pos.
func (v *Value) Reset(pos float64) {
	v.pos = pos
	v.vel = 0
	v.target = pos
}

// Step advances the spring by dt seconds and returns the new value.
func (v *Value) Step(dt float64) float64 {
	if dt <= 0 {
		return v.pos
	}
	if dt != v.dt {
		v.spring = harmonica.NewSpring(dt, v.cfg.AngularFrequency(), v.cfg.DampingRatio())
		v.dt = dt
	}
	v.pos, v.vel = v.spring.Update(v.pos, v.vel, v.target)
	return v.pos
}

// AtRest reports whether the value sits on its target within precision
// and has (almost) stopped moving.
func (v *Value) AtRest(precision float64) bool {
	return math.Abs(v.pos-v.target) <= precision && math.Abs(v.vel) <= precision*10
}
