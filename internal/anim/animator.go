package anim

// rotationPerFrame is the group yaw added per 60 Hz frame per unit of rotation speed.
const rotationPerFrame = 0.01

// Values is a snapshot of the animator, sampled once per frame.
type Values struct {
	State          HoverState
	MorphIntensity float64
	RotationSpeed  float64
	Scale          float64
	FrequencyScale float64
	FloatOffset    float64
	RotationY      float64
}

// Config configures an Animator.
type Config struct {
	Interactive    bool
	FloatIntensity float64
}

// Animator owns the hover springs and the float loop of one floating object.
type Animator struct {
	interactive bool
	state       HoverState

	morph    *Value
	rotation *Value
	scale    *Value
	float    *FloatLoop

	rotationY float64
	retargets int
}

// New creates an idle animator with every spring resting on its idle target.
func New(cfg Config) *Animator {
	t := TargetsFor(Idle)
	return &Animator{
		interactive: cfg.Interactive,
		state:       Idle,
		morph:       NewValue(HoverSpring, t.MorphIntensity),
		rotation:    NewValue(HoverSpring, t.RotationSpeed),
		scale:       NewValue(ScaleSpring, t.Scale),
		float:       NewFloatLoop(cfg.FloatIntensity),
	}
}

// Interactive reports whether pointer events are honored.
func (a *Animator) Interactive() bool {
	return a.interactive
}

// State returns the current hover state.
func (a *Animator) State() HoverState {
	return a.state
}

// Retargets counts hover transitions that actually changed spring targets.
func (a *Animator) Retargets() int {
	return a.retargets
}

// Pointer feeds a pointer event through the hover state machine. Springs
// are retargeted only when the state changes, so repeated enters are no-ops.
// Returns true if the state changed.
func (a *Animator) Pointer(ev PointerEvent) bool {
	next := Transition(a.state, ev, a.interactive)
	if next == a.state {
		return false
	}
	a.state = next
	t := TargetsFor(next)
	a.morph.SetTarget(t.MorphIntensity)
	a.rotation.SetTarget(t.RotationSpeed)
	a.scale.SetTarget(t.Scale)
	a.retargets++
	return true
}

// SetHovered is a convenience for boolean hover sources.
func (a *Animator) SetHovered(hovered bool) bool {
	if hovered {
		return a.Pointer(PointerEnter)
	}
	return a.Pointer(PointerLeave)
}

// Start activates the float loop. Call when the object is mounted.
func (a *Animator) Start() {
	a.float.Start()
}

// Stop tears down the float loop. Call when the object is unmounted.
func (a *Animator) Stop() {
	a.float.Stop()
}

// Float exposes the float loop, e.g. to drive it from its own ticker.
func (a *Animator) Float() *FloatLoop {
	return a.float
}

// Step advances every spring by dt seconds and returns the new snapshot.
func (a *Animator) Step(dt float64) Values {
	a.morph.Step(dt)
	a.rotation.Step(dt)
	a.scale.Step(dt)
	a.float.Step(dt)

	// The group stops spinning while the pointer rests on it.
	if a.state != Hovered && dt > 0 {
		a.rotationY += a.rotation.Get() * rotationPerFrame * dt * 60
	}
	return a.Values()
}

// Values returns the current snapshot without advancing time.
func (a *Animator) Values() Values {
	lo, hi := TargetsFor(Idle).MorphIntensity, TargetsFor(Hovered).MorphIntensity
	return Values{
		State:          a.state,
		MorphIntensity: clamp(a.morph.Get(), lo, hi),
		RotationSpeed:  a.rotation.Get(),
		Scale:          a.scale.Get(),
		FrequencyScale: TargetsFor(a.state).FrequencyScale,
		FloatOffset:    a.float.Offset(),
		RotationY:      a.rotationY,
	}
}
