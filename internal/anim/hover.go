package anim

// HoverState is the pointer-hover state of an interactive object.
type HoverState int

const (
	Idle HoverState = iota
	Hovered
)

func (s HoverState) String() string {
	if s == Hovered {
		return "hovered"
	}
	return "idle"
}

// PointerEvent is a pointer transition delivered by the input source.
type PointerEvent int

const (
	PointerEnter PointerEvent = iota
	PointerLeave
)

// Transition returns the next hover state. Non-interactive objects ignore
// pointer events entirely.
func Transition(s HoverState, ev PointerEvent, interactive bool) HoverState {
	if !interactive {
		return s
	}
	switch ev {
	case PointerEnter:
		return Hovered
	case PointerLeave:
		return Idle
	}
	return s
}

// Targets are the spring equilibria selected by a hover state.
type Targets struct {
	MorphIntensity float64
	RotationSpeed  float64
	Scale          float64
	// FrequencyScale multiplies noise frequency. It switches instantly.
	FrequencyScale float64
}

var (
	idleTargets    = Targets{MorphIntensity: 0.3, RotationSpeed: 0.1, Scale: 1, FrequencyScale: 1}
	hoveredTargets = Targets{MorphIntensity: 0.8, RotationSpeed: 0.2, Scale: 1.1, FrequencyScale: 1.5}
)

// TargetsFor returns the targets for a hover state.
func TargetsFor(s HoverState) Targets {
	if s == Hovered {
		return hoveredTargets
	}
	return idleTargets
}

// MaxMorphIntensity is the largest morph intensity any state targets.
func MaxMorphIntensity() float64 {
	return hoveredTargets.MorphIntensity
}
