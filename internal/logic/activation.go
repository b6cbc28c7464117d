package logic

import "time"

// DefaultDebounce is the minimum spacing between accepted button edges.
const DefaultDebounce = 200 * time.Millisecond

// Transition is an accepted activation toggle.
type Transition struct {
	To ActivationState
	At time.Time
}

// Activation is the debounced button state machine toggling Idle and Active.
// The button is active-low: a press drives the raw line level to 0.
type Activation struct {
	debounce     time.Duration
	state        ActivationState
	lastLevel    bool
	lastAccepted time.Time
}

// NewActivation creates an Activation starting in Idle. The line is assumed
// pulled high before the first sample, so a button held at boot still
// registers as one falling edge.
func NewActivation(debounce time.Duration) *Activation {
	return &Activation{
		debounce:  debounce,
		state:     StateIdle,
		lastLevel: true,
	}
}

// OnButtonSample feeds one raw level sample. A falling edge is accepted only
// if at least the debounce duration elapsed since the last accepted edge;
// ignored edges and non-edges return nil. On acceptance the state flips and
// the resulting transition is returned.
func (a *Activation) OnButtonSample(rawLevel bool, now time.Time) *Transition {
	prev := a.lastLevel
	a.lastLevel = rawLevel

	if !prev || rawLevel {
		return nil
	}
	if !a.lastAccepted.IsZero() && now.Sub(a.lastAccepted) < a.debounce {
		return nil
	}

	a.lastAccepted = now
	if a.state == StateIdle {
		a.state = StateActive
	} else {
		a.state = StateIdle
	}
	return &Transition{To: a.state, At: now}
}

// State returns the current activation state.
func (a *Activation) State() ActivationState {
	return a.state
}
