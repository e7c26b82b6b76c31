package reconcile

import "fmt"

// State is the lifecycle stage of a reconciliation pass.
type State int

const (
	StateLoaded State = iota
	StatePlanned
	StateExecuting
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StatePlanned:
		return "planned"
	case StateExecuting:
		return "executing"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateCommitted || s == StateRolledBack
}

var transitions = map[State][]State{
	StateLoaded:    {StatePlanned},
	StatePlanned:   {StateExecuting},
	StateExecuting: {StateCommitted, StateRolledBack},
}

// CanTransition reports whether from -> to is a legal step.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Pass tracks the state of a single reconciliation pass.
type Pass struct {
	Collection string
	state      State
}

// NewPass starts a pass in the Loaded state.
func NewPass(collection string) *Pass {
	return &Pass{Collection: collection, state: StateLoaded}
}

// State returns the current state.
func (p *Pass) State() State {
	return p.state
}

// Advance moves the pass to the next state.
func (p *Pass) Advance(to State) error {
	if !CanTransition(p.state, to) {
		return fmt.Errorf("reconcile: illegal transition %s -> %s", p.state, to)
	}
	p.state = to
	return nil
}
