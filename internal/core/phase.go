package core

import (
	"errors"
	"fmt"
)

// Phase is the named state of a single game session.
type Phase int

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhasePaused
	PhaseLevelComplete
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseLevelComplete:
		return "level-complete"
	case PhaseGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrInvalidTransition is returned when a phase change is not allowed.
var ErrInvalidTransition = errors.New("core: invalid phase transition")

// transitions lists the allowed moves. GameOver has none: a finished game
// is replaced by a new instance.
var transitions = map[Phase][]Phase{
	PhaseReady:         {PhasePlaying},
	PhasePlaying:       {PhasePaused, PhaseLevelComplete, PhaseGameOver},
	PhasePaused:        {PhasePlaying},
	PhaseLevelComplete: {PhasePlaying, PhaseGameOver},
}

// Machine tracks the phase of one game instance.
type Machine struct {
	phase Phase
}

// NewMachine returns a machine in the Ready phase.
func NewMachine() Machine {
	return Machine{phase: PhaseReady}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Is reports whether the machine is in the given phase.
func (m *Machine) Is(p Phase) bool {
	return m.phase == p
}

// CanTransition reports whether moving to the given phase is allowed.
func (m *Machine) CanTransition(to Phase) bool {
	for _, p := range transitions[m.phase] {
		if p == to {
			return true
		}
	}
	return false
}

// Transition moves to the given phase. The phase is unchanged on error.
func (m *Machine) Transition(to Phase) error {
	if !m.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.phase, to)
	}
	m.phase = to
	return nil
}

// TogglePause flips Playing and Paused. Other phases are left alone.
// Returns true if the phase changed.
func (m *Machine) TogglePause() bool {
	switch m.phase {
	case PhasePlaying:
		m.phase = PhasePaused
		return true
	case PhasePaused:
		m.phase = PhasePlaying
		return true
	}
	return false
}
