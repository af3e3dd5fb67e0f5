package states

import "fmt"

// MatchPhase represents the current phase of a match
type MatchPhase int

const (
	// PhaseSetup - boards are being placed and validated
	PhaseSetup MatchPhase = iota

	// PhaseInProgress - players are exchanging attacks
	PhaseInProgress

	// PhaseFinished - terminal; a winner, draw or abort has been recorded
	PhaseFinished
)

// String returns the string representation of a MatchPhase
func (p MatchPhase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseInProgress:
		return "InProgress"
	case PhaseFinished:
		return "Finished"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p MatchPhase) IsTerminal() bool {
	return p == PhaseFinished
}

// CanAcceptAttacks returns true if attacks can be processed in this phase
func (p MatchPhase) CanAcceptAttacks() bool {
	return p == PhaseInProgress
}

// AllowedTransitions returns the valid phases this phase can transition to.
// Setup may finish directly when a player's placement is rejected.
func (p MatchPhase) AllowedTransitions() []MatchPhase {
	switch p {
	case PhaseSetup:
		return []MatchPhase{PhaseInProgress, PhaseFinished}
	case PhaseInProgress:
		return []MatchPhase{PhaseFinished}
	default:
		return []MatchPhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase
// is allowed
func (p MatchPhase) CanTransitionTo(target MatchPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
