package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"battlesim/internal/battle/events"
)

// Transition represents a state transition in the history
type Transition struct {
	From      MatchPhase
	To        MatchPhase
	Timestamp time.Time
	Reason    string
}

// StateMachine guards the match lifecycle. Transitions are validated against
// the phase table, recorded, logged and published; everything else is
// rejected so a finished match can never come back to life.
type StateMachine struct {
	mu       sync.RWMutex
	matchID  string
	current  MatchPhase
	history  []Transition
	logger   zerolog.Logger
	eventBus events.Publisher
}

// NewStateMachine creates a state machine starting in PhaseSetup
func NewStateMachine(matchID string, logger zerolog.Logger, eventBus events.Publisher) *StateMachine {
	return &StateMachine{
		matchID:  matchID,
		current:  PhaseSetup,
		history:  make([]Transition, 0, 2),
		logger:   logger.With().Str("component", "state_machine").Logger(),
		eventBus: eventBus,
	}
}

// CurrentPhase returns the current match phase
func (sm *StateMachine) CurrentPhase() MatchPhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(target MatchPhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current.CanTransitionTo(target)
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(target MatchPhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.current.CanTransitionTo(target) {
		return fmt.Errorf("invalid transition from %s to %s", sm.current, target)
	}

	previous := sm.current
	sm.current = target
	sm.history = append(sm.history, Transition{
		From:      previous,
		To:        target,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	if sm.eventBus != nil {
		sm.eventBus.Publish(events.NewStateTransitionEvent(
			sm.matchID,
			previous.String(),
			target.String(),
			reason,
		))
	}

	sm.logger.Info().
		Str("from_phase", previous.String()).
		Str("to_phase", target.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

// History returns a copy of the transition history
func (sm *StateMachine) History() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}
