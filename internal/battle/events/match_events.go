package events

import (
	"time"

	"battlesim/internal/battle/core"
)

// Event type constants
const (
	TypeMatchStarted    = "match.started"
	TypeFleetPlaced     = "match.fleet_placed"
	TypeAttackResolved  = "match.attack_resolved"
	TypeMatchEnded      = "match.ended"
	TypeStateTransition = "match.state_transition"
)

// MatchStartedEvent is published when both fleets are placed and the first
// attack is about to be requested
type MatchStartedEvent struct {
	BaseEvent
	BoardWidth     int
	BoardHeight    int
	Fleet          []core.ShipID
	Player1        string
	Player2        string
	StartingPlayer core.PlayerID
}

// NewMatchStartedEvent creates a new MatchStartedEvent
func NewMatchStartedEvent(matchID string, width, height int, fleet []core.ShipID, player1, player2 string, starting core.PlayerID) *MatchStartedEvent {
	return &MatchStartedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeMatchStarted,
			Time:      time.Now(),
			Match:     matchID,
		},
		BoardWidth:     width,
		BoardHeight:    height,
		Fleet:          fleet,
		Player1:        player1,
		Player2:        player2,
		StartingPlayer: starting,
	}
}

// FleetPlacedEvent is published when a player's setup passes validation
type FleetPlacedEvent struct {
	BaseEvent
	Player core.PlayerID
	Ships  []core.ShipID
}

// NewFleetPlacedEvent creates a new FleetPlacedEvent
func NewFleetPlacedEvent(matchID string, player core.PlayerID, ships []core.ShipID) *FleetPlacedEvent {
	return &FleetPlacedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeFleetPlaced,
			Time:      time.Now(),
			Match:     matchID,
		},
		Player: player,
		Ships:  ships,
	}
}

// AttackResolvedEvent is published after every resolved attack
type AttackResolvedEvent struct {
	BaseEvent
	Move     int
	Attacker core.PlayerID
	Defender core.PlayerID
	Result   core.AttackResult
}

// NewAttackResolvedEvent creates a new AttackResolvedEvent
func NewAttackResolvedEvent(matchID string, move int, attacker core.PlayerID, result core.AttackResult) *AttackResolvedEvent {
	return &AttackResolvedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeAttackResolved,
			Time:      time.Now(),
			Match:     matchID,
		},
		Move:     move,
		Attacker: attacker,
		Defender: attacker.Opponent(),
		Result:   result,
	}
}

// MatchEndedEvent is published once, when the match reaches its terminal
// phase for any reason
type MatchEndedEvent struct {
	BaseEvent
	Winner   core.PlayerID
	Draw     bool
	Aborted  bool
	Reason   string
	Moves    int
	Duration time.Duration
}

// NewMatchEndedEvent creates a new MatchEndedEvent
func NewMatchEndedEvent(matchID string, winner core.PlayerID, draw, aborted bool, reason string, moves int, duration time.Duration) *MatchEndedEvent {
	return &MatchEndedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeMatchEnded,
			Time:      time.Now(),
			Match:     matchID,
		},
		Winner:   winner,
		Draw:     draw,
		Aborted:  aborted,
		Reason:   reason,
		Moves:    moves,
		Duration: duration,
	}
}

// StateTransitionEvent is published when the match moves between phases
type StateTransitionEvent struct {
	BaseEvent
	From   string
	To     string
	Reason string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(matchID, from, to, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: BaseEvent{
			EventType: TypeStateTransition,
			Time:      time.Now(),
			Match:     matchID,
		},
		From:   from,
		To:     to,
		Reason: reason,
	}
}
