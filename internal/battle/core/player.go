package core

import "fmt"

// PlayerID identifies one of the two combatants. Zero means "no player" and
// doubles as the draw marker in match outcomes.
type PlayerID int

const (
	NoPlayer PlayerID = 0
	Player1  PlayerID = 1
	Player2  PlayerID = 2
)

// IsValid reports whether the id names an actual combatant
func (p PlayerID) IsValid() bool {
	return p == Player1 || p == Player2
}

// Opponent returns the other combatant
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

func (p PlayerID) String() string {
	if p == NoPlayer {
		return "nobody"
	}
	return fmt.Sprintf("Player %d", int(p))
}
