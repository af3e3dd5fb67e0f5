package core

// Outcome classifies the effect of a single attack
type Outcome int

const (
	OutcomeMiss Outcome = iota
	OutcomeHit
	OutcomeSunk
)

// IsHit reports whether the attack struck a ship (sinking counts as a hit)
func (o Outcome) IsHit() bool {
	return o == OutcomeHit || o == OutcomeSunk
}

func (o Outcome) String() string {
	switch o {
	case OutcomeMiss:
		return "miss"
	case OutcomeHit:
		return "hit"
	case OutcomeSunk:
		return "sunk"
	default:
		return "unknown"
	}
}

// AttackResult reports what a resolved attack did to the defending board.
// Ship is NoShip for misses.
type AttackResult struct {
	Coord   Coordinate
	Outcome Outcome
	Ship    ShipID
}
