package battle

import "battlesim/internal/battle/core"

// BoardSetup produces a player's fleet placement. Implementations are
// consulted once per match, during the setup phase.
type BoardSetup interface {
	// Initialize tells the setup the board dimensions and catalog before
	// placements are requested
	Initialize(width, height int, catalog *core.Catalog)
	// ProducePlacements returns one placement per catalog ship
	ProducePlacements() ([]core.Placement, error)
}

// Strategy picks attacks for a player. The engine calls NextAttack when it
// is the player's turn and reports the outcome back through
// RegisterAttackResult before the next turn begins.
type Strategy interface {
	// Initialize tells the strategy the board dimensions and catalog before
	// the first attack is requested
	Initialize(width, height int, catalog *core.Catalog)
	// NextAttack returns the next cell to attack
	NextAttack() (core.Coordinate, error)
	// RegisterAttackResult reports what the player's last attack did
	RegisterAttackResult(coord core.Coordinate, hit, sunk bool)
}

// IncomingAttackObserver is an optional Strategy extension for players that
// also want to see attacks landing on their own board.
type IncomingAttackObserver interface {
	ObserveIncomingAttack(coord core.Coordinate, hit, sunk bool)
}

// PlayerSlot binds a named player to its collaborators
type PlayerSlot struct {
	Name     string
	Setup    BoardSetup
	Strategy Strategy
}
