package battle

import (
	"fmt"

	"github.com/rs/zerolog"

	"battlesim/internal/battle/core"
)

// PlacementValidator applies a player's full placement set to a board.
// Placements are applied in order and the first rejection aborts the setup;
// there is no rollback because a failed setup ends the match anyway.
type PlacementValidator struct {
	logger zerolog.Logger
}

// NewPlacementValidator creates a validator that logs through the given
// logger
func NewPlacementValidator(logger zerolog.Logger) *PlacementValidator {
	return &PlacementValidator{
		logger: logger.With().Str("component", "placement_validator").Logger(),
	}
}

// Apply places every placement on the board and then checks the fleet is
// complete. Errors wrap the core cause: ErrUnknownShip, ErrOutOfBounds,
// ErrOverlap, ErrShipAlreadyPlaced or ErrIncompleteFleet.
func (v *PlacementValidator) Apply(board *core.Board, placements []core.Placement) error {
	for _, p := range placements {
		if err := board.Place(p); err != nil {
			v.logger.Warn().
				Int("ship", int(p.Ship)).
				Str("anchor", p.Anchor.String()).
				Str("rotation", p.Rot.String()).
				Err(err).
				Msg("Placement rejected")
			return &PlacementError{Placement: p, Err: err}
		}
		v.logger.Debug().
			Int("ship", int(p.Ship)).
			Str("anchor", p.Anchor.String()).
			Str("rotation", p.Rot.String()).
			Msg("Ship placed")
	}

	if !board.HasFullFleet() {
		missing := missingShips(board)
		v.logger.Warn().
			Ints("missing_ships", missing).
			Msg("Setup ended with an incomplete fleet")
		return fmt.Errorf("missing ships %v: %w", missing, core.ErrIncompleteFleet)
	}
	return nil
}

func missingShips(board *core.Board) []int {
	placed := make(map[core.ShipID]bool)
	for _, id := range board.PlacedShips() {
		placed[id] = true
	}

	var missing []int
	for _, id := range board.Catalog().IDs() {
		if !placed[id] {
			missing = append(missing, int(id))
		}
	}
	return missing
}
