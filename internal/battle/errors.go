package battle

import (
	"errors"
	"fmt"

	"battlesim/internal/battle/core"
)

var (
	ErrStrategyTimeout = errors.New("strategy call timed out")
	ErrStrategyPanic   = errors.New("strategy panicked")
	ErrMatchNotStarted = errors.New("match not started")
	ErrMatchFinished   = errors.New("match already finished")
)

// InvalidMoveError reports an attack the engine refused to resolve: who
// played it, where, and why. The reason wraps the underlying cause so
// errors.Is can reach core.ErrOutOfBounds and friends.
type InvalidMoveError struct {
	Player core.PlayerID
	Coord  core.Coordinate
	Reason error
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("%s: invalid move %s: %v", e.Player, e.Coord, e.Reason)
}

func (e *InvalidMoveError) Unwrap() error {
	return e.Reason
}

// PlacementError reports the first placement a setup was rejected for
type PlacementError struct {
	Placement core.Placement
	Err       error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("placing %s: %v", e.Placement, e.Err)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}
