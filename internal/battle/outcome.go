package battle

import (
	"fmt"
	"time"

	"battlesim/internal/battle/core"
)

// Outcome is the terminal result of a match. Exactly one of Winner being a
// real player, Draw, or Aborted holds. Fault names the offending player for
// forfeits and setup aborts, NoPlayer otherwise.
type Outcome struct {
	Winner   core.PlayerID
	Draw     bool
	Aborted  bool
	Fault    core.PlayerID
	Reason   string
	Moves    int
	Duration time.Duration
}

func (o Outcome) String() string {
	switch {
	case o.Aborted:
		return fmt.Sprintf("aborted after %d moves: %s", o.Moves, o.Reason)
	case o.Draw:
		return fmt.Sprintf("draw after %d moves: %s", o.Moves, o.Reason)
	default:
		return fmt.Sprintf("%s won after %d moves: %s", o.Winner, o.Moves, o.Reason)
	}
}
