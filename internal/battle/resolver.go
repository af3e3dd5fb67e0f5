package battle

import (
	"github.com/rs/zerolog"

	"battlesim/internal/battle/core"
)

// AttackResolver applies attacks to boards. It is deliberately thin: the
// match controller validates coordinates before resolution, the board owns
// the cell transitions, and the resolver packages the result and the debug
// trail.
type AttackResolver struct {
	logger zerolog.Logger
}

// NewAttackResolver creates a resolver that logs through the given logger
func NewAttackResolver(logger zerolog.Logger) *AttackResolver {
	return &AttackResolver{
		logger: logger.With().Str("component", "attack_resolver").Logger(),
	}
}

// Resolve strikes the target cell on the defending board
func (r *AttackResolver) Resolve(board *core.Board, target core.Coordinate) (core.AttackResult, error) {
	result, err := board.Attack(target)
	if err != nil {
		r.logger.Debug().
			Str("target", target.String()).
			Err(err).
			Msg("Attack rejected")
		return core.AttackResult{}, err
	}

	r.logger.Debug().
		Str("target", target.String()).
		Str("outcome", result.Outcome.String()).
		Int("ship", int(result.Ship)).
		Msg("Attack resolved")
	return result, nil
}
